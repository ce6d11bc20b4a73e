package validateprofile

import (
	"context"
	"testing"
	"time"

	apperrors "calculators/internal/common/errors"
	"calculators/internal/common/logger"
	"calculators/internal/common/validation"
	"calculators/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

var today = time.Date(2026, 10, 18, 15, 45, 0, 0, time.UTC)

func newTestService(t *testing.T) *Service {
	return NewService(ServiceDependencies{Logger: logger.NewTestLogger(t)}, DefaultConfig()).
		WithClock(func() time.Time { return today })
}

func validProfile() *models.BrokerProfile {
	return &models.BrokerProfile{
		UserID:        "user-001",
		Title:         "Mr",
		FirstName:     "Nam",
		Surname:       "Nguyen",
		Phone:         "0912345678",
		DateOfBirth:   time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC),
		LicenseType:   "Full",
		LicensePeriod: 10,
		Occupation:    "Engineer",
		Address: models.Address{
			StreetAddress: models.StringPtr("12 Hang Bai"),
			City:          models.StringPtr("Hanoi"),
		},
	}
}

func messagesOf(t *testing.T, err error) []string {
	t.Helper()
	require.Error(t, err)
	vErr, ok := validation.As(err)
	require.True(t, ok, "expected a validation aggregate, got %T", err)
	return vErr.Messages()
}

// ==========================
// Core Functionality Tests
// ==========================

func TestService_ValidProfile(t *testing.T) {
	svc := newTestService(t)
	assert.NoError(t, svc.Validate(validProfile()))
	assert.True(t, svc.IsValid(validProfile()))
}

func TestService_AgeBoundary(t *testing.T) {
	svc := newTestService(t)

	p := validProfile()
	p.DateOfBirth = time.Date(2008, 10, 18, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, svc.Validate(p), "exactly 18 years old")

	p.DateOfBirth = time.Date(2008, 10, 19, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"Age must be at least 18 years old"}, messagesOf(t, svc.Validate(p)))

	p.DateOfBirth = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"Date of birth cannot be in the future"}, messagesOf(t, svc.Validate(p)))

	p.DateOfBirth = time.Time{}
	assert.Equal(t, []string{"Date of birth is required"}, messagesOf(t, svc.Validate(p)))
}

func TestAgeOn(t *testing.T) {
	tests := []struct {
		name     string
		dob      time.Time
		today    time.Time
		expected int
	}{
		{"birthday today", time.Date(2000, 3, 10, 0, 0, 0, 0, time.UTC), time.Date(2020, 3, 10, 0, 0, 0, 0, time.UTC), 20},
		{"day before birthday", time.Date(2000, 3, 10, 0, 0, 0, 0, time.UTC), time.Date(2020, 3, 9, 0, 0, 0, 0, time.UTC), 19},
		{"earlier month", time.Date(2000, 3, 10, 0, 0, 0, 0, time.UTC), time.Date(2020, 2, 28, 0, 0, 0, 0, time.UTC), 19},
		{"leap day in a common year", time.Date(2008, 2, 29, 0, 0, 0, 0, time.UTC), time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), 17},
		{"leap day reached", time.Date(2008, 2, 29, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), 18},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AgeOn(tt.dob, tt.today))
		})
	}
}

func TestPhoneMessages(t *testing.T) {
	tests := []struct {
		name     string
		phone    string
		expected []string
	}{
		{name: "valid 10 digits prefix 09", phone: "0912345678"},
		{name: "valid with spaces", phone: "091 234 5678"},
		{name: "valid with country code", phone: "+84 09 123 4567"},
		{name: "valid prefix 03", phone: "0312345678"},
		{
			name:     "prefix 01 rejected",
			phone:    "0112345678",
			expected: []string{"Phone number prefix must be one of: [03, 05, 07, 08, 09]"},
		},
		{
			name:     "blank",
			phone:    "   ",
			expected: []string{"Phone number is required"},
		},
		{
			name:     "negative",
			phone:    "-0912345678",
			expected: []string{"Phone number cannot be negative (cannot start with minus sign)"},
		},
		{
			name:     "letters and dashes",
			phone:    "091-234-567a",
			expected: []string{"Phone number can only contain digits, + (for country code), and spaces. Invalid characters found: --a"},
		},
		{
			name:     "too short",
			phone:    "091234567",
			expected: []string{"Phone number must be 10 or 11 digits (Vietnam format: 0xxxxxxxxx or +84xxxxxxxxx)"},
		},
		{
			name:     "ten digits without leading zero",
			phone:    "9123456789",
			expected: []string{"10-digit phone number must start with '0' (Vietnam format)"},
		},
		{
			name:     "eleven digits without country code",
			phone:    "09123456789",
			expected: []string{"11-digit phone number (with country code) must start with '84'"},
		},
		{
			name:     "country code with bad prefix",
			phone:    "+84 1234 56789",
			expected: []string{"Phone number prefix (after +84) must be one of: [03, 05, 07, 08, 09]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PhoneMessages(tt.phone))
		})
	}
}

func TestService_CollectsEveryViolation(t *testing.T) {
	p := &models.BrokerProfile{
		UserID:        " ",
		Title:         "King",
		Phone:         "0112345678",
		DateOfBirth:   time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC),
		LicenseType:   "Learner",
		LicensePeriod: 51,
		Occupation:    "Astronaut",
		Address: models.Address{
			County:   models.StringPtr("  "),
			PostCode: models.StringPtr(""),
		},
	}

	msgs := messagesOf(t, newTestService(t).Validate(p))
	assert.Equal(t, []string{
		"User ID is required and cannot be empty",
		"Title must be one of: " + listing(Titles),
		"First name is required and cannot be empty",
		"Surname is required and cannot be empty",
		"Phone number prefix must be one of: [03, 05, 07, 08, 09]",
		"Age must be at least 18 years old",
		"License type must be 'Full' or 'Provisional'",
		"License period cannot exceed 50 years. Provided value: 51",
		"Occupation must be one of: " + listing(Occupations),
		"County cannot be only whitespace",
		"Post code cannot be only whitespace",
	}, msgs)
}

func TestService_FieldRules(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(p *models.BrokerProfile)
		expected []string
	}{
		{
			name:   "title and occupation ignore case",
			mutate: func(p *models.BrokerProfile) { p.Title = " squadron leader "; p.Occupation = "SOCIAL WORKER" },
		},
		{
			name:   "provisional license in any case",
			mutate: func(p *models.BrokerProfile) { p.LicenseType = "provisional" },
		},
		{
			name:     "negative license period",
			mutate:   func(p *models.BrokerProfile) { p.LicensePeriod = -1 },
			expected: []string{"License period cannot be negative. Provided value: -1"},
		},
		{
			name:   "license period bounds are inclusive",
			mutate: func(p *models.BrokerProfile) { p.LicensePeriod = 50 },
		},
		{
			name:     "missing title, license type and occupation",
			mutate:   func(p *models.BrokerProfile) { p.Title = ""; p.LicenseType = ""; p.Occupation = "" },
			expected: []string{"Title is required", "License type is required", "Occupation is required"},
		},
		{
			name:   "absent address fields are fine",
			mutate: func(p *models.BrokerProfile) { p.Address = models.Address{} },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(p)
			err := newTestService(t).Validate(p)
			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.expected, messagesOf(t, err))
		})
	}
}

func TestService_Execute(t *testing.T) {
	svc := newTestService(t)

	out, err := svc.Execute(context.Background(), &Input{Profile: validProfile()})
	require.NoError(t, err)
	assert.True(t, out.Valid)

	p := validProfile()
	p.Phone = "0112345678"
	out, err = svc.Execute(context.Background(), &Input{Profile: p})
	require.NoError(t, err)
	assert.False(t, out.Valid)
	assert.Len(t, out.Errors, 1)

	out, err = svc.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Profile is required"}, out.Errors)
}

func TestConfig(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.MaxLicensePeriod = -1
	assert.Error(t, cfg.Validate())
}

func TestService_NilInput(t *testing.T) {
	output, err := newTestService(t).Execute(context.Background(), nil)
	require.Error(t, err)
	assert.Nil(t, output)
	assert.Equal(t, apperrors.ErrCodeInvalidArgument, apperrors.CodeOf(err))
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "84912345678", DigitsOnly("+84 91 234 5678"))
	assert.Equal(t, "", DigitsOnly(" + "))
}

func TestService_AgeUsesClockLocalDate(t *testing.T) {
	hanoi := time.FixedZone("ICT", 7*60*60)
	// 18:00 UTC on new year's eve is already 1 January in Hanoi
	now := time.Date(2026, 1, 1, 1, 0, 0, 0, hanoi)
	svc := NewService(ServiceDependencies{}, DefaultConfig()).WithClock(func() time.Time { return now })

	p := validProfile()
	p.DateOfBirth = time.Date(2008, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, svc.Validate(p))

	p.DateOfBirth = time.Date(2008, 1, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, []string{"Age must be at least 18 years old"}, messagesOf(t, svc.Validate(p)))
}
