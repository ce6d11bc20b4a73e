package validateprofile

import (
	"context"
	"strings"
	"time"

	apperrors "calculators/internal/common/errors"
	"calculators/internal/common/logger"
	"calculators/internal/common/metrics"
	"calculators/internal/common/validation"
	"calculators/internal/models"
)

const (
	TaskType = "validate-profile"
)

type Service struct {
	config *Config
	logger logger.Logger
	now    func() time.Time
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	if config == nil {
		config = DefaultConfig()
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Service{
		config: config,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
		now:    time.Now,
	}
}

// WithClock replaces the clock that defines "today" for age checks.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Validate checks every field of p and returns a *validation.Error listing all violations.
func (s *Service) Validate(p *models.BrokerProfile) error {
	if p == nil {
		return validation.NewError("Profile is required")
	}

	var c validation.Collector

	c.Check(strings.TrimSpace(p.UserID) != "", "User ID is required and cannot be empty")

	if strings.TrimSpace(p.Title) == "" {
		c.Add("Title is required")
	} else {
		c.Check(IsValidTitle(p.Title), "Title must be one of: %s", listing(Titles))
	}

	c.Check(strings.TrimSpace(p.FirstName) != "", "First name is required and cannot be empty")
	c.Check(strings.TrimSpace(p.Surname) != "", "Surname is required and cannot be empty")

	for _, msg := range PhoneMessages(p.Phone) {
		c.Add(msg)
	}

	s.checkDateOfBirth(&c, p.DateOfBirth)
	s.checkLicense(&c, p.LicenseType, p.LicensePeriod)

	if strings.TrimSpace(p.Occupation) == "" {
		c.Add("Occupation is required")
	} else {
		c.Check(IsValidOccupation(p.Occupation), "Occupation must be one of: %s", listing(Occupations))
	}

	checkOptional(&c, p.Address.StreetAddress, "Street address")
	checkOptional(&c, p.Address.City, "City")
	checkOptional(&c, p.Address.County, "County")
	checkOptional(&c, p.Address.PostCode, "Post code")

	return c.Err()
}

// IsValid reports whether Validate would succeed.
func (s *Service) IsValid(p *models.BrokerProfile) bool {
	return s.Validate(p) == nil
}

// Execute validates the input profile and reports the outcome instead of failing.
func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, apperrors.NewInvalidArgumentError("input is required")
	}
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	err := s.Validate(input.Profile)
	metrics.ObserveCalculation(TaskType, start, err)
	if err == nil {
		return &Output{Valid: true}, nil
	}

	vErr, ok := validation.As(err)
	if !ok {
		return nil, err
	}
	fields := map[string]interface{}{"violations": vErr.Count()}
	if input.Profile != nil {
		fields["userId"] = input.Profile.UserID
		fields["phone"] = logger.RedactPhone(input.Profile.Phone)
	}
	s.logger.Debug("Profile rejected", fields)
	return &Output{Valid: false, Errors: vErr.Messages()}, nil
}

func (s *Service) checkDateOfBirth(c *validation.Collector, dob time.Time) {
	if dob.IsZero() {
		c.Add("Date of birth is required")
		return
	}
	today := dateOf(s.now())
	dob = dateOf(dob)
	if dob.After(today) {
		c.Add("Date of birth cannot be in the future")
		return
	}
	c.Check(AgeOn(dob, today) >= s.config.MinimumAge,
		"Age must be at least %d years old", s.config.MinimumAge)
}

func (s *Service) checkLicense(c *validation.Collector, licenseType string, period int) {
	lt := strings.TrimSpace(licenseType)
	if lt == "" {
		c.Add("License type is required")
	} else {
		c.Check(strings.EqualFold(lt, LicenseFull) || strings.EqualFold(lt, LicenseProvisional),
			"License type must be 'Full' or 'Provisional'")
	}

	c.Check(period >= s.config.MinLicensePeriod,
		"License period cannot be negative. Provided value: %d", period)
	c.Check(period <= s.config.MaxLicensePeriod,
		"License period cannot exceed %d years. Provided value: %d", s.config.MaxLicensePeriod, period)
}

func checkOptional(c *validation.Collector, v *string, field string) {
	if v != nil {
		c.Check(strings.TrimSpace(*v) != "", "%s cannot be only whitespace", field)
	}
}

// AgeOn returns the number of whole years between dob and today, counting by
// calendar year, month and day.
func AgeOn(dob, today time.Time) int {
	age := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		age--
	}
	return age
}

// dateOf keeps the calendar date of t as seen in its own location.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
