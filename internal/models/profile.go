// internal/models/profile.go
package models

import "time"

// BrokerProfile is the driver record a broker keeps per user.
type BrokerProfile struct {
	UserID        string    `json:"userId"`
	Title         string    `json:"title"`
	FirstName     string    `json:"firstName"`
	Surname       string    `json:"surname"`
	Phone         string    `json:"phone"`
	DateOfBirth   time.Time `json:"dateOfBirth"`
	LicenseType   string    `json:"licenseType"`
	LicensePeriod int       `json:"licensePeriod"`
	Occupation    string    `json:"occupation"`
	Address       Address   `json:"address"`
	DriverHistory string    `json:"driverHistory,omitempty"`
}

// Address fields are optional; nil means absent.
type Address struct {
	StreetAddress *string `json:"streetAddress,omitempty"`
	City          *string `json:"city,omitempty"`
	County        *string `json:"county,omitempty"`
	PostCode      *string `json:"postCode,omitempty"`
}

// FullName joins title, first name and surname.
func (p *BrokerProfile) FullName() string {
	name := p.Title
	for _, part := range []string{p.FirstName, p.Surname} {
		if part == "" {
			continue
		}
		if name != "" {
			name += " "
		}
		name += part
	}
	return name
}

// StringPtr is a helper for optional address fields.
func StringPtr(s string) *string {
	return &s
}
