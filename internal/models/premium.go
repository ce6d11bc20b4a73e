// internal/models/premium.go
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// BreakdownCover is the roadside-assistance add-on; each category raises the premium by a fixed percentage.
type BreakdownCover string

const (
	NoCover  BreakdownCover = "No cover"
	Roadside BreakdownCover = "Roadside"
	AtHome   BreakdownCover = "At home"
	European BreakdownCover = "European"
)

var breakdownPercentages = map[BreakdownCover]decimal.Decimal{
	NoCover:  decimal.RequireFromString("0.01"),
	Roadside: decimal.RequireFromString("0.02"),
	AtHome:   decimal.RequireFromString("0.03"),
	European: decimal.RequireFromString("0.04"),
}

// BreakdownCovers lists the categories in ascending price order.
func BreakdownCovers() []BreakdownCover {
	return []BreakdownCover{NoCover, Roadside, AtHome, European}
}

// ParseBreakdownCover matches a display name ignoring case and surrounding space.
// Unknown or blank input falls back to NoCover.
func ParseBreakdownCover(s string) BreakdownCover {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range BreakdownCovers() {
		if strings.ToLower(string(c)) == s {
			return c
		}
	}
	return NoCover
}

// Percentage returns the fractional increase, e.g. 0.02 for Roadside.
func (c BreakdownCover) Percentage() decimal.Decimal {
	if p, ok := breakdownPercentages[c]; ok {
		return p
	}
	return breakdownPercentages[NoCover]
}

// PremiumRequest is a validated premium input. Build it through the premium engine's NewRequest.
type PremiumRequest struct {
	BreakdownCover   BreakdownCover  `json:"breakdownCover"`
	WindscreenRepair bool            `json:"windscreenRepair"`
	Accidents        int             `json:"numberOfAccidents"`
	Mileage          int             `json:"totalMileage"`
	EstimatedValue   decimal.Decimal `json:"estimatedValue"`
	ParkingLocation  string          `json:"parkingLocation"`
	PublicParking    bool            `json:"publicParking"`
}

// Quote is a calculated premium saved under a five-digit identification number.
type Quote struct {
	IdentificationNumber int             `json:"identificationNumber"`
	Request              PremiumRequest  `json:"request"`
	Premium              decimal.Decimal `json:"premium"`
	CreatedAt            time.Time       `json:"createdAt"`
	UserID               string          `json:"userId,omitempty"`
	RegistrationNumber   string          `json:"registrationNumber,omitempty"`
	StartOfPolicy        time.Time       `json:"startOfPolicy,omitempty"`
}
