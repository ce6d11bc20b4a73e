package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBreakdownCover(t *testing.T) {
	tests := []struct {
		in   string
		want BreakdownCover
		pct  string
	}{
		{"No cover", NoCover, "0.01"},
		{"  roadside ", Roadside, "0.02"},
		{"AT HOME", AtHome, "0.03"},
		{"european", European, "0.04"},
		{"", NoCover, "0.01"},
		{"Platinum", NoCover, "0.01"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseBreakdownCover(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.pct, got.Percentage().String())
		})
	}
}

func TestBreakdownCover_UnknownPercentageFallsBack(t *testing.T) {
	assert.Equal(t, "0.01", BreakdownCover("bogus").Percentage().String())
}

func TestBrokerProfile_FullName(t *testing.T) {
	p := &BrokerProfile{Title: "Mr", FirstName: "An", Surname: "Nguyen"}
	assert.Equal(t, "Mr An Nguyen", p.FullName())
	assert.Equal(t, "An", (&BrokerProfile{FirstName: "An"}).FullName())
}

func TestCalorieRequest_Matches(t *testing.T) {
	base := CalorieRequest{Style: SwimmingStyle{Name: "Butterfly", MET: 13.8}, DurationMin: 30, WeightKg: 70}

	assert.True(t, base.Matches(CalorieRequest{Style: base.Style, DurationMin: 30.005, WeightKg: 70}, 0.01))
	assert.False(t, base.Matches(CalorieRequest{Style: base.Style, DurationMin: 30.02, WeightKg: 70}, 0.01))
	assert.False(t, base.Matches(CalorieRequest{Style: SwimmingStyle{Name: "Sidestroke"}, DurationMin: 30, WeightKg: 70}, 0.01))
}
