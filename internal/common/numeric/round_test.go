package numeric

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRound_HalfAwayFromZero(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{16.905, "16.91"},
		{1.005, "1.01"},
		{2.675, "2.68"},
		{-2.675, "-2.68"},
		{707.0, "707"},
		{1010 * 0.7, "707"},
		{0.004, "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round(tt.in, 2).String(), "round(%v)", tt.in)
	}
}

func TestRoundFloat(t *testing.T) {
	assert.Equal(t, 16.91, RoundFloat(16.905, 2))
	assert.Equal(t, 253.58, RoundFloat(253.575, 2))
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(0))
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite(math.Inf(1)))
	assert.False(t, IsFinite(math.Inf(-1)))
}

func TestParseLocalized(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  bool
	}{
		{"253.58", "253.58", false},
		{"253,58", "253.58", false},
		{" 7 ", "7", false},
		{"1,234.5", "", true},
		{"abc", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLocalized(tt.in)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestLocalize(t *testing.T) {
	d := decimal.RequireFromString("16.9")
	assert.Equal(t, "16.90", Localize(d, 2, "."))
	assert.Equal(t, "16,90", Localize(d, 2, ","))
	assert.Equal(t, "16.9", LocalizeTrimmed(decimal.RequireFromString("16.900000"), 5, "."))
	assert.Equal(t, "8,45625", LocalizeTrimmed(decimal.RequireFromString("8.456251"), 5, ","))
}

func TestRound_Idempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		v := rapid.Float64Range(-1e9, 1e9).Draw(rt, "v")
		once := Round(v, 2)
		f, _ := once.Float64()
		if !Round(f, 2).Equal(once) {
			rt.Fatalf("round(round(%v)) = %s, want %s", v, Round(f, 2), once)
		}
	})
}
