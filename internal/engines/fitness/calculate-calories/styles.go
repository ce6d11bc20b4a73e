package calculatecalories

import (
	"strings"

	"calculators/internal/models"
)

// Styles is the MET table, in lookup order.
var Styles = []models.SwimmingStyle{
	{Name: "Backstroke (intense)", MET: 9.5},
	{Name: "Backstroke (recreational)", MET: 4.8},
	{Name: "Breaststroke (intense)", MET: 10.3},
	{Name: "Breaststroke (recreational)", MET: 5.3},
	{Name: "Butterfly", MET: 13.8},
	{Name: "Crawl (intense)", MET: 10.0},
	{Name: "Crawl (recreational)", MET: 8.3},
	{Name: "Sidestroke", MET: 7.0},
	{Name: "Treading water (high effort)", MET: 9.8},
	{Name: "Treading water (relaxed)", MET: 3.5},
	{Name: "Water aerobics and calisthenics", MET: 5.5},
	{Name: "Aqua jogging", MET: 9.8},
	{Name: "Water walking (high effort)", MET: 6.8},
	{Name: "Water walking (relaxed)", MET: 4.5},
}

// LookupStyle finds a style by display name ignoring case. Without an exact
// match, the first style whose name contains the input, or is contained in
// it, wins.
func LookupStyle(name string) (models.SwimmingStyle, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return models.SwimmingStyle{}, false
	}
	for _, s := range Styles {
		if strings.ToLower(s.Name) == n {
			return s, true
		}
	}
	for _, s := range Styles {
		l := strings.ToLower(s.Name)
		if strings.Contains(l, n) || strings.Contains(n, l) {
			return s, true
		}
	}
	return models.SwimmingStyle{}, false
}

// StyleNames lists the display names in table order.
func StyleNames() []string {
	names := make([]string, len(Styles))
	for i, s := range Styles {
		names[i] = s.Name
	}
	return names
}
