package validateprofile

import "strings"

// Titles accepted on the broker form.
var Titles = []string{
	"Mr", "Mrs", "Miss", "Ms", "Doctor", "Captain", "Duchess", "Duke",
	"Father", "General", "Lady", "Lord", "Lieutenant", "Lieutenant Colonel",
	"Major", "Master", "Professor", "Reverend", "Sir", "Squire", "Squadron Leader",
}

// Occupations accepted on the broker form.
var Occupations = []string{
	"Academic", "Actor", "Artist", "Doctor", "Librarian", "Student",
	"Accountant", "Architect", "Dentist", "Economists", "Writer", "Engineer",
	"Lawyer", "Nurse", "Pharmacist", "Physician", "Physiotherapist",
	"Psychologist", "Scientist", "Social worker", "Statistician", "Surgeon",
	"Teacher", "Math Professor", "Bank Examiner", "Museum Curator", "Casino Dealer",
}

const (
	LicenseFull        = "Full"
	LicenseProvisional = "Provisional"
)

// PhonePrefixes are the mobile prefixes of a 10-digit national number.
var PhonePrefixes = []string{"03", "05", "07", "08", "09"}

const CountryCode = "84"

// IsValidTitle matches ignoring case and surrounding space.
func IsValidTitle(title string) bool {
	return containsFold(Titles, title)
}

// IsValidOccupation matches ignoring case and surrounding space.
func IsValidOccupation(occupation string) bool {
	return containsFold(Occupations, occupation)
}

func containsFold(list []string, s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

// listing renders a list as "[a, b, c]".
func listing(list []string) string {
	return "[" + strings.Join(list, ", ") + "]"
}
