package common

import "regexp"

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidEmail reports whether s looks like an email address. This is a
// client-side pre-check only; the backend remains the authority.
func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// ValidAge reports whether an age derived from a date of birth is plausible.
func ValidAge(age int) bool {
	return age > 0 && age < 150
}
