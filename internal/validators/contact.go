package validators

import "regexp"

// emailPart excludes the full Unicode whitespace set, not just the ASCII
// set RE2's \s covers.
const emailPart = `[^\s\v\p{Z}\x{85}\x{FEFF}@]+`

var (
	emailPattern = regexp.MustCompile(`^` + emailPart + `@` + emailPart + `\.` + emailPart + `$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

// ValidateEmail reports whether email has the local@domain.tld form. When it
// does not, the second value is the message shown to the caller.
func ValidateEmail(email string) (bool, string) {
	if !emailPattern.MatchString(email) {
		return false, "Please enter a valid email address."
	}
	return true, ""
}

// ValidatePhone accepts exactly ten ASCII digits, nothing else.
func ValidatePhone(phone string) (bool, string) {
	if !phonePattern.MatchString(phone) {
		return false, "Please enter a valid 10-digit phone number."
	}
	return true, ""
}
