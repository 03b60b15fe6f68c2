package importing

import (
	"fmt"
	"regexp"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9()+\- ]+$`)
)

// ValidateFields cleans the extracted contact fields. Invalid values are
// blanked, never fatal: a diagnostic is recorded and the row continues.
func ValidateFields(f Fields) (Fields, []string) {
	var diagnostics []string

	if f.Email != "" && !emailPattern.MatchString(f.Email) {
		diagnostics = append(diagnostics, fmt.Sprintf("Invalid email format '%s'", f.Email))
		f.Email = ""
	}

	// A phone cell holding an email means swapped columns, not a phone.
	if f.Phone != "" && (!phonePattern.MatchString(f.Phone) || looksLikeEmail(f.Phone)) {
		diagnostics = append(diagnostics, fmt.Sprintf("Invalid phone format '%s'", f.Phone))
		f.Phone = ""
	}

	return f, diagnostics
}
