package importing

import "strings"

// Match tier labels, used only for human-readable diagnostics.
const (
	matchEmail     = "email"
	matchNameDOB   = "name and date of birth"
	matchNameOnly  = "name"
	matchSeparator = ", "
)

func normalizeName(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// MatchDuplicate decides whether candidate duplicates other, and reports the
// matched tier names. Three tiers, evaluated as a logical OR:
//
//  1. equal emails (case-insensitive), both non-empty
//  2. equal first+last names and equal non-empty dates of birth
//  3. equal non-empty first+last names, with no further corroboration
//
// Tier 3 fires even when the dates of birth differ. Merging is preferred over
// duplicating, at the cost of occasionally rejecting a distinct same-named
// client.
func MatchDuplicate(candidate, other Fields) (bool, []string) {
	var matched []string

	candEmail := strings.ToLower(strings.TrimSpace(candidate.Email))
	otherEmail := strings.ToLower(strings.TrimSpace(other.Email))
	if candEmail != "" && otherEmail != "" && candEmail == otherEmail {
		matched = append(matched, matchEmail)
	}

	firstEqual := normalizeName(candidate.FirstName) == normalizeName(other.FirstName)
	lastEqual := normalizeName(candidate.LastName) == normalizeName(other.LastName)

	if candidate.DateOfBirth != "" && other.DateOfBirth != "" &&
		candidate.DateOfBirth == other.DateOfBirth && firstEqual && lastEqual {
		matched = append(matched, matchNameDOB)
	}

	if firstEqual && lastEqual &&
		normalizeName(candidate.FirstName) != "" && normalizeName(candidate.LastName) != "" {
		matched = append(matched, matchNameOnly)
	}

	return len(matched) > 0, matched
}

// MatchedFieldsLabel joins tier names for a diagnostic line.
func MatchedFieldsLabel(matched []string) string {
	return strings.Join(matched, matchSeparator)
}
