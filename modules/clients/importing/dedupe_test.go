package importing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchDuplicate_EmailTier(t *testing.T) {
	t.Parallel()

	dup, matched := MatchDuplicate(
		Fields{FirstName: "Jane", LastName: "Doe", Email: "JANE@example.com"},
		Fields{FirstName: "Janet", LastName: "Doherty", Email: "jane@example.com"},
	)
	require.True(t, dup)
	assert.Equal(t, []string{"email"}, matched)
}

func TestMatchDuplicate_NameAndDOBTier(t *testing.T) {
	t.Parallel()

	dup, matched := MatchDuplicate(
		Fields{FirstName: "jane", LastName: "DOE", DateOfBirth: "1990-05-20"},
		Fields{FirstName: "Jane", LastName: "Doe", DateOfBirth: "1990-05-20"},
	)
	require.True(t, dup)
	assert.Contains(t, matched, "name and date of birth")
}

func TestMatchDuplicate_NameOnlyTierIgnoresDifferentDOB(t *testing.T) {
	t.Parallel()

	// Same name with conflicting birth dates still merges.
	dup, matched := MatchDuplicate(
		Fields{FirstName: "Jane", LastName: "Doe", DateOfBirth: "1990-05-20"},
		Fields{FirstName: "Jane", LastName: "Doe", DateOfBirth: "1985-01-01"},
	)
	require.True(t, dup)
	assert.Equal(t, []string{"name"}, matched)
}

func TestMatchDuplicate_NameOnlyNeedsBothParts(t *testing.T) {
	t.Parallel()

	dup, _ := MatchDuplicate(
		Fields{FirstName: "Jane"},
		Fields{FirstName: "Jane"},
	)
	assert.False(t, dup)
}

func TestMatchDuplicate_EmptyEmailsNeverMatch(t *testing.T) {
	t.Parallel()

	dup, _ := MatchDuplicate(
		Fields{FirstName: "Jane", LastName: "Doe"},
		Fields{FirstName: "John", LastName: "Smith"},
	)
	assert.False(t, dup)
}

func TestMatchDuplicate_ReportsAllTiers(t *testing.T) {
	t.Parallel()

	dup, matched := MatchDuplicate(
		Fields{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", DateOfBirth: "1990-05-20"},
		Fields{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", DateOfBirth: "1990-05-20"},
	)
	require.True(t, dup)
	assert.Equal(t, []string{"email", "name and date of birth", "name"}, matched)
	assert.Equal(t, "email, name and date of birth, name", MatchedFieldsLabel(matched))
}
