package importing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFields_BlanksInvalidEmail(t *testing.T) {
	t.Parallel()

	fields, diags := ValidateFields(Fields{FirstName: "Jane", Email: "not-an-email"})
	assert.Empty(t, fields.Email)
	require.Len(t, diags, 1)
	assert.Equal(t, "Invalid email format 'not-an-email'", diags[0])
}

func TestValidateFields_BlanksInvalidPhone(t *testing.T) {
	t.Parallel()

	fields, diags := ValidateFields(Fields{FirstName: "Jane", Phone: "call me maybe"})
	assert.Empty(t, fields.Phone)
	require.Len(t, diags, 1)
	assert.Equal(t, "Invalid phone format 'call me maybe'", diags[0])
}

func TestValidateFields_AcceptsReasonableValues(t *testing.T) {
	t.Parallel()

	in := Fields{
		FirstName: "Jane",
		Email:     "jane.doe+tag@example.co.uk",
		Phone:     "+1 (555) 010-0199",
	}
	fields, diags := ValidateFields(in)
	assert.Equal(t, in, fields)
	assert.Empty(t, diags)
}

func TestValidateFields_EmptyValuesAreNotDiagnosed(t *testing.T) {
	t.Parallel()

	fields, diags := ValidateFields(Fields{FirstName: "Jane"})
	assert.Empty(t, fields.Email)
	assert.Empty(t, fields.Phone)
	assert.Empty(t, diags)
}
