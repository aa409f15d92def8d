package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "statusgate/pkg/domain-errors"
)

// TestParseSubjectID_Invariants validates the parsing invariant:
// "subject IDs are +91 followed by exactly ten digits"
//
// Justification: This is a pure function enforcing a domain invariant
// at the trust boundary of every resolution.
func TestParseSubjectID_Invariants(t *testing.T) {
	t.Run("accepts canonical number", func(t *testing.T) {
		id, err := ParseSubjectID("+919876543210")
		require.NoError(t, err)
		assert.Equal(t, SubjectID("+919876543210"), id)
		assert.False(t, id.IsZero())
	})

	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "missing plus", input: "919876543210"},
		{name: "other country code", input: "+449876543210"},
		{name: "too short", input: "+91987654321"},
		{name: "too long", input: "+9198765432101"},
		{name: "letters", input: "+9198765abcde"},
		{name: "embedded space", input: "+91 9876543210"},
		{name: "trailing newline", input: "+919876543210\n"},
		{name: "injection attempt", input: "+919876543210'; DROP TABLE"},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			_, err := ParseSubjectID(tt.input)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		})
	}
}

func TestMustSubjectID(t *testing.T) {
	assert.NotPanics(t, func() { MustSubjectID("+911234567890") })
	assert.Panics(t, func() { MustSubjectID("nope") })
}
