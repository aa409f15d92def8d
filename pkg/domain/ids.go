// Package domain holds validated primitives shared across the status modules.
//
// Values are constructed through Parse functions at trust boundaries so the
// rest of the code can rely on their invariants without re-checking.
package domain

import (
	"regexp"

	dErrors "statusgate/pkg/domain-errors"
)

// SubjectID is the phone number whose verification status is being resolved.
// It is the only lookup key of the resolved-status and pending-request stores.
//
// Invariants:
//   - "+91" country prefix
//   - exactly 10 digits after the prefix
type SubjectID string

var subjectIDPattern = regexp.MustCompile(`^\+91[0-9]{10}$`)

// SubjectIDFormat is the human-readable form of the accepted pattern.
const SubjectIDFormat = "+91XXXXXXXXXX"

// ParseSubjectID validates raw input and returns a SubjectID.
func ParseSubjectID(raw string) (SubjectID, error) {
	if !subjectIDPattern.MatchString(raw) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "mobile number must match "+SubjectIDFormat)
	}
	return SubjectID(raw), nil
}

// MustSubjectID parses value and panics if it is invalid. Tests only.
func MustSubjectID(value string) SubjectID {
	id, err := ParseSubjectID(value)
	if err != nil {
		panic(err)
	}
	return id
}

func (s SubjectID) String() string {
	return string(s)
}

// IsZero reports whether the ID was never set.
func (s SubjectID) IsZero() bool {
	return s == ""
}
