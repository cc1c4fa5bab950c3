package debounce

import (
	"errors"
	"fmt"
)

// ErrDuplicateIdentity matches every DuplicateIdentityError via errors.Is.
var ErrDuplicateIdentity = errors.New("duplicate identity")

// DuplicateIdentityError reports an identity declared twice within one scope.
// It is a configuration error: the identities must be renumbered.
type DuplicateIdentityError struct {
	Scope    string
	Identity any

	// First and Second name the clashing declarations when known.
	First  string
	Second string

	// Pos is the source position of the second declaration, if any.
	Pos string
}

func (e *DuplicateIdentityError) Error() string {
	msg := fmt.Sprintf("scope %q: identity %v declared more than once", e.Scope, e.Identity)
	if e.First != "" && e.Second != "" {
		msg += fmt.Sprintf(" (%s and %s)", e.First, e.Second)
	}
	if e.Pos != "" {
		msg = e.Pos + ": " + msg
	}
	return msg
}

// Is reports whether target is ErrDuplicateIdentity.
func (e *DuplicateIdentityError) Is(target error) bool {
	return target == ErrDuplicateIdentity
}
