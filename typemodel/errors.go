package typemodel

import (
	"errors"
	"fmt"
)

// Sentinel errors for the type model.
var (
	ErrNilType             = errors.New("typemodel: type is nil")
	ErrEmptyTypeName       = errors.New("typemodel: type name is empty")
	ErrReentrantGeneration = errors.New("typemodel: code generator entered concurrently")
	ErrNotInvocable        = errors.New("typemodel: constructor cannot be invoked")
	ErrInvalidDelegate     = errors.New("typemodel: delegate shape has no signature")

	// ErrMissingMember matches every *MissingMemberError.
	ErrMissingMember = errors.New("typemodel: missing member")
)

// MissingMemberKind distinguishes the two constructor lookup failures.
type MissingMemberKind int

const (
	// NoMatchingConstructor means no constructor has the required signature.
	NoMatchingConstructor MissingMemberKind = iota
	// ConstructorNotPublic means the matching constructor is non-public and
	// non-public constructors were not allowed.
	ConstructorNotPublic
)

// MissingMemberError reports a failed constructor lookup.
type MissingMemberError struct {
	Kind            MissingMemberKind
	GeneratedType   Type
	RequestedType   Type
	Parameters      []Type
	RequestedParams []Type
}

func (e *MissingMemberError) Error() string {
	switch e.Kind {
	case ConstructorNotPublic:
		return fmt.Sprintf(
			"typemodel: the constructor %s of type '%s' is not public; allow non-public constructors to invoke it",
			FormatSignature(e.RequestedParams), NameOf(e.RequestedType))
	default:
		return fmt.Sprintf(
			"typemodel: type '%s' does not declare a constructor with signature %s",
			NameOf(e.RequestedType), FormatSignature(e.RequestedParams))
	}
}

// Is makes errors.Is(err, ErrMissingMember) hold.
func (e *MissingMemberError) Is(target error) bool {
	return target == ErrMissingMember
}
