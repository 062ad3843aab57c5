package resilience

import "errors"

type transientError struct {
	err error
}

func (e *transientError) Error() string   { return e.err.Error() }
func (e *transientError) Unwrap() error   { return e.err }
func (e *transientError) Transient() bool { return true }

func (e *transientError) Is(target error) bool {
	return target == ErrTransient
}

// MarkTransient marks err as worth retrying. The returned error still
// matches err with errors.Is and has the same message. Nil stays nil.
func MarkTransient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsTransient reports whether the first error in err's chain that declares
// a Transient method reports true.
func IsTransient(err error) bool {
	var t interface{ Transient() bool }
	return errors.As(err, &t) && t.Transient()
}
