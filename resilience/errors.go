package resilience

import "errors"

// ErrTransient matches every error marked with MarkTransient.
var ErrTransient = errors.New("resilience: transient failure")

// ErrUnknownStrategy is returned by ParseBackoffStrategy.
var ErrUnknownStrategy = errors.New("resilience: unknown backoff strategy")
