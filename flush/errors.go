package flush

import "errors"

// Sentinel errors for flushed assemblies.
var (
	// ErrSchemaMismatch is returned when a manifest was written with a
	// different schema version.
	ErrSchemaMismatch = errors.New("flush: manifest schema mismatch")

	// ErrUnresolvedType is returned when a requested type named by a manifest
	// cannot be resolved.
	ErrUnresolvedType = errors.New("flush: unresolved type")

	// ErrNilManifest is returned when a nil manifest is written or converted.
	ErrNilManifest = errors.New("flush: manifest is nil")
)
