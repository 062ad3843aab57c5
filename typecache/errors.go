package typecache

import "errors"

// Sentinel errors for the type cache.
var (
	// ErrConfigurationMismatch is returned when flushed output was produced by
	// a different participant configuration. It is never retried.
	ErrConfigurationMismatch = errors.New("typecache: participant configuration mismatch")

	// ErrNilAssembly is returned when LoadFlushedCode is called without an
	// assembly.
	ErrNilAssembly = errors.New("typecache: assembly is nil")

	// ErrNilType is returned when a requested type or delegate shape is nil.
	ErrNilType = errors.New("typecache: type is nil")

	// ErrUnidentifiedProxy is returned by LoadFlushedCode for a proxy type
	// that names no requested type, either by marker or by base type.
	ErrUnidentifiedProxy = errors.New("typecache: proxy type has no requested type")

	// ErrNilDependency is returned by New when a required collaborator is
	// missing.
	ErrNilDependency = errors.New("typecache: required dependency is nil")
)
