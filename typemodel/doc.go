// Package typemodel defines the narrow contracts typepipe consumes from the
// surrounding object model: requested and generated types, the mutable type
// description participants edit, the code generator that materializes it, and
// the constructor/delegate plumbing used to build invocation delegates.
//
// The package also ships small in-memory implementations (Descriptor,
// NewMutableType, Materializer, DefaultConstructorFinder, StandardDelegateFactory)
// that are sufficient for tests, for resolving flushed manifests and for
// hosts that model their types as plain descriptors.
package typemodel
