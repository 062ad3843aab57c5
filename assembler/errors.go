package assembler

import "errors"

// Sentinel errors for assembler construction and assembly.
var (
	ErrMissingConfigurationID = errors.New("assembler: participant configuration id is required")
	ErrNilParticipant         = errors.New("assembler: participant is nil")
	ErrNilFactory             = errors.New("assembler: mutable type factory is nil")
	ErrNilMaterializer        = errors.New("assembler: materializer is nil")
	ErrNilRequestedType       = errors.New("assembler: requested type is nil")
	ErrNotSubclassable        = errors.New("assembler: requested type cannot be subclassed")
)
