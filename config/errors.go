package config

import "errors"

// Sentinel errors for configuration.
var (
	// ErrMissingConfigurationID is returned when no participant
	// configuration ID is set.
	ErrMissingConfigurationID = errors.New("config: participant_configuration_id is required")

	// ErrUnknownKey is returned when the file contains keys that map to no
	// setting.
	ErrUnknownKey = errors.New("config: unknown key")

	// ErrMissingEnv is returned when a ${VAR} reference names an unset
	// variable.
	ErrMissingEnv = errors.New("config: missing environment variable")

	// ErrInvalidRetry is returned for inconsistent retry settings.
	ErrInvalidRetry = errors.New("config: invalid retry settings")
)
