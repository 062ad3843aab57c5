// Package config loads typepipe configuration from TOML.
//
// String values may reference environment variables as ${VAR}; a reference
// to an unset variable is an error and $$ produces a literal $. Unknown keys
// are rejected so typos do not silently fall back to defaults.
//
// Example:
//
//	participant_configuration_id = "orders-v3"
//	flush_directory = "${XDG_CACHE_HOME}/typepipe"
//
//	[observe]
//	service_name = "orders"
//
//	[observe.logging]
//	enabled = true
//	level = "info"
//
//	[retry]
//	max_attempts = 3
//	initial_delay = "10ms"
//	max_delay = "1s"
package config
