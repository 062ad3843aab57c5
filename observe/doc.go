// Package observe provides logging, metrics and tracing for type generation.
//
// It is a pure instrumentation library: the type cache reports lookups,
// generations and flushed-code loads through the Logger, Metrics and Tracer
// interfaces defined here, and an Observer wires them to OpenTelemetry
// providers and exporters.
package observe
