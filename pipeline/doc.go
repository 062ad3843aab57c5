// Package pipeline wires the assembler, the type cache, flushed-output
// handling, retries and telemetry into one entry point.
//
// A Pipeline owns one participant configuration. Every type it generates is
// recorded so FlushCode can persist it, and LoadFlushedCode/LoadFlushedDir
// register previously flushed types so they are not generated again.
package pipeline
