package observe

// Operations reported by the type cache.
const (
	OpGetType         = "get_type"
	OpConstructorCall = "constructor_call"
	OpLoadFlushedCode = "load_flushed_code"
)

// TypeMeta describes one cache operation for telemetry purposes.
type TypeMeta struct {
	Operation     string // one of the Op* constants (required)
	RequestedType string // requested type name (empty for loads)
	KeySlots      int    // slot count of the compound key
	Participants  int    // participants in the pipeline
}

// SpanName returns the deterministic span name for this operation.
// Format: typepipe.<operation>
func (m TypeMeta) SpanName() string {
	return "typepipe." + m.Operation
}

// Validate checks that the metadata can be reported.
func (m TypeMeta) Validate() error {
	if m.Operation == "" {
		return ErrMissingOperation
	}
	return nil
}
