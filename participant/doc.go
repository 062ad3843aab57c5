// Package participant defines the pluggable units that shape generated types.
//
// A Participant edits the mutable proxy description during assembly and may
// contribute a cache-key discriminator through a CacheKeyProvider. Both the
// assembly-time ProxyTypeContext and the reconciliation-time
// LoadedTypesContext expose the pipeline-wide State map.
package participant
