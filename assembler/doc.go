// Package assembler orchestrates participants into generated types.
//
// A TypeAssembler owns the ordered participant list and the precomputed list
// of cache-key providers. It derives compound keys for requested types
// (Forward) and for previously generated types (Reverse) through one shared
// routine, and drives participants plus the external code generator when a
// new type has to be assembled.
//
// AssembleType and RebuildParticipantState must only be called while the
// owner's generation lock is held; BuildCompoundKey is pure and lock free.
package assembler
