// Package cachekey provides the immutable, value-equatable keys used to
// address generated types.
//
// A participant contributes a CacheKey for a requested type; the assembler
// combines those contributions with an identity slot and optional reserved
// call-site slots into a Compound key. Compound keys compare positionally and
// hash with an order-preserving combinator, so two keys built from the same
// participant list and equal contributions always address the same entry.
package cachekey
