// Package typecache memoizes assembled types and constructor-call delegates.
//
// The cache has two tiers keyed by cachekey.Compound values:
//
//	type tier:        [identity] + [provider keys]
//	constructor tier: [delegate shape, allowNonPublic] + [identity] + [provider keys]
//
// Lookups never block. A miss takes the single generation lock shared by all
// tiers, re-checks the store and only then assembles, so each key is
// generated at most once per Cache. Failures are never cached.
//
// LoadFlushedCode reconciles previously persisted output with the live cache:
// loaded proxies are registered under the key their requested type would
// produce, existing entries win, and participants rebuild their state once
// per call.
package typecache
