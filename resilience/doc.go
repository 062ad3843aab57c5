// Package resilience retries miss-path generation after transient failures.
//
// The type cache never caches failures, so a later call always starts over.
// Retry makes that explicit for failures a participant or code generator
// marks as transient: the operation is re-run with backoff while every other
// error is returned immediately and unchanged.
//
// # Transient errors
//
// An error is transient when it, or any error it wraps, was produced by
// MarkTransient or implements
//
//	interface{ Transient() bool }
//
// and reports true. The interface form lets participants mark errors without
// importing this package.
//
// # Usage
//
//	r := resilience.NewRetry(resilience.RetryConfig{MaxAttempts: 3})
//	err := r.Execute(ctx, func(ctx context.Context) error {
//	    t, err = cache.GetOrCreateType(ctx, requested)
//	    return err
//	})
package resilience
