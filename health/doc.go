// Package health reports whether a typepipe pipeline can make progress.
//
// A Checker reports Healthy, Degraded or Unhealthy. The built-in checkers
// cover the resources a pipeline depends on:
//
//   - GenerationLockChecker: the generation lock can be acquired within a
//     timeout, so a stuck code generator shows up as unhealthy.
//   - FlushDirectoryChecker: the flush directory exists and is writable.
//   - BacklogChecker: the number of generated but unflushed types stays under
//     a threshold.
//
// Aggregator runs registered checkers in parallel and folds their results:
//
//	agg := health.NewAggregator()
//	agg.Register(health.NewGenerationLockChecker(cache, time.Second))
//	agg.Register(health.NewFlushDirectoryChecker(cfg.FlushDirectory))
//	results := agg.CheckAll(ctx)
//	overall := health.OverallStatus(results)
package health
