// Package telemetry holds the gas-reading refresh cycle: the reading buffer,
// the poll scheduler, threshold classification, trend smoothing, and the
// active view selection.
//
// # Refresh cycle
//
// A host loop (the Bubble Tea program in package monitor, or a plain ticker)
// calls into the cycle on every frame:
//
//  1. Poller.TryStart(now) asks the Scheduler whether a refresh is due
//  2. if so, Poller.Fetch runs the store query exactly once, off the loop
//  3. Poller.Apply swaps the result into the Buffer, or logs the failure
//
// Only one fetch is ever in flight. The Scheduler's pending flag is set by
// TryStart and cleared by Apply, and ticks that arrive in between are skipped.
// lastRefresh advances on every attempt, so a failing store is retried once
// per cadence rather than on every frame.
//
// # Snapshots
//
// The Buffer is replaced wholesale on each successful fetch. It never merges
// or appends across fetches, and a failed fetch leaves it untouched. Readers
// always observe one complete snapshot.
package telemetry
