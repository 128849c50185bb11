// Package retry provides simple exponential backoff retry logic for transient failures.
//
// # Overview
//
// This package offers a minimal retry mechanism with exponential backoff,
// used for best-effort network operations such as external IP discovery.
//
// # Usage
//
// Basic retry with defaults:
//
//	err := retry.Do(ctx, retry.DefaultConfig(), func() error {
//	    return client.Fetch()
//	})
//
// Retry with result:
//
//	ip, err := retry.DoWithResult(ctx, retry.DefaultConfig(), func() (string, error) {
//	    return lookupIP(ctx)
//	})
//
// Mark an error as not worth retrying:
//
//	return retry.NonRetryable(err)
//
// # Design Philosophy
//
// Intentionally minimal: just exponential backoff with jitter. No circuit
// breakers, no metrics, no error classification beyond the NonRetryable
// marker — the caller decides what to retry.
//
// All retry operations respect context cancellation, both during operation
// execution and during backoff delay. All functions are safe for
// concurrent use.
package retry
