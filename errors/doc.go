// Package errors provides standardized error handling patterns for the
// streamlit server components.
//
// # Overview
//
// The package implements a three-class error classification system:
// Transient (temporary, retryable), Invalid (bad input, non-retryable),
// and Fatal (unrecoverable, stop processing).
//
// Classification lets callers make informed decisions about retries and
// degradation without matching on error strings. It integrates with Go's
// standard error handling: errors.Is(), errors.As(), and wrapping chains
// all work as expected.
//
// # Quick Start
//
// Return standard error variables for known conditions:
//
//	if _, ok := defaults[key]; !ok {
//	    return errors.ErrUnknownOption
//	}
//
// Wrap errors with component context and a classification:
//
//	if err := yaml.Unmarshal(data, &raw); err != nil {
//	    return errors.WrapInvalid(err, "Options", "LoadFile", "parse config file")
//	}
//
// Check classification at the call site:
//
//	if errors.IsTransient(err) {
//	    // safe to retry
//	}
package errors
