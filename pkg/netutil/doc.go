// Package netutil provides hostname extraction and best-effort discovery
// of the machine's internal and external IP addresses.
//
// GetHostname tolerates scheme-less and malformed input, returning "" when
// no hostname can be extracted. The IP lookups return (value, ok) pairs
// and never propagate errors: an unreachable network simply yields absence.
//
// The external IP lookup performs an HTTP request to a public echo
// service. Its result is cached for the process lifetime, success or
// failure, so callers can probe it on hot paths without repeated network
// round trips.
package netutil
