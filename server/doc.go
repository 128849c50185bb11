// Package server implements the streamlit server utilities: bounded
// forward message serialization, CORS origin validation, and the
// browser-facing WebSocket surface that ties the two together.
//
// # Message Guard
//
// MessageGuard serializes forward messages for delivery. A message whose
// encoding exceeds the configured limit is not sent as-is and not
// truncated: the guard builds a replacement message that keeps the delta
// identifier and carries a structured "Data too large" exception, so the
// client renders an error in the element's slot instead of receiving a
// broken payload. The caller's message is never modified.
//
// # Origin Policy
//
// OriginPolicy implements the CORS origin check. When
// server.enableCORS is false every origin is accepted. Otherwise the
// origin's hostname is compared against an ordered candidate list:
// localhost aliases first, then the manually configured server address
// and S3 URL host, then the machine's internal and external IP
// addresses, and finally the configured S3 bucket name. Candidates are
// resolved lazily and evaluation stops at the first match, so the
// network-dependent lookups only run when the cheap checks fail.
package server
