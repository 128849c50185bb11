// Package streamlit provides the server-side building blocks for streaming
// application frontends: bounded message serialization, CORS origin
// validation, and the supporting configuration and network utilities.
//
// # Architecture
//
// The module is organized around a small set of focused packages:
//
//	┌─────────────────────────────────────┐
//	│       cmd/streamlit-server          │  Wiring binary
//	│  (config, metrics, websocket)       │
//	└─────────────────────────────────────┘
//	           ↓ composes
//	┌─────────────────────────────────────┐
//	│             server                  │  MessageGuard, OriginPolicy,
//	│  (guard, origin policy, websocket)  │  browser WebSocket surface
//	└─────────────────────────────────────┘
//	           ↓ consumes
//	┌──────────┬──────────┬───────────────┐
//	│  config  │ message  │  pkg/netutil  │  Options store, ForwardMsg,
//	│          │          │  pkg/retry    │  hostname and IP discovery
//	└──────────┴──────────┴───────────────┘
//
// # Core Operations
//
// MessageGuard bounds the size of outbound forward messages. Oversized
// messages are replaced by a compact exception message that preserves the
// delta identifier, so the client always receives a well-formed payload:
//
//	guard := server.NewMessageGuard(server.MessageSizeLimit, nil)
//	data, err := guard.Serialize(msg)
//
// OriginPolicy decides whether a request origin is acceptable under the
// configured CORS policy. Candidates are evaluated lazily, cheapest first,
// and evaluation stops at the first match:
//
//	policy := server.NewOriginPolicy(opts, logger)
//	if !policy.IsAllowedOrigin(r.Header.Get("Origin")) {
//	    http.Error(w, "forbidden origin", http.StatusForbidden)
//	}
//
// Supporting packages provide the option store (config), the forward
// message model and exception marshalling (message), hostname and IP
// discovery (pkg/netutil), and retry with exponential backoff (pkg/retry).
package streamlit
