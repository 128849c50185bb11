// Package metric provides Prometheus-based metrics for the streamlit
// server: forward message serialization outcomes and origin check verdicts.
//
// A Registry owns an isolated Prometheus registry with Go runtime and
// process collectors plus the server metrics, and exposes an http.Handler
// for mounting in the server mux.
//
//	registry := metric.NewRegistry()
//	mux.Handle("/metrics", registry.Handler())
//
//	m := registry.Metrics()
//	m.MessagesSerialized.Inc()
//	m.OriginChecks.WithLabelValues(metric.VerdictAllowed).Inc()
package metric
