// Package config provides configuration management for the streamlit server.
//
// Options are identified by dotted keys grouped into sections, for example
// "server.enableCORS" or "browser.serverAddress". Every option has a
// registered default; values may be overridden from a YAML file, from
// STREAMLIT_* environment variables, or programmatically via Set.
//
// # Core Components
//
// Options: Thread-safe option store using RWMutex. Reads return the
// effective value (override or default); IsManuallySet reports whether a
// value was explicitly provided rather than defaulted. Several consumers,
// notably the CORS origin policy, change behavior based on that
// distinction, so defaults are never recorded as manually set.
//
// Loading order mirrors precedence: defaults, then LoadFile, then
// ApplyEnv, then Set. Later layers win.
//
// # Usage
//
//	opts := config.NewOptions()
//	if err := opts.LoadFile("streamlit.yaml"); err != nil { ... }
//	opts.ApplyEnv()
//
//	if opts.GetBool("server.enableCORS") { ... }
//	if opts.IsManuallySet("browser.serverAddress") { ... }
package config
