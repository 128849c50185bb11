package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/shengmingqijiquan/streamlit/errors"
)

// EnvPrefix is prepended to option keys when resolving environment
// overrides: "server.enableCORS" becomes "STREAMLIT_SERVER_ENABLECORS".
const EnvPrefix = "STREAMLIT_"

// Well-known option keys
const (
	KeyEnableCORS    = "server.enableCORS"
	KeyServerPort    = "server.port"
	KeyHeadless      = "server.headless"
	KeyBrowserAddr   = "browser.serverAddress"
	KeyS3URL         = "s3.url"
	KeyS3Bucket      = "s3.bucket"
	KeyWebsocketPath = "server.websocketPath"
)

// defaults registers every known option with its default value.
// The default's Go type also fixes the option's type: Set rejects values
// whose type doesn't match.
var defaults = map[string]any{
	KeyEnableCORS:    true,
	KeyServerPort:    8501,
	KeyHeadless:      false,
	KeyBrowserAddr:   "",
	KeyS3URL:         "",
	KeyS3Bucket:      "",
	KeyWebsocketPath: "/stream",
}

// Options provides thread-safe access to server configuration.
// Zero value is not usable; construct with NewOptions.
type Options struct {
	mu          sync.RWMutex
	overrides   map[string]any
	manuallySet map[string]bool
}

// NewOptions creates an option store seeded with the registered defaults.
func NewOptions() *Options {
	return &Options{
		overrides:   make(map[string]any),
		manuallySet: make(map[string]bool),
	}
}

// Set assigns a value to an option and marks it as manually set.
// Unknown keys and type mismatches are rejected.
func (o *Options) Set(key string, value any) error {
	def, ok := defaults[key]
	if !ok {
		return errors.WrapInvalid(errors.ErrUnknownOption, "Options", "Set",
			fmt.Sprintf("option %q", key))
	}

	coerced, err := coerce(value, def)
	if err != nil {
		return errors.WrapInvalid(err, "Options", "Set",
			fmt.Sprintf("option %q", key))
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.overrides[key] = coerced
	o.manuallySet[key] = true
	return nil
}

// IsManuallySet reports whether the option was explicitly provided by the
// user (file, environment, or Set) as opposed to taking its default.
func (o *Options) IsManuallySet(key string) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.manuallySet[key]
}

// get returns the effective value for key, or nil for unknown keys.
func (o *Options) get(key string) any {
	o.mu.RLock()
	if v, ok := o.overrides[key]; ok {
		o.mu.RUnlock()
		return v
	}
	o.mu.RUnlock()
	return defaults[key]
}

// GetBool returns the boolean value of an option, false for unknown keys.
func (o *Options) GetBool(key string) bool {
	if v, ok := o.get(key).(bool); ok {
		return v
	}
	return false
}

// GetString returns the string value of an option, "" for unknown keys.
func (o *Options) GetString(key string) string {
	if v, ok := o.get(key).(string); ok {
		return v
	}
	return ""
}

// GetInt returns the integer value of an option, 0 for unknown keys.
func (o *Options) GetInt(key string) int {
	if v, ok := o.get(key).(int); ok {
		return v
	}
	return 0
}

// Clone creates an independent copy of the option store.
func (o *Options) Clone() *Options {
	o.mu.RLock()
	defer o.mu.RUnlock()

	clone := NewOptions()
	for k, v := range o.overrides {
		clone.overrides[k] = v
	}
	for k, v := range o.manuallySet {
		clone.manuallySet[k] = v
	}
	return clone
}

// ApplyEnv overrides options from STREAMLIT_* environment variables.
// "server.enableCORS" maps to STREAMLIT_SERVER_ENABLECORS. Values that
// fail to parse for the option's type are reported as errors; unset
// variables are skipped.
func (o *Options) ApplyEnv() error {
	for key, def := range defaults {
		envName := EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		raw, ok := os.LookupEnv(envName)
		if !ok {
			continue
		}

		parsed, err := parseString(raw, def)
		if err != nil {
			return errors.WrapInvalid(err, "Options", "ApplyEnv",
				fmt.Sprintf("environment variable %s", envName))
		}

		if err := o.Set(key, parsed); err != nil {
			return err
		}
	}
	return nil
}

// coerce validates that value matches the option's registered type,
// accepting the loose numeric types YAML decoding produces.
func coerce(value, def any) (any, error) {
	switch def.(type) {
	case bool:
		if v, ok := value.(bool); ok {
			return v, nil
		}
	case string:
		if v, ok := value.(string); ok {
			return v, nil
		}
	case int:
		switch v := value.(type) {
		case int:
			return v, nil
		case int64:
			return int(v), nil
		case float64:
			return int(v), nil
		}
	}
	return nil, fmt.Errorf("%w: got %T, want %T", errors.ErrTypeMismatch, value, def)
}

// parseString converts a textual value (env var, flag) to the option's type.
func parseString(raw string, def any) (any, error) {
	switch def.(type) {
	case bool:
		return strconv.ParseBool(raw)
	case int:
		return strconv.Atoi(raw)
	case string:
		return raw, nil
	}
	return nil, fmt.Errorf("%w: unsupported option type %T", errors.ErrTypeMismatch, def)
}
