package message

import (
	"reflect"
	"runtime"
	"strings"
)

// ExceptionElement is the structured representation of a server-side error
// delivered to the client in place of regular content.
type ExceptionElement struct {
	// Type is the error's Go type name, e.g. "MessageSizeError".
	Type string `json:"type"`
	// Message is the human-readable error text.
	Message string `json:"message"`
	// Stack holds the goroutine stack at marshalling time, one frame per
	// entry, when capture was requested.
	Stack []string `json:"stack,omitempty"`
}

// MarshalException converts an error into an ExceptionElement.
// Returns nil for a nil error.
func MarshalException(err error) *ExceptionElement {
	if err == nil {
		return nil
	}
	return &ExceptionElement{
		Type:    errorTypeName(err),
		Message: err.Error(),
	}
}

// MarshalExceptionWithStack is MarshalException plus a capture of the
// calling goroutine's stack for display in the client.
func MarshalExceptionWithStack(err error) *ExceptionElement {
	el := MarshalException(err)
	if el == nil {
		return nil
	}

	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)
	for _, line := range strings.Split(string(buf[:n]), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			el.Stack = append(el.Stack, line)
		}
	}
	return el
}

// errorTypeName reports the concrete type name of an error, without the
// package path. Unnamed types fall back to "error".
func errorTypeName(err error) string {
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return name
	}
	return "error"
}
