// Package errors derives low-cardinality class names from errors for metric
// tags and alert payloads.
package errors

import (
	"context"
	goerrors "errors"
	"reflect"
	"strings"
)

// Classed is implemented by errors that name their own class.
type Classed interface {
	ErrorClass() string
}

// Classify returns a normalized class name for err. The outermost error in
// the chain that implements Classed wins; context errors map to "canceled" and
// "timeout". Otherwise the innermost concrete type name is used, in
// snake_case-ish form.
func Classify(err error) string {
	if err == nil {
		return ""
	}

	var classed Classed
	if goerrors.As(err, &classed) {
		if class := strings.TrimSpace(classed.ErrorClass()); class != "" {
			return class
		}
	}
	switch {
	case goerrors.Is(err, context.Canceled):
		return "canceled"
	case goerrors.Is(err, context.DeadlineExceeded):
		return "timeout"
	}

	for {
		unwrapped := goerrors.Unwrap(err)
		if unwrapped == nil {
			break
		}
		err = unwrapped
	}

	t := reflect.TypeOf(err)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "unknown"
	}

	name := strings.ToLower(strings.ReplaceAll(t.String(), "*", ""))
	name = strings.ReplaceAll(name, ".", "_")
	if name == "" {
		return "unknown"
	}
	return name
}
