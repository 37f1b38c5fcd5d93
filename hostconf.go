// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package hostconf provides a small value type for host connection settings
// along with a validating accessor for guarding mutations of it.
//
// The package is built around the [Accessor] interface which represents
// anything capable of acting as a host connection config. Both the plain
// [Value] store and the validating [Guarded] wrapper implement it, so
// callers can read and write through either uniformly.
package hostconf

import (
	"fmt"
	"reflect"
)

// Accessor represents anything which can act as a host connection config.
//
// Any type implementing all four operations is accepted wherever a config
// is expected, independent of its concrete type. Implementations confine
// their side effects to their own state.
type Accessor interface {
	GetIP() string
	SetIP(string) error
	GetPort() int
	SetPort(int) error
}

// render formats a config under the concrete type name of v, in the
// same shape for every Accessor implementation.
func render(v any, ip string, port int) string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return fmt.Sprintf("%s(ip='%s', port=%d)", t.Name(), ip, port)
}
