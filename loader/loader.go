// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"reflect"
	"sort"

	"github.com/z5labs/hostconf"
	"github.com/z5labs/hostconf/internal/try"

	"github.com/go-viper/mapstructure/v2"
	"go.uber.org/zap"
)

// Loader represents anything which can probe and import host connection
// config files of a specific serialized format.
type Loader interface {
	// Compatible reports whether path refers to an existing regular
	// file this loader knows how to import. It never parses the file
	// and never fails.
	Compatible(path string) bool

	// Import reads the file at path and returns a fully populated
	// config value. It either succeeds completely or returns an
	// error; a partially populated value is never returned.
	Import(ctx context.Context, path string) (*hostconf.Value, error)
}

// Select returns the first of the given loaders which reports path as
// compatible, along with whether any loader was selected at all.
func Select(path string, loaders ...Loader) (Loader, bool) {
	for _, l := range loaders {
		if l.Compatible(path) {
			return l, true
		}
	}
	return nil, false
}

// IOError occurs if the config file can not be opened or read.
type IOError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e IOError) Error() string {
	return fmt.Sprintf("failed to read config file %s: %s", e.Path, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e IOError) Unwrap() error {
	return e.Cause
}

// SchemaMismatchError occurs if the deserialized mapping's key set does
// not exactly equal the declared config fields.
type SchemaMismatchError struct {
	Missing []string
	Extra   []string
}

// Error implements the error interface.
func (e SchemaMismatchError) Error() string {
	return fmt.Sprintf("config keys do not match declared fields: missing %v, extra %v", e.Missing, e.Extra)
}

// TypeCoercionError occurs when a deserialized value can not be assigned
// to its config field because the types do not match, up to, coercion.
type TypeCoercionError struct {
	Cause error
}

// Error implements the error interface.
func (e TypeCoercionError) Error() string {
	return fmt.Sprintf("failed to coerce config value: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e TypeCoercionError) Unwrap() error {
	return e.Cause
}

// LoadError wraps any otherwise unclassified failure, including
// recovered panics, encountered while importing a config file.
type LoadError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e LoadError) Error() string {
	return fmt.Sprintf("failed to load config file %s: %s", e.Path, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e LoadError) Unwrap() error {
	return e.Cause
}

type options struct {
	fsys fs.FS
	log  *zap.Logger
}

func newOptions(opts ...Option) options {
	o := options{
		fsys: osFS{},
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Option configures a loader.
type Option func(*options)

// FS sets the fs.FS which config files are opened from. It defaults to
// the host OS filesystem.
func FS(fsys fs.FS) Option {
	return func(o *options) {
		o.fsys = fsys
	}
}

// Logger sets the *zap.Logger which import failures are logged with.
// It defaults to a nop logger.
func Logger(log *zap.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// osFS adapts the host OS filesystem to fs.FS so loaders can accept
// arbitrary OS paths by default while remaining testable against any
// other fs.FS.
type osFS struct{}

func (osFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

func (osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func compatible(fsys fs.FS, name, ext string) bool {
	if path.Ext(name) != ext {
		return false
	}
	info, err := fs.Stat(fsys, name)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

type unmarshalFunc func([]byte) (map[string]any, error)

func importFile(fsys fs.FS, name string, unmarshal unmarshalFunc) (v *hostconf.Value, err error) {
	defer func() {
		var perr try.PanicError
		if errors.As(err, &perr) {
			v = nil
			err = LoadError{Path: name, Cause: perr}
		}
	}()
	defer try.Recover(&err)

	b, err := readFile(fsys, name)
	if err != nil {
		return nil, IOError{Path: name, Cause: err}
	}

	m, err := unmarshal(b)
	if err != nil {
		return nil, err
	}

	err = checkKeys(m)
	if err != nil {
		return nil, err
	}
	return decodeValue(m)
}

func readFile(fsys fs.FS, name string) (_ []byte, err error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer try.Close(&err, f)
	return io.ReadAll(f)
}

// declaredKeys returns the config keys declared by the field tags
// of [hostconf.Value].
func declaredKeys() map[string]struct{} {
	t := reflect.TypeOf(hostconf.Value{})
	keys := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("config")
		if tag == "" || tag == "-" {
			continue
		}
		keys[tag] = struct{}{}
	}
	return keys
}

func checkKeys(m map[string]any) error {
	declared := declaredKeys()

	var extra []string
	for k := range m {
		if _, ok := declared[k]; ok {
			delete(declared, k)
			continue
		}
		extra = append(extra, k)
	}

	var missing []string
	for k := range declared {
		missing = append(missing, k)
	}

	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	sort.Strings(missing)
	sort.Strings(extra)
	return SchemaMismatchError{Missing: missing, Extra: extra}
}

func decodeValue(m map[string]any) (*hostconf.Value, error) {
	var v hostconf.Value
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "config",
		Result:  &v,
	})
	if err != nil {
		return nil, err
	}

	err = dec.Decode(m)
	if err != nil {
		return nil, TypeCoercionError{Cause: err}
	}
	return &v, nil
}
