// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"

	"github.com/z5labs/hostconf"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Json imports host connection configs from JSON files.
type Json struct {
	fsys fs.FS
	log  *zap.Logger
}

// NewJson returns a fully initialized Json loader.
func NewJson(opts ...Option) Json {
	o := newOptions(opts...)
	return Json{
		fsys: o.fsys,
		log:  o.log,
	}
}

// InvalidJsonError occurs if the config file contains invalid JSON.
type InvalidJsonError struct {
	cause error
}

// Error implements the error interface.
func (e InvalidJsonError) Error() string {
	return fmt.Sprintf("invalid json: %s", e.cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e InvalidJsonError) Unwrap() error {
	return e.cause
}

// Compatible implements the Loader interface. It reports true iff path
// refers to an existing regular file with a .json extension.
func (l Json) Compatible(path string) bool {
	return compatible(l.fsys, path, ".json")
}

// Import implements the Loader interface.
func (l Json) Import(ctx context.Context, path string) (*hostconf.Value, error) {
	_, span := otel.Tracer("loader").Start(ctx, "Json.Import", trace.WithAttributes(
		attribute.String("config.path", path),
	))
	defer span.End()

	v, err := importFile(l.fsys, path, func(b []byte) (map[string]any, error) {
		m := make(map[string]any)
		err := json.Unmarshal(b, &m)
		if err != nil {
			return nil, InvalidJsonError{cause: err}
		}
		return m, nil
	})
	if err != nil {
		span.RecordError(err)
		l.log.Error("failed to import json config", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	return v, nil
}
