// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package loader

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/z5labs/hostconf"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Yaml imports host connection configs from YAML files.
type Yaml struct {
	fsys fs.FS
	log  *zap.Logger
}

// NewYaml returns a fully initialized Yaml loader.
func NewYaml(opts ...Option) Yaml {
	o := newOptions(opts...)
	return Yaml{
		fsys: o.fsys,
		log:  o.log,
	}
}

// InvalidYamlError occurs if the config file contains invalid YAML.
type InvalidYamlError struct {
	cause error
}

// Error implements the error interface.
func (e InvalidYamlError) Error() string {
	return fmt.Sprintf("invalid yaml: %s", e.cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e InvalidYamlError) Unwrap() error {
	return e.cause
}

// Compatible implements the Loader interface. It reports true iff path
// refers to an existing regular file with a .yaml extension.
func (l Yaml) Compatible(path string) bool {
	return compatible(l.fsys, path, ".yaml")
}

// Import implements the Loader interface.
func (l Yaml) Import(ctx context.Context, path string) (*hostconf.Value, error) {
	_, span := otel.Tracer("loader").Start(ctx, "Yaml.Import", trace.WithAttributes(
		attribute.String("config.path", path),
	))
	defer span.End()

	v, err := importFile(l.fsys, path, func(b []byte) (map[string]any, error) {
		m := make(map[string]any)
		err := yaml.Unmarshal(b, &m)
		if err != nil {
			return nil, InvalidYamlError{cause: err}
		}
		return m, nil
	})
	if err != nil {
		span.RecordError(err)
		l.log.Error("failed to import yaml config", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	return v, nil
}
