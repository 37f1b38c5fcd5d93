// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package loader

import (
	"context"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

func TestJson_Compatible(t *testing.T) {
	t.Run("will report true", func(t *testing.T) {
		t.Run("if the path refers to a regular file with a .json extension", func(t *testing.T) {
			fsys := fstest.MapFS{
				"config.json": &fstest.MapFile{Data: []byte(`{}`)},
			}

			l := NewJson(FS(fsys))
			if !assert.True(t, l.Compatible("config.json")) {
				return
			}
		})
	})

	t.Run("will report false", func(t *testing.T) {
		t.Run("if the path has the wrong extension", func(t *testing.T) {
			fsys := fstest.MapFS{
				"config.yaml": &fstest.MapFile{Data: []byte(``)},
			}

			l := NewJson(FS(fsys))
			if !assert.False(t, l.Compatible("config.yaml")) {
				return
			}
		})

		t.Run("if the path does not exist", func(t *testing.T) {
			l := NewJson(FS(fstest.MapFS{}))
			if !assert.False(t, l.Compatible("missing.json")) {
				return
			}
		})

		t.Run("if the path refers to a directory", func(t *testing.T) {
			fsys := fstest.MapFS{
				"config.json": &fstest.MapFile{Mode: fs.ModeDir},
			}

			l := NewJson(FS(fsys))
			if !assert.False(t, l.Compatible("config.json")) {
				return
			}
		})
	})
}

func TestJson_Import(t *testing.T) {
	t.Run("will return a fully populated value", func(t *testing.T) {
		t.Run("if the file contains exactly the declared keys", func(t *testing.T) {
			fsys := fstest.MapFS{
				"config.json": &fstest.MapFile{
					Data: []byte(`{"ip": "1.2.3.4", "port": 80}`),
				},
			}

			l := NewJson(FS(fsys))
			v, err := l.Import(context.Background(), "config.json")
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Equal(t, "1.2.3.4", v.GetIP()) {
				return
			}
			if !assert.Equal(t, 80, v.GetPort()) {
				return
			}
		})
	})

	t.Run("will return an IOError", func(t *testing.T) {
		t.Run("if the file does not exist", func(t *testing.T) {
			l := NewJson(FS(fstest.MapFS{}))

			v, err := l.Import(context.Background(), "missing.json")
			if !assert.Nil(t, v) {
				return
			}

			var ioerr IOError
			if !assert.ErrorAs(t, err, &ioerr) {
				return
			}
			if !assert.Equal(t, "missing.json", ioerr.Path) {
				return
			}
			if !assert.NotNil(t, ioerr.Unwrap()) {
				return
			}
		})
	})

	t.Run("will return an InvalidJsonError", func(t *testing.T) {
		t.Run("if the file contains malformed JSON", func(t *testing.T) {
			fsys := fstest.MapFS{
				"config.json": &fstest.MapFile{
					Data: []byte(`{"ip": `),
				},
			}

			l := NewJson(FS(fsys))
			v, err := l.Import(context.Background(), "config.json")
			if !assert.Nil(t, v) {
				return
			}

			var jerr InvalidJsonError
			if !assert.ErrorAs(t, err, &jerr) {
				return
			}
			if !assert.NotEmpty(t, jerr.Error()) {
				return
			}
			if !assert.NotNil(t, jerr.Unwrap()) {
				return
			}
		})
	})

	t.Run("will return a SchemaMismatchError", func(t *testing.T) {
		t.Run("if the file contains an extra key", func(t *testing.T) {
			fsys := fstest.MapFS{
				"config.json": &fstest.MapFile{
					Data: []byte(`{"ip": "1.2.3.4", "port": 80, "extra": 1}`),
				},
			}

			l := NewJson(FS(fsys))
			v, err := l.Import(context.Background(), "config.json")
			if !assert.Nil(t, v) {
				return
			}

			var serr SchemaMismatchError
			if !assert.ErrorAs(t, err, &serr) {
				return
			}
			if !assert.Equal(t, []string{"extra"}, serr.Extra) {
				return
			}
			if !assert.Empty(t, serr.Missing) {
				return
			}
		})

		t.Run("if the file is missing a key", func(t *testing.T) {
			fsys := fstest.MapFS{
				"config.json": &fstest.MapFile{
					Data: []byte(`{"ip": "1.2.3.4"}`),
				},
			}

			l := NewJson(FS(fsys))
			v, err := l.Import(context.Background(), "config.json")
			if !assert.Nil(t, v) {
				return
			}

			var serr SchemaMismatchError
			if !assert.ErrorAs(t, err, &serr) {
				return
			}
			if !assert.Equal(t, []string{"port"}, serr.Missing) {
				return
			}
			if !assert.Empty(t, serr.Extra) {
				return
			}
		})
	})

	t.Run("will return a TypeCoercionError", func(t *testing.T) {
		t.Run("if a value does not match its declared field type", func(t *testing.T) {
			fsys := fstest.MapFS{
				"config.json": &fstest.MapFile{
					Data: []byte(`{"ip": 5, "port": "eighty"}`),
				},
			}

			l := NewJson(FS(fsys))
			v, err := l.Import(context.Background(), "config.json")
			if !assert.Nil(t, v) {
				return
			}

			var terr TypeCoercionError
			if !assert.ErrorAs(t, err, &terr) {
				return
			}
			if !assert.NotNil(t, terr.Unwrap()) {
				return
			}
		})
	})
}
