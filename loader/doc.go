// Copyright (c) 2025 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package loader provides format specific loaders for importing host
// connection configs from serialized files.
//
// Each loader separates "can this file be handled" from "import it":
// [Loader.Compatible] is a cheap, side effect free predicate while
// [Loader.Import] performs the fallible read, parse and schema check.
// This lets a caller probe several loaders via [Select] before
// committing to one.
package loader
