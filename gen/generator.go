// Package gen turns a defaults registry into per-platform source files.
//
// # Architecture
//
// Generation is split in two layers:
//  1. Platform-agnostic collection (collect.go) filters entries by only_on,
//     resolves overrides and renders values through a platform ValueSyntax
//  2. Platform packages (gen/csharp, gen/objc, ...) lay the declarations out
//     into complete files through gen/layout templates
//
// Run renders every generator before writing anything, so a failure in one
// platform leaves every output directory untouched.
//
// # Implementing a New Generator
//
//  1. Create package gen/<platform> with a TypeTable, a ValueSyntax and templates
//  2. Implement the Generator interface
//  3. Register a Descriptor in gen/builtin
//  4. Add tests rendering a small registry and asserting on the output text
package gen

import (
	"sort"
	"time"

	"github.com/teranos/gendefaults/defaults"
)

// Generator produces the files for one platform.
type Generator interface {
	// Platform returns the identifier used in only_on lists, type_<platform>
	// keys and as the output subdirectory name
	Platform() defaults.Platform

	// Generate renders entries into complete files keyed by file name
	Generate(entries []*defaults.Entry) (Output, error)
}

// Output maps a file name to its complete contents.
type Output map[string]string

// Filenames returns the output file names, sorted.
func (o Output) Filenames() []string {
	names := make([]string, 0, len(o))
	for name := range o {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Options configure generator construction.
type Options struct {
	// Year stamped into license headers. Zero means the current year.
	Year int
}

// LicenseYear returns the configured year or the current one.
func (o Options) LicenseYear() int {
	if o.Year > 0 {
		return o.Year
	}
	return time.Now().Year()
}

// Constructor builds a generator.
type Constructor func(opts Options) Generator

// Descriptor describes a registered generator.
type Descriptor struct {
	Platform    defaults.Platform
	Description string
	// Files lists the file names the generator may produce.
	Files []string
	New   Constructor
}
