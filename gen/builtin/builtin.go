// Package builtin wires the generators that ship with gendefaults.
package builtin

import (
	"github.com/teranos/gendefaults/gen"
	cgen "github.com/teranos/gendefaults/gen/c"
	"github.com/teranos/gendefaults/gen/csharp"
	"github.com/teranos/gendefaults/gen/java"
	"github.com/teranos/gendefaults/gen/objc"
)

// Descriptors lists the built-in generators. Adding a platform is one line here.
var Descriptors = []gen.Descriptor{
	csharp.Descriptor,
	objc.Descriptor,
	java.Descriptor,
	cgen.Descriptor,
}

// Registry returns a registry holding every built-in generator.
func Registry() *gen.Registry {
	r := gen.NewRegistry()
	for _, d := range Descriptors {
		r.MustRegister(d)
	}
	return r
}
