// Package c generates the CBLDefaults header and implementation for the
// Couchbase Lite C API.
package c

import (
	"embed"
	"fmt"

	"github.com/teranos/gendefaults/defaults"
	"github.com/teranos/gendefaults/gen"
	"github.com/teranos/gendefaults/gen/layout"
)

// Output file names.
const (
	HeaderFile = "CBLDefaults.h"
	ImplFile   = "CBLDefaults_CAPI.cc"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = layout.MustParse(templateFS, "templates/*.tmpl")

// TypeTable maps semantic types to C type names.
var TypeTable = gen.NewTypeTable(map[string]string{
	defaults.TypeBoolean:  "bool",
	defaults.TypeLong:     "int64_t",
	defaults.TypeTimeSpan: "unsigned",
	defaults.TypeUInt:     "unsigned",
	defaults.TypeUShort:   "uint16_t",
	"ReplicatorType":      "CBLReplicatorType",
})

// Syntax spells C literals. Durations are whole seconds.
var Syntax = gen.ValueSyntax{
	True:  "true",
	False: "false",
	Enum: func(typeID, member string) string {
		return "kCBL" + typeID + member
	},
	Seconds:          gen.SecondsAsInteger,
	UIntMax:          "UINT_MAX",
	IntMax:           "INT_MAX",
	NegativeOneIsMax: true,
}

// Generator writes CBL_PUBLIC extern declarations and their definitions,
// in document order.
type Generator struct {
	year int
}

// New creates a C generator
func New(opts gen.Options) gen.Generator {
	return &Generator{year: opts.LicenseYear()}
}

// Descriptor registers the generator.
var Descriptor = gen.Descriptor{
	Platform:    defaults.PlatformC,
	Description: "Couchbase Lite C exported constants",
	Files:       []string{HeaderFile, ImplFile},
	New:         New,
}

func (g *Generator) Platform() defaults.Platform { return defaults.PlatformC }

func (g *Generator) Generate(entries []*defaults.Entry) (gen.Output, error) {
	collected, err := gen.Collect(gen.Dialect{
		Platform: defaults.PlatformC,
		Types:    TypeTable,
		Values:   Syntax,
	}, entries)
	if err != nil {
		return nil, err
	}

	headerBlock := gen.EEBlock{Open: "#ifdef COUCHBASE_ENTERPRISE\n\n", Close: "#endif\n\n"}
	implBlock := gen.EEBlock{Open: "#ifdef COUCHBASE_ENTERPRISE\n", Close: "#endif\n"}
	var header, impl []string
	for _, ed := range collected {
		header = append(header, headerBlock.Enter(ed.Entry.EE))
		impl = append(impl, implBlock.Enter(ed.Entry.EE))
		for _, d := range ed.Declarations {
			name := gen.CStyleName(ed.Entry.Name, d.Constant.Name)
			header = append(header, fmt.Sprintf("/** [%s] %s */\nCBL_PUBLIC extern const %s %s;\n\n",
				d.Literal, d.Constant.Description, d.TypeName, name))
			impl = append(impl, fmt.Sprintf("const %s %s = %s;\n", d.TypeName, name, d.Literal))
		}
	}
	header = append(header, headerBlock.Finish())
	impl = append(impl, implBlock.Finish())

	headerText, err := templates.Render(HeaderFile, layout.File{Name: HeaderFile, Year: g.year, Body: header})
	if err != nil {
		return nil, err
	}
	implText, err := templates.Render(ImplFile, layout.File{Name: ImplFile, Year: g.year, Body: impl})
	if err != nil {
		return nil, err
	}
	return gen.Output{HeaderFile: headerText, ImplFile: implText}, nil
}
