// Package csharp generates Defaults.cs for Couchbase Lite .NET.
package csharp

import (
	"embed"
	"fmt"

	"github.com/teranos/gendefaults/defaults"
	"github.com/teranos/gendefaults/gen"
	"github.com/teranos/gendefaults/gen/layout"
)

// FileName is the only file this generator writes.
const FileName = "Defaults.cs"

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = layout.MustParse(templateFS, "templates/*.tmpl")

// TypeTable maps semantic types to C# type names.
var TypeTable = gen.NewTypeTable(map[string]string{
	defaults.TypeBoolean:  "bool",
	defaults.TypeTimeSpan: "TimeSpan",
	defaults.TypeSizeT:    "long",
})

// Syntax spells C# literals.
var Syntax = gen.ValueSyntax{
	True:  "true",
	False: "false",
	Enum: func(typeID, member string) string {
		return typeID + "." + member
	},
	Seconds: func(seconds int64) string {
		return fmt.Sprintf("TimeSpan.FromSeconds(%d)", seconds)
	},
	UIntMax: "UInt32.MaxValue",
	IntMax:  "Int32.MaxValue",
}

// Generator writes one static class of readonly fields. EE entries are moved
// to the end and wrapped in a single #if COUCHBASE_ENTERPRISE block.
type Generator struct {
	year int
}

// New creates a C# generator
func New(opts gen.Options) gen.Generator {
	return &Generator{year: opts.LicenseYear()}
}

// Descriptor registers the generator.
var Descriptor = gen.Descriptor{
	Platform:    defaults.PlatformCSharp,
	Description: "Couchbase Lite .NET static readonly fields",
	Files:       []string{FileName},
	New:         New,
}

func (g *Generator) Platform() defaults.Platform { return defaults.PlatformCSharp }

func (g *Generator) Generate(entries []*defaults.Entry) (gen.Output, error) {
	collected, err := gen.Collect(gen.Dialect{
		Platform: defaults.PlatformCSharp,
		Types:    TypeTable,
		Values:   Syntax,
		SortByEE: true,
	}, entries)
	if err != nil {
		return nil, err
	}

	block := gen.EEBlock{Open: "#if COUCHBASE_ENTERPRISE\n\n", Close: "#endif\n\n"}
	var body []string
	for _, ed := range collected {
		if marker := block.Enter(ed.Entry.EE); marker != "" {
			body = append(body, marker)
		}
		for _, d := range ed.Declarations {
			body = append(body, declaration(ed.Entry, d))
		}
	}
	if marker := block.Finish(); marker != "" {
		body = append(body, marker)
	}

	out, err := templates.Render(FileName, layout.File{Name: FileName, Year: g.year, Body: body})
	if err != nil {
		return nil, err
	}
	return gen.Output{FileName: out}, nil
}

func declaration(e *defaults.Entry, d gen.Declaration) string {
	return fmt.Sprintf("\t/// <summary>\n"+
		"\t/// Default value for <see cref=\"%s.%s\" /> (%s)\n"+
		"\t/// %s\n"+
		"\t/// </summary>\n"+
		"\tpublic static readonly %s Default%s%s = %s;\n\n",
		e.LongName, d.Constant.ReferenceName(), d.Literal,
		d.Constant.Description,
		d.TypeName, e.Name, d.Constant.Name, d.Literal)
}
