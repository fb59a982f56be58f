// Package objc generates CBLDefaults.h and CBLDefaults.m for Couchbase Lite iOS.
package objc

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
	ImplFile   = "CBLDefaults.m"
)

const (
	eeOpen  = "#ifdef COUCHBASE_ENTERPRISE\n"
	eeClose = "#endif\n"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = layout.MustParse(templateFS, "templates/*.tmpl")

// TypeTable maps semantic types to Objective-C type names.
var TypeTable = gen.NewTypeTable(map[string]string{
	defaults.TypeBoolean:  "BOOL",
	defaults.TypeTimeSpan: "NSTimeInterval",
	defaults.TypeSizeT:    "uint64_t",
	defaults.TypeUShort:   "unsigned short",
	"ReplicatorType":      "CBLReplicatorType",
})

// Syntax spells Objective-C literals. NSTimeInterval is in seconds.
var Syntax = gen.ValueSyntax{
	True:  "YES",
	False: "NO",
	Enum: func(typeID, member string) string {
		return "kCBL" + typeID + member
	},
	Seconds:          gen.SecondsAsInteger,
	UIntMax:          "UINT_MAX",
	IntMax:           "INT_MAX",
	NegativeOneIsMax: true,
}

// Generator writes extern declarations to the header and definitions to
// the implementation, in document order.
type Generator struct {
	year int
}

// New creates an Objective-C generator
func New(opts gen.Options) gen.Generator {
	return &Generator{year: opts.LicenseYear()}
}

// Descriptor registers the generator.
var Descriptor = gen.Descriptor{
	Platform:    defaults.PlatformObjC,
	Description: "Couchbase Lite iOS extern constants",
	Files:       []string{HeaderFile, ImplFile},
	New:         New,
}

func (g *Generator) Platform() defaults.Platform { return defaults.PlatformObjC }

func (g *Generator) Generate(entries []*defaults.Entry) (gen.Output, error) {
	collected, err := gen.Collect(gen.Dialect{
		Platform: defaults.PlatformObjC,
		Types:    TypeTable,
		Values:   Syntax,
	}, entries)
	if err != nil {
		return nil, err
	}

	headerBlock := gen.EEBlock{Open: eeOpen + "\n", Close: eeClose + "\n"}
	implBlock := gen.EEBlock{Open: eeOpen, Close: eeClose}
	var header, impl []string
	for _, ed := range collected {
		if marker := headerBlock.Enter(ed.Entry.EE); marker != "" {
			header = append(header, marker)
		}
		if marker := implBlock.Enter(ed.Entry.EE); marker != "" {
			impl = append(impl, marker)
		}
		for _, d := range ed.Declarations {
			name := gen.CStyleName(ed.Entry.Name, d.Constant.Name)
			header = append(header, fmt.Sprintf("/** [%s] %s */\nextern const %s %s;\n\n",
				d.Literal, d.Constant.Description, d.TypeName, name))
			impl = append(impl, fmt.Sprintf("const %s %s = %s;\n", d.TypeName, name, d.Literal))
		}
	}
	header = append(header, headerBlock.Finish())
	impl = append(impl, implBlock.Finish())

	out := gen.Output{}
	files := []struct {
		name    string
		body    []string
		include string
	}{
		{HeaderFile, header, "CBLReplicatorTypes.h"},
		{ImplFile, impl, HeaderFile},
	}
	for _, f := range files {
		text, err := templates.Render("CBLDefaults", layout.File{
			Name: f.name,
			Year: g.year,
			Body: f.body,
			Data: map[string]interface{}{"Import": f.include},
		})
		if err != nil {
			return nil, err
		}
		out[f.name] = text
	}
	return out, nil
}
