// Package java generates Defaults.java for Couchbase Lite Java and Android.
//
// Java has no preprocessor, so Enterprise Edition entries go to a separate
// EnterpriseDefaults.java that only the EE source set compiles.
package java

import (
	"embed"
	"fmt"
	"math"
	"strings"

	"github.com/iancoleman/strcase"

	"github.com/teranos/gendefaults/defaults"
	"github.com/teranos/gendefaults/gen"
	"github.com/teranos/gendefaults/gen/layout"
)

// Output file names.
const (
	DefaultsFile   = "Defaults.java"
	EnterpriseFile = "EnterpriseDefaults.java"
)

// Package is the Java package of the generated classes.
const Package = "com.couchbase.lite"

const indent = "    "

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = layout.MustParse(templateFS, "templates/*.tmpl")

// TypeTable maps semantic types to Java types. Java has no unsigned
// integers, so uint and ushort widen to int.
var TypeTable = gen.NewTypeTable(map[string]string{
	defaults.TypeBoolean:  "boolean",
	defaults.TypeTimeSpan: "long",
	defaults.TypeUInt:     "int",
	defaults.TypeUShort:   "int",
	defaults.TypeSizeT:    "long",
})

// Syntax spells Java literals. Durations are long seconds. Every literal
// of Java type long carries the L suffix, and values too large for int
// are rejected rather than emitted as uncompilable source.
var Syntax = gen.ValueSyntax{
	True:  "true",
	False: "false",
	Enum: func(typeID, member string) string {
		return typeID + "." + strcase.ToScreamingSnake(member)
	},
	Seconds: func(seconds int64) string {
		return fmt.Sprintf("%dL", seconds)
	},
	UIntMax:    "Integer.MAX_VALUE",
	IntMax:     "Integer.MAX_VALUE",
	LongSuffix: "L",
	LongType:   "long",
	Limits:     map[string]int64{"int": math.MaxInt32},
}

// Generator writes one nested class per entry holding public static final
// fields named in SCREAMING_SNAKE_CASE.
type Generator struct {
	year int
}

// New creates a Java generator
func New(opts gen.Options) gen.Generator {
	return &Generator{year: opts.LicenseYear()}
}

// Descriptor registers the generator.
var Descriptor = gen.Descriptor{
	Platform:    defaults.PlatformJava,
	Description: "Couchbase Lite Java nested constant classes",
	Files:       []string{DefaultsFile, EnterpriseFile},
	New:         New,
}

func (g *Generator) Platform() defaults.Platform { return defaults.PlatformJava }

func (g *Generator) Generate(entries []*defaults.Entry) (gen.Output, error) {
	collected, err := gen.Collect(gen.Dialect{
		Platform: defaults.PlatformJava,
		Types:    TypeTable,
		Values:   Syntax,
	}, entries)
	if err != nil {
		return nil, err
	}

	var community, enterprise []string
	for _, ed := range collected {
		if len(ed.Declarations) == 0 {
			continue
		}
		if ed.Entry.EE {
			enterprise = append(enterprise, entryClass(ed))
		} else {
			community = append(community, entryClass(ed))
		}
	}

	out := gen.Output{}
	text, err := g.render(DefaultsFile, "Defaults",
		"Default values for Couchbase Lite configuration classes.", community)
	if err != nil {
		return nil, err
	}
	out[DefaultsFile] = text

	if len(enterprise) > 0 {
		text, err := g.render(EnterpriseFile, "EnterpriseDefaults",
			"Default values for Couchbase Lite Enterprise Edition configuration classes.", enterprise)
		if err != nil {
			return nil, err
		}
		out[EnterpriseFile] = text
	}
	return out, nil
}

func (g *Generator) render(file, class, summary string, body []string) (string, error) {
	return templates.Render("java", layout.File{
		Name: file,
		Year: g.year,
		Body: body,
		Data: map[string]interface{}{
			"Package": Package,
			"Imports": []string(nil),
			"Class":   class,
			"Summary": summary,
		},
	})
}

// FieldName is the Java constant name for a constant.
func FieldName(name string) string {
	return strcase.ToScreamingSnake(name)
}

func entryClass(ed gen.EntryDeclarations) string {
	var b strings.Builder
	fmt.Fprintf(&b, "public static final class %s {\n", ed.Entry.Name)
	fmt.Fprintf(&b, "%sprivate %s() { }\n", indent, ed.Entry.Name)
	for _, d := range ed.Declarations {
		fmt.Fprintf(&b, "\n%s/**\n", indent)
		fmt.Fprintf(&b, "%s * Default value for %s.%s (%s)\n", indent, ed.Entry.LongName, d.Constant.ReferenceName(), d.Literal)
		fmt.Fprintf(&b, "%s * %s\n", indent, d.Constant.Description)
		fmt.Fprintf(&b, "%s */\n", indent)
		fmt.Fprintf(&b, "%spublic static final %s %s = %s;\n", indent, d.TypeName, FieldName(d.Constant.Name), d.Literal)
	}
	b.WriteString("}\n")
	return layout.Indent(b.String(), indent) + "\n"
}
