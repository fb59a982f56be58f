package defaults

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"github.com/xeipuuv/gojsonschema"

	"github.com/teranos/gendefaults/errors"
)

const (
	schemaDraft07 = "http://json-schema.org/draft-07/schema#"
	schemaID      = "https://github.com/teranos/gendefaults/defaults.schema.json"

	overridePrefix  = "type_"
	overridePattern = "^type_[a-z][a-z0-9]*$"
)

// Document shapes of the definitions file. They exist to generate the
// JSON Schema; decoding goes through the ordered decoder in load.go.

type entryDocument struct {
	LongName  string             `json:"long_name" jsonschema:"required,minLength=1" jsonschema_description:"Fully qualified name of the owning class"`
	EE        bool               `json:"ee,omitempty" jsonschema_description:"Enterprise Edition only"`
	OnlyOn    []string           `json:"only_on,omitempty" jsonschema_description:"Platforms this entry is emitted for. Empty means all"`
	Constants []constantDocument `json:"constants" jsonschema:"required"`
}

type constantDocument struct {
	Name        string        `json:"name" jsonschema:"required,minLength=1"`
	Type        typeDocument  `json:"type" jsonschema:"required"`
	Value       valueDocument `json:"value" jsonschema:"required"`
	Description string        `json:"description" jsonschema:"required"`
	References  string        `json:"references,omitempty" jsonschema_description:"Documented member name. Defaults to name"`
	OnlyOn      []string      `json:"only_on,omitempty"`
}

type typeDocument struct {
	ID     string `json:"id" jsonschema:"required,minLength=1"`
	Subset string `json:"subset,omitempty" jsonschema:"enum=scalar,enum=enum"`
}

type valueDocument struct{}

type overrideDocument struct {
	Type  *typeDocument  `json:"type,omitempty"`
	Value *valueDocument `json:"value,omitempty"`
}

func scalarSchemas() []*jsonschema.Schema {
	return []*jsonschema.Schema{
		{Type: "boolean"},
		{Type: "number"},
		{Type: "string"},
	}
}

// JSONSchema describes a bare scalar or a {scalar, unit} object.
func (valueDocument) JSONSchema() *jsonschema.Schema {
	props := orderedmap.New[string, *jsonschema.Schema]()
	props.Set("scalar", &jsonschema.Schema{OneOf: scalarSchemas()})
	props.Set("unit", &jsonschema.Schema{Type: "string"})

	return &jsonschema.Schema{
		OneOf: append(scalarSchemas(), &jsonschema.Schema{
			Type:                 "object",
			Properties:           props,
			Required:             []string{"scalar"},
			AdditionalProperties: jsonschema.FalseSchema,
		}),
	}
}

// JSONSchemaExtend admits the type_<platform> override keys.
func (constantDocument) JSONSchemaExtend(s *jsonschema.Schema) {
	s.PatternProperties = map[string]*jsonschema.Schema{
		overridePattern: reflectSchema(&overrideDocument{}),
	}
}

func newReflector() *jsonschema.Reflector {
	return &jsonschema.Reflector{
		Anonymous:                  true,
		DoNotReference:             true,
		ExpandedStruct:             true,
		RequiredFromJSONSchemaTags: true,
	}
}

func reflectSchema(v interface{}) *jsonschema.Schema {
	s := newReflector().Reflect(v)
	s.Version = ""
	s.ID = ""
	return s
}

// Schema returns the JSON Schema (draft-07) of the definitions file.
func Schema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Version:              schemaDraft07,
		ID:                   schemaID,
		Title:                "gendefaults definitions",
		Description:          "Default values keyed by entry name",
		Type:                 "object",
		AdditionalProperties: reflectSchema(&entryDocument{}),
	}
}

// SchemaJSON returns Schema as indented JSON.
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal schema")
	}
	return data, nil
}

var compiled struct {
	once   sync.Once
	schema *gojsonschema.Schema
	err    error
}

func compiledSchema() (*gojsonschema.Schema, error) {
	compiled.once.Do(func() {
		data, err := SchemaJSON()
		if err != nil {
			compiled.err = err
			return
		}
		loader := gojsonschema.NewSchemaLoader()
		loader.Draft = gojsonschema.Draft7
		loader.AutoDetect = false
		compiled.schema, compiled.err = loader.Compile(gojsonschema.NewBytesLoader(data))
		if compiled.err != nil {
			compiled.err = errors.Wrap(compiled.err, "failed to compile definitions schema")
		}
	})
	return compiled.schema, compiled.err
}

// ValidateSchema checks data against the definitions schema and reports every
// violation with its path.
func ValidateSchema(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return errors.WrapLoad(err, "failed to validate definitions")
	}
	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		violations = append(violations, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	sort.Strings(violations)

	err = errors.NewLoadError("definitions do not match the schema: %s", strings.Join(violations, "; "))
	return errors.WithHint(err, "run `gendefaults schema` to print the expected structure")
}
