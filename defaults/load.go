package defaults

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/buger/jsonparser"

	"github.com/teranos/gendefaults/errors"
)

// DefaultInputFile is the definitions file name used when none is configured.
const DefaultInputFile = "cbl-defaults.json"

// LoadRegistry reads and validates a definitions file. Any problem aborts
// the whole load; no partial registry is returned.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithHint(
			errors.WrapLoad(err, "failed to read definitions"),
			"pass --input or set input in gendefaults.toml")
	}

	r, err := ParseRegistry(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return r, nil
}

// ParseRegistry validates data against the definitions schema, then decodes
// it preserving document order.
func ParseRegistry(data []byte) (*Registry, error) {
	var probe interface{}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, errors.WrapLoad(err, "malformed JSON")
	}

	if err := ValidateSchema(data); err != nil {
		return nil, err
	}

	var entries []*Entry
	seen := make(map[string]bool)
	err := jsonparser.ObjectEach(data, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		name, err := jsonparser.ParseString(key)
		if err != nil {
			return errors.WrapLoad(err, "invalid entry name")
		}
		if seen[name] {
			return errors.NewLoadError("duplicate entry %q", name)
		}
		seen[name] = true

		if dataType != jsonparser.Object {
			return errors.NewLoadError("entry %q: expected an object, got %s", name, dataType)
		}
		e, err := decodeEntry(name, value)
		if err != nil {
			return errors.Wrapf(err, "entry %q", name)
		}
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, errors.WrapLoad(err, "failed to decode definitions")
	}

	return NewRegistry(entries...)
}

func decodeEntry(name string, data []byte) (*Entry, error) {
	e := &Entry{Name: name}
	hasConstants := false
	seen := fieldSet{}

	err := jsonparser.ObjectEach(data, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		if err := seen.add(key); err != nil {
			return err
		}
		switch string(key) {
		case "long_name":
			s, err := decodeString(value, dataType)
			if err != nil {
				return errors.Wrap(err, "long_name")
			}
			e.LongName = s
		case "ee":
			b, err := jsonparser.ParseBoolean(value)
			if err != nil || dataType != jsonparser.Boolean {
				return errors.NewLoadError("ee: expected true or false")
			}
			e.EE = b
		case "only_on":
			platforms, err := decodePlatforms(value, dataType)
			if err != nil {
				return errors.Wrap(err, "only_on")
			}
			e.OnlyOn = platforms
		case "constants":
			constants, err := decodeConstants(value, dataType)
			if err != nil {
				return err
			}
			e.Constants = constants
			hasConstants = true
		default:
			return errors.NewLoadError("unknown field %q", key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if e.LongName == "" {
		return nil, errors.NewLoadError("missing long_name")
	}
	if !hasConstants {
		return nil, errors.NewLoadError("missing constants")
	}
	return e, nil
}

func decodeConstants(data []byte, dataType jsonparser.ValueType) ([]*Constant, error) {
	if dataType != jsonparser.Array {
		return nil, errors.NewLoadError("constants: expected an array, got %s", dataType)
	}

	var constants []*Constant
	var firstErr error
	index := 0
	_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, _ int, err error) {
		defer func() { index++ }()
		if firstErr != nil {
			return
		}
		if err != nil {
			firstErr = err
			return
		}
		c, err := decodeConstant(value, dataType)
		if err != nil {
			firstErr = errors.Wrapf(err, "constants[%d]", index)
			return
		}
		constants = append(constants, c)
	})
	if err != nil {
		return nil, errors.WrapLoad(err, "constants")
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return constants, nil
}

func decodeConstant(data []byte, dataType jsonparser.ValueType) (*Constant, error) {
	if dataType != jsonparser.Object {
		return nil, errors.NewLoadError("expected an object, got %s", dataType)
	}

	c := NewConstant("", ConstantType{}, RawValue{}, "")
	var hasType, hasValue, hasDescription bool
	seen := fieldSet{}

	err := jsonparser.ObjectEach(data, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		if err := seen.add(key); err != nil {
			return err
		}
		k := string(key)
		switch {
		case k == "name":
			s, err := decodeString(value, dataType)
			if err != nil {
				return errors.Wrap(err, "name")
			}
			c.Name = s
		case k == "description":
			s, err := decodeString(value, dataType)
			if err != nil {
				return errors.Wrap(err, "description")
			}
			c.Description = s
			hasDescription = true
		case k == "references":
			s, err := decodeString(value, dataType)
			if err != nil {
				return errors.Wrap(err, "references")
			}
			c.References = s
		case k == "type":
			t, err := decodeType(value, dataType)
			if err != nil {
				return errors.Wrap(err, "type")
			}
			c.Type = t
			hasType = true
		case k == "value":
			v, err := decodeValue(value, dataType)
			if err != nil {
				return errors.Wrap(err, "value")
			}
			c.Value = v
			hasValue = true
		case k == "only_on":
			platforms, err := decodePlatforms(value, dataType)
			if err != nil {
				return errors.Wrap(err, "only_on")
			}
			c.OnlyOn = platforms
		case strings.HasPrefix(k, overridePrefix) && len(k) > len(overridePrefix):
			o, err := decodeOverride(value, dataType)
			if err != nil {
				return errors.Wrap(err, k)
			}
			c.Overrides.Set(Platform(strings.TrimPrefix(k, overridePrefix)), o)
		default:
			return errors.NewLoadError("unknown field %q", k)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch {
	case c.Name == "":
		return nil, errors.NewLoadError("missing name")
	case !hasType:
		return nil, errors.NewLoadError("%s: missing type", c.Name)
	case !hasValue:
		return nil, errors.NewLoadError("%s: missing value", c.Name)
	case !hasDescription:
		return nil, errors.NewLoadError("%s: missing description", c.Name)
	}
	return c, nil
}

// fieldSet rejects repeated keys, which JSON decoders otherwise resolve by
// keeping the last one.
type fieldSet map[string]bool

func (s fieldSet) add(key []byte) error {
	k := string(key)
	if s[k] {
		return errors.NewLoadError("duplicate field %q", k)
	}
	s[k] = true
	return nil
}

func decodeString(value []byte, dataType jsonparser.ValueType) (string, error) {
	if dataType != jsonparser.String {
		return "", errors.NewLoadError("expected a string, got %s", dataType)
	}
	s, err := jsonparser.ParseString(value)
	if err != nil {
		return "", errors.WrapLoad(err, "invalid string")
	}
	return s, nil
}

func decodePlatforms(value []byte, dataType jsonparser.ValueType) ([]Platform, error) {
	if dataType != jsonparser.Array {
		return nil, errors.NewLoadError("expected an array, got %s", dataType)
	}

	var platforms []Platform
	var firstErr error
	_, err := jsonparser.ArrayEach(value, func(item []byte, itemType jsonparser.ValueType, _ int, err error) {
		if firstErr != nil {
			return
		}
		if err != nil {
			firstErr = err
			return
		}
		s, err := decodeString(item, itemType)
		if err != nil {
			firstErr = err
			return
		}
		platforms = append(platforms, Platform(s))
	})
	if err != nil {
		return nil, errors.WrapLoad(err, "invalid array")
	}
	return platforms, firstErr
}

func decodeType(value []byte, dataType jsonparser.ValueType) (ConstantType, error) {
	if dataType != jsonparser.Object {
		return ConstantType{}, errors.NewLoadError("expected an object, got %s", dataType)
	}

	var doc typeDocument
	dec := json.NewDecoder(bytes.NewReader(value))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return ConstantType{}, errors.WrapLoad(err, "invalid type")
	}

	t := ConstantType{ID: doc.ID, Subset: doc.Subset}
	if t.Subset == "" {
		t.Subset = SubsetScalar
	}
	if err := t.Validate(); err != nil {
		return ConstantType{}, errors.Mark(err, errors.ErrLoad)
	}
	return t, nil
}

func decodeValue(value []byte, dataType jsonparser.ValueType) (RawValue, error) {
	if dataType != jsonparser.Object {
		scalar, err := decodeScalar(value, dataType)
		return RawValue{Scalar: scalar}, err
	}

	var v RawValue
	hasScalar := false
	seen := fieldSet{}
	err := jsonparser.ObjectEach(value, func(key, item []byte, itemType jsonparser.ValueType, _ int) error {
		if err := seen.add(key); err != nil {
			return err
		}
		switch string(key) {
		case "scalar":
			scalar, err := decodeScalar(item, itemType)
			if err != nil {
				return errors.Wrap(err, "scalar")
			}
			v.Scalar = scalar
			hasScalar = true
		case "unit":
			unit, err := decodeString(item, itemType)
			if err != nil {
				return errors.Wrap(err, "unit")
			}
			v.Unit = unit
		default:
			return errors.NewLoadError("unknown field %q", key)
		}
		return nil
	})
	if err != nil {
		return RawValue{}, err
	}
	if !hasScalar {
		return RawValue{}, errors.NewLoadError("missing scalar")
	}
	return v, nil
}

func decodeScalar(value []byte, dataType jsonparser.ValueType) (interface{}, error) {
	switch dataType {
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(value)
		if err != nil {
			return nil, errors.WrapLoad(err, "invalid boolean")
		}
		return b, nil
	case jsonparser.Number:
		return json.Number(string(value)), nil
	case jsonparser.String:
		return decodeString(value, dataType)
	default:
		return nil, errors.NewLoadError("expected a boolean, number or string, got %s", dataType)
	}
}

func decodeOverride(value []byte, dataType jsonparser.ValueType) (Override, error) {
	if dataType != jsonparser.Object {
		return Override{}, errors.NewLoadError("expected an object, got %s", dataType)
	}

	var o Override
	seen := fieldSet{}
	err := jsonparser.ObjectEach(value, func(key, item []byte, itemType jsonparser.ValueType, _ int) error {
		if err := seen.add(key); err != nil {
			return err
		}
		switch string(key) {
		case "type":
			t, err := decodeType(item, itemType)
			if err != nil {
				return errors.Wrap(err, "type")
			}
			o.Type = &t
		case "value":
			v, err := decodeValue(item, itemType)
			if err != nil {
				return errors.Wrap(err, "value")
			}
			o.Value = &v
		default:
			return errors.NewLoadError("unknown field %q", key)
		}
		return nil
	})
	if err != nil {
		return Override{}, err
	}
	if o.Type == nil && o.Value == nil {
		return Override{}, errors.WithHint(
			errors.NewLoadError("override sets neither type nor value"),
			`an override looks like {"type": {"id": "uint"}} or {"value": 5}`)
	}
	return o, nil
}
