// Package defaults models the default-value definitions that gendefaults
// turns into source code: typed constants with per-platform overrides,
// grouped into entries and loaded from one JSON document.
package defaults

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/teranos/gendefaults/errors"
)

// Platform identifies a generator target, e.g. "csharp" or "objc".
type Platform string

// Built-in platform identifiers.
const (
	PlatformCSharp Platform = "csharp"
	PlatformObjC   Platform = "objc"
	PlatformJava   Platform = "java"
	PlatformC      Platform = "c"
)

func (p Platform) String() string { return string(p) }

// Type identifiers of the scalar vocabulary. Enum types use arbitrary ids.
const (
	TypeBoolean  = "boolean"
	TypeInt      = "int"
	TypeLong     = "long"
	TypeTimeSpan = "TimeSpan"
	TypeUInt     = "uint"
	TypeUShort   = "ushort"
	TypeSizeT    = "size_t"
)

// Subsets of ConstantType.
const (
	SubsetScalar = "scalar"
	SubsetEnum   = "enum"
)

// MaxSentinel is the scalar that stands for the maximum value of int and uint.
const MaxSentinel = "max"

// UnitSeconds is the only duration unit generators know how to render.
const UnitSeconds = "seconds"

var scalarTypes = map[string]bool{
	TypeBoolean:  true,
	TypeInt:      true,
	TypeLong:     true,
	TypeTimeSpan: true,
	TypeUInt:     true,
	TypeUShort:   true,
	TypeSizeT:    true,
}

// ScalarTypes returns the non-enum type vocabulary, sorted.
func ScalarTypes() []string {
	ids := make([]string, 0, len(scalarTypes))
	for id := range scalarTypes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ConstantType is a semantic type id plus its subset. For the enum subset the
// id names a platform enum type and is not checked against the vocabulary.
type ConstantType struct {
	ID     string
	Subset string
}

// IsEnum reports whether the type belongs to the enum subset.
func (t ConstantType) IsEnum() bool { return t.Subset == SubsetEnum }

// IsDuration reports whether values of this type carry a unit.
func (t ConstantType) IsDuration() bool { return !t.IsEnum() && t.ID == TypeTimeSpan }

// IsBoolean reports whether the type is the scalar boolean.
func (t ConstantType) IsBoolean() bool { return !t.IsEnum() && t.ID == TypeBoolean }

func (t ConstantType) String() string {
	if t.IsEnum() {
		return t.ID + " (enum)"
	}
	return t.ID
}

// Validate checks the id against the scalar vocabulary.
func (t ConstantType) Validate() error {
	if t.ID == "" {
		return errors.New("type id is empty")
	}
	switch t.Subset {
	case SubsetEnum:
		return nil
	case SubsetScalar, "":
	default:
		return errors.Newf("unknown type subset %q", t.Subset)
	}
	if !scalarTypes[t.ID] {
		return errors.WithHintf(errors.Newf("unknown type %q", t.ID),
			"known types: %s, or set \"subset\": \"enum\"", strings.Join(ScalarTypes(), ", "))
	}
	return nil
}

// RawValue is a value as written in the definitions file, before it is
// checked against a type. Scalar is a bool, json.Number or string.
type RawValue struct {
	Scalar interface{}
	Unit   string
}

// ConstantValue is a value validated against its resolved type.
type ConstantValue struct {
	scalar   interface{}
	unit     string
	duration time.Duration
}

// NewConstantValue validates raw against t. Duration types require the
// "seconds" unit and fail with ErrUnknownUnit otherwise.
func NewConstantValue(t ConstantType, raw RawValue) (ConstantValue, error) {
	v := ConstantValue{scalar: raw.Scalar, unit: raw.Unit}

	switch {
	case t.IsEnum():
		if _, ok := raw.Scalar.(string); !ok {
			return ConstantValue{}, invalidValue(t, raw, "enum members are strings")
		}

	case t.IsDuration():
		if raw.Unit != UnitSeconds {
			return ConstantValue{}, errors.WithHint(
				errors.Mark(errors.Newf("unknown timespan unit %q", raw.Unit), errors.ErrUnknownUnit),
				`only "seconds" is supported`)
		}
		n, ok := raw.Scalar.(json.Number)
		if !ok {
			return ConstantValue{}, invalidValue(t, raw, "durations are numbers")
		}
		d, err := secondsToDuration(n)
		if err != nil {
			return ConstantValue{}, invalidValue(t, raw, err.Error())
		}
		v.duration = d

	case t.IsBoolean():
		if _, ok := raw.Scalar.(bool); !ok {
			return ConstantValue{}, invalidValue(t, raw, "booleans are true or false")
		}

	case scalarTypes[t.ID]:
		if s, ok := raw.Scalar.(string); ok {
			if s == MaxSentinel && (t.ID == TypeInt || t.ID == TypeUInt) {
				break
			}
			return ConstantValue{}, invalidValue(t, raw, `integers are numbers or "max" for int and uint`)
		}
		n, ok := raw.Scalar.(json.Number)
		if !ok {
			return ConstantValue{}, invalidValue(t, raw, "integers are numbers")
		}
		if _, err := n.Int64(); err != nil {
			return ConstantValue{}, invalidValue(t, raw, "integers have no fraction or exponent")
		}
	}

	return v, nil
}

// maxSeconds is the largest whole number of seconds a time.Duration holds.
const maxSeconds = int64(math.MaxInt64 / time.Second)

// secondsToDuration converts a number of seconds, parsing whole numbers
// exactly and using floating point only for fractions.
func secondsToDuration(n json.Number) (time.Duration, error) {
	if whole, err := n.Int64(); err == nil {
		if whole > maxSeconds || whole < -maxSeconds {
			return 0, errors.Newf("durations are limited to %d seconds", maxSeconds)
		}
		return time.Duration(whole) * time.Second, nil
	}

	secs, err := n.Float64()
	if err != nil || math.IsNaN(secs) || math.IsInf(secs, 0) {
		return 0, errors.New("durations are numbers")
	}
	if math.Abs(secs) >= float64(maxSeconds) {
		return 0, errors.Newf("durations are limited to %d seconds", maxSeconds)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

func invalidValue(t ConstantType, raw RawValue, hint string) error {
	return errors.WithHint(
		errors.Mark(errors.Newf("value %v does not fit type %s", raw.Scalar, t), errors.ErrInvalidValue),
		hint)
}

// Scalar returns the value as written: bool, json.Number or string.
func (v ConstantValue) Scalar() interface{} { return v.scalar }

// Unit returns the unit of a duration value, empty otherwise.
func (v ConstantValue) Unit() string { return v.unit }

// Duration returns the normalised duration of a duration value.
func (v ConstantValue) Duration() time.Duration { return v.duration }

// WholeSeconds returns the duration truncated to whole seconds.
func (v ConstantValue) WholeSeconds() int64 { return int64(v.duration / time.Second) }

// Bool returns the boolean scalar.
func (v ConstantValue) Bool() (bool, bool) {
	b, ok := v.scalar.(bool)
	return b, ok
}

// IsMax reports whether the value is the "max" sentinel.
func (v ConstantValue) IsMax() bool {
	s, ok := v.scalar.(string)
	return ok && s == MaxSentinel
}

// Int64 returns a numeric scalar as an integer.
func (v ConstantValue) Int64() (int64, bool) {
	n, ok := v.scalar.(json.Number)
	if !ok {
		return 0, false
	}
	i, err := n.Int64()
	return i, err == nil
}

// IsNegativeOne reports whether the value is the number -1.
func (v ConstantValue) IsNegativeOne() bool {
	i, ok := v.Int64()
	return ok && i == -1
}

// String returns the plain textual form of the scalar.
func (v ConstantValue) String() string {
	switch s := v.scalar.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		return fmt.Sprint(s)
	}
}
