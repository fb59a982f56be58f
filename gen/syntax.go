package gen

import (
	"strconv"

	"github.com/teranos/gendefaults/defaults"
	"github.com/teranos/gendefaults/errors"
)

// TypeTable maps semantic type ids to platform type names. Ids missing from
// the table pass through unchanged unless the table is strict.
type TypeTable struct {
	names  map[string]string
	strict bool
}

// NewTypeTable returns a pass-through table over names.
func NewTypeTable(names map[string]string) TypeTable {
	copied := make(map[string]string, len(names))
	for k, v := range names {
		copied[k] = v
	}
	return TypeTable{names: copied}
}

// Strict returns a copy of t that rejects unmapped ids with ErrUnmappedType.
func (t TypeTable) Strict() TypeTable {
	return TypeTable{names: t.names, strict: true}
}

// Map returns the platform spelling of ct.
func (t TypeTable) Map(ct defaults.ConstantType) (string, error) {
	if name, ok := t.names[ct.ID]; ok {
		return name, nil
	}
	if t.strict {
		return "", errors.Mark(errors.Newf("no platform type for %s", ct), errors.ErrUnmappedType)
	}
	return ct.ID, nil
}

// ValueSyntax holds the literal spellings of one platform.
type ValueSyntax struct {
	True  string
	False string
	// Enum spells a member of an enum type, e.g. "ReplicatorType.PushAndPull".
	Enum func(typeID, member string) string
	// Seconds spells a duration of whole seconds.
	Seconds func(seconds int64) string
	// UIntMax and IntMax replace the "max" sentinel.
	UIntMax string
	IntMax  string
	// NegativeOneIsMax makes -1 on uint mean UIntMax as well.
	NegativeOneIsMax bool
	// LongSuffix is appended to integer literals whose platform type is
	// LongType.
	LongSuffix string
	LongType   string
	// Limits caps integer literals by platform type name. Values above the
	// limit fail with ErrInvalidValue.
	Limits map[string]int64
}

// SecondsAsInteger renders durations as a bare number of seconds.
func SecondsAsInteger(seconds int64) string {
	return strconv.FormatInt(seconds, 10)
}

// Render returns the platform literal for v, which must have been
// constructed against t. typeName is the platform spelling of t.
func (s ValueSyntax) Render(t defaults.ConstantType, typeName string, v defaults.ConstantValue) (string, error) {
	switch {
	case t.IsEnum():
		return s.Enum(t.ID, v.String()), nil

	case t.IsBoolean():
		b, ok := v.Bool()
		if !ok {
			return "", errors.Mark(errors.Newf("value %s is not a boolean", v), errors.ErrInvalidValue)
		}
		if b {
			return s.True, nil
		}
		return s.False, nil

	case t.IsDuration():
		if v.Unit() != defaults.UnitSeconds {
			return "", errors.Mark(errors.Newf("unknown timespan unit %q", v.Unit()), errors.ErrUnknownUnit)
		}
		return s.Seconds(v.WholeSeconds()), nil

	case t.ID == defaults.TypeUInt:
		if v.IsMax() || (s.NegativeOneIsMax && v.IsNegativeOne()) {
			return s.UIntMax, nil
		}

	case t.ID == defaults.TypeInt:
		if v.IsMax() {
			return s.IntMax, nil
		}
	}

	if n, ok := v.Int64(); ok {
		if limit, ok := s.Limits[typeName]; ok && n > limit {
			return "", errors.WithHintf(
				errors.Mark(errors.Newf("value %d does not fit %s", n, typeName), errors.ErrInvalidValue),
				"the largest %s is %d", typeName, limit)
		}
	}
	if s.LongSuffix != "" && typeName == s.LongType {
		return v.String() + s.LongSuffix, nil
	}
	return v.String(), nil
}

// CStyleName is the symbol name C-family platforms use for a constant.
func CStyleName(entry, constant string) string {
	return "kCBLDefault" + entry + constant
}
