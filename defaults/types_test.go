package defaults

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/gendefaults/errors"
)

var (
	timeSpan = ConstantType{ID: TypeTimeSpan, Subset: SubsetScalar}
	uintType = ConstantType{ID: TypeUInt, Subset: SubsetScalar}
	boolType = ConstantType{ID: TypeBoolean, Subset: SubsetScalar}
	enumType = ConstantType{ID: "ReplicatorType", Subset: SubsetEnum}
)

func TestConstantTypeValidate(t *testing.T) {
	tests := []struct {
		name    string
		typ     ConstantType
		wantErr string
	}{
		{name: "scalar", typ: uintType},
		{name: "subset omitted", typ: ConstantType{ID: TypeLong}},
		{name: "enum accepts any id", typ: enumType},
		{name: "unknown scalar", typ: ConstantType{ID: "float", Subset: SubsetScalar}, wantErr: `unknown type "float"`},
		{name: "unknown subset", typ: ConstantType{ID: TypeInt, Subset: "flags"}, wantErr: `unknown type subset "flags"`},
		{name: "empty id", typ: ConstantType{Subset: SubsetEnum}, wantErr: "type id is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.typ.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConstantTypePredicates(t *testing.T) {
	assert.True(t, timeSpan.IsDuration())
	assert.False(t, ConstantType{ID: TypeTimeSpan, Subset: SubsetEnum}.IsDuration())
	assert.True(t, boolType.IsBoolean())
	assert.True(t, enumType.IsEnum())
	assert.Equal(t, "ReplicatorType (enum)", enumType.String())
	assert.Equal(t, "uint", uintType.String())
}

func TestNewConstantValueDuration(t *testing.T) {
	v, err := NewConstantValue(timeSpan, RawValue{Scalar: json.Number("30"), Unit: UnitSeconds})
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, v.Duration())
	assert.Equal(t, int64(30), v.WholeSeconds())
	assert.Equal(t, UnitSeconds, v.Unit())
	assert.Equal(t, "30", v.String())

	v, err = NewConstantValue(timeSpan, RawValue{Scalar: json.Number("1.5"), Unit: UnitSeconds})
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.WholeSeconds())
}

func TestNewConstantValueDurationRange(t *testing.T) {
	v, err := NewConstantValue(timeSpan, RawValue{Scalar: json.Number("9223372036"), Unit: UnitSeconds})
	require.NoError(t, err)
	assert.Equal(t, int64(9223372036), v.WholeSeconds())

	v, err = NewConstantValue(timeSpan, RawValue{Scalar: json.Number("1e3"), Unit: UnitSeconds})
	require.NoError(t, err)
	assert.Equal(t, int64(1000), v.WholeSeconds())

	for _, scalar := range []string{"10000000000", "-10000000000", "1e20", "9223372036.9"} {
		t.Run(scalar, func(t *testing.T) {
			_, err := NewConstantValue(timeSpan, RawValue{Scalar: json.Number(scalar), Unit: UnitSeconds})
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidValue))
			assert.Contains(t, errors.FlattenHints(err), "limited to")
		})
	}
}

func TestNewConstantValueUnknownUnit(t *testing.T) {
	for _, unit := range []string{"minutes", "ms", ""} {
		t.Run(unit, func(t *testing.T) {
			_, err := NewConstantValue(timeSpan, RawValue{Scalar: json.Number("30"), Unit: unit})
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrUnknownUnit))
			assert.Contains(t, errors.FlattenHints(err), `only "seconds"`)
		})
	}
}

func TestNewConstantValueRejectsMismatches(t *testing.T) {
	tests := []struct {
		name string
		typ  ConstantType
		raw  RawValue
	}{
		{name: "boolean from string", typ: boolType, raw: RawValue{Scalar: "true"}},
		{name: "enum from number", typ: enumType, raw: RawValue{Scalar: json.Number("1")}},
		{name: "duration from string", typ: timeSpan, raw: RawValue{Scalar: "soon", Unit: UnitSeconds}},
		{name: "max on long", typ: ConstantType{ID: TypeLong}, raw: RawValue{Scalar: MaxSentinel}},
		{name: "fractional int", typ: ConstantType{ID: TypeInt}, raw: RawValue{Scalar: json.Number("1.5")}},
		{name: "bool as int", typ: ConstantType{ID: TypeSizeT}, raw: RawValue{Scalar: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConstantValue(tt.typ, tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidValue))
		})
	}
}

func TestConstantValueSentinels(t *testing.T) {
	max, err := NewConstantValue(uintType, RawValue{Scalar: MaxSentinel})
	require.NoError(t, err)
	assert.True(t, max.IsMax())
	assert.False(t, max.IsNegativeOne())

	minusOne, err := NewConstantValue(uintType, RawValue{Scalar: json.Number("-1")})
	require.NoError(t, err)
	assert.True(t, minusOne.IsNegativeOne())
	assert.False(t, minusOne.IsMax())

	intMax, err := NewConstantValue(ConstantType{ID: TypeInt}, RawValue{Scalar: MaxSentinel})
	require.NoError(t, err)
	assert.True(t, intMax.IsMax())
}

func TestConstantValueInt64(t *testing.T) {
	v, err := NewConstantValue(ConstantType{ID: TypeSizeT}, RawValue{Scalar: json.Number("5000000000")})
	require.NoError(t, err)
	n, ok := v.Int64()
	assert.True(t, ok)
	assert.Equal(t, int64(5000000000), n)

	max, err := NewConstantValue(uintType, RawValue{Scalar: MaxSentinel})
	require.NoError(t, err)
	_, ok = max.Int64()
	assert.False(t, ok)
}

func TestConstantValueBool(t *testing.T) {
	v, err := NewConstantValue(boolType, RawValue{Scalar: true})
	require.NoError(t, err)

	b, ok := v.Bool()
	assert.True(t, ok)
	assert.True(t, b)
	assert.Equal(t, "true", v.String())
}
