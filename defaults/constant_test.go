package defaults

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/gendefaults/errors"
)

func TestResolveWithoutOverride(t *testing.T) {
	c := NewConstant("Port", uintType, RawValue{Scalar: MaxSentinel}, "listener port")

	for _, p := range []Platform{PlatformCSharp, PlatformObjC, PlatformJava, PlatformC} {
		typ, v, err := c.Resolve(p)
		require.NoError(t, err)
		assert.Equal(t, uintType, typ)
		assert.True(t, v.IsMax())
	}
}

func TestResolveTypeOnlyOverride(t *testing.T) {
	ushort := ConstantType{ID: TypeUShort, Subset: SubsetScalar}
	c := NewConstant("Port", uintType, RawValue{Scalar: json.Number("0")}, "").
		WithOverride(PlatformObjC, Override{Type: &ushort})

	assert.Equal(t, ushort, c.ResolveType(PlatformObjC))
	assert.Equal(t, uintType, c.ResolveType(PlatformCSharp))

	v, err := c.ResolveValue(PlatformObjC)
	require.NoError(t, err)
	assert.Equal(t, "0", v.String())
}

func TestResolveValueOnlyOverride(t *testing.T) {
	c := NewConstant("MaxAttempts", uintType, RawValue{Scalar: MaxSentinel}, "").
		WithOverride(PlatformObjC, Override{Value: &RawValue{Scalar: json.Number("-1")}})

	objc, err := c.ResolveValue(PlatformObjC)
	require.NoError(t, err)
	assert.True(t, objc.IsNegativeOne())

	csharp, err := c.ResolveValue(PlatformCSharp)
	require.NoError(t, err)
	assert.True(t, csharp.IsMax())
}

func TestResolveValueUsesResolvedType(t *testing.T) {
	// The C override swaps a duration for a plain unsigned count, so the
	// default's unit must not be demanded for C.
	c := NewConstant("Heartbeat", timeSpan, RawValue{Scalar: json.Number("300"), Unit: UnitSeconds}, "").
		WithOverride(PlatformC, Override{Type: &uintType, Value: &RawValue{Scalar: json.Number("300")}})

	typ, v, err := c.Resolve(PlatformC)
	require.NoError(t, err)
	assert.Equal(t, uintType, typ)
	assert.Equal(t, "300", v.String())

	typ, v, err = c.Resolve(PlatformCSharp)
	require.NoError(t, err)
	assert.Equal(t, timeSpan, typ)
	assert.Equal(t, int64(300), v.WholeSeconds())
}

func TestResolveUnknownUnitNamesConstant(t *testing.T) {
	c := NewConstant("Heartbeat", timeSpan, RawValue{Scalar: json.Number("5"), Unit: "minutes"}, "")

	_, err := c.ResolveValue(PlatformJava)
	require.Error(t, err)
	assert.True(t, errors.IsUnknownUnitError(err))
	assert.Contains(t, err.Error(), "constant Heartbeat")
}

func TestAppliesTo(t *testing.T) {
	c := NewConstant("MmapDisabled", boolType, RawValue{Scalar: false}, "")
	assert.True(t, c.AppliesTo(PlatformJava))

	c.OnlyOn = []Platform{PlatformC, PlatformObjC}
	assert.True(t, c.AppliesTo(PlatformC))
	assert.False(t, c.AppliesTo(PlatformCSharp))

	e := &Entry{Name: "Listener", OnlyOn: []Platform{PlatformCSharp}}
	assert.True(t, e.AppliesTo(PlatformCSharp))
	assert.False(t, e.AppliesTo(PlatformObjC))
}

func TestReferenceName(t *testing.T) {
	c := NewConstant("MaxAttemptsSingleShot", uintType, RawValue{Scalar: json.Number("9")}, "")
	assert.Equal(t, "MaxAttemptsSingleShot", c.ReferenceName())

	c.References = "MaxAttempts"
	assert.Equal(t, "MaxAttempts", c.ReferenceName())
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	a := &Entry{Name: "Replicator", LongName: "ReplicatorConfiguration"}
	b := &Entry{Name: "Replicator", LongName: "Other"}

	_, err := NewRegistry(a, b)
	require.Error(t, err)
	assert.True(t, errors.IsLoadError(err))

	dup := &Entry{Name: "LogFile", Constants: []*Constant{
		NewConstant("MaxSize", uintType, RawValue{Scalar: json.Number("1")}, ""),
		NewConstant("MaxSize", uintType, RawValue{Scalar: json.Number("2")}, ""),
	}}
	_, err = NewRegistry(dup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate constant "MaxSize"`)
}
