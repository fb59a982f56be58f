package defaults

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/gendefaults/errors"
)

func TestLoadRegistry(t *testing.T) {
	r, err := LoadRegistry(filepath.Join("testdata", "cbl-defaults.json"))
	require.NoError(t, err)

	names := []string{}
	for _, e := range r.Entries() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Database", "LogFile", "Replicator", "Listener"}, names)
	assert.Equal(t, 4, r.Len())
	assert.Equal(t, 15, r.ConstantCount())

	listener, ok := r.Entry("Listener")
	require.True(t, ok)
	assert.True(t, listener.EE)
	assert.Equal(t, "URLEndpointListenerConfiguration", listener.LongName)

	replicator, _ := r.Entry("Replicator")
	typ := replicator.Constants[0]
	assert.Equal(t, ConstantType{ID: "ReplicatorType", Subset: SubsetEnum}, typ.Type)

	heartbeat := replicator.Constants[2]
	assert.Equal(t, "Heartbeat", heartbeat.Name)
	assert.Equal(t, RawValue{Scalar: json.Number("300"), Unit: UnitSeconds}, heartbeat.Value)
	require.Equal(t, 1, heartbeat.Overrides.Len())
	override, ok := heartbeat.Overrides.Get(PlatformC)
	require.True(t, ok)
	assert.Equal(t, TypeUInt, override.Type.ID)

	continuous := replicator.Constants[4]
	assert.Equal(t, "MaxAttempts", continuous.ReferenceName())
	assert.Equal(t, MaxSentinel, continuous.Value.Scalar)

	database, _ := r.Entry("Database")
	assert.Equal(t, []Platform{PlatformC, PlatformObjC}, database.Constants[1].OnlyOn)

	assert.Equal(t, []Platform{PlatformC, PlatformObjC}, r.ReferencedPlatforms())
}

func TestLoadRegistryMissingFile(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.IsLoadError(err))
	assert.Contains(t, errors.FlattenHints(err), "--input")
}

func TestParseRegistryPreservesOverrideOrder(t *testing.T) {
	data := []byte(`{
		"Replicator": {
			"long_name": "ReplicatorConfiguration",
			"constants": [{
				"name": "MaxAttemptsContinuous",
				"type": {"id": "uint"},
				"value": "max",
				"type_objc": {"value": -1},
				"type_csharp": {"type": {"id": "uint"}},
				"type_c": {"value": -1},
				"description": "never give up"
			}]
		}
	}`)

	r, err := ParseRegistry(data)
	require.NoError(t, err)

	e, _ := r.Entry("Replicator")
	var order []Platform
	for pair := e.Constants[0].Overrides.Oldest(); pair != nil; pair = pair.Next() {
		order = append(order, pair.Key)
	}
	assert.Equal(t, []Platform{PlatformObjC, PlatformCSharp, PlatformC}, order)
}

func TestParseRegistryErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "malformed JSON",
			data:    `{"Replicator": `,
			wantErr: "malformed JSON",
		},
		{
			name:    "top level array",
			data:    `[]`,
			wantErr: "do not match the schema",
		},
		{
			name:    "missing long_name",
			data:    `{"Replicator": {"constants": []}}`,
			wantErr: "long_name",
		},
		{
			name:    "missing description",
			data:    `{"Replicator": {"long_name": "R", "constants": [{"name": "A", "type": {"id": "int"}, "value": 1}]}}`,
			wantErr: "description",
		},
		{
			name:    "unknown constant field",
			data:    `{"Replicator": {"long_name": "R", "constants": [{"name": "A", "type": {"id": "int"}, "value": 1, "description": "", "colour": "red"}]}}`,
			wantErr: "colour",
		},
		{
			name:    "unknown scalar type",
			data:    `{"Replicator": {"long_name": "R", "constants": [{"name": "A", "type": {"id": "float"}, "value": 1, "description": ""}]}}`,
			wantErr: `unknown type "float"`,
		},
		{
			name:    "empty override",
			data:    `{"Replicator": {"long_name": "R", "constants": [{"name": "A", "type": {"id": "int"}, "value": 1, "description": "", "type_objc": {}}]}}`,
			wantErr: "neither type nor value",
		},
		{
			name:    "duplicate entry",
			data:    `{"A": {"long_name": "A", "constants": []}, "A": {"long_name": "B", "constants": []}}`,
			wantErr: `duplicate entry "A"`,
		},
		{
			name: "duplicate constant",
			data: `{"A": {"long_name": "A", "constants": [
				{"name": "X", "type": {"id": "int"}, "value": 1, "description": ""},
				{"name": "X", "type": {"id": "int"}, "value": 2, "description": ""}]}}`,
			wantErr: `duplicate constant "X"`,
		},
		{
			name:    "duplicate constant field",
			data:    `{"A": {"long_name": "A", "constants": [{"name": "X", "type": {"id": "int"}, "value": 1, "value": 2, "description": ""}]}}`,
			wantErr: `duplicate field "value"`,
		},
		{
			name: "duplicate override",
			data: `{"A": {"long_name": "A", "constants": [{"name": "X", "type": {"id": "int"}, "value": 1, "description": "",
				"type_objc": {"value": 2}, "type_objc": {"value": 3}}]}}`,
			wantErr: `duplicate field "type_objc"`,
		},
		{
			name:    "duplicate override field",
			data:    `{"A": {"long_name": "A", "constants": [{"name": "X", "type": {"id": "int"}, "value": 1, "description": "", "type_c": {"value": 2, "value": 3}}]}}`,
			wantErr: `duplicate field "value"`,
		},
		{
			name:    "duplicate unit",
			data:    `{"A": {"long_name": "A", "constants": [{"name": "X", "type": {"id": "TimeSpan"}, "value": {"scalar": 1, "unit": "seconds", "unit": "minutes"}, "description": ""}]}}`,
			wantErr: `duplicate field "unit"`,
		},
		{
			name:    "duplicate entry field",
			data:    `{"A": {"long_name": "A", "long_name": "B", "constants": []}}`,
			wantErr: `duplicate field "long_name"`,
		},
		{
			name:    "null value",
			data:    `{"A": {"long_name": "A", "constants": [{"name": "X", "type": {"id": "int"}, "value": null, "description": ""}]}}`,
			wantErr: "value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseRegistry([]byte(tt.data))
			require.Error(t, err)
			assert.Nil(t, r)
			assert.True(t, errors.IsLoadError(err), "expected a load error, got %v", err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseRegistryDoesNotCheckUnits(t *testing.T) {
	data := []byte(`{"Replicator": {"long_name": "R", "constants": [
		{"name": "Heartbeat", "type": {"id": "TimeSpan"}, "value": {"scalar": 5, "unit": "minutes"}, "description": ""}]}}`)

	r, err := ParseRegistry(data)
	require.NoError(t, err)

	e, _ := r.Entry("Replicator")
	_, err = e.Constants[0].ResolveValue(PlatformCSharp)
	assert.True(t, errors.IsUnknownUnitError(err))
}

func TestLoadRegistryWrapsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defs.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"A": {"long_name": 1, "constants": []}}`), 0o644))

	_, err := LoadRegistry(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}
