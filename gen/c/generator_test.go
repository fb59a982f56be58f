package c

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/gendefaults/errors"
	"github.com/teranos/gendefaults/gen"
	"github.com/teranos/gendefaults/gen/gentest"
)

func generate(t *testing.T) gen.Output {
	t.Helper()
	out, err := New(gen.Options{Year: gentest.Year}).Generate(gentest.Entries(t))
	require.NoError(t, err)
	require.Equal(t, []string{HeaderFile, ImplFile}, out.Filenames())
	return out
}

func TestGenerateHeader(t *testing.T) {
	out := generate(t)
	header := out[HeaderFile]

	assert.Contains(t, header, "//  Copyright (c) 2024-present Couchbase, Inc All rights reserved.\n")
	assert.Contains(t, header, "#pragma once\n#include \"CBL_Compat.h\"\n")
	assert.Contains(t, header, "CBL_CAPI_BEGIN\n")
	assert.Contains(t, header, "/** [false] Full sync is off by default */\nCBL_PUBLIC extern const bool kCBLDefaultDatabaseFullSync;\n")
	assert.True(t, strings.HasSuffix(header, ";\n\n/** @} */\n\nCBL_CAPI_END\n"))
}

func TestGenerateDefinitions(t *testing.T) {
	impl := generate(t)[ImplFile]

	assert.Contains(t, impl, "#include \"CBLDefaults.h\"\n\nconst bool kCBLDefaultDatabaseFullSync = false;\n")
	for _, line := range []string{
		"const bool kCBLDefaultDatabaseMmapDisabled = false;",
		"const unsigned kCBLDefaultListenerPort = UINT_MAX;",
		"const size_t kCBLDefaultLogFileMaxSize = 524288;",
		"const CBLReplicatorType kCBLDefaultReplicatorType = kCBLReplicatorTypePushAndPull;",
		"const unsigned kCBLDefaultReplicatorMaxAttemptsContinuous = UINT_MAX;",
		"const int kCBLDefaultReplicatorMaxAttemptsSingleShot = INT_MAX;",
	} {
		assert.Contains(t, impl, line)
	}
}

func TestGenerateAppliesCOverride(t *testing.T) {
	impl := generate(t)[ImplFile]

	// Heartbeat is a TimeSpan elsewhere but a plain unsigned count here.
	assert.Contains(t, impl, "const unsigned kCBLDefaultReplicatorHeartbeat = 30;")
}

func TestGenerateEEBlock(t *testing.T) {
	out := generate(t)

	assert.Contains(t, out[ImplFile],
		"#ifdef COUCHBASE_ENTERPRISE\n"+
			"const unsigned kCBLDefaultListenerPort = UINT_MAX;\n"+
			"const bool kCBLDefaultListenerDisableTls = false;\n"+
			"#endif\n")
	for _, f := range []string{HeaderFile, ImplFile} {
		assert.Equal(t, 1, strings.Count(out[f], "#ifdef COUCHBASE_ENTERPRISE"), f)
		assert.Equal(t, 1, strings.Count(out[f], "#endif"), f)
	}
}

func TestGenerateNegativeOneSentinel(t *testing.T) {
	r := gentest.Parse(t, `{"Replicator": {"long_name": "ReplicatorConfiguration", "constants": [
		{"name": "MaxAttempts", "type": {"id": "uint"}, "value": -1, "description": "forever"},
		{"name": "Retries", "type": {"id": "int"}, "value": -1, "description": "signed stays -1"}]}}`)

	out, err := New(gen.Options{Year: gentest.Year}).Generate(r.Entries())
	require.NoError(t, err)
	assert.Contains(t, out[ImplFile], "const unsigned kCBLDefaultReplicatorMaxAttempts = UINT_MAX;")
	assert.Contains(t, out[ImplFile], "const int kCBLDefaultReplicatorRetries = -1;")
}

func TestGenerateUnknownUnit(t *testing.T) {
	r := gentest.Parse(t, gentest.MinutesHeartbeat)

	_, err := New(gen.Options{Year: gentest.Year}).Generate(r.Entries())
	assert.True(t, errors.IsUnknownUnitError(err))
}
