package objc

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

func TestGenerateHeaders(t *testing.T) {
	out := generate(t)

	assert.True(t, strings.HasPrefix(out[HeaderFile],
		"//\n//  CBLDefaults.h\n//  CouchbaseLite\n//\n//  Copyright (c) 2024-present Couchbase, Inc All rights reserved.\n"))
	assert.Contains(t, out[HeaderFile], "// BE OVERWRITTEN\n\n#import \"CBLReplicatorTypes.h\"\n\n/** [NO]")
	assert.True(t, strings.HasPrefix(out[ImplFile], "//\n//  CBLDefaults.m\n"))
	assert.Contains(t, out[ImplFile], "#import \"CBLDefaults.h\"\n\nconst BOOL kCBLDefaultDatabaseFullSync = NO;\n")
}

func TestGenerateDeclarationsAndDefinitions(t *testing.T) {
	out := generate(t)

	assert.Contains(t, out[HeaderFile], "/** [UINT_MAX] listener port */\nextern const uint kCBLDefaultListenerPort;\n")
	assert.Contains(t, out[ImplFile], "const uint kCBLDefaultListenerPort = UINT_MAX;\n")

	for _, line := range []string{
		"const CBLReplicatorType kCBLDefaultReplicatorType = kCBLReplicatorTypePushAndPull;",
		"const NSTimeInterval kCBLDefaultReplicatorHeartbeat = 30;",
		"const uint kCBLDefaultReplicatorMaxAttemptsContinuous = UINT_MAX;",
		"const int kCBLDefaultReplicatorMaxAttemptsSingleShot = INT_MAX;",
		"const int kCBLDefaultLogFileMaxRotateCount = 1;",
	} {
		assert.Contains(t, out[ImplFile], line)
	}
}

func TestGenerateAppliesObjCOverride(t *testing.T) {
	out := generate(t)

	assert.Contains(t, out[HeaderFile], "extern const long kCBLDefaultLogFileMaxSize;")
	assert.Contains(t, out[ImplFile], "const long kCBLDefaultLogFileMaxSize = 524288;")
}

func TestGenerateKeepsOnlyOnObjC(t *testing.T) {
	out := generate(t)
	assert.Contains(t, out[ImplFile], "const BOOL kCBLDefaultDatabaseMmapDisabled = NO;")
}

func TestGenerateWrapsEEInPlace(t *testing.T) {
	out := generate(t)

	assert.Contains(t, out[ImplFile],
		"const BOOL kCBLDefaultDatabaseMmapDisabled = NO;\n"+
			"#ifdef COUCHBASE_ENTERPRISE\n"+
			"const uint kCBLDefaultListenerPort = UINT_MAX;\n"+
			"const BOOL kCBLDefaultListenerDisableTls = NO;\n"+
			"#endif\n"+
			"const long kCBLDefaultLogFileMaxSize = 524288;\n")

	for _, f := range []string{HeaderFile, ImplFile} {
		assert.Equal(t, 1, strings.Count(out[f], "#ifdef COUCHBASE_ENTERPRISE"), f)
		assert.Equal(t, 1, strings.Count(out[f], "#endif"), f)
	}
	assert.Contains(t, out[HeaderFile], "#ifdef COUCHBASE_ENTERPRISE\n\n/** [UINT_MAX] listener port */")
}

func TestGenerateUnknownUnit(t *testing.T) {
	r := gentest.Parse(t, gentest.MinutesHeartbeat)

	_, err := New(gen.Options{Year: gentest.Year}).Generate(r.Entries())
	assert.True(t, errors.IsUnknownUnitError(err))
}
