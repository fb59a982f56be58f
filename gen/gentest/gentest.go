// Package gentest provides fixtures for generator tests.
package gentest

import (
	_ "embed"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/teranos/gendefaults/defaults"
)

// Year is the license year pinned by generator tests.
const Year = 2024

//go:embed fixture.json
var fixture []byte

// Fixture returns the raw fixture definitions.
//
// Entries in document order: Database, Listener (EE), LogFile, Replicator.
// Database.MmapDisabled is only_on c and objc, LogFile.MaxSize overrides its
// type for objc, Replicator.Heartbeat overrides type and value for c.
func Fixture() []byte {
	out := make([]byte, len(fixture))
	copy(out, fixture)
	return out
}

// Registry loads the fixture.
func Registry(t testing.TB) *defaults.Registry {
	t.Helper()
	return Parse(t, string(fixture))
}

// Entries loads the fixture entries.
func Entries(t testing.TB) []*defaults.Entry {
	t.Helper()
	return Registry(t).Entries()
}

// Parse loads a registry from inline JSON.
func Parse(t testing.TB, data string) *defaults.Registry {
	t.Helper()
	r, err := defaults.ParseRegistry([]byte(data))
	require.NoError(t, err)
	return r
}

// MinutesHeartbeat is a registry whose only constant has an unsupported unit.
const MinutesHeartbeat = `{
	"Replicator": {
		"long_name": "ReplicatorConfiguration",
		"constants": [{
			"name": "Heartbeat",
			"type": {"id": "TimeSpan"},
			"value": {"scalar": 5, "unit": "minutes"},
			"description": "five minutes"
		}]
	}
}`
