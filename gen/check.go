package gen

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/teranos/gendefaults/defaults"
	"github.com/teranos/gendefaults/errors"
	"github.com/teranos/gendefaults/gen/layout"
)

// PlatformDrift lists the files of one platform that do not match a fresh render.
type PlatformDrift struct {
	Platform  defaults.Platform
	Missing   []string // rendered but absent on disk
	Different []string // present with other contents
	Stale     []string // on disk but no longer produced
}

// Empty reports whether the platform is up to date.
func (d PlatformDrift) Empty() bool {
	return len(d.Missing) == 0 && len(d.Different) == 0 && len(d.Stale) == 0
}

// CheckResult holds the result of comparing renders with an output tree.
type CheckResult struct {
	UpToDate bool
	Drift    []PlatformDrift // platforms with differences, sorted
}

// Err returns an ErrOutOfDate error describing the drift, or nil.
func (r *CheckResult) Err() error {
	if r.UpToDate {
		return nil
	}
	var parts []string
	for _, d := range r.Drift {
		parts = append(parts, string(d.Platform))
	}
	return errors.WithHint(
		errors.Mark(errors.Newf("generated files out of date: %s", strings.Join(parts, ", ")), errors.ErrOutOfDate),
		"run `gendefaults generate` and commit the result")
}

// Check compares outputs with the files under <dir>/<platform>/.
// Copyright years are ignored so a check run in a new year still passes.
func Check(outputs map[defaults.Platform]Output, dir string) (*CheckResult, error) {
	platforms := make([]defaults.Platform, 0, len(outputs))
	for p := range outputs {
		platforms = append(platforms, p)
	}
	sort.Slice(platforms, func(i, j int) bool { return platforms[i] < platforms[j] })

	result := &CheckResult{UpToDate: true}
	for _, p := range platforms {
		drift, err := comparePlatform(p, outputs[p], filepath.Join(dir, string(p)))
		if err != nil {
			return nil, err
		}
		if !drift.Empty() {
			result.Drift = append(result.Drift, drift)
			result.UpToDate = false
		}
	}
	return result, nil
}

func comparePlatform(p defaults.Platform, out Output, dir string) (PlatformDrift, error) {
	drift := PlatformDrift{Platform: p}

	for _, name := range out.Filenames() {
		existing, err := os.ReadFile(filepath.Join(dir, name))
		if os.IsNotExist(err) {
			drift.Missing = append(drift.Missing, name)
			continue
		}
		if err != nil {
			return drift, errors.WrapIO(err, "failed to read "+filepath.Join(dir, name))
		}
		if layout.NormalizeYear(string(existing)) != layout.NormalizeYear(out[name]) {
			drift.Different = append(drift.Different, name)
		}
	}

	onDisk, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return drift, nil
	}
	if err != nil {
		return drift, errors.WrapIO(err, "failed to list "+dir)
	}
	for _, f := range onDisk {
		if f.IsDir() || shouldSkipFile(f.Name()) {
			continue
		}
		if _, ok := out[f.Name()]; !ok {
			drift.Stale = append(drift.Stale, f.Name())
		}
	}
	return drift, nil
}

// shouldSkipFile reports files that live next to generated output but are
// never generated.
func shouldSkipFile(name string) bool {
	return strings.HasPrefix(name, ".") || name == "README.md"
}
