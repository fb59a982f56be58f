package defaults

import (
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/teranos/gendefaults/errors"
)

// Entry is a named group of constants owned by one class or module per platform.
type Entry struct {
	Name     string
	LongName string
	// EE marks Enterprise Edition only constants.
	EE        bool
	OnlyOn    []Platform
	Constants []*Constant
}

// AppliesTo reports whether the entry is emitted for p.
func (e *Entry) AppliesTo(p Platform) bool {
	return appliesTo(e.OnlyOn, p)
}

// Registry holds entries in document order. It is not modified after load.
type Registry struct {
	entries *orderedmap.OrderedMap[string, *Entry]
}

// NewRegistry builds a registry from entries, rejecting duplicate entry
// names and duplicate constant names within an entry.
func NewRegistry(entries ...*Entry) (*Registry, error) {
	r := &Registry{entries: orderedmap.New[string, *Entry]()}
	for _, e := range entries {
		if e.Name == "" {
			return nil, errors.NewLoadError("entry with empty name")
		}
		if _, exists := r.entries.Get(e.Name); exists {
			return nil, errors.NewLoadError("duplicate entry %q", e.Name)
		}
		seen := make(map[string]bool, len(e.Constants))
		for _, c := range e.Constants {
			if seen[c.Name] {
				return nil, errors.NewLoadError("entry %q: duplicate constant %q", e.Name, c.Name)
			}
			seen[c.Name] = true
		}
		r.entries.Set(e.Name, e)
	}
	return r, nil
}

// Entries returns the entries in document order.
func (r *Registry) Entries() []*Entry {
	out := make([]*Entry, 0, r.entries.Len())
	for pair := r.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Entry looks up an entry by name.
func (r *Registry) Entry(name string) (*Entry, bool) {
	return r.entries.Get(name)
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return r.entries.Len()
}

// ConstantCount returns the number of constants across all entries.
func (r *Registry) ConstantCount() int {
	n := 0
	for pair := r.entries.Oldest(); pair != nil; pair = pair.Next() {
		n += len(pair.Value.Constants)
	}
	return n
}

// ReferencedPlatforms returns every platform named by an only_on list or an
// override, sorted.
func (r *Registry) ReferencedPlatforms() []Platform {
	seen := make(map[Platform]bool)
	for pair := r.entries.Oldest(); pair != nil; pair = pair.Next() {
		e := pair.Value
		for _, p := range e.OnlyOn {
			seen[p] = true
		}
		for _, c := range e.Constants {
			for _, p := range c.OnlyOn {
				seen[p] = true
			}
			if c.Overrides == nil {
				continue
			}
			for o := c.Overrides.Oldest(); o != nil; o = o.Next() {
				seen[o.Key] = true
			}
		}
	}

	out := make([]Platform, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
