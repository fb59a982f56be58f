package gen

import (
	"sort"
	"sync"

	"github.com/teranos/gendefaults/defaults"
	"github.com/teranos/gendefaults/errors"
)

// Registry maps platforms to generator constructors.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[defaults.Platform]Descriptor
}

// NewRegistry creates an empty generator registry
func NewRegistry() *Registry {
	return &Registry{
		descriptors: make(map[defaults.Platform]Descriptor),
	}
}

// Register adds a generator.
// Returns error if the platform is already taken or the descriptor is incomplete
func (r *Registry) Register(d Descriptor) error {
	if d.Platform == "" || d.New == nil {
		return errors.AssertionFailedf("generator descriptor needs a platform and a constructor")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.descriptors[d.Platform]; exists {
		return errors.Mark(errors.Newf("generator already registered: %s", d.Platform), errors.ErrDuplicateGenerator)
	}
	r.descriptors[d.Platform] = d
	return nil
}

// MustRegister is Register for static registration; it panics on error
func (r *Registry) MustRegister(d Descriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

// Get retrieves a generator descriptor by platform
func (r *Registry) Get(p defaults.Platform) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descriptors[p]
	return d, ok
}

// Platforms returns all registered platforms in sorted order
func (r *Registry) Platforms() []defaults.Platform {
	r.mu.RLock()
	defer r.mu.RUnlock()

	platforms := make([]defaults.Platform, 0, len(r.descriptors))
	for p := range r.descriptors {
		platforms = append(platforms, p)
	}
	sort.Slice(platforms, func(i, j int) bool { return platforms[i] < platforms[j] })
	return platforms
}

// Descriptors returns all descriptors sorted by platform
func (r *Registry) Descriptors() []Descriptor {
	platforms := r.Platforms()

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Descriptor, 0, len(platforms))
	for _, p := range platforms {
		out = append(out, r.descriptors[p])
	}
	return out
}

// Build constructs generators for the given platforms, or for every
// registered platform when none are given. Generators come back sorted by
// platform regardless of the order requested.
func (r *Registry) Build(opts Options, platforms ...defaults.Platform) ([]Generator, error) {
	if len(platforms) == 0 {
		platforms = r.Platforms()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[defaults.Platform]bool, len(platforms))
	var selected []defaults.Platform
	for _, p := range platforms {
		if seen[p] {
			continue
		}
		seen[p] = true
		if _, ok := r.descriptors[p]; !ok {
			return nil, errors.WithHint(
				errors.Mark(errors.Newf("no generator for platform %q", p), errors.ErrUnknownPlatform),
				"run `gendefaults platforms` to list the available generators")
		}
		selected = append(selected, p)
	}
	sort.Slice(selected, func(i, j int) bool { return selected[i] < selected[j] })

	generators := make([]Generator, 0, len(selected))
	for _, p := range selected {
		generators = append(generators, r.descriptors[p].New(opts))
	}
	return generators, nil
}
