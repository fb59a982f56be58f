package defaults

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/teranos/gendefaults/errors"
)

// Override replaces the type, the value, or both for one platform.
type Override struct {
	Type  *ConstantType
	Value *RawValue
}

// Constant is one default value definition.
type Constant struct {
	Name        string
	Type        ConstantType
	Value       RawValue
	Description string
	// References names the documented member. Empty means Name.
	References string
	OnlyOn     []Platform
	// Overrides in document order.
	Overrides *orderedmap.OrderedMap[Platform, Override]
}

// NewConstant returns a constant with an empty override map.
func NewConstant(name string, t ConstantType, v RawValue, description string) *Constant {
	return &Constant{
		Name:        name,
		Type:        t,
		Value:       v,
		Description: description,
		Overrides:   orderedmap.New[Platform, Override](),
	}
}

// WithOverride sets the override for platform p and returns c.
func (c *Constant) WithOverride(p Platform, o Override) *Constant {
	if c.Overrides == nil {
		c.Overrides = orderedmap.New[Platform, Override]()
	}
	c.Overrides.Set(p, o)
	return c
}

func (c *Constant) override(p Platform) (Override, bool) {
	if c.Overrides == nil {
		return Override{}, false
	}
	return c.Overrides.Get(p)
}

// ReferenceName is the member name used in doc comments.
func (c *Constant) ReferenceName() string {
	if c.References != "" {
		return c.References
	}
	return c.Name
}

// AppliesTo reports whether the constant is emitted for p.
func (c *Constant) AppliesTo(p Platform) bool {
	return appliesTo(c.OnlyOn, p)
}

// ResolveType returns the platform's override type, or the default type.
func (c *Constant) ResolveType(p Platform) ConstantType {
	if o, ok := c.override(p); ok && o.Type != nil {
		return *o.Type
	}
	return c.Type
}

// ResolveValue returns the platform's override value, or the default value,
// validated against the resolved type for p.
func (c *Constant) ResolveValue(p Platform) (ConstantValue, error) {
	raw := c.Value
	if o, ok := c.override(p); ok && o.Value != nil {
		raw = *o.Value
	}

	v, err := NewConstantValue(c.ResolveType(p), raw)
	if err != nil {
		return ConstantValue{}, errors.Wrapf(err, "constant %s", c.Name)
	}
	return v, nil
}

// Resolve returns the type and value for p.
func (c *Constant) Resolve(p Platform) (ConstantType, ConstantValue, error) {
	v, err := c.ResolveValue(p)
	if err != nil {
		return ConstantType{}, ConstantValue{}, err
	}
	return c.ResolveType(p), v, nil
}

func appliesTo(onlyOn []Platform, p Platform) bool {
	if len(onlyOn) == 0 {
		return true
	}
	for _, o := range onlyOn {
		if o == p {
			return true
		}
	}
	return false
}
