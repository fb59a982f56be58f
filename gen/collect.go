package gen

import (
	"sort"

	"github.com/teranos/gendefaults/defaults"
	"github.com/teranos/gendefaults/errors"
)

// Declaration is one constant resolved and rendered for a platform.
type Declaration struct {
	Constant *defaults.Constant
	// Type is the resolved semantic type, TypeName its platform spelling.
	Type     defaults.ConstantType
	TypeName string
	Value    defaults.ConstantValue
	// Literal is the rendered value.
	Literal string
}

// EntryDeclarations are the declarations of one entry that survive filtering.
type EntryDeclarations struct {
	Entry        *defaults.Entry
	Declarations []Declaration
}

// Dialect is what collection needs to know about a platform.
type Dialect struct {
	Platform defaults.Platform
	Types    TypeTable
	Values   ValueSyntax
	// SortByEE moves EE entries after the others, keeping relative order.
	SortByEE bool
}

// Collect filters entries and constants by only_on, resolves overrides and
// renders values for d.Platform. An entry whose constants are all filtered
// out is kept with no declarations so EE blocks still bracket it.
func Collect(d Dialect, entries []*defaults.Entry) ([]EntryDeclarations, error) {
	ordered := entries
	if d.SortByEE {
		ordered = make([]*defaults.Entry, len(entries))
		copy(ordered, entries)
		sort.SliceStable(ordered, func(i, j int) bool { return !ordered[i].EE && ordered[j].EE })
	}

	var out []EntryDeclarations
	for _, e := range ordered {
		if !e.AppliesTo(d.Platform) {
			continue
		}

		ed := EntryDeclarations{Entry: e}
		for _, c := range e.Constants {
			if !c.AppliesTo(d.Platform) {
				continue
			}
			decl, err := declare(d, c)
			if err != nil {
				return nil, errors.Wrapf(err, "entry %s", e.Name)
			}
			ed.Declarations = append(ed.Declarations, decl)
		}
		out = append(out, ed)
	}
	return out, nil
}

func declare(d Dialect, c *defaults.Constant) (Declaration, error) {
	typ, value, err := c.Resolve(d.Platform)
	if err != nil {
		return Declaration{}, err
	}

	typeName, err := d.Types.Map(typ)
	if err != nil {
		return Declaration{}, errors.Wrapf(err, "constant %s", c.Name)
	}

	literal, err := d.Values.Render(typ, typeName, value)
	if err != nil {
		return Declaration{}, errors.Wrapf(err, "constant %s", c.Name)
	}

	return Declaration{
		Constant: c,
		Type:     typ,
		TypeName: typeName,
		Value:    value,
		Literal:  literal,
	}, nil
}

// CountDeclarations returns the total number of declarations.
func CountDeclarations(eds []EntryDeclarations) int {
	n := 0
	for _, ed := range eds {
		n += len(ed.Declarations)
	}
	return n
}

// EEBlock tracks whether an Enterprise Edition conditional block is open.
// Enter returns the marker text to emit before an entry and Finish the text
// to emit after the last one, so each contiguous run of EE entries is
// wrapped exactly once.
type EEBlock struct {
	Open  string
	Close string
	open  bool
}

// Enter moves the tracker to the EE state of the next entry.
func (b *EEBlock) Enter(ee bool) string {
	switch {
	case ee && !b.open:
		b.open = true
		return b.Open
	case !ee && b.open:
		b.open = false
		return b.Close
	}
	return ""
}

// Finish closes a block left open by the last entry.
func (b *EEBlock) Finish() string {
	if b.open {
		b.open = false
		return b.Close
	}
	return ""
}

// IsOpen reports whether an EE block is currently open.
func (b *EEBlock) IsOpen() bool {
	return b.open
}
