package gen

import (
	"fmt"
	"sync/atomic"

	"github.com/teranos/gendefaults/defaults"
	"github.com/teranos/gendefaults/errors"
)

// testSyntax is a small literal syntax that makes every rule visible.
var testSyntax = ValueSyntax{
	True:  "T",
	False: "F",
	Enum: func(typeID, member string) string {
		return typeID + "::" + member
	},
	Seconds: func(seconds int64) string {
		return fmt.Sprintf("%ds", seconds)
	},
	UIntMax:          "UMAX",
	IntMax:           "IMAX",
	NegativeOneIsMax: true,
	LongSuffix:       "L",
	LongType:         "long",
	Limits:           map[string]int64{"ushort": 65535},
}

func testDialect(p defaults.Platform) Dialect {
	return Dialect{
		Platform: p,
		Types:    NewTypeTable(map[string]string{defaults.TypeBoolean: "bool"}),
		Values:   testSyntax,
	}
}

// lineGenerator writes one "name = literal" line per declaration.
type lineGenerator struct {
	platform defaults.Platform
	fail     error
	calls    *int32
}

func (g *lineGenerator) Platform() defaults.Platform { return g.platform }

func (g *lineGenerator) Generate(entries []*defaults.Entry) (Output, error) {
	if g.calls != nil {
		atomic.AddInt32(g.calls, 1)
	}
	if g.fail != nil {
		return nil, g.fail
	}
	collected, err := Collect(testDialect(g.platform), entries)
	if err != nil {
		return nil, err
	}
	text := "// Copyright (c) 2024-present Couchbase\n"
	for _, ed := range collected {
		for _, d := range ed.Declarations {
			text += fmt.Sprintf("%s.%s = %s\n", ed.Entry.Name, d.Constant.Name, d.Literal)
		}
	}
	return Output{"defaults.txt": text}, nil
}

func lineDescriptor(p defaults.Platform) Descriptor {
	return Descriptor{
		Platform: p,
		Files:    []string{"defaults.txt"},
		New:      func(Options) Generator { return &lineGenerator{platform: p} },
	}
}

var errBoom = errors.New("boom")
