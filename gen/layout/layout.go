// Package layout assembles generated declarations into complete source files.
//
// Each platform ships text/template files that define one named template per
// output file. The shared "license" and "autogen" templates are always
// available, together with the sprig function library.
package layout

import (
	"bytes"
	"embed"
	"io/fs"
	"regexp"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"

	"github.com/teranos/gendefaults/errors"
)

//go:embed templates/*.tmpl
var shared embed.FS

// File is the structured form of one output file.
type File struct {
	// Name is the output file name, e.g. "CBLDefaults.h".
	Name string
	// Year stamped into the license header.
	Year int
	// Body chunks in emission order. Chunks carry their own newlines.
	Body []string
	// Data holds template-specific values such as import names.
	Data map[string]interface{}
}

// Templates is a parsed template set.
type Templates struct {
	tmpl *template.Template
}

// Parse parses the shared templates plus the files in fsys matching patterns.
func Parse(fsys fs.FS, patterns ...string) (*Templates, error) {
	t, err := template.New("layout").
		Funcs(sprig.TxtFuncMap()).
		Option("missingkey=error").
		ParseFS(shared, "templates/*.tmpl")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse shared templates")
	}

	if _, err := t.ParseFS(fsys, patterns...); err != nil {
		return nil, errors.Wrap(err, "failed to parse platform templates")
	}
	return &Templates{tmpl: t}, nil
}

// MustParse is Parse for package-level template sets.
func MustParse(fsys fs.FS, patterns ...string) *Templates {
	t, err := Parse(fsys, patterns...)
	if err != nil {
		panic(err)
	}
	return t
}

// Render executes the named template over f and normalises the result.
func (t *Templates) Render(name string, f File) (string, error) {
	data := map[string]interface{}{
		"Name": f.Name,
		"Year": f.Year,
		"Body": Body(f.Body),
		"Data": f.Data,
	}

	var buf bytes.Buffer
	if err := t.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", errors.Wrapf(err, "failed to render %s", f.Name)
	}
	return Finalize(buf.String()), nil
}

// Body joins chunks and trims trailing whitespace, keeping one final newline.
func Body(chunks []string) string {
	return Finalize(strings.Join(chunks, ""))
}

// Finalize trims trailing whitespace and ends the text with a single newline.
func Finalize(s string) string {
	return strings.TrimRight(s, " \t\r\n") + "\n"
}

var copyrightYear = regexp.MustCompile(`(Copyright \(c\) )\d{4}(-present)`)

// NormalizeYear replaces license years so files generated in different
// years compare equal.
func NormalizeYear(s string) string {
	return copyrightYear.ReplaceAllString(s, "${1}YYYY${2}")
}

// Indent prefixes every non-empty line of s with prefix.
func Indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
