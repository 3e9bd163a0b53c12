package pipeline

import (
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{(.*?)\}`)

// Placeholder is one {name} token; Start and End are byte offsets of the
// whole token, braces included.
type Placeholder struct {
	Name  string
	Start int
	End   int
}

type Template struct {
	Text         string
	Placeholders []Placeholder
}

// ParseTemplate finds placeholders left to right. Each token spans the
// shortest {...} run, so "{a} {b}" yields two tokens and "{a{b}" yields "a{b".
func ParseTemplate(text string) Template {
	tmpl := Template{Text: text}
	for _, m := range placeholderPattern.FindAllStringSubmatchIndex(text, -1) {
		tmpl.Placeholders = append(tmpl.Placeholders, Placeholder{
			Name:  text[m[2]:m[3]],
			Start: m[0],
			End:   m[1],
		})
	}
	return tmpl
}

// Fill substitutes values[i] for the i-th placeholder. Placeholders beyond
// len(values) are left as written. Values are inserted literally.
func (t Template) Fill(values []string) string {
	var sb strings.Builder
	sb.Grow(len(t.Text))

	last := 0
	for i, ph := range t.Placeholders {
		if i >= len(values) {
			break
		}
		sb.WriteString(t.Text[last:ph.Start])
		sb.WriteString(values[i])
		last = ph.End
	}
	sb.WriteString(t.Text[last:])

	return sb.String()
}
