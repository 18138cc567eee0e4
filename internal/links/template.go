// Package links renders message templates against contact fields and turns
// the result into WhatsApp deep links.
package links

import "regexp"

var placeholderRE = regexp.MustCompile(`\{(.*?)\}`)

// Render replaces every {key} in tmpl with fields[key]. Placeholders whose
// key is not in fields are kept as written, braces included.
func Render(tmpl string, fields map[string]string) string {
	return placeholderRE.ReplaceAllStringFunc(tmpl, func(m string) string {
		if v, ok := fields[m[1:len(m)-1]]; ok {
			return v
		}
		return m
	})
}

// Placeholders lists the keys referenced by tmpl in order of appearance.
func Placeholders(tmpl string) []string {
	matches := placeholderRE.FindAllStringSubmatch(tmpl, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}
