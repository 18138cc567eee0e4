package links

import (
	"errors"
	"net/url"
	"strings"
	"unicode"
)

// DefaultCountryCode is prepended to every phone number (Chile).
const DefaultCountryCode = "56"

const waBase = "https://wa.me/"

// ErrNoTemplates is a configuration error: links cannot be generated
// without at least one message template.
var ErrNoTemplates = errors.New("links: no message templates configured")

// Row is one recipient. Fields feeds the template placeholders.
type Row struct {
	Phone  string
	Fields map[string]string
}

// Template is a message pattern identified by its stored id.
type Template struct {
	ID   uint
	Text string
}

// Link is the generated deep link for one row together with the template
// that produced it.
type Link struct {
	TemplateID uint
	Message    string
	URL        string
}

// Generator builds wa.me links, assigning templates round-robin: row i
// gets templates[i mod len(templates)].
type Generator struct {
	CountryCode string
}

// Generate returns one link per row, in row order.
func (g Generator) Generate(rows []Row, templates []Template) ([]Link, error) {
	if len(templates) == 0 {
		return nil, ErrNoTemplates
	}
	out := make([]Link, len(rows))
	for i, r := range rows {
		t := templates[i%len(templates)]
		msg := Render(t.Text, r.Fields)
		out[i] = Link{
			TemplateID: t.ID,
			Message:    msg,
			URL:        g.URL(r.Phone, msg),
		}
	}
	return out, nil
}

// URL builds the deep link for phone with msg as prefilled text.
func (g Generator) URL(phone, msg string) string {
	cc := g.CountryCode
	if cc == "" {
		cc = DefaultCountryCode
	}
	return waBase + cc + Digits(phone) + "?text=" + Encode(msg)
}

// Encode percent-encodes msg for a query value, with spaces as %20.
func Encode(msg string) string {
	return strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
}

// Digits strips everything but ASCII digits from phone.
func Digits(phone string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && unicode.IsDigit(r) {
			return r
		}
		return -1
	}, phone)
}
