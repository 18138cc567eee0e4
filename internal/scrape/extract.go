// Package scrape fetches vehicle listing pages and extracts the seller and
// vehicle fields used to prefill a contact.
//
// Extraction never fails because of missing markup: each field carries its
// own outcome (present, absent or failed) so callers can show what the page
// did and did not yield.
package scrape

import (
	"bytes"
	"encoding/base64"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// NotAvailable is shown to operators in place of a field the page did not
// yield.
const NotAvailable = "No disponible"

// ErrNotText is returned by Extract when the input is not text at all
// (an image, an archive, ...).
var ErrNotText = errors.New("scrape: content is not text")

// Status is the outcome of extracting a single field.
type Status int

const (
	Absent Status = iota
	Present
	Failed
)

func (s Status) String() string {
	switch s {
	case Present:
		return "present"
	case Failed:
		return "failed"
	default:
		return "absent"
	}
}

// MarshalText renders the status as its name in JSON.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Field is one extracted value together with how it was obtained.
type Field struct {
	Status Status `json:"status"`
	Value  string `json:"value,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func present(v string) Field     { return Field{Status: Present, Value: v} }
func failed(reason string) Field { return Field{Status: Failed, Reason: reason} }
func absentField() Field         { return Field{Status: Absent} }

// OK reports whether the field was found.
func (f Field) OK() bool { return f.Status == Present }

// Or returns the value when present and def otherwise.
func (f Field) Or(def string) string {
	if f.Status == Present {
		return f.Value
	}
	return def
}

// Listing is everything Extract could read from a listing page.
type Listing struct {
	FullName     Field `json:"full_name"`
	Year         Field `json:"year"`
	Price        Field `json:"price"`
	Description  Field `json:"description"`
	ContactImage Field `json:"contact_image"`
	WhatsApp     Field `json:"whatsapp"`
}

// ImageSink persists a decoded contact image and returns where it was put.
type ImageSink interface {
	Save(data []byte) (string, error)
}

// Selectors of the marketplace listing markup.
const (
	selVehicle    = "div.features-item-value-vehculo"
	selPrice      = "div.features-item-value-precio"
	selDescBlock  = "div.view-more-container"
	selDescTarget = "div.view-more-target"
	dataImagePref = "data:image"
	base64Marker  = "base64,"
)

var (
	whatsAppRE = regexp.MustCompile(`https://wa\.me/56(\d{9})`)
	priceRE    = regexp.MustCompile(`\$(\d{1,3}(?:,\d{3})+)`)
	yearRE     = regexp.MustCompile(`^\d{4}$`)
)

// Extract reads the listing fields out of an HTML page. Decoded contact
// images are handed to images; a nil sink marks the image field as failed.
func Extract(body []byte, images ImageSink) (*Listing, error) {
	if ct := http.DetectContentType(body); !strings.HasPrefix(ct, "text/") {
		return nil, ErrNotText
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	out := &Listing{}
	out.FullName, out.Year = extractVehicle(doc)
	out.Price = extractPrice(doc)
	out.Description = extractDescription(doc)
	out.ContactImage = extractImage(doc, images)
	out.WhatsApp = extractWhatsApp(doc)
	return out, nil
}

func extractVehicle(doc *goquery.Document) (fullName, year Field) {
	y, name := splitYear(cleanText(doc.Find(selVehicle).First()))
	if name == "" {
		hy, hname := splitYear(cleanText(doc.Find("h1").First()))
		name = hname
		if hy != "" {
			y = hy
		}
	}

	full := strings.TrimSpace(y + " " + name)
	fullName, year = absentField(), absentField()
	if full != "" {
		fullName = present(full)
	}
	if y != "" {
		year = present(y)
	}
	return fullName, year
}

// splitYear separates a leading four-digit year from the rest of a title.
func splitYear(text string) (year, name string) {
	if text == "" {
		return "", ""
	}
	first, rest, _ := strings.Cut(text, " ")
	if yearRE.MatchString(first) {
		return first, strings.TrimSpace(rest)
	}
	return "", text
}

func extractPrice(doc *goquery.Document) Field {
	raw := cleanText(doc.Find(selPrice).First())
	if raw == "" {
		return absentField()
	}
	if m := priceRE.FindStringSubmatch(raw); m != nil {
		return present(m[1])
	}
	return present(raw)
}

func extractDescription(doc *goquery.Document) Field {
	p := doc.Find(selDescBlock).First().
		Find(selDescTarget).First().
		Find("p").First()
	if text := cleanText(p); text != "" {
		return present(text)
	}
	return absentField()
}

func extractImage(doc *goquery.Document, images ImageSink) Field {
	var src string
	doc.Find("img[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("src")
		if strings.HasPrefix(v, dataImagePref) {
			src = v
			return false
		}
		return true
	})
	if src == "" {
		return absentField()
	}

	_, payload, ok := strings.Cut(src, base64Marker)
	if !ok {
		return failed("unrecognized image format")
	}
	data, err := decodeBase64(payload)
	if err != nil {
		return failed("decode: " + err.Error())
	}
	if images == nil {
		return failed("no image store configured")
	}
	path, err := images.Save(data)
	if err != nil {
		return failed("save: " + err.Error())
	}
	return present(path)
}

// decodeBase64 accepts padded or unpadded payloads with embedded whitespace.
func decodeBase64(payload string) ([]byte, error) {
	payload = strings.Join(strings.Fields(payload), "")
	data, err := base64.StdEncoding.DecodeString(payload)
	if err == nil {
		return data, nil
	}
	if raw, rerr := base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "=")); rerr == nil {
		return raw, nil
	}
	return nil, err
}

func extractWhatsApp(doc *goquery.Document) Field {
	var digits string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		if m := whatsAppRE.FindStringSubmatch(href); m != nil {
			digits = m[1]
			return false
		}
		return true
	})
	if digits == "" {
		return absentField()
	}
	return present(digits)
}

// cleanText returns the selection's text with runs of whitespace collapsed.
func cleanText(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	return strings.Join(strings.Fields(s.Text()), " ")
}
