package middleware

import (
	"net/url"
	"regexp"
	"slices"
	"strings"
)

var (
	// UUIDs go first; the phone pattern would otherwise eat their digit runs.
	uuidPattern  = regexp.MustCompile(`(?i)\b[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}\b`)
	emailPattern = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

var (
	alwaysMaskedHeaders = []string{"Authorization", "Cookie", "Set-Cookie"}
	// Contact filters carry seller data verbatim.
	alwaysMaskedParams = []string{"name", "phone"}
)

// RedactOptions extends the built-in masks of RedactingLogger. Header
// matching ignores case; query parameter names match exactly.
type RedactOptions struct {
	MaskHeaders []string
	MaskParams  []string
}

type redactor struct {
	headers map[string]bool
	params  map[string]bool
}

func newRedactor(opts RedactOptions) *redactor {
	r := &redactor{headers: map[string]bool{}, params: map[string]bool{}}
	for _, h := range slices.Concat(alwaysMaskedHeaders, opts.MaskHeaders) {
		if h = strings.TrimSpace(h); h != "" {
			r.headers[strings.ToLower(h)] = true
		}
	}
	for _, p := range slices.Concat(alwaysMaskedParams, opts.MaskParams) {
		if p = strings.TrimSpace(p); p != "" {
			r.params[p] = true
		}
	}
	return r
}

// text scrubs identifiers, emails and phone numbers from free text.
func (r *redactor) text(s string) string {
	if s == "" {
		return s
	}
	s = uuidPattern.ReplaceAllString(s, "[REDACTED:id]")
	s = emailPattern.ReplaceAllString(s, "[REDACTED:email]")
	return phonePattern.ReplaceAllString(s, "[REDACTED:phone]")
}

// query rewrites a raw query string pair by pair. Values of masked
// parameters are dropped entirely; the rest go through text. Values stay
// encoded so a "+" inside an email does not split the match.
func (r *redactor) query(raw string) string {
	if raw == "" {
		return raw
	}
	pairs := strings.Split(truncate(raw, maxQueryLogLength), "&")
	for i, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found {
			pairs[i] = r.text(pair)
			continue
		}
		name, err := url.QueryUnescape(key)
		if err != nil {
			name = key
		}
		if r.params[name] {
			pairs[i] = key + "=[REDACTED:" + name + "]"
			continue
		}
		pairs[i] = key + "=" + r.text(value)
	}
	return strings.Join(pairs, "&")
}

func (r *redactor) header(name string, values []string) string {
	if r.headers[strings.ToLower(name)] {
		return "[REDACTED]"
	}
	return r.text(strings.Join(values, ", "))
}
