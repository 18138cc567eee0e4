package scrape

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
)

// Browser-like request defaults. The marketplace serves a reduced page to
// clients that do not look like a desktop browser arriving from its home page.
const (
	DefaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/98.0.4758.102 Safari/537.36"
	DefaultReferer        = "https://www.chileautos.cl/"
	DefaultAcceptLanguage = "es-ES,es;q=0.9"
	DefaultTimeout        = 10 * time.Second

	acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
)

// ErrInvalidURL is returned before any network I/O for blank, relative or
// non-HTTP URLs.
var ErrInvalidURL = errors.New("scrape: invalid listing url")

// FetchError reports a listing page that could not be retrieved. StatusCode
// is set for non-2xx answers; Err is set for transport failures.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Timeout reports whether the request ran out of time.
func (e *FetchError) Timeout() bool {
	if e.Err == nil {
		return false
	}
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

// Fetcher performs one bounded GET per listing with a fixed browser header
// set. There are no retries; redirects follow the library defaults.
type Fetcher struct {
	Timeout        time.Duration
	UserAgent      string
	Referer        string
	AcceptLanguage string

	// Images receives decoded contact images during Fetch.
	Images ImageSink
}

// Fetch downloads rawURL and extracts its listing fields.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Listing, error) {
	body, err := f.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	return Extract(body, f.Images)
}

// Get downloads rawURL and returns the response body of a 2xx answer.
func (f *Fetcher) Get(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := ParseListingURL(rawURL)
	if err != nil {
		return nil, err
	}

	c := colly.NewCollector(
		colly.UserAgent(firstNonEmpty(f.UserAgent, DefaultUserAgent)),
		colly.AllowURLRevisit(),
		colly.ParseHTTPErrorResponse(),
		colly.StdlibContext(ctx),
	)
	c.SetRequestTimeout(f.timeout())

	referer := firstNonEmpty(f.Referer, DefaultReferer)
	lang := firstNonEmpty(f.AcceptLanguage, DefaultAcceptLanguage)
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", acceptHeader)
		r.Headers.Set("Accept-Language", lang)
		r.Headers.Set("Referer", referer)
	})

	var (
		status int
		body   []byte
	)
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = r.Body
	})

	if err := c.Visit(u.String()); err != nil {
		return nil, &FetchError{URL: u.String(), Err: err}
	}
	if status < 200 || status > 299 {
		return nil, &FetchError{URL: u.String(), StatusCode: status}
	}
	return body, nil
}

func (f *Fetcher) timeout() time.Duration {
	if f.Timeout > 0 {
		return f.Timeout
	}
	return DefaultTimeout
}

// ParseListingURL trims rawURL and accepts only absolute http(s) URLs.
func ParseListingURL(rawURL string) (*url.URL, error) {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return nil, ErrInvalidURL
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidURL
	}
	return u, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
