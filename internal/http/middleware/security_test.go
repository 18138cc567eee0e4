package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func securityRouter(opt SecurityOptions, pre gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if pre != nil {
		r.Use(pre)
	}
	r.Use(SecurityHeaders(opt))
	r.GET("/exports/:batch/report.html", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestSecurityHeaders_Defaults(t *testing.T) {
	r := securityRouter(SecurityOptions{}, nil)
	h := serve(r, http.MethodGet, "/exports/b1/report.html", nil).Header()

	want := map[string]string{
		"X-Content-Type-Options":            "nosniff",
		"X-Frame-Options":                   "DENY",
		"Referrer-Policy":                   "no-referrer",
		"Permissions-Policy":                "",
		"X-Permitted-Cross-Domain-Policies": "",
		"Cache-Control":                     "",
		"Strict-Transport-Security":         "",
		"Access-Control-Expose-Headers":     "",
	}
	for k, v := range want {
		if got := h.Get(k); got != v {
			t.Errorf("%s = %q; want %q", k, got, v)
		}
	}
}

func TestSecurityHeaders_AllOptions(t *testing.T) {
	r := securityRouter(SecurityOptions{
		EnableHSTS:   true,
		HSTSMaxAge:   24 * time.Hour,
		NoStore:      true,
		EnablePolicy: true,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/exports/b1/report.html", nil)
	req.TLS = &tls.ConnectionState{}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	h := w.Header()

	want := map[string]string{
		"Permissions-Policy":                "geolocation=(), microphone=(), camera=(), payment=()",
		"X-Permitted-Cross-Domain-Policies": "none",
		"Cache-Control":                     "no-store",
		"Pragma":                            "no-cache",
		"Expires":                           "0",
		"Strict-Transport-Security":         "max-age=86400; includeSubDomains; preload",
	}
	for k, v := range want {
		if got := h.Get(k); got != v {
			t.Errorf("%s = %q; want %q", k, got, v)
		}
	}
}

func TestSecurityHeaders_HSTSNeedsHTTPS(t *testing.T) {
	r := securityRouter(SecurityOptions{EnableHSTS: true}, nil)

	if got := serve(r, http.MethodGet, "/exports/b1/report.html", nil).Header().Get("Strict-Transport-Security"); got != "" {
		t.Fatalf("HSTS on plain HTTP: %q", got)
	}
	got := serve(r, http.MethodGet, "/exports/b1/report.html", map[string]string{"X-Forwarded-Proto": "HTTPS"}).
		Header().Get("Strict-Transport-Security")
	if got != "max-age=15552000; includeSubDomains; preload" {
		t.Fatalf("HSTS behind proxy = %q", got)
	}
}

func TestSecurityHeaders_ExposeHeaders(t *testing.T) {
	cases := []struct {
		name     string
		existing string
		extra    []string
		want     string
	}{
		{"request id only", "", nil, "X-Request-ID"},
		{"appends to existing", "ETag", nil, "ETag, X-Request-ID"},
		{"extras follow", "", []string{"Content-Disposition", "Idempotency-Replayed"}, "X-Request-ID, Content-Disposition, Idempotency-Replayed"},
		{"no duplicates", "x-request-id, Content-Disposition", []string{"Content-Disposition"}, "x-request-id, Content-Disposition"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pre := func(c *gin.Context) {
				c.Header(requestIDHeader, "rid-s")
				if tc.existing != "" {
					c.Header("Access-Control-Expose-Headers", tc.existing)
				}
				c.Next()
			}
			r := securityRouter(SecurityOptions{ExposeHeaders: tc.extra}, pre)
			got := serve(r, http.MethodGet, "/exports/b1/report.html", nil).Header().Get("Access-Control-Expose-Headers")
			if got != tc.want {
				t.Fatalf("expose = %q; want %q", got, tc.want)
			}
		})
	}
}

func TestIsHTTPS(t *testing.T) {
	plain := httptest.NewRequest(http.MethodGet, "/", nil)
	withTLS := httptest.NewRequest(http.MethodGet, "/", nil)
	withTLS.TLS = &tls.ConnectionState{}
	proxied := httptest.NewRequest(http.MethodGet, "/", nil)
	proxied.Header.Set("X-Forwarded-Proto", "https")

	if isHTTPS(plain) || !isHTTPS(withTLS) || !isHTTPS(proxied) {
		t.Fatal("isHTTPS misclassified a request")
	}
}
