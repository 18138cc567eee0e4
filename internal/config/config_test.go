package config

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func fromMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(fromMap(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	want := Config{
		Port:              "8080",
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
		GinMode:           "release",
		LogLevel:          "info",
		APIBasePath:       "/api/v1",
		DBPath:            "data/consignment.db",
		ImagePath:         "data/contact_image.png",
		WACountryCode:     "56",
		FetchTimeout:      10 * time.Second,
		RateRPS:           5,
		RateBurst:         10,
		FetchRPS:          1,
		FetchBurst:        3,
		Security:          SecurityConfig{HSTSMaxAge: 180 * 24 * time.Hour},
		IdempotencyTTL:    24 * time.Hour,
		OTEL: OTELConfig{
			Endpoint:    "localhost:4317",
			Insecure:    true,
			ServiceName: "consignment-leads",
			SampleRatio: 1,
		},
	}
	if !reflect.DeepEqual(cfg, want) {
		t.Fatalf("defaults:\n got %+v\nwant %+v", cfg, want)
	}
	if cfg.Location() != time.Local {
		t.Fatalf("location = %v", cfg.Location())
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(fromMap(map[string]string{
		"PORT":                        " 8088 ",
		"READ_TIMEOUT":                "2s",
		"GIN_MODE":                    "weird",
		"LOG_LEVEL":                   "WARNING",
		"LOG_PRETTY":                  "yes",
		"LOG_FILE":                    "logs/app.log",
		"SWAGGER_ENABLED":             "on",
		"API_BASE_PATH":               "api/v2/",
		"DB_PATH":                     "db.sqlite",
		"WA_COUNTRY_CODE":             "34",
		"REPORT_TZ":                   "America/Santiago",
		"FETCH_TIMEOUT":               "7s",
		"FETCH_USER_AGENT":            "ua/1",
		"FETCH_REFERER":               "https://ref.example/",
		"FETCH_RPS":                   "0.5",
		"FETCH_BURST":                 "2",
		"CORS_ALLOWED_ORIGINS":        " https://a.com , , http://b ",
		"ENABLE_HSTS":                 "TRUE",
		"HSTS_MAX_AGE":                "24h",
		"IDEMPOTENCY_TTL":             "48h",
		"OTEL_ENABLED":                "1",
		"OTEL_EXPORTER_OTLP_ENDPOINT": "otel:4317",
		"OTEL_EXPORTER_OTLP_INSECURE": "off",
		"OTEL_TRACES_SAMPLER_ARG":     "0.25",
		"RATE_BURST":                  "",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	checks := []struct {
		name string
		ok   bool
	}{
		{"port", cfg.Port == "8088"},
		{"read timeout", cfg.ReadTimeout == 2*time.Second},
		{"gin mode", cfg.GinMode == "release"},
		{"log level", cfg.LogLevel == "warn"},
		{"log output", cfg.LogPretty && cfg.LogFile == "logs/app.log"},
		{"swagger", cfg.SwaggerEnabled && cfg.APIBasePath == "/api/v2"},
		{"app", cfg.DBPath == "db.sqlite" && cfg.ImagePath == "data/contact_image.png" && cfg.WACountryCode == "34"},
		{"location", cfg.Location().String() == "America/Santiago"},
		{"fetcher", cfg.FetchTimeout == 7*time.Second && cfg.FetchUserAgent == "ua/1" && cfg.FetchReferer == "https://ref.example/"},
		{"limits", cfg.FetchRPS == 0.5 && cfg.FetchBurst == 2 && cfg.RateBurst == 10},
		{"cors", reflect.DeepEqual(cfg.CORS.AllowedOrigins, []string{"https://a.com", "http://b"})},
		{"hsts", cfg.Security.EnableHSTS && cfg.Security.HSTSMaxAge == 24*time.Hour},
		{"idempotency", cfg.IdempotencyTTL == 48*time.Hour},
		{"otel", cfg.OTEL.Enabled && cfg.OTEL.Endpoint == "otel:4317" && !cfg.OTEL.Insecure && cfg.OTEL.SampleRatio == 0.25},
	}
	for _, c := range checks {
		if !c.ok {
			t.Errorf("%s not applied: %+v", c.name, cfg)
		}
	}
}

func TestLoad_Rejects(t *testing.T) {
	cases := []struct {
		key, value, want string
	}{
		{"LOG_LEVEL", "verbose", "LOG_LEVEL"},
		{"PORT", "http", "PORT"},
		{"READ_TIMEOUT", "0s", "READ_TIMEOUT"},
		{"WRITE_TIMEOUT", "soon", `WRITE_TIMEOUT: "soon" is not a duration`},
		{"MAX_HEADER_BYTES", "0", "MAX_HEADER_BYTES"},
		{"MAX_HEADER_BYTES", "1k", `MAX_HEADER_BYTES: "1k" is not an integer`},
		{"API_BASE_PATH", "", ""},
		{"WA_COUNTRY_CODE", "+56", "WA_COUNTRY_CODE"},
		{"REPORT_TZ", "Mars/Olympus", "REPORT_TZ"},
		{"REPORT_TZ", "Local", "REPORT_TZ"},
		{"FETCH_TIMEOUT", "-1s", "FETCH_TIMEOUT"},
		{"FETCH_REFERER", "not a url", "FETCH_REFERER"},
		{"FETCH_BURST", "0", "FETCH_BURST"},
		{"RATE_RPS", "-1", "RATE_RPS"},
		{"RATE_RPS", "x", `RATE_RPS: "x" is not a number`},
		{"RATE_BURST", "0", "RATE_BURST"},
		{"HSTS_MAX_AGE", "-1s", "HSTS_MAX_AGE"},
		{"IDEMPOTENCY_TTL", "0s", "IDEMPOTENCY_TTL"},
		{"ENABLE_HSTS", "maybe", `ENABLE_HSTS: "maybe" is not a boolean`},
		{"OTEL_TRACES_SAMPLER_ARG", "1.5", "OTEL_TRACES_SAMPLER_ARG"},
	}
	for _, tc := range cases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			_, err := load(fromMap(map[string]string{tc.key: tc.value}))
			if tc.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error = %v; want it to mention %q", err, tc.want)
			}
		})
	}
}

func TestLoad_ReportsEveryProblem(t *testing.T) {
	_, err := load(fromMap(map[string]string{
		"RATE_BURST":      "0",
		"FETCH_BURST":     "0",
		"IDEMPOTENCY_TTL": "later",
	}))
	if err == nil {
		t.Fatal("expected error")
	}
	for _, key := range []string{"RATE_BURST", "FETCH_BURST", "IDEMPOTENCY_TTL"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("%s missing from %v", key, err)
		}
	}
}

func TestLoad_ProcessEnvironment(t *testing.T) {
	t.Setenv("WA_COUNTRY_CODE", "51")
	cfg := MustLoad()
	if cfg.WACountryCode != "51" {
		t.Fatalf("WACountryCode = %q", cfg.WACountryCode)
	}

	t.Setenv("LOG_LEVEL", "verbose")
	defer func() {
		if recover() == nil {
			t.Fatal("MustLoad should panic on invalid config")
		}
	}()
	MustLoad()
}

func TestNormalizeBasePath(t *testing.T) {
	for in, want := range map[string]string{
		"":        "/",
		" / ":     "/",
		"v1":      "/v1",
		"/v1/":    "/v1",
		"/api/v1": "/api/v1",
	} {
		if got := normalizeBasePath(in); got != want {
			t.Errorf("normalizeBasePath(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestSplitCSV(t *testing.T) {
	if got := splitCSV(""); got != nil {
		t.Fatalf("splitCSV(\"\") = %#v", got)
	}
	if got := splitCSV(" a, ,b ,  c  ,"); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("splitCSV = %#v", got)
	}
}
