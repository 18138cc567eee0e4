// Package config reads server settings from the environment. Every value
// has a default; malformed values and values that fail validation are
// reported together by Load.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS"`
}

type SecurityConfig struct {
	EnableHSTS bool          `env:"ENABLE_HSTS"`
	HSTSMaxAge time.Duration `env:"HSTS_MAX_AGE" validate:"gte=0"`
}

// OTELConfig controls trace export. Tracing is off unless Enabled.
type OTELConfig struct {
	Enabled     bool    `env:"OTEL_ENABLED"`
	Endpoint    string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" validate:"required_if=Enabled true"`
	Insecure    bool    `env:"OTEL_EXPORTER_OTLP_INSECURE"`
	ServiceName string  `env:"OTEL_SERVICE_NAME" validate:"required"`
	SampleRatio float64 `env:"OTEL_TRACES_SAMPLER_ARG" validate:"gte=0,lte=1"`
}

// Config is the full server configuration. The env tag names the variable
// each field is read from.
type Config struct {
	Port              string        `env:"PORT" validate:"required,number"`
	ReadTimeout       time.Duration `env:"READ_TIMEOUT" validate:"gt=0"`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" validate:"gt=0"`
	WriteTimeout      time.Duration `env:"WRITE_TIMEOUT" validate:"gt=0"`
	IdleTimeout       time.Duration `env:"IDLE_TIMEOUT" validate:"gt=0"`
	MaxHeaderBytes    int           `env:"MAX_HEADER_BYTES" validate:"gt=0"`
	GinMode           string        `env:"GIN_MODE" validate:"oneof=debug release test"`

	LogLevel       string `env:"LOG_LEVEL" validate:"oneof=debug info warn error fatal panic"`
	LogPretty      bool   `env:"LOG_PRETTY"`
	LogFile        string `env:"LOG_FILE"`
	SwaggerEnabled bool   `env:"SWAGGER_ENABLED"`
	APIBasePath    string `env:"API_BASE_PATH" validate:"startswith=/"`

	DBPath    string `env:"DB_PATH" validate:"required"`
	ImagePath string `env:"IMAGE_PATH" validate:"required"`
	// WACountryCode is prepended to contact phones in wa.me links.
	WACountryCode string `env:"WA_COUNTRY_CODE" validate:"required,number"`
	// ReportTZ is the IANA zone of report timestamps; empty means local time.
	ReportTZ string `env:"REPORT_TZ" validate:"omitempty,timezone"`

	FetchTimeout   time.Duration `env:"FETCH_TIMEOUT" validate:"gt=0"`
	FetchUserAgent string        `env:"FETCH_USER_AGENT"`
	FetchReferer   string        `env:"FETCH_REFERER" validate:"omitempty,http_url"`

	RateRPS    float64 `env:"RATE_RPS" validate:"gte=0"`
	RateBurst  int     `env:"RATE_BURST" validate:"min=1"`
	FetchRPS   float64 `env:"FETCH_RPS" validate:"gte=0"`
	FetchBurst int     `env:"FETCH_BURST" validate:"min=1"`

	CORS     CORSConfig
	Security SecurityConfig

	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" validate:"gt=0"`

	OTEL OTELConfig
}

// MustLoad is Load for main: it panics on any error.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load builds a Config from the process environment.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookup func(string) (string, bool)) (Config, error) {
	e := &env{lookup: lookup}
	cfg := Config{
		Port:              e.str("PORT", "8080"),
		ReadTimeout:       e.duration("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: e.duration("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      e.duration("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       e.duration("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    e.integer("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(e.str("GIN_MODE", "release")),

		LogLevel:       strings.ToLower(e.str("LOG_LEVEL", "info")),
		LogPretty:      e.flag("LOG_PRETTY", false),
		LogFile:        e.str("LOG_FILE", ""),
		SwaggerEnabled: e.flag("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(e.str("API_BASE_PATH", "/api/v1")),

		DBPath:        e.str("DB_PATH", "data/consignment.db"),
		ImagePath:     e.str("IMAGE_PATH", "data/contact_image.png"),
		WACountryCode: e.str("WA_COUNTRY_CODE", "56"),
		ReportTZ:      e.str("REPORT_TZ", ""),

		FetchTimeout:   e.duration("FETCH_TIMEOUT", 10*time.Second),
		FetchUserAgent: e.str("FETCH_USER_AGENT", ""),
		FetchReferer:   e.str("FETCH_REFERER", ""),

		RateRPS:    e.number("RATE_RPS", 5),
		RateBurst:  e.integer("RATE_BURST", 10),
		FetchRPS:   e.number("FETCH_RPS", 1),
		FetchBurst: e.integer("FETCH_BURST", 3),

		CORS: CORSConfig{AllowedOrigins: splitCSV(e.str("CORS_ALLOWED_ORIGINS", ""))},
		Security: SecurityConfig{
			EnableHSTS: e.flag("ENABLE_HSTS", false),
			HSTSMaxAge: e.duration("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		IdempotencyTTL: e.duration("IDEMPOTENCY_TTL", 24*time.Hour),

		OTEL: OTELConfig{
			Enabled:     e.flag("OTEL_ENABLED", false),
			Endpoint:    e.str("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    e.flag("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: e.str("OTEL_SERVICE_NAME", "consignment-leads"),
			SampleRatio: e.number("OTEL_TRACES_SAMPLER_ARG", 1),
		},
	}

	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	if cfg.GinMode != "debug" && cfg.GinMode != "test" {
		cfg.GinMode = "release"
	}

	return cfg, errors.Join(append(e.errs, check(cfg)...)...)
}

// Location resolves ReportTZ, falling back to time.Local.
func (c Config) Location() *time.Location {
	if c.ReportTZ == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.ReportTZ)
	if err != nil {
		return time.Local
	}
	return loc
}

var rules = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string { return f.Tag.Get("env") })
	return v
}()

func check(cfg Config) []error {
	err := rules.Struct(cfg)
	var fes validator.ValidationErrors
	if !errors.As(err, &fes) {
		if err != nil {
			return []error{err}
		}
		return nil
	}
	out := make([]error, 0, len(fes))
	for _, fe := range fes {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		out = append(out, fmt.Errorf("%s: %q fails %s", fe.Field(), fmt.Sprint(fe.Value()), rule))
	}
	return out
}

// env reads typed variables and remembers every value it could not parse.
// Unset and blank variables take the default.
type env struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (e *env) raw(key string) (string, bool) {
	v, ok := e.lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (e *env) str(key, def string) string {
	if v, ok := e.raw(key); ok {
		return v
	}
	return def
}

func (e *env) bad(key, v, want string) {
	e.errs = append(e.errs, fmt.Errorf("%s: %q is not %s", key, v, want))
}

func (e *env) integer(key string, def int) int {
	v, ok := e.raw(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.bad(key, v, "an integer")
		return def
	}
	return n
}

func (e *env) number(key string, def float64) float64 {
	v, ok := e.raw(key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.bad(key, v, "a number")
		return def
	}
	return f
}

func (e *env) duration(key string, def time.Duration) time.Duration {
	v, ok := e.raw(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.bad(key, v, "a duration")
		return def
	}
	return d
}

func (e *env) flag(key string, def bool) bool {
	v, ok := e.raw(key)
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	}
	e.bad(key, v, "a boolean")
	return def
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// normalizeBasePath returns p with one leading slash and no trailing slash;
// an empty path becomes "/".
func normalizeBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	return "/" + p
}
