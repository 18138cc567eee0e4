// Package httpapi builds the Gin engine: services, middleware and routes.
package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-consignment-leads/internal/config"
	"github.com/tbourn/go-consignment-leads/internal/docs"
	"github.com/tbourn/go-consignment-leads/internal/http/handlers"
	"github.com/tbourn/go-consignment-leads/internal/http/middleware"
	"github.com/tbourn/go-consignment-leads/internal/links"
	"github.com/tbourn/go-consignment-leads/internal/scrape"
	"github.com/tbourn/go-consignment-leads/internal/services"
)

// Services bundles the application services behind the API. NewServices
// builds the production set; tests may swap individual members.
type Services struct {
	Campaigns *services.CampaignService
	Contacts  *services.ContactService
	Templates *services.TemplateService
	Listings  handlers.ListingService
	Exports   *services.ExportService
}

// NewServices wires every service to db and the configured scraper, image
// slot and link generator.
func NewServices(db *gorm.DB, cfg config.Config) Services {
	images := &scrape.ImageSlot{Path: cfg.ImagePath}
	return Services{
		Campaigns: &services.CampaignService{DB: db},
		Contacts:  &services.ContactService{DB: db},
		Templates: &services.TemplateService{DB: db, MaxRunes: 2000},
		Listings: &services.ListingService{
			DB: db,
			Fetcher: &scrape.Fetcher{
				Timeout:   cfg.FetchTimeout,
				UserAgent: cfg.FetchUserAgent,
				Referer:   cfg.FetchReferer,
				Images:    images,
			},
			Images: images,
		},
		Exports: &services.ExportService{
			DB:             db,
			Links:          links.Generator{CountryCode: cfg.WACountryCode},
			IdempotencyTTL: cfg.IdempotencyTTL,
			Location:       cfg.Location(),
		},
	}
}

// RegisterRoutes installs the middleware chain and every endpoint on r.
// Order: tracing, request id, redacted access log, recovery, body cap,
// metrics, idempotency (so replays can skip the limiter), rate limit, CORS,
// security headers, gzip.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	mount(r, cfg, NewServices(db, cfg))
}

func mount(r *gin.Engine, cfg config.Config, svc Services) {
	r.HandleMethodNotAllowed = true

	r.Use(
		otelgin.Middleware(cfg.OTEL.ServiceName),
		middleware.RequestID(),
		middleware.RedactingLogger(middleware.RedactOptions{MaskHeaders: []string{"X-API-Key"}}),
		middleware.Recovery(),
		limitBody(1<<20),
		middleware.Metrics(),
	)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.Use(middleware.IdempotencyValidator(
		middleware.IdempotencyOptions{MaxLen: 200, Scope: exportScope(cfg.APIBasePath)},
		func(ctx context.Context, scope, key string, _ time.Time) (bool, error) {
			_, found, err := svc.Exports.ReplayBatch(ctx, scope, key)
			return found, err
		},
	))
	r.Use(middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP()).Handler())
	r.Use(corsHandlers(cfg.CORS.AllowedOrigins)...)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:    cfg.Security.EnableHSTS,
		HSTSMaxAge:    cfg.Security.HSTSMaxAge,
		EnablePolicy:  true,
		ExposeHeaders: []string{"Content-Disposition", "Idempotency-Replayed"},
	}))
	// /metrics negotiates its own encoding.
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(svc.Campaigns, svc.Contacts, svc.Templates, svc.Listings, svc.Exports)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Campaign links
		api.POST("/campaigns", h.CreateCampaign)
		api.GET("/campaigns", h.ListCampaigns)
		api.GET("/campaigns.xlsx", h.CampaignsWorkbook)
		api.GET("/campaigns/:id", h.GetCampaign)
		api.PUT("/campaigns/:id", h.UpdateCampaign)
		api.DELETE("/campaigns/:id", h.DeleteCampaign)
		api.GET("/campaigns/:id/stats", h.CampaignStats)

		// Contacts
		api.POST("/campaigns/:id/contacts", h.CreateContact)
		api.GET("/campaigns/:id/contacts", h.ListCampaignContacts)
		api.GET("/contacts", h.SearchContacts)
		api.GET("/contacts/:id", h.GetContact)
		api.PUT("/contacts/:id", h.UpdateContact)
		api.DELETE("/contacts/:id", h.DeleteContact)
		api.GET("/contacts/:id/exports", h.ContactExports)

		// Message templates
		api.POST("/templates", h.CreateTemplate)
		api.GET("/templates", h.ListTemplates)
		api.PUT("/templates/:id", h.UpdateTemplate)
		api.DELETE("/templates/:id", h.DeleteTemplate)

		// Exports
		api.POST("/campaigns/:id/exports", h.CreateExport)
		api.GET("/exports/:batch/report.html", h.ExportReport)
		api.GET("/exports/:batch/contacts.xlsx", h.ExportWorkbook)
	}

	// Listing pages hit a third-party site: one shared budget for all clients.
	fetchRL := middleware.NewRateLimiter(cfg.FetchRPS, cfg.FetchBurst, middleware.KeyShared("listings"))
	listings := api.Group("/listings", fetchRL.Handler())
	{
		listings.POST("/fetch", h.FetchListing)
		listings.POST("/prefill", h.PrefillListing)
		listings.GET("/image", h.ListingImage)
	}
}

// corsHandlers allows any origin when origins is empty. Otherwise only
// listed origins are echoed back. Credentials are never allowed.
func corsHandlers(origins []string) []gin.HandlerFunc {
	conf := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "If-None-Match", middleware.HeaderIdempotencyKey},
		ExposeHeaders: []string{"X-Request-ID", "Content-Length", "Content-Disposition", "ETag", "Idempotency-Replayed"},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 {
		conf.AllowAllOrigins = true
		// Also on requests without an Origin header, which cors skips.
		star := func(c *gin.Context) {
			c.Header("Access-Control-Allow-Origin", "*")
			c.Next()
		}
		return []gin.HandlerFunc{star, cors.New(conf)}
	}

	conf.AllowOrigins = origins
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	echo := func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); allowed[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Add("Vary", "Origin")
		}
		c.Next()
	}
	return []gin.HandlerFunc{echo, cors.New(conf)}
}

// exportScope binds Idempotency-Key lookups to the campaign of
// POST <base>/campaigns/:id/exports. Other requests get no scope.
func exportScope(base string) func(*gin.Context) string {
	prefix := strings.TrimSuffix(base, "/") + "/campaigns/"
	return func(c *gin.Context) string {
		if c.Request.Method != http.MethodPost {
			return ""
		}
		rest, found := strings.CutPrefix(c.Request.URL.Path, prefix)
		if !found {
			return ""
		}
		idText, tail, _ := strings.Cut(rest, "/")
		if tail != "exports" {
			return ""
		}
		id, err := strconv.ParseUint(idText, 10, 32)
		if err != nil || id == 0 {
			return ""
		}
		return services.CampaignScope(uint(id))
	}
}

// limitBody makes body reads past maxBytes fail.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
