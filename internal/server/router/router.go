package router

import (
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mamadbah2/geotree/internal/config"
	"github.com/mamadbah2/geotree/internal/domain/models"
	"github.com/mamadbah2/geotree/internal/metrics"
	"github.com/mamadbah2/geotree/internal/server/handlers"
)

const requestIDHeader = "X-Request-ID"

// Handlers groups the HTTP adapters mounted by the router.
type Handlers struct {
	Carbon     *handlers.CarbonHandler
	Plantation *handlers.PlantationHandler
	Health     *handlers.HealthHandler
}

// Options carries the cross-cutting dependencies of the engine.
type Options struct {
	Server   config.ServerConfig
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Logger   *zap.Logger
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, opts Options) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))
	r.Use(metricsMiddleware(opts.Metrics))
	r.Use(cors.New(corsConfig(opts.Server.AllowedOrigins)))

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	api.GET("/health", h.Health.Health)

	carbon := api.Group("/carbon")
	carbon.GET("/home-type-list", h.Carbon.ListTypes(models.CarbonTypeHome))
	carbon.GET("/transport-type-list", h.Carbon.ListTypes(models.CarbonTypeTransport))
	carbon.GET("/electricity-list", h.Carbon.ListTypes(models.CarbonTypeElectricity))
	carbon.GET("/food-type-list", h.Carbon.ListTypes(models.CarbonTypeFood))
	carbon.GET("/type-list", h.Carbon.ListAllTypes)
	carbon.POST("/add-all-types", h.Carbon.AddAllTypes)
	carbon.POST("/submit", h.Carbon.Submit)
	carbon.GET("/result", h.Carbon.Result)
	carbon.GET("/species", h.Carbon.Species)

	api.GET("/plant/list", h.Plantation.ListPlants)
	api.POST("/plant/add", h.Plantation.AddPlant)
	api.GET("/location/list", h.Plantation.ListLocations)
	api.POST("/location/add", h.Plantation.AddLocation)
	api.POST("/plantation/submit", h.Plantation.Submit)
	api.GET("/plantation/history", h.Plantation.History)
	api.GET("/certificate/details", h.Plantation.CertificateDetails)
	api.GET("/certificate/download", h.Plantation.DownloadCertificate)
	api.GET("/certificate/verify", h.Plantation.VerifyCertificate)

	logger.Info("router initialized")

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Requested-With", requestIDHeader}
	cfg.ExposeHeaders = []string{requestIDHeader}
	return cfg
}

// requestIDMiddleware propagates the caller's request ID or assigns a new one.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func metricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
