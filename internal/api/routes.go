package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vbukhtaev/pc-configurator-sub002/internal/metrics"
)

// RegisterRoutes registers the /v1 endpoints on rg:
//
//	POST /v1/builds/verify          - verify a selection against the catalog
//	POST /v1/builds/verify/resolved - verify a build with inline parts
//	GET  /v1/health                 - liveness and catalog summary
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers) {
	builds := rg.Group("/builds")
	{
		builds.POST("/verify", handlers.HandleVerify)
		builds.POST("/verify/resolved", handlers.HandleVerifyResolved)
	}
	rg.GET("/health", handlers.HandleHealth)
}

// NewRouter returns an engine with recovery, request metrics, a body size
// limit, the /v1 routes and GET /metrics.
func NewRouter(handlers *Handlers, maxBodyBytes int64) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestMetrics(handlers.metrics), limitBody(maxBodyBytes))

	router.GET("/metrics", gin.WrapH(handlers.metrics.Handler()))
	RegisterRoutes(router.Group("/v1"), handlers)
	return router
}

func requestMetrics(reg *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		reg.RecordHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}

func limitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if n > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}
