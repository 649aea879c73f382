// Package api serves build verification over HTTP.
package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vbukhtaev/pc-configurator-sub002/internal/build"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/catalog"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/metrics"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/profile"
	"github.com/vbukhtaev/pc-configurator-sub002/internal/verify"
)

// Options configures Handlers.
type Options struct {
	// DefaultProfile applies when a request names none.
	DefaultProfile string
	Version        string
	Metrics        *metrics.Registry
}

// Handlers serves the verification endpoints. The catalog and verifiers are
// read-only after construction, so one Handlers serves concurrent requests.
type Handlers struct {
	catalog        *catalog.Catalog
	verifiers      map[string]*verify.Verifier
	defaultProfile string
	version        string
	metrics        *metrics.Registry
}

// NewHandlers builds one verifier per known profile. cat may be nil, in which
// case only resolved builds can be verified.
func NewHandlers(cat *catalog.Catalog, opts Options) (*Handlers, error) {
	if opts.DefaultProfile == "" {
		opts.DefaultProfile = "default"
	}
	if _, err := profile.Get(opts.DefaultProfile); err != nil {
		return nil, err
	}
	if cat == nil {
		cat = catalog.New()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewRegistry()
	}

	h := &Handlers{
		catalog:        cat,
		verifiers:      make(map[string]*verify.Verifier),
		defaultProfile: opts.DefaultProfile,
		version:        opts.Version,
		metrics:        opts.Metrics,
	}
	for _, name := range profile.Names() {
		p, _ := profile.Get(name)
		h.verifiers[name] = verify.New(verify.WithProfile(p), verify.WithVersion(opts.Version))
	}
	h.metrics.SetCatalogParts(cat.Counts())
	return h, nil
}

func (h *Handlers) verifier(name string) (*verify.Verifier, bool) {
	if name == "" {
		name = h.defaultProfile
	}
	v, ok := h.verifiers[name]
	return v, ok
}

// HandleVerify handles POST /v1/builds/verify.
//
// Resolves the selection against the catalog and returns the report. An
// incompatible or incomplete build is still a 200; only request problems map
// to error statuses.
func (h *Handlers) HandleVerify(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleVerify")

	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: CodeInvalidRequest})
		return
	}

	v, ok := h.verifier(req.Profile)
	if !ok {
		logger.Warn("Unknown profile", "profile", req.Profile)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown profile " + req.Profile, Code: CodeUnknownProfile})
		return
	}

	b, err := h.catalog.Resolve(req.Selection)
	if err != nil {
		status, code := http.StatusBadRequest, CodeInvalidBuild
		if errors.Is(err, catalog.ErrPartNotFound) {
			status, code = http.StatusNotFound, CodePartNotFound
		}
		logger.Warn("Selection did not resolve", "error", err)
		c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
		return
	}
	b.Name = req.Name

	h.respond(c, logger, v, b)
}

// HandleVerifyResolved handles POST /v1/builds/verify/resolved.
func (h *Handlers) HandleVerifyResolved(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := slog.With("request_id", requestID, "handler", "HandleVerifyResolved")

	var req ResolvedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid request body", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Code: CodeInvalidRequest})
		return
	}

	v, ok := h.verifier(req.Profile)
	if !ok {
		logger.Warn("Unknown profile", "profile", req.Profile)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown profile " + req.Profile, Code: CodeUnknownProfile})
		return
	}

	if err := req.Build.Validate(); err != nil {
		logger.Warn("Invalid build", "error", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: CodeInvalidBuild})
		return
	}

	h.respond(c, logger, v, &req.Build)
}

func (h *Handlers) respond(c *gin.Context, logger *slog.Logger, v *verify.Verifier, b *build.Build) {
	start := time.Now()
	report, err := v.Verify(b)
	if err != nil {
		logger.Error("Verification failed", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Code: CodeVerifyFailed})
		return
	}
	h.metrics.RecordVerification(report, time.Since(start))

	logger.Info("Build verified",
		"build", report.Build,
		"profile", report.Profile,
		"compatible", report.Compatible,
		"errors", report.Summary.ErrorCount,
		"warnings", report.Summary.WarningCount)

	c.JSON(http.StatusOK, report)
}

// HandleHealth handles GET /v1/health.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:       "healthy",
		Version:      h.version,
		Profile:      h.defaultProfile,
		CatalogHash:  h.catalog.Hash,
		CatalogParts: h.catalog.Len(),
	})
}

// getOrCreateRequestID returns the caller's X-Request-ID or a new UUID, and
// echoes it on the response.
func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}
