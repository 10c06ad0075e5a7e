package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kdduha/healthy-eating/internal/handler"
	"github.com/kdduha/healthy-eating/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Analyze *handler.AnalyzeHandler
	Static  *handler.StaticHandler
	Logger  *zap.Logger
}

// NewRouter wires the two analysis routes, the operational GET routes and
// the static fallback. Unknown method/path pairs get a plain 404.
func NewRouter(h Handlers) http.Handler {
	logger := h.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use([]func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		Recoverer(logger),
		metrics.Middleware,
		CORS,
	}...)

	r.Post("/api/analyze", h.Analyze.AnalyzeText)
	r.Post("/api/analyze-image", h.Analyze.AnalyzeImage)

	r.Get("/healthz", handler.Health)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Get("/", h.Static.Index)
	r.Get("/*", h.Static.Index)

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		if req.Method == http.MethodGet {
			h.Static.Index(w, req)
			return
		}
		handler.NotFound(w, req)
	})
	return r
}
