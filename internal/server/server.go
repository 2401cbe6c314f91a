// Package server exposes the recommendation and search engine over HTTP:
// thin dispatch glue around the core catalog/recommend/phonetic packages,
// per the engine's documented out-of-scope boundary.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/tmmcguire/ashurbanipal-web-go/internal/config"
	"github.com/tmmcguire/ashurbanipal-web-go/pkg/catalog"
	"github.com/tmmcguire/ashurbanipal-web-go/pkg/phonetic"
	"github.com/tmmcguire/ashurbanipal-web-go/pkg/recommend"
)

// Engine bundles the loaded, read-only catalog state the dispatcher serves.
// Every field is safe for concurrent reads once built.
type Engine struct {
	Metadata    *catalog.Metadata
	Style       recommend.Recommender
	Topic       recommend.Recommender
	Combination recommend.Recommender
	Index       *phonetic.Index

	Pagination ServerPagination
}

// ServerPagination carries the default/maximum windowing behavior from
// config so handlers don't read the config struct directly.
type ServerPagination struct {
	DefaultLimit int
	MaximumLimit int
}

// NewRouter builds the chi router for an Engine: request logging via
// logrus middleware, then the five documented routes.
func NewRouter(engine *Engine, log *logrus.Logger) http.Handler {
	if log == nil {
		log = logrus.New()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	h := &handlers{engine: engine}
	r.Get("/style", h.recommend(engine.Style))
	r.Get("/topic", h.recommend(engine.Topic))
	r.Get("/combination", h.recommend(engine.Combination))
	r.Get("/lookup/{etextNo}", h.lookupOne)
	r.Get("/lookup", h.search)

	return r
}

// requestLogger logs method/path/status/duration for every request, a
// dispatcher-layer concern distinct from the catalog's own load-time
// Logger.
func requestLogger(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   ww.Status(),
				"duration": time.Since(start).String(),
			}).Info("request")
		})
	}
}

// BuildConfig converts a config.ServerConfig into ServerPagination.
func BuildConfig(cfg config.ServerConfig) ServerPagination {
	pg := ServerPagination{DefaultLimit: cfg.DefaultLimit, MaximumLimit: cfg.MaximumLimit}
	if pg.DefaultLimit <= 0 {
		pg.DefaultLimit = 20
	}
	if pg.MaximumLimit <= 0 {
		pg.MaximumLimit = 200
	}
	return pg
}
