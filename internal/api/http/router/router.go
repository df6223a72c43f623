package router

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"prekeyd/internal/api/http/handler"
	"prekeyd/internal/api/http/middleware"
	"prekeyd/internal/logger"
	"prekeyd/internal/metrics"
)

// Pinger reports storage reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router wires the retrieval endpoints, health and metrics onto a chi mux.
type Router struct {
	keysService handler.KeysService
	pinger      Pinger
	logger      *logger.Logger
}

// New creates a new Router instance.
func New(keysService handler.KeysService, pinger Pinger, logger *logger.Logger) *Router {
	return &Router{
		keysService: keysService,
		pinger:      pinger,
		logger:      logger,
	}
}

// Register builds the mux with request logging and all routes.
func (r *Router) Register() chi.Router {
	keys := handler.NewKeys(r.keysService, r.logger)
	logging := middleware.NewLogging(r.logger)

	mux := chi.NewRouter()
	mux.Use(logging.Handle)

	mux.Get("/v1/keys/{number}", keys.GetMasterKey)
	mux.Get("/v1/keys/{number}/{device}", keys.GetKeys)

	mux.Get("/ping", r.ping)
	mux.Handle("/metrics", metrics.Handler())

	return mux
}

func (r *Router) ping(w http.ResponseWriter, req *http.Request) {
	if r.pinger != nil {
		if err := r.pinger.Ping(req.Context()); err != nil {
			r.logger.Error("health check failed", "error", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
}
