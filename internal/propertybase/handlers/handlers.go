// Package handlers exposes the property base over REST.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gartstein/propertyhub/internal/pkg/auth"
	"github.com/gartstein/propertyhub/internal/pkg/httpjson"
	"github.com/gartstein/propertyhub/internal/pkg/metrics"
	"github.com/gartstein/propertyhub/internal/pkg/middleware"
	e "github.com/gartstein/propertyhub/internal/propertybase/errors"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Handler serves the structure and component resources.
type Handler struct {
	structure  StructureController
	components ComponentController
	logger     *zap.Logger
}

func NewHandler(structure StructureController, components ComponentController, logger *zap.Logger) *Handler {
	return &Handler{
		structure:  structure,
		components: components,
		logger:     logger.Named("http_handler"),
	}
}

// RouterConfig carries the cross-cutting pieces of the router.
type RouterConfig struct {
	JWTSecret string
	Metrics   *metrics.Metrics
	// Health reports whether backing stores are reachable.
	Health func(ctx context.Context) error
}

// Router builds the full HTTP surface. Mutating requests require a bearer
// token signed with cfg.JWTSecret.
func (h *Handler) Router(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(h.logger))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
		r.Handle("/metrics", cfg.Metrics.Handler()).Methods(http.MethodGet)
	}
	r.HandleFunc("/health", h.health(cfg.Health)).Methods(http.MethodGet)

	h.registerStructure(r)
	h.registerComponents(r)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		httpjson.Error(w, http.StatusNotFound, "not-found", "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		httpjson.Error(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	return auth.HTTPMiddleware(r, cfg.JWTSecret, auth.Mutations)
}

func (h *Handler) health(check func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			if err := check(r.Context()); err != nil {
				h.logger.Warn("Health check failed", zap.Error(err))
				httpjson.Write(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httpjson.Write(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// mapServiceError maps domain or repository errors to HTTP statuses.
func (h *Handler) mapServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, e.ErrNotFound):
		httpjson.Error(w, http.StatusNotFound, "not-found", err.Error())
	case errors.Is(err, e.ErrInvalidInput):
		httpjson.Error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, e.ErrDuplicateName),
		errors.Is(err, e.ErrHasChildren),
		errors.Is(err, e.ErrAlreadyInstalled):
		httpjson.Error(w, http.StatusConflict, "conflict", err.Error())
	default:
		h.logger.Error("Internal server error", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

// handleUpdate puts the path id into the update before applying it.
func handleUpdate[U, T any](h *Handler, setID func(*U, uuid.UUID), update func(context.Context, *U) (*T, error)) http.HandlerFunc {
	return httpjson.Update(h.mapServiceError, func(ctx context.Context, id uuid.UUID, input *U) (*T, error) {
		setID(input, id)
		return update(ctx, input)
	})
}
