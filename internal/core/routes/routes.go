// Package routes is the REST surface of core. Each route validates its
// input, calls one adapter or process and maps the outcome to a status.
package routes

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gartstein/propertyhub/internal/core/adapters"
	"github.com/gartstein/propertyhub/internal/pkg/auth"
	"github.com/gartstein/propertyhub/internal/pkg/httpjson"
	"github.com/gartstein/propertyhub/internal/pkg/metrics"
	"github.com/gartstein/propertyhub/internal/pkg/middleware"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	propertyBase PropertyBase
	leases       Leases
	addComponent ComponentProcess
	logger       *zap.Logger
}

func NewHandler(propertyBase PropertyBase, leases Leases, addComponent ComponentProcess, logger *zap.Logger) *Handler {
	return &Handler{
		propertyBase: propertyBase,
		leases:       leases,
		addComponent: addComponent,
		logger:       logger.Named("core_routes"),
	}
}

// RouterConfig carries the cross-cutting pieces of the router. Metrics,
// RateLimiter and Health are optional.
type RouterConfig struct {
	JWTSecret      string
	AllowedOrigins []string
	Metrics        *metrics.Metrics
	RateLimiter    *middleware.RateLimiter
	Health         func(ctx context.Context) error
}

// Router builds the core HTTP surface. Every route except health and
// metrics requires a bearer token signed with cfg.JWTSecret.
func (h *Handler) Router(cfg RouterConfig) http.Handler {
	// Lease ids contain slashes; match on the encoded path so %2F stays
	// inside one variable.
	r := mux.NewRouter().UseEncodedPath()
	r.Use(middleware.RequestLogger(h.logger))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware)
		r.Handle("/metrics", cfg.Metrics.Handler()).Methods(http.MethodGet)
	}
	r.HandleFunc("/health", h.health(cfg.Health)).Methods(http.MethodGet)

	h.registerStructure(r)
	h.registerComponents(r)
	h.registerLeases(r)
	r.HandleFunc("/processes/add-component", h.runAddComponent).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		httpjson.Error(w, http.StatusNotFound, string(adapters.NotFound), "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		httpjson.Error(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	// The limiter sits inside the token check so buckets are keyed by the
	// authenticated subject rather than the caller's host.
	var handler http.Handler = r
	if cfg.RateLimiter != nil {
		handler = cfg.RateLimiter.Handler(handler)
	}
	handler = auth.HTTPMiddleware(handler, cfg.JWTSecret, auth.AllExceptPublic)
	return middleware.CORS(cfg.AllowedOrigins)(handler)
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

// kindStatus is the status each adapter error kind is answered with.
var kindStatus = map[adapters.ErrorKind]int{
	adapters.NotFound:   http.StatusNotFound,
	adapters.BadRequest: http.StatusBadRequest,
	adapters.Forbidden:  http.StatusForbidden,
	adapters.Conflict:   http.StatusConflict,
	adapters.Unknown:    http.StatusInternalServerError,
}

// mapAdapterError answers with the status of the error kind err carries.
func (h *Handler) mapAdapterError(w http.ResponseWriter, err error) {
	kind := adapters.KindOf(err)
	status := kindStatus[kind]
	if kind == adapters.Unknown {
		h.logger.Error("Upstream call failed", zap.Error(err))
		httpjson.Error(w, status, string(kind), "upstream request failed")
		return
	}
	httpjson.Error(w, status, string(kind), err.Error())
}

// pathVar returns the decoded path variable name.
func pathVar(r *http.Request, name string) (string, error) {
	raw := mux.Vars(r)[name]
	v, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("invalid %s %q", name, raw)
	}
	return v, nil
}
