package routes

import (
	"context"
	"net/http"

	"github.com/gartstein/propertyhub/internal/core/adapters/leasing"
	"github.com/gartstein/propertyhub/internal/pkg/httpjson"
	"github.com/gorilla/mux"
)

type Leases interface {
	GetLease(ctx context.Context, id string) (*leasing.Lease, error)
	ListByRentalObjectCode(ctx context.Context, code string, includeTerminated bool) ([]leasing.Lease, error)
}

func (h *Handler) registerLeases(r *mux.Router) {
	r.HandleFunc("/leases/by-rental-object-code/{code}", h.leasesByRentalObjectCode).Methods(http.MethodGet)
	r.HandleFunc("/leases/{id}", h.getLease).Methods(http.MethodGet)
	r.HandleFunc("/residences/{id}/leases", h.residenceLeases).Methods(http.MethodGet)
}

func (h *Handler) getLease(w http.ResponseWriter, r *http.Request) {
	id, err := pathVar(r, "id")
	if err != nil {
		httpjson.BadRequest(w, err.Error())
		return
	}
	lease, err := h.leases.GetLease(r.Context(), id)
	if err != nil {
		h.mapAdapterError(w, err)
		return
	}
	httpjson.Content(w, http.StatusOK, lease)
}

func (h *Handler) leasesByRentalObjectCode(w http.ResponseWriter, r *http.Request) {
	code, err := pathVar(r, "code")
	if err != nil {
		httpjson.BadRequest(w, err.Error())
		return
	}
	q := httpjson.NewQuery(r)
	includeTerminated := q.Bool("includeTerminated")
	if err := q.Err(); err != nil {
		httpjson.BadRequest(w, err.Error())
		return
	}
	h.writeLeases(r.Context(), w, code, includeTerminated)
}

// residenceLeases resolves the residence's rental object code first. A
// residence without one has no leases.
func (h *Handler) residenceLeases(w http.ResponseWriter, r *http.Request) {
	id, err := httpjson.PathID(r)
	if err != nil {
		httpjson.BadRequest(w, err.Error())
		return
	}
	q := httpjson.NewQuery(r)
	includeTerminated := q.Bool("includeTerminated")
	if err := q.Err(); err != nil {
		httpjson.BadRequest(w, err.Error())
		return
	}

	residence, err := h.propertyBase.GetResidence(r.Context(), id)
	if err != nil {
		h.mapAdapterError(w, err)
		return
	}
	if residence.RentalID == "" {
		httpjson.Content(w, http.StatusOK, []leasing.Lease{})
		return
	}
	h.writeLeases(r.Context(), w, residence.RentalID, includeTerminated)
}

func (h *Handler) writeLeases(ctx context.Context, w http.ResponseWriter, code string, includeTerminated bool) {
	leases, err := h.leases.ListByRentalObjectCode(ctx, code, includeTerminated)
	if err != nil {
		h.mapAdapterError(w, err)
		return
	}
	httpjson.Content(w, http.StatusOK, leases)
}
