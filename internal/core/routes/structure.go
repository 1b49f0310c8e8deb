package routes

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gartstein/propertyhub/internal/pkg/httpjson"
	"github.com/gartstein/propertyhub/internal/propertybase/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// StructureReader is the read side of the property structure.
type StructureReader interface {
	GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error)
	ListCompanies(ctx context.Context, p models.PageRequest) (models.Page[models.Company], error)
	GetProperty(ctx context.Context, id uuid.UUID) (*models.Property, error)
	ListProperties(ctx context.Context, f models.StructureFilter, p models.PageRequest) (models.Page[models.Property], error)
	GetBuilding(ctx context.Context, id uuid.UUID) (*models.Building, error)
	ListBuildings(ctx context.Context, f models.StructureFilter, p models.PageRequest) (models.Page[models.Building], error)
	GetStaircase(ctx context.Context, id uuid.UUID) (*models.Staircase, error)
	ListStaircases(ctx context.Context, f models.StructureFilter, p models.PageRequest) (models.Page[models.Staircase], error)
	GetResidence(ctx context.Context, id uuid.UUID) (*models.Residence, error)
	GetResidenceByRentalID(ctx context.Context, rentalID string) (*models.Residence, error)
	ListResidences(ctx context.Context, f models.StructureFilter, p models.PageRequest) (models.Page[models.Residence], error)
	GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error)
	ListRooms(ctx context.Context, f models.StructureFilter, p models.PageRequest) (models.Page[models.Room], error)
	Search(ctx context.Context, q string) ([]models.SearchResult, error)
}

// PropertyBase is everything core reads from or writes to the property base.
type PropertyBase interface {
	StructureReader
	ComponentStore
}

// minSearchLength is the shortest search term accepted.
const minSearchLength = 3

func (h *Handler) registerStructure(r *mux.Router) {
	pb := h.propertyBase

	r.HandleFunc("/companies", httpjson.List(h.mapAdapterError, httpjson.NoFilter,
		func(ctx context.Context, _ struct{}, p models.PageRequest) (models.Page[models.Company], error) {
			return pb.ListCompanies(ctx, p)
		})).Methods(http.MethodGet)
	r.HandleFunc("/companies/{id}", httpjson.Get(h.mapAdapterError, pb.GetCompany)).Methods(http.MethodGet)

	r.HandleFunc("/properties", httpjson.List(h.mapAdapterError, httpjson.StructureFilter, pb.ListProperties)).Methods(http.MethodGet)
	r.HandleFunc("/properties/{id}", httpjson.Get(h.mapAdapterError, pb.GetProperty)).Methods(http.MethodGet)
	r.HandleFunc("/buildings", httpjson.List(h.mapAdapterError, httpjson.StructureFilter, pb.ListBuildings)).Methods(http.MethodGet)
	r.HandleFunc("/buildings/{id}", httpjson.Get(h.mapAdapterError, pb.GetBuilding)).Methods(http.MethodGet)
	r.HandleFunc("/staircases", httpjson.List(h.mapAdapterError, httpjson.StructureFilter, pb.ListStaircases)).Methods(http.MethodGet)
	r.HandleFunc("/staircases/{id}", httpjson.Get(h.mapAdapterError, pb.GetStaircase)).Methods(http.MethodGet)

	r.HandleFunc("/residences", httpjson.List(h.mapAdapterError, httpjson.StructureFilter, pb.ListResidences)).Methods(http.MethodGet)
	r.HandleFunc("/residences/by-rental-id/{rentalId}", h.getResidenceByRentalID).Methods(http.MethodGet)
	r.HandleFunc("/residences/{id}", httpjson.Get(h.mapAdapterError, pb.GetResidence)).Methods(http.MethodGet)

	r.HandleFunc("/rooms", httpjson.List(h.mapAdapterError, httpjson.StructureFilter, pb.ListRooms)).Methods(http.MethodGet)
	r.HandleFunc("/rooms/{id}", httpjson.Get(h.mapAdapterError, pb.GetRoom)).Methods(http.MethodGet)

	r.HandleFunc("/search", h.search).Methods(http.MethodGet)
}

func (h *Handler) getResidenceByRentalID(w http.ResponseWriter, r *http.Request) {
	rentalID, err := pathVar(r, "rentalId")
	if err != nil {
		httpjson.BadRequest(w, err.Error())
		return
	}
	residence, err := h.propertyBase.GetResidenceByRentalID(r.Context(), rentalID)
	if err != nil {
		h.mapAdapterError(w, err)
		return
	}
	httpjson.Content(w, http.StatusOK, residence)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if utf8.RuneCountInString(q) < minSearchLength {
		httpjson.BadRequest(w, fmt.Sprintf("q must be at least %d characters", minSearchLength))
		return
	}
	results, err := h.propertyBase.Search(r.Context(), q)
	if err != nil {
		h.mapAdapterError(w, err)
		return
	}
	httpjson.Content(w, http.StatusOK, results)
}
