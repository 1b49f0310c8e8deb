package handlers

import (
	"context"
	"net/http"

	"github.com/gartstein/propertyhub/internal/pkg/httpjson"
	"github.com/gartstein/propertyhub/internal/propertybase/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// StructureController is the service surface for the property structure.
type StructureController interface {
	CreateCompany(ctx context.Context, company *models.Company) (*models.Company, error)
	GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error)
	ListCompanies(ctx context.Context, page models.PageRequest) (models.Page[models.Company], error)
	CreateProperty(ctx context.Context, property *models.Property) (*models.Property, error)
	GetProperty(ctx context.Context, id uuid.UUID) (*models.Property, error)
	ListProperties(ctx context.Context, f models.StructureFilter, page models.PageRequest) (models.Page[models.Property], error)
	CreateBuilding(ctx context.Context, building *models.Building) (*models.Building, error)
	GetBuilding(ctx context.Context, id uuid.UUID) (*models.Building, error)
	ListBuildings(ctx context.Context, f models.StructureFilter, page models.PageRequest) (models.Page[models.Building], error)
	CreateStaircase(ctx context.Context, staircase *models.Staircase) (*models.Staircase, error)
	GetStaircase(ctx context.Context, id uuid.UUID) (*models.Staircase, error)
	ListStaircases(ctx context.Context, f models.StructureFilter, page models.PageRequest) (models.Page[models.Staircase], error)
	CreateResidence(ctx context.Context, residence *models.Residence) (*models.Residence, error)
	GetResidence(ctx context.Context, id uuid.UUID) (*models.Residence, error)
	GetResidenceByRentalID(ctx context.Context, rentalID string) (*models.Residence, error)
	ListResidences(ctx context.Context, f models.StructureFilter, page models.PageRequest) (models.Page[models.Residence], error)
	CreateRoom(ctx context.Context, room *models.Room) (*models.Room, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error)
	ListRooms(ctx context.Context, f models.StructureFilter, page models.PageRequest) (models.Page[models.Room], error)
	Search(ctx context.Context, q string) ([]models.SearchResult, error)
}

func (h *Handler) registerStructure(r *mux.Router) {
	s := h.structure

	r.HandleFunc("/companies", httpjson.List(h.mapServiceError, httpjson.NoFilter,
		func(ctx context.Context, _ struct{}, page models.PageRequest) (models.Page[models.Company], error) {
			return s.ListCompanies(ctx, page)
		})).Methods(http.MethodGet)
	r.HandleFunc("/companies", httpjson.Create(h.mapServiceError, s.CreateCompany)).Methods(http.MethodPost)
	r.HandleFunc("/companies/{id}", httpjson.Get(h.mapServiceError, s.GetCompany)).Methods(http.MethodGet)

	r.HandleFunc("/properties", httpjson.List(h.mapServiceError, httpjson.StructureFilter, s.ListProperties)).Methods(http.MethodGet)
	r.HandleFunc("/properties", httpjson.Create(h.mapServiceError, s.CreateProperty)).Methods(http.MethodPost)
	r.HandleFunc("/properties/{id}", httpjson.Get(h.mapServiceError, s.GetProperty)).Methods(http.MethodGet)

	r.HandleFunc("/buildings", httpjson.List(h.mapServiceError, httpjson.StructureFilter, s.ListBuildings)).Methods(http.MethodGet)
	r.HandleFunc("/buildings", httpjson.Create(h.mapServiceError, s.CreateBuilding)).Methods(http.MethodPost)
	r.HandleFunc("/buildings/{id}", httpjson.Get(h.mapServiceError, s.GetBuilding)).Methods(http.MethodGet)

	r.HandleFunc("/staircases", httpjson.List(h.mapServiceError, httpjson.StructureFilter, s.ListStaircases)).Methods(http.MethodGet)
	r.HandleFunc("/staircases", httpjson.Create(h.mapServiceError, s.CreateStaircase)).Methods(http.MethodPost)
	r.HandleFunc("/staircases/{id}", httpjson.Get(h.mapServiceError, s.GetStaircase)).Methods(http.MethodGet)

	r.HandleFunc("/residences", httpjson.List(h.mapServiceError, httpjson.StructureFilter, s.ListResidences)).Methods(http.MethodGet)
	r.HandleFunc("/residences", httpjson.Create(h.mapServiceError, s.CreateResidence)).Methods(http.MethodPost)
	r.HandleFunc("/residences/by-rental-id/{rentalId}", h.getResidenceByRentalID).Methods(http.MethodGet)
	r.HandleFunc("/residences/{id}", httpjson.Get(h.mapServiceError, s.GetResidence)).Methods(http.MethodGet)

	r.HandleFunc("/rooms", httpjson.List(h.mapServiceError, httpjson.StructureFilter, s.ListRooms)).Methods(http.MethodGet)
	r.HandleFunc("/rooms", httpjson.Create(h.mapServiceError, s.CreateRoom)).Methods(http.MethodPost)
	r.HandleFunc("/rooms/{id}", httpjson.Get(h.mapServiceError, s.GetRoom)).Methods(http.MethodGet)

	r.HandleFunc("/search", h.search).Methods(http.MethodGet)
}

func (h *Handler) getResidenceByRentalID(w http.ResponseWriter, r *http.Request) {
	residence, err := h.structure.GetResidenceByRentalID(r.Context(), mux.Vars(r)["rentalId"])
	if err != nil {
		h.mapServiceError(w, err)
		return
	}
	httpjson.Content(w, http.StatusOK, residence)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	results, err := h.structure.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.mapServiceError(w, err)
		return
	}
	httpjson.Content(w, http.StatusOK, results)
}
