package routes

import (
	"context"
	"net/http"

	"github.com/gartstein/propertyhub/internal/pkg/httpjson"
	"github.com/gartstein/propertyhub/internal/propertybase/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// ComponentStore is the component hierarchy as the property base serves it.
type ComponentStore interface {
	GetCategory(ctx context.Context, id uuid.UUID) (*models.ComponentCategory, error)
	ListCategories(ctx context.Context, p models.PageRequest) (models.Page[models.ComponentCategory], error)
	CreateCategory(ctx context.Context, c *models.ComponentCategory) (*models.ComponentCategory, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, u *models.ComponentCategoryUpdate) (*models.ComponentCategory, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	GetType(ctx context.Context, id uuid.UUID) (*models.ComponentType, error)
	ListTypes(ctx context.Context, f models.ComponentFilter, p models.PageRequest) (models.Page[models.ComponentType], error)
	CreateType(ctx context.Context, t *models.ComponentType) (*models.ComponentType, error)
	UpdateType(ctx context.Context, id uuid.UUID, u *models.ComponentTypeUpdate) (*models.ComponentType, error)
	DeleteType(ctx context.Context, id uuid.UUID) error

	GetSubtype(ctx context.Context, id uuid.UUID) (*models.ComponentSubtype, error)
	ListSubtypes(ctx context.Context, f models.ComponentFilter, p models.PageRequest) (models.Page[models.ComponentSubtype], error)
	CreateSubtype(ctx context.Context, s *models.ComponentSubtype) (*models.ComponentSubtype, error)
	UpdateSubtype(ctx context.Context, id uuid.UUID, u *models.ComponentSubtypeUpdate) (*models.ComponentSubtype, error)
	DeleteSubtype(ctx context.Context, id uuid.UUID) error

	GetModel(ctx context.Context, id uuid.UUID) (*models.ComponentModel, error)
	ListModels(ctx context.Context, f models.ComponentFilter, p models.PageRequest) (models.Page[models.ComponentModel], error)
	CreateModel(ctx context.Context, m *models.ComponentModel) (*models.ComponentModel, error)
	UpdateModel(ctx context.Context, id uuid.UUID, u *models.ComponentModelUpdate) (*models.ComponentModel, error)
	DeleteModel(ctx context.Context, id uuid.UUID) error

	GetComponent(ctx context.Context, id uuid.UUID) (*models.Component, error)
	ListComponents(ctx context.Context, f models.ComponentFilter, p models.PageRequest) (models.Page[models.Component], error)
	CreateComponent(ctx context.Context, c *models.Component) (*models.Component, error)
	UpdateComponent(ctx context.Context, id uuid.UUID, u *models.ComponentUpdate) (*models.Component, error)
	DeleteComponent(ctx context.Context, id uuid.UUID) error

	GetInstallation(ctx context.Context, id uuid.UUID) (*models.ComponentInstallation, error)
	ListInstallations(ctx context.Context, f models.ComponentFilter, p models.PageRequest) (models.Page[models.ComponentInstallation], error)
	CreateInstallation(ctx context.Context, i *models.ComponentInstallation) (*models.ComponentInstallation, error)
	UpdateInstallation(ctx context.Context, id uuid.UUID, u *models.ComponentInstallationUpdate) (*models.ComponentInstallation, error)
	DeleteInstallation(ctx context.Context, id uuid.UUID) error
}

func (h *Handler) registerComponents(r *mux.Router) {
	pb := h.propertyBase

	r.HandleFunc("/component-categories", httpjson.List(h.mapAdapterError, httpjson.NoFilter,
		func(ctx context.Context, _ struct{}, p models.PageRequest) (models.Page[models.ComponentCategory], error) {
			return pb.ListCategories(ctx, p)
		})).Methods(http.MethodGet)
	r.HandleFunc("/component-categories", httpjson.Create(h.mapAdapterError, pb.CreateCategory)).Methods(http.MethodPost)
	r.HandleFunc("/component-categories/{id}", httpjson.Get(h.mapAdapterError, pb.GetCategory)).Methods(http.MethodGet)
	r.HandleFunc("/component-categories/{id}", httpjson.Update(h.mapAdapterError, pb.UpdateCategory)).Methods(http.MethodPut)
	r.HandleFunc("/component-categories/{id}", httpjson.Delete(h.mapAdapterError, pb.DeleteCategory)).Methods(http.MethodDelete)

	r.HandleFunc("/component-types", httpjson.List(h.mapAdapterError, httpjson.ComponentFilter, pb.ListTypes)).Methods(http.MethodGet)
	r.HandleFunc("/component-types", httpjson.Create(h.mapAdapterError, pb.CreateType)).Methods(http.MethodPost)
	r.HandleFunc("/component-types/{id}", httpjson.Get(h.mapAdapterError, pb.GetType)).Methods(http.MethodGet)
	r.HandleFunc("/component-types/{id}", httpjson.Update(h.mapAdapterError, pb.UpdateType)).Methods(http.MethodPut)
	r.HandleFunc("/component-types/{id}", httpjson.Delete(h.mapAdapterError, pb.DeleteType)).Methods(http.MethodDelete)

	r.HandleFunc("/component-subtypes", httpjson.List(h.mapAdapterError, httpjson.ComponentFilter, pb.ListSubtypes)).Methods(http.MethodGet)
	r.HandleFunc("/component-subtypes", httpjson.Create(h.mapAdapterError, pb.CreateSubtype)).Methods(http.MethodPost)
	r.HandleFunc("/component-subtypes/{id}", httpjson.Get(h.mapAdapterError, pb.GetSubtype)).Methods(http.MethodGet)
	r.HandleFunc("/component-subtypes/{id}", httpjson.Update(h.mapAdapterError, pb.UpdateSubtype)).Methods(http.MethodPut)
	r.HandleFunc("/component-subtypes/{id}", httpjson.Delete(h.mapAdapterError, pb.DeleteSubtype)).Methods(http.MethodDelete)

	r.HandleFunc("/component-models", httpjson.List(h.mapAdapterError, httpjson.ComponentFilter, pb.ListModels)).Methods(http.MethodGet)
	r.HandleFunc("/component-models", httpjson.Create(h.mapAdapterError, pb.CreateModel)).Methods(http.MethodPost)
	r.HandleFunc("/component-models/{id}", httpjson.Get(h.mapAdapterError, pb.GetModel)).Methods(http.MethodGet)
	r.HandleFunc("/component-models/{id}", httpjson.Update(h.mapAdapterError, pb.UpdateModel)).Methods(http.MethodPut)
	r.HandleFunc("/component-models/{id}", httpjson.Delete(h.mapAdapterError, pb.DeleteModel)).Methods(http.MethodDelete)

	r.HandleFunc("/components", httpjson.List(h.mapAdapterError, httpjson.ComponentFilter, pb.ListComponents)).Methods(http.MethodGet)
	r.HandleFunc("/components", httpjson.Create(h.mapAdapterError, pb.CreateComponent)).Methods(http.MethodPost)
	r.HandleFunc("/components/{id}", httpjson.Get(h.mapAdapterError, pb.GetComponent)).Methods(http.MethodGet)
	r.HandleFunc("/components/{id}", httpjson.Update(h.mapAdapterError, pb.UpdateComponent)).Methods(http.MethodPut)
	r.HandleFunc("/components/{id}", httpjson.Delete(h.mapAdapterError, pb.DeleteComponent)).Methods(http.MethodDelete)

	r.HandleFunc("/component-installations", httpjson.List(h.mapAdapterError, httpjson.ComponentFilter, pb.ListInstallations)).Methods(http.MethodGet)
	r.HandleFunc("/component-installations", httpjson.Create(h.mapAdapterError, pb.CreateInstallation)).Methods(http.MethodPost)
	r.HandleFunc("/component-installations/{id}", httpjson.Get(h.mapAdapterError, pb.GetInstallation)).Methods(http.MethodGet)
	r.HandleFunc("/component-installations/{id}", httpjson.Update(h.mapAdapterError, pb.UpdateInstallation)).Methods(http.MethodPut)
	r.HandleFunc("/component-installations/{id}", httpjson.Delete(h.mapAdapterError, pb.DeleteInstallation)).Methods(http.MethodDelete)
}
