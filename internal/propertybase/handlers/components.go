package handlers

import (
	"context"
	"net/http"

	"github.com/gartstein/propertyhub/internal/pkg/httpjson"
	"github.com/gartstein/propertyhub/internal/propertybase/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// ComponentController is the service surface for the component hierarchy.
type ComponentController interface {
	CreateCategory(ctx context.Context, c *models.ComponentCategory) (*models.ComponentCategory, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*models.ComponentCategory, error)
	ListCategories(ctx context.Context, page models.PageRequest) (models.Page[models.ComponentCategory], error)
	UpdateCategory(ctx context.Context, u *models.ComponentCategoryUpdate) (*models.ComponentCategory, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CreateType(ctx context.Context, t *models.ComponentType) (*models.ComponentType, error)
	GetType(ctx context.Context, id uuid.UUID) (*models.ComponentType, error)
	ListTypes(ctx context.Context, f models.ComponentFilter, page models.PageRequest) (models.Page[models.ComponentType], error)
	UpdateType(ctx context.Context, u *models.ComponentTypeUpdate) (*models.ComponentType, error)
	DeleteType(ctx context.Context, id uuid.UUID) error

	CreateSubtype(ctx context.Context, s *models.ComponentSubtype) (*models.ComponentSubtype, error)
	GetSubtype(ctx context.Context, id uuid.UUID) (*models.ComponentSubtype, error)
	ListSubtypes(ctx context.Context, f models.ComponentFilter, page models.PageRequest) (models.Page[models.ComponentSubtype], error)
	UpdateSubtype(ctx context.Context, u *models.ComponentSubtypeUpdate) (*models.ComponentSubtype, error)
	DeleteSubtype(ctx context.Context, id uuid.UUID) error

	CreateModel(ctx context.Context, m *models.ComponentModel) (*models.ComponentModel, error)
	GetModel(ctx context.Context, id uuid.UUID) (*models.ComponentModel, error)
	ListModels(ctx context.Context, f models.ComponentFilter, page models.PageRequest) (models.Page[models.ComponentModel], error)
	UpdateModel(ctx context.Context, u *models.ComponentModelUpdate) (*models.ComponentModel, error)
	DeleteModel(ctx context.Context, id uuid.UUID) error

	CreateComponent(ctx context.Context, c *models.Component) (*models.Component, error)
	GetComponent(ctx context.Context, id uuid.UUID) (*models.Component, error)
	ListComponents(ctx context.Context, f models.ComponentFilter, page models.PageRequest) (models.Page[models.Component], error)
	UpdateComponent(ctx context.Context, u *models.ComponentUpdate) (*models.Component, error)
	DeleteComponent(ctx context.Context, id uuid.UUID) error

	CreateInstallation(ctx context.Context, i *models.ComponentInstallation) (*models.ComponentInstallation, error)
	GetInstallation(ctx context.Context, id uuid.UUID) (*models.ComponentInstallation, error)
	ListInstallations(ctx context.Context, f models.ComponentFilter, page models.PageRequest) (models.Page[models.ComponentInstallation], error)
	UpdateInstallation(ctx context.Context, u *models.ComponentInstallationUpdate) (*models.ComponentInstallation, error)
	DeleteInstallation(ctx context.Context, id uuid.UUID) error
}

func (h *Handler) registerComponents(r *mux.Router) {
	c := h.components

	r.HandleFunc("/component-categories", httpjson.List(h.mapServiceError, httpjson.NoFilter,
		func(ctx context.Context, _ struct{}, page models.PageRequest) (models.Page[models.ComponentCategory], error) {
			return c.ListCategories(ctx, page)
		})).Methods(http.MethodGet)
	r.HandleFunc("/component-categories", httpjson.Create(h.mapServiceError, c.CreateCategory)).Methods(http.MethodPost)
	r.HandleFunc("/component-categories/{id}", httpjson.Get(h.mapServiceError, c.GetCategory)).Methods(http.MethodGet)
	r.HandleFunc("/component-categories/{id}", handleUpdate(h,
		func(u *models.ComponentCategoryUpdate, id uuid.UUID) { u.ID = id }, c.UpdateCategory)).Methods(http.MethodPut)
	r.HandleFunc("/component-categories/{id}", httpjson.Delete(h.mapServiceError, c.DeleteCategory)).Methods(http.MethodDelete)

	r.HandleFunc("/component-types", httpjson.List(h.mapServiceError, httpjson.ComponentFilter, c.ListTypes)).Methods(http.MethodGet)
	r.HandleFunc("/component-types", httpjson.Create(h.mapServiceError, c.CreateType)).Methods(http.MethodPost)
	r.HandleFunc("/component-types/{id}", httpjson.Get(h.mapServiceError, c.GetType)).Methods(http.MethodGet)
	r.HandleFunc("/component-types/{id}", handleUpdate(h,
		func(u *models.ComponentTypeUpdate, id uuid.UUID) { u.ID = id }, c.UpdateType)).Methods(http.MethodPut)
	r.HandleFunc("/component-types/{id}", httpjson.Delete(h.mapServiceError, c.DeleteType)).Methods(http.MethodDelete)

	r.HandleFunc("/component-subtypes", httpjson.List(h.mapServiceError, httpjson.ComponentFilter, c.ListSubtypes)).Methods(http.MethodGet)
	r.HandleFunc("/component-subtypes", httpjson.Create(h.mapServiceError, c.CreateSubtype)).Methods(http.MethodPost)
	r.HandleFunc("/component-subtypes/{id}", httpjson.Get(h.mapServiceError, c.GetSubtype)).Methods(http.MethodGet)
	r.HandleFunc("/component-subtypes/{id}", handleUpdate(h,
		func(u *models.ComponentSubtypeUpdate, id uuid.UUID) { u.ID = id }, c.UpdateSubtype)).Methods(http.MethodPut)
	r.HandleFunc("/component-subtypes/{id}", httpjson.Delete(h.mapServiceError, c.DeleteSubtype)).Methods(http.MethodDelete)

	r.HandleFunc("/component-models", httpjson.List(h.mapServiceError, httpjson.ComponentFilter, c.ListModels)).Methods(http.MethodGet)
	r.HandleFunc("/component-models", httpjson.Create(h.mapServiceError, c.CreateModel)).Methods(http.MethodPost)
	r.HandleFunc("/component-models/{id}", httpjson.Get(h.mapServiceError, c.GetModel)).Methods(http.MethodGet)
	r.HandleFunc("/component-models/{id}", handleUpdate(h,
		func(u *models.ComponentModelUpdate, id uuid.UUID) { u.ID = id }, c.UpdateModel)).Methods(http.MethodPut)
	r.HandleFunc("/component-models/{id}", httpjson.Delete(h.mapServiceError, c.DeleteModel)).Methods(http.MethodDelete)

	r.HandleFunc("/components", httpjson.List(h.mapServiceError, httpjson.ComponentFilter, c.ListComponents)).Methods(http.MethodGet)
	r.HandleFunc("/components", httpjson.Create(h.mapServiceError, c.CreateComponent)).Methods(http.MethodPost)
	r.HandleFunc("/components/{id}", httpjson.Get(h.mapServiceError, c.GetComponent)).Methods(http.MethodGet)
	r.HandleFunc("/components/{id}", handleUpdate(h,
		func(u *models.ComponentUpdate, id uuid.UUID) { u.ID = id }, c.UpdateComponent)).Methods(http.MethodPut)
	r.HandleFunc("/components/{id}", httpjson.Delete(h.mapServiceError, c.DeleteComponent)).Methods(http.MethodDelete)

	r.HandleFunc("/component-installations", httpjson.List(h.mapServiceError, httpjson.ComponentFilter, c.ListInstallations)).Methods(http.MethodGet)
	r.HandleFunc("/component-installations", httpjson.Create(h.mapServiceError, c.CreateInstallation)).Methods(http.MethodPost)
	r.HandleFunc("/component-installations/{id}", httpjson.Get(h.mapServiceError, c.GetInstallation)).Methods(http.MethodGet)
	r.HandleFunc("/component-installations/{id}", handleUpdate(h,
		func(u *models.ComponentInstallationUpdate, id uuid.UUID) { u.ID = id }, c.UpdateInstallation)).Methods(http.MethodPut)
	r.HandleFunc("/component-installations/{id}", httpjson.Delete(h.mapServiceError, c.DeleteInstallation)).Methods(http.MethodDelete)
}
