package propertybase

import (
	"context"
	"fmt"

	"github.com/gartstein/propertyhub/internal/core/adapters"
	"github.com/gartstein/propertyhub/internal/core/cache"
	"github.com/gartstein/propertyhub/internal/propertybase/models"
	"github.com/google/uuid"
)

const (
	categories      = "component-categories"
	types           = "component-types"
	subtypes        = "component-subtypes"
	componentModels = "component-models"
	components      = "components"
	installations   = "component-installations"
)

// ErrAmbiguousModel is returned when an exact model name matches more than
// one model.
var ErrAmbiguousModel = fmt.Errorf("%w: model name matches several models", adapters.Conflict)

// Categories

func (a *Adapter) GetCategory(ctx context.Context, id uuid.UUID) (*models.ComponentCategory, error) {
	return get[models.ComponentCategory](ctx, a, cache.Categories, categories, id)
}

func (a *Adapter) ListCategories(ctx context.Context, p models.PageRequest) (models.Page[models.ComponentCategory], error) {
	return list[models.ComponentCategory](ctx, a, cache.Categories, categories, pageQuery(p))
}

func (a *Adapter) CreateCategory(ctx context.Context, c *models.ComponentCategory) (*models.ComponentCategory, error) {
	return create(ctx, a, categories, c)
}

func (a *Adapter) UpdateCategory(ctx context.Context, id uuid.UUID, u *models.ComponentCategoryUpdate) (*models.ComponentCategory, error) {
	return update[models.ComponentCategoryUpdate, models.ComponentCategory](ctx, a, categories, id, u)
}

func (a *Adapter) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return a.remove(ctx, categories, id)
}

// Types

func (a *Adapter) GetType(ctx context.Context, id uuid.UUID) (*models.ComponentType, error) {
	return get[models.ComponentType](ctx, a, cache.Types, types, id)
}

func (a *Adapter) ListTypes(ctx context.Context, f models.ComponentFilter, p models.PageRequest) (models.Page[models.ComponentType], error) {
	return list[models.ComponentType](ctx, a, cache.Types, types, componentQuery(f, p))
}

func (a *Adapter) CreateType(ctx context.Context, t *models.ComponentType) (*models.ComponentType, error) {
	return create(ctx, a, types, t)
}

func (a *Adapter) UpdateType(ctx context.Context, id uuid.UUID, u *models.ComponentTypeUpdate) (*models.ComponentType, error) {
	return update[models.ComponentTypeUpdate, models.ComponentType](ctx, a, types, id, u)
}

func (a *Adapter) DeleteType(ctx context.Context, id uuid.UUID) error {
	return a.remove(ctx, types, id)
}

// Subtypes

func (a *Adapter) GetSubtype(ctx context.Context, id uuid.UUID) (*models.ComponentSubtype, error) {
	return get[models.ComponentSubtype](ctx, a, cache.Subtypes, subtypes, id)
}

func (a *Adapter) ListSubtypes(ctx context.Context, f models.ComponentFilter, p models.PageRequest) (models.Page[models.ComponentSubtype], error) {
	return list[models.ComponentSubtype](ctx, a, cache.Subtypes, subtypes, componentQuery(f, p))
}

func (a *Adapter) CreateSubtype(ctx context.Context, s *models.ComponentSubtype) (*models.ComponentSubtype, error) {
	return create(ctx, a, subtypes, s)
}

func (a *Adapter) UpdateSubtype(ctx context.Context, id uuid.UUID, u *models.ComponentSubtypeUpdate) (*models.ComponentSubtype, error) {
	return update[models.ComponentSubtypeUpdate, models.ComponentSubtype](ctx, a, subtypes, id, u)
}

func (a *Adapter) DeleteSubtype(ctx context.Context, id uuid.UUID) error {
	return a.remove(ctx, subtypes, id)
}

// Models are never cached: the add-component process looks them up by name
// right before deciding whether to create one.

func (a *Adapter) GetModel(ctx context.Context, id uuid.UUID) (*models.ComponentModel, error) {
	return get[models.ComponentModel](ctx, a, "", componentModels, id)
}

func (a *Adapter) ListModels(ctx context.Context, f models.ComponentFilter, p models.PageRequest) (models.Page[models.ComponentModel], error) {
	return list[models.ComponentModel](ctx, a, "", componentModels, componentQuery(f, p))
}

// FindModelByName returns the model whose name equals name exactly, or an
// error of kind NotFound. A non-nil subtypeID restricts the lookup to that
// subtype; without it a name shared by several subtypes is ErrAmbiguousModel.
func (a *Adapter) FindModelByName(ctx context.Context, name string, subtypeID uuid.UUID) (*models.ComponentModel, error) {
	page, err := a.ListModels(ctx, models.ComponentFilter{ModelName: name, SubtypeID: subtypeID}, models.PageRequest{Page: 1, Limit: 2})
	if err != nil {
		return nil, err
	}
	// Filter again locally in case the upstream matches loosely.
	var matches []models.ComponentModel
	for _, m := range page.Content {
		if m.ModelName == name && (subtypeID == uuid.Nil || m.SubtypeID == subtypeID) {
			matches = append(matches, m)
		}
	}
	switch len(matches) {
	case 0:
		return nil, &adapters.Error{Kind: adapters.NotFound, Upstream: a.client.Name(), Message: "no model named " + name}
	case 1:
		return &matches[0], nil
	}
	return nil, ErrAmbiguousModel
}

func (a *Adapter) CreateModel(ctx context.Context, m *models.ComponentModel) (*models.ComponentModel, error) {
	return create(ctx, a, componentModels, m)
}

func (a *Adapter) UpdateModel(ctx context.Context, id uuid.UUID, u *models.ComponentModelUpdate) (*models.ComponentModel, error) {
	return update[models.ComponentModelUpdate, models.ComponentModel](ctx, a, componentModels, id, u)
}

func (a *Adapter) DeleteModel(ctx context.Context, id uuid.UUID) error {
	return a.remove(ctx, componentModels, id)
}

// Components

func (a *Adapter) GetComponent(ctx context.Context, id uuid.UUID) (*models.Component, error) {
	return get[models.Component](ctx, a, "", components, id)
}

func (a *Adapter) ListComponents(ctx context.Context, f models.ComponentFilter, p models.PageRequest) (models.Page[models.Component], error) {
	return list[models.Component](ctx, a, "", components, componentQuery(f, p))
}

func (a *Adapter) CreateComponent(ctx context.Context, c *models.Component) (*models.Component, error) {
	return create(ctx, a, components, c)
}

func (a *Adapter) UpdateComponent(ctx context.Context, id uuid.UUID, u *models.ComponentUpdate) (*models.Component, error) {
	return update[models.ComponentUpdate, models.Component](ctx, a, components, id, u)
}

func (a *Adapter) DeleteComponent(ctx context.Context, id uuid.UUID) error {
	return a.remove(ctx, components, id)
}

// Installations

func (a *Adapter) GetInstallation(ctx context.Context, id uuid.UUID) (*models.ComponentInstallation, error) {
	return get[models.ComponentInstallation](ctx, a, "", installations, id)
}

func (a *Adapter) ListInstallations(ctx context.Context, f models.ComponentFilter, p models.PageRequest) (models.Page[models.ComponentInstallation], error) {
	return list[models.ComponentInstallation](ctx, a, "", installations, componentQuery(f, p))
}

func (a *Adapter) CreateInstallation(ctx context.Context, i *models.ComponentInstallation) (*models.ComponentInstallation, error) {
	return create(ctx, a, installations, i)
}

func (a *Adapter) UpdateInstallation(ctx context.Context, id uuid.UUID, u *models.ComponentInstallationUpdate) (*models.ComponentInstallation, error) {
	return update[models.ComponentInstallationUpdate, models.ComponentInstallation](ctx, a, installations, id, u)
}

func (a *Adapter) DeleteInstallation(ctx context.Context, id uuid.UUID) error {
	return a.remove(ctx, installations, id)
}
