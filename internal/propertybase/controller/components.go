package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gartstein/propertyhub/internal/propertybase/db"
	e "github.com/gartstein/propertyhub/internal/propertybase/errors"
	"github.com/gartstein/propertyhub/internal/propertybase/events"
	"github.com/gartstein/propertyhub/internal/propertybase/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ComponentRepository defines the storage interface for the component
// hierarchy.
type ComponentRepository interface {
	CreateCategory(ctx context.Context, c *models.ComponentCategory) error
	GetCategory(ctx context.Context, id uuid.UUID) (*models.ComponentCategory, error)
	ListCategories(ctx context.Context, page models.PageRequest) ([]models.ComponentCategory, int64, error)
	UpdateCategory(ctx context.Context, u *models.ComponentCategoryUpdate) error
	CategoryExistsByName(ctx context.Context, name string, exclude uuid.UUID) (bool, error)

	CreateType(ctx context.Context, t *models.ComponentType) error
	GetType(ctx context.Context, id uuid.UUID) (*models.ComponentType, error)
	ListTypes(ctx context.Context, f models.ComponentFilter, page models.PageRequest) ([]models.ComponentType, int64, error)
	UpdateType(ctx context.Context, u *models.ComponentTypeUpdate) error

	CreateSubtype(ctx context.Context, s *models.ComponentSubtype) error
	GetSubtype(ctx context.Context, id uuid.UUID) (*models.ComponentSubtype, error)
	ListSubtypes(ctx context.Context, f models.ComponentFilter, page models.PageRequest) ([]models.ComponentSubtype, int64, error)
	UpdateSubtype(ctx context.Context, u *models.ComponentSubtypeUpdate) error

	CreateModel(ctx context.Context, m *models.ComponentModel) error
	GetModel(ctx context.Context, id uuid.UUID) (*models.ComponentModel, error)
	ListModels(ctx context.Context, f models.ComponentFilter, page models.PageRequest) ([]models.ComponentModel, int64, error)
	UpdateModel(ctx context.Context, u *models.ComponentModelUpdate) error
	ModelExistsByName(ctx context.Context, subtypeID uuid.UUID, name string, exclude uuid.UUID) (bool, error)

	CreateComponent(ctx context.Context, c *models.Component) error
	GetComponent(ctx context.Context, id uuid.UUID) (*models.Component, error)
	ListComponents(ctx context.Context, f models.ComponentFilter, page models.PageRequest) ([]models.Component, int64, error)
	UpdateComponent(ctx context.Context, u *models.ComponentUpdate) error

	CreateInstallation(ctx context.Context, i *models.ComponentInstallation) error
	GetInstallation(ctx context.Context, id uuid.UUID) (*models.ComponentInstallation, error)
	ListInstallations(ctx context.Context, f models.ComponentFilter, page models.PageRequest) ([]models.ComponentInstallation, int64, error)
	UpdateInstallation(ctx context.Context, u *models.ComponentInstallationUpdate) error
	ActiveInstallation(ctx context.Context, componentID uuid.UUID) (*models.ComponentInstallation, error)

	WithTransaction(ctx context.Context, fn func(repo *db.Repository) error) error
}

// ComponentService manages the category > type > subtype > model >
// component > installation hierarchy and publishes a change event for
// every successful mutation.
type ComponentService struct {
	repo     ComponentRepository
	producer EventProducer
	logger   *zap.Logger
}

func NewComponentService(repo ComponentRepository, producer EventProducer, logger *zap.Logger) *ComponentService {
	return &ComponentService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("component_service"),
	}
}

func (s *ComponentService) publish(entity models.Entity, action events.Action, id uuid.UUID, payload any) {
	event := events.NewEvent(entity, action, id, payload)
	go func() {
		s.producer.Produce(event)
	}()
}

// deleteGuarded removes a record inside a transaction after checking that
// nothing references it.
func (s *ComponentService) deleteGuarded(ctx context.Context, entity models.Entity, id uuid.UUID,
	del func(*db.Repository, context.Context, uuid.UUID) error) error {
	err := s.repo.WithTransaction(ctx, func(repo *db.Repository) error {
		count, err := repo.CountChildren(ctx, entity, id)
		if err != nil {
			return fmt.Errorf("failed to count children: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("%w: %s %s has %d children", e.ErrHasChildren, entity, id, count)
		}
		return del(repo, ctx, id)
	})
	if err != nil {
		if errors.Is(err, e.ErrNotFound) || errors.Is(err, e.ErrHasChildren) {
			return err
		}
		return fmt.Errorf("failed to delete %s: %w", entity, err)
	}
	s.publish(entity, events.Deleted, id, nil)
	return nil
}

func nonNegative(field string, v float64) error {
	if v < 0 {
		return invalid("%s must not be negative", field)
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Categories

func (s *ComponentService) CreateCategory(ctx context.Context, c *models.ComponentCategory) (*models.ComponentCategory, error) {
	if strings.TrimSpace(c.CategoryName) == "" {
		return nil, invalid("categoryName is required")
	}
	exists, err := s.repo.CategoryExistsByName(ctx, c.CategoryName, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check name existence: %w", err)
	}
	if exists {
		return nil, e.ErrDuplicateName
	}

	c.ID = uuid.New()
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	s.publish(models.EntityCategory, events.Created, c.ID, c)
	return c, nil
}

func (s *ComponentService) GetCategory(ctx context.Context, id uuid.UUID) (*models.ComponentCategory, error) {
	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, passNotFound(err, "get category")
	}
	return c, nil
}

func (s *ComponentService) ListCategories(ctx context.Context, page models.PageRequest) (models.Page[models.ComponentCategory], error) {
	page = page.Normalize()
	items, total, err := s.repo.ListCategories(ctx, page)
	if err != nil {
		return models.Page[models.ComponentCategory]{}, passNotFound(err, "list categories")
	}
	return models.NewPage(items, total, page), nil
}

func (s *ComponentService) UpdateCategory(ctx context.Context, u *models.ComponentCategoryUpdate) (*models.ComponentCategory, error) {
	if u.ID == uuid.Nil {
		return nil, invalid("invalid category ID")
	}
	if u.CategoryName != nil {
		if strings.TrimSpace(*u.CategoryName) == "" {
			return nil, invalid("categoryName must not be empty")
		}
		exists, err := s.repo.CategoryExistsByName(ctx, *u.CategoryName, u.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check name existence: %w", err)
		}
		if exists {
			return nil, e.ErrDuplicateName
		}
	}
	if err := s.repo.UpdateCategory(ctx, u); err != nil {
		return nil, passNotFound(err, "update category")
	}
	updated, err := s.repo.GetCategory(ctx, u.ID)
	if err != nil {
		return nil, passNotFound(err, "get category")
	}
	s.publish(models.EntityCategory, events.Updated, updated.ID, updated)
	return updated, nil
}

func (s *ComponentService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return s.deleteGuarded(ctx, models.EntityCategory, id, (*db.Repository).DeleteCategory)
}

// Types

func (s *ComponentService) CreateType(ctx context.Context, t *models.ComponentType) (*models.ComponentType, error) {
	if strings.TrimSpace(t.TypeName) == "" {
		return nil, invalid("typeName is required")
	}
	if _, err := s.repo.GetCategory(ctx, t.CategoryID); err != nil {
		return nil, parentMissing(err, "category")
	}

	t.ID = uuid.New()
	if err := s.repo.CreateType(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to create type: %w", err)
	}
	s.publish(models.EntityType, events.Created, t.ID, t)
	return t, nil
}

func (s *ComponentService) GetType(ctx context.Context, id uuid.UUID) (*models.ComponentType, error) {
	t, err := s.repo.GetType(ctx, id)
	if err != nil {
		return nil, passNotFound(err, "get type")
	}
	return t, nil
}

func (s *ComponentService) ListTypes(ctx context.Context, f models.ComponentFilter, page models.PageRequest) (models.Page[models.ComponentType], error) {
	page = page.Normalize()
	items, total, err := s.repo.ListTypes(ctx, f, page)
	if err != nil {
		return models.Page[models.ComponentType]{}, passNotFound(err, "list types")
	}
	return models.NewPage(items, total, page), nil
}

func (s *ComponentService) UpdateType(ctx context.Context, u *models.ComponentTypeUpdate) (*models.ComponentType, error) {
	if u.ID == uuid.Nil {
		return nil, invalid("invalid type ID")
	}
	if u.TypeName != nil && strings.TrimSpace(*u.TypeName) == "" {
		return nil, invalid("typeName must not be empty")
	}
	if u.CategoryID != nil {
		if _, err := s.repo.GetCategory(ctx, *u.CategoryID); err != nil {
			return nil, parentMissing(err, "category")
		}
	}
	if err := s.repo.UpdateType(ctx, u); err != nil {
		return nil, passNotFound(err, "update type")
	}
	updated, err := s.repo.GetType(ctx, u.ID)
	if err != nil {
		return nil, passNotFound(err, "get type")
	}
	s.publish(models.EntityType, events.Updated, updated.ID, updated)
	return updated, nil
}

func (s *ComponentService) DeleteType(ctx context.Context, id uuid.UUID) error {
	return s.deleteGuarded(ctx, models.EntityType, id, (*db.Repository).DeleteType)
}

// Subtypes

func validateSubtype(st *models.ComponentSubtype) error {
	if strings.TrimSpace(st.SubTypeName) == "" {
		return invalid("subTypeName is required")
	}
	if st.QuantityType == "" {
		st.QuantityType = models.QuantityUnit
	}
	if !st.QuantityType.Valid() {
		return invalid("unknown quantityType %q", st.QuantityType)
	}
	return firstError(
		nonNegative("depreciationPrice", st.DepreciationPrice),
		nonNegative("technicalLifespan", float64(st.TechnicalLifespan)),
		nonNegative("economicLifespan", float64(st.EconomicLifespan)),
		nonNegative("replacementIntervalMonths", float64(st.ReplacementIntervalMonths)),
	)
}

func (s *ComponentService) CreateSubtype(ctx context.Context, st *models.ComponentSubtype) (*models.ComponentSubtype, error) {
	if err := validateSubtype(st); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetType(ctx, st.TypeID); err != nil {
		return nil, parentMissing(err, "type")
	}

	st.ID = uuid.New()
	if err := s.repo.CreateSubtype(ctx, st); err != nil {
		return nil, fmt.Errorf("failed to create subtype: %w", err)
	}
	s.publish(models.EntitySubtype, events.Created, st.ID, st)
	return st, nil
}

func (s *ComponentService) GetSubtype(ctx context.Context, id uuid.UUID) (*models.ComponentSubtype, error) {
	st, err := s.repo.GetSubtype(ctx, id)
	if err != nil {
		return nil, passNotFound(err, "get subtype")
	}
	return st, nil
}

func (s *ComponentService) ListSubtypes(ctx context.Context, f models.ComponentFilter, page models.PageRequest) (models.Page[models.ComponentSubtype], error) {
	page = page.Normalize()
	items, total, err := s.repo.ListSubtypes(ctx, f, page)
	if err != nil {
		return models.Page[models.ComponentSubtype]{}, passNotFound(err, "list subtypes")
	}
	return models.NewPage(items, total, page), nil
}

func (s *ComponentService) UpdateSubtype(ctx context.Context, u *models.ComponentSubtypeUpdate) (*models.ComponentSubtype, error) {
	if u.ID == uuid.Nil {
		return nil, invalid("invalid subtype ID")
	}
	if u.SubTypeName != nil && strings.TrimSpace(*u.SubTypeName) == "" {
		return nil, invalid("subTypeName must not be empty")
	}
	if u.QuantityType != nil && !u.QuantityType.Valid() {
		return nil, invalid("unknown quantityType %q", *u.QuantityType)
	}
	if err := firstError(
		nonNegativePtr("depreciationPrice", u.DepreciationPrice),
		nonNegativeIntPtr("technicalLifespan", u.TechnicalLifespan),
		nonNegativeIntPtr("economicLifespan", u.EconomicLifespan),
		nonNegativeIntPtr("replacementIntervalMonths", u.ReplacementIntervalMonths),
	); err != nil {
		return nil, err
	}
	if u.TypeID != nil {
		if _, err := s.repo.GetType(ctx, *u.TypeID); err != nil {
			return nil, parentMissing(err, "type")
		}
	}
	if err := s.repo.UpdateSubtype(ctx, u); err != nil {
		return nil, passNotFound(err, "update subtype")
	}
	updated, err := s.repo.GetSubtype(ctx, u.ID)
	if err != nil {
		return nil, passNotFound(err, "get subtype")
	}
	s.publish(models.EntitySubtype, events.Updated, updated.ID, updated)
	return updated, nil
}

func (s *ComponentService) DeleteSubtype(ctx context.Context, id uuid.UUID) error {
	return s.deleteGuarded(ctx, models.EntitySubtype, id, (*db.Repository).DeleteSubtype)
}

func nonNegativePtr(field string, v *float64) error {
	if v == nil {
		return nil
	}
	return nonNegative(field, *v)
}

func nonNegativeIntPtr(field string, v *int) error {
	if v == nil {
		return nil
	}
	return nonNegative(field, float64(*v))
}

// Models

func (s *ComponentService) CreateModel(ctx context.Context, m *models.ComponentModel) (*models.ComponentModel, error) {
	if strings.TrimSpace(m.ModelName) == "" {
		return nil, invalid("modelName is required")
	}
	if strings.TrimSpace(m.Manufacturer) == "" {
		return nil, invalid("manufacturer is required")
	}
	if err := firstError(
		nonNegative("currentPrice", m.CurrentPrice),
		nonNegative("currentInstallPrice", m.CurrentInstallPrice),
		nonNegative("warrantyMonths", float64(m.WarrantyMonths)),
	); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetSubtype(ctx, m.SubtypeID); err != nil {
		return nil, parentMissing(err, "subtype")
	}
	exists, err := s.repo.ModelExistsByName(ctx, m.SubtypeID, m.ModelName, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check name existence: %w", err)
	}
	if exists {
		return nil, e.ErrDuplicateName
	}

	m.ID = uuid.New()
	if err := s.repo.CreateModel(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}
	s.publish(models.EntityModel, events.Created, m.ID, m)
	return m, nil
}

func (s *ComponentService) GetModel(ctx context.Context, id uuid.UUID) (*models.ComponentModel, error) {
	m, err := s.repo.GetModel(ctx, id)
	if err != nil {
		return nil, passNotFound(err, "get model")
	}
	return m, nil
}

// ListModels lists models. A modelName filter matches exactly.
func (s *ComponentService) ListModels(ctx context.Context, f models.ComponentFilter, page models.PageRequest) (models.Page[models.ComponentModel], error) {
	page = page.Normalize()
	items, total, err := s.repo.ListModels(ctx, f, page)
	if err != nil {
		return models.Page[models.ComponentModel]{}, passNotFound(err, "list models")
	}
	return models.NewPage(items, total, page), nil
}

func (s *ComponentService) UpdateModel(ctx context.Context, u *models.ComponentModelUpdate) (*models.ComponentModel, error) {
	if u.ID == uuid.Nil {
		return nil, invalid("invalid model ID")
	}
	if u.ModelName != nil && strings.TrimSpace(*u.ModelName) == "" {
		return nil, invalid("modelName must not be empty")
	}
	if u.Manufacturer != nil && strings.TrimSpace(*u.Manufacturer) == "" {
		return nil, invalid("manufacturer must not be empty")
	}
	if err := firstError(
		nonNegativePtr("currentPrice", u.CurrentPrice),
		nonNegativePtr("currentInstallPrice", u.CurrentInstallPrice),
		nonNegativeIntPtr("warrantyMonths", u.WarrantyMonths),
	); err != nil {
		return nil, err
	}

	current, err := s.repo.GetModel(ctx, u.ID)
	if err != nil {
		return nil, passNotFound(err, "get model")
	}
	subtypeID := current.SubtypeID
	if u.SubtypeID != nil {
		if _, err := s.repo.GetSubtype(ctx, *u.SubtypeID); err != nil {
			return nil, parentMissing(err, "subtype")
		}
		subtypeID = *u.SubtypeID
	}
	if u.ModelName != nil || u.SubtypeID != nil {
		name := current.ModelName
		if u.ModelName != nil {
			name = *u.ModelName
		}
		exists, err := s.repo.ModelExistsByName(ctx, subtypeID, name, u.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check name existence: %w", err)
		}
		if exists {
			return nil, e.ErrDuplicateName
		}
	}

	if err := s.repo.UpdateModel(ctx, u); err != nil {
		return nil, passNotFound(err, "update model")
	}
	updated, err := s.repo.GetModel(ctx, u.ID)
	if err != nil {
		return nil, passNotFound(err, "get model")
	}
	s.publish(models.EntityModel, events.Updated, updated.ID, updated)
	return updated, nil
}

func (s *ComponentService) DeleteModel(ctx context.Context, id uuid.UUID) error {
	return s.deleteGuarded(ctx, models.EntityModel, id, (*db.Repository).DeleteModel)
}

// Components

// CreateComponent defaults status to ACTIVE and condition to NEW. Quantity
// defaults to one.
func (s *ComponentService) CreateComponent(ctx context.Context, c *models.Component) (*models.Component, error) {
	if c.Status == "" {
		c.Status = models.StatusActive
	}
	if c.Condition == "" {
		c.Condition = models.ConditionNew
	}
	if c.Quantity == 0 {
		c.Quantity = 1
	}
	if err := validateComponentFields(c.Status, c.Condition, c.Quantity); err != nil {
		return nil, err
	}
	if err := firstError(
		nonNegative("priceAtPurchase", c.PriceAtPurchase),
		nonNegative("depreciationPriceAtPurchase", c.DepreciationPriceAtPurchase),
		nonNegative("warrantyMonths", float64(c.WarrantyMonths)),
		nonNegative("economicLifespan", float64(c.EconomicLifespan)),
	); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetModel(ctx, c.ModelID); err != nil {
		return nil, parentMissing(err, "model")
	}

	c.ID = uuid.New()
	if err := s.repo.CreateComponent(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create component: %w", err)
	}
	s.publish(models.EntityComponent, events.Created, c.ID, c)
	return c, nil
}

func validateComponentFields(status models.ComponentStatus, condition models.ComponentCondition, quantity float64) error {
	if !status.Valid() {
		return invalid("unknown status %q", status)
	}
	if !condition.Valid() {
		return invalid("unknown condition %q", condition)
	}
	if quantity <= 0 {
		return invalid("quantity must be positive")
	}
	return nil
}

func (s *ComponentService) GetComponent(ctx context.Context, id uuid.UUID) (*models.Component, error) {
	c, err := s.repo.GetComponent(ctx, id)
	if err != nil {
		return nil, passNotFound(err, "get component")
	}
	return c, nil
}

// ListComponents lists components. A spaceId filter returns only components
// currently installed at that space.
func (s *ComponentService) ListComponents(ctx context.Context, f models.ComponentFilter, page models.PageRequest) (models.Page[models.Component], error) {
	if f.Status != "" && !f.Status.Valid() {
		return models.Page[models.Component]{}, invalid("unknown status %q", f.Status)
	}
	page = page.Normalize()
	items, total, err := s.repo.ListComponents(ctx, f, page)
	if err != nil {
		return models.Page[models.Component]{}, passNotFound(err, "list components")
	}
	return models.NewPage(items, total, page), nil
}

func (s *ComponentService) UpdateComponent(ctx context.Context, u *models.ComponentUpdate) (*models.Component, error) {
	if u.ID == uuid.Nil {
		return nil, invalid("invalid component ID")
	}
	if u.Status != nil && !u.Status.Valid() {
		return nil, invalid("unknown status %q", *u.Status)
	}
	if u.Condition != nil && !u.Condition.Valid() {
		return nil, invalid("unknown condition %q", *u.Condition)
	}
	if u.Quantity != nil && *u.Quantity <= 0 {
		return nil, invalid("quantity must be positive")
	}
	if err := firstError(
		nonNegativePtr("priceAtPurchase", u.PriceAtPurchase),
		nonNegativePtr("depreciationPriceAtPurchase", u.DepreciationPriceAtPurchase),
		nonNegativeIntPtr("warrantyMonths", u.WarrantyMonths),
		nonNegativeIntPtr("economicLifespan", u.EconomicLifespan),
	); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateComponent(ctx, u); err != nil {
		return nil, passNotFound(err, "update component")
	}
	updated, err := s.repo.GetComponent(ctx, u.ID)
	if err != nil {
		return nil, passNotFound(err, "get component")
	}
	s.publish(models.EntityComponent, events.Updated, updated.ID, updated)
	return updated, nil
}

func (s *ComponentService) DeleteComponent(ctx context.Context, id uuid.UUID) error {
	return s.deleteGuarded(ctx, models.EntityComponent, id, (*db.Repository).DeleteComponent)
}

// Installations

// CreateInstallation places a component at a space. The installation date
// defaults to now and the space type to ROOM. A component can have at most
// one open installation.
func (s *ComponentService) CreateInstallation(ctx context.Context, i *models.ComponentInstallation) (*models.ComponentInstallation, error) {
	if i.SpaceID == uuid.Nil {
		return nil, invalid("spaceId is required")
	}
	if i.SpaceType == "" {
		i.SpaceType = models.SpaceRoom
	}
	if !i.SpaceType.Valid() {
		return nil, invalid("unknown spaceType %q", i.SpaceType)
	}
	if i.InstallationDate.IsZero() {
		i.InstallationDate = time.Now().UTC()
	}
	if err := checkDates(i.InstallationDate, i.DeinstallationDate); err != nil {
		return nil, err
	}
	if err := nonNegative("cost", i.Cost); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetComponent(ctx, i.ComponentID); err != nil {
		return nil, parentMissing(err, "component")
	}

	i.ID = uuid.New()
	err := s.repo.WithTransaction(ctx, func(repo *db.Repository) error {
		if i.Active() {
			if err := ensureNotInstalled(ctx, repo, i.ComponentID); err != nil {
				return err
			}
		}
		return repo.CreateInstallation(ctx, i)
	})
	if err != nil {
		if errors.Is(err, e.ErrAlreadyInstalled) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create installation: %w", err)
	}
	s.publish(models.EntityInstallation, events.Created, i.ID, i)
	return i, nil
}

func checkDates(installed time.Time, deinstalled *time.Time) error {
	if deinstalled != nil && deinstalled.Before(installed) {
		return invalid("deinstallationDate is before installationDate")
	}
	return nil
}

// ensureNotInstalled fails with ErrAlreadyInstalled when the component has
// an open installation.
func ensureNotInstalled(ctx context.Context, repo *db.Repository, componentID uuid.UUID) error {
	active, err := repo.ActiveInstallation(ctx, componentID)
	if errors.Is(err, e.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check active installation: %w", err)
	}
	return fmt.Errorf("%w: component %s is installed at %s", e.ErrAlreadyInstalled, componentID, active.SpaceID)
}

func (s *ComponentService) GetInstallation(ctx context.Context, id uuid.UUID) (*models.ComponentInstallation, error) {
	i, err := s.repo.GetInstallation(ctx, id)
	if err != nil {
		return nil, passNotFound(err, "get installation")
	}
	return i, nil
}

func (s *ComponentService) ListInstallations(ctx context.Context, f models.ComponentFilter, page models.PageRequest) (models.Page[models.ComponentInstallation], error) {
	page = page.Normalize()
	items, total, err := s.repo.ListInstallations(ctx, f, page)
	if err != nil {
		return models.Page[models.ComponentInstallation]{}, passNotFound(err, "list installations")
	}
	return models.NewPage(items, total, page), nil
}

// UpdateInstallation changes an installation. Setting deinstallationDate
// ends it; the resulting period must not end before it starts.
func (s *ComponentService) UpdateInstallation(ctx context.Context, u *models.ComponentInstallationUpdate) (*models.ComponentInstallation, error) {
	if u.ID == uuid.Nil {
		return nil, invalid("invalid installation ID")
	}
	if u.SpaceType != nil && !u.SpaceType.Valid() {
		return nil, invalid("unknown spaceType %q", *u.SpaceType)
	}
	if u.SpaceID != nil && *u.SpaceID == uuid.Nil {
		return nil, invalid("spaceId must not be empty")
	}
	if err := nonNegativePtr("cost", u.Cost); err != nil {
		return nil, err
	}

	current, err := s.repo.GetInstallation(ctx, u.ID)
	if err != nil {
		return nil, passNotFound(err, "get installation")
	}
	installed := current.InstallationDate
	if u.InstallationDate != nil {
		installed = *u.InstallationDate
	}
	deinstalled := current.DeinstallationDate
	if u.DeinstallationDate != nil {
		deinstalled = u.DeinstallationDate
	}
	if err := checkDates(installed, deinstalled); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateInstallation(ctx, u); err != nil {
		return nil, passNotFound(err, "update installation")
	}
	updated, err := s.repo.GetInstallation(ctx, u.ID)
	if err != nil {
		return nil, passNotFound(err, "get installation")
	}
	s.publish(models.EntityInstallation, events.Updated, updated.ID, updated)
	return updated, nil
}

func (s *ComponentService) DeleteInstallation(ctx context.Context, id uuid.UUID) error {
	return s.deleteGuarded(ctx, models.EntityInstallation, id, (*db.Repository).DeleteInstallation)
}
