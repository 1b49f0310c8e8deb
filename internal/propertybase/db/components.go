package db

import (
	"context"
	"errors"
	"fmt"

	dbm "github.com/gartstein/propertyhub/internal/propertybase/db/models"
	e "github.com/gartstein/propertyhub/internal/propertybase/errors"
	"github.com/gartstein/propertyhub/internal/propertybase/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func notFound(kind, key string) error {
	return fmt.Errorf("%w: %s %s", e.ErrNotFound, kind, key)
}

// childRelation names the table and foreign key holding the children of a
// hierarchy entity.
type childRelation struct {
	model  any
	column string
}

var children = map[models.Entity]childRelation{
	models.EntityCategory:  {&dbm.ComponentType{}, "category_id"},
	models.EntityType:      {&dbm.ComponentSubtype{}, "type_id"},
	models.EntitySubtype:   {&dbm.ComponentModel{}, "subtype_id"},
	models.EntityModel:     {&dbm.Component{}, "model_id"},
	models.EntityComponent: {&dbm.ComponentInstallation{}, "component_id"},
}

// CountChildren returns how many direct children reference the entity.
// Installations have no children and always count zero.
func (r *Repository) CountChildren(ctx context.Context, entity models.Entity, id uuid.UUID) (int64, error) {
	rel, ok := children[entity]
	if !ok {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(rel.model).Where(rel.column+" = ?", id).Count(&count).Error
	return count, err
}

// Categories

func (r *Repository) CreateCategory(ctx context.Context, c *models.ComponentCategory) error {
	row := categoryToRow(c)
	if err := create(ctx, r.db, row); err != nil {
		return err
	}
	*c = *categoryFromRow(row)
	return nil
}

func (r *Repository) GetCategory(ctx context.Context, id uuid.UUID) (*models.ComponentCategory, error) {
	row, err := getByID[dbm.ComponentCategory](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return categoryFromRow(row), nil
}

func (r *Repository) ListCategories(ctx context.Context, page models.PageRequest) ([]models.ComponentCategory, int64, error) {
	rows, total, err := listPage[dbm.ComponentCategory](ctx, r.db, noFilter, page)
	if err != nil {
		return nil, 0, err
	}
	return mapRows(rows, categoryFromRow), total, nil
}

func (r *Repository) UpdateCategory(ctx context.Context, u *models.ComponentCategoryUpdate) error {
	fields := map[string]any{}
	setIf(fields, "category_name", u.CategoryName)
	setIf(fields, "description", u.Description)
	return update[dbm.ComponentCategory](ctx, r.db, u.ID, fields)
}

func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return deleteByID[dbm.ComponentCategory](ctx, r.db, id)
}

// CategoryExistsByName reports whether another category already uses name.
func (r *Repository) CategoryExistsByName(ctx context.Context, name string, exclude uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&dbm.ComponentCategory{}).
		Where("category_name = ? AND id <> ?", name, exclude).
		Count(&count)
	return count > 0, result.Error
}

// Types

func (r *Repository) CreateType(ctx context.Context, t *models.ComponentType) error {
	row := typeToRow(t)
	if err := create(ctx, r.db, row); err != nil {
		return err
	}
	*t = *typeFromRow(row)
	return nil
}

func (r *Repository) GetType(ctx context.Context, id uuid.UUID) (*models.ComponentType, error) {
	row, err := getByID[dbm.ComponentType](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return typeFromRow(row), nil
}

func (r *Repository) ListTypes(ctx context.Context, f models.ComponentFilter, page models.PageRequest) ([]models.ComponentType, int64, error) {
	rows, total, err := listPage[dbm.ComponentType](ctx, r.db, whereID("category_id", f.CategoryID), page)
	if err != nil {
		return nil, 0, err
	}
	return mapRows(rows, typeFromRow), total, nil
}

func (r *Repository) UpdateType(ctx context.Context, u *models.ComponentTypeUpdate) error {
	fields := map[string]any{}
	setIf(fields, "category_id", u.CategoryID)
	setIf(fields, "type_name", u.TypeName)
	setIf(fields, "description", u.Description)
	return update[dbm.ComponentType](ctx, r.db, u.ID, fields)
}

func (r *Repository) DeleteType(ctx context.Context, id uuid.UUID) error {
	return deleteByID[dbm.ComponentType](ctx, r.db, id)
}

// Subtypes

func (r *Repository) CreateSubtype(ctx context.Context, s *models.ComponentSubtype) error {
	row := subtypeToRow(s)
	if err := create(ctx, r.db, row); err != nil {
		return err
	}
	*s = *subtypeFromRow(row)
	return nil
}

func (r *Repository) GetSubtype(ctx context.Context, id uuid.UUID) (*models.ComponentSubtype, error) {
	row, err := getByID[dbm.ComponentSubtype](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return subtypeFromRow(row), nil
}

func (r *Repository) ListSubtypes(ctx context.Context, f models.ComponentFilter, page models.PageRequest) ([]models.ComponentSubtype, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		db = whereID("type_id", f.TypeID)(db)
		if f.SubtypeName != "" {
			db = db.Where(`LOWER(sub_type_name) LIKE LOWER(?) ESCAPE '\'`, contains(f.SubtypeName))
		}
		return db
	}
	rows, total, err := listPage[dbm.ComponentSubtype](ctx, r.db, filter, page)
	if err != nil {
		return nil, 0, err
	}
	return mapRows(rows, subtypeFromRow), total, nil
}

func (r *Repository) UpdateSubtype(ctx context.Context, u *models.ComponentSubtypeUpdate) error {
	fields := map[string]any{}
	setIf(fields, "type_id", u.TypeID)
	setIf(fields, "sub_type_name", u.SubTypeName)
	setIf(fields, "xpand_code", u.XpandCode)
	setIf(fields, "depreciation_price", u.DepreciationPrice)
	setIf(fields, "technical_lifespan", u.TechnicalLifespan)
	setIf(fields, "economic_lifespan", u.EconomicLifespan)
	setIf(fields, "replacement_interval_months", u.ReplacementIntervalMonths)
	if u.QuantityType != nil {
		fields["quantity_type"] = string(*u.QuantityType)
	}
	return update[dbm.ComponentSubtype](ctx, r.db, u.ID, fields)
}

func (r *Repository) DeleteSubtype(ctx context.Context, id uuid.UUID) error {
	return deleteByID[dbm.ComponentSubtype](ctx, r.db, id)
}

// Models

func (r *Repository) CreateModel(ctx context.Context, m *models.ComponentModel) error {
	row := modelToRow(m)
	if err := create(ctx, r.db, row); err != nil {
		return err
	}
	*m = *modelFromRow(row)
	return nil
}

func (r *Repository) GetModel(ctx context.Context, id uuid.UUID) (*models.ComponentModel, error) {
	row, err := getByID[dbm.ComponentModel](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return modelFromRow(row), nil
}

// ListModels filters by subtype, manufacturer (substring) and model name
// (exact, case-sensitive).
func (r *Repository) ListModels(ctx context.Context, f models.ComponentFilter, page models.PageRequest) ([]models.ComponentModel, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		db = whereID("subtype_id", f.SubtypeID)(db)
		if f.Manufacturer != "" {
			db = db.Where(`LOWER(manufacturer) LIKE LOWER(?) ESCAPE '\'`, contains(f.Manufacturer))
		}
		if f.ModelName != "" {
			db = db.Where("model_name = ?", f.ModelName)
		}
		return db
	}
	rows, total, err := listPage[dbm.ComponentModel](ctx, r.db, filter, page)
	if err != nil {
		return nil, 0, err
	}
	return mapRows(rows, modelFromRow), total, nil
}

func (r *Repository) UpdateModel(ctx context.Context, u *models.ComponentModelUpdate) error {
	fields := map[string]any{}
	setIf(fields, "subtype_id", u.SubtypeID)
	setIf(fields, "model_name", u.ModelName)
	setIf(fields, "manufacturer", u.Manufacturer)
	setIf(fields, "current_price", u.CurrentPrice)
	setIf(fields, "current_install_price", u.CurrentInstallPrice)
	setIf(fields, "warranty_months", u.WarrantyMonths)
	setIf(fields, "technical_specification", u.TechnicalSpecification)
	setIf(fields, "dimensions", u.Dimensions)
	return update[dbm.ComponentModel](ctx, r.db, u.ID, fields)
}

func (r *Repository) DeleteModel(ctx context.Context, id uuid.UUID) error {
	return deleteByID[dbm.ComponentModel](ctx, r.db, id)
}

// ModelExistsByName reports whether another model of the subtype uses name.
func (r *Repository) ModelExistsByName(ctx context.Context, subtypeID uuid.UUID, name string, exclude uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&dbm.ComponentModel{}).
		Where("subtype_id = ? AND model_name = ? AND id <> ?", subtypeID, name, exclude).
		Count(&count)
	return count > 0, result.Error
}

// Components

func (r *Repository) CreateComponent(ctx context.Context, c *models.Component) error {
	row := componentToRow(c)
	if err := create(ctx, r.db, row); err != nil {
		return err
	}
	*c = *componentFromRow(row)
	return nil
}

func (r *Repository) GetComponent(ctx context.Context, id uuid.UUID) (*models.Component, error) {
	row, err := getByID[dbm.Component](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return componentFromRow(row), nil
}

// ListComponents filters by model and status. A SpaceID filter keeps only
// components currently installed at that space.
func (r *Repository) ListComponents(ctx context.Context, f models.ComponentFilter, page models.PageRequest) ([]models.Component, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		db = whereID("model_id", f.ModelID)(db)
		if f.Status != "" {
			db = db.Where("status = ?", string(f.Status))
		}
		if f.SpaceID != uuid.Nil {
			db = db.Where("id IN (SELECT component_id FROM component_installations WHERE space_id = ? AND deinstallation_date IS NULL)", f.SpaceID)
		}
		return db
	}
	rows, total, err := listPage[dbm.Component](ctx, r.db, filter, page)
	if err != nil {
		return nil, 0, err
	}
	return mapRows(rows, componentFromRow), total, nil
}

func (r *Repository) UpdateComponent(ctx context.Context, u *models.ComponentUpdate) error {
	fields := map[string]any{}
	setIf(fields, "serial_number", u.SerialNumber)
	setIf(fields, "specifications", u.Specifications)
	setIf(fields, "additional_information", u.AdditionalInformation)
	setIf(fields, "warranty_start_date", u.WarrantyStartDate)
	setIf(fields, "warranty_months", u.WarrantyMonths)
	setIf(fields, "price_at_purchase", u.PriceAtPurchase)
	setIf(fields, "depreciation_price_at_purchase", u.DepreciationPriceAtPurchase)
	setIf(fields, "economic_lifespan", u.EconomicLifespan)
	setIf(fields, "quantity", u.Quantity)
	if u.Status != nil {
		fields["status"] = string(*u.Status)
	}
	if u.Condition != nil {
		fields["condition"] = string(*u.Condition)
	}
	return update[dbm.Component](ctx, r.db, u.ID, fields)
}

func (r *Repository) DeleteComponent(ctx context.Context, id uuid.UUID) error {
	return deleteByID[dbm.Component](ctx, r.db, id)
}

// Installations

// CreateInstallation inserts i. A second open installation of the same
// component violates idx_installation_open and yields ErrAlreadyInstalled.
func (r *Repository) CreateInstallation(ctx context.Context, i *models.ComponentInstallation) error {
	row := installationToRow(i)
	if err := create(ctx, r.db, row); err != nil {
		if errors.Is(err, e.ErrDuplicateName) {
			return fmt.Errorf("%w: component %s has an open installation", e.ErrAlreadyInstalled, i.ComponentID)
		}
		return err
	}
	*i = *installationFromRow(row)
	return nil
}

func (r *Repository) GetInstallation(ctx context.Context, id uuid.UUID) (*models.ComponentInstallation, error) {
	row, err := getByID[dbm.ComponentInstallation](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return installationFromRow(row), nil
}

func (r *Repository) ListInstallations(ctx context.Context, f models.ComponentFilter, page models.PageRequest) ([]models.ComponentInstallation, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		db = whereID("component_id", f.ComponentID)(db)
		db = whereID("space_id", f.SpaceID)(db)
		if f.ActiveOnly {
			db = db.Where("deinstallation_date IS NULL")
		}
		return db
	}
	rows, total, err := listPage[dbm.ComponentInstallation](ctx, r.db, filter, page)
	if err != nil {
		return nil, 0, err
	}
	return mapRows(rows, installationFromRow), total, nil
}

// ActiveInstallation returns the open installation of a component, or
// ErrNotFound when it is not installed anywhere.
func (r *Repository) ActiveInstallation(ctx context.Context, componentID uuid.UUID) (*models.ComponentInstallation, error) {
	rows, _, err := r.ListInstallations(ctx, models.ComponentFilter{ComponentID: componentID, ActiveOnly: true},
		models.PageRequest{Page: 1, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, notFound("active installation for component", componentID.String())
	}
	return &rows[0], nil
}

func (r *Repository) UpdateInstallation(ctx context.Context, u *models.ComponentInstallationUpdate) error {
	fields := map[string]any{}
	setIf(fields, "space_id", u.SpaceID)
	if u.SpaceType != nil {
		fields["space_type"] = string(*u.SpaceType)
	}
	setIf(fields, "installation_date", u.InstallationDate)
	setIf(fields, "deinstallation_date", u.DeinstallationDate)
	setIf(fields, "order_number", u.OrderNumber)
	setIf(fields, "cost", u.Cost)
	return update[dbm.ComponentInstallation](ctx, r.db, u.ID, fields)
}

func (r *Repository) DeleteInstallation(ctx context.Context, id uuid.UUID) error {
	return deleteByID[dbm.ComponentInstallation](ctx, r.db, id)
}
