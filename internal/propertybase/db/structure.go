package db

import (
	"context"
	"strings"

	dbm "github.com/gartstein/propertyhub/internal/propertybase/db/models"
	"github.com/gartstein/propertyhub/internal/propertybase/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *Repository) CreateCompany(ctx context.Context, company *models.Company) error {
	row := companyToRow(company)
	if err := create(ctx, r.db, row); err != nil {
		return err
	}
	*company = *companyFromRow(row)
	return nil
}

func (r *Repository) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	row, err := getByID[dbm.Company](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return companyFromRow(row), nil
}

func (r *Repository) ListCompanies(ctx context.Context, page models.PageRequest) ([]models.Company, int64, error) {
	rows, total, err := listPage[dbm.Company](ctx, r.db, noFilter, page)
	if err != nil {
		return nil, 0, err
	}
	return mapRows(rows, companyFromRow), total, nil
}

func (r *Repository) CreateProperty(ctx context.Context, property *models.Property) error {
	row := propertyToRow(property)
	if err := create(ctx, r.db, row); err != nil {
		return err
	}
	*property = *propertyFromRow(row)
	return nil
}

func (r *Repository) GetProperty(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	row, err := getByID[dbm.Property](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return propertyFromRow(row), nil
}

func (r *Repository) ListProperties(ctx context.Context, f models.StructureFilter, page models.PageRequest) ([]models.Property, int64, error) {
	rows, total, err := listPage[dbm.Property](ctx, r.db, whereID("company_id", f.CompanyID), page)
	if err != nil {
		return nil, 0, err
	}
	return mapRows(rows, propertyFromRow), total, nil
}

func (r *Repository) CreateBuilding(ctx context.Context, building *models.Building) error {
	row := buildingToRow(building)
	if err := create(ctx, r.db, row); err != nil {
		return err
	}
	*building = *buildingFromRow(row)
	return nil
}

func (r *Repository) GetBuilding(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	row, err := getByID[dbm.Building](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return buildingFromRow(row), nil
}

func (r *Repository) ListBuildings(ctx context.Context, f models.StructureFilter, page models.PageRequest) ([]models.Building, int64, error) {
	rows, total, err := listPage[dbm.Building](ctx, r.db, whereID("property_id", f.PropertyID), page)
	if err != nil {
		return nil, 0, err
	}
	return mapRows(rows, buildingFromRow), total, nil
}

func (r *Repository) CreateStaircase(ctx context.Context, staircase *models.Staircase) error {
	row := staircaseToRow(staircase)
	if err := create(ctx, r.db, row); err != nil {
		return err
	}
	*staircase = *staircaseFromRow(row)
	return nil
}

func (r *Repository) GetStaircase(ctx context.Context, id uuid.UUID) (*models.Staircase, error) {
	row, err := getByID[dbm.Staircase](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return staircaseFromRow(row), nil
}

func (r *Repository) ListStaircases(ctx context.Context, f models.StructureFilter, page models.PageRequest) ([]models.Staircase, int64, error) {
	rows, total, err := listPage[dbm.Staircase](ctx, r.db, whereID("building_id", f.BuildingID), page)
	if err != nil {
		return nil, 0, err
	}
	return mapRows(rows, staircaseFromRow), total, nil
}

func (r *Repository) CreateResidence(ctx context.Context, residence *models.Residence) error {
	row := residenceToRow(residence)
	if err := create(ctx, r.db, row); err != nil {
		return err
	}
	*residence = *residenceFromRow(row)
	return nil
}

func (r *Repository) GetResidence(ctx context.Context, id uuid.UUID) (*models.Residence, error) {
	row, err := getByID[dbm.Residence](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return residenceFromRow(row), nil
}

func (r *Repository) GetResidenceByRentalID(ctx context.Context, rentalID string) (*models.Residence, error) {
	rows, _, err := listPage[dbm.Residence](ctx, r.db, func(db *gorm.DB) *gorm.DB {
		return db.Where("rental_id = ?", rentalID)
	}, models.PageRequest{Page: 1, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, notFound("residence", rentalID)
	}
	return residenceFromRow(&rows[0]), nil
}

func (r *Repository) ListResidences(ctx context.Context, f models.StructureFilter, page models.PageRequest) ([]models.Residence, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		db = whereID("building_id", f.BuildingID)(db)
		return whereID("staircase_id", f.StaircaseID)(db)
	}
	rows, total, err := listPage[dbm.Residence](ctx, r.db, filter, page)
	if err != nil {
		return nil, 0, err
	}
	return mapRows(rows, residenceFromRow), total, nil
}

func (r *Repository) CreateRoom(ctx context.Context, room *models.Room) error {
	row := roomToRow(room)
	if err := create(ctx, r.db, row); err != nil {
		return err
	}
	*room = *roomFromRow(row)
	return nil
}

func (r *Repository) GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	row, err := getByID[dbm.Room](ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return roomFromRow(row), nil
}

func (r *Repository) ListRooms(ctx context.Context, f models.StructureFilter, page models.PageRequest) ([]models.Room, int64, error) {
	rows, total, err := listPage[dbm.Room](ctx, r.db, whereID("residence_id", f.ResidenceID), page)
	if err != nil {
		return nil, 0, err
	}
	return mapRows(rows, roomFromRow), total, nil
}

// Search matches q case-insensitively against properties, buildings and
// residences, returning at most limit hits in that order.
func (r *Repository) Search(ctx context.Context, q string, limit int) ([]models.SearchResult, error) {
	pattern := contains(strings.ToLower(q))
	results := make([]models.SearchResult, 0)

	var properties []dbm.Property
	err := r.db.WithContext(ctx).
		Where(`LOWER(designation) LIKE ? ESCAPE '\' OR LOWER(code) LIKE ? ESCAPE '\'`, pattern, pattern).
		Order("code ASC").Limit(limit).Find(&properties).Error
	if err != nil {
		return nil, err
	}
	for _, p := range properties {
		results = append(results, models.SearchResult{ID: p.ID, Type: models.SearchProperty, Name: p.Designation, Code: p.Code})
	}

	if remaining := limit - len(results); remaining > 0 {
		var buildings []dbm.Building
		err := r.db.WithContext(ctx).
			Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(code) LIKE ? ESCAPE '\'`, pattern, pattern).
			Order("code ASC").Limit(remaining).Find(&buildings).Error
		if err != nil {
			return nil, err
		}
		for _, b := range buildings {
			results = append(results, models.SearchResult{ID: b.ID, Type: models.SearchBuilding, Name: b.Name, Code: b.Code})
		}
	}

	if remaining := limit - len(results); remaining > 0 {
		var residences []dbm.Residence
		err := r.db.WithContext(ctx).
			Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(code) LIKE ? ESCAPE '\' OR LOWER(rental_id) LIKE ? ESCAPE '\'`,
				pattern, pattern, pattern).
			Order("code ASC").Limit(remaining).Find(&residences).Error
		if err != nil {
			return nil, err
		}
		for _, res := range residences {
			results = append(results, models.SearchResult{ID: res.ID, Type: models.SearchResidence, Name: res.Name, Code: res.Code})
		}
	}

	return results, nil
}

func whereID(column string, id uuid.UUID) scope {
	return func(db *gorm.DB) *gorm.DB {
		if id == uuid.Nil {
			return db
		}
		return db.Where(column+" = ?", id)
	}
}
