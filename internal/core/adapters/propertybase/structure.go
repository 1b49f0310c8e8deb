package propertybase

import (
	"context"
	"net/url"

	"github.com/gartstein/propertyhub/internal/core/adapters"
	"github.com/gartstein/propertyhub/internal/core/cache"
	"github.com/gartstein/propertyhub/internal/propertybase/models"
	"github.com/google/uuid"
)

const (
	companies  = "companies"
	properties = "properties"
	buildings  = "buildings"
	staircases = "staircases"
	residences = "residences"
	rooms      = "rooms"
)

func (a *Adapter) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	return get[models.Company](ctx, a, cache.Structure, companies, id)
}

func (a *Adapter) ListCompanies(ctx context.Context, p models.PageRequest) (models.Page[models.Company], error) {
	return list[models.Company](ctx, a, cache.Structure, companies, pageQuery(p))
}

func (a *Adapter) GetProperty(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	return get[models.Property](ctx, a, cache.Structure, properties, id)
}

func (a *Adapter) ListProperties(ctx context.Context, f models.StructureFilter, p models.PageRequest) (models.Page[models.Property], error) {
	return list[models.Property](ctx, a, cache.Structure, properties, structureQuery(f, p))
}

func (a *Adapter) GetBuilding(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	return get[models.Building](ctx, a, cache.Structure, buildings, id)
}

func (a *Adapter) ListBuildings(ctx context.Context, f models.StructureFilter, p models.PageRequest) (models.Page[models.Building], error) {
	return list[models.Building](ctx, a, cache.Structure, buildings, structureQuery(f, p))
}

func (a *Adapter) GetStaircase(ctx context.Context, id uuid.UUID) (*models.Staircase, error) {
	return get[models.Staircase](ctx, a, cache.Structure, staircases, id)
}

func (a *Adapter) ListStaircases(ctx context.Context, f models.StructureFilter, p models.PageRequest) (models.Page[models.Staircase], error) {
	return list[models.Staircase](ctx, a, cache.Structure, staircases, structureQuery(f, p))
}

func (a *Adapter) GetResidence(ctx context.Context, id uuid.UUID) (*models.Residence, error) {
	return get[models.Residence](ctx, a, cache.Structure, residences, id)
}

func (a *Adapter) GetResidenceByRentalID(ctx context.Context, rentalID string) (*models.Residence, error) {
	path := "/residences/by-rental-id/" + url.PathEscape(rentalID)
	return cache.Through(ctx, a.cache, cache.Key(cache.Structure, "rental", rentalID),
		func(ctx context.Context) (*models.Residence, error) {
			return adapters.Get[*models.Residence](ctx, a.client, path, nil)
		})
}

func (a *Adapter) ListResidences(ctx context.Context, f models.StructureFilter, p models.PageRequest) (models.Page[models.Residence], error) {
	return list[models.Residence](ctx, a, cache.Structure, residences, structureQuery(f, p))
}

func (a *Adapter) GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	return get[models.Room](ctx, a, cache.Structure, rooms, id)
}

func (a *Adapter) ListRooms(ctx context.Context, f models.StructureFilter, p models.PageRequest) (models.Page[models.Room], error) {
	return list[models.Room](ctx, a, cache.Structure, rooms, structureQuery(f, p))
}

// Search is not cached.
func (a *Adapter) Search(ctx context.Context, q string) ([]models.SearchResult, error) {
	return adapters.Get[[]models.SearchResult](ctx, a.client, "/search", map[string]string{"q": q})
}
