package db

import (
	"context"
	"fmt"
	"testing"
	"time"

	e "github.com/gartstein/propertyhub/internal/propertybase/errors"
	"github.com/gartstein/propertyhub/internal/propertybase/models"
	"github.com/gartstein/propertyhub/internal/pkg/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

// SetupTestDB initializes an in-memory SQLite database for testing. Each
// test gets its own named database so pooled connections share the schema.
func SetupTestDB(t *testing.T) *Repository {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	repo, err := Open(sqlite.Open(dsn))
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

var firstPage = models.PageRequest{Page: 1, Limit: 20}

// hierarchy creates one record at every level of the component tree.
type hierarchy struct {
	category  *models.ComponentCategory
	typ       *models.ComponentType
	subtype   *models.ComponentSubtype
	model     *models.ComponentModel
	component *models.Component
}

func seedHierarchy(t *testing.T, repo *Repository) hierarchy {
	t.Helper()
	ctx := context.Background()

	h := hierarchy{
		category: &models.ComponentCategory{ID: uuid.New(), CategoryName: "Vitvaror"},
	}
	require.NoError(t, repo.CreateCategory(ctx, h.category))

	h.typ = &models.ComponentType{ID: uuid.New(), CategoryID: h.category.ID, TypeName: "Kyl"}
	require.NoError(t, repo.CreateType(ctx, h.typ))

	h.subtype = &models.ComponentSubtype{ID: uuid.New(), TypeID: h.typ.ID, SubTypeName: "Kylskåp", QuantityType: models.QuantityUnit}
	require.NoError(t, repo.CreateSubtype(ctx, h.subtype))

	h.model = &models.ComponentModel{
		ID: uuid.New(), SubtypeID: h.subtype.ID, ModelName: "KS-200", Manufacturer: "Electrolux",
		CurrentPrice: 8000, CurrentInstallPrice: 500, WarrantyMonths: 24,
	}
	require.NoError(t, repo.CreateModel(ctx, h.model))

	h.component = &models.Component{
		ID: uuid.New(), ModelID: h.model.ID, SerialNumber: "SN-1", Quantity: 1,
		Status: models.StatusActive, Condition: models.ConditionNew,
	}
	require.NoError(t, repo.CreateComponent(ctx, h.component))
	return h
}

func TestCreateCompanySetsTimestamps(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	company := &models.Company{ID: uuid.New(), Code: "001", Name: "Bostads AB"}
	require.NoError(t, repo.CreateCompany(ctx, company))
	assert.False(t, company.CreatedAt.IsZero(), "CreatedAt should be populated")

	got, err := repo.GetCompany(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bostads AB", got.Name)
}

func TestGetCompanyNotFound(t *testing.T) {
	repo := SetupTestDB(t)
	_, err := repo.GetCompany(context.Background(), uuid.New())
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestListPropertiesFiltersAndPaginates(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	companyA, companyB := uuid.New(), uuid.New()
	for i, code := range []string{"P1", "P2", "P3"} {
		require.NoError(t, repo.CreateProperty(ctx, &models.Property{
			ID: uuid.New(), CompanyID: companyA, Code: code, Designation: "Fastighet " + code,
		}), "property %d", i)
	}
	require.NoError(t, repo.CreateProperty(ctx, &models.Property{
		ID: uuid.New(), CompanyID: companyB, Code: "P4", Designation: "Annan",
	}))

	items, total, err := repo.ListProperties(ctx, models.StructureFilter{CompanyID: companyA}, models.PageRequest{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, items, 2)

	items, total, err = repo.ListProperties(ctx, models.StructureFilter{CompanyID: companyA}, models.PageRequest{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, items, 1)

	_, total, err = repo.ListProperties(ctx, models.StructureFilter{}, firstPage)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
}

func TestGetResidenceByRentalID(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	residence := &models.Residence{ID: uuid.New(), BuildingID: uuid.New(), Code: "0101", Name: "Lgh 1001", RentalID: "705-011-03-0101"}
	require.NoError(t, repo.CreateResidence(ctx, residence))

	got, err := repo.GetResidenceByRentalID(ctx, "705-011-03-0101")
	require.NoError(t, err)
	assert.Equal(t, residence.ID, got.ID)

	_, err = repo.GetResidenceByRentalID(ctx, "missing")
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestSearch(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateProperty(ctx, &models.Property{ID: uuid.New(), CompanyID: uuid.New(), Code: "LIND-1", Designation: "Lindgården 1"}))
	require.NoError(t, repo.CreateBuilding(ctx, &models.Building{ID: uuid.New(), PropertyID: uuid.New(), Code: "B-1", Name: "Lindhuset"}))
	require.NoError(t, repo.CreateResidence(ctx, &models.Residence{ID: uuid.New(), BuildingID: uuid.New(), Code: "R-1", Name: "Lägenhet", RentalID: "lind-0101"}))
	require.NoError(t, repo.CreateBuilding(ctx, &models.Building{ID: uuid.New(), PropertyID: uuid.New(), Code: "B-2", Name: "Eken"}))

	results, err := repo.Search(ctx, "LIND", 50)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, models.SearchProperty, results[0].Type)
	assert.Equal(t, models.SearchBuilding, results[1].Type)
	assert.Equal(t, models.SearchResidence, results[2].Type)
	assert.Equal(t, "R-1", results[2].Code)

	results, err = repo.Search(ctx, "lind", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	for _, q := range []string{"___", "%%%", `\\`} {
		results, err = repo.Search(ctx, q, 50)
		require.NoError(t, err)
		assert.Empty(t, results, "wildcards in %q match literally", q)
	}

	require.NoError(t, repo.CreateBuilding(ctx, &models.Building{ID: uuid.New(), PropertyID: uuid.New(), Code: "B_3", Name: "Hus 100%"}))
	results, err = repo.Search(ctx, "100%", 50)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "B_3", results[0].Code)
}

func TestComponentFiltersMatchLiterally(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()
	h := seedHierarchy(t, repo)

	found, _, err := repo.ListModels(ctx, models.ComponentFilter{Manufacturer: "electro"}, firstPage)
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, _, err = repo.ListModels(ctx, models.ComponentFilter{Manufacturer: "_"}, firstPage)
	require.NoError(t, err)
	assert.Empty(t, found)

	subtypes, _, err := repo.ListSubtypes(ctx, models.ComponentFilter{TypeID: h.typ.ID, SubtypeName: "%"}, firstPage)
	require.NoError(t, err)
	assert.Empty(t, subtypes)

	subtypes, _, err = repo.ListSubtypes(ctx, models.ComponentFilter{TypeID: h.typ.ID, SubtypeName: "kyl"}, firstPage)
	require.NoError(t, err)
	assert.Len(t, subtypes, 1)
}

func TestCountChildren(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()
	h := seedHierarchy(t, repo)

	for entity, id := range map[models.Entity]uuid.UUID{
		models.EntityCategory: h.category.ID,
		models.EntityType:     h.typ.ID,
		models.EntitySubtype:  h.subtype.ID,
		models.EntityModel:    h.model.ID,
	} {
		count, err := repo.CountChildren(ctx, entity, id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count, "children of %s", entity)
	}

	count, err := repo.CountChildren(ctx, models.EntityComponent, h.component.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	count, err = repo.CountChildren(ctx, models.EntityInstallation, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestListModelsExactName(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()
	h := seedHierarchy(t, repo)

	require.NoError(t, repo.CreateModel(ctx, &models.ComponentModel{
		ID: uuid.New(), SubtypeID: h.subtype.ID, ModelName: "KS-2000", Manufacturer: "Electrolux",
	}))

	items, total, err := repo.ListModels(ctx, models.ComponentFilter{ModelName: "KS-200"}, firstPage)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, h.model.ID, items[0].ID)

	_, total, err = repo.ListModels(ctx, models.ComponentFilter{Manufacturer: "electro"}, firstPage)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestModelExistsByName(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()
	h := seedHierarchy(t, repo)

	exists, err := repo.ModelExistsByName(ctx, h.subtype.ID, "KS-200", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ModelExistsByName(ctx, h.subtype.ID, "KS-200", h.model.ID)
	require.NoError(t, err)
	assert.False(t, exists, "the model itself should be excluded")

	exists, err = repo.ModelExistsByName(ctx, uuid.New(), "KS-200", uuid.Nil)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestListComponentsBySpaceOnlyActive(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()
	h := seedHierarchy(t, repo)

	space := uuid.New()
	removed := &models.Component{ID: uuid.New(), ModelID: h.model.ID, Quantity: 1, Status: models.StatusActive, Condition: models.ConditionGood}
	require.NoError(t, repo.CreateComponent(ctx, removed))

	require.NoError(t, repo.CreateInstallation(ctx, &models.ComponentInstallation{
		ID: uuid.New(), ComponentID: h.component.ID, SpaceID: space, SpaceType: models.SpaceRoom,
		InstallationDate: time.Now().Add(-48 * time.Hour),
	}))
	require.NoError(t, repo.CreateInstallation(ctx, &models.ComponentInstallation{
		ID: uuid.New(), ComponentID: removed.ID, SpaceID: space, SpaceType: models.SpaceRoom,
		InstallationDate:   time.Now().Add(-96 * time.Hour),
		DeinstallationDate: utils.Ptr(time.Now().Add(-72 * time.Hour)),
	}))

	items, total, err := repo.ListComponents(ctx, models.ComponentFilter{SpaceID: space}, firstPage)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, h.component.ID, items[0].ID)

	active, err := repo.ActiveInstallation(ctx, h.component.ID)
	require.NoError(t, err)
	assert.True(t, active.Active())

	_, err = repo.ActiveInstallation(ctx, removed.ID)
	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestCreateInstallationOneOpenPerComponent(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()
	h := seedHierarchy(t, repo)

	open := func(space uuid.UUID) *models.ComponentInstallation {
		return &models.ComponentInstallation{
			ID: uuid.New(), ComponentID: h.component.ID, SpaceID: space, SpaceType: models.SpaceRoom,
			InstallationDate: time.Now(),
		}
	}
	require.NoError(t, repo.CreateInstallation(ctx, open(uuid.New())))

	// The index holds even when the caller skipped the active check.
	err := repo.CreateInstallation(ctx, open(uuid.New()))
	assert.ErrorIs(t, err, e.ErrAlreadyInstalled)

	for range 2 {
		closed := open(uuid.New())
		closed.InstallationDate = time.Now().Add(-48 * time.Hour)
		closed.DeinstallationDate = utils.Ptr(time.Now().Add(-24 * time.Hour))
		require.NoError(t, repo.CreateInstallation(ctx, closed), "closed installations are not limited")
	}

	_, total, err := repo.ListInstallations(ctx, models.ComponentFilter{ComponentID: h.component.ID, ActiveOnly: true}, firstPage)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestUpdateComponent(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()
	h := seedHierarchy(t, repo)

	err := repo.UpdateComponent(ctx, &models.ComponentUpdate{
		ID:        h.component.ID,
		Status:    utils.Ptr(models.StatusMaintenance),
		Condition: utils.Ptr(models.ConditionPoor),
	})
	require.NoError(t, err)

	got, err := repo.GetComponent(ctx, h.component.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusMaintenance, got.Status)
	assert.Equal(t, models.ConditionPoor, got.Condition)
	assert.Equal(t, "SN-1", got.SerialNumber, "untouched fields should be kept")
}

func TestUpdateNotFound(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	err := repo.UpdateCategory(ctx, &models.ComponentCategoryUpdate{ID: uuid.New(), CategoryName: utils.Ptr("x")})
	assert.ErrorIs(t, err, e.ErrNotFound)

	err = repo.UpdateCategory(ctx, &models.ComponentCategoryUpdate{ID: uuid.New()})
	assert.ErrorIs(t, err, e.ErrNotFound, "empty update of a missing row should still report not found")
}

func TestDeleteCategory(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	category := &models.ComponentCategory{ID: uuid.New(), CategoryName: "To Be Deleted"}
	require.NoError(t, repo.CreateCategory(ctx, category))

	require.NoError(t, repo.DeleteCategory(ctx, category.ID))
	_, err := repo.GetCategory(ctx, category.ID)
	assert.ErrorIs(t, err, e.ErrNotFound)

	assert.ErrorIs(t, repo.DeleteCategory(ctx, category.ID), e.ErrNotFound)
}

func TestWithTransactionRollback(t *testing.T) {
	repo := SetupTestDB(t)
	ctx := context.Background()

	id := uuid.New()
	err := repo.WithTransaction(ctx, func(tx *Repository) error {
		if err := tx.CreateCategory(ctx, &models.ComponentCategory{ID: id, CategoryName: "Temp"}); err != nil {
			return err
		}
		return e.ErrInvalidInput
	})
	assert.ErrorIs(t, err, e.ErrInvalidInput)

	_, err = repo.GetCategory(ctx, id)
	assert.ErrorIs(t, err, e.ErrNotFound, "transaction should have been rolled back")
}
