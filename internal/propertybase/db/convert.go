package db

import (
	dbm "github.com/gartstein/propertyhub/internal/propertybase/db/models"
	"github.com/gartstein/propertyhub/internal/propertybase/models"
)

func companyToRow(c *models.Company) *dbm.Company {
	return &dbm.Company{ID: c.ID, Code: c.Code, Name: c.Name, OrganizationNumber: c.OrganizationNumber}
}

func companyFromRow(r *dbm.Company) *models.Company {
	return &models.Company{
		ID: r.ID, Code: r.Code, Name: r.Name, OrganizationNumber: r.OrganizationNumber,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func propertyToRow(p *models.Property) *dbm.Property {
	return &dbm.Property{
		ID: p.ID, CompanyID: p.CompanyID, Code: p.Code, Designation: p.Designation,
		Municipality: p.Municipality, Tract: p.Tract,
	}
}

func propertyFromRow(r *dbm.Property) *models.Property {
	return &models.Property{
		ID: r.ID, CompanyID: r.CompanyID, Code: r.Code, Designation: r.Designation,
		Municipality: r.Municipality, Tract: r.Tract,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func buildingToRow(b *models.Building) *dbm.Building {
	return &dbm.Building{
		ID: b.ID, PropertyID: b.PropertyID, Code: b.Code, Name: b.Name,
		ConstructionYear: b.ConstructionYear,
	}
}

func buildingFromRow(r *dbm.Building) *models.Building {
	return &models.Building{
		ID: r.ID, PropertyID: r.PropertyID, Code: r.Code, Name: r.Name,
		ConstructionYear: r.ConstructionYear,
		CreatedAt:        r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func staircaseToRow(s *models.Staircase) *dbm.Staircase {
	return &dbm.Staircase{ID: s.ID, BuildingID: s.BuildingID, Code: s.Code, Name: s.Name}
}

func staircaseFromRow(r *dbm.Staircase) *models.Staircase {
	return &models.Staircase{
		ID: r.ID, BuildingID: r.BuildingID, Code: r.Code, Name: r.Name,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func residenceToRow(r *models.Residence) *dbm.Residence {
	return &dbm.Residence{
		ID: r.ID, BuildingID: r.BuildingID, StaircaseID: r.StaircaseID, Code: r.Code,
		Name: r.Name, RentalID: r.RentalID, Area: r.Area, RoomCount: r.RoomCount,
	}
}

func residenceFromRow(r *dbm.Residence) *models.Residence {
	return &models.Residence{
		ID: r.ID, BuildingID: r.BuildingID, StaircaseID: r.StaircaseID, Code: r.Code,
		Name: r.Name, RentalID: r.RentalID, Area: r.Area, RoomCount: r.RoomCount,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func roomToRow(r *models.Room) *dbm.Room {
	return &dbm.Room{ID: r.ID, ResidenceID: r.ResidenceID, Code: r.Code, Name: r.Name, Usage: r.Usage}
}

func roomFromRow(r *dbm.Room) *models.Room {
	return &models.Room{
		ID: r.ID, ResidenceID: r.ResidenceID, Code: r.Code, Name: r.Name, Usage: r.Usage,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func categoryToRow(c *models.ComponentCategory) *dbm.ComponentCategory {
	return &dbm.ComponentCategory{ID: c.ID, CategoryName: c.CategoryName, Description: c.Description}
}

func categoryFromRow(r *dbm.ComponentCategory) *models.ComponentCategory {
	return &models.ComponentCategory{
		ID: r.ID, CategoryName: r.CategoryName, Description: r.Description,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func typeToRow(t *models.ComponentType) *dbm.ComponentType {
	return &dbm.ComponentType{ID: t.ID, CategoryID: t.CategoryID, TypeName: t.TypeName, Description: t.Description}
}

func typeFromRow(r *dbm.ComponentType) *models.ComponentType {
	return &models.ComponentType{
		ID: r.ID, CategoryID: r.CategoryID, TypeName: r.TypeName, Description: r.Description,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func subtypeToRow(s *models.ComponentSubtype) *dbm.ComponentSubtype {
	return &dbm.ComponentSubtype{
		ID: s.ID, TypeID: s.TypeID, SubTypeName: s.SubTypeName, XpandCode: s.XpandCode,
		DepreciationPrice: s.DepreciationPrice, TechnicalLifespan: s.TechnicalLifespan,
		EconomicLifespan: s.EconomicLifespan, ReplacementIntervalMonths: s.ReplacementIntervalMonths,
		QuantityType: string(s.QuantityType),
	}
}

func subtypeFromRow(r *dbm.ComponentSubtype) *models.ComponentSubtype {
	return &models.ComponentSubtype{
		ID: r.ID, TypeID: r.TypeID, SubTypeName: r.SubTypeName, XpandCode: r.XpandCode,
		DepreciationPrice: r.DepreciationPrice, TechnicalLifespan: r.TechnicalLifespan,
		EconomicLifespan: r.EconomicLifespan, ReplacementIntervalMonths: r.ReplacementIntervalMonths,
		QuantityType: models.QuantityType(r.QuantityType),
		CreatedAt:    r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func modelToRow(m *models.ComponentModel) *dbm.ComponentModel {
	return &dbm.ComponentModel{
		ID: m.ID, SubtypeID: m.SubtypeID, ModelName: m.ModelName, Manufacturer: m.Manufacturer,
		CurrentPrice: m.CurrentPrice, CurrentInstallPrice: m.CurrentInstallPrice,
		WarrantyMonths: m.WarrantyMonths, TechnicalSpecification: m.TechnicalSpecification,
		Dimensions: m.Dimensions,
	}
}

func modelFromRow(r *dbm.ComponentModel) *models.ComponentModel {
	return &models.ComponentModel{
		ID: r.ID, SubtypeID: r.SubtypeID, ModelName: r.ModelName, Manufacturer: r.Manufacturer,
		CurrentPrice: r.CurrentPrice, CurrentInstallPrice: r.CurrentInstallPrice,
		WarrantyMonths: r.WarrantyMonths, TechnicalSpecification: r.TechnicalSpecification,
		Dimensions: r.Dimensions,
		CreatedAt:  r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func componentToRow(c *models.Component) *dbm.Component {
	return &dbm.Component{
		ID: c.ID, ModelID: c.ModelID, SerialNumber: c.SerialNumber, Specifications: c.Specifications,
		AdditionalInformation: c.AdditionalInformation, WarrantyStartDate: c.WarrantyStartDate,
		WarrantyMonths: c.WarrantyMonths, PriceAtPurchase: c.PriceAtPurchase,
		DepreciationPriceAtPurchase: c.DepreciationPriceAtPurchase, EconomicLifespan: c.EconomicLifespan,
		Quantity: c.Quantity, Status: string(c.Status), Condition: string(c.Condition),
	}
}

func componentFromRow(r *dbm.Component) *models.Component {
	return &models.Component{
		ID: r.ID, ModelID: r.ModelID, SerialNumber: r.SerialNumber, Specifications: r.Specifications,
		AdditionalInformation: r.AdditionalInformation, WarrantyStartDate: r.WarrantyStartDate,
		WarrantyMonths: r.WarrantyMonths, PriceAtPurchase: r.PriceAtPurchase,
		DepreciationPriceAtPurchase: r.DepreciationPriceAtPurchase, EconomicLifespan: r.EconomicLifespan,
		Quantity: r.Quantity, Status: models.ComponentStatus(r.Status),
		Condition: models.ComponentCondition(r.Condition),
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

func installationToRow(i *models.ComponentInstallation) *dbm.ComponentInstallation {
	return &dbm.ComponentInstallation{
		ID: i.ID, ComponentID: i.ComponentID, SpaceID: i.SpaceID, SpaceType: string(i.SpaceType),
		InstallationDate: i.InstallationDate, DeinstallationDate: i.DeinstallationDate,
		OrderNumber: i.OrderNumber, Cost: i.Cost,
	}
}

func installationFromRow(r *dbm.ComponentInstallation) *models.ComponentInstallation {
	return &models.ComponentInstallation{
		ID: r.ID, ComponentID: r.ComponentID, SpaceID: r.SpaceID, SpaceType: models.SpaceType(r.SpaceType),
		InstallationDate: r.InstallationDate, DeinstallationDate: r.DeinstallationDate,
		OrderNumber: r.OrderNumber, Cost: r.Cost,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

// mapRows converts a slice of rows with fn.
func mapRows[R any, M any](rows []R, fn func(*R) *M) []M {
	out := make([]M, 0, len(rows))
	for i := range rows {
		out = append(out, *fn(&rows[i]))
	}
	return out
}
