// Package models contains the GORM row types of the property base schema.
package models

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code               string    `gorm:"size:32;uniqueIndex"`
	Name               string    `gorm:"size:255;not null"`
	OrganizationNumber string    `gorm:"size:32"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type Property struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Code         string    `gorm:"size:32;uniqueIndex"`
	Designation  string    `gorm:"size:255;not null"`
	Municipality string    `gorm:"size:128"`
	Tract        string    `gorm:"size:128"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Building struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	PropertyID       uuid.UUID `gorm:"type:uuid;index;not null"`
	Code             string    `gorm:"size:32;uniqueIndex"`
	Name             string    `gorm:"size:255;not null"`
	ConstructionYear int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Staircase struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	BuildingID uuid.UUID `gorm:"type:uuid;index;not null"`
	Code       string    `gorm:"size:32;not null"`
	Name       string    `gorm:"size:255"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Residence struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BuildingID  uuid.UUID  `gorm:"type:uuid;index;not null"`
	StaircaseID *uuid.UUID `gorm:"type:uuid;index"`
	Code        string     `gorm:"size:32;not null"`
	Name        string     `gorm:"size:255"`
	RentalID    string     `gorm:"size:64;uniqueIndex"`
	Area        float64
	RoomCount   int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Room struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ResidenceID uuid.UUID `gorm:"type:uuid;index;not null"`
	Code        string    `gorm:"size:32;not null"`
	Name        string    `gorm:"size:255"`
	Usage       string    `gorm:"size:64"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ComponentCategory struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryName string    `gorm:"size:255;uniqueIndex;not null"`
	Description  string    `gorm:"size:3000"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ComponentType struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID  uuid.UUID `gorm:"type:uuid;index;not null"`
	TypeName    string    `gorm:"size:255;not null"`
	Description string    `gorm:"size:3000"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ComponentSubtype struct {
	ID                        uuid.UUID `gorm:"type:uuid;primaryKey"`
	TypeID                    uuid.UUID `gorm:"type:uuid;index;not null"`
	SubTypeName               string    `gorm:"size:255;not null"`
	XpandCode                 string    `gorm:"size:64"`
	DepreciationPrice         float64   `gorm:"check:depreciation_price >= 0"`
	TechnicalLifespan         int
	EconomicLifespan          int
	ReplacementIntervalMonths int
	QuantityType              string `gorm:"size:16;not null;default:UNIT"`
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

type ComponentModel struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey"`
	SubtypeID              uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_model_subtype_name"`
	ModelName              string    `gorm:"size:255;not null;uniqueIndex:idx_model_subtype_name"`
	Manufacturer           string    `gorm:"size:255;not null"`
	CurrentPrice           float64   `gorm:"check:current_price >= 0"`
	CurrentInstallPrice    float64   `gorm:"check:current_install_price >= 0"`
	WarrantyMonths         int
	TechnicalSpecification string `gorm:"size:3000"`
	Dimensions             string `gorm:"size:255"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

type Component struct {
	ID                          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ModelID                     uuid.UUID `gorm:"type:uuid;index;not null"`
	SerialNumber                string    `gorm:"size:255"`
	Specifications              string    `gorm:"size:3000"`
	AdditionalInformation       string    `gorm:"size:3000"`
	WarrantyStartDate           *time.Time
	WarrantyMonths              int
	PriceAtPurchase             float64
	DepreciationPriceAtPurchase float64
	EconomicLifespan            int
	Quantity                    float64 `gorm:"not null;default:1"`
	Status                      string  `gorm:"size:16;index;not null"`
	Condition                   string  `gorm:"size:16;not null"`
	CreatedAt                   time.Time
	UpdatedAt                   time.Time
}

type ComponentInstallation struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	// At most one open installation per component.
	ComponentID        uuid.UUID  `gorm:"type:uuid;index;not null;uniqueIndex:idx_installation_open,where:deinstallation_date IS NULL"`
	SpaceID            uuid.UUID  `gorm:"type:uuid;index;not null"`
	SpaceType          string     `gorm:"size:16;not null"`
	InstallationDate   time.Time  `gorm:"not null"`
	DeinstallationDate *time.Time `gorm:"index"`
	OrderNumber        string     `gorm:"size:64"`
	Cost               float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// All lists every row type for AutoMigrate.
func All() []any {
	return []any{
		&Company{},
		&Property{},
		&Building{},
		&Staircase{},
		&Residence{},
		&Room{},
		&ComponentCategory{},
		&ComponentType{},
		&ComponentSubtype{},
		&ComponentModel{},
		&Component{},
		&ComponentInstallation{},
	}
}
