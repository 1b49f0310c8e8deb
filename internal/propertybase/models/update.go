package models

import (
	"time"

	"github.com/google/uuid"
)

// The *Update records carry the fields a PUT may change. Pointer fields
// allow partial updates; nil leaves a column untouched.

type ComponentCategoryUpdate struct {
	ID           uuid.UUID `json:"-"`
	CategoryName *string   `json:"categoryName"`
	Description  *string   `json:"description"`
}

type ComponentTypeUpdate struct {
	ID          uuid.UUID  `json:"-"`
	CategoryID  *uuid.UUID `json:"categoryId"`
	TypeName    *string    `json:"typeName"`
	Description *string    `json:"description"`
}

type ComponentSubtypeUpdate struct {
	ID                        uuid.UUID     `json:"-"`
	TypeID                    *uuid.UUID    `json:"typeId"`
	SubTypeName               *string       `json:"subTypeName"`
	XpandCode                 *string       `json:"xpandCode"`
	DepreciationPrice         *float64      `json:"depreciationPrice"`
	TechnicalLifespan         *int          `json:"technicalLifespan"`
	EconomicLifespan          *int          `json:"economicLifespan"`
	ReplacementIntervalMonths *int          `json:"replacementIntervalMonths"`
	QuantityType              *QuantityType `json:"quantityType"`
}

type ComponentModelUpdate struct {
	ID                     uuid.UUID  `json:"-"`
	SubtypeID              *uuid.UUID `json:"subtypeId"`
	ModelName              *string    `json:"modelName"`
	Manufacturer           *string    `json:"manufacturer"`
	CurrentPrice           *float64   `json:"currentPrice"`
	CurrentInstallPrice    *float64   `json:"currentInstallPrice"`
	WarrantyMonths         *int       `json:"warrantyMonths"`
	TechnicalSpecification *string    `json:"technicalSpecification"`
	Dimensions             *string    `json:"dimensions"`
}

type ComponentUpdate struct {
	ID                          uuid.UUID           `json:"-"`
	SerialNumber                *string             `json:"serialNumber"`
	Specifications              *string             `json:"specifications"`
	AdditionalInformation       *string             `json:"additionalInformation"`
	WarrantyStartDate           *time.Time          `json:"warrantyStartDate"`
	WarrantyMonths              *int                `json:"warrantyMonths"`
	PriceAtPurchase             *float64            `json:"priceAtPurchase"`
	DepreciationPriceAtPurchase *float64            `json:"depreciationPriceAtPurchase"`
	EconomicLifespan            *int                `json:"economicLifespan"`
	Quantity                    *float64            `json:"quantity"`
	Status                      *ComponentStatus    `json:"status"`
	Condition                   *ComponentCondition `json:"condition"`
}

type ComponentInstallationUpdate struct {
	ID                 uuid.UUID  `json:"-"`
	SpaceID            *uuid.UUID `json:"spaceId"`
	SpaceType          *SpaceType `json:"spaceType"`
	InstallationDate   *time.Time `json:"installationDate"`
	DeinstallationDate *time.Time `json:"deinstallationDate"`
	OrderNumber        *string    `json:"orderNumber"`
	Cost               *float64   `json:"cost"`
}

// ComponentFilter narrows component hierarchy list queries. Zero values do
// not filter.
type ComponentFilter struct {
	CategoryID   uuid.UUID
	TypeID       uuid.UUID
	SubtypeID    uuid.UUID
	ModelID      uuid.UUID
	ComponentID  uuid.UUID
	SpaceID      uuid.UUID
	SubtypeName  string
	ModelName    string
	Manufacturer string
	Status       ComponentStatus
	ActiveOnly   bool
}
