package models

import (
	"time"

	"github.com/google/uuid"
)

// QuantityType is the unit a subtype is counted in.
type QuantityType string

const (
	QuantityUnit        QuantityType = "UNIT"
	QuantityMeter       QuantityType = "METER"
	QuantitySquareMeter QuantityType = "SQUARE_METER"
	QuantityCubicMeter  QuantityType = "CUBIC_METER"
)

// Valid reports whether q is a known quantity type.
func (q QuantityType) Valid() bool {
	switch q {
	case QuantityUnit, QuantityMeter, QuantitySquareMeter, QuantityCubicMeter:
		return true
	}
	return false
}

// ComponentStatus is the operational state of a component instance.
type ComponentStatus string

const (
	StatusActive         ComponentStatus = "ACTIVE"
	StatusInactive       ComponentStatus = "INACTIVE"
	StatusMaintenance    ComponentStatus = "MAINTENANCE"
	StatusDecommissioned ComponentStatus = "DECOMMISSIONED"
)

// Valid reports whether s is a known status.
func (s ComponentStatus) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusMaintenance, StatusDecommissioned:
		return true
	}
	return false
}

// ComponentCondition is the physical condition of a component instance.
type ComponentCondition string

const (
	ConditionNew     ComponentCondition = "NEW"
	ConditionGood    ComponentCondition = "GOOD"
	ConditionFair    ComponentCondition = "FAIR"
	ConditionPoor    ComponentCondition = "POOR"
	ConditionDamaged ComponentCondition = "DAMAGED"
)

// Valid reports whether c is a known condition.
func (c ComponentCondition) Valid() bool {
	switch c {
	case ConditionNew, ConditionGood, ConditionFair, ConditionPoor, ConditionDamaged:
		return true
	}
	return false
}

// SpaceType names the kind of location an installation points at.
type SpaceType string

const (
	SpaceObject    SpaceType = "OBJECT"
	SpaceProperty  SpaceType = "PROPERTY"
	SpaceBuilding  SpaceType = "BUILDING"
	SpaceStaircase SpaceType = "STAIRCASE"
	SpaceResidence SpaceType = "RESIDENCE"
	SpaceRoom      SpaceType = "ROOM"
)

// Valid reports whether s is a known space type.
func (s SpaceType) Valid() bool {
	switch s {
	case SpaceObject, SpaceProperty, SpaceBuilding, SpaceStaircase, SpaceResidence, SpaceRoom:
		return true
	}
	return false
}

// ComponentCategory is the top of the component hierarchy.
type ComponentCategory struct {
	ID           uuid.UUID `json:"id"`
	CategoryName string    `json:"categoryName"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ComponentType groups subtypes within a category.
type ComponentType struct {
	ID          uuid.UUID `json:"id"`
	CategoryID  uuid.UUID `json:"categoryId"`
	TypeName    string    `json:"typeName"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ComponentSubtype carries the depreciation and lifespan defaults of its models.
type ComponentSubtype struct {
	ID                        uuid.UUID    `json:"id"`
	TypeID                    uuid.UUID    `json:"typeId"`
	SubTypeName               string       `json:"subTypeName"`
	XpandCode                 string       `json:"xpandCode,omitempty"`
	DepreciationPrice         float64      `json:"depreciationPrice"`
	TechnicalLifespan         int          `json:"technicalLifespan"`
	EconomicLifespan          int          `json:"economicLifespan"`
	ReplacementIntervalMonths int          `json:"replacementIntervalMonths"`
	QuantityType              QuantityType `json:"quantityType"`
	CreatedAt                 time.Time    `json:"createdAt"`
	UpdatedAt                 time.Time    `json:"updatedAt"`
}

// ComponentModel is a purchasable product of a subtype.
type ComponentModel struct {
	ID                     uuid.UUID `json:"id"`
	SubtypeID              uuid.UUID `json:"subtypeId"`
	ModelName              string    `json:"modelName"`
	Manufacturer           string    `json:"manufacturer"`
	CurrentPrice           float64   `json:"currentPrice"`
	CurrentInstallPrice    float64   `json:"currentInstallPrice"`
	WarrantyMonths         int       `json:"warrantyMonths"`
	TechnicalSpecification string    `json:"technicalSpecification,omitempty"`
	Dimensions             string    `json:"dimensions,omitempty"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// Component is one physical instance of a model.
type Component struct {
	ID                          uuid.UUID          `json:"id"`
	ModelID                     uuid.UUID          `json:"modelId"`
	SerialNumber                string             `json:"serialNumber,omitempty"`
	Specifications              string             `json:"specifications,omitempty"`
	AdditionalInformation       string             `json:"additionalInformation,omitempty"`
	WarrantyStartDate           *time.Time         `json:"warrantyStartDate,omitempty"`
	WarrantyMonths              int                `json:"warrantyMonths"`
	PriceAtPurchase             float64            `json:"priceAtPurchase"`
	DepreciationPriceAtPurchase float64            `json:"depreciationPriceAtPurchase"`
	EconomicLifespan            int                `json:"economicLifespan"`
	Quantity                    float64            `json:"quantity"`
	Status                      ComponentStatus    `json:"status"`
	Condition                   ComponentCondition `json:"condition"`
	CreatedAt                   time.Time          `json:"createdAt"`
	UpdatedAt                   time.Time          `json:"updatedAt"`
}

// ComponentInstallation places a component at a space for a period. A null
// DeinstallationDate means the component is installed there now.
type ComponentInstallation struct {
	ID                 uuid.UUID  `json:"id"`
	ComponentID        uuid.UUID  `json:"componentId"`
	SpaceID            uuid.UUID  `json:"spaceId"`
	SpaceType          SpaceType  `json:"spaceType"`
	InstallationDate   time.Time  `json:"installationDate"`
	DeinstallationDate *time.Time `json:"deinstallationDate,omitempty"`
	OrderNumber        string     `json:"orderNumber,omitempty"`
	Cost               float64    `json:"cost"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// Active reports whether the installation has not been ended.
func (i *ComponentInstallation) Active() bool {
	return i.DeinstallationDate == nil
}
