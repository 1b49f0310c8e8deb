// Package models defines the domain records of the property base: the
// property structure (company down to room) and the component hierarchy.
// The JSON names are the wire contract shared with core.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Company owns properties.
type Company struct {
	ID                 uuid.UUID `json:"id"`
	Code               string    `json:"code"`
	Name               string    `json:"name"`
	OrganizationNumber string    `json:"organizationNumber,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Property is a registered real-estate unit belonging to a company.
type Property struct {
	ID           uuid.UUID `json:"id"`
	CompanyID    uuid.UUID `json:"companyId"`
	Code         string    `json:"code"`
	Designation  string    `json:"designation"`
	Municipality string    `json:"municipality,omitempty"`
	Tract        string    `json:"tract,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Building stands on a property.
type Building struct {
	ID               uuid.UUID `json:"id"`
	PropertyID       uuid.UUID `json:"propertyId"`
	Code             string    `json:"code"`
	Name             string    `json:"name"`
	ConstructionYear int       `json:"constructionYear,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Staircase is an entrance of a building.
type Staircase struct {
	ID         uuid.UUID `json:"id"`
	BuildingID uuid.UUID `json:"buildingId"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Residence is a rentable apartment. RentalID is the rental object code
// the lease system knows it by.
type Residence struct {
	ID          uuid.UUID  `json:"id"`
	BuildingID  uuid.UUID  `json:"buildingId"`
	StaircaseID *uuid.UUID `json:"staircaseId,omitempty"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	RentalID    string     `json:"rentalId"`
	Area        float64    `json:"area,omitempty"`
	RoomCount   int        `json:"roomCount,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Room is a space inside a residence.
type Room struct {
	ID          uuid.UUID `json:"id"`
	ResidenceID uuid.UUID `json:"residenceId"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Usage       string    `json:"usage,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SearchResultType names the entity a search hit refers to.
type SearchResultType string

const (
	SearchProperty  SearchResultType = "property"
	SearchBuilding  SearchResultType = "building"
	SearchResidence SearchResultType = "residence"
)

// SearchResult is one hit of the free-text structure search.
type SearchResult struct {
	ID   uuid.UUID        `json:"id"`
	Type SearchResultType `json:"type"`
	Name string           `json:"name"`
	Code string           `json:"code"`
}

// StructureFilter narrows structure list queries. Zero values do not filter.
type StructureFilter struct {
	CompanyID   uuid.UUID
	PropertyID  uuid.UUID
	BuildingID  uuid.UUID
	StaircaseID uuid.UUID
	ResidenceID uuid.UUID
}
