package httpjson

import "github.com/gartstein/propertyhub/internal/propertybase/models"

// PageRequest reads the page and limit parameters.
func PageRequest(q *Query) models.PageRequest {
	return models.PageRequest{Page: q.Int("page"), Limit: q.Int("limit")}
}

// ComponentFilter reads the component hierarchy filters.
func ComponentFilter(q *Query) models.ComponentFilter {
	return models.ComponentFilter{
		CategoryID:   q.ID("categoryId"),
		TypeID:       q.ID("typeId"),
		SubtypeID:    q.ID("subtypeId"),
		ModelID:      q.ID("modelId"),
		ComponentID:  q.ID("componentId"),
		SpaceID:      q.ID("spaceId"),
		SubtypeName:  q.Str("subtypeName"),
		ModelName:    q.Str("modelName"),
		Manufacturer: q.Str("manufacturer"),
		Status:       models.ComponentStatus(q.Str("status")),
		ActiveOnly:   q.Bool("active"),
	}
}

// StructureFilter reads the parent ids of the property structure.
func StructureFilter(q *Query) models.StructureFilter {
	return models.StructureFilter{
		CompanyID:   q.ID("companyId"),
		PropertyID:  q.ID("propertyId"),
		BuildingID:  q.ID("buildingId"),
		StaircaseID: q.ID("staircaseId"),
		ResidenceID: q.ID("residenceId"),
	}
}

// NoFilter is the filter of lists that take none.
func NoFilter(*Query) struct{} { return struct{}{} }
