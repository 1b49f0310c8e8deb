package controller

import (
	"context"
	"strings"

	"github.com/gartstein/propertyhub/internal/propertybase/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StructureRepository is the storage interface for the property structure.
type StructureRepository interface {
	CreateCompany(ctx context.Context, company *models.Company) error
	GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error)
	ListCompanies(ctx context.Context, page models.PageRequest) ([]models.Company, int64, error)
	CreateProperty(ctx context.Context, property *models.Property) error
	GetProperty(ctx context.Context, id uuid.UUID) (*models.Property, error)
	ListProperties(ctx context.Context, f models.StructureFilter, page models.PageRequest) ([]models.Property, int64, error)
	CreateBuilding(ctx context.Context, building *models.Building) error
	GetBuilding(ctx context.Context, id uuid.UUID) (*models.Building, error)
	ListBuildings(ctx context.Context, f models.StructureFilter, page models.PageRequest) ([]models.Building, int64, error)
	CreateStaircase(ctx context.Context, staircase *models.Staircase) error
	GetStaircase(ctx context.Context, id uuid.UUID) (*models.Staircase, error)
	ListStaircases(ctx context.Context, f models.StructureFilter, page models.PageRequest) ([]models.Staircase, int64, error)
	CreateResidence(ctx context.Context, residence *models.Residence) error
	GetResidence(ctx context.Context, id uuid.UUID) (*models.Residence, error)
	GetResidenceByRentalID(ctx context.Context, rentalID string) (*models.Residence, error)
	ListResidences(ctx context.Context, f models.StructureFilter, page models.PageRequest) ([]models.Residence, int64, error)
	CreateRoom(ctx context.Context, room *models.Room) error
	GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error)
	ListRooms(ctx context.Context, f models.StructureFilter, page models.PageRequest) ([]models.Room, int64, error)
	Search(ctx context.Context, q string, limit int) ([]models.SearchResult, error)
}

// StructureService manages companies, properties, buildings, staircases,
// residences and rooms.
type StructureService struct {
	repo   StructureRepository
	logger *zap.Logger
}

func NewStructureService(repo StructureRepository, logger *zap.Logger) *StructureService {
	return &StructureService{
		repo:   repo,
		logger: logger.Named("structure_service"),
	}
}

func requireCodeName(kind, code, name string) error {
	if strings.TrimSpace(code) == "" {
		return invalid("%s code is required", kind)
	}
	if strings.TrimSpace(name) == "" {
		return invalid("%s name is required", kind)
	}
	return nil
}

// Companies

func (s *StructureService) CreateCompany(ctx context.Context, company *models.Company) (*models.Company, error) {
	if err := requireCodeName("company", company.Code, company.Name); err != nil {
		return nil, err
	}
	company.ID = uuid.New()
	if err := s.repo.CreateCompany(ctx, company); err != nil {
		return nil, passNotFound(err, "create company")
	}
	return company, nil
}

func (s *StructureService) GetCompany(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	company, err := s.repo.GetCompany(ctx, id)
	if err != nil {
		return nil, passNotFound(err, "get company")
	}
	return company, nil
}

func (s *StructureService) ListCompanies(ctx context.Context, page models.PageRequest) (models.Page[models.Company], error) {
	page = page.Normalize()
	items, total, err := s.repo.ListCompanies(ctx, page)
	if err != nil {
		return models.Page[models.Company]{}, passNotFound(err, "list companies")
	}
	return models.NewPage(items, total, page), nil
}

// Properties

func (s *StructureService) CreateProperty(ctx context.Context, property *models.Property) (*models.Property, error) {
	if err := requireCodeName("property", property.Code, property.Designation); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetCompany(ctx, property.CompanyID); err != nil {
		return nil, parentMissing(err, "company")
	}
	property.ID = uuid.New()
	if err := s.repo.CreateProperty(ctx, property); err != nil {
		return nil, passNotFound(err, "create property")
	}
	return property, nil
}

func (s *StructureService) GetProperty(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	property, err := s.repo.GetProperty(ctx, id)
	if err != nil {
		return nil, passNotFound(err, "get property")
	}
	return property, nil
}

func (s *StructureService) ListProperties(ctx context.Context, f models.StructureFilter, page models.PageRequest) (models.Page[models.Property], error) {
	page = page.Normalize()
	items, total, err := s.repo.ListProperties(ctx, f, page)
	if err != nil {
		return models.Page[models.Property]{}, passNotFound(err, "list properties")
	}
	return models.NewPage(items, total, page), nil
}

// Buildings

func (s *StructureService) CreateBuilding(ctx context.Context, building *models.Building) (*models.Building, error) {
	if err := requireCodeName("building", building.Code, building.Name); err != nil {
		return nil, err
	}
	if building.ConstructionYear < 0 {
		return nil, invalid("constructionYear must not be negative")
	}
	if _, err := s.repo.GetProperty(ctx, building.PropertyID); err != nil {
		return nil, parentMissing(err, "property")
	}
	building.ID = uuid.New()
	if err := s.repo.CreateBuilding(ctx, building); err != nil {
		return nil, passNotFound(err, "create building")
	}
	return building, nil
}

func (s *StructureService) GetBuilding(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	building, err := s.repo.GetBuilding(ctx, id)
	if err != nil {
		return nil, passNotFound(err, "get building")
	}
	return building, nil
}

func (s *StructureService) ListBuildings(ctx context.Context, f models.StructureFilter, page models.PageRequest) (models.Page[models.Building], error) {
	page = page.Normalize()
	items, total, err := s.repo.ListBuildings(ctx, f, page)
	if err != nil {
		return models.Page[models.Building]{}, passNotFound(err, "list buildings")
	}
	return models.NewPage(items, total, page), nil
}

// Staircases

func (s *StructureService) CreateStaircase(ctx context.Context, staircase *models.Staircase) (*models.Staircase, error) {
	if err := requireCodeName("staircase", staircase.Code, staircase.Name); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetBuilding(ctx, staircase.BuildingID); err != nil {
		return nil, parentMissing(err, "building")
	}
	staircase.ID = uuid.New()
	if err := s.repo.CreateStaircase(ctx, staircase); err != nil {
		return nil, passNotFound(err, "create staircase")
	}
	return staircase, nil
}

func (s *StructureService) GetStaircase(ctx context.Context, id uuid.UUID) (*models.Staircase, error) {
	staircase, err := s.repo.GetStaircase(ctx, id)
	if err != nil {
		return nil, passNotFound(err, "get staircase")
	}
	return staircase, nil
}

func (s *StructureService) ListStaircases(ctx context.Context, f models.StructureFilter, page models.PageRequest) (models.Page[models.Staircase], error) {
	page = page.Normalize()
	items, total, err := s.repo.ListStaircases(ctx, f, page)
	if err != nil {
		return models.Page[models.Staircase]{}, passNotFound(err, "list staircases")
	}
	return models.NewPage(items, total, page), nil
}

// Residences

// CreateResidence requires a rental ID. A staircase, when given, must belong
// to the residence's building.
func (s *StructureService) CreateResidence(ctx context.Context, residence *models.Residence) (*models.Residence, error) {
	if err := requireCodeName("residence", residence.Code, residence.Name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(residence.RentalID) == "" {
		return nil, invalid("residence rentalId is required")
	}
	if residence.Area < 0 || residence.RoomCount < 0 {
		return nil, invalid("area and roomCount must not be negative")
	}
	if _, err := s.repo.GetBuilding(ctx, residence.BuildingID); err != nil {
		return nil, parentMissing(err, "building")
	}
	if residence.StaircaseID != nil {
		staircase, err := s.repo.GetStaircase(ctx, *residence.StaircaseID)
		if err != nil {
			return nil, parentMissing(err, "staircase")
		}
		if staircase.BuildingID != residence.BuildingID {
			return nil, invalid("staircase belongs to another building")
		}
	}
	residence.ID = uuid.New()
	if err := s.repo.CreateResidence(ctx, residence); err != nil {
		return nil, passNotFound(err, "create residence")
	}
	return residence, nil
}

func (s *StructureService) GetResidence(ctx context.Context, id uuid.UUID) (*models.Residence, error) {
	residence, err := s.repo.GetResidence(ctx, id)
	if err != nil {
		return nil, passNotFound(err, "get residence")
	}
	return residence, nil
}

func (s *StructureService) GetResidenceByRentalID(ctx context.Context, rentalID string) (*models.Residence, error) {
	if strings.TrimSpace(rentalID) == "" {
		return nil, invalid("rentalId is required")
	}
	residence, err := s.repo.GetResidenceByRentalID(ctx, rentalID)
	if err != nil {
		return nil, passNotFound(err, "get residence")
	}
	return residence, nil
}

func (s *StructureService) ListResidences(ctx context.Context, f models.StructureFilter, page models.PageRequest) (models.Page[models.Residence], error) {
	page = page.Normalize()
	items, total, err := s.repo.ListResidences(ctx, f, page)
	if err != nil {
		return models.Page[models.Residence]{}, passNotFound(err, "list residences")
	}
	return models.NewPage(items, total, page), nil
}

// Rooms

func (s *StructureService) CreateRoom(ctx context.Context, room *models.Room) (*models.Room, error) {
	if err := requireCodeName("room", room.Code, room.Name); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetResidence(ctx, room.ResidenceID); err != nil {
		return nil, parentMissing(err, "residence")
	}
	room.ID = uuid.New()
	if err := s.repo.CreateRoom(ctx, room); err != nil {
		return nil, passNotFound(err, "create room")
	}
	return room, nil
}

func (s *StructureService) GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	room, err := s.repo.GetRoom(ctx, id)
	if err != nil {
		return nil, passNotFound(err, "get room")
	}
	return room, nil
}

func (s *StructureService) ListRooms(ctx context.Context, f models.StructureFilter, page models.PageRequest) (models.Page[models.Room], error) {
	page = page.Normalize()
	items, total, err := s.repo.ListRooms(ctx, f, page)
	if err != nil {
		return models.Page[models.Room]{}, passNotFound(err, "list rooms")
	}
	return models.NewPage(items, total, page), nil
}

// Search runs the free-text structure search. Queries shorter than
// MinSearchLength characters are rejected.
func (s *StructureService) Search(ctx context.Context, q string) ([]models.SearchResult, error) {
	q = strings.TrimSpace(q)
	if len([]rune(q)) < MinSearchLength {
		return nil, invalid("query must be at least %d characters", MinSearchLength)
	}
	results, err := s.repo.Search(ctx, q, SearchLimit)
	if err != nil {
		s.logger.Error("Search failed", zap.Error(err), zap.String("q", q))
		return nil, passNotFound(err, "search")
	}
	return results, nil
}
