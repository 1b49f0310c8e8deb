// Package processes implements the multi-step operations core runs against
// property base.
package processes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gartstein/propertyhub/internal/core/adapters"
	"github.com/gartstein/propertyhub/internal/pkg/metrics"
	"github.com/gartstein/propertyhub/internal/propertybase/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Failure names the step of addComponent that failed.
type Failure string

const (
	InvalidRequest             Failure = "InvalidRequest"
	ModelLookupFailed          Failure = "ModelLookupFailed"
	AmbiguousModel             Failure = "AmbiguousModel"
	MissingModelFields         Failure = "MissingModelFields"
	ModelCreationFailed        Failure = "ModelCreationFailed"
	ComponentCreationFailed    Failure = "ComponentCreationFailed"
	InstallationCreationFailed Failure = "InstallationCreationFailed"
)

func (f Failure) Error() string { return string(f) }

// Error is a failed addComponent run.
type Error struct {
	Failure Failure
	// MissingFields lists the wire names of absent model fields.
	MissingFields []string
	Err           error
}

func (e *Error) Error() string {
	switch {
	case len(e.MissingFields) > 0:
		return fmt.Sprintf("%s: %s", e.Failure, strings.Join(e.MissingFields, ", "))
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Failure, e.Err)
	}
	return string(e.Failure)
}

func (e *Error) Is(target error) bool {
	f, ok := target.(Failure)
	return ok && f == e.Failure
}

func (e *Error) Unwrap() error { return e.Err }

// ComponentStore is the part of the property base adapter the process uses.
type ComponentStore interface {
	FindModelByName(ctx context.Context, name string, subtypeID uuid.UUID) (*models.ComponentModel, error)
	CreateModel(ctx context.Context, m *models.ComponentModel) (*models.ComponentModel, error)
	CreateComponent(ctx context.Context, c *models.Component) (*models.Component, error)
	DeleteComponent(ctx context.Context, id uuid.UUID) error
	CreateInstallation(ctx context.Context, i *models.ComponentInstallation) (*models.ComponentInstallation, error)
}

// AddComponentRequest is the input of addComponent. The model fields are
// only read when no model named ModelName exists.
type AddComponentRequest struct {
	ModelName string `json:"modelName"`

	SubtypeID              *uuid.UUID `json:"subtypeId"`
	Manufacturer           string     `json:"manufacturer"`
	CurrentPrice           *float64   `json:"currentPrice"`
	CurrentInstallPrice    *float64   `json:"currentInstallPrice"`
	WarrantyMonths         *int       `json:"warrantyMonths"`
	TechnicalSpecification string     `json:"technicalSpecification"`
	Dimensions             string     `json:"dimensions"`

	SerialNumber                string                    `json:"serialNumber"`
	Specifications              string                    `json:"specifications"`
	AdditionalInformation       string                    `json:"additionalInformation"`
	WarrantyStartDate           *time.Time                `json:"warrantyStartDate"`
	PriceAtPurchase             *float64                  `json:"priceAtPurchase"`
	DepreciationPriceAtPurchase float64                   `json:"depreciationPriceAtPurchase"`
	EconomicLifespan            int                       `json:"economicLifespan"`
	Quantity                    float64                   `json:"quantity"`
	Status                      models.ComponentStatus    `json:"status"`
	Condition                   models.ComponentCondition `json:"condition"`

	SpaceID          uuid.UUID        `json:"spaceId"`
	SpaceType        models.SpaceType `json:"spaceType"`
	InstallationDate *time.Time       `json:"installationDate"`
	OrderNumber      string           `json:"orderNumber"`
	Cost             float64          `json:"cost"`
}

// AddComponentResult is what a successful run created or reused.
type AddComponentResult struct {
	Model        *models.ComponentModel        `json:"model"`
	Component    *models.Component             `json:"component"`
	Installation *models.ComponentInstallation `json:"installation"`
	ModelCreated bool                          `json:"modelCreated"`
}

const processName = "add_component"

// compensationTries bounds the attempts to delete an orphaned component.
const compensationTries = 3

type AddComponent struct {
	store   ComponentStore
	metrics *metrics.Metrics
	logger  *zap.Logger
	backoff func() backoff.BackOff
}

// NewAddComponent builds the process. m may be nil.
func NewAddComponent(store ComponentStore, m *metrics.Metrics, logger *zap.Logger) *AddComponent {
	return &AddComponent{
		store:   store,
		metrics: m,
		logger:  logger.Named("add_component"),
		backoff: func() backoff.BackOff {
			policy := backoff.NewExponentialBackOff()
			policy.InitialInterval = 100 * time.Millisecond
			return policy
		},
	}
}

// Run finds or creates the model, creates a component of it and installs
// the component at the requested space. When the installation fails the
// component is deleted again; the model is never rolled back.
func (p *AddComponent) Run(ctx context.Context, req AddComponentRequest) (*AddComponentResult, error) {
	result, err := p.run(ctx, req)
	outcome := "success"
	var failed *Error
	if errors.As(err, &failed) {
		outcome = string(failed.Failure)
	}
	p.metrics.RecordProcess(processName, outcome)
	return result, err
}

func (p *AddComponent) run(ctx context.Context, req AddComponentRequest) (*AddComponentResult, error) {
	if missing := missingRequestFields(req); len(missing) > 0 {
		return nil, &Error{Failure: InvalidRequest, MissingFields: missing}
	}

	model, created, err := p.resolveModel(ctx, req)
	if err != nil {
		return nil, err
	}

	component, err := p.store.CreateComponent(ctx, newComponent(req, model))
	if err != nil {
		p.logger.Error("Component creation failed", zap.Error(err), zap.String("model_id", model.ID.String()))
		return nil, &Error{Failure: ComponentCreationFailed, Err: err}
	}

	installation, err := p.store.CreateInstallation(ctx, newInstallation(req, component))
	if err != nil {
		p.logger.Error("Installation creation failed, removing component",
			zap.Error(err),
			zap.String("component_id", component.ID.String()),
		)
		p.compensate(ctx, component.ID)
		return nil, &Error{Failure: InstallationCreationFailed, Err: err}
	}

	return &AddComponentResult{
		Model:        model,
		Component:    component,
		Installation: installation,
		ModelCreated: created,
	}, nil
}

func missingRequestFields(req AddComponentRequest) []string {
	var missing []string
	if strings.TrimSpace(req.ModelName) == "" {
		missing = append(missing, "modelName")
	}
	if req.SpaceID == uuid.Nil {
		missing = append(missing, "spaceId")
	}
	return missing
}

// missingModelFields lists the fields needed to create a model that req
// leaves out.
func missingModelFields(req AddComponentRequest) []string {
	var missing []string
	if req.SubtypeID == nil || *req.SubtypeID == uuid.Nil {
		missing = append(missing, "subtypeId")
	}
	if strings.TrimSpace(req.Manufacturer) == "" {
		missing = append(missing, "manufacturer")
	}
	if req.CurrentPrice == nil {
		missing = append(missing, "currentPrice")
	}
	if req.CurrentInstallPrice == nil {
		missing = append(missing, "currentInstallPrice")
	}
	if req.WarrantyMonths == nil {
		missing = append(missing, "warrantyMonths")
	}
	return missing
}

func (p *AddComponent) resolveModel(ctx context.Context, req AddComponentRequest) (*models.ComponentModel, bool, error) {
	var subtypeID uuid.UUID
	if req.SubtypeID != nil {
		subtypeID = *req.SubtypeID
	}
	model, err := p.store.FindModelByName(ctx, req.ModelName, subtypeID)
	if err == nil {
		return model, false, nil
	}
	if errors.Is(err, adapters.Conflict) {
		p.logger.Warn("Model name is ambiguous", zap.Error(err), zap.String("model_name", req.ModelName))
		return nil, false, &Error{Failure: AmbiguousModel, Err: err}
	}
	if !errors.Is(err, adapters.NotFound) {
		p.logger.Error("Model lookup failed", zap.Error(err), zap.String("model_name", req.ModelName))
		return nil, false, &Error{Failure: ModelLookupFailed, Err: err}
	}

	if missing := missingModelFields(req); len(missing) > 0 {
		return nil, false, &Error{Failure: MissingModelFields, MissingFields: missing}
	}

	model, err = p.store.CreateModel(ctx, &models.ComponentModel{
		SubtypeID:              *req.SubtypeID,
		ModelName:              req.ModelName,
		Manufacturer:           req.Manufacturer,
		CurrentPrice:           *req.CurrentPrice,
		CurrentInstallPrice:    *req.CurrentInstallPrice,
		WarrantyMonths:         *req.WarrantyMonths,
		TechnicalSpecification: req.TechnicalSpecification,
		Dimensions:             req.Dimensions,
	})
	if err != nil {
		p.logger.Error("Model creation failed", zap.Error(err), zap.String("model_name", req.ModelName))
		return nil, false, &Error{Failure: ModelCreationFailed, Err: err}
	}
	p.logger.Info("Created component model",
		zap.String("model_id", model.ID.String()),
		zap.String("model_name", model.ModelName),
	)
	return model, true, nil
}

// newComponent fills purchase price and warranty from the model when the
// request leaves them out.
func newComponent(req AddComponentRequest, model *models.ComponentModel) *models.Component {
	price := model.CurrentPrice
	if req.PriceAtPurchase != nil {
		price = *req.PriceAtPurchase
	}
	return &models.Component{
		ModelID:                     model.ID,
		SerialNumber:                req.SerialNumber,
		Specifications:              req.Specifications,
		AdditionalInformation:       req.AdditionalInformation,
		WarrantyStartDate:           req.WarrantyStartDate,
		WarrantyMonths:              model.WarrantyMonths,
		PriceAtPurchase:             price,
		DepreciationPriceAtPurchase: req.DepreciationPriceAtPurchase,
		EconomicLifespan:            req.EconomicLifespan,
		Quantity:                    req.Quantity,
		Status:                      req.Status,
		Condition:                   req.Condition,
	}
}

func newInstallation(req AddComponentRequest, component *models.Component) *models.ComponentInstallation {
	installation := &models.ComponentInstallation{
		ComponentID: component.ID,
		SpaceID:     req.SpaceID,
		SpaceType:   req.SpaceType,
		OrderNumber: req.OrderNumber,
		Cost:        req.Cost,
	}
	if req.InstallationDate != nil {
		installation.InstallationDate = *req.InstallationDate
	}
	return installation
}

// compensate deletes the component left behind by a failed installation.
// It runs detached from ctx cancellation; a final failure is only logged.
func (p *AddComponent) compensate(ctx context.Context, componentID uuid.UUID) {
	ctx = context.WithoutCancel(ctx)
	attempt := 0
	op := func() error {
		attempt++
		err := p.store.DeleteComponent(ctx, componentID)
		switch {
		case err == nil, errors.Is(err, adapters.NotFound):
			return nil
		case errors.Is(err, adapters.BadRequest), errors.Is(err, adapters.Forbidden), errors.Is(err, adapters.Conflict):
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.WithMaxRetries(p.backoff(), compensationTries-1)
	if err := backoff.Retry(op, policy); err != nil {
		p.logger.Error("Failed to remove component after installation failure",
			zap.Error(err),
			zap.String("component_id", componentID.String()),
			zap.Int("attempts", attempt),
		)
		return
	}
	p.logger.Info("Removed component after installation failure",
		zap.String("component_id", componentID.String()),
		zap.Int("attempts", attempt),
	)
}
