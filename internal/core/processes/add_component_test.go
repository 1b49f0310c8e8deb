package processes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gartstein/propertyhub/internal/core/adapters"
	"github.com/gartstein/propertyhub/internal/core/adapters/propertybase"
	"github.com/gartstein/propertyhub/internal/pkg/auth"
	"github.com/gartstein/propertyhub/internal/pkg/config"
	"github.com/gartstein/propertyhub/internal/pkg/metrics"
	"github.com/gartstein/propertyhub/internal/pkg/utils"
	"github.com/gartstein/propertyhub/internal/propertybase/models"
	pbtest "github.com/gartstein/propertyhub/internal/propertybase/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) FindModelByName(ctx context.Context, name string, subtypeID uuid.UUID) (*models.ComponentModel, error) {
	args := m.Called(ctx, name, subtypeID)
	model, _ := args.Get(0).(*models.ComponentModel)
	return model, args.Error(1)
}

func (m *MockStore) CreateModel(ctx context.Context, model *models.ComponentModel) (*models.ComponentModel, error) {
	args := m.Called(ctx, model)
	created, _ := args.Get(0).(*models.ComponentModel)
	return created, args.Error(1)
}

func (m *MockStore) CreateComponent(ctx context.Context, c *models.Component) (*models.Component, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(*models.Component)
	return created, args.Error(1)
}

func (m *MockStore) DeleteComponent(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStore) CreateInstallation(ctx context.Context, i *models.ComponentInstallation) (*models.ComponentInstallation, error) {
	args := m.Called(ctx, i)
	created, _ := args.Get(0).(*models.ComponentInstallation)
	return created, args.Error(1)
}

func newProcess(store ComponentStore, logger *zap.Logger) *AddComponent {
	p := NewAddComponent(store, nil, logger)
	p.backoff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return p
}

func upstreamErr(kind adapters.ErrorKind) error {
	return &adapters.Error{Kind: kind, Upstream: "propertybase", Message: string(kind)}
}

func fullRequest() AddComponentRequest {
	return AddComponentRequest{
		ModelName:           "KG36",
		SubtypeID:           utils.Ptr(uuid.New()),
		Manufacturer:        "Bosch",
		CurrentPrice:        utils.Ptr(8990.0),
		CurrentInstallPrice: utils.Ptr(500.0),
		WarrantyMonths:      utils.Ptr(24),
		SerialNumber:        "SN-1",
		SpaceID:             uuid.New(),
		SpaceType:           models.SpaceResidence,
	}
}

func TestAddComponent_ReusesExistingModel(t *testing.T) {
	store := new(MockStore)
	ctx := context.Background()
	model := &models.ComponentModel{ID: uuid.New(), ModelName: "KG36", CurrentPrice: 1000, WarrantyMonths: 12}
	component := &models.Component{ID: uuid.New(), ModelID: model.ID}
	installation := &models.ComponentInstallation{ID: uuid.New(), ComponentID: component.ID}

	req := AddComponentRequest{ModelName: "KG36", SpaceID: uuid.New()}
	store.On("FindModelByName", ctx, "KG36", uuid.Nil).Return(model, nil)
	store.On("CreateComponent", ctx, mock.MatchedBy(func(c *models.Component) bool {
		return c.ModelID == model.ID && c.PriceAtPurchase == 1000 && c.WarrantyMonths == 12
	})).Return(component, nil)
	store.On("CreateInstallation", ctx, mock.MatchedBy(func(i *models.ComponentInstallation) bool {
		return i.ComponentID == component.ID && i.SpaceID == req.SpaceID
	})).Return(installation, nil)

	result, err := newProcess(store, zaptest.NewLogger(t)).Run(ctx, req)
	require.NoError(t, err)
	assert.False(t, result.ModelCreated)
	assert.Equal(t, model, result.Model)
	assert.Equal(t, component, result.Component)
	assert.Equal(t, installation, result.Installation)
	store.AssertNotCalled(t, "CreateModel", mock.Anything, mock.Anything)
	store.AssertExpectations(t)
}

func TestAddComponent_MissingModelFields(t *testing.T) {
	store := new(MockStore)
	ctx := context.Background()
	store.On("FindModelByName", ctx, "KG36", mock.Anything).Return(nil, upstreamErr(adapters.NotFound))

	req := AddComponentRequest{ModelName: "KG36", SpaceID: uuid.New(), Manufacturer: "Bosch"}
	_, err := newProcess(store, zaptest.NewLogger(t)).Run(ctx, req)
	require.ErrorIs(t, err, MissingModelFields)

	var failed *Error
	require.True(t, errors.As(err, &failed))
	assert.Equal(t, []string{"subtypeId", "currentPrice", "currentInstallPrice", "warrantyMonths"}, failed.MissingFields)
	store.AssertNotCalled(t, "CreateModel", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "CreateComponent", mock.Anything, mock.Anything)
}

func TestAddComponent_InvalidRequest(t *testing.T) {
	store := new(MockStore)
	_, err := newProcess(store, zaptest.NewLogger(t)).Run(context.Background(), AddComponentRequest{ModelName: "  "})
	require.ErrorIs(t, err, InvalidRequest)

	var failed *Error
	require.True(t, errors.As(err, &failed))
	assert.Equal(t, []string{"modelName", "spaceId"}, failed.MissingFields)
	store.AssertNotCalled(t, "FindModelByName", mock.Anything, mock.Anything, mock.Anything)
}

func TestAddComponent_StepFailures(t *testing.T) {
	ctx := context.Background()
	component := &models.Component{ID: uuid.New()}

	tests := []struct {
		name    string
		setup   func(store *MockStore)
		failure Failure
		kind    adapters.ErrorKind
	}{
		{
			name: "lookup",
			setup: func(store *MockStore) {
				store.On("FindModelByName", ctx, "KG36", mock.Anything).Return(nil, upstreamErr(adapters.Unknown))
			},
			failure: ModelLookupFailed,
			kind:    adapters.Unknown,
		},
		{
			name: "ambiguous model",
			setup: func(store *MockStore) {
				store.On("FindModelByName", ctx, "KG36", mock.Anything).Return(nil, upstreamErr(adapters.Conflict))
			},
			failure: AmbiguousModel,
			kind:    adapters.Conflict,
		},
		{
			name: "model creation",
			setup: func(store *MockStore) {
				store.On("FindModelByName", ctx, "KG36", mock.Anything).Return(nil, upstreamErr(adapters.NotFound))
				store.On("CreateModel", ctx, mock.Anything).Return(nil, upstreamErr(adapters.BadRequest))
			},
			failure: ModelCreationFailed,
			kind:    adapters.BadRequest,
		},
		{
			name: "component creation",
			setup: func(store *MockStore) {
				store.On("FindModelByName", ctx, "KG36", mock.Anything).Return(nil, upstreamErr(adapters.NotFound))
				store.On("CreateModel", ctx, mock.Anything).Return(&models.ComponentModel{ID: uuid.New()}, nil)
				store.On("CreateComponent", ctx, mock.Anything).Return(nil, upstreamErr(adapters.Unknown))
			},
			failure: ComponentCreationFailed,
			kind:    adapters.Unknown,
		},
		{
			name: "installation creation",
			setup: func(store *MockStore) {
				store.On("FindModelByName", ctx, "KG36", mock.Anything).Return(&models.ComponentModel{ID: uuid.New()}, nil)
				store.On("CreateComponent", ctx, mock.Anything).Return(component, nil)
				store.On("CreateInstallation", ctx, mock.Anything).Return(nil, upstreamErr(adapters.Conflict))
				store.On("DeleteComponent", mock.Anything, component.ID).Return(nil).Once()
			},
			failure: InstallationCreationFailed,
			kind:    adapters.Conflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(MockStore)
			tt.setup(store)

			result, err := newProcess(store, zaptest.NewLogger(t)).Run(ctx, fullRequest())
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.failure)
			assert.Equal(t, tt.kind, adapters.KindOf(err))
			store.AssertExpectations(t)
		})
	}
}

func TestAddComponent_ComponentFailureLeavesModel(t *testing.T) {
	store := new(MockStore)
	ctx := context.Background()
	store.On("FindModelByName", ctx, "KG36", mock.Anything).Return(nil, upstreamErr(adapters.NotFound))
	store.On("CreateModel", ctx, mock.Anything).Return(&models.ComponentModel{ID: uuid.New()}, nil)
	store.On("CreateComponent", ctx, mock.Anything).Return(nil, upstreamErr(adapters.Unknown))

	_, err := newProcess(store, zaptest.NewLogger(t)).Run(ctx, fullRequest())
	require.ErrorIs(t, err, ComponentCreationFailed)
	store.AssertNotCalled(t, "DeleteComponent", mock.Anything, mock.Anything)
}

func TestAddComponent_CompensationRetries(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	store := new(MockStore)
	ctx := context.Background()
	component := &models.Component{ID: uuid.New()}

	store.On("FindModelByName", ctx, "KG36", mock.Anything).Return(&models.ComponentModel{ID: uuid.New()}, nil)
	store.On("CreateComponent", ctx, mock.Anything).Return(component, nil)
	store.On("CreateInstallation", ctx, mock.Anything).Return(nil, upstreamErr(adapters.BadRequest))
	store.On("DeleteComponent", mock.Anything, component.ID).Return(upstreamErr(adapters.Unknown)).Times(compensationTries)

	_, err := newProcess(store, zap.New(core)).Run(ctx, fullRequest())
	require.ErrorIs(t, err, InstallationCreationFailed)
	assert.Equal(t, adapters.BadRequest, adapters.KindOf(err), "compensation failure must not change the reported error")
	store.AssertNumberOfCalls(t, "DeleteComponent", compensationTries)

	entries := logs.FilterMessage("Failed to remove component after installation failure").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(compensationTries), entries[0].ContextMap()["attempts"])
}

func TestAddComponent_CompensationIgnoresMissingComponent(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	store := new(MockStore)
	ctx, cancel := context.WithCancel(context.Background())
	component := &models.Component{ID: uuid.New()}

	store.On("FindModelByName", mock.Anything, "KG36", mock.Anything).Return(&models.ComponentModel{ID: uuid.New()}, nil)
	store.On("CreateComponent", mock.Anything, mock.Anything).Return(component, nil)
	store.On("CreateInstallation", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(nil, upstreamErr(adapters.Unknown))
	store.On("DeleteComponent", mock.MatchedBy(func(ctx context.Context) bool {
		return ctx.Err() == nil
	}), component.ID).Return(upstreamErr(adapters.NotFound)).Once()

	_, err := newProcess(store, zap.New(core)).Run(ctx, fullRequest())
	require.ErrorIs(t, err, InstallationCreationFailed)
	store.AssertExpectations(t)
	assert.Equal(t, 1, logs.FilterMessage("Removed component after installation failure").Len())
}

func TestAddComponent_RecordsOutcome(t *testing.T) {
	store := new(MockStore)
	m := metrics.New("test")
	store.On("FindModelByName", mock.Anything, "KG36", mock.Anything).Return(nil, upstreamErr(adapters.NotFound))

	p := NewAddComponent(store, m, zaptest.NewLogger(t))
	_, err := p.Run(context.Background(), AddComponentRequest{ModelName: "KG36", SpaceID: uuid.New()})
	require.ErrorIs(t, err, MissingModelFields)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `test_process_runs_total{outcome="MissingModelFields",process="add_component"} 1`)
}

const secret = "process-secret"

func newAdapter(t *testing.T, baseURL string) *propertybase.Adapter {
	t.Helper()
	client := adapters.NewClient("propertybase",
		config.UpstreamConfig{BaseURL: baseURL, Timeout: 2 * time.Second},
		auth.NewServiceToken("core", secret), nil, zaptest.NewLogger(t))
	return propertybase.New(client, nil)
}

func seedSubtype(t *testing.T, a *propertybase.Adapter) *models.ComponentSubtype {
	t.Helper()
	ctx := context.Background()
	category, err := a.CreateCategory(ctx, &models.ComponentCategory{CategoryName: "Vitvaror"})
	require.NoError(t, err)
	typ, err := a.CreateType(ctx, &models.ComponentType{CategoryID: category.ID, TypeName: "Kyl"})
	require.NoError(t, err)
	subtype, err := a.CreateSubtype(ctx, &models.ComponentSubtype{TypeID: typ.ID, SubTypeName: "Kylskåp"})
	require.NoError(t, err)
	return subtype
}

func TestAddComponent_AgainstPropertyBase(t *testing.T) {
	pb := pbtest.NewPropertyBase(t, secret)
	a := newAdapter(t, pb.URL)
	ctx := context.Background()
	subtype := seedSubtype(t, a)
	p := newProcess(a, zaptest.NewLogger(t))

	req := fullRequest()
	req.SubtypeID = &subtype.ID

	first, err := p.Run(ctx, req)
	require.NoError(t, err)
	assert.True(t, first.ModelCreated)
	assert.Equal(t, "KG36", first.Model.ModelName)
	assert.Equal(t, first.Model.ID, first.Component.ModelID)
	assert.Equal(t, 8990.0, first.Component.PriceAtPurchase)
	assert.Equal(t, first.Component.ID, first.Installation.ComponentID)
	assert.True(t, first.Installation.Active())

	second, err := p.Run(ctx, AddComponentRequest{ModelName: "KG36", SpaceID: uuid.New()})
	require.NoError(t, err)
	assert.False(t, second.ModelCreated)
	assert.Equal(t, first.Model.ID, second.Model.ID)
	assert.NotEqual(t, first.Component.ID, second.Component.ID)
}

func TestAddComponent_CompensatesAgainstPropertyBase(t *testing.T) {
	pb := pbtest.NewPropertyBase(t, secret)
	a := newAdapter(t, pb.URL)
	ctx := context.Background()
	subtype := seedSubtype(t, a)

	req := fullRequest()
	req.SubtypeID = &subtype.ID
	req.SpaceType = "GARAGE"

	_, err := newProcess(a, zaptest.NewLogger(t)).Run(ctx, req)
	require.ErrorIs(t, err, InstallationCreationFailed)
	assert.ErrorIs(t, err, adapters.BadRequest)

	model, err := a.FindModelByName(ctx, "KG36", subtype.ID)
	require.NoError(t, err, "the model is kept")

	page, err := a.ListComponents(ctx, models.ComponentFilter{ModelID: model.ID}, models.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, page.Content, "the component is removed")
}

func TestAddComponent_ModelNameSharedBySubtypes(t *testing.T) {
	pb := pbtest.NewPropertyBase(t, secret)
	a := newAdapter(t, pb.URL)
	ctx := context.Background()
	fridge := seedSubtype(t, a)
	freezer, err := a.CreateSubtype(ctx, &models.ComponentSubtype{TypeID: fridge.TypeID, SubTypeName: "Frysskåp"})
	require.NoError(t, err)

	created := make(map[uuid.UUID]*models.ComponentModel)
	for _, subtype := range []uuid.UUID{fridge.ID, freezer.ID} {
		m, err := a.CreateModel(ctx, &models.ComponentModel{SubtypeID: subtype, ModelName: "KG36", Manufacturer: "Bosch", CurrentPrice: 100})
		require.NoError(t, err)
		created[subtype] = m
	}
	p := newProcess(a, zaptest.NewLogger(t))

	t.Run("scoped by subtype", func(t *testing.T) {
		req := AddComponentRequest{ModelName: "KG36", SubtypeID: &freezer.ID, SpaceID: uuid.New()}
		result, err := p.Run(ctx, req)
		require.NoError(t, err)
		assert.False(t, result.ModelCreated)
		assert.Equal(t, created[freezer.ID].ID, result.Model.ID)
	})

	t.Run("without subtype", func(t *testing.T) {
		_, err := p.Run(ctx, AddComponentRequest{ModelName: "KG36", SpaceID: uuid.New()})
		require.ErrorIs(t, err, AmbiguousModel)
		assert.ErrorIs(t, err, adapters.Conflict)
	})
}
