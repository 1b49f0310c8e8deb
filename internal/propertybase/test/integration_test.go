package test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gartstein/propertyhub/internal/propertybase/controller"
	"github.com/gartstein/propertyhub/internal/propertybase/db"
	e "github.com/gartstein/propertyhub/internal/propertybase/errors"
	"github.com/gartstein/propertyhub/internal/propertybase/events"
	"github.com/gartstein/propertyhub/internal/propertybase/models"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

const topic = "propertybase.components.test"

var kafkaBrokers = []string{"localhost:9092"}

type IntegrationTestSuite struct {
	suite.Suite
	dbRepo      *db.Repository
	kafkaReader *kafka.Reader
	producer    *events.Producer
	service     *controller.ComponentService
	logger      *zap.Logger
	testTimeout time.Duration
}

// TestIntegrationSuite needs PostgreSQL and Kafka on localhost, e.g. from
// docker compose. Set PROPERTYBASE_INTEGRATION=1 to run it.
func TestIntegrationSuite(t *testing.T) {
	if testing.Short() || os.Getenv("PROPERTYBASE_INTEGRATION") == "" {
		t.Skip("Skipping integration tests")
	}
	suite.Run(t, new(IntegrationTestSuite))
}

func (s *IntegrationTestSuite) SetupSuite() {
	s.logger = zap.NewNop()
	s.testTimeout = 20 * time.Second

	var err error
	s.dbRepo, err = initializeDBWithRetry()
	if err != nil {
		s.T().Fatal("Database initialization failed:", err)
	}

	s.producer, s.kafkaReader, err = initializeKafkaWithRetry()
	if err != nil {
		s.T().Fatal("Kafka initialization failed:", err)
	}
	s.service = controller.NewComponentService(s.dbRepo, s.producer, s.logger)
}

func initializeDBWithRetry() (*db.Repository, error) {
	cfg := &db.Config{
		Host:     "localhost",
		Port:     5432,
		User:     "test",
		Password: "test",
		DBName:   "test",
		SSLMode:  "disable",
	}

	var repo *db.Repository
	err := backoff.Retry(func() error {
		var err error
		repo, err = db.NewRepository(cfg)
		return err
	}, backoff.NewExponentialBackOff())

	return repo, err
}

func initializeKafkaWithRetry() (*events.Producer, *kafka.Reader, error) {
	producer, err := events.NewProducer(kafkaBrokers, topic, zap.NewNop())
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer initialization failed: %w", err)
	}

	// Wait for the topic metadata rather than blocking on a read.
	err = backoff.Retry(func() error {
		conn, err := kafka.Dial("tcp", kafkaBrokers[0])
		if err != nil {
			return err
		}
		defer conn.Close()

		partitions, err := conn.ReadPartitions(topic)
		if err != nil || len(partitions) == 0 {
			return fmt.Errorf("topic %s not found", topic)
		}
		return nil
	}, backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5))
	if err != nil {
		return nil, nil, fmt.Errorf("kafka topic check failed: %w", err)
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     kafkaBrokers,
		Topic:       topic,
		GroupID:     "propertybase-it-" + uuid.NewString(),
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})
	return producer, reader, nil
}

func (s *IntegrationTestSuite) TearDownSuite() {
	if s.producer != nil {
		s.producer.Close()
	}
	if s.kafkaReader != nil {
		_ = s.kafkaReader.Close()
	}
	if s.dbRepo != nil {
		_ = s.dbRepo.Close()
	}
}

func (s *IntegrationTestSuite) SetupTest() {
	ctx, cancel := context.WithTimeout(context.Background(), s.testTimeout)
	defer cancel()

	err := s.dbRepo.Exec(ctx, `TRUNCATE TABLE component_installations, components, component_models,
		component_subtypes, component_types, component_categories CASCADE`)
	if err != nil {
		s.T().Fatal("Failed to clean database:", err)
	}
}

func (s *IntegrationTestSuite) seedModel(ctx context.Context) *models.ComponentModel {
	category, err := s.service.CreateCategory(ctx, &models.ComponentCategory{CategoryName: "Ventilation"})
	s.Require().NoError(err)
	typ, err := s.service.CreateType(ctx, &models.ComponentType{CategoryID: category.ID, TypeName: "Aggregat"})
	s.Require().NoError(err)
	subtype, err := s.service.CreateSubtype(ctx, &models.ComponentSubtype{TypeID: typ.ID, SubTypeName: "FTX"})
	s.Require().NoError(err)
	model, err := s.service.CreateModel(ctx, &models.ComponentModel{
		SubtypeID:    subtype.ID,
		ModelName:    "Compact P",
		Manufacturer: "Swegon",
	})
	s.Require().NoError(err)
	return model
}

func (s *IntegrationTestSuite) TestComponentCreatePublishesEvent() {
	ctx, cancel := context.WithTimeout(context.Background(), s.testTimeout)
	defer cancel()

	model := s.seedModel(ctx)
	component, err := s.service.CreateComponent(ctx, &models.Component{ModelID: model.ID, SerialNumber: "IT-1"})
	s.Require().NoError(err)

	s.verifyKafkaEvent(ctx, events.TypeOf(models.EntityComponent, events.Created), component.ID)
}

func (s *IntegrationTestSuite) TestDeleteGuardAgainstPostgres() {
	ctx, cancel := context.WithTimeout(context.Background(), s.testTimeout)
	defer cancel()

	model := s.seedModel(ctx)
	_, err := s.service.CreateComponent(ctx, &models.Component{ModelID: model.ID})
	s.Require().NoError(err)

	err = s.service.DeleteModel(ctx, model.ID)
	assert.ErrorIs(s.T(), err, e.ErrHasChildren)

	_, err = s.service.CreateModel(ctx, &models.ComponentModel{
		SubtypeID:    model.SubtypeID,
		ModelName:    "Compact P",
		Manufacturer: "Swegon",
	})
	assert.ErrorIs(s.T(), err, e.ErrDuplicateName)
}

// verifyKafkaEvent reads until an event of the wanted type for id arrives.
func (s *IntegrationTestSuite) verifyKafkaEvent(ctx context.Context, want events.EventType, id uuid.UUID) {
	for {
		msg, err := s.kafkaReader.ReadMessage(ctx)
		if err != nil {
			s.T().Fatalf("no %s event for %s: %v", want, id, err)
		}
		var event events.Event
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			continue
		}
		if event.Type == want && event.ID == id {
			assert.Equal(s.T(), id.String(), string(msg.Key))
			return
		}
	}
}
