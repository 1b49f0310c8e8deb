package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/gartstein/propertyhub/internal/propertybase/models"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

type fakeReader struct {
	mu        sync.Mutex
	messages  chan kafka.Message
	committed []kafka.Message
	closed    bool
}

func newFakeReader(msgs ...kafka.Message) *fakeReader {
	r := &fakeReader{messages: make(chan kafka.Message, len(msgs))}
	for _, m := range msgs {
		r.messages <- m
	}
	return r
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case m := <-r.messages:
		return m, nil
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	}
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

func (r *fakeReader) commits() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.committed)
}

func eventMessage(t *testing.T, event Event) kafka.Message {
	t.Helper()
	value, err := json.Marshal(event)
	require.NoError(t, err)
	return kafka.Message{Key: []byte(event.ID.String()), Value: value}
}

func TestConsumer_DispatchesEvents(t *testing.T) {
	id := uuid.New()
	reader := newFakeReader(
		eventMessage(t, NewEvent(models.EntityModel, Updated, id, nil)),
		kafka.Message{Value: []byte("not json")},
	)

	core, recorded := observer.New(zap.ErrorLevel)
	consumer := newConsumer(reader, zap.New(core))

	received := make(chan Event, 1)
	consumer.RegisterHandler(func(_ context.Context, e Event) error {
		received <- e
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	consumer.Start(ctx)

	got := <-received
	assert.Equal(t, EventType("component_model_updated"), got.Type)
	assert.Equal(t, models.EntityModel, got.Entity)
	assert.Equal(t, id, got.ID)

	require.Eventually(t, func() bool { return reader.commits() == 2 }, timeout, tick)
	cancel()
	consumer.Wait()
	consumer.Close()

	assert.Equal(t, 1, recorded.FilterMessage("Failed to parse event").Len())
	assert.True(t, reader.closed)
}

func TestConsumer_HandlerErrorSkipsCommit(t *testing.T) {
	reader := newFakeReader(eventMessage(t, NewEvent(models.EntityComponent, Deleted, uuid.New(), nil)))
	consumer := newConsumer(reader, zaptest.NewLogger(t))

	handled := make(chan struct{})
	consumer.RegisterHandler(func(context.Context, Event) error {
		close(handled)
		return errors.New("boom")
	})

	ctx, cancel := context.WithCancel(context.Background())
	consumer.Start(ctx)
	<-handled
	cancel()
	consumer.Wait()

	assert.Equal(t, 0, reader.commits())
}

type closedReader struct{ fakeReader }

func (*closedReader) FetchMessage(context.Context) (kafka.Message, error) {
	return kafka.Message{}, io.EOF
}

func TestConsumer_StopsWhenReaderClosed(t *testing.T) {
	consumer := newConsumer(&closedReader{}, zaptest.NewLogger(t))
	consumer.Start(context.Background())

	done := make(chan struct{})
	go func() {
		consumer.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatal("consumer kept fetching from a closed reader")
	}
}

const (
	timeout = 2 * time.Second
	tick    = 10 * time.Millisecond
)
