package acquisition_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/places-microservice/internal/domain"
	"github.com/places-microservice/internal/domain/repository"
	"github.com/places-microservice/internal/repository/memory"
	"github.com/places-microservice/internal/usecase"
	"github.com/places-microservice/internal/worker/acquisition"
)

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, maxCount int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, maxCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs []string) error {
	args := m.Called(ctx, stream, group, messageIDs)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// MockPlacesClient is a mock of PlacesClient
type MockPlacesClient struct {
	mock.Mock
}

func (m *MockPlacesClient) Geocode(ctx context.Context, address string) ([]domain.Coordinates, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Coordinates), args.Error(1)
}

func (m *MockPlacesClient) SearchPlaces(ctx context.Context, params domain.PlaceSearchParams) (*domain.ResultPage, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResultPage), args.Error(1)
}

// MockClientResolver is a mock of ClientResolver
type MockClientResolver struct {
	mock.Mock
}

func (m *MockClientResolver) Resolve(spec repository.ClientSpec) (repository.PlacesClient, error) {
	args := m.Called(spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.PlacesClient), args.Error(1)
}

func newTestAcquireUC(client *MockPlacesClient, writer repository.ResultWriter) *usecase.AcquireUseCase {
	resolver := &MockClientResolver{}
	resolver.On("Resolve", mock.Anything).Return(client, nil)
	searchUC := usecase.NewSearchUseCase(resolver, zap.NewNop(), 3, time.Millisecond, 3, 50000)
	return usecase.NewAcquireUseCase(searchUC, writer, zap.NewNop())
}

// TestWorker_Name tests the worker name
func TestWorker_Name(t *testing.T) {
	mockStream := &MockStreamRepository{}
	writer := memory.NewResultWriter()
	w := acquisition.NewWorker(mockStream, newTestAcquireUC(&MockPlacesClient{}, writer), "test-group", 3, zap.NewNop())

	assert.Equal(t, "places-acquisition", w.Name())
}

// TestWorker_Stop tests graceful stop
func TestWorker_Stop(t *testing.T) {
	mockStream := &MockStreamRepository{}
	writer := memory.NewResultWriter()
	w := acquisition.NewWorker(mockStream, newTestAcquireUC(&MockPlacesClient{}, writer), "test-group", 3, zap.NewNop())

	// Stop should not error even if not started
	err := w.Stop()
	assert.NoError(t, err)

	// Calling stop multiple times should be safe
	err = w.Stop()
	assert.NoError(t, err)
}

// TestWorker_ContextCancellation tests worker stops on context cancellation
func TestWorker_ContextCancellation(t *testing.T) {
	mockStream := &MockStreamRepository{}
	writer := memory.NewResultWriter()
	w := acquisition.NewWorker(mockStream, newTestAcquireUC(&MockPlacesClient{}, writer), "test-group", 3, zap.NewNop())

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamPlacesAcquire, "test-group").
		Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamPlacesAcquire, "test-group", mock.AnythingOfType("string"), 5).
		Return([]domain.StreamMessage{}, nil)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.Equal(t, context.Canceled, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Worker did not stop on context cancellation")
	}

	mockStream.AssertExpectations(t)
}

// TestWorker_ProcessesJobAndAcks tests a full job lifecycle
func TestWorker_ProcessesJobAndAcks(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockClient := &MockPlacesClient{}
	writer := memory.NewResultWriter()
	w := acquisition.NewWorker(mockStream, newTestAcquireUC(mockClient, writer), "test-group", 3, zap.NewNop())

	job := domain.AcquireJobEvent{
		JobID: "job-1",
		Query: "bakery",
		Locations: []domain.AcquireLocation{
			{Text: "Aix-en-Provence"},
		},
	}
	jobJSON, _ := json.Marshal(job)

	messages := []domain.StreamMessage{
		{ID: "1234567890-0", Data: string(jobJSON)},
	}

	mockClient.On("Geocode", mock.Anything, "Aix-en-Provence").
		Return([]domain.Coordinates{{Lat: 43.5297, Lng: 5.4474}}, nil)
	mockClient.On("SearchPlaces", mock.Anything, mock.Anything).
		Return(&domain.ResultPage{Records: []domain.PlaceRecord{{"name": "Boulangerie"}}}, nil)

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamPlacesAcquire, "test-group").
		Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamPlacesAcquire, "test-group", mock.AnythingOfType("string"), 5).
		Return(messages, nil).Once()
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamPlacesAcquire, "test-group", mock.AnythingOfType("string"), 5).
		Return([]domain.StreamMessage{}, nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamPlacesAcquire, "test-group", "1234567890-0").
		Return(nil)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Worker did not stop in time")
	}

	mockStream.AssertExpectations(t)

	records, ok := writer.Get("job-1", "0000:Aix-en-Provence")
	assert.True(t, ok)
	assert.Len(t, records, 1)
}

// TestWorker_MalformedMessageAcked tests that unparseable messages do not stick
func TestWorker_MalformedMessageAcked(t *testing.T) {
	mockStream := &MockStreamRepository{}
	writer := memory.NewResultWriter()
	w := acquisition.NewWorker(mockStream, newTestAcquireUC(&MockPlacesClient{}, writer), "test-group", 3, zap.NewNop())

	messages := []domain.StreamMessage{
		{ID: "1234567890-0", Data: "{not json"},
		{ID: "1234567890-1", Data: `{"query":"no job id"}`},
	}

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamPlacesAcquire, "test-group").
		Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamPlacesAcquire, "test-group", mock.AnythingOfType("string"), 5).
		Return(messages, nil).Once()
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamPlacesAcquire, "test-group", mock.AnythingOfType("string"), 5).
		Return([]domain.StreamMessage{}, nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamPlacesAcquire, "test-group", "1234567890-0").
		Return(nil)
	mockStream.On("AckMessage", mock.Anything, domain.StreamPlacesAcquire, "test-group", "1234567890-1").
		Return(nil)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Worker did not stop in time")
	}

	mockStream.AssertExpectations(t)
	assert.Equal(t, 0, writer.Len())
}

// TestWorker_FailedJobNotAcked tests that failed jobs stay pending for redelivery
func TestWorker_FailedJobNotAcked(t *testing.T) {
	mockStream := &MockStreamRepository{}
	mockClient := &MockPlacesClient{}
	writer := memory.NewResultWriter()
	w := acquisition.NewWorker(mockStream, newTestAcquireUC(mockClient, writer), "test-group", 3, zap.NewNop())

	job := domain.AcquireJobEvent{
		JobID: "job-2",
		Query: "bakery",
		Locations: []domain.AcquireLocation{
			{Text: "Nowhereville"},
		},
	}
	jobJSON, _ := json.Marshal(job)

	messages := []domain.StreamMessage{
		{ID: "1234567890-0", Data: string(jobJSON)},
	}

	// Geocoding finds nothing, the whole job fails
	mockClient.On("Geocode", mock.Anything, "Nowhereville").
		Return([]domain.Coordinates{}, nil)

	mockStream.On("CreateConsumerGroup", mock.Anything, domain.StreamPlacesAcquire, "test-group").
		Return(nil)
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamPlacesAcquire, "test-group", mock.AnythingOfType("string"), 5).
		Return(messages, nil).Once()
	mockStream.On("ConsumeBatch", mock.Anything, domain.StreamPlacesAcquire, "test-group", mock.AnythingOfType("string"), 5).
		Return([]domain.StreamMessage{}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- w.Start(ctx)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Worker did not stop in time")
	}

	// No AckMessage expectation was set: the mock would fail the test if called
	mockStream.AssertExpectations(t)
	mockStream.AssertNotCalled(t, "AckMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
