package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/places-microservice/internal/domain"
	redisRepo "github.com/places-microservice/internal/repository/redis"
)

// getTestRedisClient creates a Redis client for testing
func getTestRedisClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     "localhost:6379",
		Password: "",
		DB:       1, // Use DB 1 for tests
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// Test connection
	err := client.Ping(ctx).Err()
	if err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}

	// Clean up any existing test streams
	client.Del(ctx, "test:stream:places:acquire", "test:stream:places:results")

	return client
}

// TestStreamRepository_CreateConsumerGroup tests consumer group creation
func TestStreamRepository_CreateConsumerGroup(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	logger := zap.NewNop()
	repo := redisRepo.NewStreamRepository(client, logger)
	ctx := context.Background()

	streamName := "test:stream:places:acquire"
	groupName := "test-group"

	defer func() {
		client.Del(ctx, streamName)
	}()

	// Create consumer group
	err := repo.CreateConsumerGroup(ctx, streamName, groupName)
	require.NoError(t, err)

	// Verify group was created
	groups, err := client.XInfoGroups(ctx, streamName).Result()
	require.NoError(t, err)
	assert.Len(t, groups, 1)
	assert.Equal(t, groupName, groups[0].Name)

	// Creating again should not error (BUSYGROUP handled)
	err = repo.CreateConsumerGroup(ctx, streamName, groupName)
	assert.NoError(t, err)
}

// TestStreamRepository_PublishToStream tests job publishing
func TestStreamRepository_PublishToStream(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	logger := zap.NewNop()
	repo := redisRepo.NewStreamRepository(client, logger)
	ctx := context.Background()

	streamName := "test:stream:places:acquire"

	defer func() {
		client.Del(ctx, streamName)
	}()

	jobID := uuid.New().String()
	event := domain.AcquireJobEvent{
		JobID: jobID,
		Query: "bakery",
		Locations: []domain.AcquireLocation{
			{Text: "Aix-en-Provence"},
			{Lat: ptrFloat64(43.2965), Lng: ptrFloat64(5.3698)},
		},
		ContinueOnError: true,
	}

	err := repo.PublishToStream(ctx, streamName, event)
	require.NoError(t, err)

	// Verify message was published
	messages, err := client.XRead(ctx, &redis.XReadArgs{
		Streams: []string{streamName, "0"},
		Count:   1,
	}).Result()
	require.NoError(t, err)
	assert.Len(t, messages, 1)
	assert.Len(t, messages[0].Messages, 1)

	// Verify message content
	msg := messages[0].Messages[0]
	dataStr, ok := msg.Values["data"].(string)
	require.True(t, ok)

	var receivedEvent domain.AcquireJobEvent
	err = json.Unmarshal([]byte(dataStr), &receivedEvent)
	require.NoError(t, err)
	assert.Equal(t, jobID, receivedEvent.JobID)
	assert.Equal(t, "bakery", receivedEvent.Query)
	require.Len(t, receivedEvent.Locations, 2)
	assert.Equal(t, "Aix-en-Provence", receivedEvent.Locations[0].Text)
	assert.Equal(t, 43.2965, *receivedEvent.Locations[1].Lat)
	assert.True(t, receivedEvent.ContinueOnError)
}

// TestStreamRepository_ConsumeStream tests message consumption
func TestStreamRepository_ConsumeStream(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	logger := zap.NewNop()
	repo := redisRepo.NewStreamRepository(client, logger)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	streamName := "test:stream:places:acquire"
	groupName := "test-consumer-group"
	consumerName := "test-consumer"

	defer func() {
		client.Del(context.Background(), streamName)
	}()

	err := repo.CreateConsumerGroup(ctx, streamName, groupName)
	require.NoError(t, err)

	jobID := uuid.New().String()
	err = repo.PublishToStream(ctx, streamName, domain.AcquireJobEvent{
		JobID: jobID,
		Query: "coffee",
		Locations: []domain.AcquireLocation{
			{Text: "Marseille"},
		},
	})
	require.NoError(t, err)

	msgChan, err := repo.ConsumeStream(ctx, streamName, groupName, consumerName)
	require.NoError(t, err)

	select {
	case msg := <-msgChan:
		assert.NotEmpty(t, msg.ID)

		var receivedEvent domain.AcquireJobEvent
		err = json.Unmarshal([]byte(msg.Data), &receivedEvent)
		require.NoError(t, err)
		assert.Equal(t, jobID, receivedEvent.JobID)
		assert.Equal(t, "coffee", receivedEvent.Query)

	case <-time.After(3 * time.Second):
		t.Fatal("Timeout waiting for message")
	}
}

// TestStreamRepository_ConsumeBatch tests non-blocking batch consumption
func TestStreamRepository_ConsumeBatch(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	logger := zap.NewNop()
	repo := redisRepo.NewStreamRepository(client, logger)
	ctx := context.Background()

	streamName := "test:stream:places:acquire"
	groupName := "test-batch-group"
	consumerName := "test-consumer"

	defer func() {
		client.Del(ctx, streamName)
	}()

	err := repo.CreateConsumerGroup(ctx, streamName, groupName)
	require.NoError(t, err)

	// Empty stream yields no messages and no error
	messages, err := repo.ConsumeBatch(ctx, streamName, groupName, consumerName, 5)
	require.NoError(t, err)
	assert.Empty(t, messages)

	for i := 0; i < 3; i++ {
		err = repo.PublishToStream(ctx, streamName, domain.AcquireJobEvent{
			JobID: uuid.New().String(),
			Query: "coffee",
			Locations: []domain.AcquireLocation{
				{Text: "Marseille"},
			},
		})
		require.NoError(t, err)
	}

	messages, err = repo.ConsumeBatch(ctx, streamName, groupName, consumerName, 5)
	require.NoError(t, err)
	assert.Len(t, messages, 3)
}

// TestStreamRepository_AckMessage tests message acknowledgment
func TestStreamRepository_AckMessage(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	logger := zap.NewNop()
	repo := redisRepo.NewStreamRepository(client, logger)
	ctx := context.Background()

	streamName := "test:stream:places:acquire"
	groupName := "test-ack-group"
	consumerName := "test-consumer"

	defer func() {
		client.Del(ctx, streamName)
	}()

	err := repo.CreateConsumerGroup(ctx, streamName, groupName)
	require.NoError(t, err)

	err = repo.PublishToStream(ctx, streamName, domain.AcquireJobEvent{
		JobID: uuid.New().String(),
		Query: "coffee",
		Locations: []domain.AcquireLocation{
			{Text: "Marseille"},
		},
	})
	require.NoError(t, err)

	// Read message
	messages, err := client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    groupName,
		Consumer: consumerName,
		Streams:  []string{streamName, ">"},
		Count:    1,
	}).Result()
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.Len(t, messages[0].Messages, 1)

	messageID := messages[0].Messages[0].ID

	// Check pending messages before ACK
	pending, err := client.XPending(ctx, streamName, groupName).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), pending.Count)

	// Acknowledge message
	err = repo.AckMessage(ctx, streamName, groupName, messageID)
	require.NoError(t, err)

	// Check pending messages after ACK
	pending, err = client.XPending(ctx, streamName, groupName).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), pending.Count)
}

// TestStreamResultWriter tests that location results land in the results stream
func TestStreamResultWriter(t *testing.T) {
	client := getTestRedisClient(t)
	defer client.Close()

	logger := zap.NewNop()
	repo := redisRepo.NewStreamRepository(client, logger)
	ctx := context.Background()

	streamName := "test:stream:places:results"

	defer func() {
		client.Del(ctx, streamName)
	}()

	writer := redisRepo.NewStreamResultWriter(repo, streamName, logger)

	jobID := uuid.New().String()
	records := []domain.PlaceRecord{
		{"name": "Boulangerie du Cours", "place_id": "place-1"},
		{"name": "Patisserie Bechard", "place_id": "place-2"},
	}

	err := writer.Write(ctx, jobID, "0000:Aix-en-Provence", records)
	require.NoError(t, err)

	messages, err := client.XRead(ctx, &redis.XReadArgs{
		Streams: []string{streamName, "0"},
		Count:   1,
	}).Result()
	require.NoError(t, err)
	require.Len(t, messages, 1)
	require.Len(t, messages[0].Messages, 1)

	dataStr, ok := messages[0].Messages[0].Values["data"].(string)
	require.True(t, ok)

	var event domain.AcquireResultEvent
	err = json.Unmarshal([]byte(dataStr), &event)
	require.NoError(t, err)
	assert.Equal(t, jobID, event.JobID)
	assert.Equal(t, "0000:Aix-en-Provence", event.LocationKey)
	assert.Equal(t, 2, event.Total)
	require.Len(t, event.Records, 2)
	assert.Equal(t, "Boulangerie du Cours", event.Records[0]["name"])
}

func ptrFloat64(f float64) *float64 {
	return &f
}
