// +build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type AcquireLocation struct {
	Text string   `json:"text,omitempty"`
	Lat  *float64 `json:"lat,omitempty"`
	Lng  *float64 `json:"lng,omitempty"`
}

type AcquireJobEvent struct {
	JobID           string            `json:"job_id"`
	Query           string            `json:"query"`
	Locations       []AcquireLocation `json:"locations"`
	RadiusMeters    float64           `json:"radius_meters,omitempty"`
	ContinueOnError bool              `json:"continue_on_error"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	query := flag.String("query", "coffee shop", "Places search query")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Тестовое задание (два французских города)
	event := AcquireJobEvent{
		JobID: uuid.New().String(),
		Query: *query,
		Locations: []AcquireLocation{
			{Text: "Aix-en-Provence, France"},
			{Text: "Marseille, France"},
		},
		ContinueOnError: true,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// Публикация в стрим
	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: "stream:places:acquire",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("✅ Job published successfully!\n")
	fmt.Printf("   Stream: stream:places:acquire\n")
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Job ID: %s\n", event.JobID)
	fmt.Printf("   Query: %s\n", event.Query)
	fmt.Printf("   Locations: %d\n", len(event.Locations))

	// Ожидание результатов
	fmt.Printf("\n⏳ Waiting for results in stream:places:results...\n")

	timeout := time.After(120 * time.Second)
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	received := 0

	for {
		select {
		case <-timeout:
			fmt.Println("❌ Timeout waiting for results")
			return
		case <-ticker.C:
			results, err := client.XRead(ctx, &redis.XReadArgs{
				Streams: []string{"stream:places:results", "0"},
				Count:   10,
				Block:   0,
			}).Result()

			if err != nil && err != redis.Nil {
				continue
			}

			for _, stream := range results {
				for _, msg := range stream.Messages {
					dataStr, ok := msg.Values["data"].(string)
					if !ok {
						continue
					}

					var response map[string]interface{}
					if err := json.Unmarshal([]byte(dataStr), &response); err != nil {
						continue
					}

					if jobID, ok := response["job_id"].(string); ok && jobID == event.JobID {
						received++
						fmt.Printf("\n✅ Result %d/%d received!\n", received, len(event.Locations))
						fmt.Printf("   Location: %v\n", response["location_key"])
						fmt.Printf("   Total records: %v\n", response["total"])
						if received == len(event.Locations) {
							return
						}
					}
				}
			}
		}
	}
}
