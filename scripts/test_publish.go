//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/safety-navigator/internal/domain"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	kind := flag.String("kind", "route", "location или route")
	fromLat := flag.Float64("from-lat", 37.7749, "start latitude")
	fromLng := flag.Float64("from-lng", -122.4194, "start longitude")
	toLat := flag.Float64("to-lat", 37.7955, "destination latitude")
	toLng := flag.Float64("to-lng", -122.3937, "destination longitude")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := domain.SafetyCheckEvent{
		JobID: uuid.New(),
		Kind:  domain.SafetyCheckKind(*kind),
		From:  &domain.Coordinate{Latitude: *fromLat, Longitude: *fromLng},
	}
	if event.Kind == domain.SafetyCheckRoute {
		event.To = &domain.Coordinate{Latitude: *toLat, Longitude: *toLng}
	}
	if err := event.Validate(); err != nil {
		log.Fatalf("Invalid event: %v", err)
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	// последний ID до публикации, чтобы читать только новые ответы
	lastID := "$"
	if entries, err := client.XRevRangeN(ctx, domain.StreamSafetyDone, "+", "-", 1).Result(); err == nil && len(entries) > 0 {
		lastID = entries[0].ID
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamSafetyCheck,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamSafetyCheck)
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Job ID: %s (%s)\n", event.JobID, event.Kind)

	fmt.Printf("\nWaiting for response in %s...\n", domain.StreamSafetyDone)

	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		streams, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{domain.StreamSafetyDone, lastID},
			Count:   10,
			Block:   time.Second,
		}).Result()
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				log.Printf("Read failed: %v", err)
				time.Sleep(time.Second)
			}
			continue
		}

		for _, stream := range streams {
			for _, msg := range stream.Messages {
				lastID = msg.ID

				raw, ok := msg.Values["data"].(string)
				if !ok {
					continue
				}
				var done domain.SafetyDoneEvent
				if err := json.Unmarshal([]byte(raw), &done); err != nil || done.JobID != event.JobID {
					continue
				}

				fmt.Printf("\nResponse received\n")
				pretty, _ := json.MarshalIndent(done, "", "  ")
				fmt.Printf("%s\n", pretty)
				return
			}
		}
	}

	fmt.Println("Timeout waiting for response")
}
