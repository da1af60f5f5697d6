package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"reservio/config"
	bookingRepo "reservio/database/repository/booking"
	"reservio/models"
	"reservio/services/booking"
	"reservio/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitCompletionWorker runs the async worker in background. It is the
// external trigger that moves confirmed bookings to completed after their
// usage window has passed; the lifecycle itself stays untimed.
func InitCompletionWorker(repo bookingRepo.BookingRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingComplete, handleCompletionTask(repo))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[CompletionWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[CompletionWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[CompletionWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleCompletionTask(repo bookingRepo.BookingRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.CompletionPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[CompletionHandler] Invalid payload: %v", err)
			return err
		}

		b, err := repo.GetByID(ctx, p.BookingID)
		if err != nil {
			return err
		}
		if b == nil || b.Status != models.BookingConfirmed {
			// Cancelled or already closed in the meantime; nothing to sweep.
			return nil
		}

		if err := booking.Transition(b, models.BookingCompleted); err != nil {
			log.Printf("[CompletionHandler] Transition rejected for %s: %v", p.BookingID, err)
			return nil
		}
		if err := repo.Update(ctx, b); err != nil {
			return err
		}
		log.Printf("[CompletionHandler] Booking %s marked completed", p.BookingID)
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[CompletionWorker] Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
