package tasks

import (
	"encoding/json"
	"time"

	"reservio/config"
	"reservio/models"

	"github.com/hibiken/asynq"
)

const TypeBookingComplete = "booking:complete"

// CompletionPayload identifies the booking a completion sweep should close.
type CompletionPayload struct {
	BookingID string `json:"booking_id"`
	Date      string `json:"date"`
}

// NewCompletionTask builds the deferred task that marks a confirmed booking
// completed once its usage window has passed.
func NewCompletionTask(payload CompletionPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingComplete, b)
	opts := []asynq.Option{asynq.ProcessAt(fireAt)}

	return task, opts, nil
}

// CompletionQueue enqueues completion tasks. It satisfies the booking
// service's CompletionScheduler.
type CompletionQueue struct {
	client *asynq.Client
	grace  time.Duration
}

// NewCompletionQueue builds a queue client against the configured Redis.
func NewCompletionQueue() *CompletionQueue {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})
	return &CompletionQueue{
		client: client,
		grace:  time.Duration(config.AppConfig.CompletionGraceMins) * time.Minute,
	}
}

// ScheduleCompletion enqueues the sweep at the end of the booked block plus a
// grace period. The booking date is a normalized calendar day; the block end
// is minutes from midnight.
func (q *CompletionQueue) ScheduleCompletion(booking *models.Booking, block *models.TimeBlock) error {
	day, err := time.Parse(models.DateLayout, booking.Date)
	if err != nil {
		return err
	}
	fireAt := day.Add(time.Duration(block.End)*time.Minute + q.grace)

	task, opts, err := NewCompletionTask(CompletionPayload{BookingID: booking.ID, Date: booking.Date}, fireAt)
	if err != nil {
		return err
	}
	_, err = q.client.Enqueue(task, opts...)
	return err
}
