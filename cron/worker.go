package cron

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"

	"meetsync/config"
	"meetsync/services/calendar"
	"meetsync/services/mail"
	"meetsync/services/reply"
)

const TypeInboundHistory = "inbound:history"

// InboundHistoryPayload carries the history cursor from a Gmail push
// notification into the worker.
type InboundHistoryPayload struct {
	HistoryID uint64 `json:"historyId"`
}

// NewInboundHistoryTask builds the task the webhook handler enqueues after
// acknowledging a push.
func NewInboundHistoryTask(historyID uint64) (*asynq.Task, error) {
	payload, err := json.Marshal(InboundHistoryPayload{HistoryID: historyID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeInboundHistory, payload), nil
}

// InitInboundWorker runs the async worker in background. It owns everything
// that happens after the push is acknowledged: history resolution, reply
// correlation and calendar event creation.
func InitInboundWorker(transport mail.MailTransport, correlator reply.ReplyCorrelator, cal calendar.CalendarService, calendarID string) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
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
	mux.HandleFunc(TypeInboundHistory, handleInboundHistory(transport, correlator, cal, calendarID))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[InboundWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[InboundWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[InboundWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleInboundHistory(transport mail.MailTransport, correlator reply.ReplyCorrelator, cal calendar.CalendarService, calendarID string) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p InboundHistoryPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[InboundWorker] 🔴 Invalid payload: %v", err)
			return err
		}

		messages, err := transport.MessagesSince(ctx, p.HistoryID)
		if err != nil {
			// Returning the error lets asynq retry the whole cursor; the
			// correlator makes duplicate processing harmless.
			log.Printf("[InboundWorker] ❌ History resolution failed for cursor %d: %v", p.HistoryID, err)
			return err
		}

		for _, msg := range messages {
			eventReq, err := correlator.OnInboundMessage(ctx, msg.ThreadID, msg.Body)
			if err != nil {
				var unparseable *reply.UnparseableReplyError
				if errors.As(err, &unparseable) {
					// Negotiation stays proposed; abandoning after repeated
					// failures is an operator call, not ours.
					log.Printf("[InboundWorker] ⚠️ %v", unparseable)
					continue
				}
				log.Printf("[InboundWorker] ❌ Correlation failed for thread %s: %v", msg.ThreadID, err)
				continue
			}
			if eventReq == nil {
				continue
			}

			// The negotiation is resolved whether or not the calendar
			// artifact gets created; sink failures are reported, never
			// reverted.
			eventID, err := cal.CreateEvent(ctx, calendarID, *eventReq)
			if err != nil {
				log.Printf("[InboundWorker] ❌ Event creation failed for thread %s: %v", msg.ThreadID, err)
				continue
			}
			log.Printf("[InboundWorker] 📅 Created event %s for thread %s", eventID, msg.ThreadID)
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	for {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[InboundWorker] ⚠️ Redis ping failed: %v", err)
		}
		cancel()
		time.Sleep(30 * time.Second)
	}
}
