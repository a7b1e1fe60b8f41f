package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueNotifications = "jobs:notifications"

// Notification event types.
const (
	EventLowStock       = "low_stock"
	EventNegativeStock  = "negative_stock"
	EventNewExpense     = "new_expense"
	EventProductDeleted = "product_deleted"
	EventReferralBonus  = "referral_bonus"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Notification is the payload for admin alert jobs. Fields are sparse:
// each event type fills only what its message needs.
type Notification struct {
	Event       string `json:"event"`
	ProductName string `json:"productName,omitempty"`
	Quantity    int    `json:"quantity,omitempty"`
	Amount      string `json:"amount,omitempty"`
	Method      string `json:"method,omitempty"`
	Description string `json:"description,omitempty"`
	SellerName  string `json:"sellerName,omitempty"`
	ClientName  string `json:"clientName,omitempty"`
}

// Notifier delivers a formatted message to every admin chat.
// infra.TelegramNotifier is the production implementation.
type Notifier interface {
	NotifyAdmins(ctx context.Context, text string) error
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueNotification pushes an admin alert job to Redis. Best-effort:
// callers fire and forget after their transaction has committed.
func (d *Dispatcher) EnqueueNotification(ctx context.Context, n Notification) error {
	if d.rdb == nil {
		return nil
	}
	return d.enqueue(ctx, QueueNotifications, "notification", n)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming the notification
// queue. Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, notifier Notifier, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, notifier, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, notifier Notifier, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueNotifications).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, notifier, result[1])
		}
	}
}

func processJob(ctx context.Context, notifier Notifier, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal job")
		return
	}
	if job.Type != "notification" {
		log.Warn().Str("type", job.Type).Msg("unknown job type")
		return
	}
	var n Notification
	if err := json.Unmarshal(job.Payload, &n); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal notification payload")
		return
	}
	text := FormatNotification(n)
	if text == "" {
		log.Warn().Str("event", n.Event).Msg("unknown notification event")
		return
	}
	if err := notifier.NotifyAdmins(ctx, text); err != nil {
		log.Error().Err(err).Str("event", n.Event).Msg("failed to deliver notification")
	}
}

// FormatNotification renders the admin message for an event.
// Returns "" for unknown events.
func FormatNotification(n Notification) string {
	switch n.Event {
	case EventLowStock:
		return fmt.Sprintf("⚠️ Low stock: %s — %d left", n.ProductName, n.Quantity)
	case EventNegativeStock:
		return fmt.Sprintf("🚨 Oversold: %s — stock is %d", n.ProductName, n.Quantity)
	case EventNewExpense:
		return fmt.Sprintf("💸 New expense: %s (%s, %s)\n%s", n.Amount, n.Method, n.SellerName, n.Description)
	case EventProductDeleted:
		return fmt.Sprintf("🗑 Product deleted: %s (had %d in stock)", n.ProductName, n.Quantity)
	case EventReferralBonus:
		return fmt.Sprintf("🎁 Referral bonus: %s credited to %s", n.Amount, n.ClientName)
	default:
		return ""
	}
}
