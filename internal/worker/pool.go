package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueSaleCompleted = "jobs:sale_completed"

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// SaleCompletedJob is what finalize publishes for downstream collaborators
// (receipt printing, loyalty accrual). The engine is never consulted back.
type SaleCompletedJob struct {
	SaleID         string  `json:"sale_id"`
	SaleNumber     int64   `json:"sale_number"`
	CustomerID     *string `json:"customer_id,omitempty"`
	Total          string  `json:"total"`
	PointsRedeemed int64   `json:"points_redeemed"`
	Status         string  `json:"status"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueSaleCompleted pushes a completed sale onto the queue. Best-effort:
// callers fire and forget.
func (d *Dispatcher) EnqueueSaleCompleted(ctx context.Context, payload SaleCompletedJob) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: "sale_completed", Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, QueueSaleCompleted, encoded).Err()
}

// Handlers holds the per-job-type consumers wired at the composition root.
type Handlers struct {
	SaleCompleted interface {
		Handle(ctx context.Context, job SaleCompletedJob)
	}
}

// StartPool launches numWorkers goroutines consuming the queue.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartPool(ctx context.Context, rdb *redis.Client, h *Handlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, h, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, h *Handlers, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueSaleCompleted).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, h, result[1])
		}
	}
}

func processJob(ctx context.Context, h *Handlers, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal job")
		return
	}
	switch job.Type {
	case "sale_completed":
		var payload SaleCompletedJob
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			log.Error().Err(err).Msg("failed to unmarshal sale_completed payload")
			return
		}
		if h != nil && h.SaleCompleted != nil {
			h.SaleCompleted.Handle(ctx, payload)
		}
	default:
		log.Warn().Str("type", job.Type).Msg("unknown job type")
	}
}
