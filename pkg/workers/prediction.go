package workers

import (
	"context"

	"github.com/ballisto/ballisto/pkg/log"
	"github.com/ballisto/ballisto/pkg/predict"
	"github.com/ballisto/ballisto/pkg/queue"
	"github.com/ballisto/ballisto/pkg/store"
)

// PredictionJob is a deferred prediction request. Exactly one of
// Projectile or Missile must be set; Missile wins when both are.
type PredictionJob struct {
	ID         string
	Projectile *predict.ProjectileConfig
	Missile    *predict.MissileConfig
}

type PredictionWorker struct {
	queue queue.Queue
	store store.Store
}

type NewPredictionWorkerOptions struct {
	Queue queue.Queue
	Store store.Store
}

// NewPredictionWorker creates a new PredictionWorker. The worker drains
// prediction jobs from the queue, runs the predictor, and persists the
// outcome so clients can poll for it.
func NewPredictionWorker(opts NewPredictionWorkerOptions) *PredictionWorker {
	return &PredictionWorker{
		queue: opts.Queue,
		store: opts.Store,
	}
}

func (w *PredictionWorker) Start(ctx context.Context) {
	for {
		item, err := w.queue.Dequeue(ctx)
		if err != nil {
			return
		}
		job, ok := item.(PredictionJob)
		if !ok {
			log.Error("Unexpected item in prediction queue: %T", item)
			continue
		}
		w.process(ctx, job)
	}
}

func (w *PredictionWorker) process(ctx context.Context, job PredictionJob) {
	var prediction *store.StoredPrediction
	switch {
	case job.Missile != nil:
		prediction = store.FromResult(job.ID, store.KindMissile, predict.PredictMissile(*job.Missile))
	case job.Projectile != nil:
		prediction = store.FromResult(job.ID, store.KindProjectile, predict.PredictProjectile(*job.Projectile))
	default:
		log.Error("Prediction job %s has no config", job.ID)
		return
	}

	if err := w.store.SavePrediction(ctx, prediction); err != nil {
		log.Error("Failed to save prediction %s: %v", job.ID, err)
		return
	}
	log.Debug("Prediction %s complete: valid=%v samples=%d", job.ID, prediction.Valid, prediction.Samples)
}
