// Package store persists prediction results so they can be fetched after
// the fact, either by the async pipeline or by clients polling for a
// result they requested earlier.
package store

import (
	"context"
	"time"

	"github.com/ballisto/ballisto/pkg/predict"
	"github.com/ballisto/ballisto/pkg/vecmath"
)

// Prediction kinds.
const (
	KindProjectile = "projectile"
	KindMissile    = "missile"
)

// StoredPrediction is a persisted prediction outcome.
type StoredPrediction struct {
	ID             string
	Kind           string
	CreatedAt      time.Time
	Valid          bool
	ImpactTime     float32
	ImpactPosition vecmath.Vec3
	Samples        int
	Trajectory     predict.Trajectory
}

// Store provides shared access to persisted predictions.
// Implementations must be thread-safe.
type Store interface {
	Close(ctx context.Context) error
	// SavePrediction persists a prediction, replacing any previous one
	// with the same ID.
	SavePrediction(ctx context.Context, prediction *StoredPrediction) error
	// GetPrediction returns the prediction with the given ID, or an
	// ErrNotFound error.
	GetPrediction(ctx context.Context, id string) (*StoredPrediction, error)
	// ListPredictions returns up to limit predictions, newest first.
	ListPredictions(ctx context.Context, limit int) ([]*StoredPrediction, error)
}

// FromResult builds a StoredPrediction from a predictor result.
func FromResult(id, kind string, result predict.Result) *StoredPrediction {
	return &StoredPrediction{
		ID:             id,
		Kind:           kind,
		CreatedAt:      time.Now(),
		Valid:          result.Valid,
		ImpactTime:     result.ImpactTime,
		ImpactPosition: result.ImpactPosition,
		Samples:        len(result.Trajectory),
		Trajectory:     result.Trajectory,
	}
}

type ErrNotFound struct {
}

func (e *ErrNotFound) Error() string {
	return "not found"
}

func IsNotFound(err error) bool {
	_, ok := err.(*ErrNotFound)
	return ok
}
