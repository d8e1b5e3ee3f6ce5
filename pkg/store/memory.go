package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type InMemoryStore struct {
	lock        sync.RWMutex
	predictions map[string]*StoredPrediction
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		predictions: make(map[string]*StoredPrediction),
	}
}

func (s *InMemoryStore) Close(ctx context.Context) error {
	return nil
}

func (s *InMemoryStore) SavePrediction(ctx context.Context, prediction *StoredPrediction) error {
	if prediction == nil {
		return fmt.Errorf("prediction is nil")
	}
	if prediction.ID == "" {
		return fmt.Errorf("prediction ID is empty")
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	copy := *prediction
	s.predictions[prediction.ID] = &copy
	return nil
}

func (s *InMemoryStore) GetPrediction(ctx context.Context, id string) (*StoredPrediction, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	prediction, ok := s.predictions[id]
	if !ok {
		return nil, &ErrNotFound{}
	}
	copy := *prediction
	return &copy, nil
}

func (s *InMemoryStore) ListPredictions(ctx context.Context, limit int) ([]*StoredPrediction, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	predictions := make([]*StoredPrediction, 0, len(s.predictions))
	for _, p := range s.predictions {
		copy := *p
		predictions = append(predictions, &copy)
	}
	sort.Slice(predictions, func(i, j int) bool {
		return predictions[i].CreatedAt.After(predictions[j].CreatedAt)
	})
	if limit > 0 && len(predictions) > limit {
		predictions = predictions[:limit]
	}
	return predictions, nil
}
