package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ballisto/ballisto/pkg/log"
	"github.com/ballisto/ballisto/pkg/queue"
	"github.com/ballisto/ballisto/pkg/store"
	"github.com/ballisto/ballisto/pkg/workers"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// AsyncResponse acknowledges an accepted prediction job. The result is
// fetched later by ID.
type AsyncResponse struct {
	ID string `json:"id"`
}

// HandlePredictAsync queues a ballistic prediction for the worker pool.
func HandlePredictAsync(jobs queue.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PredictRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Failed to decode request", http.StatusBadRequest)
			return
		}
		cfg, err := projectileConfig(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		enqueueJob(w, jobs, workers.PredictionJob{
			ID:         uuid.New().String(),
			Projectile: &cfg,
		})
	}
}

// HandlePredictMissileAsync queues a guided prediction for the worker pool.
func HandlePredictMissileAsync(jobs queue.Queue) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MissileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Failed to decode request", http.StatusBadRequest)
			return
		}
		cfg, err := missileConfig(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		enqueueJob(w, jobs, workers.PredictionJob{
			ID:      uuid.New().String(),
			Missile: &cfg,
		})
	}
}

func enqueueJob(w http.ResponseWriter, jobs queue.Queue, job workers.PredictionJob) {
	if err := jobs.Enqueue(job); err != nil {
		if errors.Is(err, queue.ErrQueueFull) {
			http.Error(w, "Too many pending predictions", http.StatusServiceUnavailable)
			return
		}
		log.Error("failed to enqueue prediction %s: %v", job.ID, err)
		http.Error(w, "Failed to queue prediction", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(AsyncResponse{ID: job.ID}); err != nil {
		log.Error("failed to encode async response: %v", err)
	}
}

// HandleGetPrediction fetches a stored prediction by ID. Async results
// return 404 until the worker has processed them.
func HandleGetPrediction(resultStore store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		prediction, err := resultStore.GetPrediction(r.Context(), id)
		if err != nil {
			if store.IsNotFound(err) {
				http.Error(w, "Prediction not found", http.StatusNotFound)
				return
			}
			log.Error("failed to get prediction %s: %v", id, err)
			http.Error(w, "Failed to get prediction", http.StatusInternalServerError)
			return
		}

		resp := storedResponse(prediction)
		if r.URL.Query().Get("includeTrajectory") == "true" {
			resp.Trajectory = wireTrajectory(prediction.Trajectory)
		}
		writeJSON(w, resp)
	}
}

// HandleListPredictions lists stored predictions, newest first.
func HandleListPredictions(resultStore store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 20
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				http.Error(w, "Invalid limit", http.StatusBadRequest)
				return
			}
			limit = parsed
		}

		predictions, err := resultStore.ListPredictions(r.Context(), limit)
		if err != nil {
			log.Error("failed to list predictions: %v", err)
			http.Error(w, "Failed to list predictions", http.StatusInternalServerError)
			return
		}

		resp := make([]PredictResponse, len(predictions))
		for i, p := range predictions {
			resp[i] = storedResponse(p)
		}
		writeJSON(w, resp)
	}
}

func storedResponse(p *store.StoredPrediction) PredictResponse {
	return PredictResponse{
		ID:             p.ID,
		Kind:           p.Kind,
		Valid:          p.Valid,
		ImpactTime:     p.ImpactTime,
		ImpactPosition: fromVec(p.ImpactPosition),
		Samples:        p.Samples,
	}
}
