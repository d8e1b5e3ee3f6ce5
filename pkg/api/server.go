// Package api exposes the prediction engine over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ballisto/ballisto/pkg/api/handlers"
	"github.com/ballisto/ballisto/pkg/api/middleware"
	"github.com/ballisto/ballisto/pkg/log"
	"github.com/ballisto/ballisto/pkg/queue"
	"github.com/ballisto/ballisto/pkg/store"
	"github.com/gorilla/mux"
)

// APIServer serves the prediction endpoints.
type APIServer struct {
	server *http.Server
}

// NewAPIServerOptions configures an APIServer.
type NewAPIServerOptions struct {
	Port  int
	Store store.Store
	Queue queue.Queue
}

// NewAPIServer creates a new http.Server for handling prediction requests.
// Synchronous predictions are also saved to the store; asynchronous ones
// go through the queue and are fetched from the store once a worker has
// processed them.
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	router := mux.NewRouter()
	router.Use(middleware.NewRequestIDMiddleware())
	router.Use(middleware.NewRequestLoggingMiddleware())

	router.HandleFunc("/predict", handlers.HandlePredict(opts.Store)).Methods(http.MethodPost)
	router.HandleFunc("/predict/missile", handlers.HandlePredictMissile(opts.Store)).Methods(http.MethodPost)
	router.HandleFunc("/predict/stream", handlers.HandlePredictStream())
	router.HandleFunc("/launch", handlers.HandleLaunch()).Methods(http.MethodPost)

	if opts.Queue != nil {
		router.HandleFunc("/predict/async", handlers.HandlePredictAsync(opts.Queue)).Methods(http.MethodPost)
		router.HandleFunc("/predict/missile/async", handlers.HandlePredictMissileAsync(opts.Queue)).Methods(http.MethodPost)
	}
	if opts.Store != nil {
		router.HandleFunc("/predictions", handlers.HandleListPredictions(opts.Store)).Methods(http.MethodGet)
		router.HandleFunc("/predictions/{id}", handlers.HandleGetPrediction(opts.Store)).Methods(http.MethodGet)
	}

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: router,
	}
	return &APIServer{server: server}
}

// Start starts the APIServer.
func (s *APIServer) Start() {
	log.Info("API server listening on %s", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer.
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
