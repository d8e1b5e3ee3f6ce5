package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ballisto/ballisto/pkg/api"
	"github.com/ballisto/ballisto/pkg/log"
	"github.com/ballisto/ballisto/pkg/queue"
	"github.com/ballisto/ballisto/pkg/store"
	"github.com/ballisto/ballisto/pkg/workers"
)

func main() {
	port := flag.Int("port", 8080, "HTTP port to listen on")
	logLevel := flag.String("log-level", "info", "Log level")
	dbPath := flag.String("db", "", "Path to a sqlite database for predictions (default in-memory)")
	flag.Parse()

	parsedLogLevel, err := log.ParseLogLevel(*logLevel)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var resultStore store.Store
	if *dbPath != "" {
		resultStore, err = store.NewSQLiteStore(ctx, *dbPath)
		if err != nil {
			panic(fmt.Sprintf("Failed to open prediction store: %v", err))
		}
		log.Info("Using sqlite prediction store at %s", *dbPath)
	} else {
		resultStore = store.NewInMemoryStore()
		log.Info("Using in-memory prediction store")
	}

	jobQueue := queue.NewInMemoryQueue()
	worker := workers.NewPredictionWorker(workers.NewPredictionWorkerOptions{
		Queue: jobQueue,
		Store: resultStore,
	})
	go worker.Start(ctx)

	server := api.NewAPIServer(api.NewAPIServerOptions{
		Port:  *port,
		Store: resultStore,
		Queue: jobQueue,
	})
	go server.Start()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error("Failed to stop server: %v", err)
	}
	cancel()
	if err := resultStore.Close(shutdownCtx); err != nil {
		log.Error("Failed to close prediction store: %v", err)
	}
}
