package main

import (
	"context"
	"log"
	"net/http"

	"census/internal/config"
	"census/internal/handlers"
	"census/internal/loader"
	"census/internal/models"
	"census/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Initialize loader manager
	manager, err := loader.NewManager(cfg.DataRoot)
	if err != nil {
		log.Fatal("Failed to initialize loader manager:", err)
	}
	defer manager.Cleanup()

	// A failed load leaves the page up with an empty chart
	records := loadRecords(manager, cfg)

	chartHandler := handlers.NewChartHandler(records, session.Config{
		Selector: cfg.Container,
		Debounce: cfg.ResizeDebounce(),
		Chart:    cfg.ChartOptions(),
	})

	// Create mux router
	mux := http.NewServeMux()
	chartHandler.Register(mux)

	// Add health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Start server
	log.Printf("Server starting on :%s...", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, mux); err != nil {
		log.Fatal(err)
	}
}

func loadRecords(manager *loader.Manager, cfg config.Config) []models.Record {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.LoadTimeout())
	defer cancel()

	records, err := manager.Load(ctx, cfg.DataPath)
	if err != nil {
		log.Printf("Error loading dataset: %v", err)
		return nil
	}
	log.Printf("Loaded %d records from %s", len(records), cfg.DataPath)
	return records
}
