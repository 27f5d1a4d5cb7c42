/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the compensation engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Read environment configuration, then command-line flags
  2. Initialize SQLite case store
  3. Build the table registry and engine
  4. Configure HTTP router
  5. Start server with graceful shutdown

CONFIGURATION:
  Environment variables (flags override):
    PORT           HTTP server port (default: 8080)
    DATABASE_PATH  SQLite database path (default: cases.db)
    FEE_SCHEDULE   "tiered" (default) or "flat"

COMMAND-LINE FLAGS:
  -port    HTTP server port
  -db      SQLite database path; use ":memory:" for in-memory
  -fees    Fee schedule variant

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database
  ./server -db="./data/cases.db"

  # Run with the flat fee schedule
  FEE_SCHEDULE=flat ./server

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/warp/compensation-engine/api"
	"github.com/warp/compensation-engine/compensation"
	"github.com/warp/compensation-engine/store/sqlite"
)

type config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	DBPath      string `env:"DATABASE_PATH" envDefault:"cases.db"`
	FeeSchedule string `env:"FEE_SCHEDULE" envDefault:"tiered"`
}

func main() {
	// Environment first, flags override.
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("Failed to read environment: %v", err)
	}

	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	feeSchedule := flag.String("fees", cfg.FeeSchedule, "fee schedule: tiered or flat")
	flag.Parse()

	var fees compensation.FeeSchedule
	switch *feeSchedule {
	case "tiered":
		fees = compensation.StandardFeeSchedule()
	case "flat":
		fees = compensation.DefaultFlatFeeSchedule()
	default:
		log.Fatalf("Unknown fee schedule %q (want tiered or flat)", *feeSchedule)
	}

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Build engine on the shared read-only tables
	engine := compensation.NewEngineWith(compensation.Shared(), fees)
	handler := api.NewHandler(store, engine)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Compensation engine listening on http://localhost:%d (fees: %s)", *port, *feeSchedule)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
