package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"glitchvid/config"
	"glitchvid/credentials"
	"glitchvid/encoder"
	"glitchvid/failures"
	"glitchvid/job"
	"glitchvid/logger"
	"glitchvid/routes"
	"glitchvid/success"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// .env is optional; environment variables win either way.
	if err := godotenv.Load(); err == nil {
		logger.Debug("Loaded configuration from .env")
	}

	logger.Info("Starting glitchvid server initialization")

	if err := os.MkdirAll(config.GetDataDir(), 0755); err != nil {
		logger.Fatalf("Failed to create data directory: %v", err)
	}
	if err := os.MkdirAll(config.GetServeDir(), 0755); err != nil {
		logger.Fatalf("Failed to create serve directory: %v", err)
	}

	// Initialize credentials store
	logger.Debug("Initializing credentials database")
	if err := credentials.OpenDB(config.GetCredentialsDBPath()); err != nil {
		logger.Fatalf("Failed to initialize credentials store: %v", err)
	}
	defer credentials.CloseDB()

	// Initialize failure store
	logger.Debug("Initializing failures database")
	if err := failures.Init(config.GetFailuresDBPath()); err != nil {
		logger.Fatalf("Failed to initialize failure store: %v", err)
	}
	defer failures.Close()

	// Initialize success store
	logger.Debug("Initializing success database")
	if err := success.Init(config.GetSuccessDBPath()); err != nil {
		logger.Fatalf("Failed to initialize success store: %v", err)
	}
	defer success.Close()

	// Register video encoders. Formats whose backing binary is missing from
	// PATH simply stay unregistered.
	encoder.RegisterDefaults()

	// Re-queue renders left over from a previous run
	logger.Info("Scanning for pending renders on startup")
	if err := job.ScanForPending(); err != nil {
		logger.Errorf("Failed to scan for pending renders: %v", err)
		// Don't exit - continue with server startup
	}

	// Cleanup routine for old result records (runs every 24 hours)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cleanupRoutine(ctx)

	// Background render processing loop
	logger.Info("Starting render processing routine")
	go job.ProcessPending()

	logger.Info("Registering HTTP routes")
	http.HandleFunc("/", routes.IndexHandler)
	http.HandleFunc("/run/predict", routes.PredictHandler)
	http.HandleFunc("/upload", routes.UploadHandler)
	http.HandleFunc("/health", routes.HealthHandler)
	http.HandleFunc("/version", routes.VersionHandler)
	http.HandleFunc("/status", routes.JobStatusHandler)
	http.HandleFunc("/cancel", routes.CancelJobHandler)
	http.HandleFunc("/failures", routes.FailureQueryHandler)
	http.HandleFunc("/failures/list", routes.FailureListHandler)
	http.HandleFunc("/success", routes.SuccessQueryHandler)
	http.HandleFunc("/success/list", routes.SuccessListHandler)
	http.HandleFunc("/credentials", routes.RegisterCredentialsHandler)
	http.Handle("/files/", http.StripPrefix("/files/", http.FileServer(http.Dir(config.GetServeDir()))))
	http.Handle("/metrics", promhttp.Handler())

	addr := ":" + config.GetPort()
	logger.Infof("glitchvid server starting on %s", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatalf("Server failed to start: %v", err)
	}
}

// cleanupRoutine periodically prunes old success and failure records
func cleanupRoutine(ctx context.Context) {
	logger.Info("Cleanup routine started - will run every 24 hours")
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup routine stopped due to context cancellation")
			return
		case <-ticker.C:
			// Records older than 30 days go
			maxAge := 30 * 24 * time.Hour

			if err := success.CleanupOldRecords(maxAge); err != nil {
				logger.Errorf("Failed to cleanup old success records: %v", err)
			}
			if err := failures.CleanupOldRecords(maxAge); err != nil {
				logger.Errorf("Failed to cleanup old failure records: %v", err)
			}
			logger.Info("Scheduled cleanup completed")
		}
	}
}
