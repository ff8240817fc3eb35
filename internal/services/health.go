package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/coachdesk/onboard/internal/config"
	"github.com/coachdesk/onboard/internal/storage"
	"github.com/coachdesk/onboard/internal/utils"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Storage      string            `json:"storage"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck performs a comprehensive health check of the service
func HealthCheck(cfg *config.Config, db *gorm.DB, store storage.ObjectStore) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	// Check database connectivity
	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Printf("Health check failed - database connection: %v", err)
	} else {
		if err := sqlDB.Ping(); err != nil {
			result.Status = "unhealthy"
			result.Database = "unreachable"
			result.Details["database_ping_error"] = err.Error()
			result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
			log.Printf("Health check failed - database ping: %v", err)
		} else {
			result.Database = "ok"
			result.Details["database_type"] = cfg.DBType
			result.Details["database_name"] = cfg.DBDatabase
		}
	}

	// A configured emulator gets a TCP reachability check before the
	// listing probe.
	if cfg.StorageEmulatorHost != "" {
		if err := utils.PingStorageEmulator(cfg.StorageEmulatorHost); err != nil {
			result.Details["storage_emulator_error"] = err.Error()
		} else {
			result.Details["storage_emulator"] = cfg.StorageEmulatorHost
		}
	}

	// Check object storage reachability with a cheap no-match listing
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := store.List(ctx, ".healthz/"); err != nil {
		result.Status = "unhealthy"
		result.Storage = "unreachable"
		result.Details["storage_error"] = err.Error()
		if result.ErrorMessage == "" {
			result.ErrorMessage = fmt.Sprintf("Storage check failed: %v", err)
		} else {
			result.ErrorMessage += fmt.Sprintf("; Storage check failed: %v", err)
		}
		log.Printf("Health check failed - storage listing: %v", err)
	} else {
		result.Storage = "ok"
		result.Details["storage_bucket"] = cfg.StorageBucket
	}

	if result.Status == "healthy" {
		log.Println("Health check passed - all systems operational")
	}

	return result
}
