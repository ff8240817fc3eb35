// main.go
//
// The CoachDesk client onboarding data service.
// Copyright (c) 2026 CoachDesk GmbH <engineering@coachdesk.io> (https://www.coachdesk.io)
//
// This file is part of onboard.
// onboard is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// onboard is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with onboard.
// If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/coachdesk/onboard/internal/config"
	"github.com/coachdesk/onboard/internal/database"
	"github.com/coachdesk/onboard/internal/services"
	"github.com/coachdesk/onboard/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Open object storage
	var store storage.ObjectStore
	if cfg.StorageBucket == "memory" {
		store = storage.NewMemoryStore()
	} else {
		gcs, err := storage.NewGCSStore(context.Background(), cfg.StorageBucket)
		if err != nil {
			log.Fatalf("Failed to open storage bucket %s: %v", cfg.StorageBucket, err)
		}
		defer gcs.Close()
		store = gcs
	}

	// Perform health check
	result := services.HealthCheck(cfg, db, store)

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if result.Status != "healthy" {
		os.Exit(1)
	}
	os.Exit(0)
}
