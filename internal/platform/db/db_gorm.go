// Package db opens the GORM database handle used by the server and the
// offline commands.
package db

import (
	"log"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authentity "fintrack_backend/internal/feature/auth/domain/entity"
	watchentity "fintrack_backend/internal/feature/watchlist/domain/entity"
)

// OpenDB connects to Postgres using DATABASE_URL, retrying for up to a
// minute so the server survives a database that is still starting. When
// DATABASE_URL is not set it falls back to a local SQLite file, which keeps
// development runs self-contained.
//
// TranslateError is enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey on both drivers.
func OpenDB() *gorm.DB {
	cfg := &gorm.Config{TranslateError: true}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		db, err := gorm.Open(sqlite.Open("./fintrack.db"), cfg)
		if err != nil {
			log.Fatalf("failed to open sqlite database: %v", err)
		}
		log.Println("[INFO] DATABASE_URL not set; using local SQLite file ./fintrack.db")
		migrate(db)
		return db
	}

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(gpostgres.Open(dsn), cfg)
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	migrate(db)
	return db
}

// migrate creates the tables this service owns. The dataset tables
// (companies, financials, stock_prices) are populated by the ingestion
// pipeline and never migrated here.
func migrate(db *gorm.DB) {
	if os.Getenv("RUN_MIGRATIONS") != "true" {
		return
	}
	if err := db.AutoMigrate(
		&authentity.User{},
		&watchentity.TrackedCompany{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
}
