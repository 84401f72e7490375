package db

import (
	"fmt"

	"farewatch/internal/models/entities"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var PgDB *gorm.DB

// InitPostgresORM connects GORM to Postgres and migrates the observation
// table. Migration is additive only: new optional columns default to absent
// on old rows, existing columns are never altered or dropped.
func InitPostgresORM(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := db.AutoMigrate(&entities.FareObservation{}); err != nil {
		return nil, fmt.Errorf("failed to migrate fare_observations: %w", err)
	}

	PgDB = db
	return db, nil
}
