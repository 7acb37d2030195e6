package database

import (
	"fmt"

	"github.com/sundaydevr/astral-databank-core/pkg/ledger/models"
	"github.com/sundaydevr/astral-databank-core/pkg/ledger/repositories"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(connStr string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates the two artifact keyspaces, the grant keyspace and the
// sequence counter. The replica keyspace shares the record schema but lives
// in its own table; the two are never reconciled.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.ArtifactRecord{},
		&models.PermissionGrant{},
		&models.SequenceCounter{},
	); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if err := db.Table(string(repositories.ReplicaKeyspace)).AutoMigrate(&models.ArtifactRecord{}); err != nil {
		return fmt.Errorf("replica keyspace migration failed: %w", err)
	}
	return nil
}
