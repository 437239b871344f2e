package database

import (
	"errors"
	"fmt"
	"time"

	"github.com/lshigami/dailydose/internal/model"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SchemaVersion is the schema this binary was built against. Bump it whenever
// a model's columns change.
const SchemaVersion = 1

var ErrSchemaTooNew = errors.New("database schema is newer than this build supports")

// Migrate creates the fixed schema and records its version. It refuses to run
// against a database migrated by a newer build.
func Migrate(db *gorm.DB) error {
	log.Info().Int("version", SchemaVersion).Msg("Running database migrations...")

	if err := db.AutoMigrate(&model.SchemaVersion{}); err != nil {
		return fmt.Errorf("failed to create schema_versions: %w", err)
	}

	var current model.SchemaVersion
	err := db.Order("version DESC").First(&current).Error
	switch {
	case err == nil:
		if current.Version > SchemaVersion {
			log.Error().Int("database", current.Version).Int("binary", SchemaVersion).Msg("Schema version mismatch")
			return fmt.Errorf("%w: database at v%d, binary at v%d", ErrSchemaTooNew, current.Version, SchemaVersion)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	err = db.AutoMigrate(
		&model.Identity{},
		&model.User{},
		&model.Subject{},
		&model.Question{},
		&model.StudentAttempt{},
		&model.UserSession{},
		&model.DailyQuestionSet{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}

	if current.Version < SchemaVersion {
		if err := db.Create(&model.SchemaVersion{Version: SchemaVersion, AppliedAt: time.Now().UTC()}).Error; err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
