package database

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/pkg/errors"
)

type MigrationLogger struct {
	ectologger.Logger
}

func (l MigrationLogger) Verbose() bool {
	return true
}

func (l MigrationLogger) Printf(format string, v ...any) {
	l.Infof(format, v...)
}

type MigrationService struct {
	config *MigrationConfig
	logger ectologger.Logger
}

type MigrationConfig struct {
	MigrationFolderPath string
	Version             uint
	AutoRollback        bool // If enabled, will attempt to force the database back to the previous version when a migration fails
}

func NewMigrationService(logger ectologger.Logger, config *MigrationConfig) *MigrationService {
	return &MigrationService{
		config: config,
		logger: logger,
	}
}

func (ms *MigrationService) resolveMigrationFolder() string {
	migrationFolder := ms.config.MigrationFolderPath
	if _, err := os.Stat(migrationFolder); err == nil {
		return migrationFolder
	}
	workingDirectory, _ := os.Getwd()
	separator := ""
	if workingDirectory != "/" {
		separator = "/"
	}
	return workingDirectory + separator + migrationFolder
}

func (ms *MigrationService) Migrate(databaseName string, databaseInstance database.Driver) error {
	migrationFolder := ms.resolveMigrationFolder()
	if _, err := os.Stat(migrationFolder); err != nil {
		return errors.Wrap(err, fmt.Sprintf("migration folder %s does not exist", migrationFolder))
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationFolder, databaseName, databaseInstance)
	if err != nil {
		ms.logger.WithError(err).Error("Failed to create migrate instance")
		return err
	}

	m.Log = MigrationLogger{Logger: ms.logger}

	return ms.runMigration(m)
}

func (ms *MigrationService) runMigration(m *migrate.Migrate) error {
	version, _, versionErr := m.Version()
	if versionErr != nil {
		version = 0
	}

	startTime := time.Now()

	var migrationErr error
	if ms.config.Version != 0 {
		migrationErr = m.Migrate(ms.config.Version)
	} else {
		migrationErr = m.Up()
	}

	ms.logger.Infof("Database migrations completed in %v", time.Since(startTime))

	return ms.handleMigrationError(m, migrationErr, version)
}

func (ms *MigrationService) handleMigrationError(m *migrate.Migrate, err error, previousVersion uint) error {
	if err == nil {
		ms.logger.Info("Successfully applied migrations")
		return nil
	}

	if err == migrate.ErrNoChange {
		ms.logger.Info("No new migrations to apply")
		return nil
	}

	// Rollbacks leave the database ahead of the migration folder.
	if strings.Contains(err.Error(), "no migration found for version") {
		ms.logger.Warnf("No migration found for version %d; leaving database as-is", previousVersion)
		return nil
	}

	ms.logger.WithError(err).Errorf("Migration failed with error: %v", err)

	version, dirty, versionErr := m.Version()
	if versionErr != nil && versionErr != migrate.ErrNilVersion {
		ms.logger.WithError(versionErr).Error("Failed to get current migration version")
	} else if ms.config.AutoRollback && dirty {
		if previousVersion == 0 {
			previousVersion = version - 1
		}

		ms.logger.Warnf("Database is dirty at version %d. Reverting to version %d", version, previousVersion)
		if forceErr := m.Force(int(previousVersion)); forceErr != nil {
			ms.logger.WithError(forceErr).Errorf("Failed to force database to version %d", previousVersion)
			return forceErr
		}

		// Still return the original error so the service does not start on a failed migration.
		return err
	}

	ms.logger.WithError(err).Errorf("Failed to apply migrations. Database version is dirty=%t at version %d", dirty, version)
	return err
}
