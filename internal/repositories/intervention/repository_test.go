package intervention_test

import (
	"context"
	"os"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ramsey-B/protea/internal/repositories/intervention"
	"github.com/Ramsey-B/protea/pkg/database"
	"github.com/Ramsey-B/protea/pkg/models"
)

func getTestLogger() ectologger.Logger {
	zapLogger, _ := zap.NewDevelopment()
	return zapadapter.NewZapEctoLogger(zapLogger, nil)
}

func getTestDB(t *testing.T) database.DB {
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}
	dbUser := os.Getenv("DB_USER_NAME")
	if dbUser == "" {
		dbUser = "user"
	}
	dbPass := os.Getenv("DB_PASSWORD")
	if dbPass == "" {
		dbPass = "password"
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "protea"
	}

	dsn := "host=" + dbHost + " user=" + dbUser + " password=" + dbPass + " dbname=" + dbName + " sslmode=disable"
	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err, "Failed to connect to test database")

	return database.NewDatabaseInstance(db, getTestLogger())
}

func TestInterventionRepository_CRUD(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := getTestDB(t)
	defer db.Close()
	repo := intervention.NewRepository(db, getTestLogger())
	ctx := context.Background()

	req := models.UpsertInterventionRequest{
		Province:   "KwaZulu-Natal",
		District:   "Pinetown",
		Type:       "Underperforming School",
		EntityName: "Inanda Secondary",
		Stage:      models.StageActive,
		Schools:    models.FlexInt(12),
		Learners:   models.FlexInt(8400),
		Confidence: "Medium",
	}

	created, err := repo.Upsert(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Inanda Secondary", created.EntityName)
	assert.Equal(t, 12, created.Schools)
	defer func() {
		_ = repo.Delete(ctx, created.ID)
	}()

	// Upsert with the same ID replaces the row.
	req.ID = created.ID
	req.Stage = models.StageCompleted
	req.Schools = models.FlexInt(14)
	updated, err := repo.Upsert(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, models.StageCompleted, updated.Stage)
	assert.Equal(t, 14, updated.Schools)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, models.StageCompleted, got.Stage)

	items, err := repo.List(ctx)
	require.NoError(t, err)
	found := false
	for _, item := range items {
		if item.ID == created.ID {
			found = true
		}
	}
	assert.True(t, found, "upserted intervention should appear in list")

	err = repo.Delete(ctx, created.ID)
	require.NoError(t, err)

	gone, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestInterventionRepository_GetMissing(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := getTestDB(t)
	defer db.Close()
	repo := intervention.NewRepository(db, getTestLogger())

	got, err := repo.GetByID(context.Background(), "DDD_0000_000")
	require.NoError(t, err)
	assert.Nil(t, got)
}
