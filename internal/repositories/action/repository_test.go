package action_test

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

	"github.com/Ramsey-B/protea/internal/repositories/action"
	"github.com/Ramsey-B/protea/internal/repositories/decision"
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

func TestActionRepository_ChainWrites(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := getTestDB(t)
	defer db.Close()
	logger := getTestLogger()
	interventions := intervention.NewRepository(db, logger)
	decisions := decision.NewRepository(db, logger)
	actions := action.NewRepository(db, logger)
	ctx := context.Background()

	parent, err := interventions.Upsert(ctx, models.UpsertInterventionRequest{
		Province:   "Limpopo",
		Type:       "Reading Literacy",
		EntityName: "Vhembe East Circuit",
	})
	require.NoError(t, err)
	defer func() {
		_ = interventions.Delete(ctx, parent.ID)
	}()

	dec, err := decisions.Create(ctx, models.CreateDecisionRequest{
		InterventionID: parent.ID,
		DecisionMade:   "Deploy reading coaches",
		Date:           "2024-08-01",
	})
	require.NoError(t, err)

	// The action carries the intervention reference copied from its decision.
	act, err := actions.Create(ctx, models.CreateActionRequest{
		DecisionID:  dec.ID,
		ActionTaken: "Coach visits scheduled",
		TargetDate:  "2024-09-15",
	}, dec.InterventionID)
	require.NoError(t, err)
	assert.Equal(t, parent.ID, act.InterventionID)
	assert.Equal(t, models.ActionStatusPlanned, act.Status)

	updated, err := actions.UpdateStatus(ctx, act.ID, models.UpdateActionStatusRequest{
		Status:        models.ActionStatusCompleted,
		CompletedDate: "2024-09-20",
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, models.ActionStatusCompleted, updated.Status)
	assert.Equal(t, "2024-09-20", updated.CompletedDate)

	_, _ = db.ExecContext(ctx, "DELETE FROM actions WHERE id = $1", act.ID)
	_, _ = db.ExecContext(ctx, "DELETE FROM decisions WHERE id = $1", dec.ID)
}

func TestActionRepository_UpdateStatusMissing(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := getTestDB(t)
	defer db.Close()
	actions := action.NewRepository(db, getTestLogger())

	updated, err := actions.UpdateStatus(context.Background(), "ACT_0000_000", models.UpdateActionStatusRequest{
		Status: models.ActionStatusBlocked,
	})
	require.NoError(t, err)
	assert.Nil(t, updated)
}
