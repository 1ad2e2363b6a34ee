package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	actionrepo "github.com/Ramsey-B/protea/internal/repositories/action"
	decisionrepo "github.com/Ramsey-B/protea/internal/repositories/decision"
	interventionrepo "github.com/Ramsey-B/protea/internal/repositories/intervention"
	outcomerepo "github.com/Ramsey-B/protea/internal/repositories/outcome"
	"github.com/Ramsey-B/protea/pkg/database"
	"github.com/Ramsey-B/protea/pkg/models"
)

// seedFile is the fixture format consumed by the seed command. Records are
// inserted in chain order, so later sections may reference IDs declared in
// earlier ones.
type seedFile struct {
	Interventions []seedIntervention `yaml:"interventions"`
	Decisions     []seedDecision     `yaml:"decisions"`
	Actions       []seedAction       `yaml:"actions"`
	Outcomes      []seedOutcome      `yaml:"outcomes"`
}

type seedIntervention struct {
	ID          string `yaml:"id"`
	Province    string `yaml:"province"`
	District    string `yaml:"district"`
	PM          string `yaml:"pm"`
	Type        string `yaml:"type"`
	EntityName  string `yaml:"entity_name"`
	Stage       string `yaml:"stage"`
	Schools     int    `yaml:"schools"`
	Learners    int    `yaml:"learners"`
	StartDate   string `yaml:"start_date"`
	EndDate     string `yaml:"end_date"`
	Confidence  string `yaml:"confidence"`
	OwnerName   string `yaml:"owner_name"`
	Description string `yaml:"description"`
}

type seedDecision struct {
	ID             string `yaml:"id"`
	InterventionID string `yaml:"intervention_id"`
	DDDTool        string `yaml:"ddd_tool"`
	DataViewed     string `yaml:"data_viewed"`
	Insight        string `yaml:"insight"`
	DecisionMade   string `yaml:"decision_made"`
	MadeBy         string `yaml:"made_by"`
	Date           string `yaml:"date"`
	Notes          string `yaml:"notes"`
}

type seedAction struct {
	ID            string `yaml:"id"`
	DecisionID    string `yaml:"decision_id"`
	ActionTaken   string `yaml:"action_taken"`
	Responsible   string `yaml:"responsible"`
	TargetDate    string `yaml:"target_date"`
	Status        string `yaml:"status"`
	CompletedDate string `yaml:"completed_date"`
}

type seedOutcome struct {
	ID          string `yaml:"id"`
	ActionID    string `yaml:"action_id"`
	Description string `yaml:"description"`
	Evidence    string `yaml:"evidence"`
	Metric      string `yaml:"metric"`
	Value       string `yaml:"value"`
	Date        string `yaml:"date"`
}

func newSeedCmd() *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a YAML fixture file into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(filePath)
			if err != nil {
				return fmt.Errorf("failed to read seed file: %w", err)
			}
			var file seedFile
			if err := yaml.Unmarshal(data, &file); err != nil {
				return fmt.Errorf("failed to parse seed file: %w", err)
			}

			sqlxDB, err := connectDatabase(cfg)
			if err != nil {
				logger.WithError(err).Error("failed to connect to database")
				return err
			}
			db := database.NewDatabaseInstance(sqlxDB, logger)
			defer db.Close()

			if err := runMigrations(cfg, sqlxDB, logger); err != nil {
				logger.WithError(err).Error("failed to run migrations")
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			if err := seed(ctx, db, logger, file); err != nil {
				logger.WithError(err).Error("seeding failed")
				return err
			}

			logger.WithFields(map[string]any{
				"interventions": len(file.Interventions),
				"decisions":     len(file.Decisions),
				"actions":       len(file.Actions),
				"outcomes":      len(file.Outcomes),
			}).Info("seed complete")
			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "seed.yaml", "path to the fixture file")
	return cmd
}

func seed(ctx context.Context, db database.DB, logger ectologger.Logger, file seedFile) error {
	interventions := interventionrepo.NewRepository(db, logger)
	decisions := decisionrepo.NewRepository(db, logger)
	actions := actionrepo.NewRepository(db, logger)
	outcomes := outcomerepo.NewRepository(db, logger)

	for _, item := range file.Interventions {
		_, err := interventions.Upsert(ctx, models.UpsertInterventionRequest{
			ID:          item.ID,
			Province:    item.Province,
			District:    item.District,
			PM:          item.PM,
			Type:        item.Type,
			EntityName:  item.EntityName,
			Stage:       item.Stage,
			Schools:     models.FlexInt(item.Schools),
			Learners:    models.FlexInt(item.Learners),
			StartDate:   item.StartDate,
			EndDate:     item.EndDate,
			Confidence:  item.Confidence,
			OwnerName:   item.OwnerName,
			Description: item.Description,
		})
		if err != nil {
			return fmt.Errorf("failed to seed intervention %q: %w", item.ID, err)
		}
	}

	for _, item := range file.Decisions {
		parent, err := interventions.GetByID(ctx, item.InterventionID)
		if err != nil {
			return err
		}
		if parent == nil {
			return fmt.Errorf("decision %q references unknown intervention %q", item.ID, item.InterventionID)
		}
		_, err = decisions.Create(ctx, models.CreateDecisionRequest{
			ID:             item.ID,
			InterventionID: item.InterventionID,
			DDDTool:        item.DDDTool,
			DataViewed:     item.DataViewed,
			Insight:        item.Insight,
			DecisionMade:   item.DecisionMade,
			MadeBy:         item.MadeBy,
			Date:           item.Date,
			Notes:          item.Notes,
		})
		if err != nil {
			return fmt.Errorf("failed to seed decision %q: %w", item.ID, err)
		}
	}

	for _, item := range file.Actions {
		parent, err := decisions.GetByID(ctx, item.DecisionID)
		if err != nil {
			return err
		}
		if parent == nil {
			return fmt.Errorf("action %q references unknown decision %q", item.ID, item.DecisionID)
		}
		created, err := actions.Create(ctx, models.CreateActionRequest{
			ID:          item.ID,
			DecisionID:  item.DecisionID,
			ActionTaken: item.ActionTaken,
			Responsible: item.Responsible,
			TargetDate:  item.TargetDate,
		}, parent.InterventionID)
		if err != nil {
			return fmt.Errorf("failed to seed action %q: %w", item.ID, err)
		}
		if item.Status != "" && item.Status != models.ActionStatusPlanned {
			_, err = actions.UpdateStatus(ctx, created.ID, models.UpdateActionStatusRequest{
				Status:        item.Status,
				CompletedDate: item.CompletedDate,
			})
			if err != nil {
				return fmt.Errorf("failed to set status for action %q: %w", item.ID, err)
			}
		}
	}

	for _, item := range file.Outcomes {
		parent, err := actions.GetByID(ctx, item.ActionID)
		if err != nil {
			return err
		}
		if parent == nil {
			return fmt.Errorf("outcome %q references unknown action %q", item.ID, item.ActionID)
		}
		_, err = outcomes.Create(ctx, models.CreateOutcomeRequest{
			ID:          item.ID,
			ActionID:    item.ActionID,
			Description: item.Description,
			Evidence:    item.Evidence,
			Metric:      item.Metric,
			Value:       item.Value,
			Date:        item.Date,
		}, parent.InterventionID)
		if err != nil {
			return fmt.Errorf("failed to seed outcome %q: %w", item.ID, err)
		}
	}

	return nil
}
