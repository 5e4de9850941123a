package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yukikurage/workforce-api/internal/config"
	"github.com/yukikurage/workforce-api/internal/constants"
	"github.com/yukikurage/workforce-api/internal/database"
	"github.com/yukikurage/workforce-api/internal/logging"
	"github.com/yukikurage/workforce-api/internal/repository"
	"github.com/yukikurage/workforce-api/internal/roster"
	"github.com/yukikurage/workforce-api/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// app is the store and services a command runs against.
type app struct {
	db     *gorm.DB
	logger zerolog.Logger
	users  repository.UserRepository
	orgs   repository.OrganizationRepository

	schedule  *services.ScheduleService
	wellbeing *services.WellbeingService
}

func openApp() (*app, error) {
	cfg, err := config.LoadFrom(viper.GetViper())
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	return newApp(db, logger), nil
}

func newApp(db *gorm.DB, logger zerolog.Logger) *app {
	orgRepo := repository.NewOrganizationRepository(db)
	userRepo := repository.NewUserRepository(db)
	perms := services.NewPermissionService(orgRepo, userRepo)
	return &app{
		db:        db,
		logger:    logger,
		users:     userRepo,
		orgs:      orgRepo,
		schedule:  services.NewScheduleService(perms, userRepo, repository.NewProjectRepository(db), repository.NewShiftRepository(db)),
		wellbeing: services.NewWellbeingService(perms, userRepo, repository.NewMoodRepository(db)),
	}
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// actor resolves the user given with --as.
func (a *app) actor(ctx context.Context, username string) (uint64, error) {
	if username == "" {
		return 0, fmt.Errorf("--as is required")
	}
	user, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("unknown user %q: %w", username, err)
	}
	return user.ID, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := database.MigrateDatabase(a.db); err != nil {
				return err
			}
			a.logger.Info().Msg("schema is up to date")
			return nil
		},
	}
}

func seedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create an organization from a YAML roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := roster.FromFile(file)
			if err != nil {
				return err
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := database.MigrateDatabase(a.db); err != nil {
				return err
			}
			org, err := roster.Seed(cmd.Context(), a.orgs, r, bcrypt.DefaultCost)
			if err != nil {
				return err
			}

			a.logger.Info().
				Uint64("organization_id", org.ID).
				Int("users", len(org.Users)).
				Int("projects", len(org.Projects)).
				Msg("roster seeded")
			return printJSONOrTable(cmd.OutOrStdout(), seedSummary(org), func(w io.Writer) { renderSeed(w, org) })
		},
	}
	cmd.Flags().StringVar(&file, "file", "roster.yml", "roster YAML file")
	return cmd
}

func loadCmd() *cobra.Command {
	var (
		projectID uint64
		week      string
	)
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Print the weekly allocation of a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			selected := services.WeekAt(time.Now())
			if week != "" {
				parsed, err := time.ParseInLocation(constants.DateLayout, week, time.UTC)
				if err != nil {
					return fmt.Errorf("invalid --week %q, expected YYYY-MM-DD", week)
				}
				selected = services.WeekOfDate(parsed)
			}

			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			actorID, err := a.actor(cmd.Context(), viper.GetString("as"))
			if err != nil {
				return err
			}
			load, err := a.schedule.WeeklyLoad(cmd.Context(), actorID, projectID, selected)
			if err != nil {
				return err
			}

			names, err := a.usernames(cmd.Context(), actorID)
			if err != nil {
				return err
			}
			return printJSONOrTable(cmd.OutOrStdout(), load, func(w io.Writer) { renderLoad(w, *load, names) })
		},
	}
	cmd.Flags().Uint64Var(&projectID, "project", 0, "project id")
	cmd.Flags().StringVar(&week, "week", "", "any day of the week, YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func riskCmd() *cobra.Command {
	var userID uint64
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Print burnout risk for a user, or for the whole organization without --user",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.close()

			actorID, err := a.actor(cmd.Context(), viper.GetString("as"))
			if err != nil {
				return err
			}
			now := time.Now().UTC()

			if userID == 0 {
				rows, err := a.wellbeing.TeamRisk(cmd.Context(), actorID, now)
				if err != nil {
					return err
				}
				return printJSONOrTable(cmd.OutOrStdout(), rows, func(w io.Writer) { renderTeamRisk(w, rows) })
			}

			report, err := a.wellbeing.Risk(cmd.Context(), actorID, userID, now)
			if err != nil {
				return err
			}
			return printJSONOrTable(cmd.OutOrStdout(), report, func(w io.Writer) { renderRisk(w, *report) })
		},
	}
	cmd.Flags().Uint64Var(&userID, "user", 0, "user id")
	return cmd
}

// usernames maps the user IDs of the actor's organization to usernames.
func (a *app) usernames(ctx context.Context, actorID uint64) (map[uint64]string, error) {
	actor, err := a.users.FindByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	users, err := a.users.ListByOrganization(ctx, actor.OrganizationID)
	if err != nil {
		return nil, err
	}
	names := make(map[uint64]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Username
	}
	return names, nil
}
