package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"readiness/internal/app"
	"readiness/internal/platform/postgres"
	rconfig "readiness/internal/readiness/config"
	"readiness/internal/readiness/models"
	"readiness/internal/readiness/store/memory"
	pgstore "readiness/internal/readiness/store/postgres"
	"readiness/pkg/platform/tx"
)

func rulesCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Work with rule configuration files",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check <file>",
		Short: "Validate a TOML rules file and summarize it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := rconfig.LoadTOML(args[0])
			if err != nil {
				return err
			}
			renderRules(cmd, rules)
			return nil
		},
	})
	return cmd
}

func renderRules(cmd *cobra.Command, r *rconfig.Rules) {
	w := cmd.OutOrStdout()
	priority := make([]string, 0, len(r.Documents.Priority))
	for _, d := range r.Documents.Priority {
		priority = append(priority, string(d))
	}
	composites := make([]string, 0, len(r.Dependencies))
	for k := range r.Dependencies {
		composites = append(composites, k)
	}
	sort.Strings(composites)

	fmt.Fprintf(w, "Rules version %s\n", r.Version)
	fmt.Fprintf(w, "  priority:       %s\n", strings.Join(priority, " > "))
	fmt.Fprintf(w, "  cross document: %s\n", orDash(string(r.Documents.Cross)))
	fmt.Fprintf(w, "  thresholds:     control +%dd, warning %dd\n", r.Thresholds.ControlExtensionDays, r.Thresholds.WarningDays)
	fmt.Fprintf(w, "  conditions:     %d\n", len(r.Conditions))
	fmt.Fprintf(w, "  composites:     %s\n", orDash(strings.Join(composites, ", ")))
	fmt.Fprintf(w, "  seed rules:     %d\n", len(r.Seed))
	fmt.Fprintln(w, color.New(color.FgHiGreen).Sprint("OK"))
}

func migrateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := g.databaseURL()
			if err != nil {
				return err
			}
			if err := postgres.Migrate(url, g.newLogger(cmd.ErrOrStderr())); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			return nil
		},
	}
}

func seedCmd(g *globals) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "seed <fixture>",
		Short: "Load a JSON fixture into the database",
		Long: `Load a JSON fixture into the database in one transaction. The rule
configuration is replaced; people and records are upserted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := g.databaseURL()
			if err != nil {
				return err
			}
			f, err := memory.ReadFixture(args[0])
			if err != nil {
				return err
			}
			if migrate {
				if err := postgres.Migrate(url, g.newLogger(cmd.ErrOrStderr())); err != nil {
					return err
				}
			}

			cfg, err := g.resolve()
			if err != nil {
				return err
			}
			cfg.Database.URL = url
			db, err := postgres.Open(cmd.Context(), cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := seed(cmd.Context(), db, f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d people, %d rules, %d records\n", len(f.People), len(f.Rules), len(f.Records))

			rules, err := rconfig.LoadOrDefault(cfg.RulesFile)
			if err != nil {
				return err
			}
			// The seed is committed; a stale cache only delays it, so warn.
			if err := app.InvalidateConfigCache(cmd.Context(), db, cfg, rules, g.newLogger(cmd.ErrOrStderr())); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %v\n", color.YellowString("warning:"), err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply migrations before seeding")
	return cmd
}

// databaseURL returns the database URL from --database or the environment.
func (g *globals) databaseURL() (string, error) {
	if g.database != "" {
		return g.database, nil
	}
	cfg, err := g.resolve()
	if err != nil {
		return "", err
	}
	if cfg.Database.URL == "" {
		return "", errors.New("database URL is required: pass --database or set READINESS_DATABASE_URL")
	}
	return cfg.Database.URL, nil
}

// seed writes f through the Postgres store. The store's own transactions
// join the outer one, so a failure leaves the database untouched.
func seed(ctx context.Context, db *sql.DB, f memory.Fixture) error {
	store := pgstore.New(db)
	return tx.RunInTx(ctx, db, func(ctx context.Context) error {
		if err := store.ReplaceConfig(ctx, models.Snapshot{Rules: f.Rules, Mappings: f.Mappings, Equipment: f.Equipment}); err != nil {
			return err
		}
		for _, p := range f.People {
			if err := store.SavePerson(ctx, p); err != nil {
				return err
			}
		}
		for _, r := range f.Records {
			if err := store.UpsertRecord(ctx, r); err != nil {
				return fmt.Errorf("seed record %s/%s: %w", r.PersonID, r.Requirement, err)
			}
		}
		for _, c := range f.Certifications {
			if err := store.AddCertification(ctx, c); err != nil {
				return err
			}
		}
		for _, a := range f.AnnualChecks {
			if err := store.AddAnnualCheck(ctx, a); err != nil {
				return err
			}
		}
		return nil
	})
}
