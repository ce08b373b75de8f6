package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"readiness/internal/readiness/models"
	"readiness/internal/readiness/service"
)

func statusCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "status <person-id>",
		Short: "Show the full readiness of one person",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := models.ParsePersonID(args[0])
			if err != nil {
				return err
			}
			ctx, err := g.requestContext(cmd.Context())
			if err != nil {
				return err
			}
			s, err := g.open(ctx, cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			r, err := s.service.Evaluate(ctx, id)
			if err != nil {
				return err
			}
			renderReadiness(cmd.OutOrStdout(), r)
			return nil
		},
	}
}

func dashboardCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show every person's overall status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := g.requestContext(cmd.Context())
			if err != nil {
				return err
			}
			s, err := g.open(ctx, cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			d, err := s.service.Dashboard(ctx)
			if err != nil {
				return err
			}
			renderDashboard(cmd.OutOrStdout(), d)
			return nil
		},
	}
}

func deadlinesCmd(g *globals) *cobra.Command {
	var publish bool

	cmd := &cobra.Command{
		Use:   "deadlines",
		Short: "List expired and soon-expiring requirements",
		Long: `List expired and soon-expiring requirements across all people, most
overdue first. With --publish the notices are also sent to Kafka.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := g.requestContext(cmd.Context())
			if err != nil {
				return err
			}
			s, err := g.open(ctx, cmd, publish)
			if err != nil {
				return err
			}
			defer s.Close()

			var notices []models.DeadlineNotice
			if publish {
				notices, err = s.service.ScanDeadlines(ctx)
			} else {
				notices, err = s.service.Deadlines(ctx)
			}
			if err != nil && notices == nil {
				return err
			}
			renderNotices(cmd.OutOrStdout(), notices)
			if err != nil {
				return err
			}
			if publish {
				fmt.Fprintf(cmd.OutOrStdout(), "\nPublished %d notices to %s\n", len(notices), s.cfg.Kafka.Topic)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&publish, "publish", false, "publish notices to the configured Kafka topic")
	return cmd
}

func recordCmd(g *globals) *cobra.Command {
	var (
		requirement string
		family      string
		equipment   int64
		date        string
		controlDate string
	)

	cmd := &cobra.Command{
		Use:   "record <person-id>",
		Short: "Record a completed training or control event",
		Long: `Record a completed training or control event and show the recomputed
readiness. A date left out keeps the stored value.

Example:
  readinessctl record 6f1c2a3e-... --requirement day_simple --equipment 101 --date 20.05.2025`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := models.ParsePersonID(args[0])
			if err != nil {
				return err
			}
			ctx, err := g.requestContext(cmd.Context())
			if err != nil {
				return err
			}
			s, err := g.open(ctx, cmd, false)
			if err != nil {
				return err
			}
			defer s.Close()

			in := service.RecordInput{
				PersonID:        id,
				Requirement:     requirement,
				Family:          models.Family(family),
				LastDate:        date,
				LastControlDate: controlDate,
			}
			if equipment > 0 {
				in.EquipmentID = models.EquipmentRef(models.EquipmentID(equipment))
			}
			if err := s.service.RecordCompletion(ctx, in); err != nil {
				return err
			}

			r, err := s.service.Evaluate(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s for %s\n\n", requirement, r.Person.Name)
			renderReadiness(cmd.OutOrStdout(), r)
			return nil
		},
	}

	cmd.Flags().StringVar(&requirement, "requirement", "", "requirement key (required)")
	cmd.Flags().StringVar(&family, "family", string(models.FamilyCondition), "condition or syllabus")
	cmd.Flags().Int64Var(&equipment, "equipment", 0, "equipment id; required for condition records")
	cmd.Flags().StringVar(&date, "date", "", "training date (dd.mm.yyyy)")
	cmd.Flags().StringVar(&controlDate, "control-date", "", "control event date (dd.mm.yyyy)")
	_ = cmd.MarkFlagRequired("requirement")
	return cmd
}
