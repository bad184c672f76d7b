package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"healthlog/internal/app"
	"healthlog/internal/domain"
)

// NewGlucoseCmd creates the glucose command group.
func NewGlucoseCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "glucose",
		Aliases: []string{"g"},
		Short:   "Record and review blood glucose readings",
	}
	cmd.AddCommand(
		newGlucoseAddCmd(g),
		newGlucoseEditCmd(g),
		newGlucoseRmCmd(g),
		newGlucoseLsCmd(g),
	)
	return cmd
}

func bindGlucoseFlags(cmd *cobra.Command, form *domain.GlucoseForm) {
	cmd.Flags().StringVar(&form.Time, "time", "", "time of the reading, HH:MM (default now)")
	cmd.Flags().StringVar(&form.Type, "type", string(domain.GlucoseFasting), "fasting, before-meal or after-meal")
	cmd.Flags().StringVar(&form.Notes, "notes", "", "free-text notes")
}

func newGlucoseAddCmd(g *globalOptions) *cobra.Command {
	var form domain.GlucoseForm

	cmd := &cobra.Command{
		Use:   "add <value>",
		Short: "Record a reading for today",
		Long: `Record a blood glucose reading dated today, in the unit selected in
the profile.

Examples:
  healthlog glucose add 5.8
  healthlog glucose add 7,2 --type after-meal --time 13:30 --notes pasta`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form.Value = args[0]
			if form.Time == "" {
				form.Time = time.Now().Format("15:04")
			}

			svc, err := g.open(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = svc.close() }()

			rec, err := svc.glucose.Create(cmd.Context(), form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s (%s) at %s %s [%s]\n",
				formatNumber(rec.Value), domain.DisplayGlucoseUnit(rec.Unit), rec.Type.Label(), rec.Date, rec.Time, rec.ID)
			return nil
		},
	}
	bindGlucoseFlags(cmd, &form)
	return cmd
}

func newGlucoseEditCmd(g *globalOptions) *cobra.Command {
	var form domain.GlucoseForm

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change value, time, type or notes of a reading",
		Long: `Edit an existing reading. Flags that are not given keep their
current value; the date and unit never change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := domain.RecordID(args[0])

			svc, err := g.open(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = svc.close() }()

			cur, err := svc.glucose.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("reading %s: %w", id, err)
			}
			flags := cmd.Flags()
			if !flags.Changed("value") {
				form.Value = formatNumber(cur.Value)
			}
			if !flags.Changed("time") {
				form.Time = cur.Time
			}
			if !flags.Changed("type") {
				form.Type = string(cur.Type)
			}
			if !flags.Changed("notes") {
				form.Notes = cur.Notes
			}

			rec, err := svc.glucose.Update(ctx, id, form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s %s (%s) at %s %s\n",
				rec.ID, formatNumber(rec.Value), domain.DisplayGlucoseUnit(rec.Unit), rec.Type.Label(), rec.Date, rec.Time)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Value, "value", "", "glucose value")
	bindGlucoseFlags(cmd, &form)
	return cmd
}

func newGlucoseRmCmd(g *globalOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a reading",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.open(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = svc.close() }()

			id := domain.RecordID(args[0])
			if _, err := svc.glucose.Get(cmd.Context(), id); err != nil {
				return fmt.Errorf("reading %s: %w", id, err)
			}
			removed, err := svc.glucose.Delete(cmd.Context(), id, promptConfirmer(cmd, yes))
			if err != nil {
				return err
			}
			return reportRemoval(cmd, id, removed)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}

func newGlucoseLsCmd(g *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List recent readings, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.open(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = svc.close() }()

			recs := svc.stats.RecentGlucose(cmd.Context(), limit)
			if len(recs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No glucose readings yet.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), glucoseTable(recs))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", app.DefaultGlucoseWindow, "number of readings to show (0 for all)")
	return cmd
}

func glucoseTable(recs []domain.GlucoseRecord) string {
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, []string{
			r.Date, r.Time,
			formatNumber(r.Value) + " " + domain.DisplayGlucoseUnit(r.Unit),
			r.Type.Label(), r.Notes, string(r.ID),
		})
	}
	return renderTable("Blood glucose", []string{"Date", "Time", "Value", "Type", "Notes", "ID"}, rows)
}

func reportRemoval(cmd *cobra.Command, id domain.RecordID, removed bool) error {
	if !removed {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
	return nil
}
