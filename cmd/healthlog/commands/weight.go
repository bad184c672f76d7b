package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"healthlog/internal/app"
	"healthlog/internal/domain"
)

// NewWeightCmd creates the weight command group.
func NewWeightCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "weight",
		Aliases: []string{"w"},
		Short:   "Record and review morning/evening weigh-ins",
	}
	cmd.AddCommand(
		newWeightAddCmd(g),
		newWeightEditCmd(g),
		newWeightRmCmd(g),
		newWeightLsCmd(g),
	)
	return cmd
}

func bindWeightFlags(cmd *cobra.Command, form *domain.WeightForm) {
	cmd.Flags().StringVar(&form.Date, "date", "", "date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&form.Morning, "morning", "m", "", "morning weight in kg")
	cmd.Flags().StringVarP(&form.Evening, "evening", "e", "", "evening weight in kg")
}

func newWeightAddCmd(g *globalOptions) *cobra.Command {
	var form domain.WeightForm

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a weigh-in",
		Long: `Record a morning and/or evening weight. If the date already has a
record, the given values are merged into it and the others are kept.

Examples:
  healthlog weight add --morning 80.4
  healthlog weight add --date 2026-01-14 --evening 81,2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.open(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = svc.close() }()

			if form.Date == "" {
				form.Date = svc.weight.Today()
			}
			rec, merged, err := svc.weight.Create(cmd.Context(), form)
			if err != nil {
				return err
			}
			verb := "Added"
			if merged {
				verb = "Updated existing"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s weigh-in for %s: morning %s, evening %s [%s]\n",
				verb, rec.Date, formatKg(rec.Morning), formatKg(rec.Evening), rec.ID)
			return nil
		},
	}
	bindWeightFlags(cmd, &form)
	return cmd
}

func newWeightEditCmd(g *globalOptions) *cobra.Command {
	var form domain.WeightForm

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the date or weights of a weigh-in",
		Long: `Edit an existing weigh-in. Flags that are not given keep their
current value; pass an empty value (--evening "") to clear a weight.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := domain.RecordID(args[0])

			svc, err := g.open(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = svc.close() }()

			cur, err := svc.weight.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("weigh-in %s: %w", id, err)
			}
			flags := cmd.Flags()
			if !flags.Changed("date") {
				form.Date = cur.Date
			}
			if !flags.Changed("morning") && cur.Morning != nil {
				form.Morning = formatNumber(*cur.Morning)
			}
			if !flags.Changed("evening") && cur.Evening != nil {
				form.Evening = formatNumber(*cur.Evening)
			}

			rec, err := svc.weight.Update(ctx, id, form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s morning %s, evening %s\n",
				rec.ID, rec.Date, formatKg(rec.Morning), formatKg(rec.Evening))
			return nil
		},
	}
	bindWeightFlags(cmd, &form)
	return cmd
}

func newWeightRmCmd(g *globalOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a weigh-in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.open(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = svc.close() }()

			id := domain.RecordID(args[0])
			if _, err := svc.weight.Get(cmd.Context(), id); err != nil {
				return fmt.Errorf("weigh-in %s: %w", id, err)
			}
			removed, err := svc.weight.Delete(cmd.Context(), id, promptConfirmer(cmd, yes))
			if err != nil {
				return err
			}
			return reportRemoval(cmd, id, removed)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}

func newWeightLsCmd(g *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List recent weigh-ins with differentials, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.open(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = svc.close() }()

			stats := svc.stats.RecentWeight(cmd.Context(), limit)
			if len(stats) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No weigh-ins yet.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), weightTable(stats))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", app.DefaultWeightWindow, "number of weigh-ins to show (0 for all)")
	return cmd
}

func weightTable(stats []domain.WeightStat) string {
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			s.Date, formatKg(s.Morning), formatKg(s.Evening),
			formatDiff(s.DailyDiff), formatDiff(s.DayDiff), formatDiff(s.NightDiff),
			string(s.ID),
		})
	}
	headers := []string{"Date", "Morning", "Evening", "Daily", "Day", "Night", "ID"}
	return renderTable("Weight (kg)", headers, rows, 3, 4, 5)
}
