package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"healthlog/internal/app"
)

// NewReportCmd creates the report command.
func NewReportCmd(g *globalOptions) *cobra.Command {
	var (
		glucoseN int
		weightN  int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the summary and recent glucose and weight tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := g.open(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = svc.close() }()

			out := cmd.OutOrStdout()
			sum := svc.profile.Summary(ctx)
			fmt.Fprintln(out, titleStyle.Render("Summary"))
			fmt.Fprintf(out, "Weight %s  BMI %s  Water %s  (%s)\n\n",
				optional(sum.CurrentWeightKg, func(v float64) string { return fmt.Sprintf("%.1f kg", v) }),
				optional(sum.BMI, func(v float64) string { return fmt.Sprintf("%.1f", v) }),
				optional(sum.WaterLiters, func(v float64) string { return fmt.Sprintf("%.1f L", v) }),
				sum.GlucoseUnit,
			)

			if recs := svc.stats.RecentGlucose(ctx, glucoseN); len(recs) > 0 {
				fmt.Fprintln(out, glucoseTable(recs))
			} else {
				fmt.Fprintln(out, "No glucose readings yet.")
			}
			fmt.Fprintln(out)
			if stats := svc.stats.RecentWeight(ctx, weightN); len(stats) > 0 {
				fmt.Fprintln(out, weightTable(stats))
			} else {
				fmt.Fprintln(out, "No weigh-ins yet.")
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&glucoseN, "glucose", app.DefaultGlucoseWindow, "glucose readings to include (0 for all)")
	cmd.Flags().IntVar(&weightN, "weight", app.DefaultWeightWindow, "weigh-ins to include (0 for all)")
	return cmd
}
