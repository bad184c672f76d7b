package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"healthlog/internal/domain"
)

// NewSummaryCmd creates the summary command.
func NewSummaryCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show current weight, BMI, water intake and latest readings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.open(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = svc.close() }()

			sum := svc.profile.Summary(cmd.Context())
			out := cmd.OutOrStdout()
			if !sum.SetupComplete {
				fmt.Fprintln(out, "Setup not completed.")
			}
			fmt.Fprintf(out, "Current weight: %s\n", optional(sum.CurrentWeightKg, func(v float64) string { return fmt.Sprintf("%.1f kg", v) }))
			fmt.Fprintf(out, "BMI:            %s\n", optional(sum.BMI, func(v float64) string { return fmt.Sprintf("%.1f", v) }))
			fmt.Fprintf(out, "Water intake:   %s\n", optional(sum.WaterLiters, func(v float64) string { return fmt.Sprintf("%.1f L/day", v) }))
			if r := sum.LatestGlucose; r != nil {
				fmt.Fprintf(out, "Last glucose:   %s %s (%s %s, %s)\n",
					formatNumber(r.Value), domain.DisplayGlucoseUnit(r.Unit), r.Date, r.Time, r.Type.Label())
			} else {
				fmt.Fprintln(out, "Last glucose:   no data")
			}
			if r := sum.LatestWeight; r != nil {
				fmt.Fprintf(out, "Last weigh-in:  %s morning %s, evening %s\n", r.Date, formatKg(r.Morning), formatKg(r.Evening))
			} else {
				fmt.Fprintln(out, "Last weigh-in:  no data")
			}
			return nil
		},
	}
}
