package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"healthlog/internal/domain"
)

// NewProfileCmd creates the profile command group.
func NewProfileCmd(g *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change height, weight and glucose unit",
	}
	cmd.AddCommand(newProfileShowCmd(g), newProfileSetCmd(g))
	return cmd
}

func newProfileShowCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.open(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = svc.close() }()

			p, ok := svc.profile.Get(cmd.Context())
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, `Setup not completed. Run "healthlog profile set --height <cm> --weight <kg>".`)
				return nil
			}
			fmt.Fprintf(out, "Height:       %s cm\n", formatNumber(float64(p.HeightCm)))
			fmt.Fprintf(out, "Weight:       %s kg\n", formatNumber(float64(p.WeightKg)))
			fmt.Fprintf(out, "Glucose unit: %s\n", domain.DisplayGlucoseUnit(p.GlucoseUnit))
			return nil
		},
	}
}

func newProfileSetCmd(g *globalOptions) *cobra.Command {
	var form domain.ProfileForm

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save the profile (completes first-run setup)",
		Long: `Save height (cm), weight (kg) and the glucose unit (mmol or mgdl).
Flags that are not given keep their stored value.

Examples:
  healthlog profile set --height 175 --weight 80
  healthlog profile set --unit mgdl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := g.open(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = svc.close() }()

			if cur, ok := svc.profile.Get(ctx); ok {
				flags := cmd.Flags()
				if !flags.Changed("height") && cur.HeightCm > 0 {
					form.Height = formatNumber(float64(cur.HeightCm))
				}
				if !flags.Changed("weight") && cur.WeightKg > 0 {
					form.Weight = formatNumber(float64(cur.WeightKg))
				}
				if !flags.Changed("unit") {
					form.GlucoseUnit = string(cur.GlucoseUnit)
				}
			}

			p, err := svc.profile.Save(ctx, form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved profile: %s cm, %s kg, %s\n",
				formatNumber(float64(p.HeightCm)), formatNumber(float64(p.WeightKg)), domain.DisplayGlucoseUnit(p.GlucoseUnit))
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Height, "height", "", "height in cm")
	cmd.Flags().StringVar(&form.Weight, "weight", "", "weight in kg")
	cmd.Flags().StringVar(&form.GlucoseUnit, "unit", "mmol", "glucose unit: mmol or mgdl")
	return cmd
}
