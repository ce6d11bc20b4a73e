package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"calculators/internal/engines/arithmetic"
	calculatecalories "calculators/internal/engines/fitness/calculate-calories"
	calculatepremium "calculators/internal/engines/insurance/calculate-premium"
	savequote "calculators/internal/engines/insurance/save-quote"
	"calculators/internal/models"
)

func newArithmeticCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "arithmetic <add|subtract|multiply|divide> <a> <b>",
		Short: "Apply one of the four basic operations",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("operand a: %w", err)
			}
			b, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("operand b: %w", err)
			}

			ctx, cancel, err := c.app.engineContext(cmd.Context(), arithmetic.TaskType)
			if err != nil {
				return err
			}
			defer cancel()

			out, err := c.app.arithmetic.Execute(ctx, &arithmetic.Input{Operation: args[0], A: a, B: b})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s = %s\n",
				args[1], out.Symbol, args[2], strconv.FormatFloat(out.Result, 'f', -1, 64))
			return nil
		},
	}
}

// premiumFlags binds the six premium fields to flags with the form's defaults.
func premiumFlags(cmd *cobra.Command, in *calculatepremium.Input) {
	f := cmd.Flags()
	f.StringVar(&in.BreakdownCover, "cover", "No cover", "breakdown cover: No cover, Roadside, At home, European")
	f.StringVar(&in.WindscreenRepair, "windscreen", "No", "windscreen repair: Yes or No")
	f.IntVar(&in.NumberOfAccidents, "accidents", 0, "number of accidents")
	f.IntVar(&in.TotalMileage, "mileage", 0, "annual mileage")
	f.Float64Var(&in.EstimatedValue, "value", 0, "estimated vehicle value in pounds")
	f.StringVar(&in.ParkingLocation, "parking", "", "parking location, e.g. Garage or Public Place")
}

func newPremiumCommand(c *cli) *cobra.Command {
	var in calculatepremium.Input
	cmd := &cobra.Command{
		Use:   "premium",
		Short: "Calculate a motor insurance premium",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel, err := c.app.engineContext(cmd.Context(), calculatepremium.TaskType)
			if err != nil {
				return err
			}
			defer cancel()

			out, err := c.app.premium.Execute(ctx, &in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Premium: £%s\n", out.Premium.StringFixed(2))
			return nil
		},
	}
	premiumFlags(cmd, &in)
	return cmd
}

func newQuoteCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Save and retrieve premium quotations",
		Long: "Save and retrieve premium quotations. With the memory quote store a quote " +
			"lives only as long as the process; configure store.quotes: redis to keep them.",
	}
	cmd.AddCommand(newQuoteSaveCommand(c), newQuoteRetrieveCommand(c))
	return cmd
}

func newQuoteSaveCommand(c *cli) *cobra.Command {
	var (
		in    savequote.Input
		start string
	)
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Price a request and save it under an identification number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if start != "" {
				t, err := time.Parse(dateLayout, start)
				if err != nil {
					return fmt.Errorf("start of policy must be YYYY-MM-DD: %w", err)
				}
				in.StartOfPolicy = t
			}

			ctx, cancel, err := c.app.engineContext(cmd.Context(), savequote.TaskType)
			if err != nil {
				return err
			}
			defer cancel()

			out, err := c.app.quotes.Execute(ctx, &in)
			if err != nil {
				return err
			}
			text, err := c.app.renderer.RenderQuoteSaved(&out.Quote)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
	premiumFlags(cmd, &in.Input)
	cmd.Flags().StringVar(&in.UserID, "user", "", "broker profile user id")
	cmd.Flags().StringVar(&in.RegistrationNumber, "registration", "", "vehicle registration number")
	cmd.Flags().StringVar(&start, "start", "", "start of policy, YYYY-MM-DD")
	return cmd
}

func newQuoteRetrieveCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "retrieve <identification-number>",
		Short: "Show a saved quotation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("identification number must be a whole number: %w", err)
			}

			ctx, cancel, err := c.app.engineContext(cmd.Context(), savequote.TaskType)
			if err != nil {
				return err
			}
			defer cancel()

			q, err := c.app.quotes.Retrieve(ctx, id)
			if err != nil {
				return err
			}
			text, err := c.app.renderer.RenderQuoteDetails(q)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func newCaloriesCommand(c *cli) *cobra.Command {
	var in calculatecalories.Input
	cmd := &cobra.Command{
		Use:   "calories",
		Short: "Estimate calories burned swimming",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel, err := c.app.engineContext(cmd.Context(), calculatecalories.TaskType)
			if err != nil {
				return err
			}
			defer cancel()

			out, err := c.app.calories.Execute(ctx, &in)
			if err != nil {
				return err
			}
			text, err := c.app.renderer.RenderCalories(out.Result, calculatecalories.NewFormatter(c.app.calorieConfig))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)

			earlier, err := c.app.calories.History(ctx, out.Result.Request)
			if err != nil {
				return err
			}
			if n := priorRuns(earlier, out.ObservationID); n > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Same activity calculated %d time(s) before\n", n)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.SwimmingStyle, "style", "", "swimming style, see 'calc calories styles'")
	f.Float64Var(&in.DurationMin, "duration", 0, "duration in minutes")
	f.Float64Var(&in.BodyWeightKg, "weight", 0, "body weight in kg")

	cmd.AddCommand(&cobra.Command{
		Use:   "styles",
		Short: "List swimming styles and their MET values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range calculatecalories.Styles {
				fmt.Fprintf(cmd.OutOrStdout(), "%-32s %5.1f\n", s.Name, s.MET)
			}
			return nil
		},
	})
	return cmd
}

// priorRuns counts history entries other than the observation recorded by this
// call. recordedID is empty when nothing was recorded.
func priorRuns(history []models.CalorieObservation, recordedID string) int {
	n := 0
	for _, obs := range history {
		if recordedID == "" || obs.ID != recordedID {
			n++
		}
	}
	return n
}
