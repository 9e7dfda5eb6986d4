package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Theovanstratum1953/montecarlo/internal/input"
	"github.com/Theovanstratum1953/montecarlo/internal/report"
	"github.com/Theovanstratum1953/montecarlo/internal/simulation"
)

var forecastFlags struct {
	minItems  int
	maxItems  int
	pulse     string
	pulseFile string
	scenario  string
	trials    int
	horizon   int
	levels    string
	seed      int64
	seeded    bool
	out       string
	open      bool
}

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Pre-project delivery forecast from a backlog range",
	Long: `Answers "how many periods until the backlog is done, and with what
confidence?" by drawing a scope from [min,max] per trial and resampling the
throughput history until the scope is reached.

Example:
  montecarlo forecast --min 12 --max 17 --pulse "6,5,4,6,3,6,5,4,7"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pulse, scope, cfg, err := forecastInputs(cmd)
		if err != nil {
			return err
		}

		history, err := simulation.NewHistory(pulse)
		if err != nil {
			return err
		}

		engine := simulation.NewEngine(history, cfg)
		if forecastFlags.seeded {
			engine.SetSeed(forecastFlags.seed)
		}

		res, err := engine.RunDeliveryForecast(scope)
		if err != nil {
			return err
		}
		log.Info().Str("status", string(res.Status)).Int("trials", res.Trials).Msg("Delivery forecast completed")

		markdown := report.ForecastMarkdown(res, pulse)
		fmt.Fprintln(cmd.OutOrStdout(), markdown)
		return emitReport(markdown, forecastFlags.out, forecastFlags.open)
	},
}

// forecastInputs resolves the scope, pulse and simulation config from flags
// and an optional scenario file. Explicit flags win over scenario values.
func forecastInputs(cmd *cobra.Command) ([]int, simulation.ScopeRange, simulation.Config, error) {
	cfg := simulation.DefaultConfig()
	cfg.Trials = forecastFlags.trials
	cfg.MaxHorizon = forecastFlags.horizon
	scope := simulation.ScopeRange{Min: forecastFlags.minItems, Max: forecastFlags.maxItems}

	var pulse []int
	var err error
	switch {
	case forecastFlags.scenario != "":
		sc, err := input.LoadScenario(forecastFlags.scenario)
		if err != nil {
			return nil, scope, cfg, err
		}
		if sc.Mode != "forecast" {
			return nil, scope, cfg, fmt.Errorf("scenario mode %q, expected \"forecast\"", sc.Mode)
		}
		pulse = sc.Throughput
		if !cmd.Flags().Changed("min") {
			scope.Min = sc.ScopeMin
		}
		if !cmd.Flags().Changed("max") {
			scope.Max = sc.ScopeMax
		}
		if sc.Trials > 0 && !cmd.Flags().Changed("trials") {
			cfg.Trials = sc.Trials
		}
		if sc.Horizon > 0 && !cmd.Flags().Changed("horizon") {
			cfg.MaxHorizon = sc.Horizon
		}
	case forecastFlags.pulseFile != "":
		pulse, err = input.LoadPulseFile(forecastFlags.pulseFile)
		if err != nil {
			return nil, scope, cfg, err
		}
	default:
		pulse, err = input.ParsePulse(forecastFlags.pulse)
		if err != nil {
			return nil, scope, cfg, err
		}
	}

	if forecastFlags.levels != "" {
		cfg.ForecastLevels, err = parseLevels(forecastFlags.levels)
		if err != nil {
			return nil, scope, cfg, err
		}
	}
	return pulse, scope, cfg, nil
}

func init() {
	f := forecastCmd.Flags()
	f.IntVar(&forecastFlags.minItems, "min", 0, "best-case backlog size (items)")
	f.IntVar(&forecastFlags.maxItems, "max", 0, "worst-case backlog size (items)")
	f.StringVar(&forecastFlags.pulse, "pulse", "", "throughput history as a comma list, e.g. \"6,5,4,6,3\"")
	f.StringVar(&forecastFlags.pulseFile, "pulse-file", "", "single-column CSV with throughput per period")
	f.StringVar(&forecastFlags.scenario, "scenario", "", "JSON scenario file (schema-validated)")
	f.IntVar(&forecastFlags.trials, "trials", 10000, "simulation trial count")
	f.IntVar(&forecastFlags.horizon, "horizon", 520, "hard cap on periods per trial")
	f.StringVar(&forecastFlags.levels, "levels", "", "confidence levels to report, e.g. \"50,85,95\"")
	f.Int64Var(&forecastFlags.seed, "seed", 0, "fix the random seed for reproducible runs")
	f.StringVar(&forecastFlags.out, "report", "", "write an HTML report to this path")
	f.BoolVar(&forecastFlags.open, "open", false, "open the written report in the browser")

	forecastCmd.PreRun = func(cmd *cobra.Command, args []string) {
		forecastFlags.seeded = cmd.Flags().Changed("seed")
	}
	rootCmd.AddCommand(forecastCmd)
}
