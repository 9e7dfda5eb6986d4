package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Theovanstratum1953/montecarlo/internal/input"
	"github.com/Theovanstratum1953/montecarlo/internal/report"
	"github.com/Theovanstratum1953/montecarlo/internal/simulation"
)

var horizonFlags struct {
	totalScope  int
	actuals     string
	actualsFile string
	pulse       string
	pulseFile   string
	scenario    string
	trials      int
	horizon     int
	coneLevels  string
	seed        int64
	seeded      bool
	out         string
	open        bool
}

var horizonCmd = &cobra.Command{
	Use:   "horizon",
	Short: "Active-project risk horizon (cone of uncertainty)",
	Long: `Answers "when will the remaining scope finish?" for a running project.
The per-period actuals are resampled together with the historical pulse, so
the cone narrows as real progress accumulates.

Example:
  montecarlo horizon --total 100 --actuals "2,5,4" --pulse "2,5,4,6,4,3,5"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pulse, actuals, total, cfg, err := horizonInputs(cmd)
		if err != nil {
			return err
		}

		pool := input.CombinePool(pulse, actuals)
		history, err := simulation.NewHistory(pool)
		if err != nil {
			return err
		}

		completed, elapsed := input.SumActuals(actuals)
		snap := simulation.ProgressSnapshot{
			TotalScope:     total,
			Completed:      completed,
			PeriodsElapsed: elapsed,
		}

		engine := simulation.NewEngine(history, cfg)
		if horizonFlags.seeded {
			engine.SetSeed(horizonFlags.seed)
		}

		res, err := engine.RunRiskHorizon(snap)
		if err != nil {
			return err
		}
		log.Info().Str("status", string(res.Status)).Int("trials", res.Trials).Int("horizon", res.Horizon).Msg("Risk horizon completed")

		markdown := report.HorizonMarkdown(res, pool)
		fmt.Fprintln(cmd.OutOrStdout(), markdown)
		return emitReport(markdown, horizonFlags.out, horizonFlags.open)
	},
}

func horizonInputs(cmd *cobra.Command) (pulse, actuals []int, total int, cfg simulation.Config, err error) {
	cfg = simulation.DefaultConfig()
	cfg.Trials = horizonFlags.trials
	cfg.MaxHorizon = horizonFlags.horizon
	total = horizonFlags.totalScope

	switch {
	case horizonFlags.scenario != "":
		var sc *input.Scenario
		sc, err = input.LoadScenario(horizonFlags.scenario)
		if err != nil {
			return
		}
		if sc.Mode != "horizon" {
			err = fmt.Errorf("scenario mode %q, expected \"horizon\"", sc.Mode)
			return
		}
		pulse = sc.Throughput
		actuals = sc.Actuals
		if !cmd.Flags().Changed("total") {
			total = sc.TotalScope
		}
		if sc.Trials > 0 && !cmd.Flags().Changed("trials") {
			cfg.Trials = sc.Trials
		}
		if sc.Horizon > 0 && !cmd.Flags().Changed("horizon") {
			cfg.MaxHorizon = sc.Horizon
		}
	default:
		if horizonFlags.pulseFile != "" {
			pulse, err = input.LoadPulseFile(horizonFlags.pulseFile)
		} else {
			pulse, err = input.ParsePulse(horizonFlags.pulse)
		}
		if err != nil {
			return
		}
		if horizonFlags.actualsFile != "" {
			actuals, err = input.LoadPulseFile(horizonFlags.actualsFile)
			if err != nil {
				return
			}
		} else if horizonFlags.actuals != "" {
			actuals, err = input.ParsePulse(horizonFlags.actuals)
			if err != nil {
				return
			}
		}
	}

	if horizonFlags.coneLevels != "" {
		cfg.ConeLevels, err = parseLevels(horizonFlags.coneLevels)
	}
	return
}

func init() {
	f := horizonCmd.Flags()
	f.IntVar(&horizonFlags.totalScope, "total", 100, "total items in the project")
	f.StringVar(&horizonFlags.actuals, "actuals", "", "items completed in each elapsed period, e.g. \"2,5,4\"")
	f.StringVar(&horizonFlags.actualsFile, "actuals-file", "", "single-column CSV with per-period actuals")
	f.StringVar(&horizonFlags.pulse, "pulse", "", "historical throughput as a comma list")
	f.StringVar(&horizonFlags.pulseFile, "pulse-file", "", "single-column CSV with throughput per period")
	f.StringVar(&horizonFlags.scenario, "scenario", "", "JSON scenario file (schema-validated)")
	f.IntVar(&horizonFlags.trials, "trials", 10000, "simulation trial count")
	f.IntVar(&horizonFlags.horizon, "horizon", 30, "future periods to project")
	f.StringVar(&horizonFlags.coneLevels, "cone", "", "cone percentile levels, e.g. \"10,50,90\"")
	f.Int64Var(&horizonFlags.seed, "seed", 0, "fix the random seed for reproducible runs")
	f.StringVar(&horizonFlags.out, "report", "", "write an HTML report to this path")
	f.BoolVar(&horizonFlags.open, "open", false, "open the written report in the browser")

	horizonCmd.PreRun = func(cmd *cobra.Command, args []string) {
		horizonFlags.seeded = cmd.Flags().Changed("seed")
	}
	rootCmd.AddCommand(horizonCmd)
}
