package commands

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Theovanstratum1953/montecarlo/internal/config"
	"github.com/Theovanstratum1953/montecarlo/internal/logging"
	"github.com/Theovanstratum1953/montecarlo/internal/mcp"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "montecarlo",
	Short: "Probabilistic delivery forecasting via Monte-Carlo simulation",
	Long: `A probabilistic delivery suite that forecasts project completion by resampling
observed throughput history instead of trusting deterministic estimates.

Run without a subcommand to start the MCP server on Stdio, or use the
'forecast' and 'horizon' subcommands directly from the shell.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("montecarlo starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		log.Info().Msg("MCP Server starting Stdio loop")
		server := mcp.NewServer(cfg)
		return server.Serve()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
