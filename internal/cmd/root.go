package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrhapile/skindx/internal/config"
	"github.com/mrhapile/skindx/internal/otel"
)

// resolvedVersion returns Version unless it is "dev" and Go build info
// carries a real module version.
func resolvedVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

var tracer = otel.Tracer("github.com/mrhapile/skindx/internal/cmd")

var (
	otelShutdown func(context.Context) error

	// Version info injected via ldflags at build time
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	// Global flags
	cfgFile       string
	rulesFile     string
	verbose       bool
	logLevel      string
	logFormat     string
	otelFlag      bool
	outputFormat  string
	showTree      bool
	showTrace     bool
	noInteractive bool

	// cfg is resolved in PersistentPreRunE.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "skindx",
	Short: "Forward-chaining skin diagnosis expert system",
	Long: `skindx derives skin conditions from observed symptoms and the
treatments in use, by forward chaining over a fixed rule base.

Run without a subcommand to see the demo case and, optionally, pick
symptoms from a numbered menu.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()

		c, err := config.Load()
		if err != nil {
			return err
		}
		cfg = c

		shutdown, err := otel.Setup("skindx", resolvedVersion(), cfg.OtelEnabled)
		if err != nil {
			return fmt.Errorf("initializing OpenTelemetry: %w", err)
		}
		otelShutdown = shutdown
		return nil
	},
	RunE: runDemo,
}

func setupLogging() {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Logs go to stderr so stdout stays clean for reports and JSON.
	if logFormat == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			With().
			Timestamp().
			Logger()
	}

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./skindx.config.yaml or ~/.skindx/skindx.config.yaml)")
	pf.StringVar(&rulesFile, "rules", "", "knowledge base YAML file (default: built-in skin rules)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVar(&logFormat, "log-format", "console", "log format (console, json)")
	pf.BoolVar(&otelFlag, "otel", false, "enable OpenTelemetry (traces and metrics to stdout)")
	pf.StringVarP(&outputFormat, "output", "o", config.OutputText, "output format (text, json)")
	pf.BoolVar(&showTree, "tree", true, "print the decision tree")
	pf.BoolVar(&showTrace, "trace", false, "print every inference iteration")

	rootCmd.Flags().BoolVar(&noInteractive, "no-interactive", false, "run the demo case only")

	_ = viper.BindPFlag(config.KeyRulesFile, pf.Lookup("rules"))
	_ = viper.BindPFlag(config.KeyOtelEnabled, pf.Lookup("otel"))
	_ = viper.BindPFlag(config.KeyOutput, pf.Lookup("output"))
	_ = viper.BindPFlag(config.KeyShowTree, pf.Lookup("tree"))
	_ = viper.BindPFlag(config.KeyShowTrace, pf.Lookup("trace"))
	_ = viper.BindPFlag("log_level", pf.Lookup("log-level"))
	_ = viper.BindPFlag("log_format", pf.Lookup("log-format"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home + "/.skindx")
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("skindx.config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv()

	// The file is optional.
	_ = viper.ReadInConfig()
}

// Execute runs the root command and flushes OTel on exit.
func Execute() error {
	err := rootCmd.Execute()
	if otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = otelShutdown(ctx)
	}
	return err
}
