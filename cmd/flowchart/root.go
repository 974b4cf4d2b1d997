package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/flowchart/pkg/flowchart"
	"github.com/randalmurphal/flowchart/pkg/flowchart/artifact"
	"github.com/randalmurphal/flowchart/pkg/flowchart/config"
)

const envPrefix = "FLOWCHART"

// app holds what every subcommand needs once flags and config are resolved.
type app struct {
	configPath string
	envFile    string
	storePath  string
	logLevel   string

	settings config.Settings
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "flowchart",
		Short:         "Compile assistant replies into process-flow graphs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (.yaml, .yml or .json)")
	flags.StringVar(&a.envFile, "env-file", ".env", "dotenv file with "+envPrefix+"_ variables")
	flags.StringVar(&a.storePath, "store", "", "SQLite artifact store path (overrides config)")
	flags.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	root.AddCommand(
		newCompileCmd(a),
		newValidateCmd(a),
		newMermaidCmd(a),
		newSaveCmd(a),
		newShowCmd(a),
		newListCmd(a),
	)
	return root
}

// setup layers config file, environment and flags into validated settings
// and builds the logger.
func (a *app) setup(logOut io.Writer) error {
	cfg := config.New(nil)
	if a.configPath != "" {
		fileCfg, err := config.FromFile(a.configPath)
		if err != nil {
			return err
		}
		cfg = fileCfg
	}

	envCfg, err := config.FromEnv(envPrefix, a.envFile)
	if err != nil {
		return err
	}

	flagValues := map[string]any{}
	if a.storePath != "" {
		flagValues["store_path"] = a.storePath
		flagValues["store_driver"] = config.DriverSQLite
	}
	if a.logLevel != "" {
		flagValues["log_level"] = a.logLevel
	}

	for _, layer := range []config.Config{envCfg, config.New(flagValues)} {
		if cfg, err = cfg.Merge(layer); err != nil {
			return err
		}
	}

	a.settings = config.SettingsFrom(cfg)
	if err := a.settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	opts := &slog.HandlerOptions{Level: a.settings.Level()}
	if a.settings.LogFormat == "json" {
		a.logger = slog.New(slog.NewJSONHandler(logOut, opts))
	} else {
		a.logger = slog.New(slog.NewTextHandler(logOut, opts))
	}
	return nil
}

func (a *app) compiler() *flowchart.Compiler {
	return flowchart.NewCompiler(
		flowchart.WithLogger(a.logger),
		flowchart.WithMetrics(a.settings.Metrics),
		flowchart.WithTracing(a.settings.Tracing),
		flowchart.WithValidateOptions(a.validateOptions()...),
	)
}

func (a *app) validateOptions() []flowchart.ValidateOption {
	if a.settings.UniqueIDs {
		return []flowchart.ValidateOption{flowchart.WithUniqueIDs()}
	}
	return nil
}

func (a *app) artifactOptions() []artifact.Option {
	return []artifact.Option{
		artifact.WithLogger(a.logger),
		artifact.WithValidateOptions(a.validateOptions()...),
	}
}

func (a *app) openStore() (artifact.Store, error) {
	if a.settings.StoreDriver == config.DriverMemory {
		return artifact.NewMemoryStore(), nil
	}
	store, err := artifact.NewSQLiteStore(a.settings.StorePath)
	if err != nil {
		return nil, fmt.Errorf("open artifact store %s: %w", a.settings.StorePath, err)
	}
	return store, nil
}

// readInput reads the named file, or stdin when the name is empty or "-".
func readInput(cmd *cobra.Command, args []string, index int) ([]byte, error) {
	if len(args) <= index || args[index] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(args[index])
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}
