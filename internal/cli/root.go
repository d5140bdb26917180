package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"freemodels/internal/config"
	"freemodels/internal/lister"
)

// flags mirrors the command line. Only flags the user actually set override lower layers.
type flags struct {
	configPath  string
	url         string
	suffix      string
	timeout     int
	logLevel    string
	metricsFile string
}

// buildRootCmd constructs the freemodels command tree writing report lines to stdout
// and diagnostics to stderr.
func buildRootCmd(stdout, stderr io.Writer) *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:   "freemodels",
		Short: "List free-tier models from the OpenRouter catalog",
		Long: "freemodels fetches the model catalog once and prints one line per model whose id\n" +
			"ends with the free-tier suffix:\n\n  - <id> | Tools: <instruct_type>",
		Example:       "  freemodels\n  freemodels --suffix :beta\n  freemodels --config ~/.config/freemodels/config.yaml --log-level debug",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageError{fmt.Errorf("unexpected arguments: %v", args)}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, f)
			if err != nil {
				return err
			}
			logger, err := newLogger(stderr, cfg.LogLevel)
			if err != nil {
				return usageError{err}
			}
			lister.SetLogger(logger)
			return lister.Run(cmd.Context(), cfg, stdout)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error { return usageError{err} })

	fl := root.Flags()
	fl.StringVar(&f.configPath, "config", "", "Config file (.yaml|.yml|.json|.toml); defaults to ~/.config/freemodels/config.*")
	fl.StringVar(&f.url, "url", "", "Catalog endpoint (defaults FREEMODELS_URL or "+config.Default().URL+")")
	fl.StringVar(&f.suffix, "suffix", "", "Id suffix to keep (defaults FREEMODELS_SUFFIX or "+config.Default().Suffix+")")
	fl.IntVar(&f.timeout, "timeout", 0, "Request timeout in seconds, 0 waits indefinitely (defaults FREEMODELS_TIMEOUT)")
	fl.StringVar(&f.logLevel, "log-level", "", "Log level: debug|info|warn|error|off (defaults FREEMODELS_LOG_LEVEL or "+config.DefaultLogLevel+")")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus textfile metrics here after the run (defaults FREEMODELS_METRICS_FILE)")

	// completion command
	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(stdout, true) }})
	completionCmd.AddCommand(&cobra.Command{Use: "powershell", Short: "PowerShell completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenPowerShellCompletionWithDesc(stdout) }})
	root.AddCommand(completionCmd)
	root.CompletionOptions.DisableDefaultCmd = true

	return root
}

// resolveConfig layers defaults < config file < environment < flags.
func resolveConfig(cmd *cobra.Command, f *flags) (config.Config, error) {
	cfg := config.Default()

	path := f.configPath
	if path == "" {
		path = config.Discover()
	}
	if path != "" {
		fileCfg, err := config.Load(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = config.Merge(cfg, fileCfg)
	}
	cfg = config.Merge(cfg, config.FromEnv())

	fl := cmd.Flags()
	var over config.Config
	for _, sf := range []struct {
		name string
		val  string
		dst  *string
	}{
		{"url", f.url, &over.URL},
		{"suffix", f.suffix, &over.Suffix},
		{"log-level", f.logLevel, &over.LogLevel},
		{"metrics-file", f.metricsFile, &over.MetricsFile},
	} {
		if !fl.Changed(sf.name) {
			continue
		}
		if sf.val == "" {
			return cfg, usageError{fmt.Errorf("--%s must not be empty", sf.name)}
		}
		*sf.dst = sf.val
	}
	cfg = config.Merge(cfg, over)
	// an explicit --timeout 0 clears a timeout set by the file or environment
	if fl.Changed("timeout") {
		cfg.TimeoutSeconds = f.timeout
	}
	return cfg, nil
}
