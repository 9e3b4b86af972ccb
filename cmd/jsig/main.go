package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/dhamidi/jsig/internal/config"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

// options holds the configuration after the config file and the
// persistent flags have been applied.
type options struct {
	configPath string
	verbosity  int
	logFile    string

	config.Config
}

func main() {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "jsig",
		Short:         "Parse and resolve Java generic signatures",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default ./"+config.DefaultFile+")")
	flags.CountVarP(&opts.verbosity, "verbose", "v", "increase log verbosity")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to a file instead of stderr")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newDumpCmd(opts))
	rootCmd.AddCommand(newScanCmd(opts))
	rootCmd.AddCommand(newDiffCmd())
	rootCmd.AddCommand(newGrammarCmd())
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newLSPCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbosity = o.verbosity
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = o.logFile
	}
	o.Config = cfg

	var path *string
	if cfg.LogFile != "" {
		path = &cfg.LogFile
	}
	commonlog.Configure(cfg.Verbosity, path)
	return nil
}
