package main

import (
	"fmt"
	"os"

	"github.com/aretw0/botcmd/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "botcmd",
	Short: "botcmd runs chat bot commands",
	Long: `botcmd parses and executes chat bot command lines such as "!repeat 3 (!echo hi)".
Without a subcommand it starts the interactive runner.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default: botcmd.yaml, .yml, .toml or .json in the working directory)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides the config file)")
}

// globalOptions reads the persistent flags.
func globalOptions(cmd *cobra.Command) cli.Options {
	configPath, _ := cmd.Flags().GetString("config")
	logLevel, _ := cmd.Flags().GetString("log-level")
	return cli.Options{ConfigPath: configPath, LogLevel: logLevel}
}

// newApp loads the configuration and wires the bot.
func newApp(cmd *cobra.Command) (*cli.App, error) {
	cfg, logger, err := cli.LoadConfig(globalOptions(cmd))
	if err != nil {
		return nil, err
	}
	return cli.NewApp(cmd.Context(), cfg, logger)
}
