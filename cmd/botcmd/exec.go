package main

import (
	"strings"

	"github.com/aretw0/botcmd/internal/cli"
	"github.com/spf13/cobra"
)

var execCmd = &cobra.Command{
	Use:   "exec <command line>",
	Short: "Execute a single command line",
	Long:  `Executes one command line, prints the reply and exits. The words are joined with spaces.`,
	Example: `  botcmd exec '!repeat 2 (!echo hi)'
  botcmd exec --session alice '!get color'`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sessionID, _ := cmd.Flags().GetString("session")
		sender, _ := cmd.Flags().GetString("sender")

		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		return cli.Exec(cmd.Context(), app, sessionID, sender, strings.Join(args, " "), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(execCmd)

	execCmd.Flags().String("session", "console", "Session ID")
	execCmd.Flags().String("sender", "console", "Sender ID used for admin checks")
}
