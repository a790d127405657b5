package main

import (
	"context"

	"github.com/aretw0/botcmd/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the interactive command prompt",
	Long:  `Reads command lines from standard input and prints the replies. Type 'exit' to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		headless, _ := cmd.Flags().GetBool("headless")
		sessionID, _ := cmd.Flags().GetString("session")
		sender, _ := cmd.Flags().GetString("sender")

		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		sigCtx := cli.NewSignalContext(context.Background())
		defer sigCtx.Cancel()

		return cli.RunREPL(sigCtx, app, cli.REPLOptions{
			Headless:  headless,
			SessionID: sessionID,
			SenderID:  sender,
			Input:     cmd.InOrStdin(),
			Output:    cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("headless", false, "Run in headless mode (no prompts, plain output)")
	runCmd.Flags().String("session", "console", "Session ID")
	runCmd.Flags().String("sender", "console", "Sender ID used for admin checks")

	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
