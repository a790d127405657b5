package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the registered commands",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		out := cmd.OutOrStdout()
		for _, name := range app.Engine.Commands() {
			fmt.Fprintln(out, name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}
