package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/botcmd"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of botcmd",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "botcmd version %s\n", strings.TrimSpace(botcmd.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
