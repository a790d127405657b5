package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/botcmd/internal/cli"
	"github.com/aretw0/botcmd/pkg/ports"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage persistent sessions",
	Long:  `List, inspect and remove the sessions kept by the configured store.`,
}

var sessionLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List all sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(store ports.SessionStore) error {
			sessions, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("error listing sessions: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, "No sessions found.")
				return nil
			}
			for _, s := range sessions {
				fmt.Fprintln(out, "- "+s)
			}
			return nil
		})
	},
}

var sessionInspectCmd = &cobra.Command{
	Use:   "inspect <session-id>",
	Short: "Print a session as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(store ports.SessionStore) error {
			s, err := store.Load(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("error loading session '%s': %w", args[0], err)
			}
			data, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		})
	},
}

var sessionRmCmd = &cobra.Command{
	Use:   "rm <session-id>",
	Short: "Remove a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(store ports.SessionStore) error {
			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("error removing session '%s': %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session '%s' removed.\n", args[0])
			return nil
		})
	},
}

func withStore(cmd *cobra.Command, fn func(ports.SessionStore) error) error {
	cfg, _, err := cli.LoadConfig(globalOptions(cmd))
	if err != nil {
		return err
	}
	store, closeStore, err := cli.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	return fn(store)
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLsCmd, sessionInspectCmd, sessionRmCmd)
}
