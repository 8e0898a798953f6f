package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset progress",
	Long: "Reset reloads the catalog and stored progress into a fresh engine. " +
		"With --wipe all stored progress, unlocks and answer history are deleted first.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		engine, st, err := openEngine(ctx, cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if wipe, _ := cmd.Flags().GetBool("wipe"); wipe {
			n, err := st.CountAnswers(ctx)
			if err != nil {
				return err
			}
			if err := st.Wipe(ctx); err != nil {
				return fmt.Errorf("wipe store: %w", err)
			}
			fmt.Printf("Deleted %d recorded answers.\n", n)
		}
		if err := engine.Reset(ctx); err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}
		fmt.Println("Progress reset.")
		return nil
	},
}

var unlockAllCmd = &cobra.Command{
	Use:   "unlock-all",
	Short: "Unlock every region",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		engine, st, err := openEngine(ctx, cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := engine.ForceUnlockAll(ctx); err != nil {
			return fmt.Errorf("unlock regions: %w", err)
		}
		fmt.Printf("Unlocked %d regions.\n", len(engine.ListRegions()))
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("wipe", false, "Delete all stored progress and history")
}
