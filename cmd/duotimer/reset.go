package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandeepkv93/duotimer/internal/storage"
	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset <timer-key>",
	Short: "Delete the stored state of one timer",
	Long:  `Delete the stored state of one timer. Its next start uses the defaults. Completion history is kept.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		repo, err := openRepository(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer repo.Close()

		if err := repo.DeleteSnapshot(context.Background(), args[0]); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("no stored timer %q", args[0])
			}
			return fmt.Errorf("reset %s: %w", args[0], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "reset %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
