package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/sandeepkv93/duotimer/internal/model"
	"github.com/sandeepkv93/duotimer/internal/storage"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the stored state of every timer",
	Args:  cobra.NoArgs,
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

		snaps, err := repo.ListSnapshots(context.Background(), storage.SnapshotListFilter{})
		if err != nil {
			return fmt.Errorf("list timers: %w", err)
		}
		if len(snaps) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no stored timers")
			return nil
		}

		defaults := model.NewTimerWithDurations(cfg.DefaultDurations())
		t := table.New().Headers("KEY", "TITLE", "MODE", "LEFT", "STATE", "SESSIONS", "DONE F/S/L", "UPDATED")
		for _, s := range snaps {
			tm := model.DecodeSnapshotWithDefaults(s.Payload, defaults)
			state := "paused"
			if tm.Running {
				state = "running"
			}
			t.Row(
				s.Key,
				tm.DisplayTitle(),
				tm.Mode.Label(),
				tm.Clock(),
				state,
				fmt.Sprintf("%d", tm.Sessions),
				fmt.Sprintf("%d/%d/%d", tm.Completed.Focus, tm.Completed.ShortBreak, tm.Completed.LongBreak),
				s.UpdatedAt.Local().Format("2006-01-02 15:04"),
			)
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
