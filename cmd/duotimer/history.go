package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/sandeepkv93/duotimer/internal/model"
	"github.com/sandeepkv93/duotimer/internal/storage"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print completed sessions, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		timerKey, _ := cmd.Flags().GetString("timer")
		limit, _ := cmd.Flags().GetInt("limit")
		modeRaw, _ := cmd.Flags().GetString("mode")

		filter := storage.CompletionListFilter{TimerKey: strings.TrimSpace(timerKey), Limit: limit}
		if strings.TrimSpace(modeRaw) != "" {
			mode, err := model.ParseMode(modeRaw)
			if err != nil {
				return err
			}
			filter.Mode = string(mode)
		}

		repo, err := openRepository(cfg.DatabasePath)
		if err != nil {
			return err
		}
		defer repo.Close()

		items, err := repo.ListCompletions(context.Background(), filter)
		if err != nil {
			return fmt.Errorf("list history: %w", err)
		}
		if len(items) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no completed sessions")
			return nil
		}

		t := table.New().Headers("COMPLETED", "TIMER", "MODE", "MINUTES")
		for _, c := range items {
			t.Row(
				c.CompletedAt.Local().Format("2006-01-02 15:04:05"),
				c.TimerKey,
				model.Mode(c.Mode).Label(),
				fmt.Sprintf("%d", c.DurationSec/60),
			)
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		return nil
	},
}

func init() {
	historyCmd.Flags().String("timer", "", "only show sessions of this timer key")
	historyCmd.Flags().String("mode", "", "only show sessions of this mode (focus, short, long)")
	historyCmd.Flags().IntP("limit", "n", 20, "maximum rows to print (0 for all)")
	rootCmd.AddCommand(historyCmd)
}
