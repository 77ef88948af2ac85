package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/xmdash/internal/dashboard"
	"github.com/rileyhilliard/xmdash/internal/errors"
	"github.com/rileyhilliard/xmdash/internal/logger"
	"github.com/rileyhilliard/xmdash/internal/storage"
	"github.com/rileyhilliard/xmdash/internal/ui"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the saved chart history",
	Long: `Show how many samples the dashboard has saved for its chart and the time
span they cover. At most 2000 samples are kept.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(store storage.Store) error {
			return showHistory(cmd.OutOrStdout(), store, time.Now())
		})
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the saved chart history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd, func(store storage.Store) error {
			return clearHistory(cmd.OutOrStdout(), store)
		})
	},
}

func init() {
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

// withStore opens the configured state store for the duration of fn.
func withStore(cmd *cobra.Command, fn func(storage.Store) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func showHistory(w io.Writer, store storage.Store, now time.Time) error {
	h := dashboard.NewHistoryStore(store, nil, logger.NewEnvLogger("[history]"))
	entries := h.Load()
	if len(entries) == 0 {
		fmt.Fprintln(w, ui.MutedStyle().Render("No history saved yet."))
		return nil
	}

	first, last := entries[0].Time(), entries[len(entries)-1].Time()
	rows := []ui.ReportRow{
		{Label: "Samples", Value: fmt.Sprintf("%d of %d", len(entries), dashboard.MaxHistoryPoints)},
		{Label: "Oldest", Value: first.Local().Format(time.DateTime) + " (" + humanize.RelTime(first, now, "ago", "from now") + ")"},
		{Label: "Newest", Value: last.Local().Format(time.DateTime) + " (" + humanize.RelTime(last, now, "ago", "from now") + ")"},
		{Label: "Peak hashrate", Value: dashboard.FormatHashrate(peakHashrate(entries))},
	}
	fmt.Fprint(w, ui.RenderReport(ui.Report{Sections: []ui.ReportSection{{Title: "History", Rows: rows}}}))
	return nil
}

func peakHashrate(entries []dashboard.HistoryEntry) float64 {
	var peak float64
	for _, e := range entries {
		if e.Hashrate > peak {
			peak = e.Hashrate
		}
	}
	return peak
}

func clearHistory(w io.Writer, store storage.Store) error {
	h := dashboard.NewHistoryStore(store, nil, nil)
	if err := h.Clear(); err != nil {
		return errors.WrapWithCode(err, errors.ErrStorage,
			"Failed to clear history", "Check permissions on the state directory")
	}
	fmt.Fprintln(w, ui.SuccessStyle().Render(ui.SymbolSuccess)+" History cleared")
	return nil
}
