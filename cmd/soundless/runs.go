package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/soundless/internal/games/soundless"
	"github.com/vovakirdan/soundless/internal/storage"
)

var (
	flagRunsLimit int
	flagRunsBest  bool
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [variant]",
	Short: "Show the run history",
	Long: `Display the most recent runs, or the best ones with --best. Without a
variant, runs of every variant are listed.

Examples:
  soundless runs
  soundless runs soundless_swarm --best
  soundless runs --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsBest, "best", false, "Order by best result instead of date")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the run history")
}

func runRuns(_ *cobra.Command, args []string) error {
	variant := ""
	if len(args) > 0 {
		variant = args[0]
		if _, ok := soundless.ModeFor(variant); !ok {
			return fmt.Errorf("unknown variant %q, run 'soundless list' to see them", variant)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer store.Close()

	if flagRunsClear {
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Println("Run history cleared.")
		return nil
	}

	var runs []storage.Run
	if flagRunsBest {
		runs, err = store.BestRuns(variant, flagRunsLimit)
	} else {
		runs, err = store.RecentRuns(variant, flagRunsLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	title := "All variants"
	if variant != "" {
		title = soundless.TitleFor(variant)
	}
	fmt.Println(lipgloss.NewStyle().Bold(true).Render("Runs - " + title))
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'soundless play' to make the first one.")
		return nil
	}

	fmt.Println(runsTable(runs))

	stats, err := store.Stats(variant)
	if err == nil {
		fmt.Printf("\n%d runs, %d escaped, %d caught, best score %d", stats.Runs, stats.Wins, stats.Caught, stats.BestScore)
		if stats.Wins > 0 {
			fmt.Printf(", fastest escape %s", clock(stats.FastestWin))
		}
		fmt.Println()
	}
	return nil
}

func runsTable(runs []storage.Run) string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	win := cell.Foreground(lipgloss.Color("10"))
	caught := cell.Foreground(lipgloss.Color("9"))

	rows := make([][]string, len(runs))
	for i, r := range runs {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			r.Variant,
			r.Result,
			strconv.Itoa(r.Stage + 1),
			strconv.Itoa(r.Score),
			clock(r.Duration),
			fmt.Sprintf("%.0f", r.PeakNoise),
			r.Player,
			strconv.FormatInt(r.Seed, 10),
			r.CreatedAt.Format("2006-01-02 15:04"),
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("#", "Variant", "Result", "Stage", "Score", "Time", "Peak", "Player", "Seed", "Date").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 2 && runs[row].Result == storage.ResultWin:
				return win
			case col == 2 && runs[row].Result == storage.ResultCaught:
				return caught
			}
			return cell
		})
	return t.String()
}

func clock(secs float64) string {
	s := int(secs + 0.5)
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}
