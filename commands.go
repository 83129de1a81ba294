package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kmorita/scorebook/internal/config"
	"github.com/kmorita/scorebook/internal/database"
	"github.com/kmorita/scorebook/internal/grid"
	"github.com/kmorita/scorebook/internal/league"
	"github.com/kmorita/scorebook/internal/matchlog"
	"github.com/kmorita/scorebook/internal/metrics"
	"github.com/kmorita/scorebook/internal/notifier"
	"github.com/kmorita/scorebook/internal/notifier/slack"
	"github.com/kmorita/scorebook/internal/prompt"
	"github.com/kmorita/scorebook/internal/roster"
	"github.com/kmorita/scorebook/internal/standings"
)

var (
	flagSheet     string
	flagThreshold int
	flagYes       bool
	flagDryRun    bool
)

var rootCmd = &cobra.Command{
	Use:   "scorebook",
	Short: "Tennis league scorekeeping and handicap ranking",
	Long: `scorebook collects doubles game scores from spreadsheet grids into a match
log, aggregates them into ranked standings, and runs the biannual handicap
recalculation.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagYes, "yes", false, "Answer every confirmation with yes")
	rootCmd.PersistentFlags().BoolVar(&flagDryRun, "dry-run", false, "Log notifications instead of sending them")

	collectCmd.Flags().StringVar(&flagSheet, "sheet", "", "Workbook sheet to read (defaults to the first)")
	aggregateCmd.Flags().IntVar(&flagThreshold, "threshold", 0, "Participation-day qualification bar (0 derives it from the range)")

	rootCmd.AddCommand(collectCmd, aggregateCmd, closePeriodCmd, playersCmd)
}

// newService wires a league service from the environment. The returned
// teardown closes the database.
func newService() (*league.Service, func(), error) {
	cfg := config.Load()

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	metricsSvc := metrics.NewService()
	if cfg.MetricsAddr != "" {
		go func() {
			log.Info("Serving metrics.", "addr", cfg.MetricsAddr)
			if err := http.ListenAndServe(cfg.MetricsAddr, metrics.NewMetricsHandler()); err != nil {
				log.Error("Metrics listener stopped", "error", err)
			}
		}()
	}

	var n notifier.Notifier = notifier.Noop{}
	if cfg.Slack.Token != "" && cfg.Slack.ChannelID != "" {
		n = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	}

	var confirm prompt.Confirmer = prompt.NewTerminal()
	if flagYes {
		confirm = prompt.AutoYes{}
	}

	svc := league.NewService(
		league.Config{DryRun: flagDryRun},
		matchlog.New(db),
		roster.New(db),
		standings.New(db),
		n,
		confirm,
		metricsSvc,
	)
	return svc, dbTeardown, nil
}

var collectCmd = &cobra.Command{
	Use:   "collect <grid.xlsx>",
	Short: "Validate and commit game scores from a workbook grid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, teardown, err := newService()
		if err != nil {
			return err
		}
		defer teardown()

		src, err := grid.OpenXLSX(args[0], flagSheet)
		if err != nil {
			return err
		}
		defer src.Close()

		summary, err := svc.CollectAndCommit(src)
		if err != nil {
			return err
		}
		fmt.Println(summary)
		return nil
	},
}

var aggregateCmd = &cobra.Command{
	Use:   "aggregate <start> <end>",
	Short: "Aggregate the match log over a date range and rank the roster",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := time.Parse(matchlog.DateLayout, args[0])
		if err != nil {
			return fmt.Errorf("invalid start date %q: %w", args[0], err)
		}
		end, err := time.Parse(matchlog.DateLayout, args[1])
		if err != nil {
			return fmt.Errorf("invalid end date %q: %w", args[1], err)
		}

		svc, teardown, err := newService()
		if err != nil {
			return err
		}
		defer teardown()

		summary, err := svc.AggregateAndRank(start, end, flagThreshold)
		if err != nil {
			return err
		}
		fmt.Println(summary)
		return nil
	},
}

var closePeriodCmd = &cobra.Command{
	Use:   "close-period",
	Short: "Run the biannual handicap recalculation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, teardown, err := newService()
		if err != nil {
			return err
		}
		defer teardown()

		summary, err := svc.ClosePeriod()
		if err != nil {
			return err
		}
		fmt.Println(summary)
		return nil
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "Dump the roster ledger",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, teardown, err := newService()
		if err != nil {
			return err
		}
		defer teardown()

		entries, err := svc.Players()
		if err != nil {
			return err
		}
		for _, e := range entries {
			member := "guest"
			if e.IsMember {
				member = "member"
			}
			fmt.Printf("%s\t%s\t%s\tHDCP %.3f\t%s\n", e.PlayerID, e.DisplayName, member, e.Handicap, e.Remarks)
		}
		return nil
	},
}

// exitCode maps the orchestration sentinels onto the documented codes.
func exitCode(err error) int {
	switch {
	case errors.Is(err, league.ErrNoMatchLog):
		return 2
	case errors.Is(err, league.ErrNoRoster):
		return 3
	case errors.Is(err, league.ErrNoRankingInput):
		return 4
	case errors.Is(err, league.ErrInvalidDateRange):
		return 5
	case errors.Is(err, league.ErrCancelled):
		return 6
	}
	return 1
}

func Execute() {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		log.Error("Command failed", "error", err)
		os.Exit(exitCode(err))
	}
}
