// Command simctl runs headless matches and manages the match archive.
//
// Usage:
//
//	scoracle-simctl simulate --plays 12 --quarters 4 --seed 42
//	scoracle-simctl simulate --home Sharks --away Comets --json
//	scoracle-simctl archive list --limit 10
//	scoracle-simctl archive purge --days 30
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/scoracle-sim/internal/archive"
	"github.com/albapepper/scoracle-sim/internal/config"
	"github.com/albapepper/scoracle-sim/internal/sim"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:          "scoracle-simctl",
		Short:        "Scoracle scoreboard simulator CLI",
		SilenceUsage: true,
	}

	root.AddCommand(simulateCmd())
	root.AddCommand(archiveCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// simulate command
// --------------------------------------------------------------------------

// matchOptions are the simulate flags.
type matchOptions struct {
	Plays    int
	Quarters int
	Seed     uint64
	Settings sim.Settings
}

// matchResult is a finished headless match.
type matchResult struct {
	Seed   uint64     `json:"seed"`
	Board  sim.Board  `json:"board"`
	Charts sim.Charts `json:"charts"`
	Plays  []sim.Play `json:"plays"`

	// state keeps the full event log, which the board omits.
	state sim.MatchState
}

// record is the archive row for the finished match.
func (r matchResult) record(now time.Time) archive.Record {
	return archive.NewRecord(uuid.NewString(), archive.ReasonEnded, r.Board.Settings, r.state, now)
}

// runMatch starts a match, plays opts.Plays plays in each of opts.Quarters
// quarters and returns the final board.
func runMatch(opts matchOptions) (matchResult, error) {
	if opts.Plays < 0 {
		return matchResult{}, fmt.Errorf("--plays must not be negative")
	}
	if opts.Quarters < sim.FirstQuarter || opts.Quarters > sim.LastQuarter {
		return matchResult{}, fmt.Errorf("--quarters must be between %d and %d", sim.FirstQuarter, sim.LastQuarter)
	}
	settings := opts.Settings.WithDefaults()
	if err := settings.Validate(); err != nil {
		return matchResult{}, err
	}

	s := sim.New(settings, sim.NewSource(opts.Seed))
	s.Start()

	plays := make([]sim.Play, 0, opts.Plays*opts.Quarters)
	for q := sim.FirstQuarter; q <= opts.Quarters; q++ {
		if q > sim.FirstQuarter {
			s.AdvanceQuarter()
		}
		for range opts.Plays {
			plays = append(plays, s.SimulatePlay())
		}
	}

	st := s.State()
	return matchResult{
		Seed:   opts.Seed,
		Board:  sim.NewBoard(settings, st),
		Charts: sim.NewCharts(st),
		Plays:  plays,
		state:  st,
	}, nil
}

func simulateCmd() *cobra.Command {
	var (
		opts    matchOptions
		seed    int64
		sport   string
		weather string
		asJSON  bool
		save    bool
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a headless match and print the board and charts",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Seed = rand.Uint64()
			if seed >= 0 {
				opts.Seed = uint64(seed)
			}
			opts.Settings.Sport = sim.Sport(strings.ToLower(sport))
			opts.Settings.Weather = sim.Weather(strings.ToLower(weather))

			start := time.Now()
			result, err := runMatch(opts)
			if err != nil {
				return err
			}
			logger.Info("Match simulated",
				"seed", result.Seed,
				"plays", len(result.Plays),
				"score", fmt.Sprintf("%d-%d", result.Board.State.HomeScore, result.Board.State.AwayScore),
				"duration", time.Since(start).Round(time.Microsecond))

			if save {
				if err := saveResult(result); err != nil {
					return err
				}
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}
			return printResult(cmd.OutOrStdout(), result)
		},
	}

	defaults := sim.DefaultSettings()
	cmd.Flags().IntVar(&opts.Plays, "plays", 10, "Plays per quarter")
	cmd.Flags().IntVar(&opts.Quarters, "quarters", sim.LastQuarter, "Quarters to play (1-4)")
	cmd.Flags().Int64Var(&seed, "seed", -1, "Random seed; negative picks one")
	cmd.Flags().StringVar(&opts.Settings.Stadium, "stadium", defaults.Stadium, "Stadium name")
	cmd.Flags().StringVar(&opts.Settings.HomeTeam, "home", defaults.HomeTeam, "Home team name")
	cmd.Flags().StringVar(&opts.Settings.AwayTeam, "away", defaults.AwayTeam, "Away team name")
	cmd.Flags().StringVar(&sport, "sport", string(defaults.Sport), "Sport (basketball, football, soccer, hockey, baseball)")
	cmd.Flags().StringVar(&weather, "weather", string(defaults.Weather), "Weather (sunny, cloudy, rainy, snowy, windy)")
	cmd.Flags().BoolVar(&opts.Settings.NightGame, "night", defaults.NightGame, "Night game")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of tables")
	cmd.Flags().BoolVar(&save, "archive", false, "Save the finished match to the configured archive")
	opts.Settings.ShowCrowd = defaults.ShowCrowd
	opts.Settings.ShowWeather = defaults.ShowWeather
	return cmd
}

// saveResult archives a headless match under a fresh session id.
func saveResult(result matchResult) error {
	return withArchive(func(ctx context.Context, store archive.Store) error {
		r := result.record(time.Now().UTC())
		if err := store.Save(ctx, r); err != nil {
			return fmt.Errorf("save match: %w", err)
		}
		logger.Info("Match archived", "id", r.ID)
		return nil
	})
}

func printResult(w io.Writer, result matchResult) error {
	b := result.Board
	st := b.State

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s vs %s\n", b.Settings.Stadium, b.Settings.HomeTeam, b.Settings.AwayTeam)
	fmt.Fprintf(tw, "Score\t%d - %d\n", st.HomeScore, st.AwayScore)
	fmt.Fprintf(tw, "Quarter\t%d (%.0f%%)\n", st.Quarter, b.Progress)
	fmt.Fprintf(tw, "Crowd energy\t%d\n", st.CrowdEnergy)
	fmt.Fprintf(tw, "Seed\t%d\n", result.Seed)
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "Q\tHOME\tAWAY")
	for _, q := range result.Charts.ScoreByQuarter {
		fmt.Fprintf(tw, "Q%d\t%d\t%d\n", q.Quarter, q.Home, q.Away)
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "PLAYER\tPTS\tAST\tREB\tTOTAL")
	for _, p := range result.Charts.PlayerTotals {
		line := st.PlayerStats[p.Player]
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", p.Player, line.Points, line.Assists, line.Rebounds, p.Total)
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "LATEST")
	for _, e := range b.Feed {
		fmt.Fprintf(tw, "  %s\n", e)
	}
	return tw.Flush()
}

// --------------------------------------------------------------------------
// archive command
// --------------------------------------------------------------------------

func archiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Inspect and prune archived matches",
	}
	cmd.AddCommand(archiveListCmd())
	cmd.AddCommand(archivePurgeCmd())
	return cmd
}

func archiveListCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recently archived matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withArchive(func(ctx context.Context, store archive.Store) error {
				records, err := store.Recent(ctx, archive.ClampLimit(limit))
				if err != nil {
					return fmt.Errorf("list archive: %w", err)
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "ARCHIVED\tREASON\tSPORT\tMATCH\tSCORE\tQ")
				for _, r := range records {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s vs %s\t%d-%d\t%d\n",
						r.ArchivedAt.Format(time.RFC3339), r.Reason, r.Sport,
						r.HomeTeam, r.AwayTeam, r.HomeScore, r.AwayScore, r.Quarter)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", archive.DefaultLimit, "Maximum records")
	return cmd
}

func archivePurgeCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete archived matches older than --days",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				return fmt.Errorf("--days must be at least 1")
			}
			return withArchive(func(ctx context.Context, store archive.Store) error {
				before := time.Now().UTC().AddDate(0, 0, -days)
				n, err := store.Purge(ctx, before)
				if err != nil {
					return fmt.Errorf("purge archive: %w", err)
				}
				logger.Info("Archive purged", "removed", n, "before", before.Format(time.RFC3339))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", 30, "Retention in days")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// withArchive handles config loading, opening the store and context
// cancellation.
func withArchive(fn func(ctx context.Context, store archive.Store) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.ArchiveEnabled() {
		return fmt.Errorf("no archive configured (set ARCHIVE_DRIVER to postgres or sqlite)")
	}

	store, err := archive.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer store.Close()

	return fn(ctx, store)
}
