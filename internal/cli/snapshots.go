package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/kpuzzle"
	"github.com/SeamusWaldron/kpuzzle/internal/analysis"
	"github.com/SeamusWaldron/kpuzzle/internal/notation"
	"github.com/SeamusWaldron/kpuzzle/internal/recorder"
	"github.com/SeamusWaldron/kpuzzle/internal/storage"
)

func newSnapshotsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "Manage saved snapshots",
		Long:  `List, inspect, replay, export and delete saved snapshots, or mine them for repeated sequences.`,
	}
	cmd.AddCommand(
		newSnapshotsListCmd(a),
		newSnapshotsShowCmd(a),
		newSnapshotsReplayCmd(a),
		newSnapshotsExportCmd(a),
		newSnapshotsDeleteCmd(a),
		newSnapshotsNGramsCmd(a),
	)
	return cmd
}

// withRepo opens the database for the duration of fn.
func (a *app) withRepo(ctx context.Context, fn func(*storage.SnapshotRepository) error) error {
	db, err := a.openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(storage.NewSnapshotRepository(db))
}

// resolveSnapshotID returns the explicit id, or the newest snapshot's id
// when last is set.
func resolveSnapshotID(ctx context.Context, repo *storage.SnapshotRepository, args []string, last bool) (string, error) {
	if last {
		snap, err := repo.GetLast(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to get last snapshot: %w", err)
		}
		return snap.SnapshotID, nil
	}
	if len(args) == 0 {
		return "", fmt.Errorf("specify a snapshot id or --last")
	}
	return args[0], nil
}

func labelOf(snap *storage.Snapshot) string {
	if snap.Label == nil {
		return "-"
	}
	return *snap.Label
}

func newSnapshotsListCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepo(cmd.Context(), func(repo *storage.SnapshotRepository) error {
				snaps, err := repo.List(cmd.Context(), limit)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				if len(snaps) == 0 {
					fmt.Fprintln(out, "No snapshots found")
					return nil
				}
				for i := range snaps {
					s := &snaps[i]
					fmt.Fprintf(out, "%s  %-8s %5d moves  %s  %s\n",
						s.SnapshotID, s.Puzzle, s.MoveCount, s.CreatedAt.Format(time.RFC3339), labelOf(s))
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of snapshots to list")
	return cmd
}

func newSnapshotsShowCmd(a *app) *cobra.Command {
	var last bool

	cmd := &cobra.Command{
		Use:   "show [snapshot_id]",
		Short: "Show a snapshot's state and move log",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepo(cmd.Context(), func(repo *storage.SnapshotRepository) error {
				id, err := resolveSnapshotID(cmd.Context(), repo, args, last)
				if err != nil {
					return err
				}
				snap, err := repo.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				moves, err := repo.Moves(cmd.Context(), id)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Snapshot: %s\n", snap.SnapshotID)
				fmt.Fprintf(out, "Puzzle:   %s\n", snap.Puzzle)
				fmt.Fprintf(out, "Label:    %s\n", labelOf(snap))
				fmt.Fprintf(out, "Created:  %s\n", snap.CreatedAt.Format(time.RFC3339))
				fmt.Fprintf(out, "Moves:    %d\n", snap.MoveCount)
				if len(moves) > 0 {
					fmt.Fprintf(out, "Log:      %s\n", formatMoveLog(moves))
				}
				fmt.Fprintln(out)
				fmt.Fprintln(out, snap.State)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&last, "last", false, "Show the most recent snapshot")
	return cmd
}

func newSnapshotsReplayCmd(a *app) *cobra.Command {
	var last bool

	cmd := &cobra.Command{
		Use:   "replay [snapshot_id]",
		Short: "Replay a snapshot's move log and verify its state",
		Long: `Rebuild a snapshot by applying its move log to a solved puzzle and check
that the result matches the stored state.

Examples:
  kpuzzle snapshots replay --last
  kpuzzle snapshots replay <snapshot_id>`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepo(cmd.Context(), func(repo *storage.SnapshotRepository) error {
				id, err := resolveSnapshotID(cmd.Context(), repo, args, last)
				if err != nil {
					return err
				}

				rec, err := recorder.Replay(cmd.Context(), a.registry, repo, id, kpuzzle.WithLogger(a.logger))
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Replayed %d moves on %s\n", len(rec.Moves()), rec.Puzzle())
				fmt.Fprintf(out, "Solved: %s\n", solvedLabel(rec.Session().IsSolved()))
				fmt.Fprintln(out, "State matches snapshot")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&last, "last", false, "Replay the most recent snapshot")
	return cmd
}

// exportedSnapshot is the json and yaml shape of an exported snapshot.
type exportedSnapshot struct {
	SnapshotID string         `json:"snapshot_id" yaml:"snapshot_id"`
	Puzzle     string         `json:"puzzle" yaml:"puzzle"`
	Label      *string        `json:"label,omitempty" yaml:"label,omitempty"`
	CreatedAt  time.Time      `json:"created_at" yaml:"created_at"`
	MoveCount  int            `json:"move_count" yaml:"move_count"`
	Moves      []exportedMove `json:"moves" yaml:"moves"`
	State      string         `json:"state" yaml:"state"`
}

type exportedMove struct {
	Seq    int    `json:"seq" yaml:"seq"`
	Move   string `json:"move" yaml:"move"`
	Amount int    `json:"amount" yaml:"amount"`
}

func formatExport(snap *storage.Snapshot, moves []storage.SnapshotMove, format string) (string, error) {
	switch strings.ToLower(format) {
	case "txt":
		return formatMoveLog(moves), nil
	}

	doc := exportedSnapshot{
		SnapshotID: snap.SnapshotID,
		Puzzle:     snap.Puzzle,
		Label:      snap.Label,
		CreatedAt:  snap.CreatedAt.UTC(),
		MoveCount:  snap.MoveCount,
		Moves:      make([]exportedMove, len(moves)),
		State:      snap.State,
	}
	for i, m := range moves {
		doc.Moves[i] = exportedMove{Seq: m.Seq, Move: m.Move, Amount: m.Amount}
	}

	switch strings.ToLower(format) {
	case "json":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data), nil
	case "yaml":
		data, err := yaml.Marshal(doc)
		if err != nil {
			return "", fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return strings.TrimSuffix(string(data), "\n"), nil
	default:
		return "", fmt.Errorf("unknown format: %s (use txt, json or yaml)", format)
	}
}

func newSnapshotsExportCmd(a *app) *cobra.Command {
	var (
		last   bool
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export [snapshot_id]",
		Short: "Export a snapshot",
		Long: `Export a snapshot's move log in text format, or the whole snapshot in
JSON or YAML.

Examples:
  kpuzzle snapshots export --last
  kpuzzle snapshots export <snapshot_id> --format json
  kpuzzle snapshots export <snapshot_id> --format yaml -o snap.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepo(cmd.Context(), func(repo *storage.SnapshotRepository) error {
				id, err := resolveSnapshotID(cmd.Context(), repo, args, last)
				if err != nil {
					return err
				}
				snap, err := repo.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				moves, err := repo.Moves(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("failed to get moves: %w", err)
				}

				text, err := formatExport(snap, moves, format)
				if err != nil {
					return err
				}

				if output == "" {
					fmt.Fprintln(cmd.OutOrStdout(), text)
					return nil
				}

				// Ensure directory exists
				dir := filepath.Dir(output)
				if dir != "" && dir != "." {
					if err := os.MkdirAll(dir, 0755); err != nil {
						return fmt.Errorf("failed to create output directory: %w", err)
					}
				}
				if err := os.WriteFile(output, []byte(text+"\n"), 0644); err != nil {
					return fmt.Errorf("failed to write output file: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported snapshot %s to %s\n", id, output)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&last, "last", false, "Export the most recent snapshot")
	cmd.Flags().StringVar(&format, "format", "txt", "Export format (txt, json, yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}

func newSnapshotsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <snapshot_id>",
		Short: "Delete a snapshot and its move log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRepo(cmd.Context(), func(repo *storage.SnapshotRepository) error {
				if err := repo.Delete(cmd.Context(), args[0]); err != nil {
					return err
				}
				a.logger.Info("snapshot deleted", "snapshot_id", args[0])
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted snapshot %s\n", args[0])
				return nil
			})
		},
	}
}

func newSnapshotsNGramsCmd(a *app) *cobra.Command {
	var (
		puzzle string
		limit  int
		minN   int
		maxN   int
		topK   int
	)

	cmd := &cobra.Command{
		Use:   "ngrams",
		Short: "Find repeated move sequences across saved snapshots",
		Long: `Mine the move logs of recent snapshots for the most frequent repeated
sequences of each length.

Examples:
  kpuzzle snapshots ngrams
  kpuzzle snapshots ngrams --puzzle 333 --min 4 --max 8 --top 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if minN < 1 || maxN < minN {
				return fmt.Errorf("invalid range: --min %d --max %d", minN, maxN)
			}

			return a.withRepo(cmd.Context(), func(repo *storage.SnapshotRepository) error {
				snaps, err := repo.List(cmd.Context(), limit)
				if err != nil {
					return err
				}

				logs := make(map[string][]notation.Move)
				for i := range snaps {
					if puzzle != "" && snaps[i].Puzzle != puzzle {
						continue
					}
					moves, err := repo.Moves(cmd.Context(), snaps[i].SnapshotID)
					if err != nil {
						return err
					}
					logs[snaps[i].SnapshotID] = toNotation(moves)
				}

				report := analysis.MineNGrams(logs, minN, maxN, topK)
				a.logger.Debug("ngrams mined", "snapshots", len(logs), "lengths", len(report.TopNGrams))

				out := cmd.OutOrStdout()
				if len(report.TopNGrams) == 0 {
					fmt.Fprintf(out, "No repeated sequences in %d snapshots\n", len(logs))
					return nil
				}
				for n := minN; n <= maxN; n++ {
					ngrams, ok := report.TopNGrams[n]
					if !ok {
						continue
					}
					fmt.Fprintf(out, "%s\n", titleStyle.Render(fmt.Sprintf("Length %d", n)))
					for _, ng := range ngrams {
						fmt.Fprintf(out, "  %4dx  %s\n", ng.Count, moveStyle.Render(ng.String()))
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&puzzle, "puzzle", "", "Only include snapshots of this puzzle")
	cmd.Flags().IntVarP(&limit, "limit", "n", 100, "Number of recent snapshots to scan")
	cmd.Flags().IntVar(&minN, "min", 2, "Shortest sequence length")
	cmd.Flags().IntVar(&maxN, "max", 6, "Longest sequence length")
	cmd.Flags().IntVar(&topK, "top", 5, "Sequences to show per length")
	return cmd
}
