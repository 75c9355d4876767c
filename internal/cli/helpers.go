package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/kpuzzle"
	"github.com/SeamusWaldron/kpuzzle/internal/notation"
	"github.com/SeamusWaldron/kpuzzle/internal/storage"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	solvedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// openDB opens the configured database and applies migrations.
func (a *app) openDB(ctx context.Context) (*storage.DB, error) {
	path := a.cfg.DBPath
	if path == "" {
		var err error
		path, err = storage.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}

	db, err := storage.Open(path, a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.MigrateUp(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// solvedLabel renders the solved flag.
func solvedLabel(solved bool) string {
	if solved {
		return solvedStyle.Render("yes")
	}
	return "no"
}

// toNotation converts a stored move log to notation moves.
func toNotation(moves []storage.SnapshotMove) []notation.Move {
	out := make([]notation.Move, len(moves))
	for i, m := range moves {
		out[i] = notation.Move{Name: m.Move, Amount: m.Amount}
	}
	return out
}

// formatMoveLog formats a stored move log in standard notation.
func formatMoveLog(moves []storage.SnapshotMove) string {
	return notation.FormatSequence(toNotation(moves))
}

// describeOrbits summarizes orbit shapes, e.g. "EDGES(12x2) CORNERS(8x3)".
func describeOrbits(def *kpuzzle.PuzzleDefinition) string {
	parts := make([]string, len(def.Orbits))
	for i, o := range def.Orbits {
		parts[i] = fmt.Sprintf("%s(%dx%d)", o.Name, o.NumPieces, o.Orientations)
	}
	return strings.Join(parts, " ")
}
