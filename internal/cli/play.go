package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/kpuzzle"
	"github.com/SeamusWaldron/kpuzzle/internal/notation"
	"github.com/SeamusWaldron/kpuzzle/internal/recorder"
	"github.com/SeamusWaldron/kpuzzle/internal/storage"
)

// Messages
type savedMsg struct {
	snapshotID string
}

type errMsg struct {
	err error
}

// playModel is the interactive session view. Single-letter moves are bound
// to keys: the upper case letter turns forward and the lower case letter
// turns backward.
type playModel struct {
	app   *app
	rec   *recorder.Session
	label string

	keys     map[string]string
	lastMove string
	saved    string
	err      error
	quitting bool
}

func newPlayModel(a *app, rec *recorder.Session, label string) *playModel {
	keys := make(map[string]string)
	for name := range rec.Session().Definition().Moves {
		r := []rune(name)
		if len(r) == 1 && unicode.IsLetter(r[0]) {
			keys[strings.ToUpper(name)] = name
		}
	}
	return &playModel{app: a, rec: rec, label: label, keys: keys}
}

func (m *playModel) Init() tea.Cmd {
	return nil
}

// moveForKey maps a key press to a move and direction.
func (m *playModel) moveForKey(key string) (string, int, bool) {
	r := []rune(key)
	if len(r) != 1 || !unicode.IsLetter(r[0]) {
		return "", 0, false
	}
	name, ok := m.keys[strings.ToUpper(key)]
	if !ok {
		return "", 0, false
	}
	if unicode.IsUpper(r[0]) {
		return name, 1, true
	}
	return name, -1, true
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.err = nil

		switch msg.String() {
		case "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "ctrl+z":
			m.err = m.rec.Undo()
			m.lastMove = ""

		case "ctrl+y":
			m.err = m.rec.Redo()
			m.lastMove = ""

		case "ctrl+r":
			m.rec.Reset()
			m.lastMove = ""

		case "ctrl+s":
			return m, m.save()

		default:
			if name, amount, ok := m.moveForKey(msg.String()); ok {
				if err := m.rec.Apply(name, amount); err != nil {
					m.err = err
				} else {
					m.lastMove = notation.Move{Name: name, Amount: amount}.String()
				}
			}
		}

	case savedMsg:
		m.saved = msg.snapshotID

	case errMsg:
		m.err = msg.err
	}

	return m, nil
}

// save captures the session on the update goroutine and writes it from
// the returned command.
func (m *playModel) save() tea.Cmd {
	capture := m.rec.Capture()
	return func() tea.Msg {
		ctx := context.Background()
		db, err := m.app.openDB(ctx)
		if err != nil {
			return errMsg{err}
		}
		defer db.Close()

		snap, err := capture.Save(ctx, storage.NewSnapshotRepository(db), m.label)
		if err != nil {
			return errMsg{err}
		}
		return savedMsg{snapshotID: snap.SnapshotID}
	}
}

// quarterTurns counts turns in the move log, each scaled move counting
// its absolute amount.
func quarterTurns(moves []storage.SnapshotMove) kpuzzle.CounterState {
	var counter kpuzzle.CounterPuzzle
	total := counter.StartState()
	for _, mv := range moves {
		one, err := counter.StateFromMove(mv.Move)
		if err != nil {
			continue
		}
		amount := kpuzzle.CounterState(mv.Amount)
		if amount < 0 {
			amount = -amount
		}
		total = counter.Combine(total, one*amount)
	}
	return total
}

func (m *playModel) View() string {
	if m.quitting {
		msg := "Goodbye!\n"
		if m.saved != "" {
			msg += fmt.Sprintf("Snapshot saved: %s\n", m.saved)
		}
		return msg
	}

	session := m.rec.Session()
	moves := m.rec.Moves()

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("kpuzzle - %s", m.rec.Puzzle())))
	b.WriteString("\n\n")

	status := fmt.Sprintf("Moves: %d  Turns: %d  Solved: %s", session.MoveCount(), quarterTurns(moves), solvedLabel(session.IsSolved()))
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n")
	if m.lastMove != "" {
		b.WriteString(fmt.Sprintf("Last: %s\n", moveStyle.Render(m.lastMove)))
	}
	b.WriteString("\n")

	// Show the tail of the move log
	const shown = 20
	start := 0
	if len(moves) > shown {
		start = len(moves) - shown
		b.WriteString("... ")
	}
	b.WriteString(moveStyle.Render(formatMoveLog(moves[start:])))
	b.WriteString("\n\n")

	b.WriteString(session.Serialize())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n\n")
	}
	if m.saved != "" {
		b.WriteString(statusStyle.Render(fmt.Sprintf("Saved: %s", m.saved)))
		b.WriteString("\n\n")
	}

	keys := make([]string, 0, len(m.keys))
	for k := range m.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	b.WriteString(helpStyle.Render(fmt.Sprintf("Moves: %s (lower case inverts)", strings.Join(keys, " "))))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.helpLine()))

	return b.String()
}

// helpLine lists the control keys, leaving out undo and redo when there
// is nothing to step through.
func (m *playModel) helpLine() string {
	session := m.rec.Session()
	var parts []string
	if session.CanUndo() {
		parts = append(parts, "ctrl+z: undo")
	}
	if session.CanRedo() {
		parts = append(parts, "ctrl+y: redo")
	}
	parts = append(parts, "ctrl+r: reset", "ctrl+s: save", "esc: quit")
	return strings.Join(parts, " | ")
}

func newPlayCmd(a *app) *cobra.Command {
	var (
		from  string
		label string
	)

	cmd := &cobra.Command{
		Use:   "play [puzzle]",
		Short: "Interactively apply moves to a puzzle",
		Long: `Open an interactive session on a puzzle. Each single-letter move is bound
to its key: the upper case letter turns forward and the lower case letter
turns backward. The session can be saved as a snapshot.

Examples:
  kpuzzle play 333
  kpuzzle play --from <snapshot_id>`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			closeLog, err := a.usePlayLogger()
			if err != nil {
				return err
			}
			defer closeLog()

			rec, err := a.startPlay(cmd.Context(), args, from)
			if err != nil {
				return err
			}

			p := tea.NewProgram(newPlayModel(a, rec, label), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("play error: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Continue from a saved snapshot")
	cmd.Flags().StringVar(&label, "label", "", "Label for saved snapshots")
	return cmd
}

// usePlayLogger moves logging off stderr while the full screen view is up.
// At debug level records go to play.log beside the database, otherwise
// they are dropped.
func (a *app) usePlayLogger() (func(), error) {
	level, err := a.cfg.Level()
	if err != nil {
		return nil, err
	}
	if level > slog.LevelDebug {
		a.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		return func() {}, nil
	}

	path := a.cfg.DBPath
	if path == "" {
		if path, err = storage.DefaultDBPath(); err != nil {
			return nil, err
		}
	}
	logPath := filepath.Join(filepath.Dir(path), "play.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open play log: %w", err)
	}
	a.logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return func() { f.Close() }, nil
}

// startPlay creates the recorded session, restoring a snapshot when from
// is set.
func (a *app) startPlay(ctx context.Context, args []string, from string) (*recorder.Session, error) {
	opts := []kpuzzle.Option{kpuzzle.WithLogger(a.logger)}

	if from == "" {
		if len(args) == 0 {
			return nil, fmt.Errorf("specify a puzzle or --from")
		}
		return recorder.NewSession(a.registry, args[0], opts...)
	}

	db, err := a.openDB(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rec, err := recorder.Restore(ctx, a.registry, storage.NewSnapshotRepository(db), from, opts...)
	if err != nil {
		return nil, err
	}
	if len(args) > 0 && args[0] != rec.Puzzle() {
		return nil, fmt.Errorf("snapshot %s is a %s puzzle, not %s", from, rec.Puzzle(), args[0])
	}
	return rec, nil
}
