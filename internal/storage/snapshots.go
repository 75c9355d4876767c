package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Snapshot represents a saved puzzle session in the database.
type Snapshot struct {
	SnapshotID string
	Puzzle     string
	Label      *string
	State      string // Serialized state text
	MoveCount  int
	CreatedAt  time.Time
}

// SnapshotMove is one entry of a snapshot's move log.
type SnapshotMove struct {
	Seq    int
	Move   string
	Amount int
}

// SnapshotRepository provides CRUD operations for snapshots.
type SnapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new snapshot repository.
func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Create stores a snapshot and its move log in one transaction.
// Seq values of moves are assigned in order starting from 1.
func (r *SnapshotRepository) Create(ctx context.Context, puzzle string, label *string, state string, moveCount int, moves []SnapshotMove) (*Snapshot, error) {
	snap := &Snapshot{
		SnapshotID: uuid.NewString(),
		Puzzle:     puzzle,
		Label:      label,
		State:      state,
		MoveCount:  moveCount,
		CreatedAt:  time.UnixMilli(time.Now().UnixMilli()),
	}

	err := r.db.Transaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO snapshots (snapshot_id, puzzle, label, state, move_count, created_at_ms)
			VALUES (?, ?, ?, ?, ?, ?)
		`, snap.SnapshotID, snap.Puzzle, snap.Label, snap.State, snap.MoveCount, snap.CreatedAt.UnixMilli())
		if err != nil {
			return fmt.Errorf("failed to create snapshot: %w", err)
		}

		for i, m := range moves {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO snapshot_moves (snapshot_id, seq, move, amount)
				VALUES (?, ?, ?, ?)
			`, snap.SnapshotID, i+1, m.Move, m.Amount)
			if err != nil {
				return fmt.Errorf("failed to create snapshot move %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.db.logger.Debug("snapshot created", "id", snap.SnapshotID, "puzzle", puzzle, "moves", len(moves))
	return snap, nil
}

// Get retrieves a snapshot by ID.
func (r *SnapshotRepository) Get(ctx context.Context, snapshotID string) (*Snapshot, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT snapshot_id, puzzle, label, state, move_count, created_at_ms
		FROM snapshots
		WHERE snapshot_id = ?
	`, snapshotID)

	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("snapshot %s: %w", snapshotID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	return snap, nil
}

// GetLast retrieves the most recent snapshot.
func (r *SnapshotRepository) GetLast(ctx context.Context) (*Snapshot, error) {
	snaps, err := r.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return nil, fmt.Errorf("no snapshots: %w", ErrNotFound)
	}
	return &snaps[0], nil
}

// List retrieves the most recent snapshots, newest first.
func (r *SnapshotRepository) List(ctx context.Context, limit int) ([]Snapshot, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT snapshot_id, puzzle, label, state, move_count, created_at_ms
		FROM snapshots
		ORDER BY created_at_ms DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snaps = append(snaps, *snap)
	}

	return snaps, rows.Err()
}

// Moves retrieves the move log of a snapshot in order.
func (r *SnapshotRepository) Moves(ctx context.Context, snapshotID string) ([]SnapshotMove, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT seq, move, amount
		FROM snapshot_moves
		WHERE snapshot_id = ?
		ORDER BY seq
	`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot moves: %w", err)
	}
	defer rows.Close()

	var moves []SnapshotMove
	for rows.Next() {
		var m SnapshotMove
		if err := rows.Scan(&m.Seq, &m.Move, &m.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot move: %w", err)
		}
		moves = append(moves, m)
	}

	return moves, rows.Err()
}

// Delete removes a snapshot and its move log.
func (r *SnapshotRepository) Delete(ctx context.Context, snapshotID string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM snapshots WHERE snapshot_id = ?", snapshotID)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("snapshot %s: %w", snapshotID, ErrNotFound)
	}
	return nil
}

// Count returns the number of stored snapshots.
func (r *SnapshotRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM snapshots").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count snapshots: %w", err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(s scanner) (*Snapshot, error) {
	var snap Snapshot
	var createdAtMs int64
	err := s.Scan(&snap.SnapshotID, &snap.Puzzle, &snap.Label, &snap.State, &snap.MoveCount, &createdAtMs)
	if err != nil {
		return nil, err
	}
	snap.CreatedAt = time.UnixMilli(createdAtMs)
	return &snap, nil
}
