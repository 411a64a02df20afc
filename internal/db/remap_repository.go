package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/armorbench/internal/remap"
	"github.com/udisondev/armorbench/internal/slot"
)

// RemapRepository manages remap_entries table.
type RemapRepository struct {
	db *pgxpool.Pool
}

// NewRemapRepository creates a new RemapRepository.
func NewRemapRepository(db *pgxpool.Pool) *RemapRepository {
	return &RemapRepository{db: db}
}

// Load loads the remap table saved for a session.
func (r *RemapRepository) Load(ctx context.Context, sessionID uuid.UUID) ([]remap.Entry, error) {
	query := `
		SELECT source, target
		FROM remap_entries
		WHERE session_id = $1
		ORDER BY source
	`

	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying remap for session %s: %w", sessionID, err)
	}
	defer rows.Close()

	entries := make([]remap.Entry, 0, 8)
	for rows.Next() {
		var src, tar int16
		if err := rows.Scan(&src, &tar); err != nil {
			return nil, fmt.Errorf("scanning remap row: %w", err)
		}
		entries = append(entries, remap.Entry{Source: slot.Slot(src), Target: slot.Slot(tar)})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating remap rows: %w", err)
	}

	return entries, nil
}

// SaveAllTx saves a session's remap entries within an existing transaction (full replace).
func (r *RemapRepository) SaveAllTx(ctx context.Context, tx pgx.Tx, sessionID uuid.UUID, entries []remap.Entry) error {
	if _, err := tx.Exec(ctx, `DELETE FROM remap_entries WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("deleting existing remap: %w", err)
	}

	for _, e := range entries {
		if _, err := tx.Exec(ctx,
			`INSERT INTO remap_entries (session_id, source, target) VALUES ($1, $2, $3)`,
			sessionID, int16(e.Source), int16(e.Target),
		); err != nil {
			return fmt.Errorf("inserting remap %s: %w", e, err)
		}
	}

	return nil
}

// Save saves a session's remap entries using a standalone transaction.
func (r *RemapRepository) Save(ctx context.Context, sessionID uuid.UUID, entries []remap.Entry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("remap rollback failed", "session", sessionID, "error", err)
		}
	}()

	if err := r.SaveAllTx(ctx, tx, sessionID, entries); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing remap save: %w", err)
	}

	return nil
}
