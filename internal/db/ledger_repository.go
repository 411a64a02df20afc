package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/armorbench/internal/ledger"
	"github.com/udisondev/armorbench/internal/model"
	"github.com/udisondev/armorbench/internal/slot"
)

// LedgerRepository manages ledger_entries and deleted_files tables.
type LedgerRepository struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Load reads every persisted entry and deleted-file mark.
func (r *LedgerRepository) Load(ctx context.Context) ([]ledger.Entry, []string, error) {
	query := `
		SELECT form_id, file, source, change_set, shared, slots
		FROM ledger_entries
		ORDER BY form_id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("querying ledger entries: %w", err)
	}
	defer rows.Close()

	entries := make([]ledger.Entry, 0, 64)
	for rows.Next() {
		var (
			formID    int64
			changeSet string
			slots     *int64
			e         ledger.Entry
		)
		if err := rows.Scan(&formID, &e.File, &e.Source, &changeSet, &e.Shared, &slots); err != nil {
			return nil, nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		e.FormID = model.FormID(formID)
		e.ChangeSet = ledger.ChangeSetID(changeSet)
		if slots != nil {
			e.Slots, e.HasSlots = slot.Mask(*slots), true
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterating ledger rows: %w", err)
	}

	deleted, err := r.loadDeleted(ctx)
	if err != nil {
		return nil, nil, err
	}

	return entries, deleted, nil
}

func (r *LedgerRepository) loadDeleted(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT file FROM deleted_files ORDER BY file`)
	if err != nil {
		return nil, fmt.Errorf("querying deleted files: %w", err)
	}

	deleted, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("collecting deleted files: %w", err)
	}
	return deleted, nil
}

// SaveAllTx replaces the persisted ledger within an existing transaction (full replace).
func (r *LedgerRepository) SaveAllTx(ctx context.Context, tx pgx.Tx, entries []ledger.Entry, deleted []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM ledger_entries`); err != nil {
		return fmt.Errorf("deleting existing ledger entries: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM deleted_files`); err != nil {
		return fmt.Errorf("deleting existing deleted files: %w", err)
	}

	if len(entries) > 0 {
		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"ledger_entries"},
			[]string{"form_id", "file", "source", "change_set", "shared", "slots"},
			pgx.CopyFromSlice(len(entries), func(i int) ([]any, error) {
				e := entries[i]
				var slots *int64
				if e.HasSlots {
					v := int64(e.Slots)
					slots = &v
				}
				return []any{int64(e.FormID), e.File, e.Source, string(e.ChangeSet), e.Shared, slots}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("copying ledger entries: %w", err)
		}
	}

	for _, f := range deleted {
		if _, err := tx.Exec(ctx, `INSERT INTO deleted_files (file) VALUES ($1)`, f); err != nil {
			return fmt.Errorf("inserting deleted file %q: %w", f, err)
		}
	}

	return nil
}

// Save persists a ledger snapshot using a standalone transaction.
func (r *LedgerRepository) Save(ctx context.Context, l *ledger.Ledger) error {
	entries, deleted := l.Entries(), l.DeletedFiles()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("ledger rollback failed", "error", err)
		}
	}()

	if err := r.SaveAllTx(ctx, tx, entries, deleted); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing ledger save: %w", err)
	}

	slog.Debug("ledger saved", "entries", len(entries), "deleted", len(deleted))
	return nil
}

// Restore loads the persisted snapshot into l. Changes of deleted files are
// reverted at this point.
func (r *LedgerRepository) Restore(ctx context.Context, l *ledger.Ledger) error {
	entries, deleted, err := r.Load(ctx)
	if err != nil {
		return err
	}
	l.Restore(entries, deleted)

	slog.Info("ledger restored", "entries", len(entries), "deleted", len(deleted))
	return nil
}
