package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blogvolt/backend/internal/models"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Debit decrements the user's volts iff the balance covers amount, and writes
// a generation_charge ledger entry in the same transaction. The conditional
// UPDATE is the only overspend guard: concurrent debits against the same user
// race on it and the loser sees zero rows. Returns (false, nil) when the
// balance is insufficient; that is a normal outcome, not an error.
func (r *Repository) Debit(ctx context.Context, userID uuid.UUID, amount int, attemptID uuid.UUID) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	var newBalance int
	err = tx.QueryRow(ctx, `
		UPDATE users SET volts = volts - $1, updated_at = now()
		WHERE id = $2 AND volts >= $1
		RETURNING volts
	`, amount, userID).Scan(&newBalance)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO volt_ledger (id, user_id, attempt_id, entry_type, amount, balance_after)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.New(), userID, attemptID, models.VoltEntryGenerationCharge, amount, newBalance)
	if err != nil {
		return false, err
	}
	return true, tx.Commit(ctx)
}

// Credit unconditionally increments the user's volts and writes a ledger
// entry of the given type in the same transaction.
func (r *Repository) Credit(ctx context.Context, userID uuid.UUID, amount int, entryType string, attemptID *uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var newBalance int
	err = tx.QueryRow(ctx, `
		UPDATE users SET volts = volts + $1, updated_at = now()
		WHERE id = $2
		RETURNING volts
	`, amount, userID).Scan(&newBalance)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO volt_ledger (id, user_id, attempt_id, entry_type, amount, balance_after)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.New(), userID, attemptID, entryType, amount, newBalance)
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Entries returns the user's ledger entries, newest first.
func (r *Repository) Entries(ctx context.Context, userID uuid.UUID) ([]*models.VoltEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, attempt_id, entry_type, amount, balance_after, created_at
		FROM volt_ledger WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []*models.VoltEntry
	for rows.Next() {
		var e models.VoltEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.AttemptID, &e.EntryType, &e.Amount, &e.BalanceAfter, &e.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
