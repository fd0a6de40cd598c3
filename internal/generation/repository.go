package generation

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blogvolt/backend/internal/models"
)

// LogRepository appends generation_logs rows. The attempt ID doubles as the
// primary key, so a retried write of the same attempt conflicts instead of
// duplicating the audit trail.
type LogRepository struct {
	pool *pgxpool.Pool
}

func NewLogRepository(pool *pgxpool.Pool) *LogRepository {
	return &LogRepository{pool: pool}
}

func (r *LogRepository) Create(ctx context.Context, e *models.GenerationLog) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO generation_logs (id, user_id, keyword, theme, volts_charged, status, error_detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, e.ID, e.UserID, e.Keyword, e.Theme, e.VoltsCharged, e.Status, e.ErrorDetail)
	return err
}
