package admin

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blogvolt/backend/internal/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type UserFilter struct {
	Grade  string
	Email  string // substring match
	Limit  int
	Offset int
}

func (r *Repository) ListUsers(ctx context.Context, f UserFilter) ([]*models.User, error) {
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	q := psql.Select("id, email, display_name, grade, volts, daily_count, max_daily_count, blog_url, created_at, updated_at").
		From("users").
		OrderBy("created_at DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset))
	if f.Grade != "" {
		q = q.Where(sq.Eq{"grade": f.Grade})
	}
	if f.Email != "" {
		q = q.Where(sq.ILike{"email": "%" + f.Email + "%"})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user list query: %w", err)
	}
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []*models.User{}
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.DisplayName, &u.Grade, &u.Volts,
			&u.DailyCount, &u.MaxDailyCount, &u.BlogURL, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

// SetGrade changes a user's grade and resets the daily quota ceiling to the
// grade's default. Returns the number of rows updated (0 or 1).
func (r *Repository) SetGrade(ctx context.Context, userID uuid.UUID, grade string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET grade = $1, max_daily_count = $2, updated_at = now()
		WHERE id = $3
	`, grade, models.MaxDailyForGrade(grade), userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type LogFilter struct {
	UserID uuid.UUID
	Status string
	Limit  int
	Offset int
}

func (r *Repository) ListGenerationLogs(ctx context.Context, f LogFilter) ([]*models.GenerationLog, error) {
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
	q := psql.Select("id, user_id, keyword, theme, volts_charged, status, error_detail, created_at").
		From("generation_logs").
		OrderBy("created_at DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset))
	if f.UserID != uuid.Nil {
		q = q.Where(sq.Eq{"user_id": f.UserID})
	}
	if f.Status != "" {
		q = q.Where(sq.Eq{"status": f.Status})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build log list query: %w", err)
	}
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []*models.GenerationLog{}
	for rows.Next() {
		var l models.GenerationLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Keyword, &l.Theme,
			&l.VoltsCharged, &l.Status, &l.ErrorDetail, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
