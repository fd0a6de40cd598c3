package history

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/blogvolt/backend/internal/models"
)

const postColumns = "id, user_id, keyword, theme, mode, content, created_at"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, p *models.Post) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO posts (id, user_id, keyword, theme, mode, content)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, p.UserID, p.Keyword, p.Theme, p.Mode, p.Content)
	return err
}

// ListFilter narrows List; zero values mean "no filter".
type ListFilter struct {
	Theme  string
	Limit  int
	Offset int
}

// List returns the user's posts, newest first. The query is built dynamically
// because the theme filter is optional.
func (r *Repository) List(ctx context.Context, userID uuid.UUID, f ListFilter) ([]models.Post, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}
	q := psql.Select(postColumns).
		From("posts").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset))
	if f.Theme != "" {
		q = q.Where(sq.Eq{"theme": f.Theme})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Keyword, &p.Theme, &p.Mode, &p.Content, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Get returns the post or (nil, nil) when it does not exist.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var p models.Post
	err := r.pool.QueryRow(ctx,
		"SELECT "+postColumns+" FROM posts WHERE id = $1", id,
	).Scan(&p.ID, &p.UserID, &p.Keyword, &p.Theme, &p.Mode, &p.Content, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes one of the user's posts; the ownership check lives in the
// WHERE clause. Returns the number of rows removed (0 or 1).
func (r *Repository) Delete(ctx context.Context, userID, postID uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM posts WHERE id = $1 AND user_id = $2", postID, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// DeleteBulk removes the given posts owned by the user and returns how many
// rows were actually deleted. IDs belonging to other users are skipped, not
// an error.
func (r *Repository) DeleteBulk(ctx context.Context, userID uuid.UUID, postIDs []uuid.UUID) (int64, error) {
	if len(postIDs) == 0 {
		return 0, nil
	}
	sql, args, err := psql.Delete("posts").
		Where(sq.Eq{"user_id": userID, "id": postIDs}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build bulk delete: %w", err)
	}
	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
