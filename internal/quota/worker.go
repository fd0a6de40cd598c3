package quota

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
)

type ResetDailyCountsJobArgs struct{}

func (ResetDailyCountsJobArgs) Kind() string { return "reset_daily_counts" }

// Resetter defines the contract the worker needs to zero the counters.
type Resetter interface {
	ResetDailyCounts(ctx context.Context) (int64, error)
}

// ResetWorker zeroes every user's daily generation counter. It runs as a
// periodic River job so a crashed run is retried instead of silently skipped.
type ResetWorker struct {
	river.WorkerDefaults[ResetDailyCountsJobArgs]
	resetter Resetter
	log      *slog.Logger
}

func NewResetWorker(resetter Resetter, log *slog.Logger) *ResetWorker {
	if log == nil {
		log = slog.Default()
	}
	return &ResetWorker{resetter: resetter, log: log}
}

func (w *ResetWorker) Work(ctx context.Context, _ *river.Job[ResetDailyCountsJobArgs]) error {
	n, err := w.resetter.ResetDailyCounts(ctx)
	if err != nil {
		return fmt.Errorf("reset daily counts: %w", err)
	}
	w.log.Info("daily generation counters reset", "users", n)
	return nil
}

// PeriodicJob schedules the reset once per day. RunOnStart is off so a
// restart mid-day does not hand everyone a fresh quota.
func PeriodicJob() *river.PeriodicJob {
	return river.NewPeriodicJob(
		river.PeriodicInterval(24*time.Hour),
		func() (river.JobArgs, *river.InsertOpts) {
			return ResetDailyCountsJobArgs{}, nil
		},
		&river.PeriodicJobOpts{RunOnStart: false},
	)
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) ResetDailyCounts(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		"UPDATE users SET daily_count = 0, updated_at = now() WHERE daily_count > 0")
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
