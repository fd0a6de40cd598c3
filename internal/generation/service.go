package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/blogvolt/backend/internal/drafting"
	"github.com/blogvolt/backend/internal/models"
)

// Validation and payment failures happen before any charge; the user-facing
// messages must say so. ErrGenerationFailed is the one post-debit failure: by
// the time a caller sees it the refund has already been issued, and its
// message must never read like an "insufficient funds" one.
var (
	ErrNoUser            = errors.New("no authenticated user")
	ErrEmptyKeyword      = errors.New("keyword must not be empty")
	ErrInvalidTheme      = errors.New("unknown theme")
	ErrInsufficientVolts = errors.New("not enough volts: nothing was charged")
	ErrPaymentFailed     = errors.New("charging volts failed: nothing was charged")
	ErrGenerationFailed  = errors.New("generation failed: the charge was refunded")
)

// Request is one generation attempt as received from the user.
type Request struct {
	Keyword    string
	Theme      string
	Mode       string
	StyleGuide string
}

// Outcome is the terminal state of an attempt that reached the debit step.
// The saga has exactly two terminal states; Status makes the "already
// charged" distinction explicit instead of leaving it to error unwinding.
type Outcome struct {
	Status      string // models.GenerationStatusSuccess | models.GenerationStatusRefunded
	Draft       string
	Charged     int
	ArchivalErr error // set when the draft succeeded but persisting it did not
}

// Ledger is the money-movement surface. The orchestrator never reads a
// balance; the two operations are its only access to user volts.
type Ledger interface {
	Debit(ctx context.Context, userID uuid.UUID, amount int, attemptID uuid.UUID) (bool, error)
	Credit(ctx context.Context, userID uuid.UUID, amount int, entryType string, attemptID *uuid.UUID) error
}

// Researcher fetches free-text research for a keyword.
type Researcher interface {
	Research(ctx context.Context, keyword, theme string) (string, error)
}

// Drafter produces the post text from keyword + research.
type Drafter interface {
	Draft(ctx context.Context, req drafting.DraftRequest) (string, error)
}

// PostStore persists successful drafts.
type PostStore interface {
	Create(ctx context.Context, p *models.Post) error
}

// LogStore appends the per-attempt audit trail.
type LogStore interface {
	Create(ctx context.Context, e *models.GenerationLog) error
}

// UserStore tracks the daily generation counter.
type UserStore interface {
	IncrementDailyCount(ctx context.Context, userID uuid.UUID) error
}

// CostTable resolves the volt cost of a generation mode.
type CostTable interface {
	CostForMode(mode string) int
}

type Service struct {
	ledger     Ledger
	researcher Researcher
	drafter    Drafter
	posts      PostStore
	logs       LogStore
	users      UserStore
	costs      CostTable
	log        *slog.Logger
}

func NewService(ledger Ledger, researcher Researcher, drafter Drafter, posts PostStore, logs LogStore, users UserStore, costs CostTable, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		ledger:     ledger,
		researcher: researcher,
		drafter:    drafter,
		posts:      posts,
		logs:       logs,
		users:      users,
		costs:      costs,
		log:        log,
	}
}

// Generate runs one attempt: validate → debit → research → draft → persist →
// log, with a compensating refund on any failure after the debit.
//
// Pre-debit failures return an error and nothing else happens: no ledger
// movement, no log row. Once the debit succeeds the attempt always reaches
// exactly one of two terminal states, success or refunded, each logged once.
func (s *Service) Generate(ctx context.Context, userID uuid.UUID, req Request) (*Outcome, error) {
	if userID == uuid.Nil {
		return nil, ErrNoUser
	}
	req.Keyword = strings.TrimSpace(req.Keyword)
	if req.Keyword == "" {
		return nil, ErrEmptyKeyword
	}
	if req.Theme == "" {
		req.Theme = models.ThemeOther
	}
	if !models.IsValidTheme(req.Theme) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTheme, req.Theme)
	}
	if req.Mode == "" {
		req.Mode = models.ModeBasic
	}

	cost := s.costs.CostForMode(req.Mode)
	attemptID := uuid.New()

	ok, err := s.ledger.Debit(ctx, userID, cost, attemptID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	if !ok {
		return nil, ErrInsufficientVolts
	}

	// Debited. From here the attempt must reach a terminal state even if
	// the caller has stopped waiting, so detach from caller cancellation.
	ctx = context.WithoutCancel(ctx)

	research, err := s.researcher.Research(ctx, req.Keyword, req.Theme)
	if err != nil {
		return s.refund(ctx, userID, attemptID, req, cost, fmt.Errorf("research: %w", err))
	}

	draft, err := s.drafter.Draft(ctx, drafting.DraftRequest{
		Keyword:    req.Keyword,
		Research:   research,
		Theme:      req.Theme,
		StyleGuide: req.StyleGuide,
	})
	if err != nil {
		return s.refund(ctx, userID, attemptID, req, cost, fmt.Errorf("draft: %w", err))
	}

	out := &Outcome{Status: models.GenerationStatusSuccess, Draft: draft, Charged: cost}

	// Archival failures must not swallow a successful draft: the text is
	// returned regardless and the failure is reported separately.
	post := &models.Post{
		ID:      uuid.New(),
		UserID:  userID,
		Keyword: req.Keyword,
		Theme:   req.Theme,
		Mode:    req.Mode,
		Content: draft,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		s.log.Error("archive post failed", "attempt_id", attemptID, "user_id", userID, "error", err)
		out.ArchivalErr = err
	}

	if err := s.logs.Create(ctx, &models.GenerationLog{
		ID:           attemptID,
		UserID:       userID,
		Keyword:      req.Keyword,
		Theme:        req.Theme,
		VoltsCharged: cost,
		Status:       models.GenerationStatusSuccess,
	}); err != nil {
		s.log.Error("write generation log failed", "attempt_id", attemptID, "error", err)
		out.ArchivalErr = errors.Join(out.ArchivalErr, err)
	}

	if err := s.users.IncrementDailyCount(ctx, userID); err != nil {
		s.log.Warn("increment daily count failed", "user_id", userID, "error", err)
	}

	return out, nil
}

// refund is the single post-debit failure exit: credit the charge back once,
// write the one refunded log row, and surface an error whose wording makes
// clear the money already came back.
func (s *Service) refund(ctx context.Context, userID, attemptID uuid.UUID, req Request, cost int, cause error) (*Outcome, error) {
	if err := s.ledger.Credit(ctx, userID, cost, models.VoltEntryGenerationRefund, &attemptID); err != nil {
		// The user was charged and the refund could not be applied. Log loudly;
		// the attempt is still recorded as refunded for reconciliation.
		s.log.Error("refund failed after generation failure",
			"attempt_id", attemptID, "user_id", userID, "volts", cost, "error", err)
	}

	detail := cause.Error()
	if err := s.logs.Create(ctx, &models.GenerationLog{
		ID:           attemptID,
		UserID:       userID,
		Keyword:      req.Keyword,
		Theme:        req.Theme,
		VoltsCharged: cost,
		Status:       models.GenerationStatusRefunded,
		ErrorDetail:  &detail,
	}); err != nil {
		s.log.Error("write refunded log failed", "attempt_id", attemptID, "error", err)
	}

	s.log.Warn("generation refunded", "attempt_id", attemptID, "user_id", userID, "volts", cost, "cause", cause)
	return &Outcome{Status: models.GenerationStatusRefunded, Charged: cost},
		fmt.Errorf("%w: %v", ErrGenerationFailed, cause)
}
