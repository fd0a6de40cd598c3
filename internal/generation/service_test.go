package generation

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/blogvolt/backend/internal/drafting"
	"github.com/blogvolt/backend/internal/models"
)

// ---------------------------------------------------------------------------
// In-memory mocks. These let us test the real orchestration logic without a
// database or live providers.
// ---------------------------------------------------------------------------

type mockLedger struct {
	mu       sync.Mutex
	balances map[uuid.UUID]int
	debitErr error
	debits   []int
	credits  []int
}

func newMockLedger(userID uuid.UUID, balance int) *mockLedger {
	return &mockLedger{balances: map[uuid.UUID]int{userID: balance}}
}

func (m *mockLedger) Debit(_ context.Context, userID uuid.UUID, amount int, _ uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.debitErr != nil {
		return false, m.debitErr
	}
	if m.balances[userID] < amount {
		return false, nil
	}
	m.balances[userID] -= amount
	m.debits = append(m.debits, amount)
	return true, nil
}

func (m *mockLedger) Credit(_ context.Context, userID uuid.UUID, amount int, _ string, _ *uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[userID] += amount
	m.credits = append(m.credits, amount)
	return nil
}

func (m *mockLedger) balance(userID uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[userID]
}

type mockResearcher struct {
	text string
	err  error
}

func (m *mockResearcher) Research(_ context.Context, _, _ string) (string, error) {
	return m.text, m.err
}

type mockDrafter struct {
	text string
	err  error
}

func (m *mockDrafter) Draft(_ context.Context, _ drafting.DraftRequest) (string, error) {
	return m.text, m.err
}

type mockPosts struct {
	mu    sync.Mutex
	posts []*models.Post
	err   error
}

func (m *mockPosts) Create(_ context.Context, p *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	cp := *p
	m.posts = append(m.posts, &cp)
	return nil
}

type mockLogs struct {
	mu      sync.Mutex
	entries []*models.GenerationLog
}

func (m *mockLogs) Create(_ context.Context, e *models.GenerationLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *e
	m.entries = append(m.entries, &cp)
	return nil
}

func (m *mockLogs) byStatus(status string) []*models.GenerationLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.GenerationLog
	for _, e := range m.entries {
		if e.Status == status {
			out = append(out, e)
		}
	}
	return out
}

type mockUsers struct {
	mu         sync.Mutex
	increments int
}

func (m *mockUsers) IncrementDailyCount(_ context.Context, _ uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.increments++
	return nil
}

type fixedCosts struct{ basic, pro int }

func (f fixedCosts) CostForMode(mode string) int {
	if mode == models.ModePro {
		return f.pro
	}
	return f.basic
}

// ---------------------------------------------------------------------------
// Harness
// ---------------------------------------------------------------------------

type harness struct {
	svc    *Service
	ledger *mockLedger
	posts  *mockPosts
	logs   *mockLogs
	users  *mockUsers
	userID uuid.UUID
}

func newHarness(balance int, researcher Researcher, drafter Drafter) *harness {
	userID := uuid.New()
	h := &harness{
		ledger: newMockLedger(userID, balance),
		posts:  &mockPosts{},
		logs:   &mockLogs{},
		users:  &mockUsers{},
		userID: userID,
	}
	h.svc = NewService(h.ledger, researcher, drafter, h.posts, h.logs, h.users,
		fixedCosts{basic: 10, pro: 20}, nil)
	return h
}

func okResearcher() *mockResearcher { return &mockResearcher{text: "research notes"} }
func okDrafter() *mockDrafter      { return &mockDrafter{text: "a long draft"} }

// ---------------------------------------------------------------------------
// Validation: no side effects before the debit.
// ---------------------------------------------------------------------------

func TestGenerate_EmptyKeyword(t *testing.T) {
	h := newHarness(100, okResearcher(), okDrafter())

	_, err := h.svc.Generate(context.Background(), h.userID, Request{Keyword: "   ", Theme: "travel"})
	if !errors.Is(err, ErrEmptyKeyword) {
		t.Fatalf("expected ErrEmptyKeyword, got %v", err)
	}
	if got := h.ledger.balance(h.userID); got != 100 {
		t.Errorf("balance changed on validation failure: %d", got)
	}
	if len(h.logs.entries) != 0 {
		t.Errorf("log entries written on validation failure: %d", len(h.logs.entries))
	}
}

func TestGenerate_NoUser(t *testing.T) {
	h := newHarness(100, okResearcher(), okDrafter())

	_, err := h.svc.Generate(context.Background(), uuid.Nil, Request{Keyword: "coffee"})
	if !errors.Is(err, ErrNoUser) {
		t.Fatalf("expected ErrNoUser, got %v", err)
	}
}

func TestGenerate_UnknownTheme(t *testing.T) {
	h := newHarness(100, okResearcher(), okDrafter())

	_, err := h.svc.Generate(context.Background(), h.userID, Request{Keyword: "coffee", Theme: "gardening"})
	if !errors.Is(err, ErrInvalidTheme) {
		t.Fatalf("expected ErrInvalidTheme, got %v", err)
	}
	if got := h.ledger.balance(h.userID); got != 100 {
		t.Errorf("balance changed on validation failure: %d", got)
	}
}

// ---------------------------------------------------------------------------
// Payment failure: aborted before any provider call, no refund, no log.
// ---------------------------------------------------------------------------

func TestGenerate_InsufficientVolts(t *testing.T) {
	h := newHarness(5, okResearcher(), okDrafter())

	_, err := h.svc.Generate(context.Background(), h.userID, Request{Keyword: "coffee", Theme: "daily"})
	if !errors.Is(err, ErrInsufficientVolts) {
		t.Fatalf("expected ErrInsufficientVolts, got %v", err)
	}
	if got := h.ledger.balance(h.userID); got != 5 {
		t.Errorf("balance: got %d, want 5 (untouched)", got)
	}
	if len(h.ledger.credits) != 0 {
		t.Errorf("refund issued for a failed debit: %v", h.ledger.credits)
	}
	if len(h.logs.entries) != 0 {
		t.Errorf("log entries written for a failed debit: %d", len(h.logs.entries))
	}
}

func TestGenerate_DebitCallError(t *testing.T) {
	h := newHarness(100, okResearcher(), okDrafter())
	h.ledger.debitErr = errors.New("connection reset")

	_, err := h.svc.Generate(context.Background(), h.userID, Request{Keyword: "coffee", Theme: "daily"})
	if !errors.Is(err, ErrPaymentFailed) {
		t.Fatalf("expected ErrPaymentFailed, got %v", err)
	}
	if len(h.ledger.credits) != 0 || len(h.logs.entries) != 0 {
		t.Error("debit call failure must leave no refund and no log")
	}
}

// ---------------------------------------------------------------------------
// Post-debit failures: exactly one refund, exactly one refunded log.
// ---------------------------------------------------------------------------

func TestGenerate_ResearchFails(t *testing.T) {
	h := newHarness(100, &mockResearcher{err: errors.New("provider down")}, okDrafter())

	out, err := h.svc.Generate(context.Background(), h.userID, Request{Keyword: "coffee", Theme: "daily"})
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	if out == nil || out.Status != models.GenerationStatusRefunded {
		t.Fatalf("outcome: got %+v, want refunded", out)
	}
	if got := h.ledger.balance(h.userID); got != 100 {
		t.Errorf("balance after refund: got %d, want 100", got)
	}
	if len(h.ledger.credits) != 1 || h.ledger.credits[0] != 10 {
		t.Errorf("refunds: got %v, want exactly one of 10", h.ledger.credits)
	}
	refunded := h.logs.byStatus(models.GenerationStatusRefunded)
	if len(refunded) != 1 {
		t.Fatalf("refunded logs: got %d, want 1", len(refunded))
	}
	if refunded[0].ErrorDetail == nil || *refunded[0].ErrorDetail == "" {
		t.Error("refunded log should capture the error detail")
	}
	if len(h.logs.entries) != 1 {
		t.Errorf("total logs: got %d, want exactly 1 per attempt", len(h.logs.entries))
	}
}

// The end-to-end scenario: 15 volts, cost 10, research ok, drafting terminal
// failure. Balance 15 → 5 → 15, one refunded log, and the surfaced error is
// the refunded one, not insufficient funds.
func TestGenerate_DraftFailsAfterDebit(t *testing.T) {
	h := newHarness(15, okResearcher(), &mockDrafter{err: errors.New("invalid request")})

	out, err := h.svc.Generate(context.Background(), h.userID, Request{Keyword: "coffee", Theme: "review"})
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("expected ErrGenerationFailed, got %v", err)
	}
	if errors.Is(err, ErrInsufficientVolts) {
		t.Error("refunded failure must not read as insufficient funds")
	}
	if got := h.ledger.balance(h.userID); got != 15 {
		t.Errorf("balance: got %d, want 15 (fully refunded)", got)
	}
	if out.Charged != 10 {
		t.Errorf("charged: got %d, want 10", out.Charged)
	}
	if len(h.logs.byStatus(models.GenerationStatusRefunded)) != 1 {
		t.Error("want exactly one refunded log")
	}
	if len(h.posts.posts) != 0 {
		t.Error("no post should be archived for a failed attempt")
	}
}

// ---------------------------------------------------------------------------
// Success path.
// ---------------------------------------------------------------------------

func TestGenerate_Success(t *testing.T) {
	h := newHarness(100, okResearcher(), okDrafter())

	out, err := h.svc.Generate(context.Background(), h.userID, Request{Keyword: "hand drip", Theme: "restaurant"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out.Status != models.GenerationStatusSuccess {
		t.Errorf("status: got %q", out.Status)
	}
	if out.Draft != "a long draft" {
		t.Errorf("draft: got %q", out.Draft)
	}
	if got := h.ledger.balance(h.userID); got != 90 {
		t.Errorf("balance: got %d, want 90", got)
	}
	if len(h.posts.posts) != 1 {
		t.Fatalf("posts: got %d, want 1", len(h.posts.posts))
	}
	if h.posts.posts[0].Content != "a long draft" {
		t.Error("archived post should carry the draft text")
	}
	success := h.logs.byStatus(models.GenerationStatusSuccess)
	if len(success) != 1 {
		t.Fatalf("success logs: got %d, want 1", len(success))
	}
	if success[0].VoltsCharged != 10 {
		t.Errorf("logged charge: got %d, want 10", success[0].VoltsCharged)
	}
	if len(h.ledger.credits) != 0 {
		t.Errorf("refunds on success: %v", h.ledger.credits)
	}
	if h.users.increments != 1 {
		t.Errorf("daily count increments: got %d, want 1", h.users.increments)
	}
}

func TestGenerate_ProModeCost(t *testing.T) {
	h := newHarness(100, okResearcher(), okDrafter())

	out, err := h.svc.Generate(context.Background(), h.userID, Request{Keyword: "etf", Theme: "finance", Mode: "pro"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out.Charged != 20 {
		t.Errorf("pro charge: got %d, want 20", out.Charged)
	}
	if got := h.ledger.balance(h.userID); got != 80 {
		t.Errorf("balance: got %d, want 80", got)
	}
}

// Identical requests are independent attempts: no implicit dedup.
func TestGenerate_NoDedup(t *testing.T) {
	h := newHarness(100, okResearcher(), okDrafter())
	req := Request{Keyword: "coffee", Theme: "daily"}

	for i := 0; i < 2; i++ {
		if _, err := h.svc.Generate(context.Background(), h.userID, req); err != nil {
			t.Fatalf("Generate #%d: %v", i+1, err)
		}
	}
	if got := h.ledger.balance(h.userID); got != 80 {
		t.Errorf("balance: got %d, want 80 (two independent debits)", got)
	}
	if len(h.posts.posts) != 2 {
		t.Errorf("posts: got %d, want 2", len(h.posts.posts))
	}
	if len(h.logs.byStatus(models.GenerationStatusSuccess)) != 2 {
		t.Error("want two independent success logs")
	}
}

// ---------------------------------------------------------------------------
// Archival failure: the draft survives, the failure is reported separately.
// ---------------------------------------------------------------------------

func TestGenerate_ArchivalFailureKeepsDraft(t *testing.T) {
	h := newHarness(100, okResearcher(), okDrafter())
	h.posts.err = errors.New("disk full")

	out, err := h.svc.Generate(context.Background(), h.userID, Request{Keyword: "coffee", Theme: "daily"})
	if err != nil {
		t.Fatalf("archival failure must not fail the generation: %v", err)
	}
	if out.Draft != "a long draft" {
		t.Error("draft must still be returned when archival fails")
	}
	if out.ArchivalErr == nil {
		t.Error("archival failure should be reported on the outcome")
	}
	if out.Status != models.GenerationStatusSuccess {
		t.Errorf("status: got %q, want success (no refund for archival failures)", out.Status)
	}
	if got := h.ledger.balance(h.userID); got != 90 {
		t.Errorf("balance: got %d, want 90 (charge stands)", got)
	}
	if len(h.ledger.credits) != 0 {
		t.Error("archival failure must not trigger a refund")
	}
}

// Caller abandonment must not strand a debited attempt: a context cancelled
// right after the call still drives the attempt to its terminal state.
func TestGenerate_RunsToTerminalStateAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	h := newHarness(100, &mockResearcher{text: "notes"}, &mockDrafter{text: "draft"})
	cancel() // caller is already gone before the providers run

	out, err := h.svc.Generate(ctx, h.userID, Request{Keyword: "coffee", Theme: "daily"})
	if err != nil {
		t.Fatalf("Generate after caller cancel: %v", err)
	}
	if out.Status != models.GenerationStatusSuccess {
		t.Errorf("status: got %q, want success", out.Status)
	}
	if ctx.Err() == nil {
		t.Fatal("sanity: caller context should be cancelled")
	}
}
