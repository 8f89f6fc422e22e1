package stats

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/balance-board/backend/internal/domain/entity"
)

type fakeStatsRepo struct {
	mu     sync.Mutex
	totals entity.LedgerTotals
}

func (r *fakeStatsRepo) Totals(context.Context) (*entity.LedgerTotals, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := r.totals
	return &copied, nil
}

func (r *fakeStatsRepo) Recompute(ctx context.Context) (*entity.LedgerTotals, error) {
	return r.Totals(ctx)
}

func (r *fakeStatsRepo) set(balance, expenses int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.totals.Balance = decimal.NewFromInt(balance)
	r.totals.Expenses = decimal.NewFromInt(expenses)
}

type fakeNotifier struct {
	mu      sync.Mutex
	signals []chan struct{}
}

func (n *fakeNotifier) Publish(context.Context, string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.signals {
		ch <- struct{}{}
	}
	return nil
}

func (n *fakeNotifier) Subscribe(context.Context, string) (<-chan struct{}, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	ch := make(chan struct{}, 1)
	n.signals = append(n.signals, ch)
	return ch, nil
}

func TestGetStats(t *testing.T) {
	repo := &fakeStatsRepo{}
	repo.set(0, 250)
	uc := NewGetStatsUseCase(repo)

	out, err := uc.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !out.Balance.Equal(decimal.Zero) {
		t.Errorf("balance = %s, want 0", out.Balance)
	}
	if !out.Expenses.Equal(decimal.NewFromInt(250)) {
		t.Errorf("expenses = %s, want 250", out.Expenses)
	}
	if !out.Planned.Equal(decimal.Zero) {
		t.Errorf("planned = %s, want 0 (placeholder)", out.Planned)
	}
}

func TestWatchStats(t *testing.T) {
	repo := &fakeStatsRepo{}
	repo.set(0, 100)
	notifier := &fakeNotifier{}
	uc := NewWatchStatsUseCase(repo, notifier)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream, err := uc.Execute(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("emits current totals on subscribe", func(t *testing.T) {
		select {
		case out := <-stream:
			if !out.Expenses.Equal(decimal.NewFromInt(100)) {
				t.Errorf("expenses = %s, want 100", out.Expenses)
			}
		case <-time.After(time.Second):
			t.Fatal("no initial emission")
		}
	})

	t.Run("re-emits after a ledger signal", func(t *testing.T) {
		repo.set(0, 175)
		if err := notifier.Publish(context.Background(), "ledger"); err != nil {
			t.Fatal(err)
		}
		select {
		case out := <-stream:
			if !out.Expenses.Equal(decimal.NewFromInt(175)) {
				t.Errorf("expenses = %s, want 175", out.Expenses)
			}
		case <-time.After(time.Second):
			t.Fatal("no emission after signal")
		}
	})

	t.Run("closes on context cancel", func(t *testing.T) {
		cancel()
		select {
		case _, ok := <-stream:
			if ok {
				// A buffered emission may still be in flight; the next
				// receive must observe the close.
				if _, ok := <-stream; ok {
					t.Error("stream still open after cancel")
				}
			}
		case <-time.After(time.Second):
			t.Fatal("stream did not close")
		}
	})
}
