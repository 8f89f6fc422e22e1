package transfer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/balance-board/backend/internal/application/adapter"
	"github.com/balance-board/backend/internal/domain/entity"
	domainerror "github.com/balance-board/backend/internal/domain/error"
)

// fakeStore is an in-memory TransferStore with the same retry contract as
// the persistence implementation: the function is re-run with fresh reads on
// a write conflict, up to maxAttempts.
type fakeStore struct {
	mu          sync.Mutex
	categories  map[uuid.UUID]*entity.Category
	entries     []*entity.Transaction
	totals      entity.LedgerTotals
	now         time.Time
	maxAttempts int

	// conflictsToInject makes the next N UpdateBalance calls fail.
	conflictsToInject int
	attempts          int
}

func newFakeStore(now time.Time, categories ...*entity.Category) *fakeStore {
	s := &fakeStore{
		categories:  make(map[uuid.UUID]*entity.Category),
		now:         now,
		maxAttempts: 5,
	}
	for _, c := range categories {
		s.categories[c.ID] = c
	}
	return s
}

func (s *fakeStore) RunAtomic(_ context.Context, fn func(tx adapter.TransferTx) error) error {
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		s.mu.Lock()
		s.attempts++
		tx := &fakeTx{store: s}
		err := fn(tx)
		if err == nil {
			tx.commit()
			s.mu.Unlock()
			return nil
		}
		s.mu.Unlock()

		if !errors.Is(err, adapter.ErrWriteConflict) {
			return err
		}
	}
	return domainerror.NewTransferError(
		domainerror.ErrCodeConflictRetryExhausted,
		"transfer aborted after repeated write conflicts",
		domainerror.ErrConflictRetryExhausted,
	)
}

type stagedBalance struct {
	id      uuid.UUID
	balance decimal.Decimal
}

type fakeTx struct {
	store          *fakeStore
	stagedEntries  []*entity.Transaction
	stagedBalances []stagedBalance
	balanceDelta   decimal.Decimal
	expensesDelta  decimal.Decimal
}

func (t *fakeTx) Category(id uuid.UUID) (*entity.Category, error) {
	c, ok := t.store.categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	copied := *c
	return &copied, nil
}

func (t *fakeTx) InsertEntry(entry *entity.Transaction) error {
	t.stagedEntries = append(t.stagedEntries, entry)
	return nil
}

func (t *fakeTx) UpdateBalance(category *entity.Category, newBalance decimal.Decimal) error {
	if t.store.conflictsToInject > 0 {
		t.store.conflictsToInject--
		return adapter.ErrWriteConflict
	}
	current, ok := t.store.categories[category.ID]
	if !ok || current.Version != category.Version {
		return adapter.ErrWriteConflict
	}
	t.stagedBalances = append(t.stagedBalances, stagedBalance{id: category.ID, balance: newBalance})
	return nil
}

func (t *fakeTx) AddToTotals(balanceDelta, expensesDelta decimal.Decimal) error {
	t.balanceDelta = balanceDelta
	t.expensesDelta = expensesDelta
	return nil
}

func (t *fakeTx) Timestamp() time.Time {
	return t.store.now
}

func (t *fakeTx) commit() {
	t.store.entries = append(t.store.entries, t.stagedEntries...)
	for _, sb := range t.stagedBalances {
		c := t.store.categories[sb.id]
		c.Balance = sb.balance
		c.Version++
	}
	t.store.totals.Balance = t.store.totals.Balance.Add(t.balanceDelta)
	t.store.totals.Expenses = t.store.totals.Expenses.Add(t.expensesDelta)
}

type fakeNotifier struct {
	mu        sync.Mutex
	published []string
}

func (n *fakeNotifier) Publish(_ context.Context, topic string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.published = append(n.published, topic)
	return nil
}

func (n *fakeNotifier) Subscribe(context.Context, string) (<-chan struct{}, error) {
	ch := make(chan struct{})
	close(ch)
	return ch, nil
}

func makeCategory(title string, balance int64, row entity.Row) *entity.Category {
	return entity.NewCategory(title, decimal.NewFromInt(balance), row, "", "", false)
}

func transferCodeOf(t *testing.T, err error) domainerror.TransferErrorCode {
	t.Helper()
	var transferErr *domainerror.TransferError
	if !errors.As(err, &transferErr) {
		t.Fatalf("expected *TransferError, got %v", err)
	}
	return transferErr.Code
}

func TestTransferFunds_Validation(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	source := makeCategory("Client A", 500, entity.RowClient)
	target := makeCategory("Builder", 200, entity.RowEmployee)

	t.Run("zero amount fails before any write", func(t *testing.T) {
		store := newFakeStore(now, source, target)
		uc := NewTransferFundsUseCase(store, &fakeNotifier{}, Policy{AllowNegativeBalance: true})

		_, err := uc.Execute(context.Background(), TransferFundsInput{
			SourceID: source.ID, TargetID: target.ID,
			Amount: decimal.Zero, Description: "memo",
		})
		if code := transferCodeOf(t, err); code != domainerror.ErrCodeInvalidAmount {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidAmount, code)
		}
		if store.attempts != 0 {
			t.Errorf("expected no storage attempts, got %d", store.attempts)
		}
	})

	t.Run("negative amount fails", func(t *testing.T) {
		store := newFakeStore(now, source, target)
		uc := NewTransferFundsUseCase(store, &fakeNotifier{}, Policy{AllowNegativeBalance: true})

		_, err := uc.Execute(context.Background(), TransferFundsInput{
			SourceID: source.ID, TargetID: target.ID,
			Amount: decimal.NewFromInt(-10), Description: "memo",
		})
		if code := transferCodeOf(t, err); code != domainerror.ErrCodeInvalidAmount {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInvalidAmount, code)
		}
	})

	t.Run("blank description fails before any write", func(t *testing.T) {
		store := newFakeStore(now, source, target)
		uc := NewTransferFundsUseCase(store, &fakeNotifier{}, Policy{AllowNegativeBalance: true})

		_, err := uc.Execute(context.Background(), TransferFundsInput{
			SourceID: source.ID, TargetID: target.ID,
			Amount: decimal.NewFromInt(100), Description: "   ",
		})
		if code := transferCodeOf(t, err); code != domainerror.ErrCodeMissingDescription {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeMissingDescription, code)
		}
		if store.attempts != 0 {
			t.Errorf("expected no storage attempts, got %d", store.attempts)
		}
	})
}

func TestTransferFunds_Success(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	source := makeCategory("Client A", 500, entity.RowClient)
	target := makeCategory("Builder", 200, entity.RowEmployee)
	store := newFakeStore(now, source, target)
	notifier := &fakeNotifier{}
	uc := NewTransferFundsUseCase(store, notifier, Policy{AllowNegativeBalance: true})

	out, err := uc.Execute(context.Background(), TransferFundsInput{
		SourceID: source.ID, TargetID: target.ID,
		Amount: decimal.NewFromInt(100), Description: "rent",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("balances move by the amount", func(t *testing.T) {
		if !store.categories[source.ID].Balance.Equal(decimal.NewFromInt(400)) {
			t.Errorf("source balance = %s, want 400", store.categories[source.ID].Balance)
		}
		if !store.categories[target.ID].Balance.Equal(decimal.NewFromInt(300)) {
			t.Errorf("target balance = %s, want 300", store.categories[target.ID].Balance)
		}
	})

	t.Run("conservation holds", func(t *testing.T) {
		sum := store.categories[source.ID].Balance.Add(store.categories[target.ID].Balance)
		if !sum.Equal(decimal.NewFromInt(700)) {
			t.Errorf("balance sum = %s, want 700", sum)
		}
	})

	t.Run("exactly two ledger legs", func(t *testing.T) {
		if len(store.entries) != 2 {
			t.Fatalf("expected 2 ledger entries, got %d", len(store.entries))
		}
		expense, income := store.entries[0], store.entries[1]

		if expense.Type != entity.TransactionTypeExpense || !expense.Amount.Equal(decimal.NewFromInt(-100)) {
			t.Errorf("expense leg = %s %s", expense.Type, expense.Amount)
		}
		if income.Type != entity.TransactionTypeIncome || !income.Amount.Equal(decimal.NewFromInt(100)) {
			t.Errorf("income leg = %s %s", income.Type, income.Amount)
		}
		if expense.CategoryID != source.ID || income.CategoryID != target.ID {
			t.Error("legs posted against wrong categories")
		}
		if !expense.Date.Equal(income.Date) {
			t.Error("legs must share one commit timestamp")
		}
		if expense.Description != "rent" || income.Description != "rent" {
			t.Error("legs must share the description")
		}
		if expense.FromCategory != "Client A" || expense.ToCategory != "Builder" ||
			income.FromCategory != "Client A" || income.ToCategory != "Builder" {
			t.Error("legs must snapshot both titles")
		}
	})

	t.Run("totals updated in the same commit", func(t *testing.T) {
		if !store.totals.Balance.Equal(decimal.Zero) {
			t.Errorf("totals balance = %s, want 0", store.totals.Balance)
		}
		if !store.totals.Expenses.Equal(decimal.NewFromInt(100)) {
			t.Errorf("totals expenses = %s, want 100", store.totals.Expenses)
		}
	})

	t.Run("output mirrors committed state", func(t *testing.T) {
		if !out.SourceBalance.Equal(decimal.NewFromInt(400)) || !out.TargetBalance.Equal(decimal.NewFromInt(300)) {
			t.Errorf("output balances = %s / %s", out.SourceBalance, out.TargetBalance)
		}
		if !out.CommittedAt.Equal(now) {
			t.Errorf("committed at = %v, want %v", out.CommittedAt, now)
		}
	})

	t.Run("both topics published", func(t *testing.T) {
		if len(notifier.published) != 2 {
			t.Fatalf("expected 2 publishes, got %d", len(notifier.published))
		}
		if notifier.published[0] != adapter.TopicCategories || notifier.published[1] != adapter.TopicLedger {
			t.Errorf("published topics = %v", notifier.published)
		}
	})
}

func TestTransferFunds_RowAdjacency(t *testing.T) {
	now := time.Now().UTC()
	client := makeCategory("Client", 500, entity.RowClient)
	employee := makeCategory("Employee", 500, entity.RowEmployee)
	project := makeCategory("Project", 500, entity.RowProject)
	warehouse := makeCategory("Warehouse", 500, entity.RowWarehouse)

	cases := []struct {
		name    string
		source  *entity.Category
		target  *entity.Category
		allowed bool
	}{
		{"client to employee", client, employee, true},
		{"employee to project", employee, project, true},
		{"employee to warehouse", employee, warehouse, true},
		{"warehouse to employee", warehouse, employee, true},
		{"employee to client rejected", employee, client, false},
		{"client to project rejected", client, project, false},
		{"project to warehouse rejected", project, warehouse, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newFakeStore(now, client, employee, project, warehouse)
			uc := NewTransferFundsUseCase(store, &fakeNotifier{}, Policy{AllowNegativeBalance: true})

			_, err := uc.Execute(context.Background(), TransferFundsInput{
				SourceID: tc.source.ID, TargetID: tc.target.ID,
				Amount: decimal.NewFromInt(10), Description: "memo",
			})
			if tc.allowed && err != nil {
				t.Fatalf("expected success, got %v", err)
			}
			if !tc.allowed {
				if code := transferCodeOf(t, err); code != domainerror.ErrCodeRowsNotAdjacent {
					t.Errorf("expected code %s, got %s", domainerror.ErrCodeRowsNotAdjacent, code)
				}
				if len(store.entries) != 0 {
					t.Error("rejected transfer must not append ledger entries")
				}
			}
		})
	}
}

func TestTransferFunds_CategoryNotFound(t *testing.T) {
	now := time.Now().UTC()
	source := makeCategory("Client", 500, entity.RowClient)
	store := newFakeStore(now, source)
	uc := NewTransferFundsUseCase(store, &fakeNotifier{}, Policy{AllowNegativeBalance: true})

	_, err := uc.Execute(context.Background(), TransferFundsInput{
		SourceID: source.ID, TargetID: uuid.New(),
		Amount: decimal.NewFromInt(10), Description: "memo",
	})
	if code := transferCodeOf(t, err); code != domainerror.ErrCodeTransferCategoryNotFound {
		t.Errorf("expected code %s, got %s", domainerror.ErrCodeTransferCategoryNotFound, code)
	}
}

func TestTransferFunds_OverdraftPolicy(t *testing.T) {
	now := time.Now().UTC()

	t.Run("rejected when nothing allows negative balances", func(t *testing.T) {
		source := makeCategory("Client", 50, entity.RowClient)
		target := makeCategory("Employee", 0, entity.RowEmployee)
		store := newFakeStore(now, source, target)
		uc := NewTransferFundsUseCase(store, &fakeNotifier{}, Policy{AllowNegativeBalance: false})

		_, err := uc.Execute(context.Background(), TransferFundsInput{
			SourceID: source.ID, TargetID: target.ID,
			Amount: decimal.NewFromInt(100), Description: "memo",
		})
		if code := transferCodeOf(t, err); code != domainerror.ErrCodeInsufficientFunds {
			t.Errorf("expected code %s, got %s", domainerror.ErrCodeInsufficientFunds, code)
		}
		if !store.categories[source.ID].Balance.Equal(decimal.NewFromInt(50)) {
			t.Error("rejected transfer must not move funds")
		}
	})

	t.Run("allowed by global policy", func(t *testing.T) {
		source := makeCategory("Client", 50, entity.RowClient)
		target := makeCategory("Employee", 0, entity.RowEmployee)
		store := newFakeStore(now, source, target)
		uc := NewTransferFundsUseCase(store, &fakeNotifier{}, Policy{AllowNegativeBalance: true})

		if _, err := uc.Execute(context.Background(), TransferFundsInput{
			SourceID: source.ID, TargetID: target.ID,
			Amount: decimal.NewFromInt(100), Description: "memo",
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !store.categories[source.ID].Balance.Equal(decimal.NewFromInt(-50)) {
			t.Errorf("source balance = %s, want -50", store.categories[source.ID].Balance)
		}
	})

	t.Run("allowed by per-category override", func(t *testing.T) {
		source := makeCategory("Client", 50, entity.RowClient)
		source.AllowNegative = true
		target := makeCategory("Employee", 0, entity.RowEmployee)
		store := newFakeStore(now, source, target)
		uc := NewTransferFundsUseCase(store, &fakeNotifier{}, Policy{AllowNegativeBalance: false})

		if _, err := uc.Execute(context.Background(), TransferFundsInput{
			SourceID: source.ID, TargetID: target.ID,
			Amount: decimal.NewFromInt(100), Description: "memo",
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestTransferFunds_ConflictRetry(t *testing.T) {
	now := time.Now().UTC()

	t.Run("retries re-read and apply once", func(t *testing.T) {
		source := makeCategory("Client", 500, entity.RowClient)
		target := makeCategory("Employee", 200, entity.RowEmployee)
		store := newFakeStore(now, source, target)
		store.conflictsToInject = 2
		uc := NewTransferFundsUseCase(store, &fakeNotifier{}, Policy{AllowNegativeBalance: true})

		if _, err := uc.Execute(context.Background(), TransferFundsInput{
			SourceID: source.ID, TargetID: target.ID,
			Amount: decimal.NewFromInt(100), Description: "rent",
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if store.attempts != 3 {
			t.Errorf("expected 3 attempts, got %d", store.attempts)
		}
		if len(store.entries) != 2 {
			t.Errorf("retry must not double-apply: got %d entries", len(store.entries))
		}
		if !store.categories[source.ID].Balance.Equal(decimal.NewFromInt(400)) {
			t.Errorf("source balance = %s, want 400", store.categories[source.ID].Balance)
		}
	})

	t.Run("exhaustion surfaces and a later retry succeeds cleanly", func(t *testing.T) {
		source := makeCategory("Client", 500, entity.RowClient)
		target := makeCategory("Employee", 200, entity.RowEmployee)
		store := newFakeStore(now, source, target)
		store.conflictsToInject = 100
		uc := NewTransferFundsUseCase(store, &fakeNotifier{}, Policy{AllowNegativeBalance: true})

		input := TransferFundsInput{
			SourceID: source.ID, TargetID: target.ID,
			Amount: decimal.NewFromInt(100), Description: "rent",
		}

		_, err := uc.Execute(context.Background(), input)
		if code := transferCodeOf(t, err); code != domainerror.ErrCodeConflictRetryExhausted {
			t.Fatalf("expected code %s, got %s", domainerror.ErrCodeConflictRetryExhausted, code)
		}
		if len(store.entries) != 0 {
			t.Fatal("exhausted transfer must leave no partial state")
		}

		// Conflicting writer finished; the same call must now succeed without
		// double-applying anything from the failed run.
		store.conflictsToInject = 0
		if _, err := uc.Execute(context.Background(), input); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !store.categories[source.ID].Balance.Equal(decimal.NewFromInt(400)) {
			t.Errorf("source balance = %s, want 400", store.categories[source.ID].Balance)
		}
		if len(store.entries) != 2 {
			t.Errorf("expected 2 entries, got %d", len(store.entries))
		}
	})
}

func TestTransferFunds_ConcurrentDebits(t *testing.T) {
	now := time.Now().UTC()
	source := makeCategory("Client", 100, entity.RowClient)
	a := makeCategory("Employee A", 0, entity.RowEmployee)
	b := makeCategory("Employee B", 0, entity.RowEmployee)
	store := newFakeStore(now, source, a, b)
	uc := NewTransferFundsUseCase(store, &fakeNotifier{}, Policy{AllowNegativeBalance: true})

	var wg sync.WaitGroup
	errs := make([]error, 2)
	amounts := []int64{50, 30}
	targets := []*entity.Category{a, b}

	for i := range amounts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(context.Background(), TransferFundsInput{
				SourceID: source.ID, TargetID: targets[i].ID,
				Amount: decimal.NewFromInt(amounts[i]), Description: "payout",
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("transfer %d failed: %v", i, err)
		}
	}

	// 100 − 50 − 30 = 20; a lost update would leave 50 or 70.
	if !store.categories[source.ID].Balance.Equal(decimal.NewFromInt(20)) {
		t.Errorf("source balance = %s, want 20", store.categories[source.ID].Balance)
	}
	if len(store.entries) != 4 {
		t.Errorf("expected 4 ledger entries, got %d", len(store.entries))
	}
}
