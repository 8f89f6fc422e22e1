package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/balance-board/backend/internal/application/adapter"
	"github.com/balance-board/backend/internal/domain/entity"
	domainerror "github.com/balance-board/backend/internal/domain/error"
)

type fakeLedgerRepo struct {
	entries   []*entity.Transaction
	lastLimit int
}

func (f *fakeLedgerRepo) HistoryFor(ctx context.Context, categoryID uuid.UUID, limit int) ([]*entity.Transaction, error) {
	f.lastLimit = limit
	var out []*entity.Transaction
	for _, e := range f.entries {
		if e.CategoryID == categoryID {
			out = append(out, e)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeLedgerRepo) FindAll(ctx context.Context) ([]*entity.Transaction, error) {
	return f.entries, nil
}

type fakeCategoryRepo struct {
	known map[uuid.UUID]*entity.Category
}

func (f *fakeCategoryRepo) Create(ctx context.Context, category *entity.Category) error {
	f.known[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	if cat, ok := f.known[id]; ok {
		return cat, nil
	}
	return nil, domainerror.ErrCategoryNotFound
}

func (f *fakeCategoryRepo) FindAll(ctx context.Context) ([]*entity.Category, error) {
	return nil, nil
}

func (f *fakeCategoryRepo) Watch(ctx context.Context) (<-chan []*entity.Category, error) {
	return nil, errors.New("not implemented")
}

func TestListHistory(t *testing.T) {
	cat := entity.NewCategory("Alice", decimal.Zero, entity.RowEmployee,
		entity.DefaultCategoryColor, entity.DefaultCategoryIcon, false)
	other := uuid.New()

	ledgerRepo := &fakeLedgerRepo{}
	for i := 0; i < 3; i++ {
		ledgerRepo.entries = append(ledgerRepo.entries, entity.NewTransaction(
			cat.ID, "Acme", "Alice",
			decimal.NewFromInt(10), "entry", entity.TransactionTypeIncome, time.Now(),
		))
	}
	ledgerRepo.entries = append(ledgerRepo.entries, entity.NewTransaction(
		other, "Acme", "Bob",
		decimal.NewFromInt(5), "elsewhere", entity.TransactionTypeIncome, time.Now(),
	))

	categoryRepo := &fakeCategoryRepo{known: map[uuid.UUID]*entity.Category{cat.ID: cat}}
	uc := NewListHistoryUseCase(ledgerRepo, categoryRepo)

	t.Run("returns only the category's entries", func(t *testing.T) {
		output, err := uc.Execute(context.Background(), ListHistoryInput{CategoryID: cat.ID})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if len(output.Transactions) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(output.Transactions))
		}
	})

	t.Run("clamps the limit to the cap", func(t *testing.T) {
		for _, limit := range []int{0, -5, adapter.HistoryLimit + 1} {
			if _, err := uc.Execute(context.Background(), ListHistoryInput{CategoryID: cat.ID, Limit: limit}); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if ledgerRepo.lastLimit != adapter.HistoryLimit {
				t.Fatalf("limit %d: expected clamp to %d, got %d", limit, adapter.HistoryLimit, ledgerRepo.lastLimit)
			}
		}
	})

	t.Run("honors an in-range limit", func(t *testing.T) {
		output, err := uc.Execute(context.Background(), ListHistoryInput{CategoryID: cat.ID, Limit: 2})
		if err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if len(output.Transactions) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(output.Transactions))
		}
	})

	t.Run("unknown category is an error", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), ListHistoryInput{CategoryID: uuid.New()})
		var catErr *domainerror.CategoryError
		if !errors.As(err, &catErr) {
			t.Fatalf("expected CategoryError, got %v", err)
		}
		if catErr.Code != domainerror.ErrCodeCategoryNotFound {
			t.Fatalf("expected code %s, got %s", domainerror.ErrCodeCategoryNotFound, catErr.Code)
		}
	})
}
