// Package stats contains the ledger aggregation use cases.
package stats

import (
	"context"
	"log/slog"

	"github.com/balance-board/backend/internal/application/adapter"
)

// WatchStatsUseCase re-emits the totals after every ledger change. A failed
// read keeps the subscription alive; the next signal retries it.
type WatchStatsUseCase struct {
	statsRepo adapter.StatsRepository
	notifier  adapter.ChangeNotifier
}

// NewWatchStatsUseCase creates a new WatchStatsUseCase instance.
func NewWatchStatsUseCase(statsRepo adapter.StatsRepository, notifier adapter.ChangeNotifier) *WatchStatsUseCase {
	return &WatchStatsUseCase{
		statsRepo: statsRepo,
		notifier:  notifier,
	}
}

// Execute subscribes to ledger changes and streams totals. The first emission
// happens immediately; the channel closes when ctx is done.
func (uc *WatchStatsUseCase) Execute(ctx context.Context) (<-chan *GetStatsOutput, error) {
	signals, err := uc.notifier.Subscribe(ctx, adapter.TopicLedger)
	if err != nil {
		return nil, err
	}

	out := make(chan *GetStatsOutput, 1)

	go func() {
		defer close(out)

		emit := func() {
			totals, err := uc.statsRepo.Totals(ctx)
			if err != nil {
				slog.Warn("stats emission skipped", "error", err)
				return
			}
			stats := &GetStatsOutput{
				Balance:  totals.Balance,
				Expenses: totals.Expenses,
			}
			select {
			case out <- stats:
			case <-ctx.Done():
			}
		}

		emit()

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-signals:
				if !ok {
					return
				}
				emit()
			}
		}
	}()

	return out, nil
}
