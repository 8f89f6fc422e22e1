package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerTotals is the running aggregate over the whole ledger. Balance sums
// every entry amount (both legs of a transfer, so each transfer nets to
// zero); Expenses sums the absolute values of the expense legs. The row is
// maintained transactionally alongside each transfer commit rather than
// refolded on every read.
type LedgerTotals struct {
	Balance   decimal.Decimal
	Expenses  decimal.Decimal
	UpdatedAt time.Time
}
