package model

// UserKind selects one of the two ledger collections.
type UserKind string

const (
	UserKindPostpaid UserKind = "postpaid"
	UserKindPrepaid  UserKind = "prepaid"
)

// LedgerTotals aggregates both ledgers for stats and reconciliation logging.
type LedgerTotals struct {
	PostpaidTotal int64
	PrepaidTotal  int64
	PostpaidDebt  int64
	PostpaidCount int
	PrepaidCount  int
}
