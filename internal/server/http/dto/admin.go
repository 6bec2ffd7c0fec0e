package dto

// PayUpRequest settles debt: the amount moves from the calling admin's
// postpaid record to the target's.
type PayUpRequest struct {
	Username string `form:"username" json:"username"`
	Amount   string `form:"amount" json:"amount"`
}

// SetMoneyRequest overrides a balance with an absolute value.
type SetMoneyRequest struct {
	Username string `form:"username" json:"username"`
	Money    string `form:"money" json:"money"`
}

// ToggleActivatedRequest flips a user's activation gate.
type ToggleActivatedRequest struct {
	Username string `form:"username" json:"username"`
}

// DeletePrepaidUserRequest removes a prepaid record for good.
type DeletePrepaidUserRequest struct {
	Username string `form:"username" json:"username"`
}

// ToggleActivatedResponse reports the new activation state.
type ToggleActivatedResponse struct {
	Username  string `json:"username"`
	Activated bool   `json:"activated"`
}

// LedgerTotalsResponse aggregates both ledgers.
type LedgerTotalsResponse struct {
	PostpaidTotal string `json:"postpaid_total"`
	PrepaidTotal  string `json:"prepaid_total"`
	PostpaidDebt  string `json:"postpaid_debt"`
	PostpaidCount int    `json:"postpaid_count"`
	PrepaidCount  int    `json:"prepaid_count"`
}

// StatsResponse is the admin reconciliation view.
type StatsResponse struct {
	Postpaid   []PostpaidUserResponse `json:"postpaid"`
	Prepaid    []PrepaidUserResponse  `json:"prepaid"`
	DrinkTypes []DrinkTypeResponse    `json:"drink_types"`
	Totals     LedgerTotalsResponse   `json:"totals"`
}
