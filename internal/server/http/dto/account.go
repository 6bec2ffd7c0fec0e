package dto

import "time"

// PostpaidUserResponse describes a postpaid record: the caller's own
// profile or an admin ledger entry.
type PostpaidUserResponse struct {
	Username  string     `json:"username"`
	Money     string     `json:"money"`
	Activated bool       `json:"activated"`
	LastDrink *time.Time `json:"last_drink,omitempty"`
}

// PrepaidUserResponse describes a prepaid record. The key is included:
// owners hand it to the point of sale.
type PrepaidUserResponse struct {
	Username  string     `json:"username"`
	UserKey   string     `json:"user_key"`
	Money     string     `json:"money"`
	Activated bool       `json:"activated"`
	LastDrink *time.Time `json:"last_drink,omitempty"`
}

// AddPrepaidUserRequest describes a new sub-account payload. StartMoney
// is a decimal string in whole currency units and defaults to zero.
type AddPrepaidUserRequest struct {
	Username   string `form:"username" json:"username"`
	StartMoney string `form:"start_money" json:"start_money"`
}

// AddMoneyRequest describes a prepaid top-up payload.
type AddMoneyRequest struct {
	Username string `form:"username" json:"username"`
	Amount   string `form:"amount" json:"amount"`
}
