package model

import "time"

// PrepaidUser is a pre-funded sub-account owned by a postpaid user and
// identified at the point of sale by its secret user key.
type PrepaidUser struct {
	ID             int64
	Username       string
	UserKey        string
	PostpaidUserID int64
	Money          int64
	Activated      bool
	LastDrink      *time.Time
}
