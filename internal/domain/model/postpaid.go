package model

import "time"

// PostpaidUser is a member billed after consumption; money may go negative (debt).
type PostpaidUser struct {
	ID        int64
	Username  string
	Money     int64
	Activated bool
	LastDrink *time.Time
}
