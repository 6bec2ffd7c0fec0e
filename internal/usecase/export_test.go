package usecase

import "time"

// SetNow overrides the use case clock from external test packages.
func SetNow(u *DrinkUseCase, now func() time.Time) {
	u.now = now
}
