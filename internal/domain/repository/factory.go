package repository

import "context"

// Factory describes access to different domain repositories.
type Factory interface {
	Postpaid() PostpaidRepository
	Prepaid() PrepaidRepository
	DrinkTypes() DrinkTypeRepository

	// HealthCheck reports whether the underlying store is reachable.
	HealthCheck(ctx context.Context) error
}
