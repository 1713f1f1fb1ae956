package domain

import "time"

// PoolSettings holds the one-time setup state of the money pool.
// Immutable after setup except through a full reset.
type PoolSettings struct {
	SetupComplete bool       `json:"setupComplete"`
	SetupDate     *time.Time `json:"setupDate"`
}
