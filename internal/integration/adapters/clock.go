// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"time"

	"github.com/balance-board/backend/internal/application/adapter"
)

// systemClock implements adapter.Clock on the wall clock.
type systemClock struct{}

// NewSystemClock creates the production clock.
func NewSystemClock() adapter.Clock {
	return systemClock{}
}

// Now returns the current UTC time.
func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
