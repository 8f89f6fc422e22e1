// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// Clock supplies the commit timestamps assigned by the transfer store.
// Abstracted so tests can pin time.
type Clock interface {
	Now() time.Time
}
