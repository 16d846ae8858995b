// Package store persists generated report runs for later diffing. The core
// pipeline never reads from the store; it is append-only bookkeeping.
package store

import "github.com/seenimoa/bureaulens/pkg/models"

// Store records generated bureau reports.
type Store interface {
	// Record persists one report run.
	Record(report *models.BureauReport) error

	// Close releases the backing resources.
	Close() error
}

// Noop is the store used when persistence is disabled.
type Noop struct{}

func (Noop) Record(*models.BureauReport) error { return nil }
func (Noop) Close() error                      { return nil }
