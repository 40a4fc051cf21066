// Package workflow holds the approval state machines behind the back-office
// review queues. Each service validates the requested transition against the
// entity's closed status set, persists it with a version check, and reports
// the change through the notifier port.
package workflow

import (
	"context"
	"errors"
	"fmt"
)

// ErrConflict is returned when an entity changed between read and write;
// the caller should reload and retry.
var ErrConflict = errors.New("entity was modified by another request")

// InvalidStatusError reports a status value outside the entity's closed set.
type InvalidStatusError struct {
	Entity string
	Status string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("%q is not a valid %s status", e.Status, e.Entity)
}

// TransitionError reports a legal status pair that the transition table
// does not allow.
type TransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s cannot move from %s to %s", e.Entity, e.From, e.To)
}

// Result pairs the updated entity with the message shown to the operator.
type Result[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message"`
}

// StatusEvent describes a completed status change for notification purposes.
type StatusEvent struct {
	Entity    string
	EntityID  string
	Recipient string
	Status    string
	Reason    string
}

// Notifier delivers a status-change notification to the affected party.
// Implementations must tolerate being called on every successful transition.
type Notifier interface {
	StatusChanged(ctx context.Context, ev StatusEvent) error
}

// NopNotifier discards events. Used in tests and wherever notification
// delivery is not configured.
type NopNotifier struct{}

func (NopNotifier) StatusChanged(context.Context, StatusEvent) error { return nil }

// BulkResult is the per-row outcome of a bulk action. The batch itself is
// still a single store round-trip; rows that the batch did not touch are
// reported here instead of failing the whole call.
type BulkResult struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func bulkResults(requested, updated []string, missErr string) []BulkResult {
	touched := make(map[string]bool, len(updated))
	for _, id := range updated {
		touched[id] = true
	}

	results := make([]BulkResult, 0, len(requested))
	for _, id := range requested {
		if touched[id] {
			results = append(results, BulkResult{ID: id, OK: true})
		} else {
			results = append(results, BulkResult{ID: id, Error: missErr})
		}
	}
	return results
}
