package service

import "github.com/billhub/billhub/internal/domain/workflow"

// Status bucket indexes as rendered on the dashboard, left to right.
const (
	BucketPending  = 1
	BucketAccepted = 2
	BucketRefused  = 3
)

// FoldState tracks which status buckets are expanded on the dashboard. It
// is ephemeral UI state: a full dashboard re-render resets it.
type FoldState struct {
	PendingOpen  bool
	AcceptedOpen bool
	RefusedOpen  bool
}

// Toggle returns the fold state with the given bucket flipped. Unknown
// indexes leave the state unchanged, so the transition is total.
func (f FoldState) Toggle(statusIndex int) FoldState {
	switch statusIndex {
	case BucketPending:
		f.PendingOpen = !f.PendingOpen
	case BucketAccepted:
		f.AcceptedOpen = !f.AcceptedOpen
	case BucketRefused:
		f.RefusedOpen = !f.RefusedOpen
	}
	return f
}

// IsOpen reports whether the given bucket is expanded.
func (f FoldState) IsOpen(statusIndex int) bool {
	switch statusIndex {
	case BucketPending:
		return f.PendingOpen
	case BucketAccepted:
		return f.AcceptedOpen
	case BucketRefused:
		return f.RefusedOpen
	}
	return false
}

// StatusForBucket maps a bucket index to its lifecycle status.
func StatusForBucket(statusIndex int) string {
	switch statusIndex {
	case BucketPending:
		return workflow.StatePending.String()
	case BucketAccepted:
		return workflow.StateAccepted.String()
	case BucketRefused:
		return workflow.StateRefused.String()
	}
	return ""
}
