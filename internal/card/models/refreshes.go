package models

import (
	"time"

	"github.com/google/uuid"
)

type RefreshStatus string

const (
	PendingRefresh   RefreshStatus = "pending"
	PublishedRefresh RefreshStatus = "published"
	RenderedRefresh  RefreshStatus = "rendered"
	FailedRefresh    RefreshStatus = "failed"
)

type Refresh struct {
	ID          uuid.UUID     `json:"id"`
	Login       string        `json:"login"`
	Variant     Variant       `json:"variant"`
	Status      RefreshStatus `json:"status"`
	Error       string        `json:"error,omitempty"`
	RequestedAt time.Time     `json:"requested_at"`
	CompletedAt *time.Time    `json:"completed_at,omitempty"`
}

// RefreshUpdate changes the non-nil fields of a refresh. A non-nil
// ExpectStatus applies the update only while the refresh is in that status.
type RefreshUpdate struct {
	ID           uuid.UUID
	ExpectStatus *RefreshStatus
	Status       *RefreshStatus
	Error        *string
	CompletedAt  *time.Time
}
