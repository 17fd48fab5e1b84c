package domain

import "time"

// FeedbackType classifies a feedback request
type FeedbackType string

const (
	FeedbackTypeFeature     FeedbackType = "feature"
	FeedbackTypeBug         FeedbackType = "bug"
	FeedbackTypeImprovement FeedbackType = "improvement"
	FeedbackTypeSupport     FeedbackType = "support"
)

// FeedbackPriority ranks a feedback request
type FeedbackPriority string

const (
	FeedbackPriorityLow    FeedbackPriority = "low"
	FeedbackPriorityMedium FeedbackPriority = "medium"
	FeedbackPriorityHigh   FeedbackPriority = "high"
)

// FeedbackStatus tracks handling of a request. Transitions are not enforced.
type FeedbackStatus string

const (
	FeedbackStatusPending    FeedbackStatus = "pending"
	FeedbackStatusInProgress FeedbackStatus = "in-progress"
	FeedbackStatusResolved   FeedbackStatus = "resolved"
)

// Valid reports whether t is a known feedback type
func (t FeedbackType) Valid() bool {
	switch t {
	case FeedbackTypeFeature, FeedbackTypeBug, FeedbackTypeImprovement, FeedbackTypeSupport:
		return true
	}
	return false
}

// Valid reports whether p is a known priority
func (p FeedbackPriority) Valid() bool {
	switch p {
	case FeedbackPriorityLow, FeedbackPriorityMedium, FeedbackPriorityHigh:
		return true
	}
	return false
}

// FeedbackRequest is a feature request, bug report or support ask from a business
type FeedbackRequest struct {
	ID          int64            `json:"id"`
	Type        FeedbackType     `json:"type"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Priority    FeedbackPriority `json:"priority"`
	Status      FeedbackStatus   `json:"status"`
	BusinessID  int64            `json:"businessId"`
	CreatedAt   time.Time        `json:"createdAt"`
}

// CreateFeedbackInput carries the fields accepted when filing feedback.
// Status is accepted for wire compatibility and ignored.
type CreateFeedbackInput struct {
	Type        FeedbackType
	Title       string
	Description string
	Priority    FeedbackPriority
	Status      FeedbackStatus
	BusinessID  int64
}

// NewFeedbackRequest builds a FeedbackRequest. Status is always pending.
func NewFeedbackRequest(in CreateFeedbackInput, now time.Time) FeedbackRequest {
	return FeedbackRequest{
		Type:        in.Type,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Status:      FeedbackStatusPending,
		BusinessID:  in.BusinessID,
		CreatedAt:   now,
	}
}
