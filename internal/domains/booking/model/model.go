package model

import (
	"slices"
	"time"

	"hoodly/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                 = "id"
	FieldCustomerID         = "customer_id"
	FieldBusinessID         = "business_id"
	FieldServiceID          = "service_id"
	FieldStatus             = "status"
	FieldScheduledAt        = "scheduled_at"
	FieldPrice              = "price"
	FieldCancellationReason = "cancellation_reason"
	FieldCanReview          = "can_review"
	FieldHasReviewed        = "has_reviewed"
	FieldReviewID           = "review_id"
	FieldCompletedAt        = "completed_at"
	FieldCancelledAt        = "cancelled_at"
)

const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// allowedTransitions is the full status machine. Anything not listed here is
// rejected, including transitions out of the two terminal states.
var allowedTransitions = map[string][]string{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

func CanTransition(from, to string) bool {
	return slices.Contains(allowedTransitions[from], to)
}

func IsTerminal(status string) bool {
	return status == StatusCompleted || status == StatusCancelled
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

type Booking struct {
	ID                 string     `db:"id"`
	CustomerID         string     `db:"customer_id"`
	BusinessID         string     `db:"business_id"`
	ServiceID          *string    `db:"service_id"`
	Status             string     `db:"status"`
	ScheduledAt        time.Time  `db:"scheduled_at"`
	Address            string     `db:"address"`
	Description        string     `db:"description"`
	Price              float64    `db:"price"`
	CancellationReason *string    `db:"cancellation_reason"`
	CanReview          bool       `db:"can_review"`
	HasReviewed        bool       `db:"has_reviewed"`
	ReviewID           *string    `db:"review_id"`
	CompletedAt        *time.Time `db:"completed_at"`
	CancelledAt        *time.Time `db:"cancelled_at"`
	model.Metadata
}
