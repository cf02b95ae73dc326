package model

import (
	"time"

	"hoodly/shared/model"
)

const (
	TableName  = "inquiries"
	EntityName = "inquiry"

	FieldID               = "id"
	FieldBusinessID       = "business_id"
	FieldCustomerID       = "customer_id"
	FieldInquiryType      = "inquiry_type"
	FieldMessage          = "message"
	FieldPhone            = "phone"
	FieldPreferredContact = "preferred_contact"
	FieldPreferredDate    = "preferred_date"
	FieldStatus           = "status"
	FieldResponse         = "response"
	FieldRespondedAt      = "responded_at"
)

const (
	TypeBooking  = "booking"
	TypeQuestion = "question"
	TypeQuote    = "quote"
)

const (
	StatusPending   = "pending"
	StatusResponded = "responded"
	StatusClosed    = "closed"
)

// statusRank orders the workflow. Transitions only move forward, so a closed
// inquiry can never be reopened.
var statusRank = map[string]int{
	StatusPending:   0,
	StatusResponded: 1,
	StatusClosed:    2,
}

func CanAdvance(from, to string) bool {
	fromRank, fromOK := statusRank[from]
	toRank, toOK := statusRank[to]

	return fromOK && toOK && toRank > fromRank
}

type Inquiry struct {
	ID               string     `db:"id"`
	BusinessID       string     `db:"business_id"`
	CustomerID       string     `db:"customer_id"`
	InquiryType      string     `db:"inquiry_type"`
	Message          string     `db:"message"`
	Phone            *string    `db:"phone"`
	PreferredContact *string    `db:"preferred_contact"`
	PreferredDate    *time.Time `db:"preferred_date"`
	Status           string     `db:"status"`
	Response         *string    `db:"response"`
	RespondedAt      *time.Time `db:"responded_at"`
	model.Metadata
}
