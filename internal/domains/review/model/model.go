package model

import (
	"time"

	"hoodly/shared/model"
)

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID              = "id"
	FieldBusinessID      = "business_id"
	FieldCustomerID      = "customer_id"
	FieldBookingID       = "booking_id"
	FieldRating          = "rating"
	FieldServiceQuality  = "service_quality"
	FieldProfessionalism = "professionalism"
	FieldValueForMoney   = "value_for_money"
	FieldComment         = "comment"
	FieldPhotoURL        = "photo_url"
	FieldResponse        = "response"
	FieldRespondedAt     = "responded_at"
)

const (
	RatingMin = 1
	RatingMax = 5
)

// Review holds the overall rating plus three optional dimension scores. The
// dimension columns are nullable so a missing score never skews an average.
type Review struct {
	ID              string     `db:"id"`
	BusinessID      string     `db:"business_id"`
	CustomerID      string     `db:"customer_id"`
	BookingID       *string    `db:"booking_id"`
	Rating          int        `db:"rating"`
	ServiceQuality  *int       `db:"service_quality"`
	Professionalism *int       `db:"professionalism"`
	ValueForMoney   *int       `db:"value_for_money"`
	Comment         string     `db:"comment"`
	PhotoURL        *string    `db:"photo_url"`
	Response        *string    `db:"response"`
	RespondedAt     *time.Time `db:"responded_at"`
	model.Metadata
}
