package dto

import (
	"time"

	"github.com/google/uuid"

	"hoodly/internal/domains/booking/model"
	"hoodly/shared"
	"hoodly/shared/constant"
	gDto "hoodly/shared/dto"
	gModel "hoodly/shared/model"
	"hoodly/shared/timezone"
)

type CreateBookingRequest struct {
	BusinessID  string  `json:"business_id"  validate:"required"`
	ServiceID   *string `json:"service_id"   validate:"omitempty"`
	ScheduledAt string  `json:"scheduled_at" validate:"required"`
	Address     string  `json:"address"      validate:"omitempty,max=255"`
	Description string  `json:"description"  validate:"omitempty,max=2000"`
	Price       float64 `json:"price"        validate:"omitempty,gte=0"`
}

func (c *CreateBookingRequest) ToModel(customerID string) (model.Booking, error) {
	scheduledAt, err := time.Parse(constant.DateFormat, c.ScheduledAt)
	if err != nil {
		return model.Booking{}, err
	}

	return model.Booking{
		ID:          uuid.NewString(),
		CustomerID:  customerID,
		BusinessID:  c.BusinessID,
		ServiceID:   c.ServiceID,
		Status:      model.StatusPending,
		ScheduledAt: scheduledAt,
		Address:     c.Address,
		Description: c.Description,
		Price:       c.Price,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  customerID,
			ModifiedBy: customerID,
		},
	}, nil
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed in_progress completed cancelled"`
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type BookingResponse struct {
	ID                 string  `json:"id"`
	CustomerID         string  `json:"customer_id"`
	BusinessID         string  `json:"business_id"`
	ServiceID          *string `json:"service_id,omitempty"`
	Status             string  `json:"status"`
	ScheduledAt        string  `json:"scheduled_at"`
	Address            string  `json:"address"`
	Description        string  `json:"description"`
	Price              float64 `json:"price"`
	CancellationReason *string `json:"cancellation_reason,omitempty"`
	CanReview          bool    `json:"can_review"`
	HasReviewed        bool    `json:"has_reviewed"`
	ReviewID           *string `json:"review_id,omitempty"`
	CompletedAt        *string `json:"completed_at,omitempty"`
	CancelledAt        *string `json:"cancelled_at,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.CustomerID = model.CustomerID
	r.BusinessID = model.BusinessID
	r.ServiceID = model.ServiceID
	r.Status = model.Status
	r.ScheduledAt = timezone.Format(model.ScheduledAt, constant.DateFormat)
	r.Address = model.Address
	r.Description = model.Description
	r.Price = model.Price
	r.CancellationReason = model.CancellationReason
	r.CanReview = model.CanReview
	r.HasReviewed = model.HasReviewed
	r.ReviewID = model.ReviewID

	if model.CompletedAt != nil {
		completedAt := timezone.Format(*model.CompletedAt, constant.DateFormat)
		r.CompletedAt = &completedAt
	}

	if model.CancelledAt != nil {
		cancelledAt := timezone.Format(*model.CancelledAt, constant.DateFormat)
		r.CancelledAt = &cancelledAt
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Data       []BookingResponse `json:"data"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, total int, params gDto.QueryParams) {
	r.Total = total
	r.Page = params.Page
	r.Limit = params.Limit
	r.TotalPages = shared.CalculateTotalPage(total, params.Limit)

	r.Data = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Data[i].FromModel(mod)
	}
}
