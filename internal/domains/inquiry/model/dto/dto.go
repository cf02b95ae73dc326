package dto

import (
	"time"

	"github.com/google/uuid"

	"hoodly/internal/domains/inquiry/model"
	"hoodly/shared"
	"hoodly/shared/constant"
	gDto "hoodly/shared/dto"
	gModel "hoodly/shared/model"
	"hoodly/shared/timezone"
)

type CreateInquiryRequest struct {
	BusinessID       string  `json:"business_id"       validate:"required"`
	InquiryType      string  `json:"inquiry_type"      validate:"required,oneof=booking question quote"`
	Message          string  `json:"message"           validate:"required,max=2000"`
	Phone            *string `json:"phone"             validate:"omitempty,max=20"`
	PreferredContact *string `json:"preferred_contact" validate:"omitempty,oneof=phone email app"`
	PreferredDate    *string `json:"preferred_date"    validate:"omitempty"`
}

func (c *CreateInquiryRequest) ToModel(customerID string) (model.Inquiry, error) {
	var preferredDate *time.Time

	if c.PreferredDate != nil {
		parsed, err := time.Parse(constant.DateOnlyFormat, *c.PreferredDate)
		if err != nil {
			return model.Inquiry{}, err
		}

		preferredDate = &parsed
	}

	return model.Inquiry{
		ID:               uuid.NewString(),
		BusinessID:       c.BusinessID,
		CustomerID:       customerID,
		InquiryType:      c.InquiryType,
		Message:          c.Message,
		Phone:            c.Phone,
		PreferredContact: c.PreferredContact,
		PreferredDate:    preferredDate,
		Status:           model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  customerID,
			ModifiedBy: customerID,
		},
	}, nil
}

type RespondInquiryRequest struct {
	Response string `json:"response" validate:"required,max=2000"`
}

type UpdateInquiryStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending responded closed"`
}

type InquiryResponse struct {
	ID               string  `json:"id"`
	BusinessID       string  `json:"business_id"`
	CustomerID       string  `json:"customer_id"`
	InquiryType      string  `json:"inquiry_type"`
	Message          string  `json:"message"`
	Phone            *string `json:"phone,omitempty"`
	PreferredContact *string `json:"preferred_contact,omitempty"`
	PreferredDate    *string `json:"preferred_date,omitempty"`
	Status           string  `json:"status"`
	Response         *string `json:"response,omitempty"`
	RespondedAt      *string `json:"responded_at,omitempty"`
	gDto.Metadata
}

func (r *InquiryResponse) FromModel(model model.Inquiry) {
	r.ID = model.ID
	r.BusinessID = model.BusinessID
	r.CustomerID = model.CustomerID
	r.InquiryType = model.InquiryType
	r.Message = model.Message
	r.Phone = model.Phone
	r.PreferredContact = model.PreferredContact
	r.Status = model.Status
	r.Response = model.Response

	if model.PreferredDate != nil {
		preferredDate := model.PreferredDate.Format(constant.DateOnlyFormat)
		r.PreferredDate = &preferredDate
	}

	if model.RespondedAt != nil {
		respondedAt := timezone.Format(*model.RespondedAt, constant.DateFormat)
		r.RespondedAt = &respondedAt
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetInquiriesResponse struct {
	Data       []InquiryResponse `json:"data"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

func (r *GetInquiriesResponse) FromModels(models []model.Inquiry, total int, params gDto.QueryParams) {
	r.Total = total
	r.Page = params.Page
	r.Limit = params.Limit
	r.TotalPages = shared.CalculateTotalPage(total, params.Limit)

	r.Data = make([]InquiryResponse, len(models))
	for i, mod := range models {
		r.Data[i].FromModel(mod)
	}
}

type InquiryStatsResponse struct {
	Total        int     `json:"total"`
	Pending      int     `json:"pending"`
	Responded    int     `json:"responded"`
	Closed       int     `json:"closed"`
	ResponseRate float64 `json:"response_rate"`
}

// FromModels counts inquiries per status. An inquiry counts as answered once
// it is responded or closed; with no inquiries the rate is 0.
func (r *InquiryStatsResponse) FromModels(models []model.Inquiry) {
	r.Total = len(models)

	for _, mod := range models {
		switch mod.Status {
		case model.StatusPending:
			r.Pending++
		case model.StatusResponded:
			r.Responded++
		case model.StatusClosed:
			r.Closed++
		}
	}

	r.ResponseRate = shared.Percentage(r.Responded+r.Closed, r.Total)
}
