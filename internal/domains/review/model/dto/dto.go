package dto

import (
	"github.com/google/uuid"

	"hoodly/internal/domains/review/model"
	"hoodly/shared"
	"hoodly/shared/constant"
	gDto "hoodly/shared/dto"
	gModel "hoodly/shared/model"
	"hoodly/shared/timezone"
)

type CreateReviewRequest struct {
	BusinessID      string  `json:"business_id"      validate:"required"`
	BookingID       *string `json:"booking_id"       validate:"omitempty"`
	Rating          int     `json:"rating"           validate:"required,min=1,max=5"`
	ServiceQuality  *int    `json:"service_quality"  validate:"omitempty,min=1,max=5"`
	Professionalism *int    `json:"professionalism"  validate:"omitempty,min=1,max=5"`
	ValueForMoney   *int    `json:"value_for_money"  validate:"omitempty,min=1,max=5"`
	Comment         string  `json:"comment"          validate:"omitempty,max=2000"`
	Photo           string  `json:"photo"            validate:"omitempty,mimetypes=image/png image/jpeg image/webp,maxfilesize=5"`
}

func (c *CreateReviewRequest) ToModel(customerID, photoURL string) model.Review {
	var photo *string
	if photoURL != constant.Empty {
		photo = &photoURL
	}

	return model.Review{
		ID:              uuid.NewString(),
		BusinessID:      c.BusinessID,
		CustomerID:      customerID,
		BookingID:       c.BookingID,
		Rating:          c.Rating,
		ServiceQuality:  c.ServiceQuality,
		Professionalism: c.Professionalism,
		ValueForMoney:   c.ValueForMoney,
		Comment:         c.Comment,
		PhotoURL:        photo,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  customerID,
			ModifiedBy: customerID,
		},
	}
}

type UpdateReviewRequest struct {
	Rating          *int    `json:"rating"           validate:"omitempty,min=1,max=5"`
	ServiceQuality  *int    `json:"service_quality"  validate:"omitempty,min=1,max=5"`
	Professionalism *int    `json:"professionalism"  validate:"omitempty,min=1,max=5"`
	ValueForMoney   *int    `json:"value_for_money"  validate:"omitempty,min=1,max=5"`
	Comment         *string `json:"comment"          validate:"omitempty,max=2000"`
}

type RespondReviewRequest struct {
	Response string `json:"response" validate:"required,max=2000"`
}

type ReviewResponse struct {
	ID              string  `json:"id"`
	BusinessID      string  `json:"business_id"`
	CustomerID      string  `json:"customer_id"`
	BookingID       *string `json:"booking_id,omitempty"`
	Rating          int     `json:"rating"`
	ServiceQuality  *int    `json:"service_quality,omitempty"`
	Professionalism *int    `json:"professionalism,omitempty"`
	ValueForMoney   *int    `json:"value_for_money,omitempty"`
	Comment         string  `json:"comment"`
	PhotoURL        *string `json:"photo_url,omitempty"`
	Response        *string `json:"response,omitempty"`
	RespondedAt     *string `json:"responded_at,omitempty"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(model model.Review) {
	r.ID = model.ID
	r.BusinessID = model.BusinessID
	r.CustomerID = model.CustomerID
	r.BookingID = model.BookingID
	r.Rating = model.Rating
	r.ServiceQuality = model.ServiceQuality
	r.Professionalism = model.Professionalism
	r.ValueForMoney = model.ValueForMoney
	r.Comment = model.Comment
	r.PhotoURL = model.PhotoURL
	r.Response = model.Response

	if model.RespondedAt != nil {
		respondedAt := timezone.Format(*model.RespondedAt, constant.DateFormat)
		r.RespondedAt = &respondedAt
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetReviewsResponse struct {
	Data       []ReviewResponse `json:"data"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

func (r *GetReviewsResponse) FromModels(models []model.Review, total int, params gDto.QueryParams) {
	r.Total = total
	r.Page = params.Page
	r.Limit = params.Limit
	r.TotalPages = shared.CalculateTotalPage(total, params.Limit)

	r.Data = make([]ReviewResponse, len(models))
	for i, mod := range models {
		r.Data[i].FromModel(mod)
	}
}

type ReviewStatsResponse struct {
	AverageRating          float64     `json:"average_rating"`
	TotalReviews           int         `json:"total_reviews"`
	RatingDistribution     map[int]int `json:"rating_distribution"`
	AverageServiceQuality  float64     `json:"average_service_quality"`
	AverageProfessionalism float64     `json:"average_professionalism"`
	AverageValueForMoney   float64     `json:"average_value_for_money"`
}

// FromModels aggregates the full review set for one business. The distribution
// always carries every bucket from 1 to 5 and each dimension average divides
// only by the reviews that scored that dimension.
func (r *ReviewStatsResponse) FromModels(models []model.Review) {
	r.TotalReviews = len(models)
	r.RatingDistribution = map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}

	var ratingSum int
	var qualitySum, qualityCount int
	var professionalismSum, professionalismCount int
	var valueSum, valueCount int

	for _, mod := range models {
		ratingSum += mod.Rating

		if mod.Rating >= model.RatingMin && mod.Rating <= model.RatingMax {
			r.RatingDistribution[mod.Rating]++
		}

		if mod.ServiceQuality != nil {
			qualitySum += *mod.ServiceQuality
			qualityCount++
		}

		if mod.Professionalism != nil {
			professionalismSum += *mod.Professionalism
			professionalismCount++
		}

		if mod.ValueForMoney != nil {
			valueSum += *mod.ValueForMoney
			valueCount++
		}
	}

	if r.TotalReviews > 0 {
		r.AverageRating = shared.Round2(float64(ratingSum) / float64(r.TotalReviews))
	}

	if qualityCount > 0 {
		r.AverageServiceQuality = shared.Round2(float64(qualitySum) / float64(qualityCount))
	}

	if professionalismCount > 0 {
		r.AverageProfessionalism = shared.Round2(float64(professionalismSum) / float64(professionalismCount))
	}

	if valueCount > 0 {
		r.AverageValueForMoney = shared.Round2(float64(valueSum) / float64(valueCount))
	}
}
