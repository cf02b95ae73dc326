package dto

import (
	"hoodly/internal/domains/business/model"
	"hoodly/shared"
	gDto "hoodly/shared/dto"
	gModel "hoodly/shared/model"
	"hoodly/shared/timezone"

	"github.com/google/uuid"
)

type CreateBusinessRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Category    string `json:"category"    validate:"required,max=50"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

func (c *CreateBusinessRequest) ToModel(ownerUserID string) model.Business {
	return model.Business{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        c.Name,
		Category:    c.Category,
		Description: c.Description,
		IsActive:    true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  ownerUserID,
			ModifiedBy: ownerUserID,
		},
	}
}

type UpdateBusinessProfileRequest struct {
	Name        string `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Category    string `db:"category"    json:"category"    validate:"omitempty,max=50"`
	Description string `db:"description" json:"description" validate:"omitempty,max=2000"`
	IsActive    *bool  `db:"is_active"   json:"is_active"   validate:"omitempty"`
}

type BusinessResponse struct {
	ID            string  `json:"id"`
	OwnerUserID   string  `json:"owner_user_id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	IsActive      bool    `json:"is_active"`
	IsVerified    bool    `json:"is_verified"`
	Rating        float64 `json:"rating"`
	ReviewCount   int     `json:"review_count"`
	CompletedJobs int     `json:"completed_jobs"`
	gDto.Metadata
}

func (r *BusinessResponse) FromModel(model model.Business) {
	r.ID = model.ID
	r.OwnerUserID = model.OwnerUserID
	r.Name = model.Name
	r.Category = model.Category
	r.Description = model.Description
	r.IsActive = model.IsActive
	r.IsVerified = model.IsVerified
	r.Rating = model.Rating
	r.ReviewCount = model.ReviewCount
	r.CompletedJobs = model.CompletedJobs
	r.Metadata.FromModel(model.Metadata)
}

type GetBusinessesResponse struct {
	Data       []BusinessResponse `json:"data"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
}

func (r *GetBusinessesResponse) FromModels(models []model.Business, total int, params gDto.QueryParams) {
	r.Total = total
	r.Page = params.Page
	r.Limit = params.Limit
	r.TotalPages = shared.CalculateTotalPage(total, params.Limit)

	r.Data = make([]BusinessResponse, len(models))
	for i, mod := range models {
		r.Data[i].FromModel(mod)
	}
}
