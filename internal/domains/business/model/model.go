package model

import (
	"hoodly/shared/model"
)

const (
	TableName  = "businesses"
	EntityName = "business"

	FieldID            = "id"
	FieldOwnerUserID   = "owner_user_id"
	FieldName          = "name"
	FieldCategory      = "category"
	FieldDescription   = "description"
	FieldIsActive      = "is_active"
	FieldIsVerified    = "is_verified"
	FieldRating        = "rating"
	FieldReviewCount   = "review_count"
	FieldCompletedJobs = "completed_jobs"
)

type Business struct {
	ID            string  `db:"id"`
	OwnerUserID   string  `db:"owner_user_id"`
	Name          string  `db:"name"`
	Category      string  `db:"category"`
	Description   string  `db:"description"`
	IsActive      bool    `db:"is_active"`
	IsVerified    bool    `db:"is_verified"`
	Rating        float64 `db:"rating"`
	ReviewCount   int     `db:"review_count"`
	CompletedJobs int     `db:"completed_jobs"`
	model.Metadata
}
