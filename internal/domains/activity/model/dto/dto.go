package dto

import (
	"encoding/json"
	"sort"

	"hoodly/internal/domains/activity/model"
	businessModel "hoodly/internal/domains/business/model"
	"hoodly/shared"
	"hoodly/shared/constant"
	"hoodly/shared/timezone"
)

type LogEventRequest struct {
	BusinessID string         `json:"business_id" validate:"required"`
	EventType  string         `json:"event_type"  validate:"required"`
	Metadata   map[string]any `json:"metadata"    validate:"omitempty"`
}

type EventResponse struct {
	ID         string         `json:"id"`
	BusinessID string         `json:"business_id"`
	EventType  string         `json:"event_type"`
	ActorID    *string        `json:"actor_id,omitempty"`
	Payload    map[string]any `json:"payload,omitempty"`
	CreatedAt  string         `json:"created_at"`
}

func (r *EventResponse) FromModel(model model.ActivityEvent) {
	r.ID = model.ID
	r.BusinessID = model.BusinessID
	r.EventType = model.EventType
	r.ActorID = model.ActorID
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)

	if model.Payload != nil {
		payload := map[string]any{}
		if err := json.Unmarshal([]byte(*model.Payload), &payload); err == nil {
			r.Payload = payload
		}
	}
}

type AnalyticsResponse struct {
	BusinessID        string  `json:"business_id"`
	Period            string  `json:"period"`
	ProfileViews      int     `json:"profile_views"`
	ContactClicks     int     `json:"contact_clicks"`
	InquiriesReceived int     `json:"inquiries_received"`
	ReviewsReceived   int     `json:"reviews_received"`
	JobsCompleted     int     `json:"jobs_completed"`
	ProfileUpdates    int     `json:"profile_updates"`
	ConversionRate    float64 `json:"conversion_rate"`
	EngagementRate    float64 `json:"engagement_rate"`
	Rating            float64 `json:"rating"`
	ReviewCount       int     `json:"review_count"`
	CompletedJobs     int     `json:"completed_jobs"`
	IsVerified        bool    `json:"is_verified"`
}

// FromEvents derives the analytics report from the windowed event slice plus a
// live snapshot off the business row. Both ratios fall back to 0 when their
// denominator is zero.
func (r *AnalyticsResponse) FromEvents(period string, events []model.ActivityEvent, business businessModel.Business) {
	r.BusinessID = business.ID
	r.Period = period

	for _, ev := range events {
		switch ev.EventType {
		case model.EventTypeView:
			r.ProfileViews++
		case model.EventTypeContactClick:
			r.ContactClicks++
		case model.EventTypeInquiryReceived:
			r.InquiriesReceived++
		case model.EventTypeReviewReceived:
			r.ReviewsReceived++
		case model.EventTypeJobCompleted:
			r.JobsCompleted++
		case model.EventTypeProfileUpdated:
			r.ProfileUpdates++
		}
	}

	r.ConversionRate = shared.Percentage(r.JobsCompleted, r.InquiriesReceived)
	r.EngagementRate = shared.Percentage(r.ContactClicks, r.ProfileViews)

	r.Rating = business.Rating
	r.ReviewCount = business.ReviewCount
	r.CompletedJobs = business.CompletedJobs
	r.IsVerified = business.IsVerified
}

type DailyStatResponse struct {
	Date      string `json:"date"`
	Views     int    `json:"views"`
	Inquiries int    `json:"inquiries"`
	Reviews   int    `json:"reviews"`
	Jobs      int    `json:"jobs"`
	Contacts  int    `json:"contacts"`
}

// DailyStatsFromEvents buckets events by UTC calendar date. Only dates that
// saw at least one event appear, in ascending date order.
func DailyStatsFromEvents(events []model.ActivityEvent) []DailyStatResponse {
	buckets := map[string]*DailyStatResponse{}

	for _, ev := range events {
		date := ev.CreatedAt.UTC().Format(constant.DateOnlyFormat)

		bucket, ok := buckets[date]
		if !ok {
			bucket = &DailyStatResponse{Date: date}
			buckets[date] = bucket
		}

		switch ev.EventType {
		case model.EventTypeView:
			bucket.Views++
		case model.EventTypeInquiryReceived:
			bucket.Inquiries++
		case model.EventTypeReviewReceived:
			bucket.Reviews++
		case model.EventTypeJobCompleted:
			bucket.Jobs++
		case model.EventTypeContactClick:
			bucket.Contacts++
		}
	}

	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}

	// ISO dates sort lexicographically in chronological order.
	sort.Strings(dates)

	stats := make([]DailyStatResponse, len(dates))
	for i, date := range dates {
		stats[i] = *buckets[date]
	}

	return stats
}
