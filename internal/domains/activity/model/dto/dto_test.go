package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hoodly/internal/domains/activity/model"
	"hoodly/internal/domains/activity/model/dto"
	businessModel "hoodly/internal/domains/business/model"
)

func TestAnalyticsResponseFromEvents(t *testing.T) {
	business := businessModel.Business{
		ID:            "business-id",
		Rating:        4.5,
		ReviewCount:   12,
		CompletedJobs: 30,
		IsVerified:    true,
	}

	t.Run("counts every event type and derives both ratios", func(t *testing.T) {
		events := []model.ActivityEvent{
			{EventType: model.EventTypeView},
			{EventType: model.EventTypeView},
			{EventType: model.EventTypeView},
			{EventType: model.EventTypeView},
			{EventType: model.EventTypeContactClick},
			{EventType: model.EventTypeInquiryReceived},
			{EventType: model.EventTypeInquiryReceived},
			{EventType: model.EventTypeReviewReceived},
			{EventType: model.EventTypeJobCompleted},
			{EventType: model.EventTypeProfileUpdated},
		}

		var report dto.AnalyticsResponse
		report.FromEvents("30d", events, business)

		assert.Equal(t, "business-id", report.BusinessID)
		assert.Equal(t, "30d", report.Period)
		assert.Equal(t, 4, report.ProfileViews)
		assert.Equal(t, 1, report.ContactClicks)
		assert.Equal(t, 2, report.InquiriesReceived)
		assert.Equal(t, 1, report.ReviewsReceived)
		assert.Equal(t, 1, report.JobsCompleted)
		assert.Equal(t, 1, report.ProfileUpdates)
		assert.Equal(t, 50.0, report.ConversionRate)
		assert.Equal(t, 25.0, report.EngagementRate)
		assert.Equal(t, 4.5, report.Rating)
		assert.Equal(t, 12, report.ReviewCount)
		assert.Equal(t, 30, report.CompletedJobs)
		assert.True(t, report.IsVerified)
	})

	t.Run("zero denominators keep the ratios at zero", func(t *testing.T) {
		events := []model.ActivityEvent{
			{EventType: model.EventTypeJobCompleted},
			{EventType: model.EventTypeContactClick},
		}

		var report dto.AnalyticsResponse
		report.FromEvents("7d", events, business)

		assert.Equal(t, 0.0, report.ConversionRate)
		assert.Equal(t, 0.0, report.EngagementRate)
	})
}

func TestDailyStatsFromEvents(t *testing.T) {
	day := func(value string) time.Time {
		parsed, err := time.Parse(time.RFC3339, value)
		assert.NoError(t, err)

		return parsed
	}

	t.Run("buckets by UTC date in ascending order", func(t *testing.T) {
		events := []model.ActivityEvent{
			{EventType: model.EventTypeView, CreatedAt: day("2026-08-03T10:00:00Z")},
			{EventType: model.EventTypeView, CreatedAt: day("2026-08-01T09:00:00Z")},
			{EventType: model.EventTypeInquiryReceived, CreatedAt: day("2026-08-01T15:00:00Z")},
			{EventType: model.EventTypeContactClick, CreatedAt: day("2026-08-03T23:59:00Z")},
			{EventType: model.EventTypeJobCompleted, CreatedAt: day("2026-08-03T00:00:00Z")},
			{EventType: model.EventTypeReviewReceived, CreatedAt: day("2026-08-03T12:00:00Z")},
		}

		stats := dto.DailyStatsFromEvents(events)

		assert.Len(t, stats, 2)
		assert.Equal(t, "2026-08-01", stats[0].Date)
		assert.Equal(t, 1, stats[0].Views)
		assert.Equal(t, 1, stats[0].Inquiries)
		assert.Equal(t, "2026-08-03", stats[1].Date)
		assert.Equal(t, 1, stats[1].Views)
		assert.Equal(t, 1, stats[1].Contacts)
		assert.Equal(t, 1, stats[1].Jobs)
		assert.Equal(t, 1, stats[1].Reviews)
	})

	t.Run("local timestamps collapse onto their UTC date", func(t *testing.T) {
		// 01:00 on the 2nd at UTC+7 is still the 1st in UTC.
		jakarta := time.FixedZone("WIB", 7*60*60)
		events := []model.ActivityEvent{
			{EventType: model.EventTypeView, CreatedAt: time.Date(2026, 8, 2, 1, 0, 0, 0, jakarta)},
		}

		stats := dto.DailyStatsFromEvents(events)

		assert.Len(t, stats, 1)
		assert.Equal(t, "2026-08-01", stats[0].Date)
	})

	t.Run("profile updates do not count toward any column", func(t *testing.T) {
		events := []model.ActivityEvent{
			{EventType: model.EventTypeProfileUpdated, CreatedAt: day("2026-08-05T08:00:00Z")},
		}

		stats := dto.DailyStatsFromEvents(events)

		assert.Len(t, stats, 1)
		assert.Equal(t, dto.DailyStatResponse{Date: "2026-08-05"}, stats[0])
	})

	t.Run("no events yields an empty slice", func(t *testing.T) {
		assert.Empty(t, dto.DailyStatsFromEvents(nil))
	})
}
