package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hoodly/internal/domains/review/model"
	"hoodly/internal/domains/review/model/dto"
)

func TestReviewStatsResponseFromModels(t *testing.T) {
	t.Run("empty set yields zeroes with a full distribution", func(t *testing.T) {
		var stats dto.ReviewStatsResponse
		stats.FromModels(nil)

		assert.Equal(t, 0, stats.TotalReviews)
		assert.Equal(t, 0.0, stats.AverageRating)
		assert.Equal(t, 0.0, stats.AverageServiceQuality)
		assert.Equal(t, 0.0, stats.AverageProfessionalism)
		assert.Equal(t, 0.0, stats.AverageValueForMoney)
		assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, stats.RatingDistribution)
	})

	t.Run("average rounds to two decimals exactly", func(t *testing.T) {
		var stats dto.ReviewStatsResponse
		stats.FromModels([]model.Review{
			{Rating: 5},
			{Rating: 5},
			{Rating: 4},
		})

		assert.Equal(t, 3, stats.TotalReviews)
		assert.Equal(t, 4.67, stats.AverageRating)
		assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 1, 5: 2}, stats.RatingDistribution)
	})

	t.Run("dimension averages divide by their own counts", func(t *testing.T) {
		var stats dto.ReviewStatsResponse
		stats.FromModels([]model.Review{
			{Rating: 5, ServiceQuality: intPtr(5), Professionalism: intPtr(4)},
			{Rating: 3, ServiceQuality: intPtr(2)},
			{Rating: 4},
		})

		assert.Equal(t, 3, stats.TotalReviews)
		assert.Equal(t, 4.0, stats.AverageRating)
		assert.Equal(t, 3.5, stats.AverageServiceQuality)
		assert.Equal(t, 4.0, stats.AverageProfessionalism)
		assert.Equal(t, 0.0, stats.AverageValueForMoney)
	})

	t.Run("out of range rating stays out of the distribution", func(t *testing.T) {
		var stats dto.ReviewStatsResponse
		stats.FromModels([]model.Review{
			{Rating: 5},
			{Rating: 9},
		})

		assert.Equal(t, 2, stats.TotalReviews)
		assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 1}, stats.RatingDistribution)
	})
}

func intPtr(value int) *int {
	return &value
}
