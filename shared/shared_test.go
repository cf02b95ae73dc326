package shared_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hoodly/shared"
)

func TestConvertStringToBool(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *bool
	}{
		{name: "empty string", input: "", want: nil},
		{name: "true value", input: "true", want: boolPtr(true)},
		{name: "false value", input: "false", want: boolPtr(false)},
		{name: "numeric true", input: "1", want: boolPtr(true)},
		{name: "invalid value", input: "not-a-bool", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shared.ConvertStringToBool(tt.input)

			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				assert.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{name: "zero total", total: 0, limit: 10, want: 1},
		{name: "zero limit", total: 25, limit: 0, want: 1},
		{name: "exact division", total: 20, limit: 10, want: 2},
		{name: "remainder rounds up", total: 21, limit: 10, want: 3},
		{name: "single page", total: 3, limit: 10, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{name: "repeating decimal", input: 14.0 / 3.0, want: 4.67},
		{name: "already two decimals", input: 4.5, want: 4.5},
		{name: "rounds up past the midpoint", input: 2.0 / 3.0, want: 0.67},
		{name: "zero", input: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, shared.Round2(tt.input), 0.0001)
		})
	}
}

func TestRound2Exactness(t *testing.T) {
	// The displayed average of ratings 5, 4 and 5 must compare exactly.
	got := shared.Round2(float64(5+4+5) / 3.0)

	assert.Equal(t, 4.67, got)
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		name        string
		numerator   int
		denominator int
		want        float64
	}{
		{name: "zero denominator", numerator: 5, denominator: 0, want: 0},
		{name: "zero numerator", numerator: 0, denominator: 10, want: 0},
		{name: "half", numerator: 5, denominator: 10, want: 50},
		{name: "rounded", numerator: 1, denominator: 3, want: 33.33},
		{name: "over one hundred", numerator: 3, denominator: 2, want: 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.Percentage(tt.numerator, tt.denominator))
		})
	}
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "prefix", shared.BuildCacheKey("prefix"))
	assert.Equal(t, "prefix:a", shared.BuildCacheKey("prefix", "a"))
	assert.Equal(t, "prefix:a:b", shared.BuildCacheKey("prefix", "a", "b"))
}

func boolPtr(value bool) *bool {
	return &value
}
