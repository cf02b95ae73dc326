package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hoodly/internal/domains/booking/model"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{name: "pending to confirmed", from: model.StatusPending, to: model.StatusConfirmed, want: true},
		{name: "pending to cancelled", from: model.StatusPending, to: model.StatusCancelled, want: true},
		{name: "pending to in progress skips confirmation", from: model.StatusPending, to: model.StatusInProgress, want: false},
		{name: "pending to completed skips the whole flow", from: model.StatusPending, to: model.StatusCompleted, want: false},
		{name: "confirmed to in progress", from: model.StatusConfirmed, to: model.StatusInProgress, want: true},
		{name: "confirmed to cancelled", from: model.StatusConfirmed, to: model.StatusCancelled, want: true},
		{name: "confirmed to completed skips in progress", from: model.StatusConfirmed, to: model.StatusCompleted, want: false},
		{name: "confirmed back to pending", from: model.StatusConfirmed, to: model.StatusPending, want: false},
		{name: "in progress to completed", from: model.StatusInProgress, to: model.StatusCompleted, want: true},
		{name: "in progress to cancelled", from: model.StatusInProgress, to: model.StatusCancelled, want: true},
		{name: "in progress back to confirmed", from: model.StatusInProgress, to: model.StatusConfirmed, want: false},
		{name: "completed is terminal", from: model.StatusCompleted, to: model.StatusPending, want: false},
		{name: "completed to cancelled", from: model.StatusCompleted, to: model.StatusCancelled, want: false},
		{name: "cancelled is terminal", from: model.StatusCancelled, to: model.StatusPending, want: false},
		{name: "cancelled to confirmed", from: model.StatusCancelled, to: model.StatusConfirmed, want: false},
		{name: "same status is not a transition", from: model.StatusPending, to: model.StatusPending, want: false},
		{name: "unknown source status", from: "unknown", to: model.StatusConfirmed, want: false},
		{name: "unknown target status", from: model.StatusPending, to: "unknown", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.CanTransition(tt.from, tt.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, model.IsTerminal(model.StatusCompleted))
	assert.True(t, model.IsTerminal(model.StatusCancelled))
	assert.False(t, model.IsTerminal(model.StatusPending))
	assert.False(t, model.IsTerminal(model.StatusConfirmed))
	assert.False(t, model.IsTerminal(model.StatusInProgress))
}

func TestValidStatus(t *testing.T) {
	for _, status := range []string{
		model.StatusPending,
		model.StatusConfirmed,
		model.StatusInProgress,
		model.StatusCompleted,
		model.StatusCancelled,
	} {
		assert.True(t, model.ValidStatus(status), status)
	}

	assert.False(t, model.ValidStatus(""))
	assert.False(t, model.ValidStatus("archived"))
}
