package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hoodly/internal/domains/inquiry/model"
)

func TestCanAdvance(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{name: "pending to responded", from: model.StatusPending, to: model.StatusResponded, want: true},
		{name: "pending straight to closed", from: model.StatusPending, to: model.StatusClosed, want: true},
		{name: "responded to closed", from: model.StatusResponded, to: model.StatusClosed, want: true},
		{name: "responded back to pending", from: model.StatusResponded, to: model.StatusPending, want: false},
		{name: "closed cannot reopen to pending", from: model.StatusClosed, to: model.StatusPending, want: false},
		{name: "closed cannot reopen to responded", from: model.StatusClosed, to: model.StatusResponded, want: false},
		{name: "same status", from: model.StatusPending, to: model.StatusPending, want: false},
		{name: "unknown source", from: "unknown", to: model.StatusClosed, want: false},
		{name: "unknown target", from: model.StatusPending, to: "unknown", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.CanAdvance(tt.from, tt.to))
		})
	}
}
