package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hoodly/shared/dto"
)

func TestFilterGroup_GetWhereClause(t *testing.T) {
	customerFilter := dto.Filter{
		Field:    "customer_id",
		Value:    "customer-id",
		Operator: dto.FilterOperatorEq,
		Table:    "bookings",
	}
	statusFilter := dto.Filter{
		Field:    "status",
		Value:    "pending",
		Operator: dto.FilterOperatorEq,
		Table:    "bookings",
	}

	tests := []struct {
		name      string
		group     dto.FilterGroup
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "empty group",
			group:     dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
		{
			name: "single filter",
			group: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters:  []any{customerFilter},
			},
			wantWhere: "(bookings.customer_id = :customer_id)",
			wantArgs:  map[string]any{"customer_id": "customer-id"},
		},
		{
			name: "empty nested group is skipped",
			group: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					customerFilter,
					dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd},
				},
			},
			wantWhere: "(bookings.customer_id = :customer_id)",
			wantArgs:  map[string]any{"customer_id": "customer-id"},
		},
		{
			name: "populated nested group is joined",
			group: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					customerFilter,
					dto.FilterGroup{
						Operator: dto.FilterGroupOperatorAnd,
						Filters:  []any{statusFilter},
					},
				},
			},
			wantWhere: "(bookings.customer_id = :customer_id AND (bookings.status = :status))",
			wantArgs: map[string]any{
				"customer_id": "customer-id",
				"status":      "pending",
			},
		},
		{
			name: "filter with unknown operator is skipped",
			group: dto.FilterGroup{
				Operator: dto.FilterGroupOperatorAnd,
				Filters: []any{
					customerFilter,
					dto.Filter{Field: "status", Value: "pending", Operator: "between", Table: "bookings"},
				},
			},
			wantWhere: "(bookings.customer_id = :customer_id)",
			wantArgs:  map[string]any{"customer_id": "customer-id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.group.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
