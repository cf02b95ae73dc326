package repository

//go:generate go run go.uber.org/mock/mockgen -source=./payout.go -destination=../mocks/payout_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hoodly/infras/otel"
	"hoodly/infras/postgres"
	"hoodly/internal/domains/business/model"
	gDto "hoodly/shared/dto"
	gRepo "hoodly/shared/repository"
)

type Payout interface {
	Insert(ctx context.Context, model model.PayoutAccount) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.PayoutAccount, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.PayoutAccount, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	HasVerifiedAccount(ctx context.Context, userID string) (bool, error)
}

type payoutImpl struct {
	gRepo.Repository[model.PayoutAccount]
	db   *postgres.Connection
	otel otel.Otel
}

func NewPayout(db *postgres.Connection, otel otel.Otel) Payout {
	return &payoutImpl{
		Repository: gRepo.NewRepository[model.PayoutAccount](model.PayoutEntityName, model.PayoutTableName, model.PayoutFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *payoutImpl) HasVerifiedAccount(ctx context.Context, userID string) (bool, error) {
	exist, err := repo.Exist(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.PayoutFieldUserID,
				Value:    userID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.PayoutTableName,
				ArgName:  "payout_user_id",
			},
			gDto.Filter{
				Field:    model.PayoutFieldIsVerified,
				Value:    true,
				Operator: gDto.FilterOperatorEq,
				Table:    model.PayoutTableName,
				ArgName:  "payout_is_verified",
			},
		},
	})
	if err != nil {
		return false, fmt.Errorf("failed to check verified payout account: %w", err)
	}

	return exist, nil
}
