package repository

//go:generate go run go.uber.org/mock/mockgen -source=./catalog.go -destination=../mocks/catalog_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hoodly/infras/otel"
	"hoodly/infras/postgres"
	"hoodly/internal/domains/business/model"
	gDto "hoodly/shared/dto"
	gRepo "hoodly/shared/repository"
)

type Catalog interface {
	Insert(ctx context.Context, model model.CatalogService) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.CatalogService, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.CatalogService, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	BelongsToBusiness(ctx context.Context, serviceID, businessID string) (bool, error)
}

type catalogImpl struct {
	gRepo.Repository[model.CatalogService]
	db   *postgres.Connection
	otel otel.Otel
}

func NewCatalog(db *postgres.Connection, otel otel.Otel) Catalog {
	return &catalogImpl{
		Repository: gRepo.NewRepository[model.CatalogService](model.CatalogEntityName, model.CatalogTableName, model.CatalogFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *catalogImpl) BelongsToBusiness(ctx context.Context, serviceID, businessID string) (bool, error) {
	exist, err := repo.Exist(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.CatalogFieldID,
				Value:    serviceID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.CatalogTableName,
				ArgName:  "catalog_id",
			},
			gDto.Filter{
				Field:    model.CatalogFieldBusinessID,
				Value:    businessID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.CatalogTableName,
				ArgName:  "catalog_business_id",
			},
		},
	})
	if err != nil {
		return false, fmt.Errorf("failed to check service ownership: %w", err)
	}

	return exist, nil
}
