package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"hoodly/infras/otel"
	"hoodly/infras/postgres"
	"hoodly/internal/domains/activity/model"
	gDto "hoodly/shared/dto"
	gRepo "hoodly/shared/repository"
)

type Activity interface {
	Insert(ctx context.Context, model model.ActivityEvent) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ActivityEvent, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ActivityEvent, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.ActivityEvent]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Activity {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ActivityEvent](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
