package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hoodly/infras/otel"
	"hoodly/infras/postgres"
	"hoodly/internal/domains/business/model"
	"hoodly/shared/constant"
	gDto "hoodly/shared/dto"
	"hoodly/shared/logger"
	gRepo "hoodly/shared/repository"
	"hoodly/shared/timezone"
)

type Business interface {
	Insert(ctx context.Context, model model.Business) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Business, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Business, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	UpdateRating(ctx context.Context, businessID string, rating float64, reviewCount int) error
	IncrementCompletedJobs(ctx context.Context, businessID string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Business]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Business {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Business](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// UpdateRating writes a freshly recomputed rating snapshot. Both columns move
// together so readers never see an average paired with a stale count.
func (repo *repositoryImpl) UpdateRating(ctx context.Context, businessID string, rating float64, reviewCount int) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".business.UpdateRating")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		"UPDATE %s SET %s = :rating, %s = :review_count, %s = :modified_at WHERE %s = :id",
		model.TableName, model.FieldRating, model.FieldReviewCount, constant.FieldModifiedAt, model.FieldID,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"id":           businessID,
		"rating":       rating,
		"review_count": reviewCount,
		"modified_at":  timezone.Now(),
	}

	_, err = repo.db.Write.NamedExecContext(ctx, query, args)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to update rating (%s): %w", model.EntityName, err)
	}

	return nil
}

// IncrementCompletedJobs bumps the completed jobs counter atomically in the
// database instead of read-modify-write in the service.
func (repo *repositoryImpl) IncrementCompletedJobs(ctx context.Context, businessID string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".business.IncrementCompletedJobs")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(
		"UPDATE %s SET %s = %s + 1, %s = :modified_at WHERE %s = :id",
		model.TableName, model.FieldCompletedJobs, model.FieldCompletedJobs, constant.FieldModifiedAt, model.FieldID,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"id":          businessID,
		"modified_at": timezone.Now(),
	}

	_, err = repo.db.Write.NamedExecContext(ctx, query, args)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to increment completed jobs (%s): %w", model.EntityName, err)
	}

	return nil
}
