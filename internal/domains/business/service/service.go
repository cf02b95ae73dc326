package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hoodly/config"
	"hoodly/infras/otel"
	"hoodly/internal/domains/activity/event"
	activityModel "hoodly/internal/domains/activity/model"
	"hoodly/internal/domains/business/model"
	"hoodly/internal/domains/business/model/dto"
	"hoodly/internal/domains/business/repository"
	"hoodly/permissions"
	"hoodly/shared"
	"hoodly/shared/cache"
	"hoodly/shared/constant"
	gDto "hoodly/shared/dto"
	"hoodly/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBusiness    = "business:get"
	cacheGetAllBusiness = "business:gets"
	cacheCountBusiness  = "business:count"
)

type Business interface {
	Create(ctx context.Context, req dto.CreateBusinessRequest) (dto.BusinessResponse, error)
	Get(ctx context.Context, id string) (dto.BusinessResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBusinessesResponse, error)
	UpdateProfile(ctx context.Context, req dto.UpdateBusinessProfileRequest, id string) (dto.BusinessResponse, error)
}

type serviceImpl struct {
	repo     repository.Business
	recorder *event.Recorder
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Business, recorder *event.Recorder, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Business {
	return &serviceImpl{
		repo:     repo,
		recorder: recorder,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBusinessRequest) (res dto.BusinessResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".business.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	business := req.ToModel(user)
	if err = s.repo.Insert(ctx, business); err != nil {
		log.Error().Err(err).Msg("failed to create business")

		return res, fmt.Errorf("failed to create business: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBusiness)
		shared.InvalidateCaches(c, s.cache, cacheCountBusiness)
	}()

	res.FromModel(business)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BusinessResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".business.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBusiness, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for business")

		return res, nil
	}

	business, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get business")

		return res, fmt.Errorf("failed to get business: %w", err)
	}

	if business.ID == constant.Empty {
		return res, failure.NotFound("business not found") // nolint:wrapcheck
	}

	res.FromModel(business)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save business to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBusinessesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".business.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBusiness, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for businesses")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count businesses")

		return res, fmt.Errorf("failed to count businesses: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get businesses")

		return res, fmt.Errorf("failed to get businesses: %w", err)
	}

	res.FromModels(models, total, req)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save businesses to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateProfile(ctx context.Context, req dto.UpdateBusinessProfileRequest, id string) (res dto.BusinessResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".business.UpdateProfile")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	business, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get business")

		return res, fmt.Errorf("failed to get business: %w", err)
	}

	if business.ID == constant.Empty {
		return res, failure.NotFound("business not found") // nolint:wrapcheck
	}

	if !permissions.IsOwner(user, business.OwnerUserID) {
		return res, failure.Forbidden("only the business owner can update the profile") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update business profile")

		return res, fmt.Errorf("failed to update business profile: %w", err)
	}

	s.recorder.Record(ctx, activityModel.New(id, activityModel.EventTypeProfileUpdated, &user, nil))

	updated, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload business")

		return res, fmt.Errorf("failed to reload business: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBusiness, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete business from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBusiness)
	}()

	res.FromModel(updated)

	return res, nil
}
