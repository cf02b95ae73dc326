package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"hoodly/config"
	"hoodly/infras/otel"
	"hoodly/internal/domains/activity/event"
	activityModel "hoodly/internal/domains/activity/model"
	businessModel "hoodly/internal/domains/business/model"
	businessRepo "hoodly/internal/domains/business/repository"
	"hoodly/internal/domains/inquiry/model"
	"hoodly/internal/domains/inquiry/model/dto"
	"hoodly/internal/domains/inquiry/repository"
	"hoodly/permissions"
	"hoodly/shared"
	"hoodly/shared/cache"
	"hoodly/shared/constant"
	gDto "hoodly/shared/dto"
	"hoodly/shared/failure"
	"hoodly/shared/timezone"
)

const (
	cacheGetAllInquiry = "inquiry:gets"
	cacheCountInquiry  = "inquiry:count"
	cacheStatsInquiry  = "inquiry:stats"
)

type Inquiry interface {
	Create(ctx context.Context, req dto.CreateInquiryRequest) (dto.InquiryResponse, error)
	Get(ctx context.Context, id string) (dto.InquiryResponse, error)
	Respond(ctx context.Context, req dto.RespondInquiryRequest, id string) (dto.InquiryResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateInquiryStatusRequest, id string) (dto.InquiryResponse, error)
	Stats(ctx context.Context, businessID string) (dto.InquiryStatsResponse, error)
	ListForBusiness(ctx context.Context, businessID string, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetInquiriesResponse, error)
	ListMine(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetInquiriesResponse, error)
}

type serviceImpl struct {
	repo         repository.Inquiry
	businessRepo businessRepo.Business
	recorder     *event.Recorder
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Inquiry,
	bizRepo businessRepo.Business,
	recorder *event.Recorder,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Inquiry {
	return &serviceImpl{
		repo:         repo,
		businessRepo: bizRepo,
		recorder:     recorder,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateInquiryRequest) (res dto.InquiryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inquiry.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	business, err := s.businessRepo.Get(ctx, shared.FilterByID(req.BusinessID, businessModel.FieldID, businessModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get business")

		return res, fmt.Errorf("failed to get business: %w", err)
	}

	if business.ID == constant.Empty || !business.IsActive {
		return res, failure.NotFound("business not found") // nolint:wrapcheck
	}

	inquiry, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse inquiry request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, inquiry); err != nil {
		log.Error().Err(err).Msg("failed to create inquiry")

		return res, fmt.Errorf("failed to create inquiry: %w", err)
	}

	s.recorder.Record(ctx, activityModel.New(req.BusinessID, activityModel.EventTypeInquiryReceived, &user, map[string]any{
		"inquiry_id":   inquiry.ID,
		"inquiry_type": inquiry.InquiryType,
	}))

	s.invalidate(ctx, req.BusinessID)

	res.FromModel(inquiry)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.InquiryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inquiry.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	inquiry, business, err := s.getParty(ctx, id)
	if err != nil {
		return res, err
	}

	if !permissions.IsParty(user, inquiry.CustomerID, business.OwnerUserID) {
		return res, failure.Forbidden("only the customer or the business owner can view this inquiry") // nolint:wrapcheck
	}

	res.FromModel(inquiry)

	return res, nil
}

func (s *serviceImpl) Respond(ctx context.Context, req dto.RespondInquiryRequest, id string) (res dto.InquiryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inquiry.Respond")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	inquiry, business, err := s.getParty(ctx, id)
	if err != nil {
		return res, err
	}

	if !permissions.IsOwner(user, business.OwnerUserID) {
		return res, failure.Forbidden("only the business owner can respond to this inquiry") // nolint:wrapcheck
	}

	if inquiry.RespondedAt != nil {
		return res, failure.BadRequestFromString("inquiry has already been responded to") // nolint:wrapcheck
	}

	// A closed inquiry stays closed even when it was closed without a response.
	if !model.CanAdvance(inquiry.Status, model.StatusResponded) {
		return res, failure.BadRequestFromString("inquiry is no longer open for a response") // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	updatedFields := map[string]any{
		model.FieldResponse:      req.Response,
		model.FieldRespondedAt:   timezone.Now(),
		model.FieldStatus:        model.StatusResponded,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to respond to inquiry")

		return res, fmt.Errorf("failed to respond to inquiry: %w", err)
	}

	s.invalidate(ctx, inquiry.BusinessID)

	updated, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload inquiry")

		return res, fmt.Errorf("failed to reload inquiry: %w", err)
	}

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateInquiryStatusRequest, id string) (res dto.InquiryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inquiry.UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	inquiry, business, err := s.getParty(ctx, id)
	if err != nil {
		return res, err
	}

	if !permissions.IsOwner(user, business.OwnerUserID) {
		return res, failure.Forbidden("only the business owner can update this inquiry") // nolint:wrapcheck
	}

	if !model.CanAdvance(inquiry.Status, req.Status) {
		return res, failure.BadRequestFromString(fmt.Sprintf("cannot move inquiry from %s to %s", inquiry.Status, req.Status)) // nolint:wrapcheck
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	updatedFields := map[string]any{
		model.FieldStatus:        req.Status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update inquiry status")

		return res, fmt.Errorf("failed to update inquiry status: %w", err)
	}

	s.invalidate(ctx, inquiry.BusinessID)

	updated, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload inquiry")

		return res, fmt.Errorf("failed to reload inquiry: %w", err)
	}

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) Stats(ctx context.Context, businessID string) (res dto.InquiryStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inquiry.Stats")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	business, err := s.businessRepo.Get(ctx, shared.FilterByID(businessID, businessModel.FieldID, businessModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get business")

		return res, fmt.Errorf("failed to get business: %w", err)
	}

	if business.ID == constant.Empty {
		return res, failure.NotFound("business not found") // nolint:wrapcheck
	}

	if !permissions.IsOwner(user, business.OwnerUserID) {
		return res, failure.Forbidden("only the business owner can view inquiry stats") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheStatsInquiry, businessID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for inquiry stats")

		return res, nil
	}

	inquiries, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldBusinessID, Value: businessID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get inquiries")

		return res, fmt.Errorf("failed to get inquiries: %w", err)
	}

	res.FromModels(inquiries)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save inquiry stats to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) ListForBusiness(ctx context.Context, businessID string, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetInquiriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inquiry.ListForBusiness")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	business, err := s.businessRepo.Get(ctx, shared.FilterByID(businessID, businessModel.FieldID, businessModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get business")

		return res, fmt.Errorf("failed to get business: %w", err)
	}

	if business.ID == constant.Empty {
		return res, failure.NotFound("business not found") // nolint:wrapcheck
	}

	if !permissions.IsOwner(user, business.OwnerUserID) {
		return res, failure.Forbidden("only the business owner can list these inquiries") // nolint:wrapcheck
	}

	scoped := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldBusinessID, Value: businessID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			filter,
		},
	}

	return s.list(ctx, params, scoped)
}

func (s *serviceImpl) ListMine(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetInquiriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".inquiry.ListMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	scoped := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldCustomerID, Value: user, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			filter,
		},
	}

	return s.list(ctx, params, scoped)
}

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetInquiriesResponse, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllInquiry, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for inquiries")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count inquiries")

		return res, fmt.Errorf("failed to count inquiries: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get inquiries")

		return res, fmt.Errorf("failed to get inquiries: %w", err)
	}

	res.FromModels(models, total, params)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save inquiries to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) getParty(ctx context.Context, id string) (model.Inquiry, businessModel.Business, error) {
	inquiry, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get inquiry")

		return inquiry, businessModel.Business{}, fmt.Errorf("failed to get inquiry: %w", err)
	}

	if inquiry.ID == constant.Empty {
		return inquiry, businessModel.Business{}, failure.NotFound("inquiry not found") // nolint:wrapcheck
	}

	business, err := s.businessRepo.Get(ctx, shared.FilterByID(inquiry.BusinessID, businessModel.FieldID, businessModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get business")

		return inquiry, business, fmt.Errorf("failed to get business: %w", err)
	}

	if business.ID == constant.Empty {
		return inquiry, business, failure.NotFound("business not found") // nolint:wrapcheck
	}

	return inquiry, business, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, businessID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheStatsInquiry, businessID)); err != nil {
			log.Error().Err(err).Msg("failed to delete inquiry stats from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllInquiry)
		shared.InvalidateCaches(c, s.cache, cacheCountInquiry)
	}()
}
