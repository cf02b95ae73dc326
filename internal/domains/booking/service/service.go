package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hoodly/config"
	"hoodly/infras/otel"
	"hoodly/internal/domains/activity/event"
	activityModel "hoodly/internal/domains/activity/model"
	"hoodly/internal/domains/booking/model"
	"hoodly/internal/domains/booking/model/dto"
	"hoodly/internal/domains/booking/repository"
	businessModel "hoodly/internal/domains/business/model"
	businessRepo "hoodly/internal/domains/business/repository"
	"hoodly/permissions"
	"hoodly/shared"
	"hoodly/shared/cache"
	"hoodly/shared/constant"
	gDto "hoodly/shared/dto"
	"hoodly/shared/failure"
	"hoodly/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, req dto.CancelBookingRequest, id string) (dto.BookingResponse, error)
	ListReviewable(ctx context.Context) ([]dto.BookingResponse, error)
	ListForCustomer(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	ListForBusiness(ctx context.Context, businessID string, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
}

type serviceImpl struct {
	repo         repository.Booking
	businessRepo businessRepo.Business
	payoutRepo   businessRepo.Payout
	catalogRepo  businessRepo.Catalog
	recorder     *event.Recorder
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	bizRepo businessRepo.Business,
	payoutRepo businessRepo.Payout,
	catalogRepo businessRepo.Catalog,
	recorder *event.Recorder,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		businessRepo: bizRepo,
		payoutRepo:   payoutRepo,
		catalogRepo:  catalogRepo,
		recorder:     recorder,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
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

	payoutReady, err := s.payoutRepo.HasVerifiedAccount(ctx, business.OwnerUserID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check payout readiness")

		return res, fmt.Errorf("failed to check payout readiness: %w", err)
	}

	if !payoutReady {
		return res, failure.BadRequestFromString("business is not payout-ready") // nolint:wrapcheck
	}

	if req.ServiceID != nil {
		belongs, err := s.catalogRepo.BelongsToBusiness(ctx, *req.ServiceID, req.BusinessID)
		if err != nil {
			log.Error().Err(err).Msg("failed to check service ownership")

			return res, fmt.Errorf("failed to check service ownership: %w", err)
		}

		if !belongs {
			return res, failure.NotFound("service not found for this business") // nolint:wrapcheck
		}
	}

	booking, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, business, err := s.getParty(ctx, id)
	if err != nil {
		return res, err
	}

	if !permissions.IsParty(user, booking.CustomerID, business.OwnerUserID) {
		return res, failure.Forbidden("only the customer or the business owner can view this booking") // nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateBookingStatusRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, business, err := s.getParty(ctx, id)
	if err != nil {
		return res, err
	}

	if !permissions.IsParty(user, booking.CustomerID, business.OwnerUserID) {
		return res, failure.Forbidden("only the customer or the business owner can update this booking") // nolint:wrapcheck
	}

	if !model.CanTransition(booking.Status, req.Status) {
		return res, failure.BadRequestFromString(fmt.Sprintf("cannot transition booking from %s to %s", booking.Status, req.Status)) // nolint:wrapcheck
	}

	return s.applyStatus(ctx, booking, req.Status, req.Reason, user)
}

func (s *serviceImpl) Cancel(ctx context.Context, req dto.CancelBookingRequest, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, business, err := s.getParty(ctx, id)
	if err != nil {
		return res, err
	}

	if !permissions.IsParty(user, booking.CustomerID, business.OwnerUserID) {
		return res, failure.Forbidden("only the customer or the business owner can cancel this booking") // nolint:wrapcheck
	}

	if model.IsTerminal(booking.Status) {
		return res, failure.BadRequestFromString("cannot cancel a completed or already cancelled booking") // nolint:wrapcheck
	}

	return s.applyStatus(ctx, booking, model.StatusCancelled, req.Reason, user)
}

// applyStatus writes a transition that has already passed the authorization
// and transition checks, then runs the completion side effects.
func (s *serviceImpl) applyStatus(ctx context.Context, booking model.Booking, status, reason, user string) (res dto.BookingResponse, err error) {
	filter := shared.FilterByID(booking.ID, model.FieldID, model.TableName)
	now := timezone.Now()

	updatedFields := map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	switch status {
	case model.StatusCompleted:
		updatedFields[model.FieldCompletedAt] = now
		updatedFields[model.FieldCanReview] = true
	case model.StatusCancelled:
		updatedFields[model.FieldCancelledAt] = now

		if reason != constant.Empty {
			updatedFields[model.FieldCancellationReason] = reason
		}
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return res, fmt.Errorf("failed to update booking status: %w", err)
	}

	if status == model.StatusCompleted {
		if err := s.businessRepo.IncrementCompletedJobs(ctx, booking.BusinessID); err != nil {
			log.Error().Err(err).
				Str("booking_id", booking.ID).
				Msg("failed to increment completed jobs, reconciliation candidate")
		}

		s.recorder.Record(ctx, activityModel.New(booking.BusinessID, activityModel.EventTypeJobCompleted, &user, map[string]any{
			"booking_id": booking.ID,
		}))
	}

	updated, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload booking")

		return res, fmt.Errorf("failed to reload booking: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) ListReviewable(ctx context.Context) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ListReviewable")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldCustomerID, Value: user, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusCompleted, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldCanReview, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldHasReviewed, Value: false, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	params := gDto.QueryParams{SortBy: model.FieldCompletedAt, SortDir: gDto.SortDirDesc}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reviewable bookings")

		return res, fmt.Errorf("failed to get reviewable bookings: %w", err)
	}

	res = make([]dto.BookingResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res, nil
}

func (s *serviceImpl) ListForCustomer(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ListForCustomer")
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

func (s *serviceImpl) ListForBusiness(ctx context.Context, businessID string, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ListForBusiness")
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
		return res, failure.Forbidden("only the business owner can list these bookings") // nolint:wrapcheck
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

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, params)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

// getParty loads a booking together with the business it belongs to so the
// caller can run the two-sided authorization check.
func (s *serviceImpl) getParty(ctx context.Context, id string) (model.Booking, businessModel.Business, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, businessModel.Business{}, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, businessModel.Business{}, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	business, err := s.businessRepo.Get(ctx, shared.FilterByID(booking.BusinessID, businessModel.FieldID, businessModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get business")

		return booking, business, fmt.Errorf("failed to get business: %w", err)
	}

	if business.ID == constant.Empty {
		return booking, business, failure.NotFound("business not found") // nolint:wrapcheck
	}

	return booking, business, nil
}
