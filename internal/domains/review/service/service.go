package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"hoodly/config"
	"hoodly/infras/otel"
	"hoodly/infras/s3"
	"hoodly/internal/domains/activity/event"
	activityModel "hoodly/internal/domains/activity/model"
	bookingModel "hoodly/internal/domains/booking/model"
	bookingRepo "hoodly/internal/domains/booking/repository"
	businessModel "hoodly/internal/domains/business/model"
	businessRepo "hoodly/internal/domains/business/repository"
	"hoodly/internal/domains/review/model"
	"hoodly/internal/domains/review/model/dto"
	"hoodly/internal/domains/review/repository"
	"hoodly/permissions"
	"hoodly/shared"
	"hoodly/shared/base64"
	"hoodly/shared/cache"
	"hoodly/shared/constant"
	gDto "hoodly/shared/dto"
	"hoodly/shared/failure"
	"hoodly/shared/timezone"
)

const (
	cacheGetAllReview = "review:gets"
	cacheCountReview  = "review:count"
	cacheStatsReview  = "review:stats"

	photoDirectory = "reviews"

	pgUniqueViolation = pq.ErrorCode("23505")
)

var photoExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

type Review interface {
	Create(ctx context.Context, req dto.CreateReviewRequest) (dto.ReviewResponse, error)
	Update(ctx context.Context, req dto.UpdateReviewRequest, id string) (dto.ReviewResponse, error)
	Delete(ctx context.Context, id string) error
	Respond(ctx context.Context, req dto.RespondReviewRequest, id string) (dto.ReviewResponse, error)
	Stats(ctx context.Context, businessID string) (dto.ReviewStatsResponse, error)
	ListForBusiness(ctx context.Context, businessID string, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReviewsResponse, error)
}

type serviceImpl struct {
	repo         repository.Review
	businessRepo businessRepo.Business
	bookingRepo  bookingRepo.Booking
	recorder     *event.Recorder
	s3           s3.S3
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel

	// ratingLocks serializes aggregate recomputation per business so two
	// concurrent review writes cannot interleave their read-then-write.
	mu          sync.Mutex
	ratingLocks map[string]*sync.Mutex
}

func New(
	repo repository.Review,
	bizRepo businessRepo.Business,
	bkRepo bookingRepo.Booking,
	recorder *event.Recorder,
	s3Client s3.S3,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Review {
	return &serviceImpl{
		repo:         repo,
		businessRepo: bizRepo,
		bookingRepo:  bkRepo,
		recorder:     recorder,
		s3:           s3Client,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		ratingLocks:  map[string]*sync.Mutex{},
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReviewRequest) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".review.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	business, err := s.businessRepo.Get(ctx, shared.FilterByID(req.BusinessID, businessModel.FieldID, businessModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get business")

		return res, fmt.Errorf("failed to get business: %w", err)
	}

	if business.ID == constant.Empty {
		return res, failure.NotFound("business not found") // nolint:wrapcheck
	}

	if permissions.IsOwner(user, business.OwnerUserID) {
		return res, failure.Forbidden("you cannot review your own business") // nolint:wrapcheck
	}

	alreadyReviewed, err := s.repo.Exist(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldBusinessID, Value: req.BusinessID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldCustomerID, Value: user, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check existing review")

		return res, fmt.Errorf("failed to check existing review: %w", err)
	}

	if alreadyReviewed {
		return res, failure.Conflict("you have already reviewed this business") // nolint:wrapcheck
	}

	if req.BookingID != nil {
		if err = s.checkBookingLink(ctx, *req.BookingID, req.BusinessID, user); err != nil {
			return res, err
		}
	}

	photoURL := constant.Empty

	if req.Photo != constant.Empty {
		photoURL, err = s.uploadPhoto(ctx, req.Photo)
		if err != nil {
			log.Error().Err(err).Msg("failed to upload review photo")

			return res, fmt.Errorf("failed to upload review photo: %w", err)
		}
	}

	review := req.ToModel(user, photoURL)
	if err = s.repo.Insert(ctx, review); err != nil {
		// The Exist pre-check races with concurrent writers. The unique
		// constraint on (business_id, customer_id) is the arbiter, so its
		// violation is the same conflict, not an internal error.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return res, failure.Conflict("you have already reviewed this business") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create review")

		return res, fmt.Errorf("failed to create review: %w", err)
	}

	if req.BookingID != nil {
		bookingFields := map[string]any{
			bookingModel.FieldHasReviewed: true,
			bookingModel.FieldReviewID:    review.ID,
			constant.FieldModifiedAt:      timezone.Now(),
			constant.FieldModifiedBy:      user,
		}

		if err := s.bookingRepo.Update(ctx, bookingFields, shared.FilterByID(*req.BookingID, bookingModel.FieldID, bookingModel.TableName)); err != nil {
			log.Error().Err(err).
				Str("booking_id", *req.BookingID).
				Msg("failed to mark booking as reviewed, reconciliation candidate")
		}
	}

	s.recompute(ctx, req.BusinessID)

	s.recorder.Record(ctx, activityModel.New(req.BusinessID, activityModel.EventTypeReviewReceived, &user, map[string]any{
		"review_id": review.ID,
		"rating":    review.Rating,
	}))

	s.invalidate(ctx, req.BusinessID)

	res.FromModel(review)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateReviewRequest, id string) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".review.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	review, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get review")

		return res, fmt.Errorf("failed to get review: %w", err)
	}

	if review.ID == constant.Empty {
		return res, failure.NotFound("review not found") // nolint:wrapcheck
	}

	if !permissions.IsAuthor(user, review.CustomerID) {
		return res, failure.Forbidden("only the review author can update this review") // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if req.Rating != nil {
		updatedFields[model.FieldRating] = *req.Rating
	}

	if req.ServiceQuality != nil {
		updatedFields[model.FieldServiceQuality] = *req.ServiceQuality
	}

	if req.Professionalism != nil {
		updatedFields[model.FieldProfessionalism] = *req.Professionalism
	}

	if req.ValueForMoney != nil {
		updatedFields[model.FieldValueForMoney] = *req.ValueForMoney
	}

	if req.Comment != nil {
		updatedFields[model.FieldComment] = *req.Comment
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update review")

		return res, fmt.Errorf("failed to update review: %w", err)
	}

	s.recompute(ctx, review.BusinessID)
	s.invalidate(ctx, review.BusinessID)

	updated, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload review")

		return res, fmt.Errorf("failed to reload review: %w", err)
	}

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".review.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	review, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get review")

		return fmt.Errorf("failed to get review: %w", err)
	}

	if review.ID == constant.Empty {
		return failure.NotFound("review not found") // nolint:wrapcheck
	}

	if !permissions.IsAuthor(user, review.CustomerID) {
		return failure.Forbidden("only the review author can delete this review") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete review")

		return fmt.Errorf("failed to delete review: %w", err)
	}

	if review.PhotoURL != nil {
		objectName := s.s3.GetObjectNameFromURL(s.cfg.External.S3.BucketName, *review.PhotoURL)
		if objectName != constant.Empty {
			if err := s.s3.DeleteFile(ctx, constant.Empty, constant.Empty, objectName); err != nil {
				log.Error().Err(err).Str("object", objectName).Msg("failed to delete review photo")
			}
		}
	}

	if review.BookingID != nil {
		bookingFields := map[string]any{
			bookingModel.FieldHasReviewed: false,
			bookingModel.FieldReviewID:    nil,
			constant.FieldModifiedAt:      timezone.Now(),
			constant.FieldModifiedBy:      user,
		}

		if err := s.bookingRepo.Update(ctx, bookingFields, shared.FilterByID(*review.BookingID, bookingModel.FieldID, bookingModel.TableName)); err != nil {
			log.Error().Err(err).
				Str("booking_id", *review.BookingID).
				Msg("failed to unlink booking review, reconciliation candidate")
		}
	}

	s.recompute(ctx, review.BusinessID)
	s.invalidate(ctx, review.BusinessID)

	return nil
}

func (s *serviceImpl) Respond(ctx context.Context, req dto.RespondReviewRequest, id string) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".review.Respond")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	review, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get review")

		return res, fmt.Errorf("failed to get review: %w", err)
	}

	if review.ID == constant.Empty {
		return res, failure.NotFound("review not found") // nolint:wrapcheck
	}

	business, err := s.businessRepo.Get(ctx, shared.FilterByID(review.BusinessID, businessModel.FieldID, businessModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get business")

		return res, fmt.Errorf("failed to get business: %w", err)
	}

	if !permissions.IsOwner(user, business.OwnerUserID) {
		return res, failure.Forbidden("only the business owner can respond to this review") // nolint:wrapcheck
	}

	if review.RespondedAt != nil {
		return res, failure.Conflict("review already has a response") // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldResponse:      req.Response,
		model.FieldRespondedAt:   timezone.Now(),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to respond to review")

		return res, fmt.Errorf("failed to respond to review: %w", err)
	}

	s.invalidate(ctx, review.BusinessID)

	updated, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload review")

		return res, fmt.Errorf("failed to reload review: %w", err)
	}

	res.FromModel(updated)

	return res, nil
}

func (s *serviceImpl) Stats(ctx context.Context, businessID string) (res dto.ReviewStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".review.Stats")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheStatsReview, businessID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for review stats")

		return res, nil
	}

	exist, err := s.businessRepo.Exist(ctx, shared.FilterByID(businessID, businessModel.FieldID, businessModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if business exists")

		return res, fmt.Errorf("failed to check if business exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("business not found") // nolint:wrapcheck
	}

	reviews, err := s.repo.GetAll(ctx, gDto.QueryParams{}, s.businessFilter(businessID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reviews")

		return res, fmt.Errorf("failed to get reviews: %w", err)
	}

	res.FromModels(reviews)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save review stats to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) ListForBusiness(ctx context.Context, businessID string, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReviewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".review.ListForBusiness")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.businessRepo.Exist(ctx, shared.FilterByID(businessID, businessModel.FieldID, businessModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if business exists")

		return res, fmt.Errorf("failed to check if business exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("business not found") // nolint:wrapcheck
	}

	scoped := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldBusinessID, Value: businessID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			filter,
		},
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReview, params, scoped)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reviews")

		return res, nil
	}

	total, err := s.repo.Count(ctx, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reviews")

		return res, fmt.Errorf("failed to count reviews: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reviews")

		return res, fmt.Errorf("failed to get reviews: %w", err)
	}

	res.FromModels(models, total, params)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reviews to cache")
		}
	}()

	return res, nil
}

// recompute rebuilds the cached aggregate on the business row from the full
// review set. The write happens under a per-business lock and a failure leaves
// the rating stale rather than failing the review operation that triggered it.
func (s *serviceImpl) recompute(ctx context.Context, businessID string) {
	lock := s.businessLock(businessID)
	lock.Lock()
	defer lock.Unlock()

	reviews, err := s.repo.GetAll(ctx, gDto.QueryParams{}, s.businessFilter(businessID))
	if err != nil {
		log.Error().Err(err).
			Str("business_id", businessID).
			Msg("failed to load reviews for rating recompute, rating is stale")

		return
	}

	var stats dto.ReviewStatsResponse
	stats.FromModels(reviews)

	if err := s.businessRepo.UpdateRating(ctx, businessID, stats.AverageRating, stats.TotalReviews); err != nil {
		log.Error().Err(err).
			Str("business_id", businessID).
			Msg("failed to write recomputed rating, rating is stale")
	}
}

func (s *serviceImpl) businessLock(businessID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.ratingLocks[businessID]
	if !ok {
		lock = &sync.Mutex{}
		s.ratingLocks[businessID] = lock
	}

	return lock
}

func (s *serviceImpl) businessFilter(businessID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldBusinessID, Value: businessID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}

func (s *serviceImpl) checkBookingLink(ctx context.Context, bookingID, businessID, user string) error {
	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.CustomerID != user || booking.BusinessID != businessID {
		return failure.BadRequestFromString("booking does not belong to this customer and business") // nolint:wrapcheck
	}

	if booking.Status != bookingModel.StatusCompleted || !booking.CanReview {
		return failure.BadRequestFromString("booking is not completed yet") // nolint:wrapcheck
	}

	if booking.HasReviewed {
		return failure.Conflict("booking already has a review") // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) uploadPhoto(ctx context.Context, photo string) (string, error) {
	contentType := base64.GetContentType(photo)

	data, err := base64.Decode(photo)
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to decode photo payload: %w", err)
	}

	fileName := uuid.NewString() + photoExtensions[contentType]

	return s.s3.UploadFileBytes(ctx, constant.Empty, photoDirectory, fileName, contentType, data) // nolint:wrapcheck
}

func (s *serviceImpl) invalidate(ctx context.Context, businessID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheStatsReview, businessID)); err != nil {
			log.Error().Err(err).Msg("failed to delete review stats from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReview)
		shared.InvalidateCaches(c, s.cache, cacheCountReview)
	}()
}
