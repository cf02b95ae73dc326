package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hoodly/config"
	kafkaMocks "hoodly/infras/kafka/mocks"
	"hoodly/infras/otel/mocks"
	s3Mocks "hoodly/infras/s3/mocks"
	"hoodly/internal/domains/activity/event"
	activityMocks "hoodly/internal/domains/activity/mocks"
	bookingMocks "hoodly/internal/domains/booking/mocks"
	bookingModel "hoodly/internal/domains/booking/model"
	businessMocks "hoodly/internal/domains/business/mocks"
	businessModel "hoodly/internal/domains/business/model"
	reviewMocks "hoodly/internal/domains/review/mocks"
	"hoodly/internal/domains/review/model"
	"hoodly/internal/domains/review/model/dto"
	"hoodly/internal/domains/review/service"
	cacheMocks "hoodly/shared/cache/mocks"
	"hoodly/shared/constant"
	"hoodly/shared/failure"
	"hoodly/shared/timezone"
)

func TestReviewService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reviewMocks.NewMockReview(ctrl)
	mockBusinessRepo := businessMocks.NewMockBusiness(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockActivityRepo := activityMocks.NewMockActivity(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	recorder := event.NewRecorder(mockActivityRepo, mockKafka, cfg)
	svc := service.New(mockRepo, mockBusinessRepo, mockBookingRepo, recorder, mockS3, cfg, mockCache, mockOtel)

	business := businessModel.Business{ID: "business-id", OwnerUserID: "owner-id", IsActive: true}
	bookingID := "booking-id"

	tests := []struct {
		name      string
		req       dto.CreateReviewRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "business not found",
			req:  dto.CreateReviewRequest{BusinessID: "missing-id", Rating: 5},
			setupMock: func() {
				mockBusinessRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(businessModel.Business{}, nil)
			},
			wantErr: true,
		},
		{
			name: "business lookup error",
			req:  dto.CreateReviewRequest{BusinessID: "business-id", Rating: 5},
			setupMock: func() {
				mockBusinessRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(businessModel.Business{}, errors.New("database error"))
			},
			wantErr: true,
		},
		{
			name: "owner cannot review own business",
			req:  dto.CreateReviewRequest{BusinessID: "business-id", Rating: 5},
			setupMock: func() {
				mockBusinessRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(businessModel.Business{ID: "business-id", OwnerUserID: "test-user-id"}, nil)
			},
			wantErr: true,
		},
		{
			name: "duplicate review",
			req:  dto.CreateReviewRequest{BusinessID: "business-id", Rating: 5},
			setupMock: func() {
				mockBusinessRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr: true,
		},
		{
			name: "linked booking not found",
			req:  dto.CreateReviewRequest{BusinessID: "business-id", BookingID: &bookingID, Rating: 5},
			setupMock: func() {
				mockBusinessRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingModel.Booking{}, nil)
			},
			wantErr: true,
		},
		{
			name: "linked booking belongs to another customer",
			req:  dto.CreateReviewRequest{BusinessID: "business-id", BookingID: &bookingID, Rating: 5},
			setupMock: func() {
				mockBusinessRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingModel.Booking{
						ID:         bookingID,
						CustomerID: "someone-else",
						BusinessID: "business-id",
					}, nil)
			},
			wantErr: true,
		},
		{
			name: "linked booking not completed",
			req:  dto.CreateReviewRequest{BusinessID: "business-id", BookingID: &bookingID, Rating: 5},
			setupMock: func() {
				mockBusinessRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingModel.Booking{
						ID:         bookingID,
						CustomerID: "test-user-id",
						BusinessID: "business-id",
						Status:     bookingModel.StatusInProgress,
					}, nil)
			},
			wantErr: true,
		},
		{
			name: "linked booking already reviewed",
			req:  dto.CreateReviewRequest{BusinessID: "business-id", BookingID: &bookingID, Rating: 5},
			setupMock: func() {
				mockBusinessRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingModel.Booking{
						ID:          bookingID,
						CustomerID:  "test-user-id",
						BusinessID:  "business-id",
						Status:      bookingModel.StatusCompleted,
						CanReview:   true,
						HasReviewed: true,
					}, nil)
			},
			wantErr: true,
		},
		{
			name: "successful creation with booking link",
			req:  dto.CreateReviewRequest{BusinessID: "business-id", BookingID: &bookingID, Rating: 5},
			setupMock: func() {
				mockBusinessRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockBookingRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(bookingModel.Booking{
						ID:         bookingID,
						CustomerID: "test-user-id",
						BusinessID: "business-id",
						Status:     bookingModel.StatusCompleted,
						CanReview:  true,
					}, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockBookingRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Review{{ID: "review-id", BusinessID: "business-id", Rating: 5}}, nil)

				mockBusinessRepo.EXPECT().
					UpdateRating(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockActivityRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockKafka.EXPECT().
					SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "insert error",
			req:  dto.CreateReviewRequest{BusinessID: "business-id", Rating: 4},
			setupMock: func() {
				mockBusinessRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
		{
			name: "concurrent duplicate hits the unique constraint",
			req:  dto.CreateReviewRequest{BusinessID: "business-id", Rating: 4},
			setupMock: func() {
				mockBusinessRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: "23505", Constraint: "uq_reviews_business_customer"})
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			result, err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.req.BusinessID, result.BusinessID)
				assert.Equal(t, tt.req.Rating, result.Rating)
			}
		})
	}
}

func TestReviewService_Respond(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reviewMocks.NewMockReview(ctrl)
	mockBusinessRepo := businessMocks.NewMockBusiness(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockActivityRepo := activityMocks.NewMockActivity(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	recorder := event.NewRecorder(mockActivityRepo, mockKafka, cfg)
	svc := service.New(mockRepo, mockBusinessRepo, mockBookingRepo, recorder, mockS3, cfg, mockCache, mockOtel)

	review := model.Review{ID: "review-id", BusinessID: "business-id", CustomerID: "customer-id", Rating: 4}
	business := businessModel.Business{ID: "business-id", OwnerUserID: "test-user-id"}

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "review not found",
			id:   "missing-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Review{}, nil)
			},
			wantErr: true,
		},
		{
			name: "only the owner can respond",
			id:   "review-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(review, nil)

				mockBusinessRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(businessModel.Business{ID: "business-id", OwnerUserID: "someone-else"}, nil)
			},
			wantErr: true,
		},
		{
			name: "already responded",
			id:   "review-id",
			setupMock: func() {
				responded := review
				respondedAt := timezone.Now()
				responded.RespondedAt = &respondedAt

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(responded, nil)

				mockBusinessRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)
			},
			wantErr: true,
		},
		{
			name: "successful response",
			id:   "review-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(review, nil)

				mockBusinessRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(review, nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			_, err := svc.Respond(ctx, dto.RespondReviewRequest{Response: "thanks for the feedback"}, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReviewService_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reviewMocks.NewMockReview(ctrl)
	mockBusinessRepo := businessMocks.NewMockBusiness(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockActivityRepo := activityMocks.NewMockActivity(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	recorder := event.NewRecorder(mockActivityRepo, mockKafka, cfg)
	svc := service.New(mockRepo, mockBusinessRepo, mockBookingRepo, recorder, mockS3, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		wantAvg   float64
	}{
		{
			name: "cache hit",
			id:   "business-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "business not found",
			id:   "missing-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockBusinessRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "aggregates the review set",
			id:   "business-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockBusinessRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Review{
						{Rating: 5},
						{Rating: 5},
						{Rating: 4},
					}, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantAvg: 4.67,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.Background()
			result, err := svc.Stats(ctx, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.wantAvg != 0 {
					assert.Equal(t, tt.wantAvg, result.AverageRating)
				}
			}
		})
	}
}

func TestReviewService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reviewMocks.NewMockReview(ctrl)
	mockBusinessRepo := businessMocks.NewMockBusiness(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockActivityRepo := activityMocks.NewMockActivity(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	recorder := event.NewRecorder(mockActivityRepo, mockKafka, cfg)
	svc := service.New(mockRepo, mockBusinessRepo, mockBookingRepo, recorder, mockS3, cfg, mockCache, mockOtel)

	review := model.Review{ID: "review-id", BusinessID: "business-id", CustomerID: "test-user-id", Rating: 4}
	newRating := 3

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "review not found",
			id:   "missing-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Review{}, nil)
			},
			wantErr: true,
		},
		{
			name: "only the author can update",
			id:   "review-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Review{ID: "review-id", CustomerID: "someone-else"}, nil)
			},
			wantErr: true,
		},
		{
			name: "successful update recomputes the rating",
			id:   "review-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(review, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Review{{ID: "review-id", BusinessID: "business-id", Rating: newRating}}, nil)

				mockBusinessRepo.EXPECT().
					UpdateRating(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(review, nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			_, err := svc.Update(ctx, dto.UpdateReviewRequest{Rating: &newRating}, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestReviewService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reviewMocks.NewMockReview(ctrl)
	mockBusinessRepo := businessMocks.NewMockBusiness(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockActivityRepo := activityMocks.NewMockActivity(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	recorder := event.NewRecorder(mockActivityRepo, mockKafka, cfg)
	svc := service.New(mockRepo, mockBusinessRepo, mockBookingRepo, recorder, mockS3, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "review not found",
			id:   "missing-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Review{}, nil)
			},
			wantErr: true,
		},
		{
			name: "only the author can delete",
			id:   "review-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Review{ID: "review-id", CustomerID: "someone-else"}, nil)
			},
			wantErr: true,
		},
		{
			name: "successful deletion recomputes the rating",
			id:   "review-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Review{ID: "review-id", BusinessID: "business-id", CustomerID: "test-user-id", Rating: 4}, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Review{}, nil)

				mockBusinessRepo.EXPECT().
					UpdateRating(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "delete error",
			id:   "review-id",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Review{ID: "review-id", BusinessID: "business-id", CustomerID: "test-user-id", Rating: 4}, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(errors.New("delete error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Delete(ctx, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
