package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hoodly/config"
	kafkaMocks "hoodly/infras/kafka/mocks"
	"hoodly/infras/otel/mocks"
	"hoodly/internal/domains/activity/event"
	activityMocks "hoodly/internal/domains/activity/mocks"
	bookingMocks "hoodly/internal/domains/booking/mocks"
	"hoodly/internal/domains/booking/model"
	"hoodly/internal/domains/booking/model/dto"
	"hoodly/internal/domains/booking/service"
	businessMocks "hoodly/internal/domains/business/mocks"
	businessModel "hoodly/internal/domains/business/model"
	cacheMocks "hoodly/shared/cache/mocks"
	"hoodly/shared/constant"
	gDto "hoodly/shared/dto"
	"hoodly/shared/timezone"
)

type bookingMockSet struct {
	repo     *bookingMocks.MockBooking
	business *businessMocks.MockBusiness
	payout   *businessMocks.MockPayout
	catalog  *businessMocks.MockCatalog
	activity *activityMocks.MockActivity
	kafka    *kafkaMocks.MockClient
	cache    *cacheMocks.MockRedisCache
}

func newBookingService(ctrl *gomock.Controller) (service.Booking, bookingMockSet) {
	set := bookingMockSet{
		repo:     bookingMocks.NewMockBooking(ctrl),
		business: businessMocks.NewMockBusiness(ctrl),
		payout:   businessMocks.NewMockPayout(ctrl),
		catalog:  businessMocks.NewMockCatalog(ctrl),
		activity: activityMocks.NewMockActivity(ctrl),
		kafka:    kafkaMocks.NewMockClient(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	recorder := event.NewRecorder(set.activity, set.kafka, cfg)
	svc := service.New(set.repo, set.business, set.payout, set.catalog, recorder, cfg, set.cache, mocks.NewOtel())

	return svc, set
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newBookingService(ctrl)

	business := businessModel.Business{ID: "business-id", OwnerUserID: "owner-id", IsActive: true}
	serviceID := "service-id"

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "business not found",
			req:  dto.CreateBookingRequest{BusinessID: "missing-id", ScheduledAt: "2026-09-01T10:00:00Z"},
			setupMock: func() {
				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(businessModel.Business{}, nil)
			},
			wantErr: true,
		},
		{
			name: "inactive business is treated as missing",
			req:  dto.CreateBookingRequest{BusinessID: "business-id", ScheduledAt: "2026-09-01T10:00:00Z"},
			setupMock: func() {
				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(businessModel.Business{ID: "business-id", OwnerUserID: "owner-id", IsActive: false}, nil)
			},
			wantErr: true,
		},
		{
			name: "business is not payout-ready",
			req:  dto.CreateBookingRequest{BusinessID: "business-id", ScheduledAt: "2026-09-01T10:00:00Z"},
			setupMock: func() {
				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)

				set.payout.EXPECT().
					HasVerifiedAccount(gomock.Any(), "owner-id").
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "service does not belong to the business",
			req:  dto.CreateBookingRequest{BusinessID: "business-id", ServiceID: &serviceID, ScheduledAt: "2026-09-01T10:00:00Z"},
			setupMock: func() {
				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)

				set.payout.EXPECT().
					HasVerifiedAccount(gomock.Any(), "owner-id").
					Return(true, nil)

				set.catalog.EXPECT().
					BelongsToBusiness(gomock.Any(), serviceID, "business-id").
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "invalid scheduled date",
			req:  dto.CreateBookingRequest{BusinessID: "business-id", ScheduledAt: "tomorrow morning"},
			setupMock: func() {
				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)

				set.payout.EXPECT().
					HasVerifiedAccount(gomock.Any(), "owner-id").
					Return(true, nil)
			},
			wantErr: true,
		},
		{
			name: "successful creation",
			req:  dto.CreateBookingRequest{BusinessID: "business-id", ServiceID: &serviceID, ScheduledAt: "2026-09-01T10:00:00Z", Price: 150},
			setupMock: func() {
				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)

				set.payout.EXPECT().
					HasVerifiedAccount(gomock.Any(), "owner-id").
					Return(true, nil)

				set.catalog.EXPECT().
					BelongsToBusiness(gomock.Any(), serviceID, "business-id").
					Return(true, nil)

				set.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				set.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "insert error",
			req:  dto.CreateBookingRequest{BusinessID: "business-id", ScheduledAt: "2026-09-01T10:00:00Z"},
			setupMock: func() {
				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)

				set.payout.EXPECT().
					HasVerifiedAccount(gomock.Any(), "owner-id").
					Return(true, nil)

				set.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			result, err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.StatusPending, result.Status)
				assert.Equal(t, "test-user-id", result.CustomerID)
			}
		})
	}
}

func TestBookingService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newBookingService(ctrl)

	business := businessModel.Business{ID: "business-id", OwnerUserID: "owner-id"}

	booking := func(status string) model.Booking {
		return model.Booking{
			ID:          "booking-id",
			CustomerID:  "test-user-id",
			BusinessID:  "business-id",
			Status:      status,
			ScheduledAt: timezone.Now(),
		}
	}

	tests := []struct {
		name      string
		req       dto.UpdateBookingStatusRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "booking not found",
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusConfirmed},
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
		{
			name: "third party cannot update",
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusConfirmed},
			setupMock: func() {
				stranger := booking(model.StatusPending)
				stranger.CustomerID = "someone-else"

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stranger, nil)

				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)
			},
			wantErr: true,
		},
		{
			name: "invalid transition",
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusCompleted},
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking(model.StatusPending), nil)

				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)
			},
			wantErr: true,
		},
		{
			name: "terminal booking rejects any transition",
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusConfirmed},
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking(model.StatusCancelled), nil)

				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)
			},
			wantErr: true,
		},
		{
			name: "confirming a pending booking",
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusConfirmed},
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking(model.StatusPending), nil)

				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)

				set.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking(model.StatusConfirmed), nil)

				set.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "completion runs the side effects",
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusCompleted},
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking(model.StatusInProgress), nil)

				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)

				set.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				set.business.EXPECT().
					IncrementCompletedJobs(gomock.Any(), "business-id").
					Return(nil)

				set.activity.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				set.kafka.EXPECT().
					SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking(model.StatusCompleted), nil)

				set.cache.EXPECT().
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
			result, err := svc.UpdateStatus(ctx, tt.req, "booking-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.req.Status, result.Status)
			}
		})
	}
}

func TestBookingService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newBookingService(ctrl)

	business := businessModel.Business{ID: "business-id", OwnerUserID: "owner-id"}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "completed booking cannot be cancelled",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{
						ID:         "booking-id",
						CustomerID: "test-user-id",
						BusinessID: "business-id",
						Status:     model.StatusCompleted,
					}, nil)

				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)
			},
			wantErr: true,
		},
		{
			name: "owner can cancel a confirmed booking",
			setupMock: func() {
				pending := model.Booking{
					ID:         "booking-id",
					CustomerID: "customer-id",
					BusinessID: "business-id",
					Status:     model.StatusConfirmed,
				}

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pending, nil)

				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(businessModel.Business{ID: "business-id", OwnerUserID: "test-user-id"}, nil)

				set.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				cancelled := pending
				cancelled.Status = model.StatusCancelled

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(cancelled, nil)

				set.cache.EXPECT().
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
			result, err := svc.Cancel(ctx, dto.CancelBookingRequest{Reason: "schedule conflict"}, "booking-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.StatusCancelled, result.Status)
			}
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newBookingService(ctrl)

	booking := model.Booking{
		ID:         "booking-id",
		CustomerID: "customer-id",
		BusinessID: "business-id",
		Status:     model.StatusPending,
	}
	business := businessModel.Business{ID: "business-id", OwnerUserID: "owner-id"}

	tests := []struct {
		name      string
		userID    string
		setupMock func()
		wantErr   bool
	}{
		{
			name:   "customer can view",
			userID: "customer-id",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)
			},
			wantErr: false,
		},
		{
			name:   "owner can view",
			userID: "owner-id",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)
			},
			wantErr: false,
		},
		{
			name:   "third party cannot view",
			userID: "stranger-id",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(booking, nil)

				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.userID)
			result, err := svc.Get(ctx, "booking-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, booking.ID, result.ID)
			}
		})
	}
}

func TestBookingService_ListReviewable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newBookingService(ctrl)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantLen   int
	}{
		{
			name: "returns reviewable bookings",
			setupMock: func() {
				set.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{
						{ID: "booking-id", Status: model.StatusCompleted, CanReview: true},
					}, nil)
			},
			wantErr: false,
			wantLen: 1,
		},
		{
			name: "repository error",
			setupMock: func() {
				set.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			result, err := svc.ListReviewable(ctx)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Len(t, result, tt.wantLen)
			}
		})
	}
}

func TestBookingService_ListForBusiness(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newBookingService(ctrl)

	tests := []struct {
		name      string
		userID    string
		setupMock func()
		wantErr   bool
	}{
		{
			name:   "only the owner can list",
			userID: "stranger-id",
			setupMock: func() {
				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(businessModel.Business{ID: "business-id", OwnerUserID: "owner-id"}, nil)
			},
			wantErr: true,
		},
		{
			name:   "owner gets the paginated list",
			userID: "owner-id",
			setupMock: func() {
				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(businessModel.Business{ID: "business-id", OwnerUserID: "owner-id"}, nil)

				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				set.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				set.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Booking{{ID: "booking-id", BusinessID: "business-id"}}, nil)

				set.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.userID)
			result, err := svc.ListForBusiness(ctx, "business-id", gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, result.Total)
			}
		})
	}
}
