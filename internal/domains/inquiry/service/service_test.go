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
	businessMocks "hoodly/internal/domains/business/mocks"
	businessModel "hoodly/internal/domains/business/model"
	inquiryMocks "hoodly/internal/domains/inquiry/mocks"
	"hoodly/internal/domains/inquiry/model"
	"hoodly/internal/domains/inquiry/model/dto"
	"hoodly/internal/domains/inquiry/service"
	cacheMocks "hoodly/shared/cache/mocks"
	"hoodly/shared/constant"
	"hoodly/shared/timezone"
)

type inquiryMockSet struct {
	repo     *inquiryMocks.MockInquiry
	business *businessMocks.MockBusiness
	activity *activityMocks.MockActivity
	kafka    *kafkaMocks.MockClient
	cache    *cacheMocks.MockRedisCache
}

func newInquiryService(ctrl *gomock.Controller) (service.Inquiry, inquiryMockSet) {
	set := inquiryMockSet{
		repo:     inquiryMocks.NewMockInquiry(ctrl),
		business: businessMocks.NewMockBusiness(ctrl),
		activity: activityMocks.NewMockActivity(ctrl),
		kafka:    kafkaMocks.NewMockClient(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	recorder := event.NewRecorder(set.activity, set.kafka, cfg)
	svc := service.New(set.repo, set.business, recorder, cfg, set.cache, mocks.NewOtel())

	return svc, set
}

func TestInquiryService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newInquiryService(ctrl)

	business := businessModel.Business{ID: "business-id", OwnerUserID: "owner-id", IsActive: true}
	badDate := "next tuesday"

	tests := []struct {
		name      string
		req       dto.CreateInquiryRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "business not found",
			req:  dto.CreateInquiryRequest{BusinessID: "missing-id", InquiryType: model.TypeQuestion, Message: "hello"},
			setupMock: func() {
				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(businessModel.Business{}, nil)
			},
			wantErr: true,
		},
		{
			name: "inactive business is treated as missing",
			req:  dto.CreateInquiryRequest{BusinessID: "business-id", InquiryType: model.TypeQuestion, Message: "hello"},
			setupMock: func() {
				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(businessModel.Business{ID: "business-id", IsActive: false}, nil)
			},
			wantErr: true,
		},
		{
			name: "invalid preferred date",
			req:  dto.CreateInquiryRequest{BusinessID: "business-id", InquiryType: model.TypeBooking, Message: "hello", PreferredDate: &badDate},
			setupMock: func() {
				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)
			},
			wantErr: true,
		},
		{
			name: "successful creation records the event",
			req:  dto.CreateInquiryRequest{BusinessID: "business-id", InquiryType: model.TypeQuote, Message: "how much for a full service?"},
			setupMock: func() {
				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)

				set.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				set.activity.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				set.kafka.EXPECT().
					SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				set.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				set.cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "insert error",
			req:  dto.CreateInquiryRequest{BusinessID: "business-id", InquiryType: model.TypeQuestion, Message: "hello"},
			setupMock: func() {
				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)

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
			}
		})
	}
}

func TestInquiryService_Respond(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newInquiryService(ctrl)

	inquiry := model.Inquiry{
		ID:         "inquiry-id",
		BusinessID: "business-id",
		CustomerID: "customer-id",
		Status:     model.StatusPending,
	}
	business := businessModel.Business{ID: "business-id", OwnerUserID: "test-user-id"}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "inquiry not found",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Inquiry{}, nil)
			},
			wantErr: true,
		},
		{
			name: "only the owner can respond",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(inquiry, nil)

				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(businessModel.Business{ID: "business-id", OwnerUserID: "someone-else"}, nil)
			},
			wantErr: true,
		},
		{
			name: "already responded",
			setupMock: func() {
				responded := inquiry
				respondedAt := timezone.Now()
				responded.RespondedAt = &respondedAt

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(responded, nil)

				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)
			},
			wantErr: true,
		},
		{
			name: "closed inquiry without a response cannot be responded to",
			setupMock: func() {
				closed := inquiry
				closed.Status = model.StatusClosed

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(closed, nil)

				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)
			},
			wantErr: true,
		},
		{
			name: "successful response moves the inquiry forward",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(inquiry, nil)

				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)

				set.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				responded := inquiry
				responded.Status = model.StatusResponded

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(responded, nil)

				set.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

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
			result, err := svc.Respond(ctx, dto.RespondInquiryRequest{Response: "we can fit you in on monday"}, "inquiry-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, model.StatusResponded, result.Status)
			}
		})
	}
}

func TestInquiryService_UpdateStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newInquiryService(ctrl)

	business := businessModel.Business{ID: "business-id", OwnerUserID: "test-user-id"}

	inquiry := func(status string) model.Inquiry {
		return model.Inquiry{
			ID:         "inquiry-id",
			BusinessID: "business-id",
			CustomerID: "customer-id",
			Status:     status,
		}
	}

	tests := []struct {
		name      string
		req       dto.UpdateInquiryStatusRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "cannot move backwards",
			req:  dto.UpdateInquiryStatusRequest{Status: model.StatusPending},
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(inquiry(model.StatusResponded), nil)

				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)
			},
			wantErr: true,
		},
		{
			name: "closed inquiry cannot reopen",
			req:  dto.UpdateInquiryStatusRequest{Status: model.StatusResponded},
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(inquiry(model.StatusClosed), nil)

				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)
			},
			wantErr: true,
		},
		{
			name: "closing a responded inquiry",
			req:  dto.UpdateInquiryStatusRequest{Status: model.StatusClosed},
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(inquiry(model.StatusResponded), nil)

				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)

				set.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(inquiry(model.StatusClosed), nil)

				set.cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

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
			result, err := svc.UpdateStatus(ctx, tt.req, "inquiry-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.req.Status, result.Status)
			}
		})
	}
}

func TestInquiryService_Stats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newInquiryService(ctrl)

	tests := []struct {
		name      string
		userID    string
		setupMock func()
		wantErr   bool
		wantRate  float64
	}{
		{
			name:   "only the owner can view stats",
			userID: "stranger-id",
			setupMock: func() {
				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(businessModel.Business{ID: "business-id", OwnerUserID: "owner-id"}, nil)
			},
			wantErr: true,
		},
		{
			name:   "cache hit",
			userID: "owner-id",
			setupMock: func() {
				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(businessModel.Business{ID: "business-id", OwnerUserID: "owner-id"}, nil)

				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:   "counts per status and derives the response rate",
			userID: "owner-id",
			setupMock: func() {
				set.business.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(businessModel.Business{ID: "business-id", OwnerUserID: "owner-id"}, nil)

				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				set.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Inquiry{
						{Status: model.StatusPending},
						{Status: model.StatusResponded},
						{Status: model.StatusResponded},
						{Status: model.StatusClosed},
					}, nil)

				set.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:  false,
			wantRate: 75,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, tt.userID)
			result, err := svc.Stats(ctx, "business-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.wantRate != 0 {
					assert.Equal(t, tt.wantRate, result.ResponseRate)
				}
			}
		})
	}
}
