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
	"hoodly/internal/domains/business/model"
	"hoodly/internal/domains/business/model/dto"
	"hoodly/internal/domains/business/service"
	cacheMocks "hoodly/shared/cache/mocks"
	"hoodly/shared/constant"
	gDto "hoodly/shared/dto"
)

type businessMockSet struct {
	repo     *businessMocks.MockBusiness
	activity *activityMocks.MockActivity
	kafka    *kafkaMocks.MockClient
	cache    *cacheMocks.MockRedisCache
}

func newBusinessService(ctrl *gomock.Controller) (service.Business, businessMockSet) {
	set := businessMockSet{
		repo:     businessMocks.NewMockBusiness(ctrl),
		activity: activityMocks.NewMockActivity(ctrl),
		kafka:    kafkaMocks.NewMockClient(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	recorder := event.NewRecorder(set.activity, set.kafka, cfg)
	svc := service.New(set.repo, recorder, cfg, set.cache, mocks.NewOtel())

	return svc, set
}

func TestBusinessService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newBusinessService(ctrl)

	tests := []struct {
		name      string
		req       dto.CreateBusinessRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful creation",
			req:  dto.CreateBusinessRequest{Name: "Budi Plumbing", Category: "plumbing"},
			setupMock: func() {
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
			name: "repository error",
			req:  dto.CreateBusinessRequest{Name: "Budi Plumbing", Category: "plumbing"},
			setupMock: func() {
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
				assert.Equal(t, "test-user-id", result.OwnerUserID)
				assert.True(t, result.IsActive)
			}
		})
	}
}

func TestBusinessService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newBusinessService(ctrl)

	business := model.Business{ID: "business-id", OwnerUserID: "owner-id", Name: "Budi Plumbing"}

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		wantID    string
	}{
		{
			name: "cache hit",
			id:   "business-id",
			setupMock: func() {
				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cache miss, successful get from db",
			id:   "business-id",
			setupMock: func() {
				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)

				set.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantID:  "business-id",
		},
		{
			name: "business not found",
			id:   "missing-id",
			setupMock: func() {
				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Business{}, nil)
			},
			wantErr: true,
		},
		{
			name: "repository error",
			id:   "business-id",
			setupMock: func() {
				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Business{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.Background()
			result, err := svc.Get(ctx, tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.wantID != "" {
					assert.Equal(t, tt.wantID, result.ID)
				}
			}
		})
	}
}

func TestBusinessService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newBusinessService(ctrl)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantTotal int
	}{
		{
			name: "successful get all",
			setupMock: func() {
				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				set.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(1, nil)

				set.repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Business{{ID: "business-id", Name: "Budi Plumbing"}}, nil)

				set.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:   false,
			wantTotal: 1,
		},
		{
			name: "count error",
			setupMock: func() {
				set.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				set.repo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, errors.New("count error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.Background()
			result, err := svc.GetAll(ctx, gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantTotal, result.Total)
			}
		})
	}
}

func TestBusinessService_UpdateProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, set := newBusinessService(ctrl)

	business := model.Business{ID: "business-id", OwnerUserID: "test-user-id", Name: "Budi Plumbing"}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "business not found",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Business{}, nil)
			},
			wantErr: true,
		},
		{
			name: "only the owner can update",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Business{ID: "business-id", OwnerUserID: "someone-else"}, nil)
			},
			wantErr: true,
		},
		{
			name: "successful update records the event",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)

				set.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				set.activity.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				set.kafka.EXPECT().
					SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)

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
			name: "update error",
			setupMock: func() {
				set.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(business, nil)

				set.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("update error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			_, err := svc.UpdateProfile(ctx, dto.UpdateBusinessProfileRequest{Name: "Budi Plumbing & Sons"}, "business-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
