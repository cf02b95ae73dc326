package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"hoodly/config"
	"hoodly/infras/kafka"
	"hoodly/infras/otel"
	"hoodly/internal/domains/activity/model"
	"hoodly/internal/domains/activity/model/dto"
	"hoodly/internal/domains/activity/repository"
	businessModel "hoodly/internal/domains/business/model"
	businessRepo "hoodly/internal/domains/business/repository"
	"hoodly/permissions"
	"hoodly/shared"
	"hoodly/shared/constant"
	gDto "hoodly/shared/dto"
	"hoodly/shared/failure"
	"hoodly/shared/timezone"
)

const (
	Period7d  = "7d"
	Period30d = "30d"
	Period90d = "90d"
	PeriodAll = "all"

	MaxDays        = 365
	MaxRecentLimit = 100
)

var periodDays = map[string]int{
	Period7d:  7,
	Period30d: 30,
	Period90d: 90,
}

type Activity interface {
	LogEvent(ctx context.Context, req dto.LogEventRequest) error
	Analytics(ctx context.Context, businessID, period string) (dto.AnalyticsResponse, error)
	DailyStats(ctx context.Context, businessID string, days int) ([]dto.DailyStatResponse, error)
	Recent(ctx context.Context, businessID string, limit int) ([]dto.EventResponse, error)
}

type serviceImpl struct {
	repo         repository.Activity
	businessRepo businessRepo.Business
	kafka        kafka.Client
	cfg          *config.Config
	otel         otel.Otel
}

func New(repo repository.Activity, bizRepo businessRepo.Business, kafkaClient kafka.Client, cfg *config.Config, otel otel.Otel) Activity {
	return &serviceImpl{
		repo:         repo,
		businessRepo: bizRepo,
		kafka:        kafkaClient,
		cfg:          cfg,
		otel:         otel,
	}
}

// LogEvent appends to the engagement log. Unlike the recorder used after
// domain mutations, a failed append here is the whole operation and the error
// is surfaced. The kafka mirror stays best effort.
func (s *serviceImpl) LogEvent(ctx context.Context, req dto.LogEventRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".activity.LogEvent")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !model.ValidEventType(req.EventType) {
		return failure.BadRequestFromString(fmt.Sprintf("invalid event type: %s", req.EventType)) // nolint:wrapcheck
	}

	var actorID *string
	if user, ok := ctx.Value(constant.ContextKeyUserID).(string); ok && user != constant.Empty {
		actorID = &user
	}

	event := model.New(req.BusinessID, req.EventType, actorID, req.Metadata)

	if err = s.repo.Insert(ctx, event); err != nil {
		log.Error().Err(err).Msg("failed to log activity event")

		return fmt.Errorf("failed to log activity event: %w", err)
	}

	if err := s.kafka.SendMessages(ctx, s.cfg.Kafka.ActivityTopic, kafka.Message{Key: event.BusinessID, Value: event}); err != nil {
		log.Error().Err(err).
			Str("business_id", event.BusinessID).
			Str("event_type", event.EventType).
			Msg("failed to publish activity event")
	}

	return nil
}

func (s *serviceImpl) Analytics(ctx context.Context, businessID, period string) (res dto.AnalyticsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".activity.Analytics")
	defer scope.End()
	defer scope.TraceIfError(err)

	business, err := s.authorizeOwner(ctx, businessID)
	if err != nil {
		return res, err
	}

	now := timezone.Now()

	var from time.Time

	switch period {
	case PeriodAll:
		from = business.CreatedAt
	default:
		days, ok := periodDays[period]
		if !ok {
			return res, failure.BadRequestFromString(fmt.Sprintf("invalid period: %s", period)) // nolint:wrapcheck
		}

		from = now.AddDate(0, 0, -days)
	}

	events, err := s.eventsInWindow(ctx, businessID, from, now, gDto.QueryParams{})
	if err != nil {
		return res, err
	}

	res.FromEvents(period, events, business)

	return res, nil
}

func (s *serviceImpl) DailyStats(ctx context.Context, businessID string, days int) (res []dto.DailyStatResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".activity.DailyStats")
	defer scope.End()
	defer scope.TraceIfError(err)

	if days <= 0 || days > MaxDays {
		return res, failure.BadRequestFromString(fmt.Sprintf("days must be between 1 and %d", MaxDays)) // nolint:wrapcheck
	}

	if _, err = s.authorizeOwner(ctx, businessID); err != nil {
		return res, err
	}

	now := timezone.Now()
	from := now.AddDate(0, 0, -days)

	params := gDto.QueryParams{SortBy: model.FieldCreatedAt, SortDir: gDto.SortDirAsc}

	events, err := s.eventsInWindow(ctx, businessID, from, now, params)
	if err != nil {
		return res, err
	}

	return dto.DailyStatsFromEvents(events), nil
}

func (s *serviceImpl) Recent(ctx context.Context, businessID string, limit int) (res []dto.EventResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".activity.Recent")
	defer scope.End()
	defer scope.TraceIfError(err)

	if limit <= 0 || limit > MaxRecentLimit {
		return res, failure.BadRequestFromString(fmt.Sprintf("limit must be between 1 and %d", MaxRecentLimit)) // nolint:wrapcheck
	}

	if _, err = s.authorizeOwner(ctx, businessID); err != nil {
		return res, err
	}

	params := gDto.QueryParams{Limit: limit, SortBy: model.FieldCreatedAt, SortDir: gDto.SortDirDesc}

	events, err := s.repo.GetAll(ctx, params, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldBusinessID, Value: businessID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get recent activity")

		return res, fmt.Errorf("failed to get recent activity: %w", err)
	}

	res = make([]dto.EventResponse, len(events))
	for i, ev := range events {
		res[i].FromModel(ev)
	}

	return res, nil
}

func (s *serviceImpl) authorizeOwner(ctx context.Context, businessID string) (businessModel.Business, error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	business, err := s.businessRepo.Get(ctx, shared.FilterByID(businessID, businessModel.FieldID, businessModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get business")

		return business, fmt.Errorf("failed to get business: %w", err)
	}

	if business.ID == constant.Empty {
		return business, failure.NotFound("business not found") // nolint:wrapcheck
	}

	if !permissions.IsOwner(user, business.OwnerUserID) {
		return business, failure.Forbidden("only the business owner can view analytics") // nolint:wrapcheck
	}

	return business, nil
}

func (s *serviceImpl) eventsInWindow(ctx context.Context, businessID string, from, to time.Time, params gDto.QueryParams) ([]model.ActivityEvent, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldBusinessID, Value: businessID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldCreatedAt, Value: from, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName, ArgName: "created_from"},
			gDto.Filter{Field: model.FieldCreatedAt, Value: to, Operator: gDto.FilterOperatorLessEq, Table: model.TableName, ArgName: "created_to"},
		},
	}

	events, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get activity events")

		return nil, fmt.Errorf("failed to get activity events: %w", err)
	}

	return events, nil
}
