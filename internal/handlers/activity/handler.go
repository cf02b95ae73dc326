package activity

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hoodly/infras/otel"
	"hoodly/internal/domains/activity/model"
	"hoodly/internal/domains/activity/model/dto"
	"hoodly/internal/domains/activity/service"
	"hoodly/shared/constant"
	"hoodly/shared/validator"
	"hoodly/transport/http/response"
)

const (
	defaultDailyStatsDays = 30
	defaultRecentLimit    = 20
)

type Handler struct {
	service service.Activity
	otel    otel.Otel
}

func New(service service.Activity, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/activities", func(routerGroup chi.Router) {
		routerGroup.Post("/view", handler.RecordProfileView)
		routerGroup.Post("/contact-click", handler.RecordContactClick)
		routerGroup.Get("/business/{business_id}/analytics", handler.GetBusinessAnalytics)
		routerGroup.Get("/business/{business_id}/daily", handler.GetBusinessDailyStats)
		routerGroup.Get("/business/{business_id}/recent", handler.GetBusinessRecentActivity)
	})
}

// RecordProfileView records a profile view event for a business.
// @Summary Record a profile view
// @Description Append a profile view event to the engagement log of a business. No authentication required.
// @Tags Activity
// @Accept json
// @Produce json
// @Param request body dto.LogEventRequest true "Log Event Request"
// @Success 201 {object} response.Message "Event recorded successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/activities/view [post]
func (handler *Handler) RecordProfileView(writer http.ResponseWriter, request *http.Request) {
	handler.recordEvent(writer, request, "RecordProfileView", model.EventTypeView)
}

// RecordContactClick records a contact click event for a business.
// @Summary Record a contact click
// @Description Append a contact click event to the engagement log of a business. No authentication required.
// @Tags Activity
// @Accept json
// @Produce json
// @Param request body dto.LogEventRequest true "Log Event Request"
// @Success 201 {object} response.Message "Event recorded successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/activities/contact-click [post]
func (handler *Handler) RecordContactClick(writer http.ResponseWriter, request *http.Request) {
	handler.recordEvent(writer, request, "RecordContactClick", model.EventTypeContactClick)
}

// recordEvent is shared by the public tracking endpoints. The event type is
// forced by the route, never taken from the request body.
func (handler *Handler) recordEvent(writer http.ResponseWriter, request *http.Request, spanName, eventType string) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+spanName)
	defer scope.End()

	req := dto.LogEventRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	req.EventType = eventType

	if err := handler.service.LogEvent(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to record activity event")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Activity event recorded successfully")

	response.WithMessage(writer, http.StatusCreated, "Event recorded successfully")
}

// GetBusinessAnalytics retrieves the aggregated analytics of a business.
// @Summary Get business analytics
// @Description Retrieve engagement counts, derived rates and a business snapshot over a period (7d, 30d, 90d or all).
// @Tags Activity
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param period query string false "Aggregation period (7d, 30d, 90d, all)" default(30d)
// @Success 200 {object} response.Data[dto.AnalyticsResponse] "Business analytics"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/activities/business/{business_id}/analytics [get]
// @Security BearerAuth
func (handler *Handler) GetBusinessAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBusinessAnalytics")
	defer scope.End()

	businessID := chi.URLParam(r, constant.RequestParamBusinessID)

	period := r.URL.Query().Get(constant.RequestParamPeriod)
	if period == "" {
		period = service.Period30d
	}

	analytics, err := handler.service.Analytics(ctx, businessID, period)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get business analytics")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Business analytics retrieved successfully")

	response.WithJSON(w, http.StatusOK, analytics)
}

// GetBusinessDailyStats retrieves per-day engagement counts of a business.
// @Summary Get business daily stats
// @Description Retrieve per-day engagement counts of a business over the last N days. Days without events are omitted.
// @Tags Activity
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param days query int false "Number of days to look back (1-365)" default(30)
// @Success 200 {object} response.Data[[]dto.DailyStatResponse] "Daily engagement stats"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/activities/business/{business_id}/daily [get]
// @Security BearerAuth
func (handler *Handler) GetBusinessDailyStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBusinessDailyStats")
	defer scope.End()

	businessID := chi.URLParam(r, constant.RequestParamBusinessID)
	days := queryInt(r, constant.RequestParamDays, defaultDailyStatsDays)

	stats, err := handler.service.DailyStats(ctx, businessID, days)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get daily stats")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Daily stats retrieved successfully")

	response.WithJSON(w, http.StatusOK, stats)
}

// GetBusinessRecentActivity retrieves the most recent activity events of a business.
// @Summary Get recent business activity
// @Description Retrieve the most recent activity events of a business, newest first.
// @Tags Activity
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param limit query int false "Maximum number of events (1-100)" default(20)
// @Success 200 {object} response.Data[[]dto.EventResponse] "Recent activity events"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/activities/business/{business_id}/recent [get]
// @Security BearerAuth
func (handler *Handler) GetBusinessRecentActivity(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBusinessRecentActivity")
	defer scope.End()

	businessID := chi.URLParam(r, constant.RequestParamBusinessID)
	limit := queryInt(r, constant.RequestParamLimit, defaultRecentLimit)

	events, err := handler.service.Recent(ctx, businessID, limit)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get recent activity")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Recent activity retrieved successfully")

	response.WithJSON(w, http.StatusOK, events)
}

func queryInt(r *http.Request, param string, fallback int) int {
	raw := r.URL.Query().Get(param)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}
