package inquiry

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hoodly/infras/otel"
	"hoodly/internal/domains/inquiry/model"
	"hoodly/internal/domains/inquiry/model/dto"
	"hoodly/internal/domains/inquiry/service"
	"hoodly/shared/constant"
	gDto "hoodly/shared/dto"
	"hoodly/shared/validator"
	"hoodly/transport/http/response"
)

type Handler struct {
	service service.Inquiry
	otel    otel.Otel
}

func New(service service.Inquiry, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/inquiries", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateInquiry)
		routerGroup.Get("/mine", handler.GetMyInquiries)
		routerGroup.Get("/business/{business_id}", handler.GetBusinessInquiries)
		routerGroup.Get("/business/{business_id}/stats", handler.GetBusinessInquiryStats)
		routerGroup.Get("/{id}", handler.GetInquiryByID)
		routerGroup.Post("/{id}/response", handler.RespondToInquiry)
		routerGroup.Patch("/{id}/status", handler.UpdateInquiryStatus)
	})
}

// CreateInquiry handles the creation of a new inquiry.
// @Summary Create an inquiry
// @Description Send a booking request, question or quote request to a business.
// @Tags Inquiry
// @Accept json
// @Produce json
// @Param request body dto.CreateInquiryRequest true "Create Inquiry Request"
// @Success 201 {object} response.Data[dto.InquiryResponse] "Inquiry created successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inquiries [post]
// @Security BearerAuth
func (handler *Handler) CreateInquiry(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateInquiry")
	defer scope.End()

	req := dto.CreateInquiryRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	inquiry, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create inquiry")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Inquiry created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, inquiry)
}

// GetMyInquiries retrieves the inquiries sent by the authenticated customer.
// @Summary Get my inquiries
// @Description Retrieve the inquiries sent by the authenticated customer with optional status filter.
// @Tags Inquiry
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (pending, responded, closed)"
// @Success 200 {object} response.Data[dto.GetInquiriesResponse] "List of inquiries"
// @Failure 500 {object} response.Error
// @Router /v1/inquiries/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyInquiries(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyInquiries")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	inquiries, err := handler.service.ListMine(ctx, queryParams, statusFilter(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get my inquiries")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("My inquiries retrieved successfully")

	response.WithJSON(w, http.StatusOK, inquiries)
}

// GetBusinessInquiries retrieves the inquiries received by a business.
// @Summary Get business inquiries
// @Description Retrieve the inquiries received by a business. Only the business owner can list them.
// @Tags Inquiry
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (pending, responded, closed)"
// @Success 200 {object} response.Data[dto.GetInquiriesResponse] "List of inquiries"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inquiries/business/{business_id} [get]
// @Security BearerAuth
func (handler *Handler) GetBusinessInquiries(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBusinessInquiries")
	defer scope.End()

	businessID := chi.URLParam(r, constant.RequestParamBusinessID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	inquiries, err := handler.service.ListForBusiness(ctx, businessID, queryParams, statusFilter(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get business inquiries")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Business inquiries retrieved successfully")

	response.WithJSON(w, http.StatusOK, inquiries)
}

// GetBusinessInquiryStats retrieves the inquiry statistics of a business.
// @Summary Get business inquiry stats
// @Description Retrieve inquiry counts per status and the response rate of a business.
// @Tags Inquiry
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Success 200 {object} response.Data[dto.InquiryStatsResponse] "Inquiry statistics"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inquiries/business/{business_id}/stats [get]
// @Security BearerAuth
func (handler *Handler) GetBusinessInquiryStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBusinessInquiryStats")
	defer scope.End()

	businessID := chi.URLParam(r, constant.RequestParamBusinessID)

	stats, err := handler.service.Stats(ctx, businessID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get inquiry stats")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Inquiry stats retrieved successfully")

	response.WithJSON(w, http.StatusOK, stats)
}

// GetInquiryByID retrieves an inquiry visible to its parties.
// @Summary Get an inquiry by ID
// @Description Retrieve an inquiry. Only the customer or the business owner can view it.
// @Tags Inquiry
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Success 200 {object} response.Data[dto.InquiryResponse] "Inquiry details"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inquiries/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetInquiryByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInquiryByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	inquiry, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get inquiry by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Inquiry retrieved successfully")

	response.WithJSON(w, http.StatusOK, inquiry)
}

// RespondToInquiry records the business owner's response to an inquiry.
// @Summary Respond to an inquiry
// @Description Record the business owner's response to an inquiry and mark it as responded.
// @Tags Inquiry
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Param request body dto.RespondInquiryRequest true "Respond Inquiry Request"
// @Success 200 {object} response.Data[dto.InquiryResponse] "Response recorded successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inquiries/{id}/response [post]
// @Security BearerAuth
func (handler *Handler) RespondToInquiry(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RespondToInquiry")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.RespondInquiryRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	inquiry, err := handler.service.Respond(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to respond to inquiry")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Inquiry response recorded successfully by user " + user)

	response.WithJSON(w, http.StatusOK, inquiry)
}

// UpdateInquiryStatus advances the status of an inquiry.
// @Summary Update inquiry status
// @Description Advance the status of an inquiry. Statuses only move forward (pending, responded, closed).
// @Tags Inquiry
// @Accept json
// @Produce json
// @Param id path string true "Inquiry ID"
// @Param request body dto.UpdateInquiryStatusRequest true "Update Inquiry Status Request"
// @Success 200 {object} response.Data[dto.InquiryResponse] "Inquiry status updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inquiries/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateInquiryStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateInquiryStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateInquiryStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	inquiry, err := handler.service.UpdateStatus(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update inquiry status")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Inquiry status updated successfully by user " + user)

	response.WithJSON(w, http.StatusOK, inquiry)
}

func statusFilter(r *http.Request) gDto.FilterGroup {
	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if status := r.URL.Query().Get(constant.RequestParamStatus); status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	return filterGroup
}
