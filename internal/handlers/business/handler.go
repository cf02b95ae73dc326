package business

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hoodly/infras/otel"
	"hoodly/internal/domains/business/model"
	"hoodly/internal/domains/business/model/dto"
	"hoodly/internal/domains/business/service"
	"hoodly/shared"
	"hoodly/shared/constant"
	gDto "hoodly/shared/dto"
	"hoodly/shared/validator"
	"hoodly/transport/http/response"
)

type Handler struct {
	service service.Business
	otel    otel.Otel
}

func New(service service.Business, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/businesses", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBusiness)
		routerGroup.Get("/", handler.GetBusinesses)
		routerGroup.Get("/{id}", handler.GetBusinessByID)
		routerGroup.Patch("/{id}", handler.UpdateBusinessProfile)
	})
}

// CreateBusiness registers a new business owned by the authenticated user.
// @Summary Create a new business
// @Description Register a new business profile owned by the authenticated user.
// @Tags Business
// @Accept json
// @Produce json
// @Param request body dto.CreateBusinessRequest true "Create Business Request"
// @Success 201 {object} response.Data[dto.BusinessResponse] "Business created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/businesses [post]
// @Security BearerAuth
func (handler *Handler) CreateBusiness(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBusiness")
	defer scope.End()

	req := dto.CreateBusinessRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	business, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create business")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Business created successfully")

	response.WithJSON(writer, http.StatusCreated, business)
}

// GetBusinesses retrieves businesses with optional filtering and pagination.
// @Summary List businesses
// @Description Retrieve businesses with optional filtering and pagination.
// @Tags Business
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param category query string false "Filter by category"
// @Param is_active query bool false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetBusinessesResponse] "List of businesses"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/businesses [get]
func (handler *Handler) GetBusinesses(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBusinesses")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	category := r.URL.Query().Get(model.FieldCategory)
	isActive := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldIsActive))

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if category != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCategory,
			Operator: gDto.FilterOperatorEq,
			Value:    category,
			Table:    model.TableName,
		})
	}

	if isActive != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *isActive,
			Table:    model.TableName,
		})
	}

	businesses, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get businesses")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Businesses retrieved successfully")

	response.WithJSON(w, http.StatusOK, businesses)
}

// GetBusinessByID retrieves a business profile by its ID.
// @Summary Get a business by ID
// @Description Retrieve a business profile by its unique identifier.
// @Tags Business
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Success 200 {object} response.Data[dto.BusinessResponse] "Business details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/businesses/{id} [get]
func (handler *Handler) GetBusinessByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBusinessByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	business, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get business by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Business retrieved successfully")

	response.WithJSON(w, http.StatusOK, business)
}

// UpdateBusinessProfile updates the profile of a business owned by the caller.
// @Summary Update a business profile
// @Description Update the profile of a business owned by the authenticated user.
// @Tags Business
// @Accept json
// @Produce json
// @Param id path string true "Business ID"
// @Param request body dto.UpdateBusinessProfileRequest true "Update Business Profile Request"
// @Success 200 {object} response.Data[dto.BusinessResponse] "Business updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/businesses/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBusinessProfile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBusinessProfile")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateBusinessProfileRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	business, err := handler.service.UpdateProfile(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update business profile")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Business profile updated successfully by user " + user)

	response.WithJSON(w, http.StatusOK, business)
}
