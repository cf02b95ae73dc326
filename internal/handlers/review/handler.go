package review

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"hoodly/infras/otel"
	"hoodly/internal/domains/review/model"
	"hoodly/internal/domains/review/model/dto"
	"hoodly/internal/domains/review/service"
	"hoodly/shared/constant"
	gDto "hoodly/shared/dto"
	"hoodly/shared/validator"
	"hoodly/transport/http/response"
)

type Handler struct {
	service service.Review
	otel    otel.Otel
}

func New(service service.Review, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reviews", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReview)
		routerGroup.Get("/business/{business_id}", handler.GetBusinessReviews)
		routerGroup.Get("/business/{business_id}/stats", handler.GetBusinessReviewStats)
		routerGroup.Patch("/{id}", handler.UpdateReview)
		routerGroup.Delete("/{id}", handler.DeleteReview)
		routerGroup.Post("/{id}/response", handler.RespondToReview)
	})
}

// CreateReview handles the creation of a new review.
// @Summary Create a review
// @Description Review a business, optionally linked to a completed booking and with a base64 photo attachment.
// @Tags Review
// @Accept json
// @Produce json
// @Param request body dto.CreateReviewRequest true "Create Review Request"
// @Success 201 {object} response.Data[dto.ReviewResponse] "Review created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reviews [post]
// @Security BearerAuth
func (handler *Handler) CreateReview(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReview")
	defer scope.End()

	req := dto.CreateReviewRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	review, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create review")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Review created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, review)
}

// GetBusinessReviews retrieves the reviews of a business.
// @Summary Get business reviews
// @Description Retrieve the reviews of a business with optional rating filter and pagination.
// @Tags Review
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param rating query int false "Filter by rating (1-5)"
// @Success 200 {object} response.Data[dto.GetReviewsResponse] "List of reviews"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reviews/business/{business_id} [get]
func (handler *Handler) GetBusinessReviews(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBusinessReviews")
	defer scope.End()

	businessID := chi.URLParam(r, constant.RequestParamBusinessID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if rating := r.URL.Query().Get(constant.RequestParamRating); rating != "" {
		if ratingInt, err := strconv.Atoi(rating); err == nil {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    model.FieldRating,
				Operator: gDto.FilterOperatorEq,
				Value:    ratingInt,
				Table:    model.TableName,
			})
		}
	}

	reviews, err := handler.service.ListForBusiness(ctx, businessID, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get business reviews")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Business reviews retrieved successfully")

	response.WithJSON(w, http.StatusOK, reviews)
}

// GetBusinessReviewStats retrieves the aggregated rating stats of a business.
// @Summary Get business review stats
// @Description Retrieve the aggregated rating statistics of a business, including the rating distribution.
// @Tags Review
// @Accept json
// @Produce json
// @Param business_id path string true "Business ID"
// @Success 200 {object} response.Data[dto.ReviewStatsResponse] "Review statistics"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reviews/business/{business_id}/stats [get]
func (handler *Handler) GetBusinessReviewStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBusinessReviewStats")
	defer scope.End()

	businessID := chi.URLParam(r, constant.RequestParamBusinessID)

	stats, err := handler.service.Stats(ctx, businessID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get review stats")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Review stats retrieved successfully")

	response.WithJSON(w, http.StatusOK, stats)
}

// UpdateReview updates an existing review.
// @Summary Update a review
// @Description Update a review. Only the author can update it; the business rating is recomputed.
// @Tags Review
// @Accept json
// @Produce json
// @Param id path string true "Review ID"
// @Param request body dto.UpdateReviewRequest true "Update Review Request"
// @Success 200 {object} response.Data[dto.ReviewResponse] "Review updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reviews/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReview")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateReviewRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	review, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update review")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Review updated successfully by user " + user)

	response.WithJSON(w, http.StatusOK, review)
}

// DeleteReview deletes a review.
// @Summary Delete a review
// @Description Delete a review. Only the author can delete it; the business rating is recomputed.
// @Tags Review
// @Accept json
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} response.Message "Review deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reviews/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReview")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete review")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Review deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Review deleted successfully")
}

// RespondToReview records the business owner's response on a review.
// @Summary Respond to a review
// @Description Record the business owner's public response to a review. A review can be answered once.
// @Tags Review
// @Accept json
// @Produce json
// @Param id path string true "Review ID"
// @Param request body dto.RespondReviewRequest true "Respond Review Request"
// @Success 200 {object} response.Data[dto.ReviewResponse] "Response recorded successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/reviews/{id}/response [post]
// @Security BearerAuth
func (handler *Handler) RespondToReview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RespondToReview")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.RespondReviewRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	review, err := handler.service.Respond(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to respond to review")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Review response recorded successfully by user " + user)

	response.WithJSON(w, http.StatusOK, review)
}
