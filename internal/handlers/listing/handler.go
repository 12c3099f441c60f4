package listing

import (
	"gooman/infras/otel"
	"gooman/internal/domains/listing/service"
	"gooman/shared"
	"gooman/shared/constant"
	gDto "gooman/shared/dto"
	"gooman/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Listing
	otel    otel.Otel
}

func New(service service.Listing, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/hotels", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetHotels)
		routerGroup.Get("/{id}", handler.GetHotel)
	})

	router.Route("/guides", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetGuides)
		routerGroup.Get("/{id}", handler.GetGuide)
	})

	router.Route("/experiences", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetExperiences)
		routerGroup.Get("/{id}", handler.GetExperience)
	})
}

// GetHotels lists hotels.
// @Summary List hotels
// @Tags Listing
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param active query bool false "Only active (true) or inactive (false) hotels"
// @Success 200 {object} response.Data[dto.GetHotelsResponse] "List of hotels"
// @Failure 500 {object} response.Error
// @Router /v1/hotels [get]
func (handler *Handler) GetHotels(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHotels")
	defer scope.End()

	active := shared.ConvertStringToBool(r.URL.Query().Get(constant.RequestParamActive))

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	hotels, err := handler.service.GetHotels(ctx, queryParams, active)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get hotels")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, hotels)
}

// GetHotel returns one hotel.
// @Summary Get a hotel by ID
// @Tags Listing
// @Produce json
// @Param id path string true "Hotel ID"
// @Success 200 {object} response.Data[dto.HotelResponse] "Hotel details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/hotels/{id} [get]
func (handler *Handler) GetHotel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHotel")
	defer scope.End()

	hotel, err := handler.service.GetHotel(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get hotel")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, hotel)
}

// GetGuides lists local guides.
// @Summary List local guides
// @Tags Listing
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param active query bool false "Only active (true) or inactive (false) guides"
// @Success 200 {object} response.Data[dto.GetGuidesResponse] "List of guides"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/guides [get]
func (handler *Handler) GetGuides(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuides")
	defer scope.End()

	active := shared.ConvertStringToBool(r.URL.Query().Get(constant.RequestParamActive))

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	guides, err := handler.service.GetGuides(ctx, queryParams, active)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get guides")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, guides)
}

// GetGuide returns one local guide.
// @Summary Get a local guide by ID
// @Tags Listing
// @Produce json
// @Param id path string true "Guide ID"
// @Success 200 {object} response.Data[dto.GuideResponse] "Guide details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/guides/{id} [get]
func (handler *Handler) GetGuide(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGuide")
	defer scope.End()

	guide, err := handler.service.GetGuide(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get guide")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, guide)
}

// GetExperiences lists experiences.
// @Summary List experiences
// @Tags Listing
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param active query bool false "Only active (true) or inactive (false) experiences"
// @Success 200 {object} response.Data[dto.GetExperiencesResponse] "List of experiences"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/experiences [get]
func (handler *Handler) GetExperiences(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExperiences")
	defer scope.End()

	active := shared.ConvertStringToBool(r.URL.Query().Get(constant.RequestParamActive))

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	experiences, err := handler.service.GetExperiences(ctx, queryParams, active)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get experiences")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, experiences)
}

// GetExperience returns one experience.
// @Summary Get an experience by ID
// @Tags Listing
// @Produce json
// @Param id path string true "Experience ID"
// @Success 200 {object} response.Data[dto.ExperienceResponse] "Experience details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/experiences/{id} [get]
func (handler *Handler) GetExperience(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetExperience")
	defer scope.End()

	experience, err := handler.service.GetExperience(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get experience")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, experience)
}
