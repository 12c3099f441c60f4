package profile

import (
	"gooman/infras/otel"
	"gooman/internal/domains/profile/model/dto"
	"gooman/internal/domains/profile/service"
	"gooman/shared/constant"
	"gooman/shared/failure"
	"gooman/shared/validator"
	"gooman/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Profile
	otel    otel.Otel
}

func New(service service.Profile, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/profiles/me", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetMyProfile)
		routerGroup.Patch("/", handler.UpdateMyProfile)
		routerGroup.Post("/avatar", handler.UploadAvatar)
	})
}

// GetMyProfile returns the profile of the signed-in user.
// @Summary Get my profile
// @Tags Profile
// @Produce json
// @Success 200 {object} response.Data[dto.ProfileResponse] "Profile"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/profiles/me [get]
// @Security BearerAuth
func (handler *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyProfile")
	defer scope.End()

	profile, err := handler.service.GetMine(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get profile")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, profile)
}

// UpdateMyProfile updates the profile of the signed-in user.
// @Summary Update my profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Update Profile Request"
// @Success 200 {object} response.Data[dto.ProfileResponse] "Updated profile"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/profiles/me [patch]
// @Security BearerAuth
func (handler *Handler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateMyProfile")
	defer scope.End()

	req := dto.UpdateProfileRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	profile, err := handler.service.UpdateMine(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update profile")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Profile updated successfully")

	response.WithJSON(w, http.StatusOK, profile)
}

// UploadAvatar stores a new avatar image in object storage.
// @Summary Upload my avatar
// @Tags Profile
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PNG, JPEG or WebP image up to 2 MB"
// @Success 200 {object} response.Data[dto.ProfileResponse] "Updated profile"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/profiles/me/avatar [post]
// @Security BearerAuth
func (handler *Handler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadAvatar")
	defer scope.End()

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		response.WithError(w, failure.BadRequest(err))

		return
	}

	file, header, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, failure.BadRequest(err))

		return
	}
	file.Close()

	form := dto.AvatarForm{Image: header}
	if err := validator.ValidateStruct(&form); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate avatar")

		response.WithError(w, err)

		return
	}

	req, err := form.ToRequest()
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, failure.BadRequest(err))

		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	profile, err := handler.service.UploadAvatar(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload avatar")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Avatar uploaded successfully")

	response.WithJSON(w, http.StatusOK, profile)
}
