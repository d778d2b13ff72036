package register_profile

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/api/middleware"
	registerProfile "github.com/m04kA/SMC-StudioService/internal/usecase/register_profile"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidInput       = "некорректные данные профиля"
	msgAlreadyRegistered  = "профиль уже зарегистрирован"
)

type Handler struct {
	useCase RegisterProfileUseCase
	logger  Logger
}

func NewHandler(useCase RegisterProfileUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/profiles
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /profiles - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req registerProfile.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /profiles - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, registerProfile.ErrInvalidInput):
			h.logger.Warn("POST /profiles - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, registerProfile.ErrAlreadyRegistered):
			h.logger.Warn("POST /profiles - Already registered: user_id=%d", userID)
			handlers.RespondConflict(w, msgAlreadyRegistered)

		default:
			h.logger.Error("POST /profiles - Failed to register profile: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /profiles - Profile registered successfully: profile_id=%d, user_id=%d",
		result.ProfileID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
