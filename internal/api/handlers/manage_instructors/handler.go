package manage_instructors

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/api/middleware"
	"github.com/m04kA/SMC-StudioService/internal/service/management"
	"github.com/m04kA/SMC-StudioService/internal/service/management/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgNotFound           = "инструктор не найден"
	msgHasDependents      = "у инструктора есть запланированные занятия"
	msgUnknownAction      = "неизвестное действие"
)

type Handler struct {
	service ManagementService
	logger  Logger
}

func NewHandler(service ManagementService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/instructors
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/instructors - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.InstructorRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/instructors - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.RequestingUserID = userID

	result, err := h.service.ApplyInstructor(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, management.ErrAccessDenied):
			h.logger.Warn("POST /admin/instructors - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, management.ErrNotFound):
			h.logger.Warn("POST /admin/instructors - Not found: id=%v", req.ID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, management.ErrValidation):
			h.logger.Warn("POST /admin/instructors - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, management.ErrHasDependentBookings):
			h.logger.Warn("POST /admin/instructors - Has dependent schedules: id=%v", req.ID)
			handlers.RespondConflict(w, msgHasDependents)

		case errors.Is(err, management.ErrUnknownAction):
			h.logger.Warn("POST /admin/instructors - Unknown action: %q", req.Action)
			handlers.RespondBadRequest(w, msgUnknownAction)

		default:
			h.logger.Error("POST /admin/instructors - Failed: admin=%d, action=%q, error=%v",
				userID, req.Action, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if req.Action == models.ActionCreate {
		status = http.StatusCreated
	}

	h.logger.Info("POST /admin/instructors - Action %q applied: admin=%d", req.Action, userID)
	handlers.RespondJSON(w, status, result)
}
