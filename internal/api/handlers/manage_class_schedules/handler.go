package manage_class_schedules

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
	msgNotFound           = "расписание не найдено"
	msgHasDependents      = "на занятие есть подтверждённые записи, используйте force для каскадной отмены"
	msgClassTypeInactive  = "тип класса неактивен"
	msgInstructorInactive = "инструктор неактивен"
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

// Handle POST /api/v1/admin/schedules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/schedules - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.ScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/schedules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.RequestingUserID = userID

	result, err := h.service.ApplySchedule(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, management.ErrAccessDenied):
			h.logger.Warn("POST /admin/schedules - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, management.ErrNotFound):
			h.logger.Warn("POST /admin/schedules - Not found: id=%v", req.ID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, management.ErrValidation):
			h.logger.Warn("POST /admin/schedules - Validation failed: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, management.ErrHasDependentBookings):
			h.logger.Warn("POST /admin/schedules - Has confirmed bookings: id=%v", req.ID)
			handlers.RespondConflict(w, msgHasDependents)

		case errors.Is(err, management.ErrClassTypeInactive):
			h.logger.Warn("POST /admin/schedules - Class type inactive")
			handlers.RespondConflict(w, msgClassTypeInactive)

		case errors.Is(err, management.ErrInstructorInactive):
			h.logger.Warn("POST /admin/schedules - Instructor inactive")
			handlers.RespondConflict(w, msgInstructorInactive)

		case errors.Is(err, management.ErrUnknownAction):
			h.logger.Warn("POST /admin/schedules - Unknown action: %q", req.Action)
			handlers.RespondBadRequest(w, msgUnknownAction)

		default:
			h.logger.Error("POST /admin/schedules - Failed: admin=%d, action=%q, error=%v",
				userID, req.Action, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if req.Action == models.ActionCreate {
		status = http.StatusCreated
	}

	h.logger.Info("POST /admin/schedules - Action %q applied: admin=%d", req.Action, userID)
	handlers.RespondJSON(w, status, result)
}
