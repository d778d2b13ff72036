package manage_class_types

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
	msgNotFound           = "тип класса не найден"
	msgHasDependents      = "тип класса используется расписаниями"
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

// Handle POST /api/v1/admin/class-types
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/class-types - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.ClassTypeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/class-types - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.RequestingUserID = userID

	result, err := h.service.ApplyClassType(r.Context(), req)
	if err != nil {
		h.respondError(w, req, userID, err)
		return
	}

	status := http.StatusOK
	if req.Action == models.ActionCreate {
		status = http.StatusCreated
	}

	h.logger.Info("POST /admin/class-types - Action %q applied: admin=%d", req.Action, userID)
	handlers.RespondJSON(w, status, result)
}

func (h *Handler) respondError(w http.ResponseWriter, req models.ClassTypeRequest, userID int64, err error) {
	switch {
	case errors.Is(err, management.ErrAccessDenied):
		h.logger.Warn("POST /admin/class-types - Access denied: user_id=%d", userID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, management.ErrNotFound):
		h.logger.Warn("POST /admin/class-types - Not found: id=%v", req.ID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, management.ErrValidation):
		h.logger.Warn("POST /admin/class-types - Validation failed: %v", err)
		handlers.RespondBadRequest(w, err.Error())

	case errors.Is(err, management.ErrHasDependentBookings):
		h.logger.Warn("POST /admin/class-types - Has dependent schedules: id=%v", req.ID)
		handlers.RespondConflict(w, msgHasDependents)

	case errors.Is(err, management.ErrUnknownAction):
		h.logger.Warn("POST /admin/class-types - Unknown action: %q", req.Action)
		handlers.RespondBadRequest(w, msgUnknownAction)

	default:
		h.logger.Error("POST /admin/class-types - Failed: admin=%d, action=%q, error=%v",
			userID, req.Action, err)
		handlers.RespondInternalError(w)
	}
}
