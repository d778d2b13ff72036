package manage_credits

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/api/middleware"
	manageCredits "github.com/m04kA/SMC-StudioService/internal/usecase/manage_credits"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgForbidden           = "доступ запрещен"
	msgTargetNotFound      = "пользователь не найден"
	msgZeroAmount          = "сумма корректировки не может быть нулевой"
	msgInsufficientCredits = "недостаточно кредитов для списания"
)

type Handler struct {
	useCase ManageCreditsUseCase
	logger  Logger
}

func NewHandler(useCase ManageCreditsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/credits
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	adminUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/credits - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req manageCredits.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/credits - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.AdminUserID = adminUserID

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, manageCredits.ErrAccessDenied):
			h.logger.Warn("POST /admin/credits - Access denied: user_id=%d", adminUserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, manageCredits.ErrTargetNotFound):
			h.logger.Warn("POST /admin/credits - Target not found: target=%d", req.TargetUserID)
			handlers.RespondNotFound(w, msgTargetNotFound)

		case errors.Is(err, manageCredits.ErrZeroAmount):
			h.logger.Warn("POST /admin/credits - Zero amount: admin=%d", adminUserID)
			handlers.RespondBadRequest(w, msgZeroAmount)

		case errors.Is(err, manageCredits.ErrInsufficientCredits):
			h.logger.Warn("POST /admin/credits - Insufficient credits: target=%d, amount=%d",
				req.TargetUserID, req.Amount)
			handlers.RespondConflict(w, msgInsufficientCredits)

		default:
			h.logger.Error("POST /admin/credits - Failed to adjust credits: admin=%d, target=%d, error=%v",
				adminUserID, req.TargetUserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/credits - Credits adjusted: admin=%d, target=%d, amount=%d, balance=%d",
		adminUserID, result.TargetUserID, result.Amount, result.NewBalance)
	handlers.RespondJSON(w, http.StatusOK, result)
}
