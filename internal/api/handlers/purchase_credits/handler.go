package purchase_credits

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/api/middleware"
	purchaseCredits "github.com/m04kA/SMC-StudioService/internal/usecase/purchase_credits"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgUnknownPackage       = "неизвестный пакет кредитов"
	msgInvalidCard          = "некорректные реквизиты карты"
	msgPaymentDeclined      = "платёж отклонён"
	msgProfileNotRegistered = "профиль не зарегистрирован"
)

type Handler struct {
	useCase PurchaseCreditsUseCase
	logger  Logger
}

func NewHandler(useCase PurchaseCreditsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/credits/purchase
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /credits/purchase - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req purchaseCredits.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /credits/purchase - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, purchaseCredits.ErrUnknownPackage):
			h.logger.Warn("POST /credits/purchase - Unknown package: user_id=%d, package=%q", userID, req.PackageID)
			handlers.RespondBadRequest(w, msgUnknownPackage)

		case errors.Is(err, purchaseCredits.ErrInvalidCard):
			h.logger.Warn("POST /credits/purchase - Invalid card: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidCard)

		case errors.Is(err, purchaseCredits.ErrPaymentDeclined):
			h.logger.Warn("POST /credits/purchase - Payment declined: user_id=%d", userID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentDeclined)

		case errors.Is(err, purchaseCredits.ErrProfileNotFound):
			h.logger.Warn("POST /credits/purchase - Profile not found: user_id=%d", userID)
			handlers.RespondForbidden(w, msgProfileNotRegistered)

		default:
			h.logger.Error("POST /credits/purchase - Failed to purchase credits: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /credits/purchase - Credits purchased: user_id=%d, package=%s, credits=%d",
		userID, result.PackageID, result.CreditsAdded)
	handlers.RespondJSON(w, http.StatusOK, result)
}
