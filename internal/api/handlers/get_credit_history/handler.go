package get_credit_history

import (
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/api/middleware"
)

const msgMissingUserID = "отсутствует ID пользователя"

type Handler struct {
	ledger CreditLedger
	logger Logger
}

func NewHandler(ledger CreditLedger, logger Logger) *Handler {
	return &Handler{
		ledger: ledger,
		logger: logger,
	}
}

// Handle GET /api/v1/profiles/me/transactions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /profiles/me/transactions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	transactions, err := h.ledger.GetUserTransactions(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /profiles/me/transactions - Failed to get transactions: user_id=%d, error=%v",
			userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /profiles/me/transactions - Retrieved %d transactions: user_id=%d",
		len(transactions), userID)
	handlers.RespondJSON(w, http.StatusOK, FromDomainTransactions(transactions))
}
