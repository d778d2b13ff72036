package get_credit_history

import (
	"time"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// TransactionResponse HTTP response model одной записи леджера
type TransactionResponse struct {
	ID          int64   `json:"id"`
	Amount      int     `json:"amount"`
	Type        string  `json:"type"`
	Description *string `json:"description,omitempty"`
	BookingID   *int64  `json:"bookingId,omitempty"`
	CreatedAt   string  `json:"createdAt"`
}

// TransactionListResponse HTTP response model истории транзакций
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// FromDomainTransactions конвертирует записи леджера в HTTP response
func FromDomainTransactions(list []*domain.CreditTransaction) *TransactionListResponse {
	resp := &TransactionListResponse{
		Transactions: make([]TransactionResponse, 0, len(list)),
	}
	for _, t := range list {
		resp.Transactions = append(resp.Transactions, TransactionResponse{
			ID:          t.ID,
			Amount:      t.Amount,
			Type:        string(t.Type),
			Description: t.Description,
			BookingID:   t.BookingID,
			CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp
}
