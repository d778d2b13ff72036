package domain

import "time"

// TransactionType represents the type of a credit ledger entry
type TransactionType string

const (
	TransactionCreditPurchase TransactionType = "credit_purchase"
	TransactionCreditAdded    TransactionType = "credit_added"
	TransactionCreditDeducted TransactionType = "credit_deducted"
	TransactionBookingPayment TransactionType = "booking_payment"
	TransactionBookingRefund  TransactionType = "booking_refund"
)

// CreditTransaction represents an immutable credit ledger entry.
// Rows are append-only: they are never updated or deleted, so the ledger
// stays the authoritative history behind every profile balance.
type CreditTransaction struct {
	ID          int64
	UserID      int64
	Amount      int // Знаковое значение: начисления > 0, списания < 0
	Type        TransactionType
	Description *string
	BookingID   *int64 // Обратная ссылка на бронирование (для аудита)
	AdminUserID *int64 // Заполняется для операций, инициированных администратором
	CreatedAt   time.Time
}

// IsDebit returns true for entries that decrease the balance
func (t *CreditTransaction) IsDebit() bool {
	return t.Amount < 0
}

// ValidTransactionType проверяет, что тип транзакции известен леджеру
func ValidTransactionType(t TransactionType) bool {
	switch t {
	case TransactionCreditPurchase,
		TransactionCreditAdded,
		TransactionCreditDeducted,
		TransactionBookingPayment,
		TransactionBookingRefund:
		return true
	default:
		return false
	}
}

// CreditPackage represents a purchasable credit bundle (mock payment flow)
type CreditPackage struct {
	ID      string
	Name    string
	Credits int
	Price   float64
	Popular bool
}

// CreditPackages доступные пакеты кредитов
// Цены и объёмы соответствуют продуктовым пакетам Starter/Regular/Premium
var CreditPackages = []CreditPackage{
	{ID: "starter", Name: "Starter Pack", Credits: 5, Price: 50},
	{ID: "regular", Name: "Regular Pack", Credits: 10, Price: 90, Popular: true},
	{ID: "premium", Name: "Premium Pack", Credits: 20, Price: 150},
}

// FindCreditPackage возвращает пакет по его ID
func FindCreditPackage(id string) (CreditPackage, bool) {
	for _, pkg := range CreditPackages {
		if pkg.ID == id {
			return pkg, true
		}
	}
	return CreditPackage{}, false
}
