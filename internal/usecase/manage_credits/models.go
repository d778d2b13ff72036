package manage_credits

// Request запрос администратора на корректировку баланса
// Amount знаковый: положительный начисляет, отрицательный списывает
type Request struct {
	AdminUserID  int64   `json:"-"`
	TargetUserID int64   `json:"targetUserId"`
	Amount       int     `json:"amount"`
	Reason       *string `json:"reason,omitempty"`
}

// Response результат корректировки
type Response struct {
	TargetUserID int64 `json:"targetUserId"`
	Amount       int   `json:"amount"`
	NewBalance   int   `json:"newBalance"`
}
