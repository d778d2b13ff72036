package purchase_credits

// CardDetails реквизиты карты из формы оплаты
type CardDetails struct {
	Number      string `json:"number"`
	ExpiryMonth int    `json:"expiryMonth"`
	ExpiryYear  int    `json:"expiryYear"`
	CVC         string `json:"cvc"`
}

// Request запрос на покупку пакета кредитов
type Request struct {
	UserID    int64       `json:"-"`
	PackageID string      `json:"packageId"`
	Card      CardDetails `json:"card"`
}

// Response результат покупки
type Response struct {
	PackageID     string  `json:"packageId"`
	CreditsAdded  int     `json:"creditsAdded"`
	AmountCharged float64 `json:"amountCharged"`
	NewBalance    int     `json:"newBalance"`
	PaymentID     string  `json:"paymentId"`
	CardLast4     string  `json:"cardLast4"`
}
