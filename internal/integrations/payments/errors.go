package payments

import "errors"

var (
	// ErrInvalidCard возвращается при некорректных реквизитах карты
	ErrInvalidCard = errors.New("payments: invalid card details")

	// ErrCardExpired возвращается для просроченной карты
	ErrCardExpired = errors.New("payments: card is expired")

	// ErrPaymentDeclined возвращается, когда шлюз отклонил платёж
	ErrPaymentDeclined = errors.New("payments: payment declined")

	// ErrInvalidAmount возвращается при неположительной сумме
	ErrInvalidAmount = errors.New("payments: invalid amount")
)
