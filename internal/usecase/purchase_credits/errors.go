package purchase_credits

import "errors"

var (
	// ErrUnknownPackage возвращается при неизвестном ID пакета
	ErrUnknownPackage = errors.New("purchase_credits: unknown credit package")

	// ErrInvalidCard возвращается при некорректных реквизитах карты
	ErrInvalidCard = errors.New("purchase_credits: invalid card details")

	// ErrPaymentDeclined возвращается, когда платёж отклонён шлюзом
	ErrPaymentDeclined = errors.New("purchase_credits: payment declined")

	// ErrProfileNotFound возвращается, когда профиль не найден
	ErrProfileNotFound = errors.New("purchase_credits: profile not found")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("purchase_credits: internal error")
)
