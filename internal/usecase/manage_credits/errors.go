package manage_credits

import "errors"

var (
	// ErrAccessDenied возвращается, когда инициатор не администратор
	ErrAccessDenied = errors.New("manage_credits: access denied")

	// ErrTargetNotFound возвращается, когда целевой профиль не найден
	ErrTargetNotFound = errors.New("manage_credits: target profile not found")

	// ErrZeroAmount возвращается при нулевой дельте
	ErrZeroAmount = errors.New("manage_credits: amount must not be zero")

	// ErrInsufficientCredits возвращается, когда списание увело бы
	// баланс в минус
	ErrInsufficientCredits = errors.New("manage_credits: insufficient credits")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("manage_credits: internal error")
)
