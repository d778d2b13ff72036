package profiles

import "errors"

var (
	// ErrProfileNotFound возвращается, когда профиль не найден
	ErrProfileNotFound = errors.New("profiles: profile not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("profiles: internal error")
)
