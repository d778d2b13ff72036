package register_profile

import "errors"

var (
	// ErrAlreadyRegistered возвращается при повторной регистрации
	ErrAlreadyRegistered = errors.New("register_profile: profile already registered")

	// ErrInvalidInput возвращается при некорректных данных профиля
	ErrInvalidInput = errors.New("register_profile: invalid input data")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("register_profile: internal error")
)
