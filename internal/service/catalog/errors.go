package catalog

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных параметрах фильтрации
	ErrInvalidInput = errors.New("catalog: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("catalog: internal error")
)
