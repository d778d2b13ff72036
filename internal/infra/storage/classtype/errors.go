package classtype

import "errors"

var (
	// ErrClassTypeNotFound возвращается, когда тип класса не найден
	ErrClassTypeNotFound = errors.New("classtype.repository: class type not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("classtype.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("classtype.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("classtype.repository: failed to scan row")
)
