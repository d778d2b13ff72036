package management

import "errors"

var (
	// ErrAccessDenied возвращается, когда пользователь не администратор
	ErrAccessDenied = errors.New("management: access denied")

	// ErrNotFound возвращается, когда изменяемая сущность не найдена
	ErrNotFound = errors.New("management: entity not found")

	// ErrValidation возвращается при некорректных значениях полей
	ErrValidation = errors.New("management: validation failed")

	// ErrHasDependentBookings возвращается при попытке удалить сущность,
	// на которую ссылаются существующие бронирования или расписания
	ErrHasDependentBookings = errors.New("management: entity has dependent bookings")

	// ErrInstructorInactive возвращается при создании расписания
	// с неактивным инструктором
	ErrInstructorInactive = errors.New("management: instructor is not active")

	// ErrClassTypeInactive возвращается при создании расписания
	// с неактивным типом класса
	ErrClassTypeInactive = errors.New("management: class type is not active")

	// ErrUnknownAction возвращается при неизвестном действии в запросе
	ErrUnknownAction = errors.New("management: unknown action")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("management: internal error")
)
