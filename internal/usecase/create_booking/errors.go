package create_booking

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание не найдено
	ErrScheduleNotFound = errors.New("create_booking: schedule not found")

	// ErrScheduleInactive возвращается при бронировании отменённого занятия
	ErrScheduleInactive = errors.New("create_booking: schedule is not active")

	// ErrClassInPast возвращается при бронировании уже начавшегося занятия
	ErrClassInPast = errors.New("create_booking: class has already started")

	// ErrClassFull возвращается, когда свободных мест не осталось
	ErrClassFull = errors.New("create_booking: class is full")

	// ErrInsufficientCredits возвращается при нехватке кредитов
	ErrInsufficientCredits = errors.New("create_booking: insufficient credits")

	// ErrProfileNotFound возвращается, когда профиль пользователя не найден
	ErrProfileNotFound = errors.New("create_booking: profile not found")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("create_booking: internal error")
)
