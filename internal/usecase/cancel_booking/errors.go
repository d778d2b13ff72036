package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrAccessDenied возвращается, когда пользователь отменяет чужое
	// бронирование, не будучи администратором
	ErrAccessDenied = errors.New("cancel_booking: access denied")

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = errors.New("cancel_booking: booking is already cancelled")

	// ErrNotCancellable возвращается для терминальных статусов
	// (attended, no_show)
	ErrNotCancellable = errors.New("cancel_booking: booking cannot be cancelled")

	// ErrWindowClosed возвращается, когда до начала занятия осталось
	// меньше минимального срока отмены
	ErrWindowClosed = errors.New("cancel_booking: cancellation window is closed")

	// ErrInternal возвращается при внутренних ошибках
	ErrInternal = errors.New("cancel_booking: internal error")
)
