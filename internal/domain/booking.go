package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusAttended  BookingStatus = "attended"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking represents a class booking in the system
type Booking struct {
	ID              int64
	UserID          int64
	ClassScheduleID int64
	Status          BookingStatus

	// CreditsUsed фиксируется в момент бронирования и не пересчитывается
	// при последующих изменениях стоимости класса
	CreditsUsed int

	BookingTime      time.Time
	CancellationTime *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed returns true if the booking still holds a seat
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking is in a cancellable state
// (attendance outcomes are terminal)
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// WithinCancellationWindow проверяет, что отмена происходит не позднее,
// чем за CancellationNoticeHours до начала занятия (граница включительно)
func WithinCancellationWindow(classStart, now time.Time) bool {
	deadline := classStart.Add(-CancellationNoticeHours * time.Hour)
	return !now.After(deadline)
}

// UserBookingsFilter фильтр для получения бронирований пользователя
type UserBookingsFilter struct {
	UserID int64          // Обязательный параметр
	Status *BookingStatus // Фильтр по статусу (опционально)
}
