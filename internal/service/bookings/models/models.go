package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID           int64   `json:"userId"`
	RequestingUserID int64   `json:"-"`
	Status           *string `json:"status,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetUserBookingsRequest) ToDomainFilter() (domain.UserBookingsFilter, error) {
	filter := domain.UserBookingsFilter{UserID: r.UserID}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// ClassDetails денормализованные данные занятия для отображения истории
type ClassDetails struct {
	ScheduleID     int64  `json:"scheduleId"`
	ClassTypeName  string `json:"classTypeName"`
	InstructorName string `json:"instructorName"`
	StartTime      string `json:"startTime"` // ISO 8601
	EndTime        string `json:"endTime"`   // ISO 8601
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID               int64         `json:"id"`
	UserID           int64         `json:"userId"`
	ClassScheduleID  int64         `json:"classScheduleId"`
	Status           string        `json:"status"`
	CreditsUsed      int           `json:"creditsUsed"`
	BookingTime      time.Time     `json:"bookingTime"`
	CancellationTime *string       `json:"cancellationTime,omitempty"` // ISO 8601
	Class            *ClassDetails `json:"class,omitempty"`
	CreatedAt        time.Time     `json:"createdAt"`
	UpdatedAt        time.Time     `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking, class *ClassDetails) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		ClassScheduleID: b.ClassScheduleID,
		Status:          string(b.Status),
		CreditsUsed:     b.CreditsUsed,
		BookingTime:     b.BookingTime,
		Class:           class,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}

	if b.CancellationTime != nil {
		cancelledStr := b.CancellationTime.Format(time.RFC3339)
		resp.CancellationTime = &cancelledStr
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusConfirmed,
		domain.StatusCancelled,
		domain.StatusAttended,
		domain.StatusNoShow,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
