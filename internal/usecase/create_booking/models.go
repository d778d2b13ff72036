package create_booking

import (
	"time"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// Request запрос на создание бронирования
type Request struct {
	UserID          int64 `json:"-"`
	ClassScheduleID int64 `json:"classScheduleId"`
}

// Response результат создания бронирования
type Response struct {
	BookingID     int64  `json:"bookingId"`
	Status        string `json:"status"`
	ClassTypeName string `json:"classTypeName"`
	StartTime     string `json:"startTime"` // ISO 8601
	CreditsUsed   int    `json:"creditsUsed"`
	NewBalance    int    `json:"newBalance"`
}

func newResponse(b *domain.Booking, classTypeName string, startTime time.Time, newBalance int) *Response {
	return &Response{
		BookingID:     b.ID,
		Status:        string(b.Status),
		ClassTypeName: classTypeName,
		StartTime:     startTime.Format(time.RFC3339),
		CreditsUsed:   b.CreditsUsed,
		NewBalance:    newBalance,
	}
}
