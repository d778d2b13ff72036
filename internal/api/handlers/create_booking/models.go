package create_booking

import (
	createBooking "github.com/m04kA/SMC-StudioService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ClassScheduleID int64 `json:"classScheduleId"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	BookingID     int64  `json:"bookingId"`
	Status        string `json:"status"`
	ClassTypeName string `json:"classTypeName"`
	StartTime     string `json:"startTime"`
	CreditsUsed   int    `json:"creditsUsed"`
	NewBalance    int    `json:"newBalance"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) createBooking.Request {
	return createBooking.Request{
		UserID:          userID,
		ClassScheduleID: r.ClassScheduleID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		BookingID:     resp.BookingID,
		Status:        resp.Status,
		ClassTypeName: resp.ClassTypeName,
		StartTime:     resp.StartTime,
		CreditsUsed:   resp.CreditsUsed,
		NewBalance:    resp.NewBalance,
	}
}
