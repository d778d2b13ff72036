package cancel_booking

// Request запрос на отмену бронирования
// RequestingUserID берётся из контекста аутентификации, не из тела
type Request struct {
	BookingID        int64
	RequestingUserID int64
}

// Response результат отмены бронирования
type Response struct {
	BookingID       int64  `json:"bookingId"`
	Status          string `json:"status"`
	CreditsRefunded int    `json:"creditsRefunded"`
	NewBalance      int    `json:"newBalance"`
}
