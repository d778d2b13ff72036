package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-StudioService/internal/api/handlers"
	"github.com/m04kA/SMC-StudioService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-StudioService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgInvalidScheduleID    = "некорректный ID расписания"
	msgScheduleNotFound     = "занятие не найдено"
	msgScheduleInactive     = "занятие отменено студией"
	msgClassInPast          = "занятие уже началось"
	msgClassFull            = "свободных мест не осталось"
	msgInsufficientCredits  = "недостаточно кредитов для записи"
	msgProfileNotRegistered = "профиль не зарегистрирован"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.ClassScheduleID <= 0 {
		h.logger.Warn("POST /bookings - Invalid schedule ID: %d", req.ClassScheduleID)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrScheduleNotFound):
			h.logger.Warn("POST /bookings - Schedule not found: schedule_id=%d", req.ClassScheduleID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, createBooking.ErrScheduleInactive):
			h.logger.Warn("POST /bookings - Schedule inactive: schedule_id=%d", req.ClassScheduleID)
			handlers.RespondConflict(w, msgScheduleInactive)

		case errors.Is(err, createBooking.ErrClassInPast):
			h.logger.Warn("POST /bookings - Class already started: schedule_id=%d", req.ClassScheduleID)
			handlers.RespondConflict(w, msgClassInPast)

		case errors.Is(err, createBooking.ErrClassFull):
			h.logger.Warn("POST /bookings - Class full: schedule_id=%d, user_id=%d", req.ClassScheduleID, userID)
			handlers.RespondConflict(w, msgClassFull)

		case errors.Is(err, createBooking.ErrInsufficientCredits):
			h.logger.Warn("POST /bookings - Insufficient credits: user_id=%d", userID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgInsufficientCredits)

		case errors.Is(err, createBooking.ErrProfileNotFound):
			h.logger.Warn("POST /bookings - Profile not found: user_id=%d", userID)
			handlers.RespondForbidden(w, msgProfileNotRegistered)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, schedule_id=%d, error=%v",
				userID, req.ClassScheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, schedule_id=%d",
		result.BookingID, userID, req.ClassScheduleID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
