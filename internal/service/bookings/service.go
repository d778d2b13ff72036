package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/booking"
	profileRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/profile"
	scheduleRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-StudioService/internal/service/bookings/models"
)

// Service сервис чтения бронирований
type Service struct {
	bookingRepo    BookingRepository
	scheduleRepo   ScheduleRepository
	classTypeRepo  ClassTypeRepository
	instructorRepo InstructorRepository
	profileRepo    ProfileRepository
	logger         Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	classTypeRepo ClassTypeRepository,
	instructorRepo InstructorRepository,
	profileRepo ProfileRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		scheduleRepo:   scheduleRepo,
		classTypeRepo:  classTypeRepo,
		instructorRepo: instructorRepo,
		profileRepo:    profileRepo,
		logger:         logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только своё бронирование, администратор - любое
func (s *Service) GetByID(ctx context.Context, id int64, requestingUserID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, requestingUserID)

	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if b.UserID != requestingUserID {
		if err := s.checkAdminAccess(ctx, requestingUserID); err != nil {
			s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", requestingUserID, id)
			return nil, err
		}
	}

	return models.FromDomainBooking(b, s.classDetails(ctx, b.ClassScheduleID)), nil
}

// GetUserBookings получает историю бронирований пользователя
// Пользователь видит только свою историю, администратор - любую
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, requested by user=%d", req.UserID, req.RequestingUserID)

	if req.UserID != req.RequestingUserID {
		if err := s.checkAdminAccess(ctx, req.RequestingUserID); err != nil {
			s.logger.Warn("GetUserBookings: access denied for user=%d to bookings of user=%d",
				req.RequestingUserID, req.UserID)
			return nil, err
		}
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetUserBookings: invalid status=%v for user=%d", req.Status, req.UserID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	list, err := s.bookingRepo.GetByUserID(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(list), req.UserID)
	return s.toListResponse(ctx, list), nil
}

// GetScheduleBookings получает бронирования расписания (список участников)
// Доступно только администраторам
func (s *Service) GetScheduleBookings(ctx context.Context, scheduleID int64, requestingUserID int64) (*models.BookingListResponse, error) {
	s.logger.Info("GetScheduleBookings: fetching bookings for schedule=%d by user=%d", scheduleID, requestingUserID)

	if err := s.checkAdminAccess(ctx, requestingUserID); err != nil {
		s.logger.Warn("GetScheduleBookings: access denied for user=%d", requestingUserID)
		return nil, err
	}

	if _, err := s.scheduleRepo.GetByID(ctx, scheduleID); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("GetScheduleBookings: repository error for schedule=%d: %v", scheduleID, err)
		return nil, fmt.Errorf("%w: GetScheduleBookings - repository error: %v", ErrInternal, err)
	}

	list, err := s.bookingRepo.GetByScheduleID(ctx, scheduleID, false)
	if err != nil {
		s.logger.Error("GetScheduleBookings: repository error for schedule=%d: %v", scheduleID, err)
		return nil, fmt.Errorf("%w: GetScheduleBookings - repository error: %v", ErrInternal, err)
	}

	return s.toListResponse(ctx, list), nil
}

// Вспомогательные методы

// checkAdminAccess проверяет, что пользователь является администратором
func (s *Service) checkAdminAccess(ctx context.Context, userID int64) error {
	p, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			return ErrAccessDenied
		}
		return fmt.Errorf("%w: checkAdminAccess - get profile: %v", ErrInternal, err)
	}

	if !p.IsAdmin() {
		return ErrAccessDenied
	}

	return nil
}

// classDetails собирает денормализованные данные занятия для ответа
// Ошибки чтения справочников не фатальны: история отдаётся и без деталей
func (s *Service) classDetails(ctx context.Context, scheduleID int64) *models.ClassDetails {
	sched, err := s.scheduleRepo.GetByID(ctx, scheduleID)
	if err != nil {
		s.logger.Warn("classDetails: failed to get schedule id=%d: %v", scheduleID, err)
		return nil
	}

	details := &models.ClassDetails{
		ScheduleID: sched.ID,
		StartTime:  sched.StartTime.Format(time.RFC3339),
		EndTime:    sched.EndTime.Format(time.RFC3339),
	}

	if ct, err := s.classTypeRepo.GetByID(ctx, sched.ClassTypeID); err == nil {
		details.ClassTypeName = ct.Name
	}
	if ins, err := s.instructorRepo.GetByID(ctx, sched.InstructorID); err == nil {
		details.InstructorName = ins.Name
	}

	return details
}

func (s *Service) toListResponse(ctx context.Context, list []*domain.Booking) *models.BookingListResponse {
	resp := &models.BookingListResponse{
		Bookings: make([]models.BookingResponse, 0, len(list)),
	}

	// Детали расписаний кэшируем в рамках запроса: история пользователя
	// часто ссылается на одни и те же занятия
	detailsCache := make(map[int64]*models.ClassDetails)

	for _, b := range list {
		details, ok := detailsCache[b.ClassScheduleID]
		if !ok {
			details = s.classDetails(ctx, b.ClassScheduleID)
			detailsCache[b.ClassScheduleID] = details
		}

		if bookingResp := models.FromDomainBooking(b, details); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}
