// Package management реализует административные мутации справочников:
// типы классов, инструкторы, расписания. Все операции требуют роли
// администратора; удаления блокируются при наличии зависимых сущностей,
// кроме force-удаления расписания с каскадной отменой бронирований.
package management

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	classTypeRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/classtype"
	instructorRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/instructor"
	profileRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/profile"
	scheduleRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-StudioService/internal/service/ledger"
	"github.com/m04kA/SMC-StudioService/internal/service/management/models"
	"github.com/m04kA/SMC-StudioService/pkg/ptr"
)

// Service сервис административных мутаций
type Service struct {
	classTypes   ClassTypeRepository
	instructors  InstructorRepository
	schedules    ScheduleRepository
	bookings     BookingRepository
	profiles     ProfileRepository
	creditLedger CreditLedger
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса администрирования
func NewService(
	classTypes ClassTypeRepository,
	instructors InstructorRepository,
	schedules ScheduleRepository,
	bookings BookingRepository,
	profiles ProfileRepository,
	creditLedger CreditLedger,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		classTypes:   classTypes,
		instructors:  instructors,
		schedules:    schedules,
		bookings:     bookings,
		profiles:     profiles,
		creditLedger: creditLedger,
		txManager:    txManager,
		logger:       logger,
	}
}

// ApplyClassType применяет мутацию типа класса
func (s *Service) ApplyClassType(ctx context.Context, req models.ClassTypeRequest) (*models.ClassTypeResult, error) {
	if err := s.checkAdminAccess(ctx, req.RequestingUserID); err != nil {
		return nil, err
	}

	switch req.Action {
	case models.ActionCreate:
		return s.createClassType(ctx, req)
	case models.ActionUpdate:
		return s.updateClassType(ctx, req)
	case models.ActionDelete:
		return nil, s.deleteClassType(ctx, req)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
	}
}

func (s *Service) createClassType(ctx context.Context, req models.ClassTypeRequest) (*models.ClassTypeResult, error) {
	if req.Data == nil {
		return nil, fmt.Errorf("%w: data is required for create", ErrValidation)
	}

	ct := &domain.ClassType{IsActive: true}
	applyClassTypeData(ct, req.Data)

	if err := validateClassType(ct); err != nil {
		s.logger.Warn("ApplyClassType: create validation failed: %v", err)
		return nil, err
	}

	created, err := s.classTypes.Create(ctx, ct)
	if err != nil {
		s.logger.Error("ApplyClassType: failed to create class type: %v", err)
		return nil, fmt.Errorf("%w: createClassType - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ApplyClassType: created class type id=%d name=%q by admin=%d",
		created.ID, created.Name, req.RequestingUserID)

	return &models.ClassTypeResult{ClassType: created}, nil
}

func (s *Service) updateClassType(ctx context.Context, req models.ClassTypeRequest) (*models.ClassTypeResult, error) {
	if req.ID == nil || req.Data == nil {
		return nil, fmt.Errorf("%w: id and data are required for update", ErrValidation)
	}

	ct, err := s.classTypes.GetByID(ctx, *req.ID)
	if err != nil {
		if errors.Is(err, classTypeRepo.ErrClassTypeNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: updateClassType - get class type: %w", ErrInternal, err)
	}

	applyClassTypeData(ct, req.Data)

	if err := validateClassType(ct); err != nil {
		s.logger.Warn("ApplyClassType: update validation failed for id=%d: %v", ct.ID, err)
		return nil, err
	}

	if err := s.classTypes.Update(ctx, ct); err != nil {
		if errors.Is(err, classTypeRepo.ErrClassTypeNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("ApplyClassType: failed to update class type id=%d: %v", ct.ID, err)
		return nil, fmt.Errorf("%w: updateClassType - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ApplyClassType: updated class type id=%d by admin=%d", ct.ID, req.RequestingUserID)

	return &models.ClassTypeResult{ClassType: ct}, nil
}

func (s *Service) deleteClassType(ctx context.Context, req models.ClassTypeRequest) error {
	if req.ID == nil {
		return fmt.Errorf("%w: id is required for delete", ErrValidation)
	}

	// Тип класса, на который ссылаются расписания, удалять нельзя:
	// осиротевшие расписания сломали бы витрину и историю бронирований
	count, err := s.schedules.CountByClassType(ctx, *req.ID)
	if err != nil {
		return fmt.Errorf("%w: deleteClassType - count schedules: %w", ErrInternal, err)
	}
	if count > 0 {
		s.logger.Warn("ApplyClassType: delete blocked for id=%d: %d dependent schedules", *req.ID, count)
		return ErrHasDependentBookings
	}

	if err := s.classTypes.Delete(ctx, *req.ID); err != nil {
		if errors.Is(err, classTypeRepo.ErrClassTypeNotFound) {
			return ErrNotFound
		}
		s.logger.Error("ApplyClassType: failed to delete class type id=%d: %v", *req.ID, err)
		return fmt.Errorf("%w: deleteClassType - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ApplyClassType: deleted class type id=%d by admin=%d", *req.ID, req.RequestingUserID)

	return nil
}

// ApplyInstructor применяет мутацию инструктора
func (s *Service) ApplyInstructor(ctx context.Context, req models.InstructorRequest) (*models.InstructorResult, error) {
	if err := s.checkAdminAccess(ctx, req.RequestingUserID); err != nil {
		return nil, err
	}

	switch req.Action {
	case models.ActionCreate:
		return s.createInstructor(ctx, req)
	case models.ActionUpdate:
		return s.updateInstructor(ctx, req)
	case models.ActionDelete:
		return nil, s.deleteInstructor(ctx, req)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
	}
}

func (s *Service) createInstructor(ctx context.Context, req models.InstructorRequest) (*models.InstructorResult, error) {
	if req.Data == nil {
		return nil, fmt.Errorf("%w: data is required for create", ErrValidation)
	}

	ins := &domain.Instructor{IsActive: true}
	applyInstructorData(ins, req.Data)

	if err := validateInstructor(ins); err != nil {
		s.logger.Warn("ApplyInstructor: create validation failed: %v", err)
		return nil, err
	}

	created, err := s.instructors.Create(ctx, ins)
	if err != nil {
		s.logger.Error("ApplyInstructor: failed to create instructor: %v", err)
		return nil, fmt.Errorf("%w: createInstructor - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ApplyInstructor: created instructor id=%d name=%q by admin=%d",
		created.ID, created.Name, req.RequestingUserID)

	return &models.InstructorResult{Instructor: created}, nil
}

func (s *Service) updateInstructor(ctx context.Context, req models.InstructorRequest) (*models.InstructorResult, error) {
	if req.ID == nil || req.Data == nil {
		return nil, fmt.Errorf("%w: id and data are required for update", ErrValidation)
	}

	ins, err := s.instructors.GetByID(ctx, *req.ID)
	if err != nil {
		if errors.Is(err, instructorRepo.ErrInstructorNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: updateInstructor - get instructor: %w", ErrInternal, err)
	}

	applyInstructorData(ins, req.Data)

	if err := validateInstructor(ins); err != nil {
		s.logger.Warn("ApplyInstructor: update validation failed for id=%d: %v", ins.ID, err)
		return nil, err
	}

	if err := s.instructors.Update(ctx, ins); err != nil {
		if errors.Is(err, instructorRepo.ErrInstructorNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("ApplyInstructor: failed to update instructor id=%d: %v", ins.ID, err)
		return nil, fmt.Errorf("%w: updateInstructor - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ApplyInstructor: updated instructor id=%d by admin=%d", ins.ID, req.RequestingUserID)

	return &models.InstructorResult{Instructor: ins}, nil
}

func (s *Service) deleteInstructor(ctx context.Context, req models.InstructorRequest) error {
	if req.ID == nil {
		return fmt.Errorf("%w: id is required for delete", ErrValidation)
	}

	count, err := s.schedules.CountByInstructor(ctx, *req.ID)
	if err != nil {
		return fmt.Errorf("%w: deleteInstructor - count schedules: %w", ErrInternal, err)
	}
	if count > 0 {
		s.logger.Warn("ApplyInstructor: delete blocked for id=%d: %d dependent schedules", *req.ID, count)
		return ErrHasDependentBookings
	}

	if err := s.instructors.Delete(ctx, *req.ID); err != nil {
		if errors.Is(err, instructorRepo.ErrInstructorNotFound) {
			return ErrNotFound
		}
		s.logger.Error("ApplyInstructor: failed to delete instructor id=%d: %v", *req.ID, err)
		return fmt.Errorf("%w: deleteInstructor - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ApplyInstructor: deleted instructor id=%d by admin=%d", *req.ID, req.RequestingUserID)

	return nil
}

// ApplySchedule применяет мутацию расписания
func (s *Service) ApplySchedule(ctx context.Context, req models.ScheduleRequest) (*models.ScheduleResult, error) {
	if err := s.checkAdminAccess(ctx, req.RequestingUserID); err != nil {
		return nil, err
	}

	switch req.Action {
	case models.ActionCreate:
		return s.createSchedule(ctx, req)
	case models.ActionUpdate:
		return s.updateSchedule(ctx, req)
	case models.ActionDelete:
		return s.deleteSchedule(ctx, req)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
	}
}

func (s *Service) createSchedule(ctx context.Context, req models.ScheduleRequest) (*models.ScheduleResult, error) {
	if req.Data == nil {
		return nil, fmt.Errorf("%w: data is required for create", ErrValidation)
	}
	d := req.Data
	if d.ClassTypeID == nil || d.InstructorID == nil || d.StartTime == nil || d.EndTime == nil || d.Capacity == nil {
		return nil, fmt.Errorf("%w: classTypeId, instructorId, startTime, endTime and capacity are required", ErrValidation)
	}

	// Новое расписание должно ссылаться на активные справочники
	ct, err := s.classTypes.GetByID(ctx, *d.ClassTypeID)
	if err != nil {
		if errors.Is(err, classTypeRepo.ErrClassTypeNotFound) {
			return nil, fmt.Errorf("%w: class type %d not found", ErrValidation, *d.ClassTypeID)
		}
		return nil, fmt.Errorf("%w: createSchedule - get class type: %w", ErrInternal, err)
	}
	if !ct.IsActive {
		return nil, ErrClassTypeInactive
	}

	ins, err := s.instructors.GetByID(ctx, *d.InstructorID)
	if err != nil {
		if errors.Is(err, instructorRepo.ErrInstructorNotFound) {
			return nil, fmt.Errorf("%w: instructor %d not found", ErrValidation, *d.InstructorID)
		}
		return nil, fmt.Errorf("%w: createSchedule - get instructor: %w", ErrInternal, err)
	}
	if !ins.IsActive {
		return nil, ErrInstructorInactive
	}

	sched := &domain.ClassSchedule{
		ClassTypeID:  *d.ClassTypeID,
		InstructorID: *d.InstructorID,
		StartTime:    *d.StartTime,
		EndTime:      *d.EndTime,
		Capacity:     *d.Capacity,
		IsActive:     true,
		Notes:        d.Notes,
	}
	if d.IsActive != nil {
		sched.IsActive = *d.IsActive
	}

	if err := validateSchedule(sched); err != nil {
		s.logger.Warn("ApplySchedule: create validation failed: %v", err)
		return nil, err
	}

	created, err := s.schedules.Create(ctx, sched)
	if err != nil {
		s.logger.Error("ApplySchedule: failed to create schedule: %v", err)
		return nil, fmt.Errorf("%w: createSchedule - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("ApplySchedule: created schedule id=%d class_type=%d start=%s by admin=%d",
		created.ID, created.ClassTypeID, created.StartTime.Format(time.RFC3339), req.RequestingUserID)

	return &models.ScheduleResult{Schedule: created}, nil
}

func (s *Service) updateSchedule(ctx context.Context, req models.ScheduleRequest) (*models.ScheduleResult, error) {
	if req.ID == nil || req.Data == nil {
		return nil, fmt.Errorf("%w: id and data are required for update", ErrValidation)
	}

	var updated *domain.ClassSchedule

	// Сериализуемая транзакция: конкурентное бронирование может увеличить
	// enrolled_count между чтением и проверкой вместимости
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		sched, err := s.schedules.GetByIDForUpdate(txCtx, *req.ID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("%w: updateSchedule - get schedule: %w", ErrInternal, err)
		}

		applyScheduleData(sched, req.Data)

		if err := validateSchedule(sched); err != nil {
			return err
		}

		// Вместимость нельзя опустить ниже числа записанных:
		// инвариант enrolled_count <= capacity стал бы ложным
		if sched.Capacity < sched.EnrolledCount {
			return fmt.Errorf("%w: capacity %d is below enrolled count %d",
				ErrValidation, sched.Capacity, sched.EnrolledCount)
		}

		if req.Data.ClassTypeID != nil {
			ct, err := s.classTypes.GetByID(txCtx, *req.Data.ClassTypeID)
			if err != nil {
				if errors.Is(err, classTypeRepo.ErrClassTypeNotFound) {
					return fmt.Errorf("%w: class type %d not found", ErrValidation, *req.Data.ClassTypeID)
				}
				return fmt.Errorf("%w: updateSchedule - get class type: %w", ErrInternal, err)
			}
			if !ct.IsActive {
				return ErrClassTypeInactive
			}
		}
		if req.Data.InstructorID != nil {
			ins, err := s.instructors.GetByID(txCtx, *req.Data.InstructorID)
			if err != nil {
				if errors.Is(err, instructorRepo.ErrInstructorNotFound) {
					return fmt.Errorf("%w: instructor %d not found", ErrValidation, *req.Data.InstructorID)
				}
				return fmt.Errorf("%w: updateSchedule - get instructor: %w", ErrInternal, err)
			}
			if !ins.IsActive {
				return ErrInstructorInactive
			}
		}

		if err := s.schedules.Update(txCtx, sched); err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("%w: updateSchedule - repository error: %w", ErrInternal, err)
		}

		updated = sched
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation) ||
			errors.Is(err, ErrClassTypeInactive) || errors.Is(err, ErrInstructorInactive) {
			return nil, err
		}
		s.logger.Error("ApplySchedule: failed to update schedule id=%d: %v", *req.ID, err)
		return nil, err
	}

	s.logger.Info("ApplySchedule: updated schedule id=%d by admin=%d", updated.ID, req.RequestingUserID)

	return &models.ScheduleResult{Schedule: updated}, nil
}

// deleteSchedule удаляет расписание. Без force удаление блокируется
// при наличии подтверждённых бронирований; с force они атомарно
// отменяются с возвратом кредитов
func (s *Service) deleteSchedule(ctx context.Context, req models.ScheduleRequest) (*models.ScheduleResult, error) {
	if req.ID == nil {
		return nil, fmt.Errorf("%w: id is required for delete", ErrValidation)
	}

	var cancelled int

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if _, err := s.schedules.GetByIDForUpdate(txCtx, *req.ID); err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("%w: deleteSchedule - get schedule: %w", ErrInternal, err)
		}

		confirmed, err := s.bookings.GetByScheduleID(txCtx, *req.ID, true)
		if err != nil {
			return fmt.Errorf("%w: deleteSchedule - get bookings: %w", ErrInternal, err)
		}

		if len(confirmed) > 0 && !req.Force {
			return ErrHasDependentBookings
		}

		// Каскад: каждому записанному отменяем бронирование и возвращаем
		// кредиты той же транзакцией, что и удаление расписания
		for _, b := range confirmed {
			if err := s.bookings.Cancel(txCtx, b.ID); err != nil {
				return fmt.Errorf("%w: deleteSchedule - cancel booking %d: %w", ErrInternal, b.ID, err)
			}

			if _, err := s.creditLedger.ApplyDelta(txCtx, ledger.Delta{
				UserID:      b.UserID,
				Amount:      b.CreditsUsed,
				Type:        domain.TransactionBookingRefund,
				Description: ptr.Ptr("Class cancelled by studio"),
				BookingID:   &b.ID,
				AdminUserID: &req.RequestingUserID,
			}); err != nil {
				return fmt.Errorf("%w: deleteSchedule - refund booking %d: %w", ErrInternal, b.ID, err)
			}
		}
		cancelled = len(confirmed)

		// bookings.class_schedule_id — FK без ON DELETE: строки бронирований
		// (включая уже отменённые) удаляются до расписания, иначе DELETE
		// упадёт на нарушении ограничения. История возвратов остаётся
		// в credit_transactions, booking_id там слабая ссылка
		if err := s.bookings.DeleteBySchedule(txCtx, *req.ID); err != nil {
			return fmt.Errorf("%w: deleteSchedule - delete bookings: %w", ErrInternal, err)
		}

		if err := s.schedules.Delete(txCtx, *req.ID); err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("%w: deleteSchedule - repository error: %w", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrHasDependentBookings) {
			return nil, err
		}
		s.logger.Error("ApplySchedule: failed to delete schedule id=%d: %v", *req.ID, err)
		return nil, err
	}

	s.logger.Info("ApplySchedule: deleted schedule id=%d (cancelled %d bookings) by admin=%d",
		*req.ID, cancelled, req.RequestingUserID)

	return &models.ScheduleResult{CancelledBookings: cancelled}, nil
}

// checkAdminAccess проверяет, что пользователь - администратор
func (s *Service) checkAdminAccess(ctx context.Context, userID int64) error {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			return ErrAccessDenied
		}
		return fmt.Errorf("%w: checkAdminAccess - get profile: %w", ErrInternal, err)
	}
	if !p.IsAdmin() {
		s.logger.Warn("checkAdminAccess: user=%d is not an admin", userID)
		return ErrAccessDenied
	}
	return nil
}

func applyClassTypeData(ct *domain.ClassType, d *models.ClassTypeData) {
	if d.Name != nil {
		ct.Name = *d.Name
	}
	if d.Description != nil {
		ct.Description = d.Description
	}
	if d.CreditCost != nil {
		ct.CreditCost = *d.CreditCost
	}
	if d.DurationMinutes != nil {
		ct.DurationMinutes = *d.DurationMinutes
	}
	if d.MaxCapacity != nil {
		ct.MaxCapacity = *d.MaxCapacity
	}
	if d.ImageURL != nil {
		ct.ImageURL = d.ImageURL
	}
	if d.IsActive != nil {
		ct.IsActive = *d.IsActive
	}
}

func applyInstructorData(ins *domain.Instructor, d *models.InstructorData) {
	if d.Name != nil {
		ins.Name = *d.Name
	}
	if d.Bio != nil {
		ins.Bio = d.Bio
	}
	if d.Specialties != nil {
		ins.Specialties = d.Specialties
	}
	if d.Email != nil {
		ins.Email = d.Email
	}
	if d.Phone != nil {
		ins.Phone = d.Phone
	}
	if d.ImageURL != nil {
		ins.ImageURL = d.ImageURL
	}
	if d.IsActive != nil {
		ins.IsActive = *d.IsActive
	}
}

func applyScheduleData(s *domain.ClassSchedule, d *models.ScheduleData) {
	if d.ClassTypeID != nil {
		s.ClassTypeID = *d.ClassTypeID
	}
	if d.InstructorID != nil {
		s.InstructorID = *d.InstructorID
	}
	if d.StartTime != nil {
		s.StartTime = *d.StartTime
	}
	if d.EndTime != nil {
		s.EndTime = *d.EndTime
	}
	if d.Capacity != nil {
		s.Capacity = *d.Capacity
	}
	if d.IsActive != nil {
		s.IsActive = *d.IsActive
	}
	if d.Notes != nil {
		s.Notes = d.Notes
	}
}

func validateClassType(ct *domain.ClassType) error {
	if ct.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if len(ct.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is longer than %d characters", ErrValidation, domain.MaxNameLength)
	}
	if ct.CreditCost < domain.MinCreditCost {
		return fmt.Errorf("%w: credit cost must be at least %d", ErrValidation, domain.MinCreditCost)
	}
	if ct.DurationMinutes < domain.MinDurationMinutes || ct.DurationMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrValidation, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}
	if ct.MaxCapacity < domain.MinCapacity {
		return fmt.Errorf("%w: max capacity must be at least %d", ErrValidation, domain.MinCapacity)
	}
	return nil
}

func validateInstructor(ins *domain.Instructor) error {
	if ins.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if len(ins.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is longer than %d characters", ErrValidation, domain.MaxNameLength)
	}
	return nil
}

func validateSchedule(s *domain.ClassSchedule) error {
	if !s.EndTime.After(s.StartTime) {
		return fmt.Errorf("%w: end time must be after start time", ErrValidation)
	}
	if s.Capacity < domain.MinCapacity {
		return fmt.Errorf("%w: capacity must be at least %d", ErrValidation, domain.MinCapacity)
	}
	if s.Notes != nil && len(*s.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes are longer than %d characters", ErrValidation, domain.MaxNotesLength)
	}
	return nil
}
