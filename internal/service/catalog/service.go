// Package catalog отдаёт витрину студии: типы классов, инструкторов и
// расписание занятий со свободными местами. Только чтение; все мутации
// живут в service/management и booking engine.
package catalog

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	"github.com/m04kA/SMC-StudioService/internal/service/catalog/models"
)

// Service сервис витрины студии
type Service struct {
	classTypeRepo  ClassTypeRepository
	instructorRepo InstructorRepository
	scheduleRepo   ScheduleRepository
	logger         Logger
}

// NewService создает новый экземпляр сервиса витрины
func NewService(
	classTypeRepo ClassTypeRepository,
	instructorRepo InstructorRepository,
	scheduleRepo ScheduleRepository,
	logger Logger,
) *Service {
	return &Service{
		classTypeRepo:  classTypeRepo,
		instructorRepo: instructorRepo,
		scheduleRepo:   scheduleRepo,
		logger:         logger,
	}
}

// ListClassTypes возвращает активные типы классов
func (s *Service) ListClassTypes(ctx context.Context) (*models.ClassTypeListResponse, error) {
	classTypes, err := s.classTypeRepo.List(ctx, true)
	if err != nil {
		s.logger.Error("ListClassTypes: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListClassTypes - repository error: %v", ErrInternal, err)
	}

	resp := &models.ClassTypeListResponse{
		ClassTypes: make([]models.ClassTypeResponse, 0, len(classTypes)),
	}
	for _, ct := range classTypes {
		resp.ClassTypes = append(resp.ClassTypes, models.FromDomainClassType(ct))
	}

	return resp, nil
}

// ListInstructors возвращает активных инструкторов
func (s *Service) ListInstructors(ctx context.Context) (*models.InstructorListResponse, error) {
	instructors, err := s.instructorRepo.List(ctx, true)
	if err != nil {
		s.logger.Error("ListInstructors: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListInstructors - repository error: %v", ErrInternal, err)
	}

	resp := &models.InstructorListResponse{
		Instructors: make([]models.InstructorResponse, 0, len(instructors)),
	}
	for _, ins := range instructors {
		resp.Instructors = append(resp.Instructors, models.FromDomainInstructor(ins))
	}

	return resp, nil
}

// ListSchedules возвращает расписания по фильтру с денормализованными
// названиями типа класса и инструктора и стоимостью в кредитах
func (s *Service) ListSchedules(ctx context.Context, filter domain.ScheduleFilter) (*models.ScheduleListResponse, error) {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		s.logger.Warn("ListSchedules: invalid period: from=%v, to=%v", filter.From, filter.To)
		return nil, fmt.Errorf("%w: period end is before period start", ErrInvalidInput)
	}

	schedules, err := s.scheduleRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListSchedules: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSchedules - repository error: %v", ErrInternal, err)
	}

	// Справочники небольшие: загружаем целиком и джойним в памяти,
	// чтобы не делать по два запроса на каждое расписание
	classTypes, err := s.classTypeRepo.List(ctx, false)
	if err != nil {
		s.logger.Error("ListSchedules: failed to list class types: %v", err)
		return nil, fmt.Errorf("%w: ListSchedules - list class types: %v", ErrInternal, err)
	}
	instructors, err := s.instructorRepo.List(ctx, false)
	if err != nil {
		s.logger.Error("ListSchedules: failed to list instructors: %v", err)
		return nil, fmt.Errorf("%w: ListSchedules - list instructors: %v", ErrInternal, err)
	}

	classTypeByID := make(map[int64]*domain.ClassType, len(classTypes))
	for _, ct := range classTypes {
		classTypeByID[ct.ID] = ct
	}
	instructorByID := make(map[int64]*domain.Instructor, len(instructors))
	for _, ins := range instructors {
		instructorByID[ins.ID] = ins
	}

	resp := &models.ScheduleListResponse{
		Schedules: make([]models.ScheduleResponse, 0, len(schedules)),
	}

	for _, sched := range schedules {
		var classTypeName, instructorName string
		var creditCost int

		if ct, ok := classTypeByID[sched.ClassTypeID]; ok {
			classTypeName = ct.Name
			creditCost = ct.CreditCost
		}
		if ins, ok := instructorByID[sched.InstructorID]; ok {
			instructorName = ins.Name
		}

		resp.Schedules = append(resp.Schedules, models.FromDomainSchedule(sched, classTypeName, instructorName, creditCost))
	}

	s.logger.Info("ListSchedules: returned %d schedules", len(resp.Schedules))
	return resp, nil
}
