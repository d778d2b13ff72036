package models

import (
	"time"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// Action тип административного действия
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// ClassTypeData данные типа класса для create/update
// При update nil-поля не изменяются
type ClassTypeData struct {
	Name            *string `json:"name,omitempty"`
	Description     *string `json:"description,omitempty"`
	CreditCost      *int    `json:"creditCost,omitempty"`
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	MaxCapacity     *int    `json:"maxCapacity,omitempty"`
	ImageURL        *string `json:"imageUrl,omitempty"`
	IsActive        *bool   `json:"isActive,omitempty"`
}

// ClassTypeRequest запрос на изменение типа класса
type ClassTypeRequest struct {
	RequestingUserID int64          `json:"-"`
	Action           Action         `json:"action"`
	ID               *int64         `json:"id,omitempty"`
	Data             *ClassTypeData `json:"data,omitempty"`
}

// InstructorData данные инструктора для create/update
type InstructorData struct {
	Name        *string  `json:"name,omitempty"`
	Bio         *string  `json:"bio,omitempty"`
	Specialties []string `json:"specialties,omitempty"`
	Email       *string  `json:"email,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	IsActive    *bool    `json:"isActive,omitempty"`
}

// InstructorRequest запрос на изменение инструктора
type InstructorRequest struct {
	RequestingUserID int64           `json:"-"`
	Action           Action          `json:"action"`
	ID               *int64          `json:"id,omitempty"`
	Data             *InstructorData `json:"data,omitempty"`
}

// ScheduleData данные расписания для create/update
type ScheduleData struct {
	ClassTypeID  *int64     `json:"classTypeId,omitempty"`
	InstructorID *int64     `json:"instructorId,omitempty"`
	StartTime    *time.Time `json:"startTime,omitempty"`
	EndTime      *time.Time `json:"endTime,omitempty"`
	Capacity     *int       `json:"capacity,omitempty"`
	IsActive     *bool      `json:"isActive,omitempty"`
	Notes        *string    `json:"notes,omitempty"`
}

// ScheduleRequest запрос на изменение расписания
// Force разрешает удаление с каскадной отменой подтверждённых бронирований
type ScheduleRequest struct {
	RequestingUserID int64         `json:"-"`
	Action           Action        `json:"action"`
	ID               *int64        `json:"id,omitempty"`
	Data             *ScheduleData `json:"data,omitempty"`
	Force            bool          `json:"force,omitempty"`
}

// ClassTypeResult результат мутации типа класса (nil для delete)
type ClassTypeResult struct {
	ClassType *domain.ClassType `json:"classType,omitempty"`
}

// InstructorResult результат мутации инструктора (nil для delete)
type InstructorResult struct {
	Instructor *domain.Instructor `json:"instructor,omitempty"`
}

// ScheduleResult результат мутации расписания
// CancelledBookings заполняется при каскадном удалении
type ScheduleResult struct {
	Schedule          *domain.ClassSchedule `json:"schedule,omitempty"`
	CancelledBookings int                   `json:"cancelledBookings,omitempty"`
}
