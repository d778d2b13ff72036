package models

import (
	"time"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// ClassTypeResponse ответ с данными типа класса
type ClassTypeResponse struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Description     *string `json:"description,omitempty"`
	CreditCost      int     `json:"creditCost"`
	DurationMinutes int     `json:"durationMinutes"`
	MaxCapacity     int     `json:"maxCapacity"`
	ImageURL        *string `json:"imageUrl,omitempty"`
	IsActive        bool    `json:"isActive"`
}

// InstructorResponse ответ с данными инструктора
type InstructorResponse struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Bio         *string  `json:"bio,omitempty"`
	Specialties []string `json:"specialties"`
	Email       *string  `json:"email,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	IsActive    bool     `json:"isActive"`
}

// ScheduleResponse ответ с данными расписания
// ClassTypeName и InstructorName денормализуются сервисом для отображения
type ScheduleResponse struct {
	ID             int64   `json:"id"`
	ClassTypeID    int64   `json:"classTypeId"`
	ClassTypeName  string  `json:"classTypeName,omitempty"`
	InstructorID   int64   `json:"instructorId"`
	InstructorName string  `json:"instructorName,omitempty"`
	StartTime      string  `json:"startTime"` // ISO 8601
	EndTime        string  `json:"endTime"`   // ISO 8601
	Capacity       int     `json:"capacity"`
	EnrolledCount  int     `json:"enrolledCount"`
	SpotsLeft      int     `json:"spotsLeft"`
	CreditCost     int     `json:"creditCost"`
	IsActive       bool    `json:"isActive"`
	Notes          *string `json:"notes,omitempty"`
}

// ClassTypeListResponse ответ со списком типов классов
type ClassTypeListResponse struct {
	ClassTypes []ClassTypeResponse `json:"classTypes"`
}

// InstructorListResponse ответ со списком инструкторов
type InstructorListResponse struct {
	Instructors []InstructorResponse `json:"instructors"`
}

// ScheduleListResponse ответ со списком расписаний
type ScheduleListResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
}

// Методы конвертации

// FromDomainClassType конвертирует domain модель в DTO
func FromDomainClassType(ct *domain.ClassType) ClassTypeResponse {
	return ClassTypeResponse{
		ID:              ct.ID,
		Name:            ct.Name,
		Description:     ct.Description,
		CreditCost:      ct.CreditCost,
		DurationMinutes: ct.DurationMinutes,
		MaxCapacity:     ct.MaxCapacity,
		ImageURL:        ct.ImageURL,
		IsActive:        ct.IsActive,
	}
}

// FromDomainInstructor конвертирует domain модель в DTO
func FromDomainInstructor(ins *domain.Instructor) InstructorResponse {
	specialties := ins.Specialties
	if specialties == nil {
		specialties = []string{}
	}

	return InstructorResponse{
		ID:          ins.ID,
		Name:        ins.Name,
		Bio:         ins.Bio,
		Specialties: specialties,
		Email:       ins.Email,
		Phone:       ins.Phone,
		ImageURL:    ins.ImageURL,
		IsActive:    ins.IsActive,
	}
}

// FromDomainSchedule конвертирует domain модель в DTO
func FromDomainSchedule(s *domain.ClassSchedule, classTypeName, instructorName string, creditCost int) ScheduleResponse {
	return ScheduleResponse{
		ID:             s.ID,
		ClassTypeID:    s.ClassTypeID,
		ClassTypeName:  classTypeName,
		InstructorID:   s.InstructorID,
		InstructorName: instructorName,
		StartTime:      s.StartTime.Format(time.RFC3339),
		EndTime:        s.EndTime.Format(time.RFC3339),
		Capacity:       s.Capacity,
		EnrolledCount:  s.EnrolledCount,
		SpotsLeft:      s.SpotsLeft(),
		CreditCost:     creditCost,
		IsActive:       s.IsActive,
		Notes:          s.Notes,
	}
}
