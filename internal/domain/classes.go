package domain

import "time"

// ClassType represents a bookable class template
type ClassType struct {
	ID              int64
	Name            string
	Description     *string
	CreditCost      int
	DurationMinutes int
	MaxCapacity     int
	ImageURL        *string
	IsActive        bool
	CreatedAt       time.Time
}

// Instructor represents a class instructor
type Instructor struct {
	ID          int64
	Name        string
	Bio         *string
	Specialties []string
	Email       *string
	Phone       *string
	ImageURL    *string
	IsActive    bool
	CreatedAt   time.Time
}

// ClassSchedule represents a single bookable occurrence of a class type.
// EnrolledCount is mutated only by the booking engine and always equals
// the number of confirmed bookings referencing the schedule.
type ClassSchedule struct {
	ID            int64
	ClassTypeID   int64
	InstructorID  int64
	StartTime     time.Time
	EndTime       time.Time
	Capacity      int
	EnrolledCount int
	IsActive      bool
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SpotsLeft returns the number of free seats on the schedule
func (s *ClassSchedule) SpotsLeft() int {
	left := s.Capacity - s.EnrolledCount
	if left < 0 {
		return 0
	}
	return left
}

// IsFull returns true if no seats are left
func (s *ClassSchedule) IsFull() bool {
	return s.EnrolledCount >= s.Capacity
}

// HasStarted returns true if the schedule's start time has elapsed
func (s *ClassSchedule) HasStarted(now time.Time) bool {
	return !now.Before(s.StartTime)
}

// ScheduleFilter фильтр для получения расписаний
type ScheduleFilter struct {
	From          *time.Time // Начало периода (опционально)
	To            *time.Time // Конец периода (опционально)
	ClassTypeID   *int64     // Фильтр по типу класса (опционально)
	InstructorID  *int64     // Фильтр по инструктору (опционально)
	OnlyActive    bool       // Только активные расписания
	OnlyAvailable bool       // Только расписания со свободными местами
}
