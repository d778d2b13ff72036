package domain

// Business rule constants
const (
	// CancellationNoticeHours за сколько часов до начала занятия
	// бронирование ещё можно отменить с возвратом кредитов
	CancellationNoticeHours = 2

	// WelcomeCredits стартовое начисление кредитов при регистрации профиля
	WelcomeCredits = 10
)

// Validation bounds for admin writes
const (
	MinCreditCost      = 1
	MinDurationMinutes = 15
	MaxDurationMinutes = 180
	MinCapacity        = 1
	MaxNameLength      = 200
	MaxNotesLength     = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
