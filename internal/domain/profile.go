package domain

import "time"

// Role represents the access role of a profile
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// Profile represents a user profile with its credit balance.
// The balance is a materialized view of the credit_transactions ledger:
// every mutation of the balance writes a ledger row in the same transaction.
type Profile struct {
	ID       int64
	UserID   int64 // ID пользователя из identity-провайдера (доверенный X-User-ID)
	Email    string
	FullName string
	Phone    *string
	Role     Role

	CreditBalance int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin returns true if the profile has administrative access
func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAfford returns true if the balance covers the given cost
func (p *Profile) CanAfford(cost int) bool {
	return p.CreditBalance >= cost
}
