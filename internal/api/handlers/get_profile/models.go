package get_profile

import (
	"time"

	"github.com/m04kA/SMC-StudioService/internal/domain"
)

// ProfileResponse HTTP response model
type ProfileResponse struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"userId"`
	Email         string  `json:"email"`
	FullName      string  `json:"fullName"`
	Phone         *string `json:"phone,omitempty"`
	Role          string  `json:"role"`
	CreditBalance int     `json:"creditBalance"`
	CreatedAt     string  `json:"createdAt"`
}

// FromDomainProfile конвертирует domain модель в HTTP response
func FromDomainProfile(p *domain.Profile) *ProfileResponse {
	return &ProfileResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		Email:         p.Email,
		FullName:      p.FullName,
		Phone:         p.Phone,
		Role:          string(p.Role),
		CreditBalance: p.CreditBalance,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
	}
}
