// Package profiles отдаёт профиль пользователя с текущим балансом.
package profiles

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-StudioService/internal/domain"
	profileRepo "github.com/m04kA/SMC-StudioService/internal/infra/storage/profile"
)

// Service сервис чтения профилей
type Service struct {
	profiles ProfileRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса профилей
func NewService(profiles ProfileRepository, logger Logger) *Service {
	return &Service{
		profiles: profiles,
		logger:   logger,
	}
}

// GetByUserID возвращает профиль пользователя
func (s *Service) GetByUserID(ctx context.Context, userID int64) (*domain.Profile, error) {
	p, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		s.logger.Error("GetByUserID: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetByUserID - repository error: %v", ErrInternal, err)
	}

	return p, nil
}
