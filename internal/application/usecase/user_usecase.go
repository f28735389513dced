package usecase

import (
	"github.com/jhoicas/fieldops-api/internal/application/dto"
	"github.com/jhoicas/fieldops-api/internal/domain"
	"github.com/jhoicas/fieldops-api/internal/domain/entity"
	"github.com/jhoicas/fieldops-api/internal/domain/repository"
)

// UserUseCase casos de uso de administración de usuarios (solo admin).
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List lista usuarios, opcionalmente filtrados por rol.
func (uc *UserUseCase) List(role string, limit, offset int) ([]*dto.UserResponse, error) {
	if role != "" && !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	users, err := uc.repo.List(role, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, &dto.UserResponse{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			Phone:     u.Phone,
			Role:      u.Role,
			Region:    u.Region,
			ManagerID: u.ManagerID,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		})
	}
	return out, nil
}

// SoftDelete marca un usuario como eliminado; el registro se conserva porque
// el ledger y las ventas lo referencian.
func (uc *UserUseCase) SoftDelete(id string) error {
	user, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	return uc.repo.SoftDelete(id)
}
