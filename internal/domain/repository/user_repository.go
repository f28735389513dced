package repository

import "github.com/jhoicas/fieldops-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByUsername(username string) (*entity.User, error)
	List(role string, limit, offset int) ([]*entity.User, error)
	Update(user *entity.User) error
	SoftDelete(id string) error
}
