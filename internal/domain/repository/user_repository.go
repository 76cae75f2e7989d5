package repository

import "github.com/Victorkib/kisheka-construction-sub011/internal/domain/entity"

// UserRepository is the port for user accounts.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
}
