package repositoryImp

import (
	"time"

	"gorm.io/gorm"

	"agriyield/entities"
	"agriyield/pkg/auth/repository"
)

type userRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.UserRepository { return &userRepo{db} }

func (r *userRepo) FindByLogin(value string) (*entities.User, error) {
	var u entities.User
	err := r.db.Where("username = ? OR email = ?", value, value).First(&u).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) FindByID(id uint) (*entities.User, error) {
	var u entities.User
	err := r.db.First(&u, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) TouchUpdatedAt(id uint) error {
	return r.db.Model(&entities.User{}).Where("id = ?", id).
		Update("updated_at", time.Now().UTC()).Error
}
