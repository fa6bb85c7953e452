package repositoryImp

import (
	"gorm.io/gorm"

	"agriyield/entities"
	"agriyield/pkg/user/repository"
)

type adminRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.AdminUserRepository { return &adminRepo{db} }

func (r *adminRepo) List() ([]repository.UserListRow, error) {
	var out []repository.UserListRow
	err := r.db.Model(&entities.User{}).
		Select("id, username, email, role, updated_at").
		Order("id ASC").
		Scan(&out).Error
	return out, err
}

func (r *adminRepo) FindByID(id uint) (*entities.User, error) {
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

func (r *adminRepo) Taken(username, email string, excludeID uint) (bool, error) {
	var n int64
	err := r.db.Model(&entities.User{}).
		Where("(username = ? OR email = ?) AND id <> ?", username, email, excludeID).
		Count(&n).Error
	return n > 0, err
}

func (r *adminRepo) Create(u *entities.User) error { return r.db.Create(u).Error }

func (r *adminRepo) Update(u *entities.User) error { return r.db.Save(u).Error }

func (r *adminRepo) Delete(id uint) error {
	return r.db.Delete(&entities.User{}, id).Error
}
