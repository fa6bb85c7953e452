package repositoryImp

import (
	"gorm.io/gorm"

	"agriyield/entities"
	"agriyield/pkg/yield/repository"
)

type yieldRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.YieldRepository { return &yieldRepo{db} }

func (r *yieldRepo) Create(rec *entities.YieldRecord) error { return r.db.Create(rec).Error }

func (r *yieldRepo) Update(rec *entities.YieldRecord) error { return r.db.Save(rec).Error }

func (r *yieldRepo) Delete(id uint) error {
	return r.db.Delete(&entities.YieldRecord{}, id).Error
}

func (r *yieldRepo) FindByID(id uint) (*entities.YieldRecord, error) {
	var rec entities.YieldRecord
	err := r.db.First(&rec, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
