package repositoryImp

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"agriyield/entities"
	"agriyield/pkg/master/repository"
)

type masterRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.MasterRepository { return &masterRepo{db} }

// mapWriteErr turns a storage-level unique violation into the
// field-level duplicate error; everything else passes through.
func mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return repository.ErrDuplicateName
	}
	return err
}

// ---- crops

func (r *masterRepo) ListCrops() ([]repository.CropRow, error) {
	var out []repository.CropRow
	err := r.db.Model(&entities.Crop{}).
		Select("crops.crop_id, crops.crop_name, crop_types.crop_type_name").
		Joins("JOIN crop_types ON crop_types.crop_type_id = crops.crop_type_id").
		Order("crops.crop_name ASC").
		Scan(&out).Error
	return out, err
}

func (r *masterRepo) FindCrop(id uint) (*entities.Crop, error) {
	var c entities.Crop
	err := r.db.First(&c, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *masterRepo) CropNameTaken(name string, excludeID uint) (bool, error) {
	var n int64
	err := r.db.Model(&entities.Crop{}).
		Where("LOWER(crop_name) = LOWER(?) AND crop_id <> ?", name, excludeID).
		Count(&n).Error
	return n > 0, err
}

func (r *masterRepo) CreateCrop(c *entities.Crop) error { return mapWriteErr(r.db.Create(c).Error) }
func (r *masterRepo) UpdateCrop(c *entities.Crop) error { return mapWriteErr(r.db.Save(c).Error) }

func (r *masterRepo) DeleteCrop(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&entities.YieldRecord{}).Where("crop_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return repository.ErrInUse
		}
		res := tx.Delete(&entities.Crop{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}

// ---- crop types

func (r *masterRepo) ListCropTypes() ([]entities.CropType, error) {
	var out []entities.CropType
	return out, r.db.Order("crop_type_name ASC").Find(&out).Error
}

func (r *masterRepo) FindCropType(id uint) (*entities.CropType, error) {
	var ct entities.CropType
	err := r.db.First(&ct, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ct, nil
}

func (r *masterRepo) CropTypeNameTaken(name string, excludeID uint) (bool, error) {
	var n int64
	err := r.db.Model(&entities.CropType{}).
		Where("LOWER(crop_type_name) = LOWER(?) AND crop_type_id <> ?", name, excludeID).
		Count(&n).Error
	return n > 0, err
}

func (r *masterRepo) CreateCropType(ct *entities.CropType) error {
	return mapWriteErr(r.db.Create(ct).Error)
}

func (r *masterRepo) UpdateCropType(ct *entities.CropType) error {
	return mapWriteErr(r.db.Save(ct).Error)
}

func (r *masterRepo) DeleteCropType(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&entities.Crop{}).Where("crop_type_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return repository.ErrInUse
		}
		res := tx.Delete(&entities.CropType{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}

// ---- seasons

func (r *masterRepo) ListSeasons() ([]entities.Season, error) {
	var out []entities.Season
	return out, r.db.Order("season_name ASC").Find(&out).Error
}

func (r *masterRepo) FindSeason(id uint) (*entities.Season, error) {
	var s entities.Season
	err := r.db.First(&s, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *masterRepo) SeasonNameTaken(name string, excludeID uint) (bool, error) {
	var n int64
	err := r.db.Model(&entities.Season{}).
		Where("LOWER(season_name) = LOWER(?) AND season_id <> ?", name, excludeID).
		Count(&n).Error
	return n > 0, err
}

func (r *masterRepo) CreateSeason(s *entities.Season) error { return mapWriteErr(r.db.Create(s).Error) }
func (r *masterRepo) UpdateSeason(s *entities.Season) error { return mapWriteErr(r.db.Save(s).Error) }

func (r *masterRepo) DeleteSeason(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&entities.YieldRecord{}).Where("season_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return repository.ErrInUse
		}
		res := tx.Delete(&entities.Season{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}

// ---- lookups

func (r *masterRepo) ListDistricts() ([]entities.District, error) {
	var out []entities.District
	return out, r.db.Order("district_name ASC").Find(&out).Error
}

func (r *masterRepo) ListMunicipalities() ([]entities.Municipality, error) {
	var out []entities.Municipality
	return out, r.db.Order("municipality_name ASC").Find(&out).Error
}

func (r *masterRepo) CropExists(id uint) (bool, error) { return r.exists(&entities.Crop{}, id) }

func (r *masterRepo) DistrictExists(id uint) (bool, error) {
	return r.exists(&entities.District{}, id)
}

func (r *masterRepo) MunicipalityExists(id uint) (bool, error) {
	return r.exists(&entities.Municipality{}, id)
}

func (r *masterRepo) SeasonExists(id uint) (bool, error) { return r.exists(&entities.Season{}, id) }

func (r *masterRepo) exists(model any, id uint) (bool, error) {
	var n int64
	err := r.db.Model(model).Where(primaryKeyOf(model)+" = ?", id).Count(&n).Error
	return n > 0, err
}

func primaryKeyOf(model any) string {
	switch model.(type) {
	case *entities.Crop:
		return "crop_id"
	case *entities.District:
		return "district_id"
	case *entities.Municipality:
		return "municipality_id"
	case *entities.Season:
		return "season_id"
	}
	return "id"
}
