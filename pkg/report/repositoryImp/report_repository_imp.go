package repositoryImp

import (
	"gorm.io/gorm"

	"agriyield/entities"
	"agriyield/pkg/report/repository"
)

type reportRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ReportRepository { return &reportRepo{db} }

func (r *reportRepo) base(s entities.Scope) *gorm.DB {
	q := r.db.Model(&entities.YieldRecord{}).
		Select(`yield_records.yield_id,
			yield_records.crop_id,
			crops.crop_name,
			crop_types.crop_type_name,
			yield_records.year,
			yield_records.yield_amount,
			yield_records.area_harvested,
			yield_records.production,
			yield_records.district_id,
			districts.district_name,
			provinces.province_id,
			provinces.province_name,
			yield_records.municipality_id,
			municipalities.municipality_name,
			municipality_types.municipality_type_name,
			yield_records.season_id,
			seasons.season_name`).
		Joins("JOIN crops ON crops.crop_id = yield_records.crop_id").
		Joins("JOIN crop_types ON crop_types.crop_type_id = crops.crop_type_id").
		Joins("JOIN districts ON districts.district_id = yield_records.district_id").
		Joins("JOIN provinces ON provinces.province_id = districts.province_id").
		Joins("JOIN municipalities ON municipalities.municipality_id = yield_records.municipality_id").
		Joins("JOIN municipality_types ON municipality_types.municipality_type_id = municipalities.municipality_type_id").
		Joins("LEFT JOIN seasons ON seasons.season_id = yield_records.season_id")
	if s.FarmerOnly() {
		q = q.Where("yield_records.created_by = ?", s.UserID)
	}
	return q
}

func (r *reportRepo) FullReport(s entities.Scope, f repository.Filter) ([]repository.Row, error) {
	q := r.base(s)
	if f.Year != nil {
		q = q.Where("yield_records.year = ?", *f.Year)
	}
	if f.CropID != nil {
		q = q.Where("yield_records.crop_id = ?", *f.CropID)
	}
	if f.DistrictID != nil {
		q = q.Where("yield_records.district_id = ?", *f.DistrictID)
	}
	if f.SeasonID != nil {
		q = q.Where("yield_records.season_id = ?", *f.SeasonID)
	}
	var rows []repository.Row
	err := q.Order("yield_records.yield_id ASC").Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) Years(s entities.Scope) ([]int, error) {
	q := r.db.Model(&entities.YieldRecord{}).Distinct("year").Order("year DESC")
	if s.FarmerOnly() {
		q = q.Where("created_by = ?", s.UserID)
	}
	var years []int
	err := q.Pluck("year", &years).Error
	return years, err
}
