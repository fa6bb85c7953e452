package repositoryImp

import (
	"database/sql"

	"gorm.io/gorm"

	"agriyield/entities"
	"agriyield/pkg/analysis/repository"
)

type analysisRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.AnalysisRepository { return &analysisRepo{db} }

func (r *analysisRepo) scoped(s entities.Scope) *gorm.DB {
	q := r.db.Model(&entities.YieldRecord{})
	if s.FarmerOnly() {
		q = q.Where("yield_records.created_by = ?", s.UserID)
	}
	return q
}

func (r *analysisRepo) TotalProduction(s entities.Scope) (float64, error) {
	var v float64
	err := r.scoped(s).Select("COALESCE(SUM(production), 0)").Scan(&v).Error
	return v, err
}

func (r *analysisRepo) TotalArea(s entities.Scope) (float64, error) {
	var v float64
	err := r.scoped(s).Select("COALESCE(SUM(area_harvested), 0)").Scan(&v).Error
	return v, err
}

func (r *analysisRepo) TotalRecords(s entities.Scope) (int64, error) {
	var n int64
	err := r.scoped(s).Count(&n).Error
	return n, err
}

func (r *analysisRepo) TrendByYear(s entities.Scope, cropID uint) ([]repository.YearProduction, error) {
	var out []repository.YearProduction
	err := r.scoped(s).
		Select("year, COALESCE(SUM(production), 0) AS production").
		Where("crop_id = ?", cropID).
		Group("year").Order("year ASC").
		Scan(&out).Error
	return out, err
}

func (r *analysisRepo) CropComparison(s entities.Scope) ([]repository.CropProduction, error) {
	var out []repository.CropProduction
	err := r.scoped(s).
		Select("crops.crop_name AS crop_name, COALESCE(SUM(yield_records.production), 0) AS production").
		Joins("JOIN crops ON crops.crop_id = yield_records.crop_id").
		Group("crops.crop_name").Order("crops.crop_name ASC").
		Scan(&out).Error
	return out, err
}

func (r *analysisRepo) DistrictComparison(s entities.Scope, districtID uint) ([]repository.CropProduction, error) {
	var out []repository.CropProduction
	err := r.scoped(s).
		Select("crops.crop_name AS crop_name, COALESCE(SUM(yield_records.production), 0) AS production").
		Joins("JOIN crops ON crops.crop_id = yield_records.crop_id").
		Where("yield_records.district_id = ?", districtID).
		Group("crops.crop_name").Order("crops.crop_name ASC").
		Scan(&out).Error
	return out, err
}

// HighestProducingCrop ties break on crop name ascending so the result
// is deterministic across storage engines.
func (r *analysisRepo) HighestProducingCrop(s entities.Scope) (*repository.CropProduction, error) {
	var out []repository.CropProduction
	err := r.scoped(s).
		Select("crops.crop_name AS crop_name, COALESCE(SUM(yield_records.production), 0) AS production").
		Joins("JOIN crops ON crops.crop_id = yield_records.crop_id").
		Group("crops.crop_name").
		Order("production DESC").Order("crops.crop_name ASC").
		Limit(1).
		Scan(&out).Error
	if err != nil || len(out) == 0 {
		return nil, err
	}
	return &out[0], nil
}

func (r *analysisRepo) LatestYearRecordCount(s entities.Scope) (int64, error) {
	var latest sql.NullInt64
	if err := r.scoped(s).Select("MAX(year)").Scan(&latest).Error; err != nil {
		return 0, err
	}
	if !latest.Valid {
		return 0, nil
	}
	var n int64
	err := r.scoped(s).Where("year = ?", latest.Int64).Count(&n).Error
	return n, err
}

func (r *analysisRepo) SummaryByYear(s entities.Scope) ([]repository.YearProduction, error) {
	var out []repository.YearProduction
	err := r.scoped(s).
		Select("year, COALESCE(SUM(production), 0) AS production").
		Group("year").Order("year ASC").
		Scan(&out).Error
	return out, err
}

func (r *analysisRepo) SummaryByCrop(s entities.Scope) ([]repository.CropSummary, error) {
	var out []repository.CropSummary
	err := r.scoped(s).
		Select(`crops.crop_name AS crop,
			COALESCE(SUM(yield_records.production), 0) AS total_production,
			COALESCE(AVG(yield_records.yield_amount), 0) AS avg_yield_per_hectare,
			COALESCE(SUM(yield_records.area_harvested), 0) AS total_area`).
		Joins("JOIN crops ON crops.crop_id = yield_records.crop_id").
		Group("crops.crop_name").Order("crops.crop_name ASC").
		Scan(&out).Error
	return out, err
}

func (r *analysisRepo) SummaryByDistrict(s entities.Scope) ([]repository.DistrictSummary, error) {
	var out []repository.DistrictSummary
	err := r.scoped(s).
		Select(`district_id,
			COALESCE(SUM(production), 0) AS total_production,
			COALESCE(AVG(yield_amount), 0) AS avg_yield_per_hectare,
			COALESCE(SUM(area_harvested), 0) AS total_area`).
		Group("district_id").Order("district_id ASC").
		Scan(&out).Error
	return out, err
}

func (r *analysisRepo) LatestRecords(s entities.Scope, limit int) ([]entities.YieldRecord, error) {
	var out []entities.YieldRecord
	err := r.scoped(s).Order("year DESC, yield_id DESC").Limit(limit).Find(&out).Error
	return out, err
}
