package repository

import "agriyield/entities"

type YearProduction struct {
	Year       int     `json:"year"`
	Production float64 `json:"production"`
}

type CropProduction struct {
	CropName   string  `json:"crop_name"`
	Production float64 `json:"production"`
}

type CropSummary struct {
	Crop               string  `json:"crop"`
	TotalProduction    float64 `json:"total_production"`
	AvgYieldPerHectare float64 `json:"avg_yield_per_hectare"`
	TotalArea          float64 `json:"total_area"`
}

type DistrictSummary struct {
	DistrictID         uint    `json:"district_id"`
	TotalProduction    float64 `json:"total_production"`
	AvgYieldPerHectare float64 `json:"avg_yield_per_hectare"`
	TotalArea          float64 `json:"total_area"`
}

// AnalysisRepository is read-only. Every method applies the caller's
// scope as a query predicate, never as a post-filter.
type AnalysisRepository interface {
	TotalProduction(s entities.Scope) (float64, error)
	TotalArea(s entities.Scope) (float64, error)
	TotalRecords(s entities.Scope) (int64, error)
	TrendByYear(s entities.Scope, cropID uint) ([]YearProduction, error)
	CropComparison(s entities.Scope) ([]CropProduction, error)
	DistrictComparison(s entities.Scope, districtID uint) ([]CropProduction, error)
	HighestProducingCrop(s entities.Scope) (*CropProduction, error)
	LatestYearRecordCount(s entities.Scope) (int64, error)
	SummaryByYear(s entities.Scope) ([]YearProduction, error)
	SummaryByCrop(s entities.Scope) ([]CropSummary, error)
	SummaryByDistrict(s entities.Scope) ([]DistrictSummary, error)
	LatestRecords(s entities.Scope, limit int) ([]entities.YieldRecord, error)
}
