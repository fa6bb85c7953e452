package service

import (
	"agriyield/entities"
	"agriyield/pkg/analysis/repository"
)

// Chart-shaped payloads sent back to the frontend.
type TrendData struct {
	Years      []int     `json:"years"`
	Production []float64 `json:"production"`
}

type ComparisonData struct {
	Crops      []string  `json:"crops"`
	Production []float64 `json:"production"`
}

type HighestCrop struct {
	CropName        string  `json:"crop_name"`
	TotalProduction float64 `json:"total_production"`
}

type Summary struct {
	ByYear     []repository.YearProduction  `json:"by_year"`
	ByCrop     []repository.CropSummary     `json:"by_crop"`
	ByDistrict []repository.DistrictSummary `json:"by_district"`
}

type FarmerSummary struct {
	Records    int64   `json:"records"`
	Production float64 `json:"production"`
	Area       float64 `json:"area"`
	AvgYield   float64 `json:"avg_yield"`
}

type Dashboard struct {
	TotalProduction     float64                `json:"total_production"`
	TotalArea           float64                `json:"total_area"`
	AvgYieldPerHa       float64                `json:"avg_yield_per_ha"`
	TotalRecords        int64                  `json:"total_records"`
	HighestCrop         HighestCrop            `json:"highest_crop"`
	LatestYearDataCount int64                  `json:"latest_year_data_count"`
	YieldRecords        []entities.YieldRecord `json:"yield_records"`
	FarmerSummary       *FarmerSummary         `json:"farmer_summary,omitempty"`
}

type AnalysisService interface {
	AverageYield(s entities.Scope) (float64, error)
	Trend(s entities.Scope, cropID uint) (*TrendData, error)
	CropComparison(s entities.Scope) (*ComparisonData, error)
	DistrictAnalysis(s entities.Scope, districtID uint) (*ComparisonData, error)
	Summary(s entities.Scope) (*Summary, error)
	Dashboard(s entities.Scope) (*Dashboard, error)
}
