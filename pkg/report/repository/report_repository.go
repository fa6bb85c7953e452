package repository

import "agriyield/entities"

// Filter carries the optional report filters; nil means "all".
type Filter struct {
	Year       *int
	CropID     *uint
	DistrictID *uint
	SeasonID   *uint
}

// Row is the denormalized full-report shape: one yield record joined
// with every reference name it points at. Season columns are null for
// records without a season.
type Row struct {
	YieldID              uint    `json:"yield_id"`
	CropID               uint    `json:"crop_id"`
	CropName             string  `json:"crop_name"`
	CropTypeName         string  `json:"crop_type_name"`
	Year                 int     `json:"year"`
	YieldAmount          float64 `json:"yield_amount"`
	AreaHarvested        float64 `json:"area_harvested"`
	Production           float64 `json:"production"`
	DistrictID           uint    `json:"district_id"`
	DistrictName         string  `json:"district_name"`
	ProvinceID           uint    `json:"province_id"`
	ProvinceName         string  `json:"province_name"`
	MunicipalityID       uint    `json:"municipality_id"`
	MunicipalityName     string  `json:"municipality_name"`
	MunicipalityTypeName string  `json:"municipality_type_name"`
	SeasonID             *uint   `json:"season_id"`
	SeasonName           *string `json:"season_name"`
}

type ReportRepository interface {
	FullReport(s entities.Scope, f Filter) ([]Row, error)
	// Years lists the distinct record years, newest first.
	Years(s entities.Scope) ([]int, error)
}
