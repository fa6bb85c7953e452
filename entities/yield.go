package entities

import "time"

// YieldRecord is one observed crop yield for a place/season/year.
// Amounts are non-negative, year within [1900, current year]; the
// yield service validates before any write reaches gorm.
type YieldRecord struct {
	YieldID        uint    `gorm:"primaryKey" json:"yield_id"`
	CropID         uint    `gorm:"index;not null" json:"crop_id"`
	SeasonID       *uint   `gorm:"index" json:"season_id"`
	Year           int     `gorm:"index;not null" json:"year"`
	YieldAmount    float64 `gorm:"not null" json:"yield_amount"`
	AreaHarvested  float64 `gorm:"not null" json:"area_harvested"`
	Production     float64 `gorm:"not null" json:"production"`
	DistrictID     uint    `gorm:"index;not null" json:"district_id"`
	MunicipalityID uint    `gorm:"index;not null" json:"municipality_id"`

	CreatedBy *uint     `gorm:"index" json:"created_by,omitempty"`
	UpdatedBy *uint     `json:"updated_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
