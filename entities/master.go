package entities

import "time"

// Reference/lookup tables. Display names are unique case-insensitively;
// the repositories enforce that on write, the unique index backs it up.

type Country struct {
	CountryID   uint   `gorm:"primaryKey" json:"country_id"`
	CountryName string `gorm:"size:100;not null" json:"country_name"`
}

type Province struct {
	ProvinceID   uint   `gorm:"primaryKey" json:"province_id"`
	CountryID    uint   `gorm:"index;not null" json:"country_id"`
	ProvinceName string `gorm:"size:100;not null" json:"province_name"`
}

type District struct {
	DistrictID   uint   `gorm:"primaryKey" json:"district_id"`
	ProvinceID   uint   `gorm:"index;not null" json:"province_id"`
	DistrictName string `gorm:"size:100;not null" json:"district_name"`
}

type MunicipalityType struct {
	MunicipalityTypeID   uint   `gorm:"primaryKey" json:"municipality_type_id"`
	MunicipalityTypeName string `gorm:"size:500;not null" json:"municipality_type_name"`
}

type Municipality struct {
	MunicipalityID     uint   `gorm:"primaryKey" json:"municipality_id"`
	MunicipalityTypeID uint   `gorm:"index;not null" json:"municipality_type_id"`
	DistrictID         uint   `gorm:"index;not null" json:"district_id"`
	MunicipalityName   string `gorm:"size:500;not null" json:"municipality_name"`
}

type Season struct {
	SeasonID   uint   `gorm:"primaryKey" json:"season_id"`
	SeasonName string `gorm:"uniqueIndex;size:50;not null" json:"season_name"`
}

type CropType struct {
	CropTypeID   uint   `gorm:"primaryKey" json:"crop_type_id"`
	CropTypeName string `gorm:"uniqueIndex;size:100;not null" json:"crop_type_name"`
}

type Crop struct {
	CropID     uint   `gorm:"primaryKey" json:"crop_id"`
	CropName   string `gorm:"uniqueIndex;size:100;not null" json:"crop_name"`
	CropTypeID uint   `gorm:"index;not null" json:"crop_type_id"`

	CreatedBy *uint     `json:"created_by,omitempty"`
	UpdatedBy *uint     `json:"updated_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
