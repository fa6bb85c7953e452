package service

import (
	"errors"

	"agriyield/entities"
)

var (
	ErrNotFound  = errors.New("yield record not found")
	ErrForbidden = errors.New("not the owner of this record")
)

// YieldInput is the validated form payload. SeasonID 0 stores a null
// season reference; any other value must resolve.
type YieldInput struct {
	CropID         uint
	DistrictID     uint
	MunicipalityID uint
	SeasonID       uint
	Year           int
	AreaHarvested  float64
	YieldAmount    float64
	Production     float64
}

// YieldService validates and persists yield records. Validation errors
// come back as a list with no rows written; ownership gates Farmer
// edits and deletes.
type YieldService interface {
	Validate(in YieldInput) ([]string, error)
	Create(s entities.Scope, in YieldInput) (*entities.YieldRecord, []string, error)
	Update(s entities.Scope, id uint, in YieldInput) (*entities.YieldRecord, []string, error)
	Delete(s entities.Scope, id uint) error
}
