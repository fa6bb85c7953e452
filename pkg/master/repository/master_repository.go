package repository

import (
	"errors"

	"agriyield/entities"
)

// Write-boundary errors the controllers translate into user messages.
var (
	ErrNotFound      = errors.New("record not found")
	ErrInUse         = errors.New("record is referenced and cannot be deleted")
	ErrDuplicateName = errors.New("name already exists")
)

// CropRow is the crop listing joined with its type name.
type CropRow struct {
	CropID       uint   `json:"crop_id"`
	CropName     string `json:"crop_name"`
	CropTypeName string `json:"crop_type_name"`
}

// MasterRepository manages the reference tables and the existence
// checks the yield validator depends on. Deletes are refused, not
// attempted, while the row is referenced elsewhere.
type MasterRepository interface {
	ListCrops() ([]CropRow, error)
	FindCrop(id uint) (*entities.Crop, error)
	CropNameTaken(name string, excludeID uint) (bool, error)
	CreateCrop(c *entities.Crop) error
	UpdateCrop(c *entities.Crop) error
	DeleteCrop(id uint) error

	ListCropTypes() ([]entities.CropType, error)
	FindCropType(id uint) (*entities.CropType, error)
	CropTypeNameTaken(name string, excludeID uint) (bool, error)
	CreateCropType(ct *entities.CropType) error
	UpdateCropType(ct *entities.CropType) error
	DeleteCropType(id uint) error

	ListSeasons() ([]entities.Season, error)
	FindSeason(id uint) (*entities.Season, error)
	SeasonNameTaken(name string, excludeID uint) (bool, error)
	CreateSeason(s *entities.Season) error
	UpdateSeason(s *entities.Season) error
	DeleteSeason(id uint) error

	ListDistricts() ([]entities.District, error)
	ListMunicipalities() ([]entities.Municipality, error)

	CropExists(id uint) (bool, error)
	DistrictExists(id uint) (bool, error)
	MunicipalityExists(id uint) (bool, error)
	SeasonExists(id uint) (bool, error)
}
