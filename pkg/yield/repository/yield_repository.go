package repository

import "agriyield/entities"

type YieldRepository interface {
	Create(rec *entities.YieldRecord) error
	Update(rec *entities.YieldRecord) error
	Delete(id uint) error
	// FindByID returns (nil, nil) when the record does not exist.
	FindByID(id uint) (*entities.YieldRecord, error)
}
