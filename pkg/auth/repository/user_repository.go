package repository

import "agriyield/entities"

type UserRepository interface {
	// FindByLogin matches username OR email, case-sensitive. (nil, nil) when absent.
	FindByLogin(value string) (*entities.User, error)
	// FindByID returns (nil, nil) when the row no longer exists.
	FindByID(id uint) (*entities.User, error)
	TouchUpdatedAt(id uint) error
}
