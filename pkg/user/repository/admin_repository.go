package repository

import "agriyield/entities"

// UserListRow never carries the password hash.
type UserListRow struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	UpdatedAt string `json:"updated_at"`
}

type AdminUserRepository interface {
	List() ([]UserListRow, error)
	FindByID(id uint) (*entities.User, error)
	// Taken reports whether username or email is already claimed by a
	// different user than excludeID.
	Taken(username, email string, excludeID uint) (bool, error)
	Create(u *entities.User) error
	Update(u *entities.User) error
	Delete(id uint) error
}
