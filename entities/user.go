package entities

import "time"

// Role values are stored verbatim on users and sessions. Case-sensitive.
const (
	RoleFarmer  = "Farmer"
	RoleOfficer = "Officer"
	RoleAdmin   = "Admin"
)

// Scope carries the caller's identity into every listing and report
// query. Farmer rows are restricted at the predicate level, Officer and
// Admin see everything.
type Scope struct {
	Role   string
	UserID uint
}

func (s Scope) FarmerOnly() bool { return s.Role == RoleFarmer && s.UserID != 0 }

// ScopeFor derives the query scope from a resolved identity.
func ScopeFor(u *User) Scope {
	if u == nil {
		return Scope{}
	}
	return Scope{Role: u.Role, UserID: u.ID}
}

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;size:100" json:"username"`
	Email        string `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string `json:"-"`
	Role         string `gorm:"size:20;index" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Session is the server-side record behind the opaque session cookie.
// CSRFToken is issued lazily on the first safe request.
type Session struct {
	ID        string `gorm:"primaryKey;size:64"`
	UserID    uint   `gorm:"index;not null"`
	Username  string `gorm:"size:100"`
	Role      string `gorm:"size:20"`
	CSRFToken string `gorm:"size:64"`
	Flash     string
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}
