package entities

import "time"

// Audit actions.
const (
	AuditInsert = "INSERT"
	AuditUpdate = "UPDATE"
	AuditDelete = "DELETE"
)

// AuditLog rows are append-only; nothing in the codebase updates or
// deletes them. Not consulted for authorization decisions.
type AuditLog struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Action   string `gorm:"size:10;not null" json:"action"`
	Entity   string `gorm:"size:50;not null" json:"entity"`
	UserID   *uint  `json:"user_id,omitempty"`
	RecordID *uint  `json:"record_id,omitempty"`
	Details  string `json:"details,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
