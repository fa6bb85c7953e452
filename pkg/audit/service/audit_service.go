package service

// AuditService records who changed what. Append-only; failures to
// record are logged, never surfaced to the acting request.
type AuditService interface {
	Log(action, entity string, userID, recordID *uint, details string)
}
