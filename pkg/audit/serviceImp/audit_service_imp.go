package serviceImp

import (
	"log"

	"gorm.io/gorm"

	"agriyield/entities"
	"agriyield/pkg/audit/service"
)

type auditSvc struct{ db *gorm.DB }

func New(db *gorm.DB) service.AuditService { return &auditSvc{db} }

func (s *auditSvc) Log(action, entity string, userID, recordID *uint, details string) {
	row := &entities.AuditLog{Action: action, Entity: entity, UserID: userID, RecordID: recordID, Details: details}
	if err := s.db.Create(row).Error; err != nil {
		log.Printf("[audit] persist failed: %v", err)
	}
	log.Printf("[audit] action=%s entity=%s user_id=%v record_id=%v details=%s",
		action, entity, deref(userID), deref(recordID), details)
}

func deref(p *uint) any {
	if p == nil {
		return "nil"
	}
	return *p
}
