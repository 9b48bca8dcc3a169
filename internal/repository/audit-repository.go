package repository

import (
	"errors"

	"github.com/WinterOat/vault_service/internal/domain"
	"gorm.io/gorm"
)

type AuditRepository interface {
	Append(entry *domain.GateAudit) error
	ListByUser(userID uint, limit int) ([]domain.GateAudit, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Append(entry *domain.GateAudit) error {
	if entry == nil {
		return errors.New("nil audit entry")
	}
	return r.db.Create(entry).Error
}

func (r *auditRepository) ListByUser(userID uint, limit int) ([]domain.GateAudit, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []domain.GateAudit
	if err := r.db.Where("user_id = ?", userID).Order("id DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
