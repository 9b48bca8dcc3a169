package domain

import "time"

// Gate outcomes recorded per password submission or cancel.
const (
	GateOutcomePasswordSet = "password_set"
	GateOutcomeGranted     = "granted"
	GateOutcomeDenied      = "denied"
	GateOutcomeCancelled   = "cancelled"
)

type GateAudit struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Action    string    `gorm:"type:varchar(20);not null" json:"action"`
	ProfileID uint      `gorm:"index" json:"profile_id"`
	Outcome   string    `gorm:"type:varchar(20);not null" json:"outcome"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
