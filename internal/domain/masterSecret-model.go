package domain

import "time"

// MasterSecret is the single app-wide master password record.
// Only the bcrypt digest is stored, never the plaintext.
type MasterSecret struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Digest    string    `gorm:"type:varchar(100);not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
