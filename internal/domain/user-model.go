package domain

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string  `json:"-"`
	DisplayName  string  `json:"display_name"`
	Phone        *string `json:"phone,omitempty"`
	Status       string  `gorm:"type:varchar(20);not null;default:active" json:"status"`
}
