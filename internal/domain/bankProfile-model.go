package domain

import "time"

// Account types a profile can be filed under.
const (
	AccountTypeSaving  = "Saving"
	AccountTypeSalary  = "Salary"
	AccountTypeDeposit = "Deposit"
	AccountTypeCurrent = "Current"
	AccountTypePPF     = "PPF"
	AccountTypeSukanya = "Sukanya"
	AccountTypeCredit  = "Credit"
)

type BankProfile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index;uniqueIndex:uidx_bank_profiles_owner_account" json:"user_id"`

	AccountNo      string `gorm:"type:varchar(50);not null;uniqueIndex:uidx_bank_profiles_owner_account" json:"account_no"`
	AccountType    string `gorm:"type:varchar(20);not null" json:"account_type"`
	ExternalUserID string `gorm:"type:varchar(100);not null" json:"external_user_id"`
	BankCode       string `gorm:"type:varchar(20);not null" json:"bank_code"`

	ProfilePassword string `gorm:"type:varchar(100)" json:"profile_password"`
	MobilePIN       string `gorm:"type:varchar(20)" json:"mobile_pin"`
	UPIPIN          string `gorm:"type:varchar(20)" json:"upi_pin"`
	ATMPIN          string `gorm:"type:varchar(20)" json:"atm_pin"`
	LoginPassword   string `gorm:"type:varchar(100)" json:"login_password"`
	MobileNumber    string `gorm:"type:varchar(20)" json:"mobile_number"`

	// hard deletes only: a removed account number must be addable again
	// without tripping the owner/account unique index
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
