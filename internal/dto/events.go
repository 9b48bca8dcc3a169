package dto

// Vault lifecycle events published to Kafka.
type ProfileEvent struct {
	Event     string `json:"event"` // profile.created | profile.updated | profile.deleted
	UserID    uint   `json:"user_id"`
	ProfileID uint   `json:"profile_id"`
	BankCode  string `json:"bank_code"`
}

// VaultEmptyEvent fires once when an owner's last profile is removed.
type VaultEmptyEvent struct {
	Event  string `json:"event"` // vault.empty
	UserID uint   `json:"user_id"`
}

// UserDeletedEvent is consumed from the account service; the vault purges
// every profile belonging to the departing owner.
type UserDeletedEvent struct {
	Event  string `json:"event"`
	UserID uint   `json:"user_id"`
}
