package dto

// GateRequest opens a password challenge for a sensitive action.
type GateRequest struct {
	Action    string `json:"action" validate:"required,oneof=view edit delete"`
	ProfileID uint   `json:"profile_id" validate:"required"`
}

type GateSubmit struct {
	Password string `json:"password" validate:"required"`
}

// GateResult reports the challenge outcome. GrantID is set only when granted.
type GateResult struct {
	Outcome   string `json:"outcome"` // password_set | granted | denied
	Action    string `json:"action,omitempty"`
	ProfileID uint   `json:"profile_id,omitempty"`
	GrantID   string `json:"grant_id,omitempty"`
	Notice    string `json:"notice,omitempty"`
}
