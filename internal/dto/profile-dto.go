package dto

// ProfileInput is the editor draft for both add and edit.
type ProfileInput struct {
	AccountNo      string `json:"account_no" validate:"required"`
	AccountType    string `json:"account_type" validate:"required,oneof=Saving Salary Deposit Current PPF Sukanya Credit"`
	ExternalUserID string `json:"external_user_id" validate:"required"`
	BankCode       string `json:"bank_code" validate:"required,oneof=SCB KTB KBANK BBL BAY TTB GSB BAAC"`

	ProfilePassword string `json:"profile_password,omitempty"`
	MobilePIN       string `json:"mobile_pin,omitempty"`
	UPIPIN          string `json:"upi_pin,omitempty"`
	ATMPIN          string `json:"atm_pin,omitempty"`
	LoginPassword   string `json:"login_password,omitempty"`
	MobileNumber    string `json:"mobile_number,omitempty"`
}

// ProfileSummary is the masked card shown in the list view.
type ProfileSummary struct {
	ID              uint   `json:"id"`
	MaskedAccountNo string `json:"masked_account_no"`
	AccountType     string `json:"account_type"`
	BankCode        string `json:"bank_code"`
	ExternalUserID  string `json:"external_user_id"`
}

// ProfileDetail is the full record, only reachable through a VIEW grant.
type ProfileDetail struct {
	ID              uint   `json:"id"`
	AccountNo       string `json:"account_no"`
	AccountType     string `json:"account_type"`
	ExternalUserID  string `json:"external_user_id"`
	BankCode        string `json:"bank_code"`
	ProfilePassword string `json:"profile_password"`
	MobilePIN       string `json:"mobile_pin"`
	UPIPIN          string `json:"upi_pin"`
	ATMPIN          string `json:"atm_pin"`
	LoginPassword   string `json:"login_password"`
	MobileNumber    string `json:"mobile_number"`
}

type ProfileListResponse struct {
	Profiles           []ProfileSummary `json:"profiles"`
	Empty              bool             `json:"empty"`
	BiometricAvailable bool             `json:"biometric_available"`
}
