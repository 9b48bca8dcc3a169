package utils

// MaskAccountNumber redacts the middle of an account number for list views.
// Anything of 8 characters or fewer is returned as-is.
func MaskAccountNumber(accountNo string) string {
	if len(accountNo) <= 8 {
		return accountNo
	}
	return accountNo[:4] + "****" + accountNo[len(accountNo)-4:]
}
