package helper

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// IsDuplicateProfile reports whether err is the unique-index violation for
// (user_id, account_no). The duplicate check in the service layer is racy
// across concurrent sessions; the index is the backstop.
func IsDuplicateProfile(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation && pgErr.ConstraintName == "uidx_bank_profiles_owner_account"
	}
	return false
}
