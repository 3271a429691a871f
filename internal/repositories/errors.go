package repositories

import "strings"

// isUniqueViolation detects unique constraint failures across the supported
// drivers. Postgres reports SQLSTATE 23505, sqlite reports a UNIQUE
// constraint message.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") ||
		strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
