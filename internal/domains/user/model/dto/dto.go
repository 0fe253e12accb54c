package dto

import (
	"time"
)

// UpdateLastLoginRequest is the change written after a successful login.
type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login"`
}
