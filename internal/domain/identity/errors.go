package identity

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrEmailTaken         = errors.New("identity: email already registered")
	ErrInvalidCredentials = errors.New("identity: invalid credentials")
	ErrUserNotFound       = errors.New("identity: user not found")
	ErrRoleNotFound       = errors.New("identity: role not found")
)

// DisabledError reports a login attempt against a suspended account.
// SuspensionEnd is nil when the suspension is indefinite.
type DisabledError struct {
	SuspensionEnd *time.Time
}

func (e *DisabledError) Error() string {
	if e.SuspensionEnd == nil {
		return "identity: account disabled"
	}
	return fmt.Sprintf("identity: account disabled until %s", e.SuspensionEnd.Format(time.RFC3339))
}
