package auth

import (
	"time"

	"github.com/cartcloud/backend/internal/domain/model"
)

// Strategy issues and verifies bearer tokens carrying user identity and role.
type Strategy interface {
	IssueToken(userID int64, role model.Role) (string, error)
	ParseToken(token string) (int64, model.Role, error)
	Name() string
}

// Options tune token issuance.
type Options struct {
	TTL time.Duration
}
