package ports

import (
	"context"
	"time"

	"github.com/herbalroots/wellness-hub/internal/core/domain"
)

// ProfileUpdate carries the platform-owned fields written on every sync.
// A nil Profile leaves username, email and avatar untouched on existing records.
type ProfileUpdate struct {
	Profile *ProfileFields
	Role    domain.Role
	SyncAt  time.Time
}

// ProfileFields are overwritten as a unit, never merged.
type ProfileFields struct {
	Username string
	Email    string
	Avatar   string
}

// UserRepository persists local user records keyed by the Whop user id.
type UserRepository interface {
	// UpsertByWhopID atomically creates or updates the record and returns the
	// post-update document, including fields this call did not touch.
	UpsertByWhopID(ctx context.Context, whopUserID string, update ProfileUpdate) (*domain.User, error)
	FindByWhopID(ctx context.Context, whopUserID string) (*domain.User, error)
	SetAffiliateCode(ctx context.Context, whopUserID, code string) (*domain.User, error)
	Count(ctx context.Context) (int64, error)
}
