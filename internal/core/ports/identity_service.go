package ports

import (
	"context"

	"github.com/herbalroots/wellness-hub/internal/core/domain"
)

// IdentityService syncs and reads back the caller's local record.
type IdentityService interface {
	Sync(ctx context.Context, whopUserID string) (*domain.User, error)
	Current(ctx context.Context, whopUserID string) (*domain.User, error)
}
