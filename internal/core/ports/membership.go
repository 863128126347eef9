package ports

import (
	"context"
	"net/http"

	"github.com/herbalroots/wellness-hub/internal/core/domain"
)

// TokenVerifier validates the identity token carried in the request headers
// and returns the platform user id. The whole header set is passed because
// verification may depend on more than the token header itself.
type TokenVerifier interface {
	Verify(ctx context.Context, headers http.Header) (string, error)
}

// ProfileFetcher retrieves the current platform profile for a user.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, userID string) (*domain.PlatformProfile, error)
}

// AccessChecker looks up a user's access level scoped to a company.
type AccessChecker interface {
	CheckAccess(ctx context.Context, companyID, userID string) (*domain.AccessCheck, error)
}
