package whop

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/herbalroots/wellness-hub/internal/core/domain"
)

type accessPayload struct {
	HasAccess   bool   `json:"has_access"`
	AccessLevel string `json:"access_level"`
}

// CheckAccess asks the platform how userID relates to companyID.
func (c *Client) CheckAccess(ctx context.Context, companyID, userID string) (*domain.AccessCheck, error) {
	if companyID == "" {
		return nil, fmt.Errorf("check access: empty company id")
	}

	path := fmt.Sprintf("/users/%s/access/%s", url.PathEscape(userID), url.PathEscape(companyID))
	var p accessPayload
	if err := c.do(ctx, http.MethodGet, path, nil, &p); err != nil {
		return nil, fmt.Errorf("check access: %w", err)
	}

	return &domain.AccessCheck{
		Level:     domain.ParseAccessLevel(p.AccessLevel),
		HasAccess: p.HasAccess,
	}, nil
}
