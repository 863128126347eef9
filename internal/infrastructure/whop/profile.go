package whop

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/herbalroots/wellness-hub/internal/core/domain"
)

type userPayload struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	ProfilePicURL  string `json:"profile_pic_url"`
	ProfilePicture *struct {
		URL string `json:"url"`
	} `json:"profile_picture"`
	IsAdmin bool `json:"is_admin"`
}

func (p *userPayload) toDomain(requestedID string) *domain.PlatformProfile {
	avatar := p.ProfilePicURL
	if avatar == "" && p.ProfilePicture != nil {
		avatar = p.ProfilePicture.URL
	}
	id := p.ID
	if id == "" {
		id = requestedID
	}
	return &domain.PlatformProfile{
		ID:        id,
		Username:  p.Username,
		Email:     p.Email,
		AvatarURL: avatar,
		IsAdmin:   p.IsAdmin,
	}
}

// profileLookup is one way of asking the platform for a user.
type profileLookup struct {
	name  string
	fetch func(ctx context.Context, userID string) (*userPayload, error)
}

// profileLookups is the fallback order: bare identifier first, then the
// structured lookup.
func (c *Client) profileLookups() []profileLookup {
	return []profileLookup{
		{name: "by_id", fetch: c.userByID},
		{name: "lookup", fetch: c.userByLookup},
	}
}

func (c *Client) userByID(ctx context.Context, userID string) (*userPayload, error) {
	var p userPayload
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) userByLookup(ctx context.Context, userID string) (*userPayload, error) {
	var p userPayload
	if err := c.do(ctx, http.MethodPost, "/users/lookup", map[string]string{"id": userID}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// FetchProfile tries each lookup in order and returns the first success.
// When all fail the joined error is returned.
func (c *Client) FetchProfile(ctx context.Context, userID string) (*domain.PlatformProfile, error) {
	var errs []error
	for _, l := range c.profileLookups() {
		p, err := l.fetch(ctx, userID)
		if err == nil {
			return p.toDomain(userID), nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", l.name, err))
		if ctx.Err() != nil {
			break
		}
	}
	return nil, fmt.Errorf("fetch profile %s: %w", userID, errors.Join(errs...))
}
