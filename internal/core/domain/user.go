package domain

import (
	"errors"
	"time"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrUserNotFound = errors.New("user not found")
	ErrForbidden    = errors.New("access forbidden")
	ErrInvalidInput = errors.New("invalid input")
)

// User is the local record of a Whop member, keyed by WhopUserID.
type User struct {
	ID            string         `json:"id"`
	WhopUserID    string         `json:"whopUserId"`
	Username      string         `json:"username"`
	Email         string         `json:"email,omitempty"`
	Avatar        string         `json:"avatar,omitempty"`
	Role          Role           `json:"role"`
	AffiliateCode string         `json:"affiliateCode,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	LastSyncAt    time.Time      `json:"lastSyncAt"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// UnknownUsername is stored when the platform returns no username.
const UnknownUsername = "Unknown"

// PlatformProfile is the membership platform's view of a user.
type PlatformProfile struct {
	ID        string
	Username  string
	Email     string
	AvatarURL string
	// IsAdmin is the flat, organization-independent administrator flag.
	IsAdmin bool
}

// EffectiveRole is the role used for authorization. Members who hold an
// affiliate code act as affiliates; the stored role stays whatever the last
// sync decided.
func (u *User) EffectiveRole() Role {
	if u.Role == RoleMember && u.AffiliateCode != "" {
		return RoleAffiliate
	}
	return u.Role
}
