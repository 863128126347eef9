package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/herbalroots/wellness-hub/internal/core/domain"
	"github.com/herbalroots/wellness-hub/internal/core/ports"
	"github.com/herbalroots/wellness-hub/internal/pkg/metrics"
)

// RoleSource names the platform signal that decided a role.
type RoleSource string

const (
	SourceScoped   RoleSource = "scoped"
	SourceFlatFlag RoleSource = "flat_flag"
	SourceNone     RoleSource = "none"
)

// Classification is the outcome of AccessClassifier.Classify.
type Classification struct {
	Role   domain.Role
	Source RoleSource
	// Check is nil when the scoped lookup was skipped or failed.
	Check *domain.AccessCheck
}

// ResolveRole merges the scoped access check and the flat administrator flag.
// The flat flag is always consulted last and only promotes a caller the
// scoped check left without access.
//
//	scoped admin               -> admin
//	scoped customer/has access -> member
//	flat flag set              -> admin
//	otherwise                  -> guest
//
// A nil check means no scoped classification is available.
func ResolveRole(check *domain.AccessCheck, flatAdmin bool) (domain.Role, RoleSource) {
	if check != nil {
		switch {
		case check.Level == domain.AccessAdmin:
			return domain.RoleAdmin, SourceScoped
		case check.Level == domain.AccessCustomer || check.HasAccess:
			return domain.RoleMember, SourceScoped
		}
	}
	if flatAdmin {
		return domain.RoleAdmin, SourceFlatFlag
	}
	return domain.RoleGuest, SourceNone
}

// AccessClassifier decides a caller's role from the platform's signals.
type AccessClassifier struct {
	checker   ports.AccessChecker
	companyID string
	log       zerolog.Logger
}

// NewAccessClassifier returns a classifier scoped to companyID. An empty
// companyID disables the scoped lookup and leaves only the flat flag.
func NewAccessClassifier(checker ports.AccessChecker, companyID string, log zerolog.Logger) *AccessClassifier {
	return &AccessClassifier{checker: checker, companyID: companyID, log: log}
}

// Classify never fails. profile may be nil when the profile lookup failed.
func (c *AccessClassifier) Classify(ctx context.Context, userID string, profile *domain.PlatformProfile) Classification {
	check := c.scopedCheck(ctx, userID)

	flatAdmin := profile != nil && profile.IsAdmin
	role, source := ResolveRole(check, flatAdmin)
	metrics.RoleClassificationsTotal.WithLabelValues(string(role), string(source)).Inc()

	return Classification{Role: role, Source: source, Check: check}
}

func (c *AccessClassifier) scopedCheck(ctx context.Context, userID string) *domain.AccessCheck {
	if c.companyID == "" || c.checker == nil {
		return nil
	}

	check, err := c.checker.CheckAccess(ctx, c.companyID, userID)
	if err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues("access").Inc()
		c.log.Warn().Err(err).Str("whop_user_id", userID).Msg("access check failed, falling back to flat flag")
		return nil
	}
	return check
}
