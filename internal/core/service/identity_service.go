package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/herbalroots/wellness-hub/internal/core/domain"
	"github.com/herbalroots/wellness-hub/internal/core/ports"
	"github.com/herbalroots/wellness-hub/internal/pkg/metrics"
)

type identityService struct {
	users      ports.UserRepository
	profiles   ports.ProfileFetcher
	classifier *AccessClassifier
	now        func() time.Time
	log        zerolog.Logger
}

// NewIdentityService returns the IdentityService implementation.
func NewIdentityService(
	users ports.UserRepository,
	profiles ports.ProfileFetcher,
	classifier *AccessClassifier,
	log zerolog.Logger,
) ports.IdentityService {
	return &identityService{
		users:      users,
		profiles:   profiles,
		classifier: classifier,
		now:        func() time.Time { return time.Now().UTC() },
		log:        log,
	}
}

// Sync refreshes the local record from the platform. Profile and access
// lookups degrade to fallbacks; only a repository failure aborts.
func (s *identityService) Sync(ctx context.Context, whopUserID string) (*domain.User, error) {
	if whopUserID == "" {
		return nil, domain.ErrUnauthorized
	}

	profile := s.fetchProfile(ctx, whopUserID)
	cls := s.classifier.Classify(ctx, whopUserID, profile)

	update := ports.ProfileUpdate{Role: cls.Role, SyncAt: s.now()}
	if profile != nil {
		update.Profile = profileFields(profile)
	}

	user, err := s.users.UpsertByWhopID(ctx, whopUserID, update)
	if err != nil {
		return nil, fmt.Errorf("sync user: %w", err)
	}

	metrics.IdentitySyncTotal.WithLabelValues(string(cls.Role), string(cls.Source)).Inc()
	s.log.Info().
		Str("whop_user_id", whopUserID).
		Str("role", string(user.Role)).
		Str("role_source", string(cls.Source)).
		Bool("profile_fresh", profile != nil).
		Msg("user synced")

	return user, nil
}

// Current reads the record written by the last Sync.
func (s *identityService) Current(ctx context.Context, whopUserID string) (*domain.User, error) {
	if whopUserID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.users.FindByWhopID(ctx, whopUserID)
}

func (s *identityService) fetchProfile(ctx context.Context, whopUserID string) *domain.PlatformProfile {
	if s.profiles == nil {
		return nil
	}
	profile, err := s.profiles.FetchProfile(ctx, whopUserID)
	if err != nil {
		metrics.UpstreamErrorsTotal.WithLabelValues("profile").Inc()
		s.log.Warn().Err(err).Str("whop_user_id", whopUserID).Msg("profile fetch failed, keeping stored profile")
		return nil
	}
	return profile
}

func profileFields(p *domain.PlatformProfile) *ports.ProfileFields {
	username := p.Username
	if username == "" {
		username = domain.UnknownUsername
	}
	return &ports.ProfileFields{
		Username: username,
		Email:    p.Email,
		Avatar:   p.AvatarURL,
	}
}
