package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/herbalroots/wellness-hub/internal/core/domain"
	"github.com/herbalroots/wellness-hub/internal/core/ports"
)

type adminService struct {
	users   ports.UserRepository
	catalog ports.CatalogRepository
	newCode func() string
	log     zerolog.Logger
}

func NewAdminService(users ports.UserRepository, catalog ports.CatalogRepository, log zerolog.Logger) ports.AdminService {
	return &adminService{users: users, catalog: catalog, newCode: affiliateCode, log: log}
}

func (s *adminService) Stats(ctx context.Context) (*ports.AdminStats, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	products, err := s.catalog.CountProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	return &ports.AdminStats{TotalUsers: users, ActiveProducts: products}, nil
}

// AssignAffiliateCode gives an existing user a fresh referral code. The role
// is left alone; it is owned by the identity sync.
func (s *adminService) AssignAffiliateCode(ctx context.Context, whopUserID string) (*domain.User, error) {
	if whopUserID == "" {
		return nil, fmt.Errorf("%w: whop user id is required", domain.ErrInvalidInput)
	}

	user, err := s.users.SetAffiliateCode(ctx, whopUserID, s.newCode())
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("whop_user_id", whopUserID).Str("affiliate_code", user.AffiliateCode).Msg("affiliate code assigned")
	return user, nil
}

// affiliateCode returns 8 upper-case hex characters.
func affiliateCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
