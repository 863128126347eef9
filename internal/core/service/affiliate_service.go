package service

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/herbalroots/wellness-hub/internal/core/domain"
	"github.com/herbalroots/wellness-hub/internal/core/ports"
)

const (
	recentWindow   = 30 * 24 * time.Hour
	revenueBuckets = 4
	revenueStep    = 7 * 24 * time.Hour
)

type affiliateService struct {
	users       ports.UserRepository
	catalog     ports.CatalogService
	conversions ports.ConversionRepository
	shopBaseURL string
	now         func() time.Time
}

func NewAffiliateService(users ports.UserRepository, catalog ports.CatalogService, conversions ports.ConversionRepository, shopBaseURL string) ports.AffiliateService {
	if !strings.HasSuffix(shopBaseURL, "/") {
		shopBaseURL += "/"
	}
	return &affiliateService{
		users:       users,
		catalog:     catalog,
		conversions: conversions,
		shopBaseURL: shopBaseURL,
		now:         time.Now,
	}
}

// ProductLink returns the shop URL for productID, tagged with the caller's
// affiliate code when they have one.
func (s *affiliateService) ProductLink(ctx context.Context, whopUserID, productID string) (string, error) {
	products, err := s.catalog.Products(ctx)
	if err != nil {
		return "", err
	}
	if _, ok := findProduct(products, productID); !ok {
		return "", domain.ErrProductNotFound
	}

	link := s.shopBaseURL + url.PathEscape(productID)

	user, err := s.users.FindByWhopID(ctx, whopUserID)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return link, nil
	case err != nil:
		return "", err
	}
	if user.AffiliateCode == "" {
		return link, nil
	}
	return link + "?ref=" + url.QueryEscape(user.AffiliateCode), nil
}

// Stats summarizes the caller's attributed conversions. Callers without an
// affiliate code get zeroed stats.
func (s *affiliateService) Stats(ctx context.Context, whopUserID string) (*domain.AffiliateStats, error) {
	now := s.now()

	user, err := s.users.FindByWhopID(ctx, whopUserID)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return computeStats(nil, now), nil
	case err != nil:
		return nil, err
	}
	if user.AffiliateCode == "" {
		return computeStats(nil, now), nil
	}

	conversions, err := s.conversions.ListByAffiliateCode(ctx, user.AffiliateCode)
	if err != nil {
		return nil, err
	}
	return computeStats(conversions, now), nil
}

// computeStats folds conversions into dashboard totals. Revenue holds
// cumulative commission at weekly points ending at now, oldest first.
func computeStats(conversions []domain.Conversion, now time.Time) *domain.AffiliateStats {
	stats := &domain.AffiliateStats{Revenue: make([]domain.RevenuePoint, revenueBuckets)}

	for i := range stats.Revenue {
		at := now.Add(-time.Duration(revenueBuckets-1-i) * revenueStep)
		stats.Revenue[i].Date = at.Format("Jan 2")
	}

	for _, c := range conversions {
		stats.TotalEarnings += c.Commission
		if c.Status == domain.ConversionPending {
			stats.PendingPayout += c.Commission
		}
		if !c.CreatedAt.Before(now.Add(-recentWindow)) && !c.CreatedAt.After(now) {
			stats.RecentConversions++
		}
		for i := range stats.Revenue {
			at := now.Add(-time.Duration(revenueBuckets-1-i) * revenueStep)
			if !c.CreatedAt.After(at) {
				stats.Revenue[i].Amount += c.Commission
			}
		}
	}
	return stats
}
