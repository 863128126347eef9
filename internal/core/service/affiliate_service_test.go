package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herbalroots/wellness-hub/internal/core/domain"
)

var statsNow = time.Date(2026, time.October, 22, 12, 0, 0, 0, time.UTC)

func newStatsService(t *testing.T, conversions *stubConversions) (*affiliateService, *memUserRepo) {
	t.Helper()
	users := newMemUserRepo()
	users.byID["aff"] = &domain.User{WhopUserID: "aff", Role: domain.RoleMember, AffiliateCode: "ABCD1234"}
	users.byID["plain"] = &domain.User{WhopUserID: "plain", Role: domain.RoleMember}
	catalog := NewCatalogService(&stubCatalogRepo{products: testCatalog()}, nil, zerolog.Nop())

	svc := NewAffiliateService(users, catalog, conversions, "https://shop.example.com/product").(*affiliateService)
	svc.now = fixedNow(statsNow)
	return svc, users
}

func TestAffiliateService_Stats(t *testing.T) {
	conversions := &stubConversions{byCode: map[string][]domain.Conversion{
		"ABCD1234": {
			{ProductID: "p1", Amount: 400, Commission: 100, Status: domain.ConversionPaid, CreatedAt: time.Date(2026, time.September, 20, 9, 0, 0, 0, time.UTC)},
			{ProductID: "p2", Amount: 200, Commission: 50, Status: domain.ConversionPaid, CreatedAt: time.Date(2026, time.October, 5, 9, 0, 0, 0, time.UTC)},
			{ProductID: "p2", Amount: 102, Commission: 25.5, Status: domain.ConversionPending, CreatedAt: time.Date(2026, time.October, 20, 9, 0, 0, 0, time.UTC)},
		},
	}}
	svc, _ := newStatsService(t, conversions)

	stats, err := svc.Stats(context.Background(), "aff")
	require.NoError(t, err)

	assert.Equal(t, []string{"ABCD1234"}, conversions.codes)
	assert.Equal(t, 175.5, stats.TotalEarnings)
	assert.Equal(t, 25.5, stats.PendingPayout)
	assert.Equal(t, 2, stats.RecentConversions)
	assert.Equal(t, []domain.RevenuePoint{
		{Date: "Oct 1", Amount: 100},
		{Date: "Oct 8", Amount: 150},
		{Date: "Oct 15", Amount: 150},
		{Date: "Oct 22", Amount: 175.5},
	}, stats.Revenue)
}

func TestAffiliateService_StatsWithoutCode(t *testing.T) {
	conversions := &stubConversions{}
	svc, _ := newStatsService(t, conversions)

	for _, id := range []string{"plain", "never_synced"} {
		stats, err := svc.Stats(context.Background(), id)
		require.NoError(t, err, id)
		assert.Zero(t, stats.TotalEarnings, id)
		assert.Zero(t, stats.PendingPayout, id)
		assert.Zero(t, stats.RecentConversions, id)
		require.Len(t, stats.Revenue, 4, id)
		assert.Equal(t, "Oct 22", stats.Revenue[3].Date, id)
	}
	assert.Empty(t, conversions.codes, "conversions are only read for affiliate codes")
}

func TestAffiliateService_StatsErrors(t *testing.T) {
	svc, users := newStatsService(t, &stubConversions{err: errUpstream})

	_, err := svc.Stats(context.Background(), "aff")
	assert.ErrorIs(t, err, errUpstream)

	users.findErr = errUpstream
	_, err = svc.Stats(context.Background(), "plain")
	assert.ErrorIs(t, err, errUpstream)
}

func TestComputeStats_IgnoresFutureConversions(t *testing.T) {
	stats := computeStats([]domain.Conversion{
		{Commission: 10, Status: domain.ConversionPending, CreatedAt: statsNow.Add(time.Hour)},
	}, statsNow)

	assert.Equal(t, 10.0, stats.TotalEarnings)
	assert.Zero(t, stats.RecentConversions)
	assert.Zero(t, stats.Revenue[3].Amount)
}
