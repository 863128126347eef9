package service

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herbalroots/wellness-hub/internal/core/domain"
	"github.com/herbalroots/wellness-hub/internal/core/ports"
)

func TestCatalogService_ProductsThroughCache(t *testing.T) {
	repo := &stubCatalogRepo{products: testCatalog()}
	cache := &stubCache{}
	svc := NewCatalogService(repo, cache, zerolog.Nop())

	for i := 0; i < 3; i++ {
		products, err := svc.Products(context.Background())
		require.NoError(t, err)
		assert.Len(t, products, 3)
	}
	assert.Equal(t, 1, repo.listCalls)
	assert.Equal(t, 2, cache.hits)
}

func TestCatalogService_ProductsWithoutCache(t *testing.T) {
	repo := &stubCatalogRepo{products: testCatalog()}
	svc := NewCatalogService(repo, nil, zerolog.Nop())

	_, err := svc.Products(context.Background())
	require.NoError(t, err)
	_, err = svc.Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
}

func TestCatalogService_CreateSymptom(t *testing.T) {
	repo := &stubCatalogRepo{}
	svc := NewCatalogService(repo, nil, zerolog.Nop())

	s, err := svc.CreateSymptom(context.Background(), ports.CreateSymptomInput{
		Name: "  Stress ", Category: "Mind", RecommendedProductIDs: []string{"p1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "sym_1", s.ID)
	assert.Equal(t, "Stress", repo.created.Name)
	assert.Equal(t, []string{"p1"}, repo.created.RecommendedProductIDs)

	_, err = svc.CreateSymptom(context.Background(), ports.CreateSymptomInput{Name: " ", Category: "Mind"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCatalogService_CoursesLockedForGuests(t *testing.T) {
	repo := &stubCatalogRepo{courses: []domain.Course{{ID: "c1"}, {ID: "c2"}}}
	svc := NewCatalogService(repo, nil, zerolog.Nop())

	tests := []struct {
		role   domain.Role
		locked bool
	}{
		{domain.RoleGuest, true},
		{"", true},
		{domain.RoleMember, false},
		{domain.RoleAffiliate, false},
		{domain.RoleAdmin, false},
	}
	for _, tt := range tests {
		courses, err := svc.Courses(context.Background(), tt.role)
		require.NoError(t, err)
		for _, c := range courses {
			assert.Equal(t, tt.locked, c.Locked, "role %q", tt.role)
		}
	}
}

func TestAdminService_Stats(t *testing.T) {
	users := newMemUserRepo()
	users.byID["a"] = &domain.User{WhopUserID: "a"}
	users.byID["b"] = &domain.User{WhopUserID: "b"}
	svc := NewAdminService(users, &stubCatalogRepo{products: testCatalog()}, zerolog.Nop())

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(3), stats.ActiveProducts)
}

func TestAdminService_AssignAffiliateCode(t *testing.T) {
	users := newMemUserRepo()
	users.byID["user_1"] = &domain.User{WhopUserID: "user_1", Role: domain.RoleMember}
	svc := NewAdminService(users, &stubCatalogRepo{}, zerolog.Nop())

	u, err := svc.AssignAffiliateCode(context.Background(), "user_1")
	require.NoError(t, err)
	assert.Len(t, u.AffiliateCode, 8)
	assert.Equal(t, strings.ToUpper(u.AffiliateCode), u.AffiliateCode)
	assert.Equal(t, domain.RoleMember, u.Role)

	_, err = svc.AssignAffiliateCode(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = svc.AssignAffiliateCode(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAffiliateService_ProductLink(t *testing.T) {
	users := newMemUserRepo()
	users.byID["aff"] = &domain.User{WhopUserID: "aff", AffiliateCode: "ABCD1234"}
	users.byID["plain"] = &domain.User{WhopUserID: "plain"}
	catalog := NewCatalogService(&stubCatalogRepo{products: testCatalog()}, nil, zerolog.Nop())
	svc := NewAffiliateService(users, catalog, &stubConversions{}, "https://shop.example.com/product")

	link, err := svc.ProductLink(context.Background(), "aff", "p2")
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/product/p2?ref=ABCD1234", link)
	_, err = url.Parse(link)
	require.NoError(t, err)

	link, err = svc.ProductLink(context.Background(), "plain", "p2")
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/product/p2", link)

	link, err = svc.ProductLink(context.Background(), "never_synced", "p1")
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/product/p1", link)

	_, err = svc.ProductLink(context.Background(), "aff", "p9")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
