package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/herbalroots/wellness-hub/internal/core/domain"
	"github.com/herbalroots/wellness-hub/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory user repository. Upsert mirrors the $set / $setOnInsert split of
// the Mongo implementation.
// ---------------------------------------------------------------------------

type memUserRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.User
	upserts   int
	upsertErr error
	findErr   error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: make(map[string]*domain.User)}
}

func (r *memUserRepo) UpsertByWhopID(_ context.Context, id string, u ports.ProfileUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts++
	if r.upsertErr != nil {
		return nil, r.upsertErr
	}

	existing, ok := r.byID[id]
	if !ok {
		existing = &domain.User{
			ID:         "oid_" + id,
			WhopUserID: id,
			Username:   domain.UnknownUsername,
			Metadata:   map[string]any{},
			CreatedAt:  u.SyncAt,
		}
		r.byID[id] = existing
	}
	if u.Profile != nil {
		existing.Username = u.Profile.Username
		existing.Email = u.Profile.Email
		existing.Avatar = u.Profile.Avatar
	}
	existing.Role = u.Role
	existing.LastSyncAt = u.SyncAt
	existing.UpdatedAt = u.SyncAt

	clone := *existing
	return &clone, nil
}

func (r *memUserRepo) FindByWhopID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) SetAffiliateCode(_ context.Context, id, code string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.AffiliateCode = code
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) Count(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

// ---------------------------------------------------------------------------
// Platform stubs
// ---------------------------------------------------------------------------

type stubProfiles struct {
	calls   int
	profile *domain.PlatformProfile
	err     error
}

func (s *stubProfiles) FetchProfile(_ context.Context, id string) (*domain.PlatformProfile, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	p := *s.profile
	p.ID = id
	return &p, nil
}

type stubAccess struct {
	calls     int
	companyID string
	check     *domain.AccessCheck
	err       error
}

func (s *stubAccess) CheckAccess(_ context.Context, companyID, _ string) (*domain.AccessCheck, error) {
	s.calls++
	s.companyID = companyID
	return s.check, s.err
}

var errUpstream = errors.New("whop: 503 service unavailable")

// ---------------------------------------------------------------------------
// Catalog stubs
// ---------------------------------------------------------------------------

type stubCatalogRepo struct {
	products  []domain.Product
	courses   []domain.Course
	created   *domain.Symptom
	listCalls int
	err       error
}

func (r *stubCatalogRepo) ListProducts(context.Context) ([]domain.Product, error) {
	r.listCalls++
	return r.products, r.err
}

func (r *stubCatalogRepo) CountProducts(context.Context) (int64, error) {
	return int64(len(r.products)), r.err
}

func (r *stubCatalogRepo) ListSymptoms(context.Context) ([]domain.Symptom, error) {
	return nil, r.err
}

func (r *stubCatalogRepo) CreateSymptom(_ context.Context, s *domain.Symptom) (*domain.Symptom, error) {
	if r.err != nil {
		return nil, r.err
	}
	clone := *s
	clone.ID = "sym_1"
	r.created = &clone
	return &clone, nil
}

func (r *stubCatalogRepo) ListCourses(context.Context) ([]domain.Course, error) {
	out := make([]domain.Course, len(r.courses))
	copy(out, r.courses)
	return out, r.err
}

type stubCache struct {
	hits int
	data []domain.Product
}

func (c *stubCache) Products(ctx context.Context, load func(context.Context) ([]domain.Product, error)) ([]domain.Product, error) {
	if c.data != nil {
		c.hits++
		return c.data, nil
	}
	p, err := load(ctx)
	if err == nil {
		c.data = p
	}
	return p, err
}

func (c *stubCache) Invalidate(context.Context) error {
	c.data = nil
	return nil
}

// ---------------------------------------------------------------------------
// Conversion stub
// ---------------------------------------------------------------------------

type stubConversions struct {
	byCode map[string][]domain.Conversion
	codes  []string
	err    error
}

func (s *stubConversions) ListByAffiliateCode(_ context.Context, code string) ([]domain.Conversion, error) {
	s.codes = append(s.codes, code)
	if s.err != nil {
		return nil, s.err
	}
	return s.byCode[code], nil
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
