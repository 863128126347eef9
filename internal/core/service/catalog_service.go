package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/herbalroots/wellness-hub/internal/core/domain"
	"github.com/herbalroots/wellness-hub/internal/core/ports"
)

type catalogService struct {
	repo  ports.CatalogRepository
	cache ports.CatalogCache
	log   zerolog.Logger
}

// NewCatalogService returns a CatalogService. cache may be nil.
func NewCatalogService(repo ports.CatalogRepository, cache ports.CatalogCache, log zerolog.Logger) ports.CatalogService {
	return &catalogService{repo: repo, cache: cache, log: log}
}

func (s *catalogService) Products(ctx context.Context) ([]domain.Product, error) {
	if s.cache == nil {
		return s.repo.ListProducts(ctx)
	}
	return s.cache.Products(ctx, s.repo.ListProducts)
}

func (s *catalogService) Symptoms(ctx context.Context) ([]domain.Symptom, error) {
	return s.repo.ListSymptoms(ctx)
}

func (s *catalogService) CreateSymptom(ctx context.Context, in ports.CreateSymptomInput) (*domain.Symptom, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if name == "" || category == "" {
		return nil, fmt.Errorf("%w: name and category are required", domain.ErrInvalidInput)
	}

	created, err := s.repo.CreateSymptom(ctx, &domain.Symptom{
		Name:                  name,
		Category:              category,
		RecommendedProductIDs: in.RecommendedProductIDs,
		EducationalSnippet:    in.EducationalSnippet,
		Ritual:                in.Ritual,
	})
	if err != nil {
		return nil, fmt.Errorf("create symptom: %w", err)
	}

	s.log.Info().Str("symptom_id", created.ID).Str("name", created.Name).Msg("symptom created")
	return created, nil
}

// Courses marks every course locked for guests.
func (s *catalogService) Courses(ctx context.Context, role domain.Role) ([]domain.Course, error) {
	courses, err := s.repo.ListCourses(ctx)
	if err != nil {
		return nil, err
	}
	locked := role == domain.RoleGuest || role == ""
	for i := range courses {
		courses[i].Locked = locked
	}
	return courses, nil
}
