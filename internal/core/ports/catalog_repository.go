package ports

import (
	"context"

	"github.com/herbalroots/wellness-hub/internal/core/domain"
)

// CatalogRepository reads the reference collections.
type CatalogRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	CountProducts(ctx context.Context) (int64, error)
	// ListSymptoms returns symptoms with RecommendedProducts resolved.
	ListSymptoms(ctx context.Context) ([]domain.Symptom, error)
	CreateSymptom(ctx context.Context, s *domain.Symptom) (*domain.Symptom, error)
	ListCourses(ctx context.Context) ([]domain.Course, error)
}

// CatalogCache is a read-through cache in front of ListProducts.
type CatalogCache interface {
	Products(ctx context.Context, load func(ctx context.Context) ([]domain.Product, error)) ([]domain.Product, error)
	Invalidate(ctx context.Context) error
}
