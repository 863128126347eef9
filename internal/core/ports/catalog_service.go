package ports

import (
	"context"

	"github.com/herbalroots/wellness-hub/internal/core/domain"
)

// CatalogService serves the reference data.
type CatalogService interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Symptoms(ctx context.Context) ([]domain.Symptom, error)
	CreateSymptom(ctx context.Context, in CreateSymptomInput) (*domain.Symptom, error)
	Courses(ctx context.Context, role domain.Role) ([]domain.Course, error)
}

// CreateSymptomInput carries an admin-authored symptom.
type CreateSymptomInput struct {
	Name                  string
	Category              string
	RecommendedProductIDs []string
	EducationalSnippet    string
	Ritual                string
}

// AdminStats is the admin dashboard summary.
type AdminStats struct {
	TotalUsers     int64 `json:"totalUsers"`
	ActiveProducts int64 `json:"activeProducts"`
}

// AdminService backs the admin-only routes.
type AdminService interface {
	Stats(ctx context.Context) (*AdminStats, error)
	AssignAffiliateCode(ctx context.Context, whopUserID string) (*domain.User, error)
}

// AffiliateService backs the affiliate dashboard.
type AffiliateService interface {
	ProductLink(ctx context.Context, whopUserID, productID string) (string, error)
	Stats(ctx context.Context, whopUserID string) (*domain.AffiliateStats, error)
}
