package ports

import (
	"context"

	"github.com/herbalroots/wellness-hub/internal/core/domain"
)

// ModelAnswer is the exact shape the model is asked to produce.
type ModelAnswer struct {
	ProductID  string `json:"productId"`
	WhyItWorks string `json:"whyItWorks"`
	Ritual     string `json:"ritual"`
}

// RecommendationModel sends a prompt to the language model and decodes the
// structured answer.
type RecommendationModel interface {
	Recommend(ctx context.Context, prompt string) (*ModelAnswer, error)
}

// RecommendInput is the DTO passed from the transport layer.
type RecommendInput struct {
	Text     string
	Symptoms []string
}

// RecommendationService picks at most one product for the given symptoms.
// A nil recommendation with a nil error means "no match".
type RecommendationService interface {
	Recommend(ctx context.Context, in RecommendInput, catalog []domain.Product) (*domain.Recommendation, error)
}
