package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/herbalroots/wellness-hub/internal/core/domain"
	"github.com/herbalroots/wellness-hub/internal/core/ports"
	"github.com/herbalroots/wellness-hub/internal/pkg/metrics"
)

// Copy used when no model is configured.
const (
	offlineWhyItWorks = "The selected herbs are known for their calming properties."
	offlineRitual     = "Steep 1 tsp in 8oz hot water for 5 minutes. Breathe deeply while waiting."
)

// Copy used when the model call fails.
const (
	degradedWhyItWorks = "We are having trouble connecting to our herbalist AI, but this blend is our top recommendation."
	degradedRitual     = "Steep carefully and enjoy the warmth."
)

type recommendationService struct {
	model ports.RecommendationModel
	log   zerolog.Logger
}

// NewRecommendationService returns the orchestrator. A nil model selects the
// offline mode, which always answers with the first catalog product.
func NewRecommendationService(model ports.RecommendationModel, log zerolog.Logger) ports.RecommendationService {
	return &recommendationService{model: model, log: log}
}

// Recommend makes a single model call. The returned product is always taken
// from catalog; an id the catalog does not contain yields (nil, nil).
func (s *recommendationService) Recommend(ctx context.Context, in ports.RecommendInput, catalog []domain.Product) (*domain.Recommendation, error) {
	if len(catalog) == 0 {
		metrics.RecommendationsTotal.WithLabelValues("empty_catalog").Inc()
		return nil, nil
	}

	if s.model == nil {
		s.log.Debug().Msg("no model configured, using offline recommendation")
		metrics.RecommendationsTotal.WithLabelValues("offline").Inc()
		return &domain.Recommendation{
			Product:    catalog[0],
			WhyItWorks: offlineWhyItWorks,
			Ritual:     offlineRitual,
		}, nil
	}

	answer, err := s.model.Recommend(ctx, buildPrompt(in, catalog))
	if err != nil {
		s.log.Warn().Err(err).Msg("model call failed, using fallback recommendation")
		metrics.RecommendationsTotal.WithLabelValues("degraded").Inc()
		return &domain.Recommendation{
			Product:    catalog[0],
			WhyItWorks: degradedWhyItWorks,
			Ritual:     degradedRitual,
		}, nil
	}

	product, ok := findProduct(catalog, answer.ProductID)
	if !ok {
		s.log.Warn().Str("product_id", answer.ProductID).Msg("model picked a product outside the catalog")
		metrics.RecommendationsTotal.WithLabelValues("no_match").Inc()
		return nil, nil
	}

	metrics.RecommendationsTotal.WithLabelValues("model").Inc()
	return &domain.Recommendation{
		Product:    product,
		WhyItWorks: answer.WhyItWorks,
		Ritual:     answer.Ritual,
	}, nil
}

func findProduct(catalog []domain.Product, id string) (domain.Product, bool) {
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// buildPrompt embeds the selected symptoms, the free text and one line per
// catalog product. Only ids, names, ingredients and benefits are sent.
func buildPrompt(in ports.RecommendInput, catalog []domain.Product) string {
	lines := make([]string, 0, len(catalog))
	for _, p := range catalog {
		lines = append(lines, fmt.Sprintf("ID: %s, Name: %s, Ingredients: %s, Benefits: %s",
			p.ID, p.Name, strings.Join(p.Ingredients, ", "), strings.Join(p.Benefits, ", ")))
	}

	return fmt.Sprintf(`You are an expert herbalist for a Caribbean-inspired wellness brand.

User Symptoms: %s
Additional Context: %q

Available Products:
%s

Task:
1. Select the BEST single product from the list above that matches the symptoms.
2. Write a short "Why it works" explanation (max 2 sentences).
3. Create a unique, calming "Brewing Ritual" specific to these symptoms (max 2 sentences).

Return JSON with the fields productId, whyItWorks and ritual. productId must be one of the IDs above.`,
		strings.Join(in.Symptoms, ", "), in.Text, strings.Join(lines, "\n"))
}
