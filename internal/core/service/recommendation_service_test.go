package service

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herbalroots/wellness-hub/internal/core/domain"
	"github.com/herbalroots/wellness-hub/internal/core/ports"
)

type stubModel struct {
	calls  int
	prompt string
	answer *ports.ModelAnswer
	err    error
}

func (m *stubModel) Recommend(_ context.Context, prompt string) (*ports.ModelAnswer, error) {
	m.calls++
	m.prompt = prompt
	return m.answer, m.err
}

func testCatalog() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "Calm Blend", Ingredients: []string{"Chamomile", "Lavender"}, Benefits: []string{"Sleep"}},
		{ID: "p2", Name: "Focus Tonic", Ingredients: []string{"Ginkgo"}, Benefits: []string{"Clarity", "Energy"}},
		{ID: "p3", Name: "Digest Ease", Ingredients: []string{"Ginger"}, Benefits: []string{"Digestion"}},
	}
}

var sleepInput = ports.RecommendInput{Text: "I wake up at 3am", Symptoms: []string{"Insomnia", "Anxiety"}}

func TestRecommend_ModelMatch(t *testing.T) {
	model := &stubModel{answer: &ports.ModelAnswer{ProductID: "p2", WhyItWorks: "Ginkgo sharpens focus.", Ritual: "Sip slowly."}}
	svc := NewRecommendationService(model, zerolog.Nop())

	rec, err := svc.Recommend(context.Background(), sleepInput, testCatalog())
	require.NoError(t, err)
	require.NotNil(t, rec)

	assert.Equal(t, 1, model.calls)
	assert.Equal(t, testCatalog()[1], rec.Product)
	assert.Equal(t, "Ginkgo sharpens focus.", rec.WhyItWorks)
	assert.Equal(t, "Sip slowly.", rec.Ritual)
}

func TestRecommend_UnknownProductIsNil(t *testing.T) {
	for _, id := range []string{"p9", "P2", " p2", ""} {
		model := &stubModel{answer: &ports.ModelAnswer{ProductID: id, WhyItWorks: "w", Ritual: "r"}}
		svc := NewRecommendationService(model, zerolog.Nop())

		rec, err := svc.Recommend(context.Background(), sleepInput, testCatalog())
		require.NoError(t, err)
		assert.Nil(t, rec, "id %q", id)
	}
}

func TestRecommend_OfflineIsDeterministic(t *testing.T) {
	svc := NewRecommendationService(nil, zerolog.Nop())

	for i := 0; i < 3; i++ {
		rec, err := svc.Recommend(context.Background(), sleepInput, testCatalog())
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, "p1", rec.Product.ID)
		assert.Equal(t, offlineWhyItWorks, rec.WhyItWorks)
		assert.Equal(t, offlineRitual, rec.Ritual)
	}
}

func TestRecommend_ModelErrorFallsBackToFirstProduct(t *testing.T) {
	model := &stubModel{err: errUpstream}
	svc := NewRecommendationService(model, zerolog.Nop())

	rec, err := svc.Recommend(context.Background(), sleepInput, testCatalog())
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 1, model.calls)
	assert.Equal(t, "p1", rec.Product.ID)
	assert.Equal(t, degradedWhyItWorks, rec.WhyItWorks)
	assert.Equal(t, degradedRitual, rec.Ritual)
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	model := &stubModel{answer: &ports.ModelAnswer{ProductID: "p1"}}
	for _, svc := range []ports.RecommendationService{
		NewRecommendationService(model, zerolog.Nop()),
		NewRecommendationService(nil, zerolog.Nop()),
	} {
		rec, err := svc.Recommend(context.Background(), sleepInput, nil)
		require.NoError(t, err)
		assert.Nil(t, rec)
	}
	assert.Equal(t, 0, model.calls)
}

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt(sleepInput, testCatalog())

	assert.Contains(t, prompt, "Insomnia, Anxiety")
	assert.Contains(t, prompt, `"I wake up at 3am"`)
	assert.Contains(t, prompt, "ID: p1, Name: Calm Blend, Ingredients: Chamomile, Lavender, Benefits: Sleep")
	assert.Contains(t, prompt, "ID: p2, Name: Focus Tonic, Ingredients: Ginkgo, Benefits: Clarity, Energy")
	assert.Equal(t, 3, strings.Count(prompt, "ID: p"))
	assert.Contains(t, prompt, "productId")
}
