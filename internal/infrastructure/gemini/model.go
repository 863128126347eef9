// Package gemini adapts the Gemini API to ports.RecommendationModel.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/herbalroots/wellness-hub/internal/core/ports"
	"github.com/herbalroots/wellness-hub/internal/pkg/metrics"
)

const DefaultModel = "gemini-2.5-flash"

var errEmptyResponse = errors.New("model returned no text")

// answerSchema pins the structured output to the three recommendation fields.
var answerSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"productId":  {Type: genai.TypeString, Description: "ID of the chosen product, copied from the catalog."},
		"whyItWorks": {Type: genai.TypeString, Description: "One sentence on why the herbs help."},
		"ritual":     {Type: genai.TypeString, Description: "A short mindful preparation ritual."},
	},
	Required: []string{"productId", "whyItWorks", "ritual"},
}

type Config struct {
	APIKey string
	Model  string
}

// Model calls Gemini once per recommendation. There is no retry.
type Model struct {
	client *genai.Client
	model  string
}

func New(ctx context.Context, cfg Config) (*Model, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini: api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Model{client: client, model: model}, nil
}

func (m *Model) Recommend(ctx context.Context, prompt string) (*ports.ModelAnswer, error) {
	start := time.Now()
	resp, err := m.client.Models.GenerateContent(ctx, m.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   answerSchema,
	})
	metrics.ModelCallDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}

	return decodeAnswer(responseText(resp))
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range c.Content.Parts {
		if p != nil {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}

func decodeAnswer(text string) (*ports.ModelAnswer, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errEmptyResponse
	}
	raw, err := extractJSON(text)
	if err != nil {
		return nil, err
	}

	var a ports.ModelAnswer
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return nil, fmt.Errorf("decode model answer: %w", err)
	}
	return &a, nil
}

// extractJSON returns the text between the first '{' and the last '}'.
// Structured output is usually bare JSON but may arrive fenced.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}
