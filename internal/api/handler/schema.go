package handler

import "github.com/herbalroots/wellness-hub/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type userResponse struct {
	User *domain.User `json:"user"`
}

type recommendRequest struct {
	Text     string   `json:"text"     validate:"max=2000"`
	Symptoms []string `json:"symptoms" validate:"max=20,dive,required,max=80"`
}

type createSymptomRequest struct {
	Name                  string   `json:"name"                  validate:"required,max=80"`
	Category              string   `json:"category"              validate:"required,max=80"`
	RecommendedProductIDs []string `json:"recommendedProductIds" validate:"max=20,dive,required"`
	EducationalSnippet    string   `json:"educationalSnippet"    validate:"max=2000"`
	Ritual                string   `json:"ritual"                validate:"max=2000"`
}

type linkResponse struct {
	URL string `json:"url"`
}
