package domain

import "errors"

var ErrProductNotFound = errors.New("product not found")

// Product is a purchasable blend. ID is the only field the model is asked to return.
type Product struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	Price               float64  `json:"price"`
	Image               string   `json:"image"`
	Ingredients         []string `json:"ingredients"`
	Benefits            []string `json:"benefits"`
	Tags                []string `json:"tags"`
	AffiliateCommission float64  `json:"affiliateCommission,omitempty"`
}

// Symptom is read-only reference data shown in the recommendation tool.
type Symptom struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	Category              string    `json:"category"`
	RecommendedProductIDs []string  `json:"-"`
	RecommendedProducts   []Product `json:"recommendedProducts,omitempty"`
	EducationalSnippet    string    `json:"educationalSnippet,omitempty"`
	Ritual                string    `json:"ritual,omitempty"`
}

// Course is a learning hub entry. Locked is computed per caller.
type Course struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Instructor string `json:"instructor"`
	Thumbnail  string `json:"thumbnail"`
	Lessons    int    `json:"lessons"`
	Category   string `json:"category"`
	Locked     bool   `json:"locked"`
}

// Recommendation pairs a catalog product with model-written copy. Never persisted.
type Recommendation struct {
	Product    Product `json:"product"`
	WhyItWorks string  `json:"whyItWorks"`
	Ritual     string  `json:"ritual"`
}
