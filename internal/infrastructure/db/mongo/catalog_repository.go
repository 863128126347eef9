package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/herbalroots/wellness-hub/internal/core/domain"
)

const (
	collectionProducts = "products"
	collectionSymptoms = "symptoms"
	collectionCourses  = "courses"
)

// CatalogRepository reads the reference collections seeded alongside the app.
type CatalogRepository struct {
	products *mongo.Collection
	symptoms *mongo.Collection
	courses  *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{
		products: db.Collection(collectionProducts),
		symptoms: db.Collection(collectionSymptoms),
		courses:  db.Collection(collectionCourses),
	}
}

type mongoProduct struct {
	ID                  primitive.ObjectID `bson:"_id"`
	Name                string             `bson:"name"`
	Description         string             `bson:"description"`
	Price               float64            `bson:"price"`
	Image               string             `bson:"image"`
	Ingredients         []string           `bson:"ingredients"`
	Benefits            []string           `bson:"benefits"`
	Tags                []string           `bson:"tags"`
	AffiliateCommission float64            `bson:"affiliateCommission"`
}

func (p mongoProduct) toDomain() domain.Product {
	return domain.Product{
		ID:                  p.ID.Hex(),
		Name:                p.Name,
		Description:         p.Description,
		Price:               p.Price,
		Image:               p.Image,
		Ingredients:         nonNil(p.Ingredients),
		Benefits:            nonNil(p.Benefits),
		Tags:                nonNil(p.Tags),
		AffiliateCommission: p.AffiliateCommission,
	}
}

type mongoSymptom struct {
	ID                    primitive.ObjectID   `bson:"_id,omitempty"`
	Name                  string               `bson:"name"`
	Category              string               `bson:"category"`
	RecommendedProductIDs []primitive.ObjectID `bson:"recommendedProductIds"`
	EducationalSnippet    string               `bson:"educationalSnippet,omitempty"`
	Ritual                string               `bson:"ritual,omitempty"`
	// Filled by $lookup, never stored.
	RecommendedProducts []mongoProduct `bson:"recommendedProducts,omitempty"`
}

type mongoCourse struct {
	ID         primitive.ObjectID `bson:"_id"`
	Title      string             `bson:"title"`
	Instructor string             `bson:"instructor"`
	Thumbnail  string             `bson:"thumbnail"`
	Lessons    int                `bson:"lessons"`
	Category   string             `bson:"category"`
}

// ListProducts returns the catalog in insertion order, which is the order the
// recommendation fallback relies on.
func (r *CatalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.products.Find(ctx, bson.M{}, sortByID())
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	var docs []mongoProduct
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}

	out := make([]domain.Product, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *CatalogRepository) CountProducts(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.products.CountDocuments(ctx, bson.M{})
}

// ListSymptoms resolves recommendedProductIds against the products collection.
func (r *CatalogRepository) ListSymptoms(ctx context.Context) ([]domain.Symptom, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionProducts},
			{Key: "localField", Value: "recommendedProductIds"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "recommendedProducts"},
		}}},
	}

	cur, err := r.symptoms.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate symptoms: %w", err)
	}
	var docs []mongoSymptom
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode symptoms: %w", err)
	}

	out := make([]domain.Symptom, 0, len(docs))
	for _, d := range docs {
		out = append(out, symptomToDomain(d))
	}
	return out, nil
}

func (r *CatalogRepository) CreateSymptom(ctx context.Context, s *domain.Symptom) (*domain.Symptom, error) {
	ids := make([]primitive.ObjectID, 0, len(s.RecommendedProductIDs))
	for _, raw := range s.RecommendedProductIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: product id %q", domain.ErrInvalidInput, raw)
		}
		ids = append(ids, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoSymptom{
		Name:                  s.Name,
		Category:              s.Category,
		RecommendedProductIDs: ids,
		EducationalSnippet:    s.EducationalSnippet,
		Ritual:                s.Ritual,
	}
	res, err := r.symptoms.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert symptom: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}

	created := symptomToDomain(doc)
	return &created, nil
}

func (r *CatalogRepository) ListCourses(ctx context.Context) ([]domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.courses.Find(ctx, bson.M{}, sortByID())
	if err != nil {
		return nil, fmt.Errorf("find courses: %w", err)
	}
	var docs []mongoCourse
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode courses: %w", err)
	}

	out := make([]domain.Course, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.Course{
			ID:         d.ID.Hex(),
			Title:      d.Title,
			Instructor: d.Instructor,
			Thumbnail:  d.Thumbnail,
			Lessons:    d.Lessons,
			Category:   d.Category,
		})
	}
	return out, nil
}

// EnsureIndexes creates the lookup indexes on the reference collections.
func (r *CatalogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.symptoms.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}},
	})
	return err
}

func symptomToDomain(d mongoSymptom) domain.Symptom {
	ids := make([]string, 0, len(d.RecommendedProductIDs))
	for _, id := range d.RecommendedProductIDs {
		ids = append(ids, id.Hex())
	}
	var products []domain.Product
	for _, p := range d.RecommendedProducts {
		products = append(products, p.toDomain())
	}
	return domain.Symptom{
		ID:                    d.ID.Hex(),
		Name:                  d.Name,
		Category:              d.Category,
		RecommendedProductIDs: ids,
		RecommendedProducts:   products,
		EducationalSnippet:    d.EducationalSnippet,
		Ritual:                d.Ritual,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func sortByID() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
}
