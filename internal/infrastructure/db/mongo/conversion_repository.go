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

const collectionConversions = "conversions"

// ConversionRepository reads shop orders attributed to affiliate codes.
// The shop integration owns writes to the collection.
type ConversionRepository struct {
	conversions *mongo.Collection
}

func NewConversionRepository(db *mongo.Database) *ConversionRepository {
	return &ConversionRepository{conversions: db.Collection(collectionConversions)}
}

type mongoConversion struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	AffiliateCode string             `bson:"affiliateCode"`
	ProductID     string             `bson:"productId"`
	Amount        float64            `bson:"amount"`
	Commission    float64            `bson:"commission"`
	Status        string             `bson:"status"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

func (c mongoConversion) toDomain() domain.Conversion {
	status := domain.ConversionStatus(c.Status)
	if status != domain.ConversionPaid {
		status = domain.ConversionPending
	}
	return domain.Conversion{
		AffiliateCode: c.AffiliateCode,
		ProductID:     c.ProductID,
		Amount:        c.Amount,
		Commission:    c.Commission,
		Status:        status,
		CreatedAt:     c.CreatedAt.UTC(),
	}
}

// ListByAffiliateCode returns the code's conversions, oldest first.
func (r *ConversionRepository) ListByAffiliateCode(ctx context.Context, code string) ([]domain.Conversion, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cur, err := r.conversions.Find(ctx, bson.M{"affiliateCode": code}, opts)
	if err != nil {
		return nil, fmt.Errorf("find conversions: %w", err)
	}
	var docs []mongoConversion
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode conversions: %w", err)
	}

	out := make([]domain.Conversion, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *ConversionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.conversions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "affiliateCode", Value: 1}, {Key: "createdAt", Value: 1}},
	})
	return err
}
