package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/herbalroots/wellness-hub/internal/core/domain"
	"github.com/herbalroots/wellness-hub/internal/core/ports"
)

// Field names match the documents the app has always written (camelCase).
const collectionUsers = "users"

type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type mongoUser struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	WhopUserID    string             `bson:"whopUserId"`
	Username      string             `bson:"username"`
	Email         string             `bson:"email,omitempty"`
	Avatar        string             `bson:"avatar,omitempty"`
	Role          string             `bson:"role"`
	AffiliateCode string             `bson:"affiliateCode,omitempty"`
	Metadata      bson.M             `bson:"metadata,omitempty"`
	LastSyncAt    time.Time          `bson:"lastSyncAt"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func (u *mongoUser) toDomain() *domain.User {
	role, err := domain.ParseRole(u.Role)
	if err != nil {
		role = domain.RoleGuest
	}
	var meta map[string]any
	if len(u.Metadata) > 0 {
		meta = map[string]any(u.Metadata)
	}
	return &domain.User{
		ID:            u.ID.Hex(),
		WhopUserID:    u.WhopUserID,
		Username:      u.Username,
		Email:         u.Email,
		Avatar:        u.Avatar,
		Role:          role,
		AffiliateCode: u.AffiliateCode,
		Metadata:      meta,
		LastSyncAt:    u.LastSyncAt.UTC(),
		CreatedAt:     u.CreatedAt.UTC(),
		UpdatedAt:     u.UpdatedAt.UTC(),
	}
}

// UpsertByWhopID writes the sync result in a single FindOneAndUpdate. The
// unique index on whopUserId makes concurrent first logins converge on one
// document; the loser of that race gets a duplicate key error and re-applies
// the update to the winner's document.
func (r *UserRepository) UpsertByWhopID(ctx context.Context, whopUserID string, u ports.ProfileUpdate) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"whopUserId": whopUserID}
	update := upsertDocument(whopUserID, u)
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc mongoUser
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if mongo.IsDuplicateKeyError(err) {
		err = r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	}
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return doc.toDomain(), nil
}

func upsertDocument(whopUserID string, u ports.ProfileUpdate) bson.M {
	set := bson.M{
		"role":       string(u.Role),
		"lastSyncAt": u.SyncAt,
		"updatedAt":  u.SyncAt,
	}
	setOnInsert := bson.M{
		"whopUserId": whopUserID,
		"createdAt":  u.SyncAt,
		"metadata":   bson.M{},
	}

	if u.Profile != nil {
		set["username"] = u.Profile.Username
		set["email"] = u.Profile.Email
		set["avatar"] = u.Profile.Avatar
	} else {
		setOnInsert["username"] = domain.UnknownUsername
	}

	return bson.M{"$set": set, "$setOnInsert": setOnInsert}
}

func (r *UserRepository) FindByWhopID(ctx context.Context, whopUserID string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoUser
	if err := r.col.FindOne(ctx, bson.M{"whopUserId": whopUserID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) SetAffiliateCode(ctx context.Context, whopUserID, code string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"affiliateCode": code,
		"updatedAt":     time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoUser
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"whopUserId": whopUserID}, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("set affiliate code: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates the unique keys the upsert relies on.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "whopUserId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "affiliateCode", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
