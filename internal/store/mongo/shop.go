package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sojith29034/menu-saas/internal/domain"
	"github.com/sojith29034/menu-saas/internal/repo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ShopRepository struct {
	collection *mongo.Collection
}

func NewShopRepository(db *mongo.Database) *ShopRepository {
	return &ShopRepository{
		collection: db.Collection("shops"),
	}
}

func (r *ShopRepository) Create(ctx context.Context, shop *domain.Shop) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if shop.ID.IsZero() {
		shop.ID = primitive.NewObjectID()
	}
	if shop.Menu == nil {
		shop.Menu = map[string][]domain.MenuItem{}
	}
	shop.CreatedAt = time.Now()
	shop.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, shop)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", repo.ErrDuplicateSlug, shop.Slug)
		}
		return fmt.Errorf("failed to create shop: %w", err)
	}

	return nil
}

func (r *ShopRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var shop domain.Shop
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&shop)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get shop: %w", err)
	}

	return &shop, nil
}

func (r *ShopRepository) GetBySlug(ctx context.Context, slug string) (*domain.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var shop domain.Shop
	err := r.collection.FindOne(ctx, bson.M{"slug": slug}).Decode(&shop)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get shop by slug: %w", err)
	}

	return &shop, nil
}

func (r *ShopRepository) GetAll(ctx context.Context) ([]domain.Shop, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list shops: %w", err)
	}
	defer cursor.Close(ctx)

	var shops []domain.Shop
	if err := cursor.All(ctx, &shops); err != nil {
		return nil, fmt.Errorf("failed to decode shops: %w", err)
	}

	return shops, nil
}

func (r *ShopRepository) Update(ctx context.Context, shop *domain.Shop) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	shop.UpdatedAt = time.Now()

	filter := bson.M{"_id": shop.ID}
	update := bson.M{
		"$set": shop,
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", repo.ErrDuplicateSlug, shop.Slug)
		}
		return fmt.Errorf("failed to update shop: %w", err)
	}

	if result.MatchedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}

func (r *ShopRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete shop: %w", err)
	}

	if result.DeletedCount == 0 {
		return repo.ErrNotFound
	}

	return nil
}
