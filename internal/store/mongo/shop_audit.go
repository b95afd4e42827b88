package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/sojith29034/menu-saas/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ShopAuditRepository struct {
	collection *mongo.Collection
}

func NewShopAuditRepository(db *mongo.Database) *ShopAuditRepository {
	return &ShopAuditRepository{
		collection: db.Collection("shop_audit"),
	}
}

func (r *ShopAuditRepository) Create(ctx context.Context, audit *domain.ShopAudit) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if audit.ID.IsZero() {
		audit.ID = primitive.NewObjectID()
	}
	if audit.Timestamp.IsZero() {
		audit.Timestamp = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, audit)
	if err != nil {
		return fmt.Errorf("failed to create shop audit: %w", err)
	}

	return nil
}

func (r *ShopAuditRepository) GetByShopID(ctx context.Context, shopID string, limit int) ([]domain.ShopAudit, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"shop_id": shopID}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get shop audits: %w", err)
	}
	defer cursor.Close(ctx)

	var audits []domain.ShopAudit
	if err := cursor.All(ctx, &audits); err != nil {
		return nil, fmt.Errorf("failed to decode shop audits: %w", err)
	}

	return audits, nil
}
