package repo

import (
	"context"

	"github.com/sojith29034/menu-saas/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ShopRepository interface {
	Create(ctx context.Context, shop *domain.Shop) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Shop, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Shop, error)
	GetAll(ctx context.Context) ([]domain.Shop, error)
	Update(ctx context.Context, shop *domain.Shop) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
