package repo

import (
	"context"

	"github.com/sojith29034/menu-saas/internal/domain"
)

type ShopAuditRepository interface {
	Create(ctx context.Context, audit *domain.ShopAudit) error
	GetByShopID(ctx context.Context, shopID string, limit int) ([]domain.ShopAudit, error)
}
