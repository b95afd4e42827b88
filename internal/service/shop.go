package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sojith29034/menu-saas/internal/domain"
	"github.com/sojith29034/menu-saas/internal/menu"
	"github.com/sojith29034/menu-saas/internal/queue"
	"github.com/sojith29034/menu-saas/internal/repo"
	"github.com/sojith29034/menu-saas/internal/slug"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ShopService struct {
	shopRepo  repo.ShopRepository
	auditRepo repo.ShopAuditRepository
	broker    queue.Broker
	logger    *zap.SugaredLogger
}

func NewShopService(
	shopRepo repo.ShopRepository,
	auditRepo repo.ShopAuditRepository,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *ShopService {
	return &ShopService{
		shopRepo:  shopRepo,
		auditRepo: auditRepo,
		broker:    broker,
		logger:    logger,
	}
}

type CreateShopInput struct {
	Name        string                `json:"name" validate:"required"`
	Description string                `json:"description" validate:"required"`
	ImageURL    string                `json:"image_url"`
	Hours       string                `json:"hours" validate:"required"`
	Established string                `json:"established" validate:"required"`
	Phone       string                `json:"phone" validate:"required"`
	OrderURL    string                `json:"order_url" validate:"required"`
	LocationURL string                `json:"location_url" validate:"required"`
	Social      domain.Social         `json:"social"`
	Theme       domain.Theme          `json:"theme"`
	Menu        []domain.MenuCategory `json:"menu" validate:"omitempty,dive"`
}

// UpdateShopInput uses pointer fields so an absent field is distinguishable
// from an explicitly blank one; only present fields are merged. The menu is
// the exception: it has no independent item identity and is replaced
// wholesale on every update.
type UpdateShopInput struct {
	Name        *string               `json:"name" validate:"omitempty,min=1"`
	Description *string               `json:"description"`
	ImageURL    *string               `json:"image_url"`
	Hours       *string               `json:"hours"`
	Established *string               `json:"established"`
	Phone       *string               `json:"phone"`
	OrderURL    *string               `json:"order_url"`
	LocationURL *string               `json:"location_url"`
	Social      *domain.Social        `json:"social"`
	Theme       *domain.Theme         `json:"theme"`
	Menu        []domain.MenuCategory `json:"menu" validate:"omitempty,dive"`
}

func (s *ShopService) Create(ctx context.Context, ownerID primitive.ObjectID, input CreateShopInput) (*domain.ShopView, error) {
	candidate := slug.Generate(input.Name)
	if candidate == "" {
		return nil, fmt.Errorf("%w: name %q does not produce a usable slug", ErrValidation, input.Name)
	}

	candidate, err := s.resolveCollision(ctx, candidate, primitive.NilObjectID)
	if err != nil {
		return nil, err
	}

	theme := input.Theme
	theme.ApplyDefaults()

	shop := &domain.Shop{
		OwnerID:     ownerID,
		Name:        input.Name,
		Slug:        candidate,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Hours:       input.Hours,
		Established: input.Established,
		Phone:       input.Phone,
		OrderURL:    input.OrderURL,
		LocationURL: input.LocationURL,
		Social:      input.Social,
		Theme:       theme,
		Menu:        menu.ToStore(input.Menu),
	}

	if err := s.shopRepo.Create(ctx, shop); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPersistence, err)
	}

	s.publishEvent(ctx, domain.EventShopCreated, shop, ownerID.Hex())

	s.logger.Infow("shop created", "shop_id", shop.ID.Hex(), "slug", shop.Slug)

	return shopView(shop), nil
}

// GetBySlug normalizes the lookup key with the same transform used when the
// slug was generated, so differently-cased or lightly malformed path
// segments still resolve.
func (s *ShopService) GetBySlug(ctx context.Context, identifier string) (*domain.ShopView, error) {
	normalized := slug.Generate(identifier)
	if normalized == "" {
		return nil, ErrNotFound
	}

	shop, err := s.shopRepo.GetBySlug(ctx, normalized)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %s", ErrPersistence, err)
	}

	return shopView(shop), nil
}

func (s *ShopService) GetAll(ctx context.Context) ([]domain.ShopView, error) {
	shops, err := s.shopRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPersistence, err)
	}

	views := make([]domain.ShopView, 0, len(shops))
	for i := range shops {
		views = append(views, *shopView(&shops[i]))
	}

	return views, nil
}

func (s *ShopService) Update(ctx context.Context, requesterID primitive.ObjectID, requesterIsAdmin bool, shopID primitive.ObjectID, input UpdateShopInput) (*domain.ShopView, error) {
	shop, err := s.loadAuthorized(ctx, requesterID, requesterIsAdmin, shopID)
	if err != nil {
		return nil, err
	}

	// the slug changes only when the payload carries a new name
	if input.Name != nil {
		candidate := slug.Generate(*input.Name)
		if candidate == "" {
			return nil, fmt.Errorf("%w: name %q does not produce a usable slug", ErrValidation, *input.Name)
		}

		if candidate != shop.Slug {
			candidate, err = s.resolveCollision(ctx, candidate, shop.ID)
			if err != nil {
				return nil, err
			}
		}

		shop.Name = *input.Name
		shop.Slug = candidate
	}

	if input.Description != nil {
		shop.Description = *input.Description
	}
	if input.ImageURL != nil {
		shop.ImageURL = *input.ImageURL
	}
	if input.Hours != nil {
		shop.Hours = *input.Hours
	}
	if input.Established != nil {
		shop.Established = *input.Established
	}
	if input.Phone != nil {
		shop.Phone = *input.Phone
	}
	if input.OrderURL != nil {
		shop.OrderURL = *input.OrderURL
	}
	if input.LocationURL != nil {
		shop.LocationURL = *input.LocationURL
	}
	if input.Social != nil {
		shop.Social = *input.Social
	}
	if input.Theme != nil {
		theme := *input.Theme
		theme.ApplyDefaults()
		shop.Theme = theme
	}

	shop.Menu = menu.ToStore(input.Menu)

	if err := s.shopRepo.Update(ctx, shop); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %s", ErrPersistence, err)
	}

	s.publishEvent(ctx, domain.EventShopUpdated, shop, requesterID.Hex())

	s.logger.Infow("shop updated", "shop_id", shop.ID.Hex(), "slug", shop.Slug)

	return shopView(shop), nil
}

func (s *ShopService) Delete(ctx context.Context, requesterID primitive.ObjectID, requesterIsAdmin bool, shopID primitive.ObjectID) error {
	shop, err := s.loadAuthorized(ctx, requesterID, requesterIsAdmin, shopID)
	if err != nil {
		return err
	}

	if err := s.shopRepo.Delete(ctx, shopID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %s", ErrPersistence, err)
	}

	s.publishEvent(ctx, domain.EventShopDeleted, shop, requesterID.Hex())

	s.logger.Infow("shop deleted", "shop_id", shopID.Hex(), "slug", shop.Slug)

	return nil
}

func (s *ShopService) GetAudit(ctx context.Context, shopID primitive.ObjectID, limit int) ([]domain.ShopAudit, error) {
	audits, err := s.auditRepo.GetByShopID(ctx, shopID.Hex(), limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrPersistence, err)
	}

	return audits, nil
}

// ProcessShopEvent persists one audit record for a consumed shop event. It
// runs on the worker side of the broker, never in the request path.
func (s *ShopService) ProcessShopEvent(ctx context.Context, event domain.ShopEvent) error {
	audit := &domain.ShopAudit{
		ShopID:    event.ShopID,
		EventType: event.EventType,
		Slug:      event.Slug,
		ActorID:   event.ActorID,
		Timestamp: event.Timestamp,
	}

	if err := s.auditRepo.Create(ctx, audit); err != nil {
		s.logger.Errorw("failed to create shop audit", "shop_id", event.ShopID, "error", err)
		return err
	}

	return nil
}

func (s *ShopService) loadAuthorized(ctx context.Context, requesterID primitive.ObjectID, requesterIsAdmin bool, shopID primitive.ObjectID) (*domain.Shop, error) {
	shop, err := s.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %s", ErrPersistence, err)
	}

	if shop.OwnerID != requesterID && !requesterIsAdmin {
		return nil, ErrUnauthorized
	}

	return shop, nil
}

// resolveCollision implements the single-attempt collision policy: one
// lookup, one suffix. A pathological second collision is left to the unique
// slug index and surfaces as a persistence error. The same policy runs on
// create and on rename; self describes the shop being renamed so its own
// slug does not count as a collision.
func (s *ShopService) resolveCollision(ctx context.Context, candidate string, self primitive.ObjectID) (string, error) {
	existing, err := s.shopRepo.GetBySlug(ctx, candidate)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return candidate, nil
		}
		return "", fmt.Errorf("%w: %s", ErrPersistence, err)
	}

	if existing.ID == self {
		return candidate, nil
	}

	return slug.WithSuffix(candidate), nil
}

// publishEvent is best-effort: the mutation has already committed, so a
// broker failure is logged and the request still succeeds.
func (s *ShopService) publishEvent(ctx context.Context, eventType string, shop *domain.Shop, actorID string) {
	if s.broker == nil {
		return
	}

	event := domain.ShopEvent{
		EventType: eventType,
		ShopID:    shop.ID.Hex(),
		Slug:      shop.Slug,
		ActorID:   actorID,
		Timestamp: time.Now(),
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorw("failed to marshal shop event", "shop_id", event.ShopID, "error", err)
		return
	}

	if err := s.broker.Publish(ctx, queue.QueueShopEvents, eventBytes); err != nil {
		s.logger.Errorw("failed to publish shop event", "shop_id", event.ShopID, "event_type", eventType, "error", err)
	}
}

func shopView(shop *domain.Shop) *domain.ShopView {
	return &domain.ShopView{
		Shop: *shop,
		Menu: menu.ToWire(shop.Menu),
	}
}
