package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/sojith29034/menu-saas/internal/domain"
	"github.com/sojith29034/menu-saas/internal/queue"
	"github.com/sojith29034/menu-saas/internal/repo"
)

type fakeShopRepo struct {
	shops map[primitive.ObjectID]*domain.Shop
}

func newFakeShopRepo() *fakeShopRepo {
	return &fakeShopRepo{shops: make(map[primitive.ObjectID]*domain.Shop)}
}

func cloneShop(shop *domain.Shop) *domain.Shop {
	c := *shop
	c.Menu = make(map[string][]domain.MenuItem, len(shop.Menu))
	for k, v := range shop.Menu {
		c.Menu[k] = append([]domain.MenuItem(nil), v...)
	}
	return &c
}

func (r *fakeShopRepo) Create(_ context.Context, shop *domain.Shop) error {
	for _, existing := range r.shops {
		if existing.Slug == shop.Slug {
			return repo.ErrDuplicateSlug
		}
	}
	if shop.ID.IsZero() {
		shop.ID = primitive.NewObjectID()
	}
	r.shops[shop.ID] = cloneShop(shop)
	return nil
}

func (r *fakeShopRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Shop, error) {
	shop, ok := r.shops[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return cloneShop(shop), nil
}

func (r *fakeShopRepo) GetBySlug(_ context.Context, slug string) (*domain.Shop, error) {
	for _, shop := range r.shops {
		if shop.Slug == slug {
			return cloneShop(shop), nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *fakeShopRepo) GetAll(_ context.Context) ([]domain.Shop, error) {
	all := make([]domain.Shop, 0, len(r.shops))
	for _, shop := range r.shops {
		all = append(all, *cloneShop(shop))
	}
	return all, nil
}

func (r *fakeShopRepo) Update(_ context.Context, shop *domain.Shop) error {
	if _, ok := r.shops[shop.ID]; !ok {
		return repo.ErrNotFound
	}
	for id, existing := range r.shops {
		if id != shop.ID && existing.Slug == shop.Slug {
			return repo.ErrDuplicateSlug
		}
	}
	r.shops[shop.ID] = cloneShop(shop)
	return nil
}

func (r *fakeShopRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.shops[id]; !ok {
		return repo.ErrNotFound
	}
	delete(r.shops, id)
	return nil
}

type fakeAuditRepo struct {
	audits []domain.ShopAudit
}

func (r *fakeAuditRepo) Create(_ context.Context, audit *domain.ShopAudit) error {
	r.audits = append(r.audits, *audit)
	return nil
}

func (r *fakeAuditRepo) GetByShopID(_ context.Context, shopID string, limit int) ([]domain.ShopAudit, error) {
	var out []domain.ShopAudit
	for _, a := range r.audits {
		if a.ShopID == shopID {
			out = append(out, a)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeBroker struct {
	published []string
}

func (b *fakeBroker) Publish(_ context.Context, queueName string, message []byte) error {
	b.published = append(b.published, string(message))
	return nil
}

func (b *fakeBroker) Subscribe(context.Context, string, queue.MessageHandler) error {
	return nil
}

func (b *fakeBroker) Close() error { return nil }

func newTestShopService() (*ShopService, *fakeShopRepo, *fakeAuditRepo, *fakeBroker) {
	shopRepo := newFakeShopRepo()
	auditRepo := &fakeAuditRepo{}
	broker := &fakeBroker{}
	svc := NewShopService(shopRepo, auditRepo, broker, zap.NewNop().Sugar())
	return svc, shopRepo, auditRepo, broker
}

func validCreateInput(name string) CreateShopInput {
	return CreateShopInput{
		Name:        name,
		Description: "Family restaurant",
		Hours:       "Mon-Sun 10:00-22:00",
		Established: "1998",
		Phone:       "+1 555 0100",
		OrderURL:    "https://order.example.com",
		LocationURL: "https://maps.example.com",
	}
}

func TestCreateShop(t *testing.T) {
	svc, shopRepo, _, broker := newTestShopService()
	owner := primitive.NewObjectID()

	input := validCreateInput("  La Bella Cucina!! ")
	desc := ""
	input.Menu = []domain.MenuCategory{
		{CategoryName: "Mains", Items: []domain.MenuItem{{Name: "Lasagna", Description: &desc}}},
	}

	view, err := svc.Create(context.Background(), owner, input)
	require.NoError(t, err)

	assert.Equal(t, "la-bella-cucina", view.Slug)
	assert.Equal(t, owner, view.OwnerID)
	require.Len(t, view.Menu, 1)
	assert.Equal(t, "Mains", view.Menu[0].CategoryName)
	// empty description sanitized to absent on the way into the store
	assert.Nil(t, view.Menu[0].Items[0].Description)

	stored, err := shopRepo.GetBySlug(context.Background(), "la-bella-cucina")
	require.NoError(t, err)
	assert.Nil(t, stored.Menu["Mains"][0].Description)

	require.Len(t, broker.published, 1)
	assert.Contains(t, broker.published[0], domain.EventShopCreated)
}

func TestCreateShopAppliesThemeDefaults(t *testing.T) {
	svc, _, _, _ := newTestShopService()

	view, err := svc.Create(context.Background(), primitive.NewObjectID(), validCreateInput("Teahouse"))
	require.NoError(t, err)

	assert.Equal(t, "#4A5568", view.Theme.Primary)
	assert.Equal(t, "#F7FAFC", view.Theme.Secondary)
	assert.Equal(t, "#ED8936", view.Theme.Accent)
	assert.Equal(t, "from-gray-50 to-gray-100", view.Theme.Background)
	assert.Equal(t, "#2D3748", view.Theme.Text)
}

func TestCreateShopRejectsUnsluggableName(t *testing.T) {
	svc, _, _, _ := newTestShopService()

	_, err := svc.Create(context.Background(), primitive.NewObjectID(), validCreateInput("!!!"))

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateShopSlugCollision(t *testing.T) {
	svc, _, _, _ := newTestShopService()
	ctx := context.Background()

	first, err := svc.Create(ctx, primitive.NewObjectID(), validCreateInput("Pizza Palace"))
	require.NoError(t, err)

	second, err := svc.Create(ctx, primitive.NewObjectID(), validCreateInput("Pizza! Palace?"))
	require.NoError(t, err)

	assert.Equal(t, "pizza-palace", first.Slug)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.True(t, strings.HasPrefix(second.Slug, "pizza-palace-"))
}

func TestCreateShopSurfacesUniqueIndexViolation(t *testing.T) {
	svc, _, _, _ := newTestShopService()
	ctx := context.Background()

	// a shop whose slug verbatim equals the suffixed candidate is the
	// pathological double collision; the store's uniqueness rejection must
	// come back as a persistence error, not a retry loop
	_, err := svc.Create(ctx, primitive.NewObjectID(), validCreateInput("Noodle Bar"))
	require.NoError(t, err)

	dupRepo := &duplicateOnCreateRepo{}
	dupSvc := NewShopService(dupRepo, &fakeAuditRepo{}, &fakeBroker{}, zap.NewNop().Sugar())

	_, err = dupSvc.Create(ctx, primitive.NewObjectID(), validCreateInput("Noodle Bar"))
	assert.ErrorIs(t, err, ErrPersistence)
}

type duplicateOnCreateRepo struct {
	fakeShopRepo
}

func (r *duplicateOnCreateRepo) GetBySlug(context.Context, string) (*domain.Shop, error) {
	return nil, repo.ErrNotFound
}

func (r *duplicateOnCreateRepo) Create(context.Context, *domain.Shop) error {
	return repo.ErrDuplicateSlug
}

func TestGetBySlugNormalizesIdentifier(t *testing.T) {
	svc, _, _, _ := newTestShopService()
	ctx := context.Background()

	_, err := svc.Create(ctx, primitive.NewObjectID(), validCreateInput("Joe's Cafe"))
	require.NoError(t, err)

	// inconsistently cased and lightly malformed path segments still resolve
	view, err := svc.GetBySlug(ctx, "  Joe's CAFE! ")
	require.NoError(t, err)
	assert.Equal(t, "joe-s-cafe", view.Slug)
}

func TestGetBySlugNotFound(t *testing.T) {
	svc, _, _, _ := newTestShopService()

	_, err := svc.GetBySlug(context.Background(), "nowhere")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetBySlug(context.Background(), "!!!")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetAll(t *testing.T) {
	svc, _, _, _ := newTestShopService()
	ctx := context.Background()

	_, err := svc.Create(ctx, primitive.NewObjectID(), validCreateInput("One"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, primitive.NewObjectID(), validCreateInput("Two"))
	require.NoError(t, err)

	views, err := svc.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, views, 2)
}

func TestUpdateShopByNonOwner(t *testing.T) {
	svc, shopRepo, _, _ := newTestShopService()
	ctx := context.Background()
	owner := primitive.NewObjectID()

	created, err := svc.Create(ctx, owner, validCreateInput("Corner Deli"))
	require.NoError(t, err)

	name := "Hijacked"
	_, err = svc.Update(ctx, primitive.NewObjectID(), false, created.ID, UpdateShopInput{Name: &name})
	assert.ErrorIs(t, err, ErrUnauthorized)

	// stored record must be untouched
	stored, err := shopRepo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Corner Deli", stored.Name)
	assert.Equal(t, "corner-deli", stored.Slug)
}

func TestUpdateShopByAdmin(t *testing.T) {
	svc, _, _, _ := newTestShopService()
	ctx := context.Background()
	owner := primitive.NewObjectID()

	created, err := svc.Create(ctx, owner, validCreateInput("Corner Deli"))
	require.NoError(t, err)

	hours := "24/7"
	view, err := svc.Update(ctx, primitive.NewObjectID(), true, created.ID, UpdateShopInput{Hours: &hours})
	require.NoError(t, err)

	assert.Equal(t, "24/7", view.Hours)
	// the owner reference never changes after creation
	assert.Equal(t, owner, view.OwnerID)
}

func TestUpdateShopKeepsSlugWithoutName(t *testing.T) {
	svc, _, _, _ := newTestShopService()
	ctx := context.Background()
	owner := primitive.NewObjectID()

	created, err := svc.Create(ctx, owner, validCreateInput("Corner Deli"))
	require.NoError(t, err)

	desc := "Updated description"
	view, err := svc.Update(ctx, owner, false, created.ID, UpdateShopInput{Description: &desc})
	require.NoError(t, err)

	assert.Equal(t, "corner-deli", view.Slug)
	assert.Equal(t, "Updated description", view.Description)
}

func TestUpdateShopRegeneratesSlugOnRename(t *testing.T) {
	svc, _, _, _ := newTestShopService()
	ctx := context.Background()
	owner := primitive.NewObjectID()

	created, err := svc.Create(ctx, owner, validCreateInput("Corner Deli"))
	require.NoError(t, err)

	name := "Market Bistro"
	view, err := svc.Update(ctx, owner, false, created.ID, UpdateShopInput{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "market-bistro", view.Slug)
}

func TestUpdateShopRenameCollision(t *testing.T) {
	svc, _, _, _ := newTestShopService()
	ctx := context.Background()
	owner := primitive.NewObjectID()

	_, err := svc.Create(ctx, owner, validCreateInput("Taken Name"))
	require.NoError(t, err)

	created, err := svc.Create(ctx, owner, validCreateInput("Other Shop"))
	require.NoError(t, err)

	name := "Taken Name"
	view, err := svc.Update(ctx, owner, false, created.ID, UpdateShopInput{Name: &name})
	require.NoError(t, err)

	assert.NotEqual(t, "taken-name", view.Slug)
	assert.True(t, strings.HasPrefix(view.Slug, "taken-name-"))
}

func TestUpdateShopRenameToOwnNameKeepsSlug(t *testing.T) {
	svc, _, _, _ := newTestShopService()
	ctx := context.Background()
	owner := primitive.NewObjectID()

	created, err := svc.Create(ctx, owner, validCreateInput("Corner Deli"))
	require.NoError(t, err)

	name := "Corner! Deli!"
	view, err := svc.Update(ctx, owner, false, created.ID, UpdateShopInput{Name: &name})
	require.NoError(t, err)

	// normalizes to the shop's own slug, which is not a collision
	assert.Equal(t, "corner-deli", view.Slug)
}

func TestUpdateShopReplacesMenuWholesale(t *testing.T) {
	svc, shopRepo, _, _ := newTestShopService()
	ctx := context.Background()
	owner := primitive.NewObjectID()

	input := validCreateInput("Corner Deli")
	input.Menu = []domain.MenuCategory{
		{CategoryName: "Breakfast", Items: []domain.MenuItem{{Name: "Omelette"}}},
	}
	created, err := svc.Create(ctx, owner, input)
	require.NoError(t, err)

	view, err := svc.Update(ctx, owner, false, created.ID, UpdateShopInput{
		Menu: []domain.MenuCategory{
			{CategoryName: "Lunch", Items: []domain.MenuItem{{Name: "Sandwich"}}},
		},
	})
	require.NoError(t, err)

	require.Len(t, view.Menu, 1)
	assert.Equal(t, "Lunch", view.Menu[0].CategoryName)

	// an absent menu in the payload also replaces: menu items have no
	// independent identity
	view, err = svc.Update(ctx, owner, false, created.ID, UpdateShopInput{})
	require.NoError(t, err)
	assert.Empty(t, view.Menu)

	stored, err := shopRepo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Menu)
}

func TestUpdateShopNotFound(t *testing.T) {
	svc, _, _, _ := newTestShopService()

	_, err := svc.Update(context.Background(), primitive.NewObjectID(), true, primitive.NewObjectID(), UpdateShopInput{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteShop(t *testing.T) {
	svc, shopRepo, _, broker := newTestShopService()
	ctx := context.Background()
	owner := primitive.NewObjectID()

	created, err := svc.Create(ctx, owner, validCreateInput("Corner Deli"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, owner, false, created.ID))

	_, err = shopRepo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	require.Len(t, broker.published, 2)
	assert.Contains(t, broker.published[1], domain.EventShopDeleted)
}

func TestDeleteShopUnauthorized(t *testing.T) {
	svc, _, _, _ := newTestShopService()
	ctx := context.Background()

	created, err := svc.Create(ctx, primitive.NewObjectID(), validCreateInput("Corner Deli"))
	require.NoError(t, err)

	err = svc.Delete(ctx, primitive.NewObjectID(), false, created.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestDeleteShopNotFound(t *testing.T) {
	svc, _, _, _ := newTestShopService()

	err := svc.Delete(context.Background(), primitive.NewObjectID(), true, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProcessShopEventWritesAudit(t *testing.T) {
	svc, _, auditRepo, _ := newTestShopService()
	ctx := context.Background()
	shopID := primitive.NewObjectID()

	event := domain.ShopEvent{
		EventType: domain.EventShopUpdated,
		ShopID:    shopID.Hex(),
		Slug:      "corner-deli",
		ActorID:   primitive.NewObjectID().Hex(),
	}

	require.NoError(t, svc.ProcessShopEvent(ctx, event))
	require.Len(t, auditRepo.audits, 1)
	assert.Equal(t, domain.EventShopUpdated, auditRepo.audits[0].EventType)

	audits, err := svc.GetAudit(ctx, shopID, 10)
	require.NoError(t, err)
	assert.Len(t, audits, 1)
}

func TestBrokerFailureDoesNotFailMutation(t *testing.T) {
	shopRepo := newFakeShopRepo()
	svc := NewShopService(shopRepo, &fakeAuditRepo{}, &failingBroker{}, zap.NewNop().Sugar())

	_, err := svc.Create(context.Background(), primitive.NewObjectID(), validCreateInput("Corner Deli"))
	assert.NoError(t, err)
}

type failingBroker struct{}

func (b *failingBroker) Publish(context.Context, string, []byte) error {
	return errors.New("broker down")
}

func (b *failingBroker) Subscribe(context.Context, string, queue.MessageHandler) error {
	return nil
}

func (b *failingBroker) Close() error { return nil }
