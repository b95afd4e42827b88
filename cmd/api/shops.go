package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/sojith29034/menu-saas/internal/domain"
	"github.com/sojith29034/menu-saas/internal/service"
	"github.com/sojith29034/menu-saas/internal/slug"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInvalidID = errors.New("invalid ID format")

const cacheKeyShopList = "shops:list"

func cacheKeyShopSlug(s string) string {
	return fmt.Sprintf("shops:slug:%s", s)
}

// getShopsHandler godoc
//
//	@Summary		List shops
//	@Description	Returns every shop in wire format
//	@Tags			shops
//	@Produce		json
//	@Success		200	{array}		domain.ShopView
//	@Failure		500	{object}	map[string]string
//	@Router			/shops [get]
func (app *application) getShopsHandler(w http.ResponseWriter, r *http.Request) {
	var cached []domain.ShopView
	if err := app.cacheStorage.Get(r.Context(), cacheKeyShopList, &cached); err == nil {
		if err := app.jsonResponse(w, http.StatusOK, cached); err != nil {
			app.internalServerError(w, r, err)
		}
		return
	}

	shops, err := app.shopService.GetAll(r.Context())
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.cacheStorage.Set(r.Context(), cacheKeyShopList, shops); err != nil {
		app.logger.Warnw("failed to cache shop list", "error", err)
	}

	if err := app.jsonResponse(w, http.StatusOK, shops); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getShopBySlugHandler godoc
//
//	@Summary		Get shop by slug
//	@Description	Resolves a shop by its URL slug; the identifier is normalized before lookup
//	@Tags			shops
//	@Produce		json
//	@Param			slug	path		string	true	"Shop slug"
//	@Success		200		{object}	domain.ShopView
//	@Failure		404		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/shops/{slug} [get]
func (app *application) getShopBySlugHandler(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "slug")

	key := cacheKeyShopSlug(slug.Generate(identifier))

	var cached domain.ShopView
	if err := app.cacheStorage.Get(r.Context(), key, &cached); err == nil {
		if err := app.jsonResponse(w, http.StatusOK, cached); err != nil {
			app.internalServerError(w, r, err)
		}
		return
	}

	shop, err := app.shopService.GetBySlug(r.Context(), identifier)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.cacheStorage.Set(r.Context(), key, shop); err != nil {
		app.logger.Warnw("failed to cache shop", "slug", shop.Slug, "error", err)
	}

	if err := app.jsonResponse(w, http.StatusOK, shop); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createShopHandler godoc
//
//	@Summary		Create shop
//	@Description	Creates a shop owned by the authenticated user
//	@Tags			shops
//	@Accept			json
//	@Produce		json
//	@Param			request	body		service.CreateShopInput	true	"Shop payload"
//	@Success		201		{object}	domain.ShopView
//	@Failure		400		{object}	map[string]string
//	@Failure		401		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/shops [post]
func (app *application) createShopHandler(w http.ResponseWriter, r *http.Request) {
	var input service.CreateShopInput
	if err := readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(input); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	shop, err := app.shopService.Create(r.Context(), user.ID, input)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	app.invalidateShopCache(r)

	if err := app.jsonResponse(w, http.StatusCreated, shop); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateShopHandler godoc
//
//	@Summary		Update shop
//	@Description	Updates a shop; only the owner or an admin may mutate it
//	@Tags			shops
//	@Accept			json
//	@Produce		json
//	@Param			shop_id	path		string					true	"Shop ID"
//	@Param			request	body		service.UpdateShopInput	true	"Fields to update"
//	@Success		200		{object}	domain.ShopView
//	@Failure		400		{object}	map[string]string
//	@Failure		401		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/shops/id/{shop_id} [put]
func (app *application) updateShopHandler(w http.ResponseWriter, r *http.Request) {
	shopID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "shop_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var input service.UpdateShopInput
	if err := readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(input); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	user := getUserFromContext(r)

	shop, err := app.shopService.Update(r.Context(), user.ID, user.IsAdmin, shopID, input)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	app.invalidateShopCache(r)

	if err := app.jsonResponse(w, http.StatusOK, shop); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteShopHandler godoc
//
//	@Summary		Delete shop
//	@Description	Deletes a shop; only the owner or an admin may remove it
//	@Tags			shops
//	@Produce		json
//	@Param			shop_id	path		string	true	"Shop ID"
//	@Success		200		{object}	map[string]string
//	@Failure		400		{object}	map[string]string
//	@Failure		401		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/shops/id/{shop_id} [delete]
func (app *application) deleteShopHandler(w http.ResponseWriter, r *http.Request) {
	shopID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "shop_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	user := getUserFromContext(r)

	if err := app.shopService.Delete(r.Context(), user.ID, user.IsAdmin, shopID); err != nil {
		app.serviceError(w, r, err)
		return
	}

	app.invalidateShopCache(r)

	response := map[string]string{
		"message": "shop removed",
	}

	if err := app.jsonResponse(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getShopAuditHandler godoc
//
//	@Summary		Shop audit trail
//	@Description	Lists recorded change events for a shop (admin only)
//	@Tags			shops
//	@Produce		json
//	@Param			shop_id	path		string	true	"Shop ID"
//	@Param			limit	query		int		false	"Max records"
//	@Success		200		{array}		domain.ShopAudit
//	@Failure		400		{object}	map[string]string
//	@Failure		403		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/shops/id/{shop_id}/audit [get]
func (app *application) getShopAuditHandler(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r)
	if !user.IsAdmin {
		app.forbiddenResponse(w, r)
		return
	}

	shopID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "shop_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			app.badRequestResponse(w, r, errors.New("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	audits, err := app.shopService.GetAudit(r.Context(), shopID, limit)
	if err != nil {
		app.serviceError(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, audits); err != nil {
		app.internalServerError(w, r, err)
	}
}

// invalidateShopCache drops every cached storefront entry after a mutation.
func (app *application) invalidateShopCache(r *http.Request) {
	if err := app.cacheStorage.Invalidate(r.Context(), "shops:*"); err != nil {
		app.logger.Warnw("failed to invalidate shop cache", "error", err)
	}
}
