package domain

import "time"

type ShopEvent struct {
	EventType string    `json:"event_type"`
	ShopID    string    `json:"shop_id"`
	Slug      string    `json:"slug"`
	ActorID   string    `json:"actor_id"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventShopCreated = "shop.created"
	EventShopUpdated = "shop.updated"
	EventShopDeleted = "shop.deleted"
)
