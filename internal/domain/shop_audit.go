package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ShopAudit struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ShopID    string             `bson:"shop_id" json:"shop_id"`
	EventType string             `bson:"event_type" json:"event_type"`
	Slug      string             `bson:"slug" json:"slug"`
	ActorID   string             `bson:"actor_id" json:"actor_id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
}
