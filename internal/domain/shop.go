package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Shop struct {
	ID          primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	OwnerID     primitive.ObjectID    `bson:"owner_id" json:"owner_id"`
	Name        string                `bson:"name" json:"name"`
	Slug        string                `bson:"slug" json:"slug"`
	Description string                `bson:"description" json:"description"`
	ImageURL    string                `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Hours       string                `bson:"hours" json:"hours"`
	Established string                `bson:"established" json:"established"`
	Phone       string                `bson:"phone" json:"phone"`
	OrderURL    string                `bson:"order_url" json:"order_url"`
	LocationURL string                `bson:"location_url" json:"location_url"`
	Social      Social                `bson:"social" json:"social"`
	Theme       Theme                 `bson:"theme" json:"theme"`
	Menu        map[string][]MenuItem `bson:"menu" json:"-"`
	CreatedAt   time.Time             `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time             `bson:"updated_at" json:"updated_at"`
}

type MenuItem struct {
	Name        string   `bson:"name" json:"name" validate:"required"`
	Description *string  `bson:"description,omitempty" json:"description,omitempty"`
	Price       *float64 `bson:"price,omitempty" json:"price,omitempty" validate:"omitempty,gte=0"`
	ImageURL    string   `bson:"image_url,omitempty" json:"image_url,omitempty"`
}

// MenuCategory is the wire representation of one menu section. Persistence
// keys the menu by category name; the API carries it as an ordered list.
type MenuCategory struct {
	CategoryName string     `json:"category_name" validate:"required"`
	Items        []MenuItem `json:"items" validate:"dive"`
}

type Social struct {
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	YouTube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
	TikTok    string `bson:"tiktok,omitempty" json:"tiktok,omitempty"`
	LinkedIn  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Website   string `bson:"website,omitempty" json:"website,omitempty"`
	Reviews   string `bson:"reviews,omitempty" json:"reviews,omitempty"`
}

type Theme struct {
	Primary    string `bson:"primary" json:"primary"`
	Secondary  string `bson:"secondary" json:"secondary"`
	Accent     string `bson:"accent" json:"accent"`
	Background string `bson:"background" json:"background"`
	Text       string `bson:"text" json:"text"`
}

// ApplyDefaults fills any missing theme token with the platform default.
func (t *Theme) ApplyDefaults() {
	if t.Primary == "" {
		t.Primary = "#4A5568"
	}
	if t.Secondary == "" {
		t.Secondary = "#F7FAFC"
	}
	if t.Accent == "" {
		t.Accent = "#ED8936"
	}
	if t.Background == "" {
		t.Background = "from-gray-50 to-gray-100"
	}
	if t.Text == "" {
		t.Text = "#2D3748"
	}
}

// ShopView is the wire form of a shop: identical to Shop except the menu is
// expanded into an ordered list of categories.
type ShopView struct {
	Shop
	Menu []MenuCategory `json:"menu"`
}
