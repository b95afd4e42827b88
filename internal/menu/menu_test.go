package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sojith29034/menu-saas/internal/domain"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func TestToStore(t *testing.T) {
	categories := []domain.MenuCategory{
		{
			CategoryName: "Starters",
			Items: []domain.MenuItem{
				{Name: "Bruschetta", Description: strPtr("Grilled bread"), Price: floatPtr(6.5)},
			},
		},
		{
			CategoryName: "Mains",
			Items: []domain.MenuItem{
				{Name: "Carbonara", Price: floatPtr(14)},
			},
		},
	}

	stored := ToStore(categories)

	require.Len(t, stored, 2)
	assert.Equal(t, "Bruschetta", stored["Starters"][0].Name)
	assert.Equal(t, "Carbonara", stored["Mains"][0].Name)
}

func TestToStoreDuplicateCategoryLastWriteWins(t *testing.T) {
	categories := []domain.MenuCategory{
		{CategoryName: "Drinks", Items: []domain.MenuItem{{Name: "Espresso"}}},
		{CategoryName: "Drinks", Items: []domain.MenuItem{{Name: "Latte"}, {Name: "Mocha"}}},
	}

	stored := ToStore(categories)

	require.Len(t, stored, 1)
	require.Len(t, stored["Drinks"], 2)
	assert.Equal(t, "Latte", stored["Drinks"][0].Name)
}

func TestToStoreEmptyDescriptionBecomesAbsent(t *testing.T) {
	categories := []domain.MenuCategory{
		{
			CategoryName: "Desserts",
			Items: []domain.MenuItem{
				{Name: "Tiramisu", Description: strPtr("")},
				{Name: "Panna Cotta", Description: strPtr("With berries")},
				{Name: "Gelato"},
			},
		},
	}

	stored := ToStore(categories)

	items := stored["Desserts"]
	require.Len(t, items, 3)
	assert.Nil(t, items[0].Description)
	require.NotNil(t, items[1].Description)
	assert.Equal(t, "With berries", *items[1].Description)
	assert.Nil(t, items[2].Description)
}

func TestToStoreNilInputIsEmptyMenu(t *testing.T) {
	stored := ToStore(nil)

	require.NotNil(t, stored)
	assert.Empty(t, stored)
}

func TestToWireNilItems(t *testing.T) {
	wire := ToWire(map[string][]domain.MenuItem{"Specials": nil})

	require.Len(t, wire, 1)
	require.NotNil(t, wire[0].Items)
	assert.Empty(t, wire[0].Items)
}

func TestToWireSortsCategories(t *testing.T) {
	wire := ToWire(map[string][]domain.MenuItem{
		"Mains":    {{Name: "Steak"}},
		"Drinks":   {{Name: "Cola"}},
		"Starters": {{Name: "Soup"}},
	})

	require.Len(t, wire, 3)
	assert.Equal(t, "Drinks", wire[0].CategoryName)
	assert.Equal(t, "Mains", wire[1].CategoryName)
	assert.Equal(t, "Starters", wire[2].CategoryName)
}

func TestRoundTrip(t *testing.T) {
	original := map[string][]domain.MenuItem{
		"Starters": {
			{Name: "Soup", Description: strPtr("Daily special"), Price: floatPtr(4)},
		},
		"Mains": {
			{Name: "Burger", Price: floatPtr(11.5), ImageURL: "burger.jpg"},
			{Name: "Salad"},
		},
	}

	// store -> wire -> store keeps every field for unique category names
	roundTripped := ToStore(ToWire(original))

	assert.Equal(t, original, roundTripped)
}

func TestWireRoundTripPreservesFields(t *testing.T) {
	categories := []domain.MenuCategory{
		{
			CategoryName: "Mains",
			Items: []domain.MenuItem{
				{Name: "Ramen", Description: strPtr("Tonkotsu broth"), Price: floatPtr(13), ImageURL: "ramen.jpg"},
				{Name: "Gyoza", Description: strPtr("")},
			},
		},
	}

	back := ToWire(ToStore(categories))

	require.Len(t, back, 1)
	items := back[0].Items
	require.Len(t, items, 2)

	assert.Equal(t, "Ramen", items[0].Name)
	require.NotNil(t, items[0].Description)
	assert.Equal(t, "Tonkotsu broth", *items[0].Description)
	assert.Equal(t, 13.0, *items[0].Price)
	assert.Equal(t, "ramen.jpg", items[0].ImageURL)

	// the one lossy transform: empty description comes back absent
	assert.Nil(t, items[1].Description)
}
