// Package menu converts between the two representations of a shop menu: the
// keyed-by-category mapping used in persistence and the ordered list of
// categories used on the wire.
package menu

import (
	"sort"

	"github.com/sojith29034/menu-saas/internal/domain"
)

// ToWire expands the stored mapping into a list of categories. Map iteration
// order is not stable, so categories are emitted sorted by name; ordering is
// the one property that does not survive a round trip through the store.
func ToWire(stored map[string][]domain.MenuItem) []domain.MenuCategory {
	categories := make([]domain.MenuCategory, 0, len(stored))

	for name, items := range stored {
		if items == nil {
			items = []domain.MenuItem{}
		}
		categories = append(categories, domain.MenuCategory{
			CategoryName: name,
			Items:        items,
		})
	}

	sort.Slice(categories, func(i, j int) bool {
		return categories[i].CategoryName < categories[j].CategoryName
	})

	return categories
}

// ToStore collapses the wire list into the keyed mapping. A duplicated
// category name is resolved last-write-wins: the later entry replaces the
// earlier one. A nil input is treated as an empty menu rather than an error;
// strict shape validation happens at the request boundary.
func ToStore(categories []domain.MenuCategory) map[string][]domain.MenuItem {
	stored := make(map[string][]domain.MenuItem, len(categories))

	for _, category := range categories {
		stored[category.CategoryName] = sanitize(category.Items)
	}

	return stored
}

// sanitize normalizes item fields before persistence. An empty-string
// description is stored as absent so the public page can distinguish
// "no description" from "blank description".
func sanitize(items []domain.MenuItem) []domain.MenuItem {
	out := make([]domain.MenuItem, len(items))

	for i, item := range items {
		if item.Description != nil && *item.Description == "" {
			item.Description = nil
		}
		out[i] = item
	}

	return out
}
