// Package filter selects subsets of properties and bookings. Filters never
// modify their input and keep its order; every result is a new slice.
package filter

import (
	"slices"
	"strings"

	"github.com/Astemirdum/rental-service/gateway/internal/model"
	"github.com/shopspring/decimal"
)

func where[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// BySearch matches q case-insensitively against title, address, city and state.
// A blank query keeps everything.
func BySearch(props []model.Property, q string) []model.Property {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return slices.Clone(props)
	}
	return where(props, func(p model.Property) bool {
		for _, field := range []string{p.Title, p.Address, p.City, p.State} {
			if strings.Contains(strings.ToLower(field), q) {
				return true
			}
		}
		return false
	})
}

// ByCategory keeps properties whose type name equals category. A blank
// category keeps everything.
func ByCategory(props []model.Property, category string) []model.Property {
	if category == "" {
		return slices.Clone(props)
	}
	return where(props, func(p model.Property) bool {
		return p.PropertyType.Name == category
	})
}

// PriceRange bounds are inclusive; an invalid bound is open.
type PriceRange struct {
	Min decimal.NullDecimal
	Max decimal.NullDecimal
}

func (r PriceRange) Contains(price decimal.Decimal) bool {
	if r.Min.Valid && price.LessThan(r.Min.Decimal) {
		return false
	}
	if r.Max.Valid && price.GreaterThan(r.Max.Decimal) {
		return false
	}
	return true
}

func ByPriceRange(props []model.Property, r PriceRange) []model.Property {
	return where(props, func(p model.Property) bool {
		return r.Contains(p.Price)
	})
}

func BookingsByStatus(bookings []model.Booking, status model.BookingStatus) []model.Booking {
	return where(bookings, func(b model.Booking) bool {
		return b.Status == status
	})
}

func PropertiesByStatus(props []model.Property, status model.PropertyStatus) []model.Property {
	return where(props, func(p model.Property) bool {
		return p.Status == status
	})
}

type Criteria struct {
	Query    string
	Category string
	Price    PriceRange
	Status   model.PropertyStatus
}

// Apply runs every filter set in c.
func Apply(props []model.Property, c Criteria) []model.Property {
	out := BySearch(props, c.Query)
	out = ByCategory(out, c.Category)
	out = ByPriceRange(out, c.Price)
	if c.Status != "" {
		out = PropertiesByStatus(out, c.Status)
	}
	return out
}

// Favorites returns a copy of props with IsFavorite set from the viewer's
// favorite ids.
func Favorites(props []model.Property, ids []string) []model.Property {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	out := make([]model.Property, len(props))
	for i, p := range props {
		_, p.IsFavorite = set[p.ID]
		out[i] = p
	}
	return out
}
