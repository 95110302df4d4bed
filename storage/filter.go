package storage

import (
	"sort"
	"strings"

	"github.com/nyumba-ke/backend/models"
)

// FilterProperties applies every predicate set on filters as a sequential
// narrowing pass over properties, then the optional sort. The input slice is
// not modified; an empty filter set returns a copy of the full collection in
// its original order.
func FilterProperties(properties []models.Property, filters models.PropertyFilters) []models.Property {
	result := make([]models.Property, 0, len(properties))
	for _, p := range properties {
		if matchesFilters(p, filters) {
			result = append(result, p)
		}
	}
	SortProperties(result, filters.SortBy)
	return result
}

func matchesFilters(p models.Property, f models.PropertyFilters) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Title), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) &&
			!strings.Contains(strings.ToLower(p.Location), needle) {
			return false
		}
	}
	if f.Location != "" {
		if !strings.Contains(strings.ToLower(p.Location), strings.ToLower(f.Location)) {
			return false
		}
	}
	if f.PropertyType != "" && string(p.PropertyType) != f.PropertyType {
		return false
	}
	if f.ListingType != "" && string(p.ListingType) != f.ListingType {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.MinBedrooms != nil && p.Bedrooms < *f.MinBedrooms {
		return false
	}
	if f.MaxBedrooms != nil && p.Bedrooms > *f.MaxBedrooms {
		return false
	}
	if f.MinBathrooms != nil && p.Bathrooms < *f.MinBathrooms {
		return false
	}
	if len(f.Features) > 0 {
		// Superset match: every requested feature must be present.
		for _, want := range f.Features {
			if !containsString(p.Features, want) {
				return false
			}
		}
	}
	return true
}

func containsString(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

// SortProperties orders properties in place. An empty or unrecognized key
// keeps the input order ("recommended"). Ties keep their relative order.
func SortProperties(properties []models.Property, sortBy string) {
	switch sortBy {
	case models.SortPriceLow:
		sort.SliceStable(properties, func(i, j int) bool {
			return properties[i].Price < properties[j].Price
		})
	case models.SortPriceHigh:
		sort.SliceStable(properties, func(i, j int) bool {
			return properties[i].Price > properties[j].Price
		})
	case models.SortNewest:
		// Zero CreatedAt sorts as earliest.
		sort.SliceStable(properties, func(i, j int) bool {
			return properties[i].CreatedAt.After(properties[j].CreatedAt)
		})
	}
}
