package controllers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nyumba-ke/backend/models"
	"github.com/nyumba-ke/backend/storage"
)

const propertyCacheTTL = 10 * time.Minute

// parsePropertyFilters builds a typed filter set from the query string.
// Malformed numeric values are a client error, not a silent no-op.
func parsePropertyFilters(query url.Values) (models.PropertyFilters, error) {
	filters := models.PropertyFilters{
		Search:       query.Get("search"),
		Location:     query.Get("location"),
		PropertyType: query.Get("propertyType"),
		ListingType:  query.Get("listingType"),
		SortBy:       query.Get("sortBy"),
	}

	intFields := []struct {
		name string
		dst  **int
	}{
		{"minPrice", &filters.MinPrice},
		{"maxPrice", &filters.MaxPrice},
		{"minBedrooms", &filters.MinBedrooms},
		{"maxBedrooms", &filters.MaxBedrooms},
		{"minBathrooms", &filters.MinBathrooms},
	}
	for _, field := range intFields {
		raw := query.Get(field.name)
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return models.PropertyFilters{}, fmt.Errorf("invalid %s: %q", field.name, raw)
		}
		*field.dst = &value
	}

	if raw := query.Get("features"); raw != "" {
		for _, feature := range strings.Split(raw, ",") {
			feature = strings.TrimSpace(feature)
			if feature != "" {
				filters.Features = append(filters.Features, feature)
			}
		}
	}

	return filters, nil
}

func GetAllProperties(store storage.Store, cache *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := parsePropertyFilters(r.URL.Query())
		if err != nil {
			log.Printf("Bad filter query: %v", err)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		cacheKey := generateCacheKey(r.URL.Query())
		if cache != nil {
			cachedData, err := cache.Get(r.Context(), cacheKey).Result()
			if err == nil {
				log.Printf("Cache Hit for key: %s", cacheKey)
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(cachedData))
				return
			}
			if err != redis.Nil {
				log.Printf("Redis GET error for key %s: %v", cacheKey, err)
			}
			log.Printf("Cache Miss for key: %s", cacheKey)
		}

		properties, err := store.GetProperties(r.Context(), filters)
		if err != nil {
			writeStoreError(w, err, "Properties not found")
			return
		}

		resultBytes, err := json.Marshal(properties)
		if err != nil {
			log.Printf("Failed to serialize properties: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		if cache != nil {
			if err := cache.Set(r.Context(), cacheKey, resultBytes, propertyCacheTTL).Err(); err != nil {
				log.Printf("Failed to cache response for key %s: %v", cacheKey, err)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(resultBytes)
	}
}

type propertyDetailResponse struct {
	models.Property
	Owner      models.User `json:"owner"`
	IsFavorite bool        `json:"isFavorite"`
}

// GetPropertyByID returns a listing with its owner embedded and, when the
// request carries a valid token, whether the caller favorited it.
func GetPropertyByID(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propertyID, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		property, err := store.GetProperty(r.Context(), propertyID)
		if err != nil {
			writeStoreError(w, err, "Property not found")
			return
		}

		owner, err := store.GetUser(r.Context(), property.OwnerID)
		if err != nil {
			writeStoreError(w, err, "Property owner not found")
			return
		}

		isFavorite := false
		if userID, ok := userIDFromContext(r); ok {
			isFavorite, err = store.IsFavorite(r.Context(), userID, propertyID)
			if err != nil {
				log.Printf("Error checking favorite for user %d: %v", userID, err)
				isFavorite = false
			}
		}

		writeJSON(w, http.StatusOK, propertyDetailResponse{
			Property:   property,
			Owner:      owner,
			IsFavorite: isFavorite,
		})
	}
}

type propertyRequest struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Price        int      `json:"price" validate:"required,gt=0"`
	PropertyType string   `json:"propertyType" validate:"required,oneof=apartment house villa townhouse office commercial land"`
	ListingType  string   `json:"listingType" validate:"required,oneof=rent sale"`
	Bedrooms     int      `json:"bedrooms" validate:"gte=0"`
	Bathrooms    int      `json:"bathrooms" validate:"gte=0"`
	Area         int      `json:"area" validate:"gt=0"`
	Location     string   `json:"location" validate:"required"`
	Address      string   `json:"address" validate:"required"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	Features     []string `json:"features"`
	Images       []string `json:"images"`
}

func CreateProperty(store storage.Store, cache *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		var req propertyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Invalid request body: %v", err)
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		property, err := store.CreateProperty(r.Context(), models.Property{
			Title:        req.Title,
			Description:  req.Description,
			Price:        req.Price,
			PropertyType: models.PropertyType(req.PropertyType),
			ListingType:  models.ListingType(req.ListingType),
			Bedrooms:     req.Bedrooms,
			Bathrooms:    req.Bathrooms,
			Area:         req.Area,
			Location:     req.Location,
			Address:      req.Address,
			Latitude:     req.Latitude,
			Longitude:    req.Longitude,
			Features:     req.Features,
			Images:       req.Images,
			OwnerID:      userID,
		})
		if err != nil {
			writeStoreError(w, err, "Owner not found")
			return
		}

		go deletePropertyCache(cache)

		writeJSON(w, http.StatusCreated, property)
	}
}

type propertyUpdateRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *int     `json:"price" validate:"omitempty,gt=0"`
	Features    []string `json:"features"`
	Images      []string `json:"images"`
}

func UpdateProperty(store storage.Store, cache *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		propertyID, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		property, err := store.GetProperty(r.Context(), propertyID)
		if err != nil {
			writeStoreError(w, err, "Property not found")
			return
		}
		if property.OwnerID != userID {
			log.Printf("User %d not authorized to update property %d", userID, propertyID)
			writeError(w, http.StatusForbidden, "Not authorized to update this property")
			return
		}

		var req propertyUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Invalid update data: %v", err)
			writeError(w, http.StatusBadRequest, "Invalid update data")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		updated, err := store.UpdateProperty(r.Context(), propertyID, storage.PropertyPatch{
			Title:       req.Title,
			Description: req.Description,
			Price:       req.Price,
			Features:    req.Features,
			Images:      req.Images,
		})
		if err != nil {
			writeStoreError(w, err, "Property not found")
			return
		}

		go deletePropertyCache(cache)

		writeJSON(w, http.StatusOK, updated)
	}
}

func DeleteProperty(store storage.Store, cache *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		propertyID, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		property, err := store.GetProperty(r.Context(), propertyID)
		if err != nil {
			writeStoreError(w, err, "Property not found")
			return
		}
		if property.OwnerID != userID {
			log.Printf("User %d not authorized to delete property %d", userID, propertyID)
			writeError(w, http.StatusForbidden, "Not authorized to delete this property")
			return
		}

		if err := store.DeleteProperty(r.Context(), propertyID); err != nil {
			writeStoreError(w, err, "Property not found")
			return
		}

		go deletePropertyCache(cache)

		writeJSON(w, http.StatusOK, map[string]string{"message": "Property deleted successfully"})
	}
}

func generateCacheKey(queryParams url.Values) string {
	keys := make([]string, 0, len(queryParams))
	for k := range queryParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, key := range keys {
		values := queryParams[key]
		sort.Strings(values)
		for _, val := range values {
			sb.WriteString(key)
			sb.WriteString("=")
			sb.WriteString(val)
			sb.WriteString("&")
		}
	}
	rawKey := strings.TrimSuffix(sb.String(), "&")

	sum := sha256.Sum256([]byte(rawKey))
	return "property:" + hex.EncodeToString(sum[:])
}

func deletePropertyCache(cache *redis.Client) {
	if cache == nil {
		return
	}

	ctx := context.Background()
	const scanPattern = "property:*"
	const scanCount = 100

	var keysToDelete []string
	var cursor uint64
	var err error

	for {
		var currentKeys []string
		currentKeys, cursor, err = cache.Scan(ctx, cursor, scanPattern, scanCount).Result()
		if err != nil {
			log.Printf("Error during Redis SCAN for pattern %q: %v", scanPattern, err)
			return
		}
		keysToDelete = append(keysToDelete, currentKeys...)
		if cursor == 0 {
			break
		}
	}

	if len(keysToDelete) == 0 {
		return
	}

	pipe := cache.Pipeline()
	for _, key := range keysToDelete {
		pipe.Del(ctx, key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("Error deleting %d property cache keys: %v", len(keysToDelete), err)
	} else {
		log.Printf("Property cache invalidated, deleted %d keys", len(keysToDelete))
	}
}
