package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/nyumba-ke/backend/models"
	"github.com/nyumba-ke/backend/storage"
)

func GetFavorites(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		properties, err := store.GetFavorites(r.Context(), userID)
		if err != nil {
			writeStoreError(w, err, "Favorites not found")
			return
		}

		writeJSON(w, http.StatusOK, models.APIResponse{
			Success: true,
			Message: "Fetched favorite properties",
			Data:    properties,
		})
	}
}

type favoriteRequest struct {
	PropertyID int `json:"propertyId" validate:"required,gt=0"`
}

func AddFavorite(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		var req favoriteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Println("Invalid request data ", err)
			writeError(w, http.StatusBadRequest, "Invalid request data")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		favorite, err := store.AddFavorite(r.Context(), userID, req.PropertyID)
		if err != nil {
			writeStoreError(w, err, "Property not found")
			return
		}

		// Let the owner know someone is interested.
		notifyPropertyOwner(r, store, req.PropertyID, userID)

		writeJSON(w, http.StatusCreated, models.APIResponse{
			Success: true,
			Message: "Property added to favorites",
			Data:    favorite,
		})
	}
}

func notifyPropertyOwner(r *http.Request, store storage.Store, propertyID, byUserID int) {
	property, err := store.GetProperty(r.Context(), propertyID)
	if err != nil || property.OwnerID == byUserID {
		return
	}
	_, err = store.CreateNotification(r.Context(), models.Notification{
		UserID:  property.OwnerID,
		Type:    models.NotificationFavorite,
		Title:   "New Interest",
		Content: "Someone added your property to their favorites.",
		LinkURL: fmt.Sprintf("/properties/%d", propertyID),
	})
	if err != nil {
		log.Printf("Failed to create favorite notification: %v", err)
	}
}

func RemoveFavorite(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		propertyID, err := pathID(r, "propertyId")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		if err := store.RemoveFavorite(r.Context(), userID, propertyID); err != nil {
			writeStoreError(w, err, "Favorite not found")
			return
		}

		writeJSON(w, http.StatusOK, models.APIResponse{
			Success: true,
			Message: "Property removed from favorites",
		})
	}
}
