package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/nyumba-ke/backend/models"
	"github.com/nyumba-ke/backend/storage"
)

func GetPropertyReviews(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propertyID, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		reviews, err := store.GetPropertyReviews(r.Context(), propertyID)
		if err != nil {
			writeStoreError(w, err, "Property not found")
			return
		}
		writeJSON(w, http.StatusOK, reviews)
	}
}

type ratingResponse struct {
	Rating *float64 `json:"rating"`
}

// GetPropertyRating reports the average rating; null when unreviewed.
func GetPropertyRating(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propertyID, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid property ID")
			return
		}

		rating, err := store.GetPropertyAverageRating(r.Context(), propertyID)
		if err != nil {
			writeStoreError(w, err, "Property not found")
			return
		}
		writeJSON(w, http.StatusOK, ratingResponse{Rating: rating})
	}
}

type reviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

func CreateReview(store storage.Store) http.HandlerFunc {
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

		var req reviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		review, err := store.CreateReview(r.Context(), models.Review{
			PropertyID: propertyID,
			UserID:     userID,
			Rating:     req.Rating,
			Comment:    req.Comment,
		})
		if err != nil {
			writeStoreError(w, err, "Property not found")
			return
		}
		writeJSON(w, http.StatusCreated, review)
	}
}

func UpdateReview(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		reviewID, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid review ID")
			return
		}

		var req reviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		if !reviewOwnedBy(r, store, reviewID, userID, w) {
			return
		}

		review, err := store.UpdateReview(r.Context(), reviewID, req.Rating, req.Comment)
		if err != nil {
			writeStoreError(w, err, "Review not found")
			return
		}
		writeJSON(w, http.StatusOK, review)
	}
}

func DeleteReview(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		reviewID, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid review ID")
			return
		}

		if !reviewOwnedBy(r, store, reviewID, userID, w) {
			return
		}

		if err := store.DeleteReview(r.Context(), reviewID); err != nil {
			writeStoreError(w, err, "Review not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// reviewOwnedBy answers the request itself (404 or 403) when the review is
// missing or belongs to someone else.
func reviewOwnedBy(r *http.Request, store storage.Store, reviewID, userID int, w http.ResponseWriter) bool {
	review, err := store.GetReview(r.Context(), reviewID)
	if err != nil {
		writeStoreError(w, err, "Review not found")
		return false
	}
	if review.UserID != userID {
		writeError(w, http.StatusForbidden, "Not authorized to modify this review")
		return false
	}
	return true
}
