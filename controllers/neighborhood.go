package controllers

import (
	"net/http"

	"github.com/nyumba-ke/backend/storage"
)

func GetNeighborhoods(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		neighborhoods, err := store.GetNeighborhoods(r.Context())
		if err != nil {
			writeStoreError(w, err, "Neighborhoods not found")
			return
		}
		writeJSON(w, http.StatusOK, neighborhoods)
	}
}

func GetNeighborhoodByID(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		neighborhoodID, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid neighborhood ID")
			return
		}

		neighborhood, err := store.GetNeighborhood(r.Context(), neighborhoodID)
		if err != nil {
			writeStoreError(w, err, "Neighborhood not found")
			return
		}
		writeJSON(w, http.StatusOK, neighborhood)
	}
}
