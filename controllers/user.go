package controllers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/nyumba-ke/backend/storage"
	"github.com/nyumba-ke/backend/utils"
)

type profileUpdateRequest struct {
	FullName *string `json:"fullName"`
	Phone    *string `json:"phone"`
	Avatar   *string `json:"avatar"`
	Bio      *string `json:"bio"`
	Language *string `json:"language"`

	CurrentPassword    *string `json:"currentPassword"`
	NewPassword        *string `json:"newPassword" validate:"omitempty,min=6"`
	ConfirmNewPassword *string `json:"confirmNewPassword"`
}

func (r profileUpdateRequest) changingPassword() bool {
	return r.CurrentPassword != nil || r.NewPassword != nil || r.ConfirmNewPassword != nil
}

// UpdateProfile patches the caller's profile. A password change requires the
// current password plus a matching confirmation.
func UpdateProfile(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		var req profileUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		patch := storage.UserPatch{
			FullName: req.FullName,
			Phone:    req.Phone,
			Avatar:   req.Avatar,
			Bio:      req.Bio,
			Language: req.Language,
		}

		if req.changingPassword() {
			if req.CurrentPassword == nil || req.NewPassword == nil || req.ConfirmNewPassword == nil {
				writeError(w, http.StatusBadRequest, "All password fields are required when changing password")
				return
			}
			if *req.NewPassword != *req.ConfirmNewPassword {
				writeError(w, http.StatusBadRequest, "New passwords do not match")
				return
			}

			user, err := store.GetUser(r.Context(), userID)
			if err != nil {
				writeStoreError(w, err, "User not found")
				return
			}
			if !utils.CheckPasswordHash(*req.CurrentPassword, user.Password) {
				writeError(w, http.StatusBadRequest, "Current password is incorrect")
				return
			}

			hashed, err := utils.HashPassword(*req.NewPassword)
			if err != nil {
				log.Printf("Error hashing password: %v", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			patch.Password = &hashed
		}

		updated, err := store.UpdateUser(r.Context(), userID, patch)
		if err != nil {
			writeStoreError(w, err, "User not found")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

// GetOwnProperties lists the caller's listings.
func GetOwnProperties(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		properties, err := store.GetPropertiesByOwner(r.Context(), userID)
		if err != nil {
			writeStoreError(w, err, "User not found")
			return
		}
		writeJSON(w, http.StatusOK, properties)
	}
}
