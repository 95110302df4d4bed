package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/nyumba-ke/backend/models"
	"github.com/nyumba-ke/backend/storage"
	"github.com/nyumba-ke/backend/utils"
)

type AuthResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token,omitempty"`
	User    *models.User `json:"user,omitempty"`
}

type registerRequest struct {
	Username        string `json:"username" validate:"required,min=3"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Email           string `json:"email" validate:"required,email"`
	FullName        string `json:"fullName" validate:"required"`
	Phone           string `json:"phone"`
	Avatar          string `json:"avatar"`
	Role            string `json:"role" validate:"omitempty,oneof=tenant landlord agent"`
	Bio             string `json:"bio"`
	Language        string `json:"language"`
}

func RegisterUser(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Error decoding register payload: %v", err)
			writeError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		if _, err := store.GetUserByUsername(r.Context(), req.Username); err == nil {
			log.Printf("Username already taken: %s", req.Username)
			writeError(w, http.StatusConflict, "Username already taken")
			return
		}
		if _, err := store.GetUserByEmail(r.Context(), req.Email); err == nil {
			log.Printf("Email already registered: %s", req.Email)
			writeError(w, http.StatusConflict, "Email already registered")
			return
		}

		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to create user")
			return
		}

		user, err := store.CreateUser(r.Context(), models.User{
			Username: req.Username,
			Password: hashed,
			Email:    req.Email,
			FullName: req.FullName,
			Phone:    req.Phone,
			Avatar:   req.Avatar,
			Role:     models.Role(req.Role),
			Bio:      req.Bio,
			Language: req.Language,
		})
		if err != nil {
			writeStoreError(w, err, "User not found")
			return
		}

		token, err := utils.GenerateJWT(user.ID)
		if err != nil {
			log.Printf("Error generating JWT token: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to generate token")
			return
		}

		writeJSON(w, http.StatusCreated, AuthResponse{
			Message: "User registered successfully",
			Token:   token,
			User:    &user,
		})
	}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func LoginUser(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("Error decoding login payload: %v", err)
			writeError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		user, err := store.GetUserByUsername(r.Context(), req.Username)
		if err != nil {
			log.Printf("User not found: %s", req.Username)
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		if !utils.CheckPasswordHash(req.Password, user.Password) {
			log.Printf("Invalid credentials for user: %s", req.Username)
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		token, err := utils.GenerateJWT(user.ID)
		if err != nil {
			log.Printf("Error generating JWT token: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to generate token")
			return
		}

		writeJSON(w, http.StatusOK, AuthResponse{
			Message: "Login successful",
			Token:   token,
			User:    &user,
		})
	}
}

// LogoutUser exists for API parity; bearer tokens are discarded client side.
func LogoutUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, AuthResponse{Message: "Successfully logged out"})
	}
}

func CurrentUser(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		user, err := store.GetUser(r.Context(), userID)
		if err != nil {
			writeStoreError(w, err, "User not found")
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

const resetTokenTTL = time.Hour

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func ForgotPassword(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req forgotPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		// Do not reveal whether the account exists.
		genericMsg := "If an account exists with that email, you will receive password reset instructions."

		user, err := store.GetUserByEmail(r.Context(), req.Email)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				writeJSON(w, http.StatusOK, AuthResponse{Message: genericMsg})
				return
			}
			writeStoreError(w, err, "User not found")
			return
		}

		resetToken := uuid.NewString()
		expiry := time.Now().Add(resetTokenTTL)
		if err := store.UpdateUserResetToken(r.Context(), user.ID, resetToken, expiry); err != nil {
			writeStoreError(w, err, "User not found")
			return
		}

		// TODO: deliver the reset link over email once an outbound mail
		// provider is configured.
		if os.Getenv("APP_ENV") == "development" {
			writeJSON(w, http.StatusOK, map[string]string{
				"message":   "Reset token generated (development only)",
				"resetLink": "/reset-password?token=" + resetToken,
			})
			return
		}

		writeJSON(w, http.StatusOK, AuthResponse{Message: genericMsg})
	}
}

type resetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

func ResetPassword(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req resetPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		user, err := store.GetUserByResetToken(r.Context(), req.Token)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid or expired reset token")
			return
		}

		if user.ResetTokenExpiry != nil && user.ResetTokenExpiry.Before(time.Now()) {
			writeError(w, http.StatusBadRequest, "Reset token has expired")
			return
		}

		hashed, err := utils.HashPassword(req.Password)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		if err := store.UpdateUserPassword(r.Context(), user.ID, hashed); err != nil {
			writeStoreError(w, err, "User not found")
			return
		}

		writeJSON(w, http.StatusOK, AuthResponse{Message: "Password has been reset successfully"})
	}
}
