package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/nyumba-ke/backend/storage"
)

type ContextKey string

const UserIDKey = ContextKey("userID")

var validate = validator.New()

type ErrorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Message: message})
}

// writeStoreError maps storage sentinels onto the HTTP taxonomy. Anything
// unexpected is logged and reported as a generic 500.
func writeStoreError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, storage.ErrDuplicate):
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("Storage error: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// writeValidationError returns field-level detail for struct validation
// failures and a generic 400 otherwise.
func writeValidationError(w http.ResponseWriter, err error) {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		details := make([]string, 0, len(fieldErrors))
		for _, fe := range fieldErrors {
			details = append(details, fe.Field()+": failed on "+fe.Tag())
		}
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"message": "Validation failed",
			"fields":  details,
		})
		return
	}
	writeError(w, http.StatusBadRequest, "Invalid request payload")
}

func userIDFromContext(r *http.Request) (int, bool) {
	userID, ok := r.Context().Value(UserIDKey).(int)
	return userID, ok
}

// requireUserID pulls the authenticated user from context, answering 401
// itself when missing.
func requireUserID(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := userIDFromContext(r)
	if !ok {
		log.Println("User ID missing in context")
		writeError(w, http.StatusUnauthorized, "User ID missing in context")
		return 0, false
	}
	return userID, true
}

func pathID(r *http.Request, name string) (int, error) {
	return strconv.Atoi(mux.Vars(r)[name])
}
