package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/nyumba-ke/backend/models"
	"github.com/nyumba-ke/backend/storage"
)

func GetConversations(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		conversations, err := store.GetConversations(r.Context(), userID)
		if err != nil {
			writeStoreError(w, err, "Conversations not found")
			return
		}
		writeJSON(w, http.StatusOK, conversations)
	}
}

type threadResponse struct {
	Messages []models.Message `json:"messages"`
	User     models.User      `json:"user"`
}

// GetMessages returns the thread with a counterpart, oldest first, and marks
// the counterpart's messages to the caller as read.
func GetMessages(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		counterpartID, err := pathID(r, "userId")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid user ID")
			return
		}

		counterpart, err := store.GetUser(r.Context(), counterpartID)
		if err != nil {
			writeStoreError(w, err, "User not found")
			return
		}

		messages, err := store.GetMessages(r.Context(), userID, counterpartID)
		if err != nil {
			writeStoreError(w, err, "User not found")
			return
		}

		if err := store.MarkMessagesAsRead(r.Context(), counterpartID, userID); err != nil {
			log.Printf("Failed to mark messages read for user %d: %v", userID, err)
		}

		writeJSON(w, http.StatusOK, threadResponse{
			Messages: messages,
			User:     counterpart,
		})
	}
}

type messageRequest struct {
	ReceiverID int    `json:"receiverId" validate:"required,gt=0"`
	PropertyID *int   `json:"propertyId" validate:"omitempty,gt=0"`
	Content    string `json:"content" validate:"required"`
}

func SendMessage(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		senderID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		var req messageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request payload")
			return
		}
		if err := validate.Struct(req); err != nil {
			writeValidationError(w, err)
			return
		}

		message, err := store.CreateMessage(r.Context(), models.Message{
			SenderID:   senderID,
			ReceiverID: req.ReceiverID,
			PropertyID: req.PropertyID,
			Content:    req.Content,
		})
		if err != nil {
			writeStoreError(w, err, "Receiver not found")
			return
		}

		notifyMessageReceived(r, store, message)

		writeJSON(w, http.StatusCreated, message)
	}
}

func notifyMessageReceived(r *http.Request, store storage.Store, message models.Message) {
	sender, err := store.GetUser(r.Context(), message.SenderID)
	if err != nil {
		return
	}
	_, err = store.CreateNotification(r.Context(), models.Notification{
		UserID:  message.ReceiverID,
		Type:    models.NotificationMessage,
		Title:   "New Message",
		Content: fmt.Sprintf("You have a new message from %s.", sender.FullName),
		LinkURL: fmt.Sprintf("/messages/%d", message.SenderID),
	})
	if err != nil {
		log.Printf("Failed to create message notification: %v", err)
	}
}

func GetUnreadMessageCount(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		count, err := store.GetUnreadMessageCount(r.Context(), userID)
		if err != nil {
			writeStoreError(w, err, "User not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"count": count})
	}
}
