package controllers

import (
	"net/http"

	"github.com/nyumba-ke/backend/storage"
)

func GetNotifications(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		notifications, err := store.GetNotifications(r.Context(), userID)
		if err != nil {
			writeStoreError(w, err, "Notifications not found")
			return
		}
		writeJSON(w, http.StatusOK, notifications)
	}
}

func GetUnreadNotificationCount(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		count, err := store.GetUnreadNotificationCount(r.Context(), userID)
		if err != nil {
			writeStoreError(w, err, "User not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"count": count})
	}
}

func MarkNotificationRead(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := requireUserID(w, r); !ok {
			return
		}

		notificationID, err := pathID(r, "id")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid notification ID")
			return
		}

		if err := store.MarkNotificationRead(r.Context(), notificationID); err != nil {
			writeStoreError(w, err, "Notification not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Notification marked as read"})
	}
}

func MarkAllNotificationsRead(store storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		if err := store.MarkAllNotificationsRead(r.Context(), userID); err != nil {
			writeStoreError(w, err, "User not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "All notifications marked as read"})
	}
}
