package models

import "time"

type NotificationType string

const (
	NotificationMessage        NotificationType = "message"
	NotificationPropertyUpdate NotificationType = "property_update"
	NotificationFavorite       NotificationType = "favorite"
	NotificationSystem         NotificationType = "system"
)

type Notification struct {
	ID        int              `bson:"_id" json:"id"`
	UserID    int              `bson:"userId" json:"userId"`
	Type      NotificationType `bson:"type" json:"type"`
	Title     string           `bson:"title" json:"title"`
	Content   string           `bson:"content" json:"content"`
	Read      bool             `bson:"read" json:"read"`
	LinkURL   string           `bson:"linkUrl,omitempty" json:"linkUrl,omitempty"`
	CreatedAt time.Time        `bson:"createdAt" json:"createdAt"`
}
