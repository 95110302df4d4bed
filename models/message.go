package models

import "time"

type Message struct {
	ID         int       `bson:"_id" json:"id"`
	SenderID   int       `bson:"senderId" json:"senderId"`
	ReceiverID int       `bson:"receiverId" json:"receiverId"`
	PropertyID *int      `bson:"propertyId,omitempty" json:"propertyId,omitempty"`
	Content    string    `bson:"content" json:"content"`
	Read       bool      `bson:"read" json:"read"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// Conversation is a per-counterpart summary derived from the flat message
// collection for one user.
type Conversation struct {
	User        User    `json:"user"`
	LastMessage Message `json:"lastMessage"`
	UnreadCount int     `json:"unreadCount"`
}
