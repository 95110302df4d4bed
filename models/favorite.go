package models

import "time"

type Favorite struct {
	ID         int       `bson:"_id" json:"id"`
	UserID     int       `bson:"userId" json:"userId"`
	PropertyID int       `bson:"propertyId" json:"propertyId"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}
