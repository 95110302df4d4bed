package models

import "time"

type Review struct {
	ID         int        `bson:"_id" json:"id"`
	PropertyID int        `bson:"propertyId" json:"propertyId"`
	UserID     int        `bson:"userId" json:"userId"`
	Rating     int        `bson:"rating" json:"rating"`
	Comment    string     `bson:"comment" json:"comment"`
	CreatedAt  time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt  *time.Time `bson:"updatedAt,omitempty" json:"updatedAt"`
}
