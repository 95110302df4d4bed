package models

type Neighborhood struct {
	ID          int    `bson:"_id" json:"id"`
	Name        string `bson:"name" json:"name"`
	City        string `bson:"city" json:"city"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Image       string `bson:"image,omitempty" json:"image,omitempty"`
	// PropertyCount is denormalized and not maintained by property
	// create/delete. Whether it should be live-updated is an open product
	// question; it currently only changes via direct writes.
	PropertyCount int `bson:"propertyCount" json:"propertyCount"`
}
