package models

import "time"

type PropertyType string

const (
	PropertyApartment  PropertyType = "apartment"
	PropertyHouse      PropertyType = "house"
	PropertyVilla      PropertyType = "villa"
	PropertyTownhouse  PropertyType = "townhouse"
	PropertyOffice     PropertyType = "office"
	PropertyCommercial PropertyType = "commercial"
	PropertyLand       PropertyType = "land"
)

type ListingType string

const (
	ListingRent ListingType = "rent"
	ListingSale ListingType = "sale"
)

type Property struct {
	ID           int          `bson:"_id" json:"id"`
	Title        string       `bson:"title" json:"title"`
	Description  string       `bson:"description" json:"description"`
	Price        int          `bson:"price" json:"price"`
	PropertyType PropertyType `bson:"propertyType" json:"propertyType"`
	ListingType  ListingType  `bson:"listingType" json:"listingType"`
	Bedrooms     int          `bson:"bedrooms" json:"bedrooms"`
	Bathrooms    int          `bson:"bathrooms" json:"bathrooms"`
	Area         int          `bson:"area" json:"area"`
	Location     string       `bson:"location" json:"location"`
	Address      string       `bson:"address" json:"address"`
	Latitude     float64      `bson:"latitude" json:"latitude"`
	Longitude    float64      `bson:"longitude" json:"longitude"`
	Features     []string     `bson:"features" json:"features"`
	Images       []string     `bson:"images" json:"images"`
	OwnerID      int          `bson:"ownerId" json:"ownerId"`
	Verified     bool         `bson:"verified" json:"verified"`
	CreatedAt    time.Time    `bson:"createdAt" json:"createdAt"`
}

// Normalize coerces nil optional collections to empty ones so predicate
// logic never has to special-case missing fields.
func (p *Property) Normalize() {
	if p.Features == nil {
		p.Features = []string{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
}

// Sort orders accepted by the property search.
const (
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortNewest    = "newest"
)

// PropertyFilters is the search configuration. Every field is optional;
// nil pointers and empty strings mean the predicate is off. Set predicates
// are combined with logical AND.
type PropertyFilters struct {
	Search       string
	Location     string
	PropertyType string
	ListingType  string
	MinPrice     *int
	MaxPrice     *int
	MinBedrooms  *int
	MaxBedrooms  *int
	MinBathrooms *int
	Features     []string
	SortBy       string
}
