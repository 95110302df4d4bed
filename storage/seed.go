package storage

import (
	"context"
	"fmt"

	"github.com/nyumba-ke/backend/models"
	"github.com/nyumba-ke/backend/utils"
)

func intPtr(v int) *int { return &v }

// Seed loads the development data set: a handful of users, neighborhoods and
// listings plus favorites, notifications and two message threads. Intended
// for the memory backend only.
func Seed(ctx context.Context, store Store) error {
	password, err := utils.HashPassword("password123")
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	users := []models.User{
		{
			Username: "shakii",
			Password: password,
			Email:    "shakii@example.com",
			FullName: "Cale Shakii",
			Phone:    "+254712345678",
			Role:     models.RoleTenant,
			Bio:      "Looking for a nice place in Nairobi",
			Language: "en",
		},
		{
			Username: "lebleba",
			Password: password,
			Email:    "leb@example.com",
			FullName: "Leb Leba",
			Phone:    "+254723456789",
			Avatar:   "shared/images/mombasa-at-night2.jpg",
			Role:     models.RoleLandlord,
			Bio:      "Property owner in Nairobi",
			Language: "en",
		},
		{
			Username: "sarahk",
			Password: password,
			Email:    "sarah@example.com",
			FullName: "Sarah Kamau",
			Phone:    "+254734567890",
			Avatar:   "client/assets/img1.png",
			Role:     models.RoleAgent,
			Bio:      "Real estate agent with 5 years experience",
			Language: "en",
		},
	}
	for _, u := range users {
		if _, err := store.CreateUser(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Username, err)
		}
	}

	neighborhoods := []models.Neighborhood{
		{Name: "Westlands", City: "Nairobi", Description: "Upscale commercial and residential area in Nairobi", Image: "https://images.unsplash.com/photo-1613977257592-4871e5fcd7c4?w=800&auto=format"},
		{Name: "Kilimani", City: "Nairobi", Description: "Popular residential area with many apartments", Image: "https://images.unsplash.com/photo-1613977257363-707ba9348227?w=800&auto=format"},
		{Name: "Karen", City: "Nairobi", Description: "Affluent suburb with large houses and plots", Image: "https://images.unsplash.com/photo-1613490493576-7fde63acd811?w=800&auto=format"},
		{Name: "Lavington", City: "Nairobi", Description: "Quiet residential area with good security", Image: "https://images.unsplash.com/photo-1572003818138-19cf96ee15e7?w=800&auto=format"},
	}
	for _, n := range neighborhoods {
		if _, err := store.CreateNeighborhood(ctx, n); err != nil {
			return fmt.Errorf("seed neighborhood %s: %w", n.Name, err)
		}
	}

	properties := []models.Property{
		{
			Title:        "Modern 2 Bedroom Apartment",
			Description:  "Beautiful apartment with modern finishes, located in a secure compound with parking and swimming pool.",
			Price:        45000,
			PropertyType: models.PropertyApartment,
			ListingType:  models.ListingRent,
			Bedrooms:     2,
			Bathrooms:    2,
			Area:         85,
			Location:     "Kilimani, Nairobi",
			Address:      "Rose Avenue, Kilimani",
			Latitude:     -1.2921,
			Longitude:    36.7892,
			Features:     []string{"swimming pool", "security", "parking", "gym", "furnished"},
			Images: []string{
				"https://images.unsplash.com/photo-1512917774080-9991f1c4c750",
				"https://images.unsplash.com/photo-1554995207-c18c203602cb",
				"https://images.unsplash.com/photo-1560448204-e02f11c3d0e2",
			},
			OwnerID: 2,
		},
		{
			Title:        "Spacious 4 Bedroom Family Home",
			Description:  "Large family home with garden, located in the quiet Karen neighborhood. Excellent for families with children.",
			Price:        18500000,
			PropertyType: models.PropertyHouse,
			ListingType:  models.ListingSale,
			Bedrooms:     4,
			Bathrooms:    3,
			Area:         250,
			Location:     "Karen, Nairobi",
			Address:      "Karen Road, Karen",
			Latitude:     -1.3224,
			Longitude:    36.7064,
			Features:     []string{"garden", "security", "parking", "servant quarter", "borehole"},
			Images: []string{
				"https://images.unsplash.com/photo-1568605114967-8130f3a36994",
				"https://images.unsplash.com/photo-1600210492493-0946911123ea",
				"https://images.unsplash.com/photo-1600566753086-00f18fb6b3ea",
			},
			OwnerID: 2,
		},
		{
			Title:        "Modern Studio Apartment",
			Description:  "Cozy studio apartment perfect for singles or couples. Located close to shopping centers and public transportation.",
			Price:        30000,
			PropertyType: models.PropertyApartment,
			ListingType:  models.ListingRent,
			Bedrooms:     1,
			Bathrooms:    1,
			Area:         45,
			Location:     "Westlands, Nairobi",
			Address:      "Waiyaki Way, Westlands",
			Latitude:     -1.2662,
			Longitude:    36.8063,
			Features:     []string{"security", "parking", "furnished", "internet"},
			Images: []string{
				"https://images.unsplash.com/photo-1522708323590-d24dbb6b0267",
				"https://images.unsplash.com/photo-1524758631624-e2822e304c36",
				"https://images.unsplash.com/photo-1578683010236-d716f9a3f461",
			},
			OwnerID: 3,
		},
		{
			Title:        "Luxury 3 Bedroom Apartment",
			Description:  "Luxurious apartment with high-end finishes, ample parking and 24-hour security. Located in a serene environment.",
			Price:        60000,
			PropertyType: models.PropertyApartment,
			ListingType:  models.ListingRent,
			Bedrooms:     3,
			Bathrooms:    2,
			Area:         120,
			Location:     "Lavington, Nairobi",
			Address:      "James Gichuru Road, Lavington",
			Latitude:     -1.2833,
			Longitude:    36.7667,
			Features:     []string{"swimming pool", "security", "parking", "gym", "furnished", "balcony"},
			Images: []string{
				"https://images.unsplash.com/photo-1613977257363-707ba9348227",
				"https://images.unsplash.com/photo-1564013434775-f71db0030976",
				"https://images.unsplash.com/photo-1622015663319-e97cf3a4e2d4",
			},
			OwnerID: 3,
		},
		{
			Title:        "Modern 4 Bedroom Townhouse",
			Description:  "Elegant townhouse in a gated community with excellent security, garden and play area for children.",
			Price:        22000000,
			PropertyType: models.PropertyTownhouse,
			ListingType:  models.ListingSale,
			Bedrooms:     4,
			Bathrooms:    3,
			Area:         220,
			Location:     "Runda, Nairobi",
			Address:      "Runda Drive, Runda",
			Latitude:     -1.2194,
			Longitude:    36.8062,
			Features:     []string{"garden", "security", "parking", "servant quarter", "gym"},
			Images: []string{
				"https://images.unsplash.com/photo-1545324418-cc1a3fa10c00?w=800&auto=format",
			},
			OwnerID: 2,
		},
		{
			Title:        "Spacious 2 Bedroom Apartment",
			Description:  "Well-maintained apartment with spacious rooms, located in a family-friendly neighborhood with good amenities.",
			Price:        35000,
			PropertyType: models.PropertyApartment,
			ListingType:  models.ListingRent,
			Bedrooms:     2,
			Bathrooms:    1,
			Area:         75,
			Location:     "Parklands, Nairobi",
			Address:      "Forest Road, Parklands",
			Latitude:     -1.2633,
			Longitude:    36.8172,
			Features:     []string{"security", "parking", "water storage"},
			Images: []string{
				"https://images.unsplash.com/photo-1594484208280-efa00f96fc21",
				"https://images.unsplash.com/photo-1589834390005-5d4fb9bf3d32",
				"https://images.unsplash.com/photo-1558997519-83ea9252edf8",
			},
			OwnerID: 3,
		},
	}
	for _, p := range properties {
		if _, err := store.CreateProperty(ctx, p); err != nil {
			return fmt.Errorf("seed property %s: %w", p.Title, err)
		}
	}

	reviews := []models.Review{
		{PropertyID: 1, UserID: 2, Rating: 5, Comment: "Beautiful apartment with amazing views. The location is perfect and the amenities are top-notch."},
		{PropertyID: 1, UserID: 3, Rating: 4, Comment: "Great property but slightly overpriced. The security and parking are excellent."},
		{PropertyID: 2, UserID: 1, Rating: 5, Comment: "Spacious house with a beautiful garden. Perfect for families. The neighborhood is quiet and safe."},
		{PropertyID: 3, UserID: 1, Rating: 4, Comment: "Modern apartment with great amenities. The gym and pool are well maintained."},
		{PropertyID: 4, UserID: 2, Rating: 5, Comment: "Excellent location near shopping centers and restaurants. The house is well maintained."},
	}
	for _, r := range reviews {
		if _, err := store.CreateReview(ctx, r); err != nil {
			return fmt.Errorf("seed review: %w", err)
		}
	}

	notifications := []models.Notification{
		{UserID: 1, Type: models.NotificationMessage, Title: "New Message", Content: "You have a new message from John regarding the studio apartment.", LinkURL: "/messages/3"},
		{UserID: 1, Type: models.NotificationPropertyUpdate, Title: "Price Update", Content: "A property in your favorites list has updated its price.", LinkURL: "/properties/3"},
		{UserID: 2, Type: models.NotificationFavorite, Title: "New Interest", Content: "Someone added your property to their favorites.", LinkURL: "/properties/1"},
		{UserID: 3, Type: models.NotificationSystem, Title: "Welcome!", Content: "Welcome to Nyumba! Complete your profile to get started.", LinkURL: "/profile"},
	}
	for _, n := range notifications {
		if _, err := store.CreateNotification(ctx, n); err != nil {
			return fmt.Errorf("seed notification: %w", err)
		}
	}

	for _, propertyID := range []int{3, 6} {
		if _, err := store.AddFavorite(ctx, 1, propertyID); err != nil {
			return fmt.Errorf("seed favorite: %w", err)
		}
	}

	messages := []models.Message{
		{SenderID: 1, ReceiverID: 3, PropertyID: intPtr(3), Content: "Hello, I'm interested in the studio apartment. Is it still available?"},
		{SenderID: 3, ReceiverID: 1, PropertyID: intPtr(3), Content: "Yes, it's available. Would you like to schedule a viewing?"},
		{SenderID: 1, ReceiverID: 3, PropertyID: intPtr(3), Content: "Yes, I would. Are you available this weekend?"},
		{SenderID: 3, ReceiverID: 1, PropertyID: intPtr(3), Content: "I can do Saturday afternoon. How about 2pm?"},
		{SenderID: 1, ReceiverID: 2, PropertyID: intPtr(1), Content: "Hi, I saw your apartment listing and I'm interested. Can I get more details?"},
		{SenderID: 2, ReceiverID: 1, PropertyID: intPtr(1), Content: "Hello! Yes, what would you like to know about the apartment?"},
	}
	for _, m := range messages {
		if _, err := store.CreateMessage(ctx, m); err != nil {
			return fmt.Errorf("seed message: %w", err)
		}
	}

	return nil
}
