package storage

import (
	"context"
	"errors"
	"time"

	"github.com/nyumba-ke/backend/models"
)

// Sentinel errors shared by all Store backends. Callers match with
// errors.Is and map them onto HTTP statuses.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("already exists")
)

// UserPatch holds the profile fields a user may change. Nil means "leave
// as is".
type UserPatch struct {
	FullName *string
	Phone    *string
	Avatar   *string
	Bio      *string
	Language *string
	Password *string
}

// PropertyPatch holds the listing fields an owner may change.
type PropertyPatch struct {
	Title       *string
	Description *string
	Price       *int
	Features    []string
	Images      []string
}

// Store is the persistence port for the marketplace. Every write validates
// foreign keys against existing entities and every backend hands out
// monotonically increasing integer ids that are never reused.
type Store interface {
	// Users
	GetUser(ctx context.Context, id int) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	UpdateUser(ctx context.Context, id int, patch UserPatch) (models.User, error)
	UpdateUserResetToken(ctx context.Context, id int, token string, expiry time.Time) error
	GetUserByResetToken(ctx context.Context, token string) (models.User, error)
	UpdateUserPassword(ctx context.Context, id int, hashed string) error

	// Properties
	GetProperties(ctx context.Context, filters models.PropertyFilters) ([]models.Property, error)
	GetProperty(ctx context.Context, id int) (models.Property, error)
	GetPropertiesByOwner(ctx context.Context, ownerID int) ([]models.Property, error)
	CreateProperty(ctx context.Context, property models.Property) (models.Property, error)
	UpdateProperty(ctx context.Context, id int, patch PropertyPatch) (models.Property, error)
	DeleteProperty(ctx context.Context, id int) error

	// Favorites
	GetFavorites(ctx context.Context, userID int) ([]models.Property, error)
	IsFavorite(ctx context.Context, userID, propertyID int) (bool, error)
	AddFavorite(ctx context.Context, userID, propertyID int) (models.Favorite, error)
	RemoveFavorite(ctx context.Context, userID, propertyID int) error

	// Messages
	GetConversations(ctx context.Context, userID int) ([]models.Conversation, error)
	GetMessages(ctx context.Context, userID, counterpartID int) ([]models.Message, error)
	GetUnreadMessageCount(ctx context.Context, userID int) (int, error)
	CreateMessage(ctx context.Context, message models.Message) (models.Message, error)
	MarkMessagesAsRead(ctx context.Context, senderID, receiverID int) error

	// Neighborhoods
	GetNeighborhoods(ctx context.Context) ([]models.Neighborhood, error)
	GetNeighborhood(ctx context.Context, id int) (models.Neighborhood, error)
	CreateNeighborhood(ctx context.Context, neighborhood models.Neighborhood) (models.Neighborhood, error)

	// Notifications
	GetNotifications(ctx context.Context, userID int) ([]models.Notification, error)
	GetUnreadNotificationCount(ctx context.Context, userID int) (int, error)
	CreateNotification(ctx context.Context, notification models.Notification) (models.Notification, error)
	MarkNotificationRead(ctx context.Context, id int) error
	MarkAllNotificationsRead(ctx context.Context, userID int) error

	// Reviews
	GetReview(ctx context.Context, id int) (models.Review, error)
	GetPropertyReviews(ctx context.Context, propertyID int) ([]models.Review, error)
	GetPropertyAverageRating(ctx context.Context, propertyID int) (*float64, error)
	CreateReview(ctx context.Context, review models.Review) (models.Review, error)
	UpdateReview(ctx context.Context, id int, rating int, comment string) (models.Review, error)
	DeleteReview(ctx context.Context, id int) error

	Close(ctx context.Context) error
}
