package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nyumba-ke/backend/models"
)

// MemoryStore keeps every collection in process memory. It is the default
// backend for development and tests. All access goes through a single
// RWMutex so concurrent request goroutines see at most one mutation in
// flight.
type MemoryStore struct {
	mu sync.RWMutex

	users         map[int]models.User
	properties    map[int]models.Property
	favorites     map[int]models.Favorite
	messages      map[int]models.Message
	neighborhoods map[int]models.Neighborhood
	notifications map[int]models.Notification
	reviews       map[int]models.Review

	userID         int
	propertyID     int
	favoriteID     int
	messageID      int
	neighborhoodID int
	notificationID int
	reviewID       int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[int]models.User),
		properties:    make(map[int]models.Property),
		favorites:     make(map[int]models.Favorite),
		messages:      make(map[int]models.Message),
		neighborhoods: make(map[int]models.Neighborhood),
		notifications: make(map[int]models.Notification),
		reviews:       make(map[int]models.Review),
	}
}

// USERS

func (s *MemoryStore) GetUser(ctx context.Context, id int) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return models.User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return user, nil
}

func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if strings.EqualFold(user.Username, username) {
			return user, nil
		}
	}
	return models.User{}, fmt.Errorf("user %q: %w", username, ErrNotFound)
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return models.User{}, fmt.Errorf("user %q: %w", email, ErrNotFound)
}

func (s *MemoryStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Username, user.Username) {
			return models.User{}, fmt.Errorf("username %q: %w", user.Username, ErrDuplicate)
		}
		if strings.EqualFold(existing.Email, user.Email) {
			return models.User{}, fmt.Errorf("email %q: %w", user.Email, ErrDuplicate)
		}
	}

	s.userID++
	user.ID = s.userID
	if user.Role == "" {
		user.Role = models.RoleTenant
	}
	if user.Language == "" {
		user.Language = "en"
	}
	user.CreatedAt = time.Now()
	s.users[user.ID] = user
	return user, nil
}

func (s *MemoryStore) UpdateUser(ctx context.Context, id int, patch UserPatch) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return models.User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if patch.FullName != nil {
		user.FullName = *patch.FullName
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if patch.Avatar != nil {
		user.Avatar = *patch.Avatar
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if patch.Language != nil {
		user.Language = *patch.Language
	}
	if patch.Password != nil {
		user.Password = *patch.Password
	}
	s.users[id] = user
	return user, nil
}

func (s *MemoryStore) UpdateUserResetToken(ctx context.Context, id int, token string, expiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	user.ResetToken = token
	user.ResetTokenExpiry = &expiry
	s.users[id] = user
	return nil
}

func (s *MemoryStore) GetUserByResetToken(ctx context.Context, token string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.ResetToken != "" && user.ResetToken == token {
			return user, nil
		}
	}
	return models.User{}, fmt.Errorf("reset token: %w", ErrNotFound)
}

func (s *MemoryStore) UpdateUserPassword(ctx context.Context, id int, hashed string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	user.Password = hashed
	user.ResetToken = ""
	user.ResetTokenExpiry = nil
	s.users[id] = user
	return nil
}

// PROPERTIES

func (s *MemoryStore) GetProperties(ctx context.Context, filters models.PropertyFilters) ([]models.Property, error) {
	s.mu.RLock()
	all := make([]models.Property, 0, len(s.properties))
	for _, p := range s.properties {
		all = append(all, p)
	}
	s.mu.RUnlock()

	// Map iteration order is random; restore insertion order before
	// filtering so the default "recommended" order is deterministic.
	sort.SliceStable(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	return FilterProperties(all, filters), nil
}

func (s *MemoryStore) GetProperty(ctx context.Context, id int) (models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	property, ok := s.properties[id]
	if !ok {
		return models.Property{}, fmt.Errorf("property %d: %w", id, ErrNotFound)
	}
	return property, nil
}

func (s *MemoryStore) GetPropertiesByOwner(ctx context.Context, ownerID int) ([]models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	owned := make([]models.Property, 0)
	for _, p := range s.properties {
		if p.OwnerID == ownerID {
			owned = append(owned, p)
		}
	}
	sort.SliceStable(owned, func(i, j int) bool { return owned[i].ID < owned[j].ID })
	return owned, nil
}

func (s *MemoryStore) CreateProperty(ctx context.Context, property models.Property) (models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[property.OwnerID]; !ok {
		return models.Property{}, fmt.Errorf("owner %d: %w", property.OwnerID, ErrNotFound)
	}

	s.propertyID++
	property.ID = s.propertyID
	property.Verified = false
	property.CreatedAt = time.Now()
	property.Normalize()
	s.properties[property.ID] = property
	return property, nil
}

func (s *MemoryStore) UpdateProperty(ctx context.Context, id int, patch PropertyPatch) (models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	property, ok := s.properties[id]
	if !ok {
		return models.Property{}, fmt.Errorf("property %d: %w", id, ErrNotFound)
	}
	if patch.Title != nil {
		property.Title = *patch.Title
	}
	if patch.Description != nil {
		property.Description = *patch.Description
	}
	if patch.Price != nil {
		property.Price = *patch.Price
	}
	if patch.Features != nil {
		property.Features = patch.Features
	}
	if patch.Images != nil {
		property.Images = patch.Images
	}
	s.properties[id] = property
	return property, nil
}

func (s *MemoryStore) DeleteProperty(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.properties[id]; !ok {
		return fmt.Errorf("property %d: %w", id, ErrNotFound)
	}
	delete(s.properties, id)
	return nil
}

// FAVORITES

func (s *MemoryStore) GetFavorites(ctx context.Context, userID int) ([]models.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	favs := make([]models.Favorite, 0)
	for _, f := range s.favorites {
		if f.UserID == userID {
			favs = append(favs, f)
		}
	}
	sort.SliceStable(favs, func(i, j int) bool { return favs[i].ID < favs[j].ID })

	properties := make([]models.Property, 0, len(favs))
	for _, f := range favs {
		if p, ok := s.properties[f.PropertyID]; ok {
			properties = append(properties, p)
		}
	}
	return properties, nil
}

func (s *MemoryStore) IsFavorite(ctx context.Context, userID, propertyID int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.favorites {
		if f.UserID == userID && f.PropertyID == propertyID {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) AddFavorite(ctx context.Context, userID, propertyID int) (models.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return models.Favorite{}, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	if _, ok := s.properties[propertyID]; !ok {
		return models.Favorite{}, fmt.Errorf("property %d: %w", propertyID, ErrNotFound)
	}
	for _, f := range s.favorites {
		if f.UserID == userID && f.PropertyID == propertyID {
			return models.Favorite{}, fmt.Errorf("favorite (%d, %d): %w", userID, propertyID, ErrDuplicate)
		}
	}

	s.favoriteID++
	favorite := models.Favorite{
		ID:         s.favoriteID,
		UserID:     userID,
		PropertyID: propertyID,
		CreatedAt:  time.Now(),
	}
	s.favorites[favorite.ID] = favorite
	return favorite, nil
}

func (s *MemoryStore) RemoveFavorite(ctx context.Context, userID, propertyID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, f := range s.favorites {
		if f.UserID == userID && f.PropertyID == propertyID {
			delete(s.favorites, id)
			return nil
		}
	}
	return fmt.Errorf("favorite (%d, %d): %w", userID, propertyID, ErrNotFound)
}

// MESSAGES

func (s *MemoryStore) GetConversations(ctx context.Context, userID int) ([]models.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	involved := make([]models.Message, 0)
	for _, m := range s.messages {
		if m.SenderID == userID || m.ReceiverID == userID {
			involved = append(involved, m)
		}
	}
	sort.SliceStable(involved, func(i, j int) bool { return involved[i].ID < involved[j].ID })

	return BuildConversations(userID, involved, func(id int) (models.User, bool) {
		user, ok := s.users[id]
		return user, ok
	}), nil
}

func (s *MemoryStore) GetMessages(ctx context.Context, userID, counterpartID int) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.users[counterpartID]; !ok {
		return nil, fmt.Errorf("user %d: %w", counterpartID, ErrNotFound)
	}

	thread := make([]models.Message, 0)
	for _, m := range s.messages {
		if (m.SenderID == userID && m.ReceiverID == counterpartID) ||
			(m.SenderID == counterpartID && m.ReceiverID == userID) {
			thread = append(thread, m)
		}
	}
	SortMessagesChronological(thread)
	return thread, nil
}

func (s *MemoryStore) GetUnreadMessageCount(ctx context.Context, userID int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, m := range s.messages {
		if m.ReceiverID == userID && !m.Read {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) CreateMessage(ctx context.Context, message models.Message) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[message.SenderID]; !ok {
		return models.Message{}, fmt.Errorf("sender %d: %w", message.SenderID, ErrNotFound)
	}
	if _, ok := s.users[message.ReceiverID]; !ok {
		return models.Message{}, fmt.Errorf("receiver %d: %w", message.ReceiverID, ErrNotFound)
	}
	if message.PropertyID != nil {
		if _, ok := s.properties[*message.PropertyID]; !ok {
			return models.Message{}, fmt.Errorf("property %d: %w", *message.PropertyID, ErrNotFound)
		}
	}

	s.messageID++
	message.ID = s.messageID
	message.Read = false
	message.CreatedAt = time.Now()
	s.messages[message.ID] = message
	return message, nil
}

func (s *MemoryStore) MarkMessagesAsRead(ctx context.Context, senderID, receiverID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, m := range s.messages {
		if m.SenderID == senderID && m.ReceiverID == receiverID && !m.Read {
			m.Read = true
			s.messages[id] = m
		}
	}
	return nil
}

// NEIGHBORHOODS

func (s *MemoryStore) GetNeighborhoods(ctx context.Context) ([]models.Neighborhood, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]models.Neighborhood, 0, len(s.neighborhoods))
	for _, n := range s.neighborhoods {
		all = append(all, n)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (s *MemoryStore) GetNeighborhood(ctx context.Context, id int) (models.Neighborhood, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	neighborhood, ok := s.neighborhoods[id]
	if !ok {
		return models.Neighborhood{}, fmt.Errorf("neighborhood %d: %w", id, ErrNotFound)
	}
	return neighborhood, nil
}

func (s *MemoryStore) CreateNeighborhood(ctx context.Context, neighborhood models.Neighborhood) (models.Neighborhood, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.neighborhoodID++
	neighborhood.ID = s.neighborhoodID
	neighborhood.PropertyCount = 0
	s.neighborhoods[neighborhood.ID] = neighborhood
	return neighborhood, nil
}

// NOTIFICATIONS

func (s *MemoryStore) GetNotifications(ctx context.Context, userID int) ([]models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Notification, 0)
	for _, n := range s.notifications {
		if n.UserID == userID {
			result = append(result, n)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *MemoryStore) GetUnreadNotificationCount(ctx context.Context, userID int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, n := range s.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) CreateNotification(ctx context.Context, notification models.Notification) (models.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[notification.UserID]; !ok {
		return models.Notification{}, fmt.Errorf("user %d: %w", notification.UserID, ErrNotFound)
	}

	s.notificationID++
	notification.ID = s.notificationID
	notification.Read = false
	notification.CreatedAt = time.Now()
	s.notifications[notification.ID] = notification
	return notification, nil
}

func (s *MemoryStore) MarkNotificationRead(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notification, ok := s.notifications[id]
	if !ok {
		return fmt.Errorf("notification %d: %w", id, ErrNotFound)
	}
	notification.Read = true
	s.notifications[id] = notification
	return nil
}

func (s *MemoryStore) MarkAllNotificationsRead(ctx context.Context, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, n := range s.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			s.notifications[id] = n
		}
	}
	return nil
}

// REVIEWS

func (s *MemoryStore) GetReview(ctx context.Context, id int) (models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	review, ok := s.reviews[id]
	if !ok {
		return models.Review{}, fmt.Errorf("review %d: %w", id, ErrNotFound)
	}
	return review, nil
}

func (s *MemoryStore) GetPropertyReviews(ctx context.Context, propertyID int) ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Review, 0)
	for _, r := range s.reviews {
		if r.PropertyID == propertyID {
			result = append(result, r)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *MemoryStore) GetPropertyAverageRating(ctx context.Context, propertyID int) (*float64, error) {
	reviews, err := s.GetPropertyReviews(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	return AverageRating(reviews), nil
}

func (s *MemoryStore) CreateReview(ctx context.Context, review models.Review) (models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.properties[review.PropertyID]; !ok {
		return models.Review{}, fmt.Errorf("property %d: %w", review.PropertyID, ErrNotFound)
	}
	if _, ok := s.users[review.UserID]; !ok {
		return models.Review{}, fmt.Errorf("user %d: %w", review.UserID, ErrNotFound)
	}

	// Duplicate reviews per (user, property) are deliberately allowed.
	s.reviewID++
	review.ID = s.reviewID
	review.CreatedAt = time.Now()
	review.UpdatedAt = nil
	s.reviews[review.ID] = review
	return review, nil
}

func (s *MemoryStore) UpdateReview(ctx context.Context, id int, rating int, comment string) (models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	review, ok := s.reviews[id]
	if !ok {
		return models.Review{}, fmt.Errorf("review %d: %w", id, ErrNotFound)
	}
	now := time.Now()
	review.Rating = rating
	review.Comment = comment
	review.UpdatedAt = &now
	s.reviews[id] = review
	return review, nil
}

func (s *MemoryStore) DeleteReview(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[id]; !ok {
		return fmt.Errorf("review %d: %w", id, ErrNotFound)
	}
	delete(s.reviews, id)
	return nil
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}
