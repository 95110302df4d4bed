package storage

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nyumba-ke/backend/models"
)

// MongoStore backs the Store port with MongoDB collections. Integer ids come
// from a counters collection so they stay monotonic across restarts and are
// never reused after deletes.
type MongoStore struct {
	client        *mongo.Client
	users         *mongo.Collection
	properties    *mongo.Collection
	favorites     *mongo.Collection
	messages      *mongo.Collection
	neighborhoods *mongo.Collection
	notifications *mongo.Collection
	reviews       *mongo.Collection
	counters      *mongo.Collection
}

func NewMongoStore(client *mongo.Client, dbName string) *MongoStore {
	db := client.Database(dbName)
	return &MongoStore{
		client:        client,
		users:         db.Collection("users"),
		properties:    db.Collection("properties"),
		favorites:     db.Collection("favorites"),
		messages:      db.Collection("messages"),
		neighborhoods: db.Collection("neighborhoods"),
		notifications: db.Collection("notifications"),
		reviews:       db.Collection("reviews"),
		counters:      db.Collection("counters"),
	}
}

func (s *MongoStore) nextID(ctx context.Context, name string) (int, error) {
	var counter struct {
		Seq int `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next id for %s: %v", name, err)
	}
	return counter.Seq, nil
}

func exactFold(value string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexp.QuoteMeta(value) + "$", Options: "i"}
}

func (s *MongoStore) userExists(ctx context.Context, id int) error {
	count, err := s.users.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *MongoStore) propertyExists(ctx context.Context, id int) error {
	count, err := s.properties.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("property %d: %w", id, ErrNotFound)
	}
	return nil
}

// USERS

func (s *MongoStore) GetUser(ctx context.Context, id int) (models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *MongoStore) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"username": exactFold(username)}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, fmt.Errorf("user %q: %w", username, ErrNotFound)
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": exactFold(email)}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, fmt.Errorf("user %q: %w", email, ErrNotFound)
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *MongoStore) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if _, err := s.GetUserByUsername(ctx, user.Username); err == nil {
		return models.User{}, fmt.Errorf("username %q: %w", user.Username, ErrDuplicate)
	}
	if _, err := s.GetUserByEmail(ctx, user.Email); err == nil {
		return models.User{}, fmt.Errorf("email %q: %w", user.Email, ErrDuplicate)
	}

	id, err := s.nextID(ctx, "users")
	if err != nil {
		return models.User{}, err
	}
	user.ID = id
	if user.Role == "" {
		user.Role = models.RoleTenant
	}
	if user.Language == "" {
		user.Language = "en"
	}
	user.CreatedAt = time.Now()

	if _, err := s.users.InsertOne(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *MongoStore) UpdateUser(ctx context.Context, id int, patch UserPatch) (models.User, error) {
	set := bson.M{}
	if patch.FullName != nil {
		set["fullName"] = *patch.FullName
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.Avatar != nil {
		set["avatar"] = *patch.Avatar
	}
	if patch.Bio != nil {
		set["bio"] = *patch.Bio
	}
	if patch.Language != nil {
		set["language"] = *patch.Language
	}
	if patch.Password != nil {
		set["password"] = *patch.Password
	}
	if len(set) == 0 {
		return s.GetUser(ctx, id)
	}

	var user models.User
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.users.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *MongoStore) UpdateUserResetToken(ctx context.Context, id int, token string, expiry time.Time) error {
	res, err := s.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"resetToken": token, "resetTokenExpiry": expiry},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *MongoStore) GetUserByResetToken(ctx context.Context, token string) (models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"resetToken": token}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, fmt.Errorf("reset token: %w", ErrNotFound)
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *MongoStore) UpdateUserPassword(ctx context.Context, id int, hashed string) error {
	res, err := s.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set":   bson.M{"password": hashed},
		"$unset": bson.M{"resetToken": "", "resetTokenExpiry": ""},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	return nil
}

// PROPERTIES

func propertyQuery(f models.PropertyFilters) bson.M {
	var andConditions []bson.M

	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		andConditions = append(andConditions, bson.M{"$or": bson.A{
			bson.M{"title": pattern},
			bson.M{"description": pattern},
			bson.M{"location": pattern},
		}})
	}
	if f.Location != "" {
		andConditions = append(andConditions, bson.M{
			"location": primitive.Regex{Pattern: regexp.QuoteMeta(f.Location), Options: "i"},
		})
	}
	if f.PropertyType != "" {
		andConditions = append(andConditions, bson.M{"propertyType": f.PropertyType})
	}
	if f.ListingType != "" {
		andConditions = append(andConditions, bson.M{"listingType": f.ListingType})
	}

	priceConditions := bson.M{}
	if f.MinPrice != nil {
		priceConditions["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		priceConditions["$lte"] = *f.MaxPrice
	}
	if len(priceConditions) > 0 {
		andConditions = append(andConditions, bson.M{"price": priceConditions})
	}

	bedroomConditions := bson.M{}
	if f.MinBedrooms != nil {
		bedroomConditions["$gte"] = *f.MinBedrooms
	}
	if f.MaxBedrooms != nil {
		bedroomConditions["$lte"] = *f.MaxBedrooms
	}
	if len(bedroomConditions) > 0 {
		andConditions = append(andConditions, bson.M{"bedrooms": bedroomConditions})
	}

	if f.MinBathrooms != nil {
		andConditions = append(andConditions, bson.M{"bathrooms": bson.M{"$gte": *f.MinBathrooms}})
	}
	if len(f.Features) > 0 {
		andConditions = append(andConditions, bson.M{"features": bson.M{"$all": f.Features}})
	}

	query := bson.M{}
	if len(andConditions) > 0 {
		query["$and"] = andConditions
	}
	return query
}

func propertySort(sortBy string) bson.D {
	switch sortBy {
	case models.SortPriceLow:
		return bson.D{{Key: "price", Value: 1}, {Key: "_id", Value: 1}}
	case models.SortPriceHigh:
		return bson.D{{Key: "price", Value: -1}, {Key: "_id", Value: 1}}
	case models.SortNewest:
		return bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}
	default:
		return bson.D{{Key: "_id", Value: 1}}
	}
}

func (s *MongoStore) GetProperties(ctx context.Context, filters models.PropertyFilters) ([]models.Property, error) {
	opts := options.Find().SetSort(propertySort(filters.SortBy))
	cursor, err := s.properties.Find(ctx, propertyQuery(filters), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	properties := make([]models.Property, 0)
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	for i := range properties {
		properties[i].Normalize()
	}
	return properties, nil
}

func (s *MongoStore) GetProperty(ctx context.Context, id int) (models.Property, error) {
	var property models.Property
	err := s.properties.FindOne(ctx, bson.M{"_id": id}).Decode(&property)
	if err == mongo.ErrNoDocuments {
		return models.Property{}, fmt.Errorf("property %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Property{}, err
	}
	property.Normalize()
	return property, nil
}

func (s *MongoStore) GetPropertiesByOwner(ctx context.Context, ownerID int) ([]models.Property, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.properties.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	properties := make([]models.Property, 0)
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	for i := range properties {
		properties[i].Normalize()
	}
	return properties, nil
}

func (s *MongoStore) CreateProperty(ctx context.Context, property models.Property) (models.Property, error) {
	if err := s.userExists(ctx, property.OwnerID); err != nil {
		return models.Property{}, fmt.Errorf("owner: %w", err)
	}

	id, err := s.nextID(ctx, "properties")
	if err != nil {
		return models.Property{}, err
	}
	property.ID = id
	property.Verified = false
	property.CreatedAt = time.Now()
	property.Normalize()

	if _, err := s.properties.InsertOne(ctx, property); err != nil {
		return models.Property{}, err
	}
	return property, nil
}

func (s *MongoStore) UpdateProperty(ctx context.Context, id int, patch PropertyPatch) (models.Property, error) {
	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Features != nil {
		set["features"] = patch.Features
	}
	if patch.Images != nil {
		set["images"] = patch.Images
	}
	if len(set) == 0 {
		return s.GetProperty(ctx, id)
	}

	var property models.Property
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.properties.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&property)
	if err == mongo.ErrNoDocuments {
		return models.Property{}, fmt.Errorf("property %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Property{}, err
	}
	property.Normalize()
	return property, nil
}

func (s *MongoStore) DeleteProperty(ctx context.Context, id int) error {
	res, err := s.properties.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("property %d: %w", id, ErrNotFound)
	}
	return nil
}

// FAVORITES

func (s *MongoStore) GetFavorites(ctx context.Context, userID int) ([]models.Property, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "properties",
			"localField":   "propertyId",
			"foreignField": "_id",
			"as":           "propertyDetails",
		}}},
		{{Key: "$unwind", Value: "$propertyDetails"}},
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$propertyDetails"}}},
	}

	cursor, err := s.favorites.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	properties := make([]models.Property, 0)
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	for i := range properties {
		properties[i].Normalize()
	}
	return properties, nil
}

func (s *MongoStore) IsFavorite(ctx context.Context, userID, propertyID int) (bool, error) {
	count, err := s.favorites.CountDocuments(ctx, bson.M{"userId": userID, "propertyId": propertyID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *MongoStore) AddFavorite(ctx context.Context, userID, propertyID int) (models.Favorite, error) {
	if err := s.userExists(ctx, userID); err != nil {
		return models.Favorite{}, err
	}
	if err := s.propertyExists(ctx, propertyID); err != nil {
		return models.Favorite{}, err
	}

	exists, err := s.IsFavorite(ctx, userID, propertyID)
	if err != nil {
		return models.Favorite{}, err
	}
	if exists {
		return models.Favorite{}, fmt.Errorf("favorite (%d, %d): %w", userID, propertyID, ErrDuplicate)
	}

	id, err := s.nextID(ctx, "favorites")
	if err != nil {
		return models.Favorite{}, err
	}
	favorite := models.Favorite{
		ID:         id,
		UserID:     userID,
		PropertyID: propertyID,
		CreatedAt:  time.Now(),
	}
	if _, err := s.favorites.InsertOne(ctx, favorite); err != nil {
		return models.Favorite{}, err
	}
	return favorite, nil
}

func (s *MongoStore) RemoveFavorite(ctx context.Context, userID, propertyID int) error {
	res, err := s.favorites.DeleteOne(ctx, bson.M{"userId": userID, "propertyId": propertyID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("favorite (%d, %d): %w", userID, propertyID, ErrNotFound)
	}
	return nil
}

// MESSAGES

func (s *MongoStore) messagesFor(ctx context.Context, filter bson.M) ([]models.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.messages.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := make([]models.Message, 0)
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *MongoStore) GetConversations(ctx context.Context, userID int) ([]models.Conversation, error) {
	involved, err := s.messagesFor(ctx, bson.M{"$or": bson.A{
		bson.M{"senderId": userID},
		bson.M{"receiverId": userID},
	}})
	if err != nil {
		return nil, err
	}

	// The counterpart set is small (one lookup per distinct contact), so
	// per-id FindOne beats a $lookup round trip here.
	return BuildConversations(userID, involved, func(id int) (models.User, bool) {
		user, err := s.GetUser(ctx, id)
		if err != nil {
			return models.User{}, false
		}
		return user, true
	}), nil
}

func (s *MongoStore) GetMessages(ctx context.Context, userID, counterpartID int) ([]models.Message, error) {
	if err := s.userExists(ctx, counterpartID); err != nil {
		return nil, err
	}

	thread, err := s.messagesFor(ctx, bson.M{"$or": bson.A{
		bson.M{"senderId": userID, "receiverId": counterpartID},
		bson.M{"senderId": counterpartID, "receiverId": userID},
	}})
	if err != nil {
		return nil, err
	}
	SortMessagesChronological(thread)
	return thread, nil
}

func (s *MongoStore) GetUnreadMessageCount(ctx context.Context, userID int) (int, error) {
	count, err := s.messages.CountDocuments(ctx, bson.M{"receiverId": userID, "read": false})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (s *MongoStore) CreateMessage(ctx context.Context, message models.Message) (models.Message, error) {
	if err := s.userExists(ctx, message.SenderID); err != nil {
		return models.Message{}, fmt.Errorf("sender: %w", err)
	}
	if err := s.userExists(ctx, message.ReceiverID); err != nil {
		return models.Message{}, fmt.Errorf("receiver: %w", err)
	}
	if message.PropertyID != nil {
		if err := s.propertyExists(ctx, *message.PropertyID); err != nil {
			return models.Message{}, err
		}
	}

	id, err := s.nextID(ctx, "messages")
	if err != nil {
		return models.Message{}, err
	}
	message.ID = id
	message.Read = false
	message.CreatedAt = time.Now()

	if _, err := s.messages.InsertOne(ctx, message); err != nil {
		return models.Message{}, err
	}
	return message, nil
}

func (s *MongoStore) MarkMessagesAsRead(ctx context.Context, senderID, receiverID int) error {
	_, err := s.messages.UpdateMany(ctx,
		bson.M{"senderId": senderID, "receiverId": receiverID, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	return err
}

// NEIGHBORHOODS

func (s *MongoStore) GetNeighborhoods(ctx context.Context) ([]models.Neighborhood, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := s.neighborhoods.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	neighborhoods := make([]models.Neighborhood, 0)
	if err := cursor.All(ctx, &neighborhoods); err != nil {
		return nil, err
	}
	return neighborhoods, nil
}

func (s *MongoStore) GetNeighborhood(ctx context.Context, id int) (models.Neighborhood, error) {
	var neighborhood models.Neighborhood
	err := s.neighborhoods.FindOne(ctx, bson.M{"_id": id}).Decode(&neighborhood)
	if err == mongo.ErrNoDocuments {
		return models.Neighborhood{}, fmt.Errorf("neighborhood %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Neighborhood{}, err
	}
	return neighborhood, nil
}

func (s *MongoStore) CreateNeighborhood(ctx context.Context, neighborhood models.Neighborhood) (models.Neighborhood, error) {
	id, err := s.nextID(ctx, "neighborhoods")
	if err != nil {
		return models.Neighborhood{}, err
	}
	neighborhood.ID = id
	neighborhood.PropertyCount = 0

	if _, err := s.neighborhoods.InsertOne(ctx, neighborhood); err != nil {
		return models.Neighborhood{}, err
	}
	return neighborhood, nil
}

// NOTIFICATIONS

func (s *MongoStore) GetNotifications(ctx context.Context, userID int) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := s.notifications.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notifications := make([]models.Notification, 0)
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (s *MongoStore) GetUnreadNotificationCount(ctx context.Context, userID int) (int, error) {
	count, err := s.notifications.CountDocuments(ctx, bson.M{"userId": userID, "read": false})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (s *MongoStore) CreateNotification(ctx context.Context, notification models.Notification) (models.Notification, error) {
	if err := s.userExists(ctx, notification.UserID); err != nil {
		return models.Notification{}, err
	}

	id, err := s.nextID(ctx, "notifications")
	if err != nil {
		return models.Notification{}, err
	}
	notification.ID = id
	notification.Read = false
	notification.CreatedAt = time.Now()

	if _, err := s.notifications.InsertOne(ctx, notification); err != nil {
		return models.Notification{}, err
	}
	return notification, nil
}

func (s *MongoStore) MarkNotificationRead(ctx context.Context, id int) error {
	res, err := s.notifications.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("notification %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *MongoStore) MarkAllNotificationsRead(ctx context.Context, userID int) error {
	_, err := s.notifications.UpdateMany(ctx,
		bson.M{"userId": userID, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	return err
}

// REVIEWS

func (s *MongoStore) GetReview(ctx context.Context, id int) (models.Review, error) {
	var review models.Review
	err := s.reviews.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err == mongo.ErrNoDocuments {
		return models.Review{}, fmt.Errorf("review %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Review{}, err
	}
	return review, nil
}

func (s *MongoStore) GetPropertyReviews(ctx context.Context, propertyID int) ([]models.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := s.reviews.Find(ctx, bson.M{"propertyId": propertyID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := make([]models.Review, 0)
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *MongoStore) GetPropertyAverageRating(ctx context.Context, propertyID int) (*float64, error) {
	reviews, err := s.GetPropertyReviews(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	return AverageRating(reviews), nil
}

func (s *MongoStore) CreateReview(ctx context.Context, review models.Review) (models.Review, error) {
	if err := s.propertyExists(ctx, review.PropertyID); err != nil {
		return models.Review{}, err
	}
	if err := s.userExists(ctx, review.UserID); err != nil {
		return models.Review{}, err
	}

	id, err := s.nextID(ctx, "reviews")
	if err != nil {
		return models.Review{}, err
	}
	review.ID = id
	review.CreatedAt = time.Now()
	review.UpdatedAt = nil

	if _, err := s.reviews.InsertOne(ctx, review); err != nil {
		return models.Review{}, err
	}
	return review, nil
}

func (s *MongoStore) UpdateReview(ctx context.Context, id int, rating int, comment string) (models.Review, error) {
	var review models.Review
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.reviews.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"rating": rating, "comment": comment, "updatedAt": time.Now()}},
		opts,
	).Decode(&review)
	if err == mongo.ErrNoDocuments {
		return models.Review{}, fmt.Errorf("review %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Review{}, err
	}
	return review, nil
}

func (s *MongoStore) DeleteReview(ctx context.Context, id int) error {
	res, err := s.reviews.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("review %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
