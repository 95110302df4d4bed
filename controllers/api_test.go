package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyumba-ke/backend/models"
	"github.com/nyumba-ke/backend/routes"
	"github.com/nyumba-ke/backend/storage"
)

func newTestServer(t *testing.T) (http.Handler, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	return routes.Handler(store, nil), store
}

func do(t *testing.T, handler http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

type authResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

func registerUser(t *testing.T, handler http.Handler, username string) authResponse {
	t.Helper()
	rec := do(t, handler, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username":        username,
		"password":        "secret123",
		"confirmPassword": "secret123",
		"email":           username + "@example.com",
		"fullName":        username,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp authResponse
	decodeBody(t, rec, &resp)
	require.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	return resp
}

func createListing(t *testing.T, handler http.Handler, token, title string, price int) models.Property {
	t.Helper()
	rec := do(t, handler, http.MethodPost, "/api/properties", token, map[string]interface{}{
		"title":        title,
		"description":  "A listing used in tests",
		"price":        price,
		"propertyType": "apartment",
		"listingType":  "rent",
		"bedrooms":     2,
		"bathrooms":    1,
		"area":         80,
		"location":     "Kilimani, Nairobi",
		"address":      "Rose Avenue",
		"features":     []string{"parking", "wifi"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var property models.Property
	decodeBody(t, rec, &property)
	return property
}

func TestRegisterLoginFlow(t *testing.T) {
	handler, _ := newTestServer(t)

	resp := registerUser(t, handler, "alice")
	assert.Equal(t, "alice", resp.User.Username)

	// Duplicate username is a conflict.
	rec := do(t, handler, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username":        "alice",
		"password":        "secret123",
		"confirmPassword": "secret123",
		"email":           "other@example.com",
		"fullName":        "Alice Again",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, handler, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var login authResponse
	decodeBody(t, rec, &login)
	assert.NotEmpty(t, login.Token)

	rec = do(t, handler, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrongpass",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := do(t, handler, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username":        "a",
		"password":        "secret123",
		"confirmPassword": "mismatch1",
		"email":           "not-an-email",
		"fullName":        "A",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Message string   `json:"message"`
		Fields  []string `json:"fields"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, "Validation failed", body.Message)
	assert.NotEmpty(t, body.Fields)
}

func TestCurrentUserRequiresToken(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := do(t, handler, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	resp := registerUser(t, handler, "alice")
	rec = do(t, handler, http.MethodGet, "/api/auth/me", resp.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	decodeBody(t, rec, &user)
	assert.Equal(t, resp.User.ID, user.ID)
}

func TestPropertySearchEndpoint(t *testing.T) {
	handler, _ := newTestServer(t)
	owner := registerUser(t, handler, "landlord")

	createListing(t, handler, owner.Token, "Cheap studio", 20000)
	createListing(t, handler, owner.Token, "Mid apartment", 50000)
	createListing(t, handler, owner.Token, "Lux apartment", 90000)

	rec := do(t, handler, http.MethodGet, "/api/properties", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all []models.Property
	decodeBody(t, rec, &all)
	assert.Len(t, all, 3)

	rec = do(t, handler, http.MethodGet, "/api/properties?minPrice=40000&maxPrice=90000&sortBy=price-high", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var filtered []models.Property
	decodeBody(t, rec, &filtered)
	require.Len(t, filtered, 2)
	assert.Equal(t, "Lux apartment", filtered[0].Title)

	rec = do(t, handler, http.MethodGet, "/api/properties?search=STUDIO", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &filtered)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Cheap studio", filtered[0].Title)
}

func TestPropertySearchRejectsMalformedNumbers(t *testing.T) {
	handler, _ := newTestServer(t)

	rec := do(t, handler, http.MethodGet, "/api/properties?minPrice=cheap", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, handler, http.MethodGet, "/api/properties?minBedrooms=2.5", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPropertyDetail(t *testing.T) {
	handler, _ := newTestServer(t)
	owner := registerUser(t, handler, "landlord")
	viewer := registerUser(t, handler, "viewer")
	property := createListing(t, handler, owner.Token, "Detail flat", 45000)

	rec := do(t, handler, http.MethodGet, fmt.Sprintf("/api/properties/%d", property.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var detail struct {
		models.Property
		Owner      models.User `json:"owner"`
		IsFavorite bool        `json:"isFavorite"`
	}
	decodeBody(t, rec, &detail)
	assert.Equal(t, property.ID, detail.ID)
	assert.Equal(t, owner.User.ID, detail.Owner.ID)
	assert.False(t, detail.IsFavorite)

	// Favoriting flips the flag for the authenticated viewer only.
	rec = do(t, handler, http.MethodPost, "/api/favorites", viewer.Token, map[string]int{"propertyId": property.ID})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, handler, http.MethodGet, fmt.Sprintf("/api/properties/%d", property.ID), viewer.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &detail)
	assert.True(t, detail.IsFavorite)

	rec = do(t, handler, http.MethodGet, "/api/properties/999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, handler, http.MethodGet, "/api/properties/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPropertyOwnershipEnforced(t *testing.T) {
	handler, _ := newTestServer(t)
	owner := registerUser(t, handler, "landlord")
	other := registerUser(t, handler, "intruder")
	property := createListing(t, handler, owner.Token, "Guarded flat", 45000)

	path := fmt.Sprintf("/api/properties/%d", property.ID)

	rec := do(t, handler, http.MethodPatch, path, other.Token, map[string]int{"price": 1})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, handler, http.MethodDelete, path, other.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, handler, http.MethodPatch, path, owner.Token, map[string]int{"price": 47000})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Property
	decodeBody(t, rec, &updated)
	assert.Equal(t, 47000, updated.Price)
	assert.Equal(t, "Guarded flat", updated.Title)

	rec = do(t, handler, http.MethodDelete, path, owner.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, handler, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOwnPropertiesListing(t *testing.T) {
	handler, _ := newTestServer(t)
	owner := registerUser(t, handler, "landlord")
	other := registerUser(t, handler, "tenant")
	createListing(t, handler, owner.Token, "Mine", 45000)

	rec := do(t, handler, http.MethodGet, "/api/users/properties", owner.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []models.Property
	decodeBody(t, rec, &mine)
	assert.Len(t, mine, 1)

	rec = do(t, handler, http.MethodGet, "/api/users/properties", other.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &mine)
	assert.Empty(t, mine)
}

func TestFavoritesEndpoints(t *testing.T) {
	handler, _ := newTestServer(t)
	owner := registerUser(t, handler, "landlord")
	viewer := registerUser(t, handler, "viewer")
	property := createListing(t, handler, owner.Token, "Saved flat", 45000)

	rec := do(t, handler, http.MethodPost, "/api/favorites", viewer.Token, map[string]int{"propertyId": property.ID})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Saving the same listing again is a conflict.
	rec = do(t, handler, http.MethodPost, "/api/favorites", viewer.Token, map[string]int{"propertyId": property.ID})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, handler, http.MethodPost, "/api/favorites", viewer.Token, map[string]int{"propertyId": 999})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, handler, http.MethodGet, "/api/favorites", viewer.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listResp struct {
		Success bool              `json:"success"`
		Data    []models.Property `json:"data"`
	}
	decodeBody(t, rec, &listResp)
	require.True(t, listResp.Success)
	require.Len(t, listResp.Data, 1)
	assert.Equal(t, property.ID, listResp.Data[0].ID)

	// The owner got a notification about the new interest.
	rec = do(t, handler, http.MethodGet, "/api/notifications/unread/count", owner.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var count map[string]int
	decodeBody(t, rec, &count)
	assert.Equal(t, 1, count["count"])

	rec = do(t, handler, http.MethodDelete, fmt.Sprintf("/api/favorites/%d", property.ID), viewer.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, handler, http.MethodDelete, fmt.Sprintf("/api/favorites/%d", property.ID), viewer.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMessagingEndpoints(t *testing.T) {
	handler, _ := newTestServer(t)
	alice := registerUser(t, handler, "alice")
	brian := registerUser(t, handler, "brian")

	rec := do(t, handler, http.MethodPost, "/api/messages", alice.Token, map[string]interface{}{
		"receiverId": brian.User.ID,
		"content":    "Is the flat still available?",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, handler, http.MethodPost, "/api/messages", brian.Token, map[string]interface{}{
		"receiverId": alice.User.ID,
		"content":    "Yes, want to view it?",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, handler, http.MethodGet, "/api/messages/unread/count", alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var count map[string]int
	decodeBody(t, rec, &count)
	assert.Equal(t, 1, count["count"])

	rec = do(t, handler, http.MethodGet, "/api/conversations", alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var conversations []models.Conversation
	decodeBody(t, rec, &conversations)
	require.Len(t, conversations, 1)
	assert.Equal(t, brian.User.ID, conversations[0].User.ID)
	assert.Equal(t, 1, conversations[0].UnreadCount)

	// Opening the thread returns it oldest first and marks it read.
	rec = do(t, handler, http.MethodGet, fmt.Sprintf("/api/messages/%d", brian.User.ID), alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var thread struct {
		Messages []models.Message `json:"messages"`
		User     models.User      `json:"user"`
	}
	decodeBody(t, rec, &thread)
	require.Len(t, thread.Messages, 2)
	assert.Equal(t, "Is the flat still available?", thread.Messages[0].Content)
	assert.Equal(t, brian.User.ID, thread.User.ID)

	rec = do(t, handler, http.MethodGet, "/api/messages/unread/count", alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &count)
	assert.Equal(t, 0, count["count"])

	rec = do(t, handler, http.MethodGet, "/api/messages/999", alice.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, handler, http.MethodPost, "/api/messages", alice.Token, map[string]interface{}{
		"receiverId": 999,
		"content":    "anyone there?",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNotificationEndpoints(t *testing.T) {
	handler, store := newTestServer(t)
	alice := registerUser(t, handler, "alice")

	ctx := context.Background()
	first, err := store.CreateNotification(ctx, models.Notification{
		UserID: alice.User.ID, Type: models.NotificationSystem, Title: "Welcome",
	})
	require.NoError(t, err)
	_, err = store.CreateNotification(ctx, models.Notification{
		UserID: alice.User.ID, Type: models.NotificationPropertyUpdate, Title: "Price drop",
	})
	require.NoError(t, err)

	rec := do(t, handler, http.MethodGet, "/api/notifications", alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Notification
	decodeBody(t, rec, &list)
	assert.Len(t, list, 2)

	rec = do(t, handler, http.MethodPost, fmt.Sprintf("/api/notifications/%d/read", first.ID), alice.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, handler, http.MethodGet, "/api/notifications/unread/count", alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var count map[string]int
	decodeBody(t, rec, &count)
	assert.Equal(t, 1, count["count"])

	rec = do(t, handler, http.MethodPost, "/api/notifications/read-all", alice.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, handler, http.MethodGet, "/api/notifications/unread/count", alice.Token, nil)
	decodeBody(t, rec, &count)
	assert.Equal(t, 0, count["count"])

	rec = do(t, handler, http.MethodPost, "/api/notifications/999/read", alice.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReviewEndpoints(t *testing.T) {
	handler, _ := newTestServer(t)
	owner := registerUser(t, handler, "landlord")
	alice := registerUser(t, handler, "alice")
	brian := registerUser(t, handler, "brian")
	property := createListing(t, handler, owner.Token, "Reviewed flat", 45000)

	ratingPath := fmt.Sprintf("/api/properties/%d/rating", property.ID)
	reviewsPath := fmt.Sprintf("/api/properties/%d/reviews", property.ID)

	// Unreviewed listings report null, not zero.
	rec := do(t, handler, http.MethodGet, ratingPath, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"rating": null}`, rec.Body.String())

	rec = do(t, handler, http.MethodPost, reviewsPath, alice.Token, map[string]interface{}{
		"rating": 5, "comment": "Loved it",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var review models.Review
	decodeBody(t, rec, &review)

	rec = do(t, handler, http.MethodPost, reviewsPath, brian.Token, map[string]interface{}{
		"rating": 4, "comment": "Pretty good",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, handler, http.MethodGet, ratingPath, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"rating": 4.5}`, rec.Body.String())

	rec = do(t, handler, http.MethodGet, reviewsPath, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var reviews []models.Review
	decodeBody(t, rec, &reviews)
	assert.Len(t, reviews, 2)

	// Only the author may edit or delete.
	reviewPath := fmt.Sprintf("/api/reviews/%d", review.ID)
	rec = do(t, handler, http.MethodPut, reviewPath, brian.Token, map[string]interface{}{
		"rating": 1, "comment": "hijacked",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, handler, http.MethodPut, reviewPath, alice.Token, map[string]interface{}{
		"rating": 3, "comment": "Revised after a second stay",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &review)
	assert.Equal(t, 3, review.Rating)
	assert.NotNil(t, review.UpdatedAt)

	rec = do(t, handler, http.MethodDelete, reviewPath, brian.Token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, handler, http.MethodDelete, reviewPath, alice.Token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, handler, http.MethodDelete, reviewPath, alice.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, handler, http.MethodPost, reviewsPath, alice.Token, map[string]interface{}{
		"rating": 7, "comment": "off the scale",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfileUpdate(t *testing.T) {
	handler, _ := newTestServer(t)
	alice := registerUser(t, handler, "alice")

	rec := do(t, handler, http.MethodPatch, "/api/users/profile", alice.Token, map[string]string{
		"fullName": "Alice Wanjiku",
		"bio":      "House hunting in Nairobi",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var user models.User
	decodeBody(t, rec, &user)
	assert.Equal(t, "Alice Wanjiku", user.FullName)
	assert.Equal(t, "House hunting in Nairobi", user.Bio)

	// Password change requires the current password.
	rec = do(t, handler, http.MethodPatch, "/api/users/profile", alice.Token, map[string]string{
		"currentPassword":    "wrongpass",
		"newPassword":        "newsecret1",
		"confirmNewPassword": "newsecret1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, handler, http.MethodPatch, "/api/users/profile", alice.Token, map[string]string{
		"currentPassword":    "secret123",
		"newPassword":        "newsecret1",
		"confirmNewPassword": "newsecret1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, handler, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "newsecret1",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPasswordResetFlow(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	handler, store := newTestServer(t)
	alice := registerUser(t, handler, "alice")

	// Unknown emails get the same generic answer.
	rec := do(t, handler, http.MethodPost, "/api/auth/forgot-password", "", map[string]string{
		"email": "nobody@example.com",
	})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, handler, http.MethodPost, "/api/auth/forgot-password", "", map[string]string{
		"email": alice.User.Email,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	user, err := store.GetUser(context.Background(), alice.User.ID)
	require.NoError(t, err)
	require.NotEmpty(t, user.ResetToken)

	rec = do(t, handler, http.MethodPost, "/api/auth/reset-password", "", map[string]string{
		"token":    "bogus-token",
		"password": "whatever1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, handler, http.MethodPost, "/api/auth/reset-password", "", map[string]string{
		"token":    user.ResetToken,
		"password": "resetsecret1",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, handler, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "alice",
		"password": "resetsecret1",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNeighborhoodEndpoints(t *testing.T) {
	handler, store := newTestServer(t)

	created, err := store.CreateNeighborhood(context.Background(), models.Neighborhood{
		Name: "Kilimani", City: "Nairobi",
	})
	require.NoError(t, err)

	rec := do(t, handler, http.MethodGet, "/api/neighborhoods", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Neighborhood
	decodeBody(t, rec, &list)
	assert.Len(t, list, 1)

	rec = do(t, handler, http.MethodGet, fmt.Sprintf("/api/neighborhoods/%d", created.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got models.Neighborhood
	decodeBody(t, rec, &got)
	assert.Equal(t, "Kilimani", got.Name)

	rec = do(t, handler, http.MethodGet, "/api/neighborhoods/99", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	handler, _ := newTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/properties"},
		{http.MethodGet, "/api/favorites"},
		{http.MethodGet, "/api/conversations"},
		{http.MethodGet, "/api/notifications"},
		{http.MethodPatch, "/api/users/profile"},
	}
	for _, p := range paths {
		rec := do(t, handler, p.method, p.path, "", nil)
		assert.Equalf(t, http.StatusUnauthorized, rec.Code, "%s %s", p.method, p.path)
	}

	rec := do(t, handler, http.MethodGet, "/api/favorites", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
