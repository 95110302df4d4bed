package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"

	"github.com/nyumba-ke/backend/controllers"
	"github.com/nyumba-ke/backend/middleware"
	"github.com/nyumba-ke/backend/storage"
)

func Routes(router *mux.Router, store storage.Store, cache *redis.Client) {
	// Auth routes
	router.HandleFunc("/api/auth/register", controllers.RegisterUser(store)).Methods("POST")
	router.HandleFunc("/api/auth/login", controllers.LoginUser(store)).Methods("POST")
	router.HandleFunc("/api/auth/logout", controllers.LogoutUser()).Methods("POST")
	router.HandleFunc("/api/auth/forgot-password", controllers.ForgotPassword(store)).Methods("POST")
	router.HandleFunc("/api/auth/reset-password", controllers.ResetPassword(store)).Methods("POST")

	// Public browsing routes. OptionalAuth lets the property detail report
	// isFavorite for logged-in callers without requiring a token.
	router.Handle("/api/properties", middleware.OptionalAuth(controllers.GetAllProperties(store, cache))).Methods("GET")
	router.Handle("/api/properties/{id}", middleware.OptionalAuth(controllers.GetPropertyByID(store))).Methods("GET")
	router.HandleFunc("/api/properties/{id}/reviews", controllers.GetPropertyReviews(store)).Methods("GET")
	router.HandleFunc("/api/properties/{id}/rating", controllers.GetPropertyRating(store)).Methods("GET")
	router.HandleFunc("/api/neighborhoods", controllers.GetNeighborhoods(store)).Methods("GET")
	router.HandleFunc("/api/neighborhoods/{id}", controllers.GetNeighborhoodByID(store)).Methods("GET")

	// Routes that require authentication
	authenticated := router.PathPrefix("/api").Subrouter()
	authenticated.Use(middleware.AuthMiddleware)

	authenticated.HandleFunc("/auth/me", controllers.CurrentUser(store)).Methods("GET")

	// Profile routes
	authenticated.HandleFunc("/users/profile", controllers.UpdateProfile(store)).Methods("PATCH")
	authenticated.HandleFunc("/users/properties", controllers.GetOwnProperties(store)).Methods("GET")

	// Property routes
	authenticated.HandleFunc("/properties", controllers.CreateProperty(store, cache)).Methods("POST")
	authenticated.HandleFunc("/properties/{id}", controllers.UpdateProperty(store, cache)).Methods("PATCH", "PUT")
	authenticated.HandleFunc("/properties/{id}", controllers.DeleteProperty(store, cache)).Methods("DELETE")

	// Favorites routes
	authenticated.HandleFunc("/favorites", controllers.GetFavorites(store)).Methods("GET")
	authenticated.HandleFunc("/favorites", controllers.AddFavorite(store)).Methods("POST")
	authenticated.HandleFunc("/favorites/{propertyId}", controllers.RemoveFavorite(store)).Methods("DELETE")

	// Messaging routes; the unread counter must be registered before the
	// {userId} thread route.
	authenticated.HandleFunc("/conversations", controllers.GetConversations(store)).Methods("GET")
	authenticated.HandleFunc("/messages/unread/count", controllers.GetUnreadMessageCount(store)).Methods("GET")
	authenticated.HandleFunc("/messages/{userId}", controllers.GetMessages(store)).Methods("GET")
	authenticated.HandleFunc("/messages", controllers.SendMessage(store)).Methods("POST")

	// Notification routes
	authenticated.HandleFunc("/notifications", controllers.GetNotifications(store)).Methods("GET")
	authenticated.HandleFunc("/notifications/unread/count", controllers.GetUnreadNotificationCount(store)).Methods("GET")
	authenticated.HandleFunc("/notifications/read-all", controllers.MarkAllNotificationsRead(store)).Methods("POST")
	authenticated.HandleFunc("/notifications/{id}/read", controllers.MarkNotificationRead(store)).Methods("POST")

	// Review routes
	authenticated.HandleFunc("/properties/{id}/reviews", controllers.CreateReview(store)).Methods("POST")
	authenticated.HandleFunc("/reviews/{id}", controllers.UpdateReview(store)).Methods("PUT")
	authenticated.HandleFunc("/reviews/{id}", controllers.DeleteReview(store)).Methods("DELETE")
}

// Handler builds the full router for tests and main.
func Handler(store storage.Store, cache *redis.Client) http.Handler {
	router := mux.NewRouter()
	Routes(router, store, cache)
	return router
}
