package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/nyumba-ke/backend/config"
	"github.com/nyumba-ke/backend/routes"
	"github.com/nyumba-ke/backend/storage"
)

func loadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Error loading .env file: %v", err)
	}
}

func newStore() (storage.Store, error) {
	switch config.StoreBackend() {
	case config.StoreMongo:
		client, err := config.ConnectDB()
		if err != nil {
			return nil, err
		}
		return storage.NewMongoStore(client, config.DBName()), nil
	default:
		store := storage.NewMemoryStore()
		if err := storage.Seed(context.Background(), store); err != nil {
			return nil, err
		}
		return store, nil
	}
}

func main() {
	loadEnv()

	store, err := newStore()
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer func() {
		if err := store.Close(context.TODO()); err != nil {
			log.Fatalf("Error closing storage: %v", err)
		}
		log.Println("Storage closed")
	}()

	cache := config.InitRedis()

	router := mux.NewRouter()
	routes.Routes(router, store, cache)

	corsOptions := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})
	handler := corsOptions.Handler(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:           ":" + port,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Printf("Server running on port %s", port)
		if err := server.ListenAndServe(); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	signal.Notify(sigCh, os.Kill)
	<-sigCh

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Error during server shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
