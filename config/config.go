package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store backend names accepted in the STORE environment variable.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// StoreBackend reports which persistence backend to run. Defaults to the
// in-memory store.
func StoreBackend() string {
	backend := os.Getenv("STORE")
	if backend == "" {
		return StoreMemory
	}
	return backend
}

func ConnectDB() (*mongo.Client, error) {
	mongoURI := os.Getenv("MONGOURI")
	if mongoURI == "" {
		return nil, fmt.Errorf("MONGOURI not set in environment")
	}

	clientOptions := options.Client().ApplyURI(mongoURI)
	client, err := mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("MongoDB ping failed: %v", err)
	}

	log.Println("Connected to MongoDB")
	return client, nil
}

func DBName() string {
	name := os.Getenv("DB")
	if name == "" {
		name = "nyumba"
	}
	return name
}
