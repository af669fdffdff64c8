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

// ConnectMongo dials the document store with retries and returns the
// application database handle.
func ConnectMongo(ctx context.Context) (*mongo.Database, error) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "restopos"
	}

	var client *mongo.Client
	var err error
	for i := 0; i < 10; i++ {
		client, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = client.Ping(pingCtx, nil)
			cancel()
			if err == nil {
				log.Printf("Connected to MongoDB at %s", uri)
				return client.Database(dbName), nil
			}
		}
		log.Printf("Retry %d: failed to connect to MongoDB at %s: %v", i+1, uri, err)
		time.Sleep(3 * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to MongoDB at %s after retries: %v", uri, err)
}
