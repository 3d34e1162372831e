package common

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TestDB starts a throwaway MongoDB container, applies the migrations and
// returns a handle on a fresh database. Tests calling it are skipped in -short mode.
func TestDB(t *testing.T) *mongo.Database {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container backed test in short mode")
	}

	ctx := context.Background()

	c, err := mongodb.Run(ctx, "mongo:7.0")
	if err != nil {
		t.Fatalf("could not start mongodb container: %v", err)
	}

	connURL, err := c.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get connection string: %s", err)
	}

	db, err := NewDB(connURL, "testdb", 10, 0, time.Minute)
	if err != nil {
		t.Fatalf("could not connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatalf("could not run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = CloseDB(db)
		_ = c.Terminate(ctx)
	})

	return db
}

// ClearCollections removes every document from the blog and user collections.
func ClearCollections(t *testing.T, db *mongo.Database) {
	t.Helper()

	ctx := context.Background()
	for _, name := range []string{BlogsCollection, UsersCollection} {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.D{}); err != nil {
			t.Fatalf("could not clear %s: %v", name, err)
		}
	}
}

// CountDocuments returns the number of documents in the named collection.
func CountDocuments(t *testing.T, db *mongo.Database, name string) int64 {
	t.Helper()

	n, err := db.Collection(name).CountDocuments(context.Background(), bson.D{})
	if err != nil {
		t.Fatalf("could not count %s: %v", name, err)
	}

	return n
}
