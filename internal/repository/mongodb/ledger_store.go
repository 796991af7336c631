package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chanqt/boardinghouse/internal/domain/models"
)

const removalsCollection = "removed_tenants"

// LedgerStore persists removal ledger entries in MongoDB so soft-deletions
// survive process restarts.
type LedgerStore struct {
	client *mongo.Client
	dbName string
}

// NewLedgerStore connects to MongoDB and verifies the connection.
func NewLedgerStore(ctx context.Context, uri string, dbName string) (*LedgerStore, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	store := &LedgerStore{client: client, dbName: dbName}

	// One entry per tenant id, enforced at the store as well as in memory.
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "tenant_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := store.collection().Indexes().CreateOne(ctx, indexModel); err != nil {
		return nil, fmt.Errorf("failed to ensure removal index: %w", err)
	}

	return store, nil
}

// LoadAll reads every ledger entry, used to rebuild the in-memory index at
// startup.
func (s *LedgerStore) LoadAll(ctx context.Context) ([]models.RemovalEntry, error) {
	cursor, err := s.collection().Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to load removal entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.RemovalEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode removal entries: %w", err)
	}
	return entries, nil
}

// Insert appends a single ledger entry.
func (s *LedgerStore) Insert(ctx context.Context, entry models.RemovalEntry) error {
	if _, err := s.collection().InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to insert removal entry: %w", err)
	}
	return nil
}

// Delete drops the entry for the given tenant id.
func (s *LedgerStore) Delete(ctx context.Context, tenantID int) error {
	if _, err := s.collection().DeleteOne(ctx, bson.D{{Key: "tenant_id", Value: tenantID}}); err != nil {
		return fmt.Errorf("failed to delete removal entry: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (s *LedgerStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *LedgerStore) collection() *mongo.Collection {
	return s.client.Database(s.dbName).Collection(removalsCollection)
}
