package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/OJOMB/user-registry/internal/core/ports"
)

const collectionUserAudit = "user_audit"

// AuditRepository implements ports.AuditRecorder using MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(collectionUserAudit)}
}

// InsertEntry persists a mutation record to the user_audit collection.
func (r *AuditRepository) InsertEntry(ctx context.Context, entry *ports.UserAuditEntry) error {
	doc := bson.M{
		"user_id":     entry.UserID.String(),
		"action":      entry.Action,
		"timestamp":   entry.Timestamp.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if entry.Email != "" {
		doc["email"] = entry.Email
	}

	_, err := r.coll.InsertOne(ctx, doc)
	return err
}

// EnsureIndexes creates the indexes the audit trail is queried by.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}}},
		{Keys: bson.D{{Key: "action", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
