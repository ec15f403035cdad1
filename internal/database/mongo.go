package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/edgard/halalbot/internal/errs"
)

const mongoConnectTimeout = 10 * time.Second

// MongoStore appends interactions to a MongoDB collection.
type MongoStore struct {
	uri        string
	dbName     string
	collection string
	logger     *slog.Logger
}

// NewMongoStore creates a store writing to dbName.collection at uri.
func NewMongoStore(uri, dbName, collection string, logger *slog.Logger) *MongoStore {
	return &MongoStore{
		uri:        uri,
		dbName:     dbName,
		collection: collection,
		logger:     logger.With("component", "store", "backend", BackendMongo),
	}
}

// AppendInteraction connects, inserts rec and disconnects.
func (s *MongoStore) AppendInteraction(ctx context.Context, rec *Interaction) error {
	if rec == nil {
		return errs.NewPersistenceError("cannot save nil interaction", nil)
	}

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(s.uri).
		SetConnectTimeout(mongoConnectTimeout).
		SetServerSelectionTimeout(mongoConnectTimeout))
	if err != nil {
		return errs.NewPersistenceError("failed to connect to mongodb", err)
	}
	defer func() {
		if err := client.Disconnect(context.WithoutCancel(ctx)); err != nil {
			s.logger.WarnContext(ctx, "Error closing MongoDB connection", "error", err)
		}
	}()

	res, err := client.Database(s.dbName).Collection(s.collection).InsertOne(ctx, rec)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error inserting interaction", "user_id", rec.UserID, "error", err)
		return errs.NewPersistenceError(fmt.Sprintf("failed to insert interaction for user %d", rec.UserID), err)
	}

	s.logger.DebugContext(ctx, "Interaction inserted", "inserted_id", res.InsertedID, "user_id", rec.UserID)
	return nil
}

var _ InteractionStore = (*MongoStore)(nil)
