package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const NotificationCollection = "notifications"

// MongoConnect verbindet sich mit MongoDB und legt die Indizes der Notification-Collection an.
// Der Caller schließt den Client mit client.Disconnect.
func MongoConnect(uri, database string) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetMaxPoolSize(20))
	if err != nil {
		return nil, nil, fmt.Errorf("Verbindung zu MongoDB nicht möglich: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("MongoDB antwortet nicht: %w", err)
	}

	mdb := client.Database(database)
	if err := ensureNotificationIndexes(ctx, mdb.Collection(NotificationCollection)); err != nil {
		log.Error().Err(err).Msg("Fehler beim Anlegen der Notification-Indizes")
	}

	return client, mdb, nil
}

func ensureNotificationIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// TTL: Dokumente verschwinden, sobald expiresAt erreicht ist.
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("expiresAt_ttl"),
		},
		{
			Keys:    bson.D{{Key: "recipientId", Value: 1}, {Key: "read", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("recipient_read_created"),
		},
	})
	return err
}
