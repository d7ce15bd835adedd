package notification_repo

import (
	"context"
	"errors"
	"time"

	"github.com/Xenn-00/aufgaben-team/internal/db"
	"github.com/Xenn-00/aufgaben-team/internal/entity"
	app_errors "github.com/Xenn-00/aufgaben-team/internal/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const notFoundKey = "notification.not_found"

type NotificationRepo struct {
	coll *mongo.Collection
}

func NewNotificationRepo(mdb *mongo.Database) NotificationRepoContract {
	return &NotificationRepo{coll: mdb.Collection(db.NotificationCollection)}
}

func (r *NotificationRepo) InsertNotification(ctx context.Context, n *entity.NotificationEntity) *app_errors.AppError {
	if _, err := r.coll.InsertOne(ctx, n); err != nil {
		return app_errors.MapMongoError(err, notFoundKey)
	}
	return nil
}

// Abgelaufene Dokumente, die der TTL-Monitor noch nicht entfernt hat, werden mit ausgefiltert.
func recipientFilter(recipientID string, now time.Time) bson.M {
	return bson.M{
		"recipientId": recipientID,
		"expiresAt":   bson.M{"$gt": now},
	}
}

func (r *NotificationRepo) ListNotifications(ctx context.Context, filter entity.NotificationListFilter) ([]entity.NotificationEntity, int64, *app_errors.AppError) {
	q := recipientFilter(filter.RecipientID, time.Now())
	if filter.UnreadOnly {
		q["read"] = false
	}

	total, err := r.coll.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, app_errors.Internal(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(filter.Offset)).
		SetLimit(int64(filter.Limit))

	cur, err := r.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, 0, app_errors.Internal(err)
	}
	defer cur.Close(ctx)

	items := []entity.NotificationEntity{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, app_errors.Internal(err)
	}
	return items, total, nil
}

func (r *NotificationRepo) CountUnread(ctx context.Context, recipientID string) (int64, *app_errors.AppError) {
	q := recipientFilter(recipientID, time.Now())
	q["read"] = false

	n, err := r.coll.CountDocuments(ctx, q)
	if err != nil {
		return 0, app_errors.Internal(err)
	}
	return n, nil
}

// MarkRead setzt read nur einmal; readAt bleibt bei wiederholtem Aufruf erhalten.
func (r *NotificationRepo) MarkRead(ctx context.Context, recipientID, notificationID string, at time.Time) (*entity.NotificationEntity, *app_errors.AppError) {
	q := bson.M{"_id": notificationID, "recipientId": recipientID}

	var n entity.NotificationEntity
	if err := r.coll.FindOne(ctx, q).Decode(&n); err != nil {
		return nil, app_errors.MapMongoError(err, notFoundKey)
	}
	if n.Read {
		return &n, nil
	}

	update := bson.M{"$set": bson.M{"read": true, "readAt": at}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	q["read"] = false
	if err := r.coll.FindOneAndUpdate(ctx, q, update, opts).Decode(&n); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// parallel gelesen
			return &n, nil
		}
		return nil, app_errors.Internal(err)
	}
	return &n, nil
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, recipientID string, at time.Time) (int64, *app_errors.AppError) {
	q := bson.M{"recipientId": recipientID, "read": false}
	res, err := r.coll.UpdateMany(ctx, q, bson.M{"$set": bson.M{"read": true, "readAt": at}})
	if err != nil {
		return 0, app_errors.Internal(err)
	}
	return res.ModifiedCount, nil
}

func (r *NotificationRepo) DeleteNotification(ctx context.Context, recipientID, notificationID string) *app_errors.AppError {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": notificationID, "recipientId": recipientID})
	if err != nil {
		return app_errors.Internal(err)
	}
	if res.DeletedCount == 0 {
		return app_errors.NotFound(notFoundKey)
	}
	return nil
}
