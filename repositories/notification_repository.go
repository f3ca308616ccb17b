package repository

import (
	"context"

	"grantsproject/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationRepository persists the notification list as a single document,
// rewritten whole on every change. The in-memory copy in the service is the
// working state; this is just its durable mirror.
type NotificationRepository interface {
	Load(ctx context.Context) ([]models.Notification, error)
	Save(ctx context.Context, items []models.Notification) error
}

type notificationRepository struct {
	collection *mongo.Collection
}

const notificationsDocID = "notifications"

func NewNotificationRepository(db *mongo.Database) NotificationRepository {
	return &notificationRepository{
		collection: db.Collection("app_state"),
	}
}

func (r *notificationRepository) Load(ctx context.Context) ([]models.Notification, error) {
	var doc struct {
		Items []models.Notification `bson:"items"`
	}

	err := r.collection.FindOne(ctx, bson.M{"_id": notificationsDocID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return []models.Notification{}, nil
	}
	if err != nil {
		return nil, err
	}

	return doc.Items, nil
}

func (r *notificationRepository) Save(ctx context.Context, items []models.Notification) error {
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": notificationsDocID},
		bson.M{"_id": notificationsDocID, "items": items},
		options.Replace().SetUpsert(true))
	return err
}
