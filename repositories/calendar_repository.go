package repository

import (
	"context"
	"fmt"

	"grantsproject/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CalendarRepository interface {
	Create(ctx context.Context, event *models.CalendarEvent) error
	ListAll(ctx context.Context) ([]models.CalendarEvent, error)
	ListByGrant(ctx context.Context, grantID string) ([]models.CalendarEvent, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
	DeleteByGrant(ctx context.Context, grantID string) (int64, error)
}

type calendarRepository struct {
	collection *mongo.Collection
}

func NewCalendarRepository(db *mongo.Database) CalendarRepository {
	return &calendarRepository{
		collection: db.Collection("calendar_events"),
	}
}

func (r *calendarRepository) Create(ctx context.Context, event *models.CalendarEvent) error {
	event.ID = uuid.NewString()

	_, err := r.collection.InsertOne(ctx, event)
	return err
}

func (r *calendarRepository) ListAll(ctx context.Context) ([]models.CalendarEvent, error) {
	return r.list(ctx, bson.M{})
}

func (r *calendarRepository) ListByGrant(ctx context.Context, grantID string) ([]models.CalendarEvent, error) {
	return r.list(ctx, bson.M{"grant_id": grantID})
}

func (r *calendarRepository) list(ctx context.Context, filter bson.M) ([]models.CalendarEvent, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "grant_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	events := make([]models.CalendarEvent, 0, len(docs))
	for _, doc := range docs {
		events = append(events, models.NormalizeCalendarEvent(doc))
	}

	return events, nil
}

func (r *calendarRepository) Update(ctx context.Context, id string, fields bson.M) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no calendar event found with id %s", id)
	}

	return nil
}

func (r *calendarRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("no calendar event found with id %s", id)
	}

	return nil
}

func (r *calendarRepository) DeleteByGrant(ctx context.Context, grantID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"grant_id": grantID})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
