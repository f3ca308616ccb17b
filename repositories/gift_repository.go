package repository

import (
	"context"
	"fmt"

	"grantsproject/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type GiftRepository interface {
	Create(ctx context.Context, gift *models.Gift) error
	ListByGrant(ctx context.Context, grantID string) ([]models.Gift, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
	DeleteByGrant(ctx context.Context, grantID string) (int64, error)
}

type giftRepository struct {
	collection *mongo.Collection
}

func NewGiftRepository(db *mongo.Database) GiftRepository {
	return &giftRepository{
		collection: db.Collection("gifts"),
	}
}

func (r *giftRepository) Create(ctx context.Context, gift *models.Gift) error {
	gift.ID = uuid.NewString()

	_, err := r.collection.InsertOne(ctx, gift)
	return err
}

func (r *giftRepository) ListByGrant(ctx context.Context, grantID string) ([]models.Gift, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"grant_id": grantID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	gifts := make([]models.Gift, 0, len(docs))
	for _, doc := range docs {
		gifts = append(gifts, models.NormalizeGift(doc))
	}

	return gifts, nil
}

func (r *giftRepository) Update(ctx context.Context, id string, fields bson.M) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no gift found with id %s", id)
	}

	return nil
}

func (r *giftRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("no gift found with id %s", id)
	}

	return nil
}

func (r *giftRepository) DeleteByGrant(ctx context.Context, grantID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"grant_id": grantID})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
