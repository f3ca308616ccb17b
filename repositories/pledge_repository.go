package repository

import (
	"context"
	"fmt"

	"grantsproject/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type PledgeRepository interface {
	Create(ctx context.Context, pledge *models.Pledge) error
	ListByGrant(ctx context.Context, grantID string) ([]models.Pledge, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
	DeleteByGrant(ctx context.Context, grantID string) (int64, error)
}

type pledgeRepository struct {
	collection *mongo.Collection
}

func NewPledgeRepository(db *mongo.Database) PledgeRepository {
	return &pledgeRepository{
		collection: db.Collection("pledges"),
	}
}

func (r *pledgeRepository) Create(ctx context.Context, pledge *models.Pledge) error {
	pledge.ID = uuid.NewString()

	_, err := r.collection.InsertOne(ctx, pledge)
	return err
}

func (r *pledgeRepository) ListByGrant(ctx context.Context, grantID string) ([]models.Pledge, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"grant_id": grantID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	pledges := make([]models.Pledge, 0, len(docs))
	for _, doc := range docs {
		pledges = append(pledges, models.NormalizePledge(doc))
	}

	return pledges, nil
}

func (r *pledgeRepository) Update(ctx context.Context, id string, fields bson.M) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no pledge found with id %s", id)
	}

	return nil
}

func (r *pledgeRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("no pledge found with id %s", id)
	}

	return nil
}

func (r *pledgeRepository) DeleteByGrant(ctx context.Context, grantID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"grant_id": grantID})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
