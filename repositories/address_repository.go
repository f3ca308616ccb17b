package repository

import (
	"context"
	"fmt"

	"grantsproject/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type AddressRepository interface {
	Create(ctx context.Context, address *models.Address) error
	ListByGrant(ctx context.Context, grantID string) ([]models.Address, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
	DeleteByGrant(ctx context.Context, grantID string) (int64, error)
}

type addressRepository struct {
	collection *mongo.Collection
}

func NewAddressRepository(db *mongo.Database) AddressRepository {
	return &addressRepository{
		collection: db.Collection("addresses"),
	}
}

func (r *addressRepository) Create(ctx context.Context, address *models.Address) error {
	address.ID = uuid.NewString()

	// Only one address per grant carries the primary flag.
	if address.Primary {
		if err := r.clearPrimary(ctx, address.GrantID); err != nil {
			return err
		}
	}

	_, err := r.collection.InsertOne(ctx, address)
	return err
}

func (r *addressRepository) ListByGrant(ctx context.Context, grantID string) ([]models.Address, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"grant_id": grantID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var addresses []models.Address
	if err = cursor.All(ctx, &addresses); err != nil {
		return nil, err
	}

	return addresses, nil
}

func (r *addressRepository) Update(ctx context.Context, id string, fields bson.M) error {
	if primary, ok := fields["primary"].(bool); ok && primary {
		var existing models.Address
		if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&existing); err == nil {
			if err := r.clearPrimary(ctx, existing.GrantID); err != nil {
				return err
			}
		}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no address found with id %s", id)
	}

	return nil
}

func (r *addressRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("no address found with id %s", id)
	}

	return nil
}

func (r *addressRepository) DeleteByGrant(ctx context.Context, grantID string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"grant_id": grantID})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}

func (r *addressRepository) clearPrimary(ctx context.Context, grantID string) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"grant_id": grantID, "primary": true},
		bson.M{"$set": bson.M{"primary": false}})
	return err
}
