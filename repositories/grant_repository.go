package repository

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"grantsproject/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type GrantRepository interface {
	Create(ctx context.Context, grant *models.Grant) error
	GetByID(ctx context.Context, id string) (*models.Grant, error)
	GetAll(ctx context.Context) ([]models.Grant, error)
	Update(ctx context.Context, id string, fields bson.M) error
	Delete(ctx context.Context, id string) error
	NextID(ctx context.Context) (string, error)
	GetClient() *mongo.Client
	// GridFS methods
	UploadFile(ctx context.Context, filename string, fileData io.Reader, uploadedBy string, contentType string) (primitive.ObjectID, error)
	DownloadFile(ctx context.Context, fileID primitive.ObjectID) (*gridfs.DownloadStream, error)
	DeleteFile(ctx context.Context, fileID primitive.ObjectID) error
	// Attachment methods
	AddAttachment(ctx context.Context, grantID string, attachment models.Attachment, updatedBy string) error
	RemoveAttachment(ctx context.Context, grantID string, fileID primitive.ObjectID, updatedBy string) error
	// Analytics methods
	GetStatusBreakdown(ctx context.Context) ([]bson.M, error)
}

type grantRepository struct {
	collection *mongo.Collection
	bucket     *gridfs.Bucket
}

func NewGrantRepository(db *mongo.Database) GrantRepository {
	bucket, err := gridfs.NewBucket(db)
	if err != nil {
		panic(fmt.Sprintf("Failed to create GridFS bucket: %v", err))
	}

	return &grantRepository{
		collection: db.Collection("grants"),
		bucket:     bucket,
	}
}

func (r *grantRepository) Create(ctx context.Context, grant *models.Grant) error {
	_, err := r.collection.InsertOne(ctx, grant)
	return err
}

func (r *grantRepository) GetByID(ctx context.Context, id string) (*models.Grant, error) {
	var doc bson.M
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		return nil, err
	}

	grant := models.NormalizeGrant(doc)
	return &grant, nil
}

func (r *grantRepository) GetAll(ctx context.Context) ([]models.Grant, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	grants := make([]models.Grant, 0, len(docs))
	for _, doc := range docs {
		grants = append(grants, models.NormalizeGrant(doc))
	}

	return grants, nil
}

func (r *grantRepository) Update(ctx context.Context, id string, fields bson.M) error {
	fields["metadata.updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no grant found with id %s", id)
	}

	return nil
}

func (r *grantRepository) Delete(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("no grant found with id %s", id)
	}

	return nil
}

// NextID assigns grant ids the way the app always has: one past the highest
// numeric id in the collection. Non-numeric ids are skipped.
func (r *grantRepository) NextID(ctx context.Context) (string, error) {
	cursor, err := r.collection.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return "", err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err = cursor.All(ctx, &docs); err != nil {
		return "", err
	}

	maxID := 0
	for _, doc := range docs {
		id, ok := doc["_id"].(string)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(id); err == nil && n > maxID {
			maxID = n
		}
	}

	return strconv.Itoa(maxID + 1), nil
}

func (r *grantRepository) GetClient() *mongo.Client {
	return r.collection.Database().Client()
}

// GridFS methods
func (r *grantRepository) UploadFile(ctx context.Context, filename string, fileData io.Reader, uploadedBy string, contentType string) (primitive.ObjectID, error) {
	uploadOpts := options.GridFSUpload().SetMetadata(bson.M{
		"uploadedBy":  uploadedBy,
		"uploadedAt":  time.Now(),
		"contentType": contentType,
	})

	fileID, err := r.bucket.UploadFromStream(filename, fileData, uploadOpts)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to upload file to GridFS: %v", err)
	}

	return fileID, nil
}

func (r *grantRepository) DownloadFile(ctx context.Context, fileID primitive.ObjectID) (*gridfs.DownloadStream, error) {
	downloadStream, err := r.bucket.OpenDownloadStream(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to download file from GridFS: %v", err)
	}

	return downloadStream, nil
}

func (r *grantRepository) DeleteFile(ctx context.Context, fileID primitive.ObjectID) error {
	return r.bucket.Delete(fileID)
}

func (r *grantRepository) AddAttachment(ctx context.Context, grantID string, attachment models.Attachment, updatedBy string) error {
	update := bson.M{
		"$push": bson.M{
			"attachments": attachment,
		},
		"$set": bson.M{
			"metadata.updated_at": time.Now(),
			"metadata.updated_by": updatedBy,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": grantID}, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no grant found with id %s", grantID)
	}

	return nil
}

func (r *grantRepository) RemoveAttachment(ctx context.Context, grantID string, fileID primitive.ObjectID, updatedBy string) error {
	update := bson.M{
		"$pull": bson.M{
			"attachments": bson.M{"file_id": fileID},
		},
		"$set": bson.M{
			"metadata.updated_at": time.Now(),
			"metadata.updated_by": updatedBy,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": grantID}, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no grant found with id %s", grantID)
	}

	return nil
}

// GetStatusBreakdown groups grants by status for the dashboard analytics
// panel.
func (r *grantRepository) GetStatusBreakdown(ctx context.Context) ([]bson.M, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$addFields", Value: bson.M{
			"normalized_status": bson.M{
				"$switch": bson.M{
					"branches": []bson.M{
						{"case": bson.M{"$eq": []interface{}{"$status", "Active"}}, "then": "Active"},
						{"case": bson.M{"$eq": []interface{}{"$status", "Under Review"}}, "then": "Under Review"},
						{"case": bson.M{"$eq": []interface{}{"$status", "Approved"}}, "then": "Approved"},
						{"case": bson.M{"$eq": []interface{}{"$status", "Pending"}}, "then": "Pending"},
						{"case": bson.M{"$eq": []interface{}{"$status", "Rejected"}}, "then": "Rejected"},
						{"case": bson.M{"$eq": []interface{}{"$status", "Completed"}}, "then": "Completed"},
					},
					"default": "Unknown",
				},
			},
			"attachments_count": bson.M{
				"$cond": bson.M{
					"if":   bson.M{"$isArray": "$attachments"},
					"then": bson.M{"$size": "$attachments"},
					"else": 0,
				},
			},
		}}},

		bson.D{{Key: "$group", Value: bson.M{
			"_id":               "$normalized_status",
			"count":             bson.M{"$sum": 1},
			"total_attachments": bson.M{"$sum": "$attachments_count"},
		}}},

		bson.D{{Key: "$sort", Value: bson.M{"count": -1}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []bson.M
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	return results, nil
}
