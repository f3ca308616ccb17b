package repository

import (
	"context"
	"fmt"

	"grantsproject/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TrackingRepository covers both tracking sections and their tasks; the two
// collections are only ever used together.
type TrackingRepository interface {
	CreateSection(ctx context.Context, section *models.TrackingSection) error
	ListSectionsByGrant(ctx context.Context, grantID string) ([]models.TrackingSection, error)
	UpdateSection(ctx context.Context, id string, fields bson.M) error
	DeleteSection(ctx context.Context, id string) error

	CreateTask(ctx context.Context, task *models.TrackingTask) error
	ListTasksBySection(ctx context.Context, sectionID string) ([]models.TrackingTask, error)
	ListTasksByGrant(ctx context.Context, grantID string) ([]models.TrackingTask, error)
	UpdateTask(ctx context.Context, id string, fields bson.M) error
	DeleteTask(ctx context.Context, id string) error
	DeleteTasksBySection(ctx context.Context, sectionID string) (int64, error)
}

type trackingRepository struct {
	sections *mongo.Collection
	tasks    *mongo.Collection
}

func NewTrackingRepository(db *mongo.Database) TrackingRepository {
	return &trackingRepository{
		sections: db.Collection("tracking_sections"),
		tasks:    db.Collection("tracking_tasks"),
	}
}

func (r *trackingRepository) CreateSection(ctx context.Context, section *models.TrackingSection) error {
	section.ID = uuid.NewString()

	_, err := r.sections.InsertOne(ctx, section)
	return err
}

func (r *trackingRepository) ListSectionsByGrant(ctx context.Context, grantID string) ([]models.TrackingSection, error) {
	cursor, err := r.sections.Find(ctx, bson.M{"grant_id": grantID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sections []models.TrackingSection
	if err = cursor.All(ctx, &sections); err != nil {
		return nil, err
	}

	return sections, nil
}

func (r *trackingRepository) UpdateSection(ctx context.Context, id string, fields bson.M) error {
	result, err := r.sections.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no tracking section found with id %s", id)
	}

	return nil
}

func (r *trackingRepository) DeleteSection(ctx context.Context, id string) error {
	result, err := r.sections.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("no tracking section found with id %s", id)
	}

	return nil
}

func (r *trackingRepository) CreateTask(ctx context.Context, task *models.TrackingTask) error {
	task.ID = uuid.NewString()
	if task.Status == "" {
		task.Status = models.TaskToDo
	}

	_, err := r.tasks.InsertOne(ctx, task)
	return err
}

func (r *trackingRepository) ListTasksBySection(ctx context.Context, sectionID string) ([]models.TrackingTask, error) {
	return r.listTasks(ctx, bson.M{"section_id": sectionID})
}

func (r *trackingRepository) ListTasksByGrant(ctx context.Context, grantID string) ([]models.TrackingTask, error) {
	return r.listTasks(ctx, bson.M{"grant_id": grantID})
}

func (r *trackingRepository) listTasks(ctx context.Context, filter bson.M) ([]models.TrackingTask, error) {
	cursor, err := r.tasks.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	tasks := make([]models.TrackingTask, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, models.NormalizeTask(doc))
	}

	return tasks, nil
}

func (r *trackingRepository) UpdateTask(ctx context.Context, id string, fields bson.M) error {
	result, err := r.tasks.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("no tracking task found with id %s", id)
	}

	return nil
}

func (r *trackingRepository) DeleteTask(ctx context.Context, id string) error {
	result, err := r.tasks.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("no tracking task found with id %s", id)
	}

	return nil
}

func (r *trackingRepository) DeleteTasksBySection(ctx context.Context, sectionID string) (int64, error) {
	result, err := r.tasks.DeleteMany(ctx, bson.M{"section_id": sectionID})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
