package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateGrantIndexes sets up the indexes the read paths depend on. Every
// sub-collection is queried by grant_id; tasks also by section; calendar
// events by grant and date.
func CreateGrantIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	grantIndexes := []mongo.IndexModel{
		// DASHBOARD: status breakdown aggregation
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_status"),
		},
	}
	if _, err := db.Collection("grants").Indexes().CreateMany(ctx, grantIndexes); err != nil {
		return fmt.Errorf("failed to create grant indexes: %v", err)
	}

	byGrant := func(name string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: "grant_id", Value: 1}},
			Options: options.Index().SetName(name),
		}
	}

	// SUB-COLLECTIONS: list-by-grant and cascade delete-by-grant
	for collection, indexName := range map[string]string{
		"pledges":           "idx_pledges_grant_id",
		"gifts":             "idx_gifts_grant_id",
		"addresses":         "idx_addresses_grant_id",
		"tracking_sections": "idx_sections_grant_id",
	} {
		if _, err := db.Collection(collection).Indexes().CreateOne(ctx, byGrant(indexName)); err != nil {
			return fmt.Errorf("failed to create %s index: %v", collection, err)
		}
	}

	taskIndexes := []mongo.IndexModel{
		byGrant("idx_tasks_grant_id"),
		// SECTION VIEWS: tasks listed per section
		{
			Keys:    bson.D{{Key: "section_id", Value: 1}},
			Options: options.Index().SetName("idx_tasks_section_id"),
		},
	}
	if _, err := db.Collection("tracking_tasks").Indexes().CreateMany(ctx, taskIndexes); err != nil {
		return fmt.Errorf("failed to create tracking task indexes: %v", err)
	}

	eventIndexes := []mongo.IndexModel{
		// CALENDAR: merge fetches per grant, month views scan by date
		{
			Keys: bson.D{
				{Key: "grant_id", Value: 1},
				{Key: "date", Value: 1},
			},
			Options: options.Index().SetName("idx_events_grant_id_date"),
		},
	}
	if _, err := db.Collection("calendar_events").Indexes().CreateMany(ctx, eventIndexes); err != nil {
		return fmt.Errorf("failed to create calendar event indexes: %v", err)
	}

	fmt.Println("Grant indexes created successfully")
	return nil
}
