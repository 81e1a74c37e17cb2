package projects

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository defines persistence operations for project configurations
type Repository interface {
	LoadAll(ctx context.Context) ([]Project, error)
	Save(ctx context.Context, name string, config interface{}) error
}

// MongoRepository implements Repository using MongoDB
type MongoRepository struct {
	col *mongo.Collection
}

// NewMongoRepository creates a new repository for the given collection
func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

// LoadAll returns every stored project, name and config only.
func (r *MongoRepository) LoadAll(ctx context.Context) ([]Project, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 0, "name": 1, "config": 1})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("load configs: %w", err)
	}
	defer cur.Close(ctx)
	out := []Project{}
	for cur.Next(ctx) {
		var p Project
		if err := cur.Decode(&p); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
		out = append(out, p)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("load configs: %w", err)
	}
	return out, nil
}

// Save upserts the config under its name. Calling twice with the same name
// replaces the prior config entirely (last-write-wins).
func (r *MongoRepository) Save(ctx context.Context, name string, config interface{}) error {
	filter := bson.M{"name": name}
	update := bson.M{"$set": bson.M{"config": config}}
	opts := options.Update().SetUpsert(true)
	if _, err := r.col.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}
