package samples

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/datagenie/datagenie/internal/database"
)

// Sampler fetches sample documents by running an aggregation pipeline against
// a caller-addressed collection. Connections are dialed per call because the
// target URI is request data, not process configuration.
type Sampler struct {
	defaultURI string
	defaultDB  string
	timeout    time.Duration
}

func NewSampler(defaultURI, defaultDB string, timeout time.Duration) *Sampler {
	return &Sampler{defaultURI: defaultURI, defaultDB: defaultDB, timeout: timeout}
}

// normalizePipeline coerces a non-array pipeline to empty and appends a $limit
// stage unless some top-level stage object already carries one. The check is
// shallow: only map stages are inspected, only their top-level keys.
func normalizePipeline(pipeline interface{}, limit int) []interface{} {
	stages, ok := pipeline.([]interface{})
	if !ok {
		stages = []interface{}{}
	}
	hasLimit := false
	for _, stage := range stages {
		if m, ok := stage.(map[string]interface{}); ok {
			if _, ok := m["$limit"]; ok {
				hasLimit = true
				break
			}
		}
	}
	if !hasLimit {
		stages = append(stages, map[string]interface{}{"$limit": limit})
	}
	return stages
}

// stripIDs removes the internal identity field from every document.
func stripIDs(docs []bson.M) []bson.M {
	for _, d := range docs {
		delete(d, "_id")
	}
	return docs
}

// Sample runs the pipeline against the named collection and returns up to
// limit documents with their _id removed. An empty uri falls back to the
// configured default.
func (s *Sampler) Sample(ctx context.Context, uri, collection string, pipeline interface{}, limit int) ([]bson.M, error) {
	if uri == "" {
		uri = s.defaultURI
	}
	stages := normalizePipeline(pipeline, limit)

	client, err := database.ConnectMongo(ctx, uri, s.timeout)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(database.DatabaseFromURI(uri, s.defaultDB))
	cur, err := db.Collection(collection).Aggregate(ctx, stages)
	if err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	defer cur.Close(ctx)

	docs := []bson.M{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("read samples: %w", err)
	}
	return stripIDs(docs), nil
}
