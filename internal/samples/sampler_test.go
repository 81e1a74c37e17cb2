package samples

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestNormalizePipelineAppendsLimit(t *testing.T) {
	stages := normalizePipeline([]interface{}{
		map[string]interface{}{"$match": map[string]interface{}{"a": 1}},
	}, 10)
	require.Len(t, stages, 2)
	last := stages[1].(map[string]interface{})
	require.Equal(t, 10, last["$limit"])
}

func TestNormalizePipelineKeepsExistingLimit(t *testing.T) {
	in := []interface{}{
		map[string]interface{}{"$limit": 3},
	}
	stages := normalizePipeline(in, 10)
	require.Len(t, stages, 1)
	require.Equal(t, 3, stages[0].(map[string]interface{})["$limit"])
}

func TestNormalizePipelineLimitNotFinalStage(t *testing.T) {
	in := []interface{}{
		map[string]interface{}{"$limit": 3},
		map[string]interface{}{"$sort": map[string]interface{}{"a": 1}},
	}
	stages := normalizePipeline(in, 10)
	require.Len(t, stages, 2)
}

func TestNormalizePipelineCoercesNonArray(t *testing.T) {
	for _, in := range []interface{}{nil, "not a pipeline", map[string]interface{}{"$match": 1}, 42} {
		stages := normalizePipeline(in, 5)
		require.Len(t, stages, 1)
		require.Equal(t, 5, stages[0].(map[string]interface{})["$limit"])
	}
}

func TestNormalizePipelineIgnoresNonMapStages(t *testing.T) {
	// Non-object stages cannot carry $limit; the shallow check skips them.
	in := []interface{}{"$limit", []interface{}{"$limit"}}
	stages := normalizePipeline(in, 7)
	require.Len(t, stages, 3)
}

func TestStripIDs(t *testing.T) {
	docs := []bson.M{
		{"_id": "abc", "name": "x"},
		{"name": "y"},
	}
	out := stripIDs(docs)
	for _, d := range out {
		require.NotContains(t, d, "_id")
	}
	require.Equal(t, "x", out[0]["name"])
}
