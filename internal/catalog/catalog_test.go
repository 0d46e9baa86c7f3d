package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperations_Order(t *testing.T) {
	ops := Operations()
	require.Len(t, ops, 3)
	assert.Equal(t, ListLogGroups, ops[0].Name)
	assert.Equal(t, ListLogStreams, ops[1].Name)
	assert.Equal(t, GetLogEvents, ops[2].Name)
	for _, op := range ops {
		assert.NotEmpty(t, op.Description, op.Name)
	}
}

func TestOperations_Stable(t *testing.T) {
	first := Operations()
	second := Operations()
	assert.Equal(t, first, second)

	// Mutating a returned copy must not leak into later calls.
	*first[0].Schema[1].Default = 99
	first[0].Schema[1].Bounds.Max = 1
	first[0].Schema = nil

	third := Operations()
	assert.Equal(t, second, third)
}

func TestArgumentContracts(t *testing.T) {
	tests := []struct {
		op       string
		required []string
		optional []string
		limitMax int64
	}{
		{op: ListLogGroups, optional: []string{"prefix", "limit"}, limitMax: 50},
		{op: ListLogStreams, required: []string{"logGroupName"}, optional: []string{"limit"}, limitMax: 50},
		{op: GetLogEvents, required: []string{"logGroupName", "logStreamName"}, optional: []string{"limit", "startTime", "endTime"}, limitMax: 100},
	}

	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			op, ok := Lookup(tt.op)
			require.True(t, ok)
			assert.Equal(t, tt.required, op.Schema.Required())

			for _, name := range tt.optional {
				f, ok := op.Schema.Field(name)
				require.True(t, ok, name)
				assert.False(t, f.Required, name)
			}

			limit, ok := op.Schema.Field("limit")
			require.True(t, ok)
			assert.Equal(t, TypeNumber, limit.Type)
			require.NotNil(t, limit.Default)
			assert.Equal(t, int64(10), *limit.Default)
			require.NotNil(t, limit.Bounds)
			assert.Equal(t, Bounds{Min: 1, Max: tt.limitMax}, *limit.Bounds)
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := Lookup("delete_log_group")
	assert.False(t, ok)
}

func TestBoundsContains(t *testing.T) {
	b := Bounds{Min: 1, Max: 50}
	assert.False(t, b.Contains(0))
	assert.True(t, b.Contains(1))
	assert.True(t, b.Contains(50))
	assert.False(t, b.Contains(51))
}

func TestJSONSchema(t *testing.T) {
	op, ok := Lookup(GetLogEvents)
	require.True(t, ok)

	data, err := json.Marshal(op.Schema.JSONSchema())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "object", got["type"])
	assert.Equal(t, []any{"logGroupName", "logStreamName"}, got["required"])

	props, ok := got["properties"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, props, 5)

	limit := props["limit"].(map[string]any)
	assert.Equal(t, "number", limit["type"])
	assert.Equal(t, float64(1), limit["minimum"])
	assert.Equal(t, float64(100), limit["maximum"])
	assert.Equal(t, float64(10), limit["default"])

	start := props["startTime"].(map[string]any)
	assert.NotContains(t, start, "minimum")
}

func TestJSONSchema_ValidatesInstances(t *testing.T) {
	op, ok := Lookup(ListLogStreams)
	require.True(t, ok)

	resolved, err := op.Schema.JSONSchema().Resolve(nil)
	require.NoError(t, err)

	assert.NoError(t, resolved.Validate(map[string]any{"logGroupName": "/ecs/web", "limit": 50.0}))
	assert.Error(t, resolved.Validate(map[string]any{"logGroupName": "/ecs/web", "limit": 51.0}))
	assert.Error(t, resolved.Validate(map[string]any{"limit": 10.0}))
}

func TestOperation_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Operations())
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 3)
	assert.Equal(t, "list_log_groups", got[0]["name"])
	assert.Contains(t, got[0], "argumentSchema")
}
