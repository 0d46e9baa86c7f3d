package dispatch

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	args, err := ParseArgs([]byte(`{"logGroupName":"/ecs/web","limit":25,"startTime":1700000000000,"flag":true,"extra":{"a":1},"gone":null}`))
	require.NoError(t, err)

	s, ok := args["logGroupName"].Str()
	assert.True(t, ok)
	assert.Equal(t, "/ecs/web", s)

	n, ok := args["limit"].Int()
	assert.True(t, ok)
	assert.Equal(t, int64(25), n)

	n, ok = args["startTime"].Int()
	assert.True(t, ok)
	assert.Equal(t, int64(1700000000000), n)

	assert.Equal(t, KindBool, args["flag"].Kind())
	assert.Equal(t, KindOther, args["extra"].Kind())
	assert.Equal(t, KindNull, args["gone"].Kind())
}

func TestParseArgs_Empty(t *testing.T) {
	for _, in := range []string{"", "  ", "null"} {
		args, err := ParseArgs([]byte(in))
		require.NoError(t, err, in)
		assert.Empty(t, args)
	}
}

func TestParseArgs_NotAnObject(t *testing.T) {
	for _, in := range []string{`[1,2]`, `"text"`, `{"a":`} {
		_, err := ParseArgs([]byte(in))
		assert.Error(t, err, in)
	}
}

func TestValueInt(t *testing.T) {
	tests := []struct {
		v      Value
		want   int64
		wantOK bool
	}{
		{Number(10), 10, true},
		{Number(-1), -1, true},
		{Number(2.5), 0, false},
		{String("10"), 0, false},
		{Null(), 0, false},
		{Number(9223372036854775808), 0, false},
		{Number(-9223372036854775808), math.MinInt64, true},
		{Number(1 << 62), 1 << 62, true},
	}
	for _, tt := range tests {
		got, ok := tt.v.Int()
		assert.Equal(t, tt.wantOK, ok)
		assert.Equal(t, tt.want, got)
	}
}

func TestArgsFromMap(t *testing.T) {
	args := ArgsFromMap(map[string]any{"a": "x", "b": 3, "c": 4.0, "d": nil})
	assert.Equal(t, KindString, args["a"].Kind())
	assert.Equal(t, KindNumber, args["b"].Kind())
	assert.Equal(t, KindNumber, args["c"].Kind())
	assert.Equal(t, KindNull, args["d"].Kind())
}
