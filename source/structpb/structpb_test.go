package structpb_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/reoring/jsonmap"
	jstructpb "github.com/reoring/jsonmap/source/structpb"
)

func TestDecode(t *testing.T) {
	s, err := structpb.NewStruct(map[string]any{
		"userId":  float64(42),
		"enabled": true,
		"scores":  []any{1.5, 2.0},
		"profile": map[string]any{"name": "x", "bio": nil},
	})
	require.NoError(t, err)

	a := jsonmap.New(jsonmap.WithKeyStrategy(jsonmap.KeysDefault))
	id, err := jstructpb.Decode(a, s, func(m *jsonmap.Mapper) (int, error) {
		return jsonmap.Int(m.At(jsonmap.KeyPath{"userId"}))
	})
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	scores, err := jstructpb.Decode(a, s, func(m *jsonmap.Mapper) ([]float64, error) {
		return jsonmap.ArrayOf(jsonmap.Float64)(m.At(jsonmap.KeyPath{"scores"}))
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2}, scores)

	_, err = jstructpb.Decode(a, s, func(m *jsonmap.Mapper) (string, error) {
		return jsonmap.String(m.At(jsonmap.ParseKeyPath("profile.bio")))
	})
	assert.ErrorIs(t, err, jsonmap.ErrKeyPathMissing)
}

func TestParseWire(t *testing.T) {
	pv, err := structpb.NewValue(map[string]any{"a": []any{"x", false}})
	require.NoError(t, err)
	data, err := proto.Marshal(pv)
	require.NoError(t, err)

	v, err := jstructpb.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, `{"a":["x",false]}`, v.String())

	ps, err := structpb.NewStruct(map[string]any{"n": 1.0})
	require.NoError(t, err)
	data, err = proto.Marshal(ps)
	require.NoError(t, err)
	v, err = jstructpb.ParseStruct(data)
	require.NoError(t, err)
	assert.Equal(t, `{"n":1}`, v.String())

	_, err = jstructpb.FromValue(structpb.NewNumberValue(math.Inf(1)))
	assert.Error(t, err)
}
