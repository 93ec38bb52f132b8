package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_MarshalJSON_PreservesInsertionOrder(t *testing.T) {
	doc := Document{
		{Key: "zeta", Value: 1},
		{Key: "alpha", Value: "a"},
		{Key: "nested", Value: Document{{Key: "b", Value: true}, {Key: "a", Value: nil}}},
	}

	data, err := json.Marshal(doc)

	require.NoError(t, err)
	assert.Equal(t, `{"zeta":1,"alpha":"a","nested":{"b":true,"a":null}}`, string(data))
}

func TestDocument_EmptyMarshalsAsObject(t *testing.T) {
	data, err := json.Marshal(Document{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestDocument_With_ReplacesInPlace(t *testing.T) {
	original := Document{{Key: "return_value_is_0", Value: true}, {Key: "kmer_size", Value: 5}}

	updated := original.With("return_value_is_0", false).With("max_read_length", 150)

	assert.Equal(t, []string{"return_value_is_0", "kmer_size", "max_read_length"}, updated.Keys())
	v, ok := updated.Get("return_value_is_0")
	require.True(t, ok)
	assert.Equal(t, false, v)

	v, ok = original.Get("return_value_is_0")
	require.True(t, ok)
	assert.Equal(t, true, v, "With must not mutate the receiver")
	_, ok = original.Get("max_read_length")
	assert.False(t, ok)
}

func TestDocument_Merge(t *testing.T) {
	a := Document{{Key: "x", Value: 1}, {Key: "y", Value: 2}}
	b := Document{{Key: "y", Value: 3}, {Key: "z", Value: 4}}

	merged := a.Merge(b)

	assert.Equal(t, Document{{Key: "x", Value: 1}, {Key: "y", Value: 3}, {Key: "z", Value: 4}}, merged)
}
