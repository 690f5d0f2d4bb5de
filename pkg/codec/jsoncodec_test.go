package codec

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON_Marshal(t *testing.T) {
	t.Parallel()

	b, err := JSON.Marshal(map[string]string{"message": "a<b>&c"})
	require.NoError(t, err)
	assert.Equal(t, `{"message":"a<b>&c"}`, string(b))
}

func TestJSON_Unmarshal(t *testing.T) {
	t.Parallel()

	t.Run("numbers keep literal text", func(t *testing.T) {
		t.Parallel()

		var v map[string]any
		require.NoError(t, JSON.Unmarshal([]byte(`{"n":1.50}`), &v))
		assert.Equal(t, json.Number("1.50"), v["n"])
	})

	t.Run("trailing content rejected", func(t *testing.T) {
		t.Parallel()

		var v any
		assert.Error(t, JSON.Unmarshal([]byte(`{} {}`), &v))
	})

	t.Run("malformed", func(t *testing.T) {
		t.Parallel()

		var v any
		assert.Error(t, JSON.Unmarshal([]byte(`{"a":`), &v))
	})
}

func TestCompact(t *testing.T) {
	t.Parallel()

	raw, err := Compact([]byte("{\n  \"b\": 2,\n  \"a\": \"x y\"\n}"))
	require.NoError(t, err)
	assert.Equal(t, `{"b":2,"a":"x y"}`, string(raw))

	_, err = Compact([]byte(`{"a"`))
	assert.Error(t, err)

	_, err = Compact([]byte(`1 2`))
	assert.Error(t, err)
}

func TestIsBlank(t *testing.T) {
	t.Parallel()

	assert.True(t, IsBlank(nil))
	assert.True(t, IsBlank([]byte(" \r\n\t")))
	assert.False(t, IsBlank([]byte(`{}`)))
	assert.Equal(t, "application/json", JSON.ContentType())
}
