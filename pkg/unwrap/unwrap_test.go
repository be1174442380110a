package unwrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContent(t *testing.T) {
	t.Run("json string", func(t *testing.T) {
		got := Content(`{"a": 1}`)
		assert.Equal(t, map[string]any{"a": 1.0}, got)
	})

	t.Run("invalid json returns original string", func(t *testing.T) {
		got := Content("not json {")
		assert.Equal(t, "not json {", got)
	})

	t.Run("text blocks are joined then parsed", func(t *testing.T) {
		blocks := []any{
			map[string]any{"type": "text", "text": `[{"name":`},
			map[string]any{"type": "text", "text": `"Milk"}]`},
		}
		got := Content(blocks)
		assert.Equal(t, []any{map[string]any{"name": "Milk"}}, got)
	})

	t.Run("typed text blocks", func(t *testing.T) {
		got := Content([]TextBlock{{Type: "text", Text: `{"ok":true}`}})
		assert.Equal(t, map[string]any{"ok": true}, got)
	})

	t.Run("structured values pass through", func(t *testing.T) {
		in := []any{map[string]any{"name": "x"}}
		assert.Equal(t, in, Content(in))
	})
}

func TestContentIdempotent(t *testing.T) {
	inputs := []any{
		map[string]any{"data": map[string]any{"items": []any{1.0}}},
		[]any{map[string]any{"name": "Dosa", "price": 80.0}},
		`{"results":[{"name":"A"}]}`,
	}

	for _, in := range inputs {
		once := Content(in)
		assert.Equal(t, once, Content(once))
	}
}

func TestExtractPayload(t *testing.T) {
	t.Run("descends wrapper keys", func(t *testing.T) {
		in := map[string]any{
			"data": map[string]any{
				"items": []any{map[string]any{"name": "Milk"}},
			},
		}
		got := ExtractPayload(in, 0)
		assert.Equal(t, []any{map[string]any{"name": "Milk"}}, got)
	})

	t.Run("stops at max depth", func(t *testing.T) {
		inner := map[string]any{"items": []any{"deep"}}
		in := map[string]any{"data": map[string]any{"results": inner}}
		got := ExtractPayload(in, 0)
		assert.Equal(t, inner, got)
	})

	t.Run("skips null wrapper values", func(t *testing.T) {
		in := map[string]any{"data": nil, "results": []any{"x"}}
		assert.Equal(t, []any{"x"}, ExtractPayload(in, 0))
	})

	t.Run("no wrapper key returns value", func(t *testing.T) {
		in := map[string]any{"name": "Solo"}
		assert.Equal(t, in, ExtractPayload(in, 0))
	})

	t.Run("flattens categories and card info", func(t *testing.T) {
		in := map[string]any{
			"categories": []any{
				map[string]any{
					"name": "Starters",
					"itemCards": []any{
						map[string]any{"card": map[string]any{"info": map[string]any{"name": "Paneer Tikka", "price": 25000.0}}},
					},
				},
				map[string]any{
					"name":  "Mains",
					"items": []any{map[string]any{"name": "Dal Makhani", "category": "Curries"}},
				},
			},
		}
		got, ok := ExtractPayload(in, 0).([]any)
		require.True(t, ok)
		require.Len(t, got, 2)

		first := got[0].(map[string]any)
		assert.Equal(t, "Paneer Tikka", first["name"])
		assert.Equal(t, "Starters", first["category"])

		second := got[1].(map[string]any)
		assert.Equal(t, "Curries", second["category"])
	})

	t.Run("restaurant with dishes is not a category", func(t *testing.T) {
		in := []any{map[string]any{"name": "Saffron", "cuisine": "Indian", "dishes": []any{"a"}}}
		assert.Equal(t, in, ExtractPayload(in, 0))
	})
}
