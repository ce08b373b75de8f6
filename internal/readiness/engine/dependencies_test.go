package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readiness/internal/readiness/engine"
	"readiness/internal/readiness/models"
)

func TestResolveDependencies(t *testing.T) {
	deps := map[string][]string{"strike": {"low", "aerobatics"}}

	colorOf := func(sections []models.Section, key string) []models.Color {
		for _, s := range sections {
			if s.Key() == key {
				var out []models.Color
				for _, it := range s.Items {
					out = append(out, it.Color)
				}
				return out
			}
		}
		return nil
	}

	tests := []struct {
		name     string
		sections []models.Section
		want     []models.Color
	}{
		{
			name: "red and green prerequisites make red",
			sections: []models.Section{
				section("low", item(1, engine.Red)),
				section("aerobatics", item(1, engine.Green)),
				section("strike", item(1, engine.Gray)),
			},
			want: []models.Color{engine.Red},
		},
		{
			name: "missing prerequisite section makes gray",
			sections: []models.Section{
				section("low", item(1, engine.Green)),
				section("strike", item(1, engine.Red)),
			},
			want: []models.Color{engine.Gray},
		},
		{
			name: "gray prerequisite counts as red",
			sections: []models.Section{
				section("low", item(1, engine.Gray)),
				section("aerobatics", item(1, engine.Green)),
				section("strike", item(1, engine.Gray)),
			},
			want: []models.Color{engine.Red},
		},
		{
			name: "yellow prerequisite makes yellow",
			sections: []models.Section{
				section("low", item(1, engine.Yellow)),
				section("aerobatics", item(1, engine.Green)),
				section("strike", item(1, engine.Gray)),
			},
			want: []models.Color{engine.Yellow},
		},
		{
			name: "matches prerequisites by equipment",
			sections: []models.Section{
				section("low", item(1, engine.Green), item(2, engine.Yellow)),
				section("aerobatics", item(1, engine.Green)),
				section("strike", item(1, engine.Gray), item(2, engine.Gray)),
			},
			want: []models.Color{engine.Green, engine.Red},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.ResolveDependencies(tt.sections, deps)
			assert.Equal(t, tt.want, colorOf(got, "strike"))
		})
	}

	t.Run("does not modify its input", func(t *testing.T) {
		in := []models.Section{
			section("low", item(1, engine.Red)),
			section("aerobatics", item(1, engine.Green)),
			section("strike", item(1, engine.Gray)),
		}
		got := engine.ResolveDependencies(in, deps)
		require.Len(t, got, 3)
		assert.Equal(t, engine.Gray, in[2].Items[0].Color)
		assert.False(t, in[2].Composite)
		assert.True(t, got[2].Composite)
	})

	t.Run("prerequisites resolve within the composite's document", func(t *testing.T) {
		in := []models.Section{
			inDocument("KBP-A", section("low", item(1, engine.Green))),
			inDocument("KBP-B", section("low", item(2, engine.Green))),
			inDocument("KBP-B", section("aerobatics", item(2, engine.Yellow))),
			inDocument("KBP-B", section("strike", item(2, engine.Gray))),
		}
		got := engine.ResolveDependencies(in, deps)
		assert.Equal(t, []models.Color{engine.Yellow}, colorOf(got, "strike"))
	})

	t.Run("own document wins over another document for the same equipment", func(t *testing.T) {
		in := []models.Section{
			inDocument("KBP-A", section("low", item(1, engine.Red))),
			inDocument("KBP-B", section("low", item(1, engine.Green))),
			inDocument("KBP-B", section("aerobatics", item(1, engine.Green))),
			inDocument("KBP-B", section("strike", item(1, engine.Gray))),
		}
		got := engine.ResolveDependencies(in, deps)
		assert.Equal(t, []models.Color{engine.Green}, colorOf(got, "strike"))
	})

	t.Run("falls back to another document holding the equipment", func(t *testing.T) {
		in := []models.Section{
			inDocument("KBP-A", section("low", item(1, engine.Yellow))),
			inDocument("KBP-B", section("low", item(2, engine.Green))),
			inDocument("KBP-B", section("aerobatics", item(1, engine.Green))),
			inDocument("KBP-B", section("strike", item(1, engine.Gray))),
		}
		got := engine.ResolveDependencies(in, deps)
		assert.Equal(t, []models.Color{engine.Yellow}, colorOf(got, "strike"))
	})

	t.Run("composite without prerequisites is gray", func(t *testing.T) {
		in := []models.Section{
			section("low", item(1, engine.Green)),
			section("strike", item(1, engine.Green)),
		}
		got := engine.ResolveDependencies(in, map[string][]string{"strike": {}})
		assert.Equal(t, []models.Color{engine.Gray}, colorOf(got, "strike"))
	})

	t.Run("non-composite sections pass through", func(t *testing.T) {
		in := []models.Section{section("low", item(1, engine.Yellow))}
		assert.Equal(t, in, engine.ResolveDependencies(in, deps))
	})
}
