package engine_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"readiness/internal/readiness/engine"
	"readiness/internal/readiness/models"
)

func TestRuleTableLookup(t *testing.T) {
	table := engine.NewRuleTable([]models.RuleEntry{
		{Requirement: "day_simple", Family: models.FamilyCondition, Tier: tier(1), Duration: 30},
		{Requirement: "day_simple", Family: models.FamilyCondition, Tier: tier(2), Duration: 45},
		{Requirement: "night_simple", Family: models.FamilyCondition, Duration: 20},
		{Requirement: "night_simple", Family: models.FamilyCondition, Tier: tier(3), Duration: 10},
		{Requirement: "Low altitude flight", NormalizedKey: "low_altitude", Family: models.FamilySyllabus, Duration: 6},
	})

	t.Run("exact tier", func(t *testing.T) {
		rule, ok := table.Lookup(models.FamilyCondition, "day_simple", 2)
		require.True(t, ok)
		assert.Equal(t, 45, rule.Duration)
	})

	t.Run("any-tier fallback", func(t *testing.T) {
		rule, ok := table.Lookup(models.FamilyCondition, "night_simple", 1)
		require.True(t, ok)
		assert.Equal(t, 20, rule.Duration)
	})

	t.Run("exact tier beats any-tier listed first", func(t *testing.T) {
		rule, ok := table.Lookup(models.FamilyCondition, "night_simple", 3)
		require.True(t, ok)
		assert.Equal(t, 10, rule.Duration)
	})

	t.Run("by normalized key", func(t *testing.T) {
		_, ok := table.Lookup(models.FamilySyllabus, "low_altitude", 1)
		assert.True(t, ok)
	})

	t.Run("absent", func(t *testing.T) {
		_, ok := table.Lookup(models.FamilyCondition, "day_simple", 3)
		assert.False(t, ok)
		_, ok = table.Lookup(models.FamilySyllabus, "day_simple", 1)
		assert.False(t, ok)
	})
}

func TestRuleTableForTier(t *testing.T) {
	table := engine.NewRuleTable([]models.RuleEntry{
		{Requirement: "a", Family: models.FamilySyllabus, Document: "D1", Duration: 6},
		{Requirement: "b", Family: models.FamilySyllabus, Document: "D1", Tier: tier(2), Duration: 3},
		{Requirement: "a", Family: models.FamilySyllabus, Document: "D1", Tier: tier(1), Duration: 4},
		{Requirement: "a", Family: models.FamilySyllabus, Document: "D2", Duration: 12},
		{Requirement: "c", Family: models.FamilyCondition, Duration: 30},
	})

	rows := table.ForTier(models.FamilySyllabus, 1)
	require.Len(t, rows, 2)
	assert.Equal(t, models.Document("D1"), rows[0].Document)
	assert.Equal(t, 4, rows[0].Duration)
	assert.Equal(t, models.Document("D2"), rows[1].Document)

	rows = table.ForTier(models.FamilySyllabus, 2)
	require.Len(t, rows, 3)
	assert.Equal(t, 6, rows[0].Duration)
	assert.Equal(t, "b", rows[1].Requirement)
}

func TestEffectiveDays(t *testing.T) {
	tests := []struct {
		name        string
		rule        models.RuleEntry
		coefficient float64
		want        int
	}{
		{"condition unscaled", models.RuleEntry{Family: models.FamilyCondition, Tier: tier(1), Duration: 30}, 1, 30},
		{"condition scaled", models.RuleEntry{Family: models.FamilyCondition, Tier: tier(1), Duration: 30}, 1.5, 45},
		{"condition floored", models.RuleEntry{Family: models.FamilyCondition, Tier: tier(1), Duration: 7}, 0.9, 6},
		{"zero coefficient is no-op", models.RuleEntry{Family: models.FamilyCondition, Tier: tier(1), Duration: 30}, 0, 30},
		{"negative coefficient is no-op", models.RuleEntry{Family: models.FamilyCondition, Tier: tier(1), Duration: 30}, -2, 30},
		{"NaN coefficient is no-op", models.RuleEntry{Family: models.FamilyCondition, Tier: tier(1), Duration: 30}, math.NaN(), 30},
		{"syllabus months to days", models.RuleEntry{Family: models.FamilySyllabus, Tier: tier(1), Duration: 6}, 1, 180},
		{"syllabus scaled then converted", models.RuleEntry{Family: models.FamilySyllabus, Tier: tier(1), Duration: 6}, 1.5, 270},
		{"any-tier syllabus not scaled", models.RuleEntry{Family: models.FamilySyllabus, Duration: 6}, 1.5, 180},
		{"zero duration", models.RuleEntry{Family: models.FamilySyllabus, Tier: tier(1)}, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.EffectiveDays(tt.rule, tt.coefficient))
		})
	}
}
