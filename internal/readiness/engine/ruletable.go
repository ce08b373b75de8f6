package engine

import (
	"math"

	"readiness/internal/readiness/models"
)

// DaysPerMonth converts syllabus durations to days. The flat approximation is
// kept deliberately so expiry dates match previously published ones.
const DaysPerMonth = 30

// RuleTable answers duration lookups over an immutable set of rule rows.
type RuleTable struct {
	rules []models.RuleEntry
}

func NewRuleTable(rules []models.RuleEntry) *RuleTable {
	return &RuleTable{rules: append([]models.RuleEntry(nil), rules...)}
}

func (t *RuleTable) Len() int {
	return len(t.rules)
}

// Lookup returns the rule for requirement at tier, preferring a row for that
// exact tier over an any-tier row. requirement matches either the
// requirement name or the normalized key.
func (t *RuleTable) Lookup(family models.Family, requirement string, tier int) (models.RuleEntry, bool) {
	var fallback *models.RuleEntry
	for i := range t.rules {
		r := &t.rules[i]
		if r.Family != family || (r.Requirement != requirement && r.NormalizedKey != requirement) {
			continue
		}
		if r.Tier != nil && *r.Tier == tier {
			return *r, true
		}
		if r.Tier == nil && fallback == nil {
			fallback = r
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return models.RuleEntry{}, false
}

type tierKey struct {
	document models.Document
	key      string
}

// ForTier returns the rows of family that apply at tier, one per (document,
// key), in table order. An exact-tier row replaces an any-tier row for the
// same requirement.
func (t *RuleTable) ForTier(family models.Family, tier int) []models.RuleEntry {
	var out []models.RuleEntry
	pos := make(map[tierKey]int)
	for _, r := range t.rules {
		if r.Family != family {
			continue
		}
		exact := r.Tier != nil && *r.Tier == tier
		if r.Tier != nil && !exact {
			continue
		}
		k := tierKey{document: r.Document, key: r.Key()}
		i, seen := pos[k]
		switch {
		case !seen:
			pos[k] = len(out)
			out = append(out, r)
		case exact && out[i].Tier == nil:
			out[i] = r
		}
	}
	return out
}

// EffectiveDays returns the allowed duration of rule in days for a person
// with the given coefficient. Tiered rows are scaled and floored; any-tier rows
// are not. Syllabus months are converted with DaysPerMonth after scaling.
func EffectiveDays(rule models.RuleEntry, coefficient float64) int {
	base := rule.Duration
	if base <= 0 {
		return 0
	}
	if rule.Tier != nil {
		base = int(math.Floor(float64(base) * normalizeCoefficient(coefficient)))
	}
	if rule.Family == models.FamilySyllabus {
		return base * DaysPerMonth
	}
	return base
}

// EffectiveMonths is the scaled syllabus duration in months, used for display
// and ordering.
func EffectiveMonths(rule models.RuleEntry, coefficient float64) int {
	if rule.Family != models.FamilySyllabus {
		return 0
	}
	return EffectiveDays(rule, coefficient) / DaysPerMonth
}

func normalizeCoefficient(c float64) float64 {
	if c <= 0 || math.IsNaN(c) || math.IsInf(c, 0) {
		return 1
	}
	return c
}
