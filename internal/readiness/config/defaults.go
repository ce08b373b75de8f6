package config

import "readiness/internal/readiness/models"

const (
	DocumentVA   models.Document = "KBP-VA"
	DocumentBARA models.Document = "KBP-BA/RA"
	DocumentV    models.Document = "KBP-V"
	// DocumentKLPV is the cross-cutting test-pilot document.
	DocumentKLPV models.Document = "KLPV"
)

// DefaultVersion names the built-in priority order.
const DefaultVersion = "2024.1"

// DefaultRules returns the built-in configuration.
func DefaultRules() *Rules {
	return &Rules{
		Version: DefaultVersion,
		Conditions: []string{
			"day_simple",
			"day_complex",
			"day_minimum",
			"night_simple",
			"night_complex",
			"night_minimum",
		},
		AnnualCheckMonths: 12,
		Thresholds: Thresholds{
			ControlExtensionDays: 10,
			WarningDays:          15,
		},
		Documents: Documents{
			Cross:    DocumentKLPV,
			Priority: []models.Document{DocumentVA, DocumentBARA, DocumentV},
			Categories: map[models.Document][]string{
				DocumentVA:   {"fixed_wing"},
				DocumentBARA: {"fixed_wing"},
				DocumentV:    {"rotary_wing"},
			},
		},
		Dependencies: map[string][]string{
			"strike_simple_targets":  {"low_altitude"},
			"strike_complex_targets": {"low_altitude", "complex_aerobatics_low"},
		},
		Medical: Medical{
			FullKind:      "flight_medical_board",
			FullMonths:    12,
			InterimKind:   "interim_medical",
			InterimMonths: 6,
		},
		Certifications: []Kind{
			{Kind: "emergency_egress", DisplayName: "Emergency egress"},
			{Kind: "article_205", DisplayName: "Article 205", PerEquipment: true},
			{Kind: "leave", DisplayName: "Leave"},
			{Kind: "parachute_jumps", DisplayName: "Parachute jumps"},
		},
		AnnualChecks: []Kind{
			{Kind: "piloting_technique", DisplayName: "Piloting technique"},
			{Kind: "instrument_approach", DisplayName: "Instrument approach"},
			{Kind: "backup_instruments", DisplayName: "Piloting on backup instruments"},
			{Kind: "piloting_simulated_instruments", DisplayName: "Piloting under simulated instrument conditions"},
			{Kind: "navigation", DisplayName: "Navigation"},
			{Kind: "combat_employment", DisplayName: "Combat employment"},
			{Kind: "instructor", DisplayName: "Instructor check"},
		},
	}
}
