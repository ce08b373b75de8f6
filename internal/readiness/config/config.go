// Package config loads the readiness rule configuration: document priority,
// thresholds, composite dependencies, certification kinds and optional seed
// rule rows. Files are TOML; anything a file leaves out takes the default.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	"readiness/internal/readiness/engine"
	"readiness/internal/readiness/models"
	dErrors "readiness/pkg/domain-errors"
)

// Thresholds are the expiry windows in days.
type Thresholds struct {
	ControlExtensionDays int `toml:"control_extension_days"`
	WarningDays          int `toml:"warning_days"`
}

// Documents configures curriculum document resolution.
type Documents struct {
	Cross      models.Document              `toml:"cross"`
	Priority   []models.Document            `toml:"priority"`
	Categories map[models.Document][]string `toml:"categories"`
	Suppressed []string                     `toml:"suppressed"`
}

// Medical configures the alternating medical exam pair.
type Medical struct {
	FullKind      string `toml:"full_kind"`
	FullMonths    int    `toml:"full_months"`
	InterimKind   string `toml:"interim_kind"`
	InterimMonths int    `toml:"interim_months"`
}

// Kind configures one certification or annual-check kind.
type Kind struct {
	Kind         string `toml:"kind"`
	DisplayName  string `toml:"display_name"`
	PerEquipment bool   `toml:"per_equipment"`
	Months       int    `toml:"months"`
}

// Rules is the full rule configuration.
type Rules struct {
	// Version identifies the priority order and rule set a pass ran with.
	Version           string              `toml:"version"`
	Conditions        []string            `toml:"conditions"`
	AnnualCheckMonths int                 `toml:"annual_check_months"`
	Thresholds        Thresholds          `toml:"thresholds"`
	Documents         Documents           `toml:"documents"`
	Dependencies      map[string][]string `toml:"dependencies"`
	Medical           Medical             `toml:"medical"`
	Certifications    []Kind              `toml:"certifications"`
	AnnualChecks      []Kind              `toml:"annual_checks"`
	// Seed holds rule rows for deployments without a rule database.
	Seed []models.RuleEntry `toml:"rules"`
}

// LoadTOML reads rules from path, filling unset sections from DefaultRules,
// and validates the result.
func LoadTOML(path string) (*Rules, error) {
	var r Rules
	md, err := toml.DecodeFile(path, &r)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, dErrors.Wrap(err, dErrors.CodeNotFound, fmt.Sprintf("rules file %s not found", path))
		}
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "failed to decode rules file")
	}
	return finish(&r, md)
}

// Parse decodes rules from TOML text, filling and validating like LoadTOML.
func Parse(data string) (*Rules, error) {
	var r Rules
	md, err := toml.Decode(data, &r)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeValidation, "failed to decode rules")
	}
	return finish(&r, md)
}

// LoadOrDefault loads path when it is set and exists, otherwise returns the
// defaults.
func LoadOrDefault(path string) (*Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return DefaultRules(), nil
	}
	return LoadTOML(path)
}

func finish(r *Rules, md toml.MetaData) (*Rules, error) {
	r.fillDefaults(md)
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// fillDefaults fills what the file left unset. Numbers where zero is a
// valid setting are only filled when the key is absent.
func (r *Rules) fillDefaults(md toml.MetaData) {
	def := DefaultRules()
	if r.Version == "" {
		r.Version = def.Version
	}
	if r.Conditions == nil {
		r.Conditions = def.Conditions
	}
	if !md.IsDefined("annual_check_months") {
		r.AnnualCheckMonths = def.AnnualCheckMonths
	}
	if !md.IsDefined("thresholds", "control_extension_days") {
		r.Thresholds.ControlExtensionDays = def.Thresholds.ControlExtensionDays
	}
	if r.Thresholds.WarningDays == 0 {
		r.Thresholds.WarningDays = def.Thresholds.WarningDays
	}
	if r.Documents.Cross == "" {
		r.Documents.Cross = def.Documents.Cross
	}
	if r.Documents.Priority == nil {
		r.Documents.Priority = def.Documents.Priority
	}
	if r.Documents.Categories == nil {
		r.Documents.Categories = def.Documents.Categories
	}
	if r.Dependencies == nil {
		r.Dependencies = def.Dependencies
	}
	if r.Medical == (Medical{}) {
		r.Medical = def.Medical
	}
	if r.Certifications == nil {
		r.Certifications = def.Certifications
	}
	if r.AnnualChecks == nil {
		r.AnnualChecks = def.AnnualChecks
	}
}

// Policy converts the configuration into the engine's policy.
func (r *Rules) Policy() engine.Policy {
	return engine.Policy{
		Thresholds: engine.Thresholds{
			ControlExtensionDays: r.Thresholds.ControlExtensionDays,
			WarningDays:          r.Thresholds.WarningDays,
		},
		Documents: engine.DocumentConfig{
			CrossDocument: r.Documents.Cross,
			Priority:      append([]models.Document(nil), r.Documents.Priority...),
		},
		Cross: engine.CrossConfig{
			SuppressedKeys:     append([]string(nil), r.Documents.Suppressed...),
			DocumentCategories: r.Documents.Categories,
		},
		Dependencies:   r.Dependencies,
		ConditionOrder: append([]string(nil), r.Conditions...),
		Medical: engine.MedicalPolicy{
			FullKind:      r.Medical.FullKind,
			FullMonths:    r.Medical.FullMonths,
			InterimKind:   r.Medical.InterimKind,
			InterimMonths: r.Medical.InterimMonths,
		},
		Certifications:    recordKinds(r.Certifications),
		AnnualChecks:      recordKinds(r.AnnualChecks),
		AnnualCheckMonths: r.AnnualCheckMonths,
	}
}

func recordKinds(kinds []Kind) []engine.RecordKind {
	out := make([]engine.RecordKind, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, engine.RecordKind{
			Kind:         k.Kind,
			DisplayName:  k.DisplayName,
			PerEquipment: k.PerEquipment,
			Months:       k.Months,
		})
	}
	return out
}
