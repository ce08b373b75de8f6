package config

import (
	"fmt"
	"slices"
	"strings"

	"readiness/internal/readiness/models"
	dErrors "readiness/pkg/domain-errors"
)

// FieldError is one rejected configuration value.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldErrors collects every problem found by Validate.
type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration for values the engine cannot run with.
// The returned error carries the validation code and wraps FieldErrors.
func (r *Rules) Validate() error {
	var errs FieldErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(r.Version) == "" {
		add("version", "must not be empty")
	}
	if r.Thresholds.ControlExtensionDays < 0 {
		add("thresholds.control_extension_days", "must not be negative")
	}
	if r.Thresholds.WarningDays <= 0 {
		add("thresholds.warning_days", "must be positive")
	}
	if r.AnnualCheckMonths < 0 {
		add("annual_check_months", "must not be negative")
	}

	if len(r.Documents.Priority) == 0 {
		add("documents.priority", "must list at least one document")
	}
	seen := make(map[models.Document]bool)
	for _, doc := range r.Documents.Priority {
		switch {
		case doc == "":
			add("documents.priority", "contains an empty document")
		case doc == r.Documents.Cross:
			add("documents.priority", "must not contain the cross-cutting document %q", doc)
		case seen[doc]:
			add("documents.priority", "lists %q twice", doc)
		}
		seen[doc] = true
	}

	for composite, prereqs := range r.Dependencies {
		field := "dependencies." + composite
		if len(prereqs) == 0 {
			add(field, "must list at least one prerequisite")
		}
		for _, p := range prereqs {
			if p == composite {
				add(field, "depends on itself")
				continue
			}
			if _, nested := r.Dependencies[p]; nested {
				add(field, "prerequisite %q is itself composite", p)
			}
		}
	}

	if r.Medical.FullKind != "" && r.Medical.FullKind == r.Medical.InterimKind {
		add("medical", "full and interim kinds must differ")
	}
	if r.Medical.FullKind != "" && r.Medical.FullMonths <= 0 {
		add("medical.full_months", "must be positive")
	}
	if r.Medical.InterimKind != "" && r.Medical.InterimMonths <= 0 {
		add("medical.interim_months", "must be positive")
	}

	validateKinds("certifications", r.Certifications, []string{r.Medical.FullKind, r.Medical.InterimKind}, add)
	validateKinds("annual_checks", r.AnnualChecks, nil, add)

	for i, rule := range r.Seed {
		field := fmt.Sprintf("rules[%d]", i)
		if rule.Requirement == "" {
			add(field+".requirement", "must not be empty")
		}
		if rule.Family != models.FamilyCondition && rule.Family != models.FamilySyllabus {
			add(field+".family", "must be condition or syllabus, got %q", rule.Family)
		}
		if rule.Duration < 0 {
			add(field+".duration", "must not be negative")
		}
		if rule.Tier != nil && *rule.Tier <= 0 {
			add(field+".tier", "must be positive when set")
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return dErrors.Wrap(errs, dErrors.CodeValidation, "invalid rule configuration")
}

func validateKinds(section string, kinds []Kind, reserved []string, add func(field, format string, args ...any)) {
	seen := make(map[string]bool)
	for i, k := range kinds {
		field := fmt.Sprintf("%s[%d].kind", section, i)
		switch {
		case k.Kind == "":
			add(field, "must not be empty")
		case seen[k.Kind]:
			add(field, "duplicate kind %q", k.Kind)
		case slices.Contains(reserved, k.Kind):
			add(field, "%q is a medical kind", k.Kind)
		}
		if k.Months < 0 {
			add(fmt.Sprintf("%s[%d].months", section, i), "must not be negative")
		}
		seen[k.Kind] = true
	}
}
