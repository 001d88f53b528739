package generator

import (
	"errors"

	"pcfit/routines-service/internal/domain"
)

// ErrUnknownExperience is returned when the experience level is outside
// the enumerated set; there is no template family for it.
var ErrUnknownExperience = errors.New("no routine template for experience level")

// MuscleQuota is one (muscle group, exercise count) requirement within a
// template day.
type MuscleQuota struct {
	MuscleGroup string
	Count       int
}

// DayTemplate is the skeleton of one training day before exercises are
// materialized into it.
type DayTemplate struct {
	Name             string
	DayOfWeek        string
	WarmupDuration   int // minutes
	WorkoutDuration  int
	CooldownDuration int
	Quotas           []MuscleQuota
}

// Template is a fixed, pre-authored routine skeleton keyed by experience
// and sex. Values returned by Lookup are private copies; adjusting them
// never touches the catalog data.
type Template struct {
	Name          string
	Description   string
	RoutineType   domain.RoutineType
	Days          []string
	WeeksDuration int
	DayTemplates  []DayTemplate
}

// clone deep-copies a template so callers can mutate freely.
func (t Template) clone() Template {
	out := t
	out.Days = append([]string(nil), t.Days...)
	out.DayTemplates = make([]DayTemplate, len(t.DayTemplates))
	for i, d := range t.DayTemplates {
		dc := d
		dc.Quotas = append([]MuscleQuota(nil), d.Quotas...)
		out.DayTemplates[i] = dc
	}
	return out
}

// LookupTemplate selects the base template for the given experience and
// sex. Any sex value other than "F" resolves to the male family; the
// catalog has exactly two families and callers historically sent empty
// or free-form values.
func LookupTemplate(experience domain.Experience, sex domain.Sex) (Template, error) {
	family := maleTemplates
	if sex == domain.SexFemale {
		family = femaleTemplates
	}
	tpl, ok := family[experience]
	if !ok {
		return Template{}, ErrUnknownExperience
	}
	return tpl.clone(), nil
}

// TemplateEntry is a catalog template together with its lookup key.
type TemplateEntry struct {
	Experience domain.Experience
	Sex        domain.Sex
	Template   Template
}

// Templates lists every catalog entry (copies); used by the admin endpoints.
func Templates() []TemplateEntry {
	experiences := []domain.Experience{
		domain.ExperienceBeginner,
		domain.ExperienceIntermediate,
		domain.ExperienceAdvanced,
	}
	out := make([]TemplateEntry, 0, len(experiences)*2)
	for _, exp := range experiences {
		out = append(out, TemplateEntry{Experience: exp, Sex: domain.SexMale, Template: maleTemplates[exp].clone()})
		out = append(out, TemplateEntry{Experience: exp, Sex: domain.SexFemale, Template: femaleTemplates[exp].clone()})
	}
	return out
}
