package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"entity-onboard/internal/forms"
	"entity-onboard/internal/rules"
)

// submissionFile is the YAML shape of a captured submission. Singleton
// sections hold a field map, repeating sections a list of field maps.
type submissionFile struct {
	EntityType string         `yaml:"entity_type"`
	Sections   map[string]any `yaml:"sections"`
}

// LoadSubmission reads a YAML submission file and coerces every field to the
// value kind its rule declares. File fields carry filenames only; the bytes
// are never read here.
func LoadSubmission(rs *rules.Ruleset, path string) (rules.EntityType, *forms.AnswerSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read submission file: %w", err)
	}
	return ParseSubmission(rs, data)
}

// ParseSubmission decodes YAML submission bytes into an answer set.
func ParseSubmission(rs *rules.Ruleset, data []byte) (rules.EntityType, *forms.AnswerSet, error) {
	var file submissionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return "", nil, fmt.Errorf("failed to parse submission YAML: %w", err)
	}
	if file.EntityType == "" {
		return "", nil, fmt.Errorf("submission is missing entity_type")
	}

	et := rules.EntityType(file.EntityType)
	sections, err := rs.Sections(et)
	if err != nil {
		return "", nil, err
	}

	answers := forms.NewAnswerSet()
	known := make(map[string]bool, len(sections))
	for _, section := range sections {
		known[section.ID] = true
		raw, ok := file.Sections[section.ID]
		if !ok {
			continue
		}
		if section.Repeating() {
			if err := loadRepeatingSection(rs, et, section, raw, answers); err != nil {
				return "", nil, err
			}
			continue
		}
		if err := loadSingletonSection(rs, et, section, raw, answers); err != nil {
			return "", nil, err
		}
	}

	for name := range file.Sections {
		if !known[name] {
			return "", nil, fmt.Errorf("unknown section %q for entity type %s", name, file.EntityType)
		}
	}
	return et, answers, nil
}

func loadSingletonSection(rs *rules.Ruleset, et rules.EntityType, section forms.Section, raw any, answers *forms.AnswerSet) error {
	fields, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("section %q must be a field map", section.ID)
	}
	byField := ruleIndex(rs.SectionRules(et, section.ID))
	for name, value := range fields {
		rule, ok := byField[name]
		if !ok {
			return fmt.Errorf("unknown field %q in section %q", name, section.ID)
		}
		coerced, err := coerceValue(rule, value)
		if err != nil {
			return fmt.Errorf("section %q field %q: %w", section.ID, name, err)
		}
		answers.Put(forms.NewKey(section.ID, name), coerced)
	}
	return nil
}

func loadRepeatingSection(rs *rules.Ruleset, et rules.EntityType, section forms.Section, raw any, answers *forms.AnswerSet) error {
	instances, ok := raw.([]any)
	if !ok {
		return fmt.Errorf("section %q must be a list of field maps", section.ID)
	}
	byField := ruleIndex(rs.PersonRules(et))
	for i, instance := range instances {
		fields, ok := instance.(map[string]any)
		if !ok {
			return fmt.Errorf("section %q entry %d must be a field map", section.ID, i+1)
		}
		for name, value := range fields {
			rule, ok := byField[name]
			if !ok {
				return fmt.Errorf("unknown field %q in section %q", name, section.ID)
			}
			coerced, err := coerceValue(rule, value)
			if err != nil {
				return fmt.Errorf("section %q entry %d field %q: %w", section.ID, i+1, name, err)
			}
			answers.Put(forms.NewInstanceKey(section.ID, i, name), coerced)
		}
	}
	return nil
}

func ruleIndex(fieldRules []rules.FieldRule) map[string]rules.FieldRule {
	out := make(map[string]rules.FieldRule, len(fieldRules))
	for _, r := range fieldRules {
		out[r.Field] = r
	}
	return out
}

// coerceValue maps a decoded YAML scalar onto the value kind the rule
// declares.
func coerceValue(rule rules.FieldRule, raw any) (forms.Value, error) {
	switch rule.Type {
	case rules.TypeNumber:
		switch n := raw.(type) {
		case int:
			return forms.Number(float64(n)), nil
		case float64:
			return forms.Number(n), nil
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
			if err != nil {
				return forms.Value{}, fmt.Errorf("%q is not a number", n)
			}
			return forms.Number(f), nil
		default:
			return forms.Value{}, fmt.Errorf("%v is not a number", raw)
		}
	case rules.TypeDate:
		s, ok := raw.(string)
		if !ok {
			return forms.Value{}, fmt.Errorf("%v is not a date", raw)
		}
		for _, layout := range []string{"2006/01/02", "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				return forms.Date(t), nil
			}
		}
		return forms.Value{}, fmt.Errorf("%q is not a YYYY/MM/DD date", s)
	case rules.TypeBool:
		switch b := raw.(type) {
		case bool:
			return forms.Bool(b), nil
		case string:
			switch strings.ToLower(strings.TrimSpace(b)) {
			case "yes", "true", "y":
				return forms.Bool(true), nil
			case "no", "false", "n":
				return forms.Bool(false), nil
			}
		}
		return forms.Value{}, fmt.Errorf("%v is not a yes/no value", raw)
	case rules.TypeCode:
		return forms.Code(fmt.Sprintf("%v", raw)), nil
	case rules.TypeFile:
		s, ok := raw.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return forms.Value{}, fmt.Errorf("%v is not a filename", raw)
		}
		return forms.File(&forms.FileHandle{Filename: s}), nil
	default:
		return forms.String(fmt.Sprintf("%v", raw)), nil
	}
}
