package serialize

import (
	"fmt"
	"strings"

	"entity-onboard/internal/forms"
	"entity-onboard/internal/refdata"
	"entity-onboard/internal/rules"
)

// Engine serializes validated submissions. Like the validation engine it
// holds only immutable tables.
type Engine struct {
	rules *rules.Ruleset
	lists *refdata.Registry
}

// New creates a serialization engine over the given rule tables and registry.
func New(rs *rules.Ruleset, lists *refdata.Registry) *Engine {
	return &Engine{rules: rs, lists: lists}
}

// Serialize walks the answer set in section declaration order and produces
// the normalized output record plus the attachment manifest. The caller must
// have obtained an empty validation result first; this does not re-validate.
func (e *Engine) Serialize(et rules.EntityType, answers *forms.AnswerSet) (*OutputRecord, Manifest, error) {
	if !rules.KnownEntityType(et) {
		return nil, nil, &rules.UnknownEntityTypeError{EntityType: string(et)}
	}
	sections, err := e.rules.Sections(et)
	if err != nil {
		return nil, nil, err
	}

	entityName := ""
	if v, ok := answers.Field(rules.SectionEntityDetails, "entity_name"); ok {
		entityName = v.Text()
	}
	entityContext := strings.TrimSpace(entityName + " " + et.Label())

	out := &OutputRecord{EntityType: string(et), EntityLabel: et.Label()}
	manifest := Manifest{}
	names := newNamer()

	for _, section := range sections {
		if section.Repeating() {
			serialized, err := e.serializePersonSection(et, answers, section, entityContext, names, &manifest)
			if err != nil {
				return nil, nil, err
			}
			out.Sections = append(out.Sections, serialized)
			continue
		}
		serialized, err := e.serializeSingletonSection(et, answers, section, entityContext, names, &manifest)
		if err != nil {
			return nil, nil, err
		}
		out.Sections = append(out.Sections, serialized)
	}
	return out, manifest, nil
}

func (e *Engine) serializeSingletonSection(et rules.EntityType, answers *forms.AnswerSet, section forms.Section, entityContext string, names *namer, manifest *Manifest) (OutputSection, error) {
	record, err := e.buildRecord(et, e.rules.SectionRules(et, section.ID),
		func(field string) (forms.Value, bool) { return answers.Field(section.ID, field) },
		entityContext, section.Title, "", names, manifest)
	if err != nil {
		return OutputSection{}, err
	}
	return OutputSection{Title: section.Title, Count: 1, Records: []Record{record}}, nil
}

func (e *Engine) serializePersonSection(et rules.EntityType, answers *forms.AnswerSet, section forms.Section, entityContext string, names *namer, manifest *Manifest) (OutputSection, error) {
	count := answers.InstanceCount(section.ID)
	out := OutputSection{Title: section.Title, Repeating: true, Count: count}
	personRules := e.rules.PersonRules(et)

	for i := 0; i < count; i++ {
		person := forms.PersonAt(answers, section, i)
		ident := personIdentifier(person)
		record, err := e.buildRecord(et, personRules,
			person.Field, entityContext, section.Title, ident, names, manifest)
		if err != nil {
			return OutputSection{}, err
		}
		out.Records = append(out.Records, record)
	}
	return out, nil
}

// personIdentifier derives the naming component for one participant: name,
// role, and 1-based index, falling back to role and index when no name was
// captured.
func personIdentifier(p forms.Person) string {
	if name := p.FullName(); name != "" {
		return fmt.Sprintf("%s %s %d", name, p.Role, p.Index+1)
	}
	return fmt.Sprintf("%s_%d", p.Role, p.Index+1)
}

// buildRecord copies present values into an ordered record, resolving coded
// values to their display labels and collecting file fields into the
// manifest.
func (e *Engine) buildRecord(et rules.EntityType, fieldRules []rules.FieldRule, lookup func(string) (forms.Value, bool), entityContext, sectionTitle, personIdent string, names *namer, manifest *Manifest) (Record, error) {
	record := Record{}
	for _, rule := range fieldRules {
		value, ok := lookup(rule.Field)
		if !ok || value.IsBlank() {
			continue
		}

		if rule.Type == rules.TypeFile {
			name := names.assign(
				[]string{entityContext, sectionTitle, personIdent, rule.Document},
				value.File.Filename)
			*manifest = append(*manifest, Attachment{Filename: name, File: value.File})
			record = append(record, FieldValue{Label: rule.Label, Value: name})
			continue
		}

		rendered, err := e.renderValue(rule, value)
		if err != nil {
			return nil, err
		}
		record = append(record, FieldValue{Label: rule.Label, Value: rendered})
	}
	return record, nil
}

func (e *Engine) renderValue(rule rules.FieldRule, value forms.Value) (any, error) {
	switch value.Kind {
	case forms.KindNumber:
		return value.Num, nil
	case forms.KindBool:
		return value.Bool, nil
	case forms.KindCode:
		if rule.List == "" {
			return value.Code, nil
		}
		label, err := e.lists.Resolve(rule.List, value.Code)
		if err != nil {
			return nil, fmt.Errorf("serializing %s: %w", rule.Field, err)
		}
		return label, nil
	default:
		// Strings and dates use the export text form (dates as YYYY/MM/DD).
		return value.Text(), nil
	}
}
