// Package validation evaluates a submitted answer set against the declarative
// rule tables and accumulates every user-facing problem in one pass. User
// input problems are returned as data; only configuration faults (unknown
// entity type, unknown controlled list) surface as errors.
package validation

import (
	"fmt"
	"time"
	"unicode/utf8"

	"entity-onboard/internal/forms"
	"entity-onboard/internal/refdata"
	"entity-onboard/internal/rules"
)

// Engine validates submissions. It holds only immutable rule tables, so one
// engine serves any number of concurrent submissions.
type Engine struct {
	rules *rules.Ruleset
	lists *refdata.Registry
	now   func() time.Time
}

// New creates a validation engine over the given rule tables and registry.
func New(rs *rules.Ruleset, lists *refdata.Registry) *Engine {
	return NewWithClock(rs, lists, time.Now)
}

// NewWithClock creates an engine with an injected clock for the future-date
// checks.
func NewWithClock(rs *rules.Ruleset, lists *refdata.Registry, now func() time.Time) *Engine {
	return &Engine{rules: rs, lists: lists, now: now}
}

// Validate runs every applicable check and returns the accumulated problem
// messages. An empty slice means the submission is accepted for
// serialization. It never stops at the first problem.
func (e *Engine) Validate(et rules.EntityType, answers *forms.AnswerSet) ([]string, error) {
	if !rules.KnownEntityType(et) {
		return nil, &rules.UnknownEntityTypeError{EntityType: string(et)}
	}

	sections, err := e.rules.Sections(et)
	if err != nil {
		return nil, err
	}
	roleReqs, err := e.rules.RequiredRoles(et)
	if err != nil {
		return nil, err
	}
	reqByRole := make(map[string]rules.RoleRequirement, len(roleReqs))
	for _, req := range roleReqs {
		reqByRole[req.Role] = req
	}

	problems := []string{}
	for _, section := range sections {
		if section.Repeating() {
			if err := e.validatePersonSection(et, answers, section, reqByRole[section.Role], &problems); err != nil {
				return nil, err
			}
			continue
		}
		if err := e.validateSingletonSection(et, answers, section, &problems); err != nil {
			return nil, err
		}
	}
	return problems, nil
}

func (e *Engine) validateSingletonSection(et rules.EntityType, answers *forms.AnswerSet, section forms.Section, problems *[]string) error {
	lookup := func(field string) (forms.Value, bool) {
		return answers.Field(section.ID, field)
	}
	for _, rule := range e.rules.SectionRules(et, section.ID) {
		if err := e.checkField(et, section.Title, rule, lookup, problems); err != nil {
			return err
		}
	}
	if section.ID == rules.SectionEntityDetails {
		e.checkRegistrationCountry(answers, section.Title, problems)
	}
	return nil
}

// checkRegistrationCountry applies the conditional that plain field rules
// cannot express: the country of registration is required exactly when a
// registration number was supplied.
func (e *Engine) checkRegistrationCountry(answers *forms.AnswerSet, sectionTitle string, problems *[]string) {
	if !answers.HasValue(forms.NewKey(rules.SectionEntityDetails, "registration_number")) {
		return
	}
	if !answers.HasValue(forms.NewKey(rules.SectionEntityDetails, "registration_country")) {
		*problems = append(*problems,
			fmt.Sprintf("%s: Country of Registration is required", sectionTitle))
	}
}

func (e *Engine) validatePersonSection(et rules.EntityType, answers *forms.AnswerSet, section forms.Section, req rules.RoleRequirement, problems *[]string) error {
	count := answers.InstanceCount(section.ID)
	if count < section.MinCount {
		*problems = append(*problems,
			fmt.Sprintf("%s: at least %d entries required", section.Role, section.MinCount))
	}
	if section.MaxCount > 0 && count > section.MaxCount {
		*problems = append(*problems,
			fmt.Sprintf("%s: at most %d entries allowed", section.Role, section.MaxCount))
	}

	personRules := e.rules.PersonRules(et)
	for i := 0; i < count; i++ {
		instance := i
		label := fmt.Sprintf("%s %d", section.Role, i+1)
		lookup := func(field string) (forms.Value, bool) {
			return answers.InstanceField(section.ID, instance, field)
		}
		for _, rule := range personRules {
			if err := e.checkField(et, label, rule, lookup, problems); err != nil {
				return err
			}
		}
		for _, doc := range req.Documents {
			field, docLabel := documentField(doc)
			if field == "" {
				continue
			}
			if v, ok := lookup(field); !ok || v.IsBlank() {
				*problems = append(*problems, fmt.Sprintf("%s: %s is required", label, docLabel))
			}
		}
	}
	return nil
}

// documentField maps a document type to its upload field and display label.
func documentField(doc string) (string, string) {
	switch doc {
	case rules.DocSAID:
		return forms.FieldSAIDDocument, "ID Document"
	case rules.DocForeignID:
		return forms.FieldForeignIDDoc, "Foreign ID Document"
	case rules.DocPassport:
		return forms.FieldPassportDocument, "Passport Document"
	case rules.DocProofOfAddress:
		return forms.FieldProofOfAddress, "Proof of Address"
	default:
		return "", ""
	}
}

// checkField applies requiredness, type, length, pattern, and the special
// format validators to one field. Configuration faults abort; user problems
// accumulate.
func (e *Engine) checkField(et rules.EntityType, sectionLabel string, rule rules.FieldRule, lookup func(string) (forms.Value, bool), problems *[]string) error {
	value, ok := lookup(rule.Field)
	present := ok && !value.IsBlank()

	if !present {
		if rule.Required.Holds(et, lookup) {
			*problems = append(*problems, fmt.Sprintf("%s: %s is required", sectionLabel, rule.Label))
		}
		return nil
	}

	if !rule.TypeMatches(value) {
		*problems = append(*problems,
			fmt.Sprintf("%s: %s must be a %s value", sectionLabel, rule.Label, typeName(rule.Type)))
		return nil
	}

	if rule.Type == rules.TypeCode && rule.List != "" {
		known, err := e.lists.Contains(rule.List, value.Code)
		if err != nil {
			return fmt.Errorf("validating %s: %w", rule.Field, err)
		}
		if !known {
			*problems = append(*problems,
				fmt.Sprintf("%s: %s is not a valid selection", sectionLabel, rule.Label))
			return nil
		}
	}

	text := value.Text()
	if rule.MinLen > 0 && utf8.RuneCountInString(text) < rule.MinLen {
		*problems = append(*problems,
			fmt.Sprintf("%s: %s must be at least %d characters", sectionLabel, rule.Label, rule.MinLen))
	}
	if rule.MaxLen > 0 && utf8.RuneCountInString(text) > rule.MaxLen {
		*problems = append(*problems,
			fmt.Sprintf("%s: %s must be at most %d characters", sectionLabel, rule.Label, rule.MaxLen))
	}
	if rule.Pattern != nil && !rule.Pattern.MatchString(text) {
		*problems = append(*problems, fmt.Sprintf("%s: %s is invalid", sectionLabel, rule.Label))
	}

	e.checkFormat(sectionLabel, rule, value, lookup, problems)
	return nil
}

func (e *Engine) checkFormat(sectionLabel string, rule rules.FieldRule, value forms.Value, lookup func(string) (forms.Value, bool), problems *[]string) {
	switch rule.Format {
	case rules.FormatEmail:
		if !validEmail(value.Text()) {
			*problems = append(*problems,
				fmt.Sprintf("%s: %s is not a valid email address", sectionLabel, rule.Label))
		}
	case rules.FormatPhone:
		dial := ""
		if v, ok := lookup(forms.FieldDialingCode); ok {
			dial = v.Text()
		}
		if msg := phoneProblem(dial, value.Text()); msg != "" {
			*problems = append(*problems,
				fmt.Sprintf("%s: %s %s", sectionLabel, rule.Label, msg))
		}
	case rules.FormatPostalCode:
		country := ""
		if v, ok := lookup(forms.FieldPostalCountry); ok {
			country = v.Text()
		}
		if msg := postalCodeProblem(country, value.Text()); msg != "" {
			*problems = append(*problems,
				fmt.Sprintf("%s: %s %s", sectionLabel, rule.Label, msg))
		}
	case rules.FormatSAIDNumber:
		// One coarse message for both the length and checksum failures.
		if !validSAIDNumber(value.Text()) {
			*problems = append(*problems, fmt.Sprintf("%s: Invalid ID number", sectionLabel))
		}
	case rules.FormatFutureDate:
		if !e.afterToday(value.Date) {
			*problems = append(*problems,
				fmt.Sprintf("%s: %s must be a future date", sectionLabel, rule.Label))
		}
	}
}

// afterToday compares at day granularity: a date of today or earlier fails.
func (e *Engine) afterToday(t time.Time) bool {
	ny, nm, nd := e.now().Date()
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	ty, tm, td := t.Date()
	day := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return day.After(today)
}

func typeName(t rules.DataType) string {
	switch t {
	case rules.TypeString:
		return "text"
	case rules.TypeNumber:
		return "numeric"
	case rules.TypeDate:
		return "date"
	case rules.TypeBool:
		return "yes/no"
	case rules.TypeCode:
		return "coded"
	case rules.TypeFile:
		return "file"
	default:
		return "text"
	}
}
