package rules

import "entity-onboard/internal/forms"

// ConditionKind enumerates the evaluable requiredness conditions.
type ConditionKind int

const (
	CondAlways ConditionKind = iota
	CondNever
	CondIfFieldEquals
	CondIfEntityTypeIn
)

// Condition decides whether a field is required for a given submission.
// Conditions only reference values already present in the answer set; there
// are no forward references.
type Condition struct {
	Kind        ConditionKind
	Field       string
	Equals      string
	EntityTypes []EntityType
}

// RequiredAlways marks a field unconditionally required.
func RequiredAlways() Condition { return Condition{Kind: CondAlways} }

// RequiredNever marks a field optional.
func RequiredNever() Condition { return Condition{Kind: CondNever} }

// RequiredIf marks a field required when a sibling field equals the given
// value. The sibling is looked up in the same section and instance.
func RequiredIf(field, equals string) Condition {
	return Condition{Kind: CondIfFieldEquals, Field: field, Equals: equals}
}

// RequiredForEntities marks a field required only for the listed entity types.
func RequiredForEntities(types ...EntityType) Condition {
	return Condition{Kind: CondIfEntityTypeIn, EntityTypes: types}
}

// Holds evaluates the condition. lookup resolves sibling fields within the
// same section and instance.
func (c Condition) Holds(et EntityType, lookup func(field string) (forms.Value, bool)) bool {
	switch c.Kind {
	case CondAlways:
		return true
	case CondNever:
		return false
	case CondIfFieldEquals:
		v, ok := lookup(c.Field)
		return ok && v.Text() == c.Equals
	case CondIfEntityTypeIn:
		for _, t := range c.EntityTypes {
			if t == et {
				return true
			}
		}
		return false
	default:
		return false
	}
}
