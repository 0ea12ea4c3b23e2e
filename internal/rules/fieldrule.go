package rules

import (
	"regexp"

	"entity-onboard/internal/forms"
)

// DataType is the declared type of a field's value.
type DataType int

const (
	TypeString DataType = iota
	TypeNumber
	TypeDate
	TypeBool
	TypeCode
	TypeFile
)

// Format selects a special validator applied on top of the data type.
type Format int

const (
	FormatNone Format = iota
	// FormatEmail requires local-part @ domain with a dot in the domain.
	FormatEmail
	// FormatPhone applies the country-conditional digit rule keyed off the
	// sibling dialing_code field.
	FormatPhone
	// FormatPostalCode applies the country-conditional postal rule keyed off
	// the sibling country field.
	FormatPostalCode
	// FormatSAIDNumber applies the 13-digit length and checksum pass.
	FormatSAIDNumber
	// FormatFutureDate requires a date strictly after the current date.
	FormatFutureDate
)

// ScopePerson marks rules that apply to every instance of every
// person-collection section rather than to one named section.
const ScopePerson = "person"

// Document type vocabulary for upload slots. These feed attachment naming.
const (
	DocSAID           = "SA_ID_Document"
	DocForeignID      = "Foreign_ID_Document"
	DocPassport       = "Passport_Document"
	DocProofOfAddress = "Proof_of_Address"
)

// FieldRule is one declarative field descriptor. Rules with an empty
// EntityTypes slice apply to every entity type; otherwise they are scoped.
type FieldRule struct {
	Section     string
	Field       string
	Label       string
	Type        DataType
	Format      Format
	List        string
	Required    Condition
	Pattern     *regexp.Regexp
	MinLen      int
	MaxLen      int
	EntityTypes []EntityType
	Document    string
}

// AppliesTo reports whether the rule is in scope for the entity type.
func (r FieldRule) AppliesTo(et EntityType) bool {
	if len(r.EntityTypes) == 0 {
		return true
	}
	for _, t := range r.EntityTypes {
		if t == et {
			return true
		}
	}
	return false
}

// TypeMatches reports whether a captured value carries the declared type.
func (r FieldRule) TypeMatches(v forms.Value) bool {
	switch r.Type {
	case TypeString:
		return v.Kind == forms.KindString
	case TypeNumber:
		return v.Kind == forms.KindNumber
	case TypeDate:
		return v.Kind == forms.KindDate
	case TypeBool:
		return v.Kind == forms.KindBool
	case TypeCode:
		return v.Kind == forms.KindCode
	case TypeFile:
		return v.Kind == forms.KindFile
	default:
		return false
	}
}
