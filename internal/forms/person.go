package forms

import "strings"

// IDType is the identification route a participant captured. Exactly one is
// active per person record.
type IDType string

const (
	IDTypeSAID            IDType = "SA_ID"
	IDTypeForeignID       IDType = "FOREIGN_ID"
	IDTypeForeignPassport IDType = "FOREIGN_PASSPORT"
)

// Person field names shared by the rule tables, validation, and serialization.
const (
	FieldTitle            = "title"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldIDType           = "id_type"
	FieldSAIDNumber       = "sa_id_number"
	FieldForeignIDNumber  = "foreign_id_number"
	FieldForeignIDCountry = "foreign_id_country"
	FieldPassportNumber   = "passport_number"
	FieldPassportCountry  = "passport_country"
	FieldPassportExpiry   = "passport_expiry"
	FieldEmail            = "email"
	FieldDialingCode      = "dialing_code"
	FieldPhoneNumber      = "phone_number"
	FieldStreet           = "street"
	FieldCity             = "city"
	FieldPostalCountry    = "country"
	FieldPostalCode       = "postal_code"
	FieldSAIDDocument     = "sa_id_document"
	FieldForeignIDDoc     = "foreign_id_document"
	FieldPassportDocument = "passport_document"
	FieldProofOfAddress   = "proof_of_address"
)

// Person is a read-only view over one instance of a person-collection section.
type Person struct {
	answers *AnswerSet
	Section string
	Role    string
	Index   int
}

// PersonAt builds a view over instance index of the given section.
func PersonAt(answers *AnswerSet, section Section, index int) Person {
	return Person{answers: answers, Section: section.ID, Role: section.Role, Index: index}
}

// Field returns the named field of this person instance.
func (p Person) Field(name string) (Value, bool) {
	return p.answers.InstanceField(p.Section, p.Index, name)
}

// FieldText returns the export text of the named field, or "" when absent.
func (p Person) FieldText(name string) string {
	v, ok := p.Field(name)
	if !ok {
		return ""
	}
	return v.Text()
}

// IDType returns the active identification route, or "" when not captured.
func (p Person) IDType() IDType {
	v, ok := p.Field(FieldIDType)
	if !ok || v.IsBlank() {
		return ""
	}
	return IDType(strings.TrimSpace(v.Code))
}

// FullName joins first and last name, or "" when neither is present.
func (p Person) FullName() string {
	first := p.FieldText(FieldFirstName)
	last := p.FieldText(FieldLastName)
	return strings.TrimSpace(first + " " + last)
}
