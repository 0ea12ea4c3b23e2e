package rules

import (
	"regexp"
	"strings"

	"entity-onboard/internal/forms"
	"entity-onboard/internal/refdata"
)

// Section identifiers for the singleton blocks.
const (
	SectionEntityDetails     = "entity_details"
	SectionRegisteredAddress = "registered_address"
	SectionContactDetails    = "contact_details"
)

// Ruleset is the immutable bundle of rule tables. Build one with Default()
// at process start and pass it into the engines.
type Ruleset struct {
	fields []FieldRule
	roles  map[EntityType][]RoleRequirement
}

// corporateTypes carry a statutory registration number.
var corporateTypes = []EntityType{
	EntityPrivateCompany,
	EntityPublicCompany,
	EntityListedCompany,
	EntityForeignCompany,
	EntityCloseCorporation,
	EntityCoOperative,
	EntityNonProfit,
	EntityBank,
	EntityLongTermInsurer,
	EntityPensionFund,
	EntityMedicalScheme,
	EntityCollectiveScheme,
}

var (
	registrationNumberPattern = regexp.MustCompile(`^[A-Za-z0-9/.-]+$`)
	passportNumberPattern     = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	idTypePattern             = regexp.MustCompile(`^(SA_ID|FOREIGN_ID|FOREIGN_PASSPORT)$`)
)

// Default builds the standard rule tables.
func Default() *Ruleset {
	return &Ruleset{
		fields: defaultFieldRules(),
		roles:  defaultRoleRows(),
	}
}

func defaultFieldRules() []FieldRule {
	return []FieldRule{
		// Entity details.
		{Section: SectionEntityDetails, Field: "entity_name", Label: "Entity Name",
			Type: TypeString, Required: RequiredAlways(), MaxLen: 200},
		{Section: SectionEntityDetails, Field: "trading_name", Label: "Trading Name",
			Type: TypeString, Required: RequiredNever(), MaxLen: 200},
		{Section: SectionEntityDetails, Field: "registration_number", Label: "Registration Number",
			Type: TypeString, Required: RequiredForEntities(corporateTypes...),
			Pattern: registrationNumberPattern, MaxLen: 50},
		// Required only when a registration number was supplied; the
		// validation engine applies that conditional.
		{Section: SectionEntityDetails, Field: "registration_country", Label: "Country of Registration",
			Type: TypeCode, List: refdata.ListCountries, Required: RequiredNever()},
		{Section: SectionEntityDetails, Field: "masters_office", Label: "Masters Office",
			Type: TypeString, Required: RequiredForEntities(EntityTrust), MaxLen: 100},
		{Section: SectionEntityDetails, Field: "industry", Label: "Industry",
			Type: TypeCode, List: refdata.ListIndustries, Required: RequiredAlways()},
		{Section: SectionEntityDetails, Field: "source_of_funds", Label: "Source of Funds",
			Type: TypeCode, List: refdata.ListSourceOfFunds, Required: RequiredAlways()},

		// Registered address.
		{Section: SectionRegisteredAddress, Field: "street", Label: "Street Address",
			Type: TypeString, Required: RequiredAlways(), MaxLen: 200},
		{Section: SectionRegisteredAddress, Field: "suburb", Label: "Suburb",
			Type: TypeString, Required: RequiredNever(), MaxLen: 100},
		{Section: SectionRegisteredAddress, Field: "city", Label: "City",
			Type: TypeString, Required: RequiredAlways(), MaxLen: 100},
		{Section: SectionRegisteredAddress, Field: "country", Label: "Country",
			Type: TypeCode, List: refdata.ListCountries, Required: RequiredAlways()},
		{Section: SectionRegisteredAddress, Field: "postal_code", Label: "Postal Code",
			Type: TypeString, Format: FormatPostalCode, Required: RequiredAlways()},

		// Contact details.
		{Section: SectionContactDetails, Field: "email", Label: "Email Address",
			Type: TypeString, Format: FormatEmail, Required: RequiredAlways(), MaxLen: 150},
		{Section: SectionContactDetails, Field: "dialing_code", Label: "Dialing Code",
			Type: TypeCode, List: refdata.ListDialingCodes, Required: RequiredAlways()},
		{Section: SectionContactDetails, Field: "phone_number", Label: "Phone Number",
			Type: TypeString, Format: FormatPhone, Required: RequiredAlways()},

		// Person records, applied per instance of every person section.
		{Section: ScopePerson, Field: forms.FieldTitle, Label: "Title",
			Type: TypeCode, List: refdata.ListTitles, Required: RequiredNever()},
		{Section: ScopePerson, Field: forms.FieldFirstName, Label: "First Name",
			Type: TypeString, Required: RequiredAlways(), MaxLen: 100},
		{Section: ScopePerson, Field: forms.FieldLastName, Label: "Last Name",
			Type: TypeString, Required: RequiredAlways(), MaxLen: 100},
		{Section: ScopePerson, Field: forms.FieldIDType, Label: "Identification Type",
			Type: TypeCode, Required: RequiredAlways(), Pattern: idTypePattern},
		{Section: ScopePerson, Field: forms.FieldSAIDNumber, Label: "ID Number",
			Type: TypeString, Format: FormatSAIDNumber,
			Required: RequiredIf(forms.FieldIDType, string(forms.IDTypeSAID))},
		{Section: ScopePerson, Field: forms.FieldSAIDDocument, Label: "ID Document",
			Type: TypeFile, Document: DocSAID,
			Required: RequiredIf(forms.FieldIDType, string(forms.IDTypeSAID))},
		{Section: ScopePerson, Field: forms.FieldForeignIDNumber, Label: "Foreign ID Number",
			Type: TypeString, MaxLen: 30,
			Required: RequiredIf(forms.FieldIDType, string(forms.IDTypeForeignID))},
		{Section: ScopePerson, Field: forms.FieldForeignIDCountry, Label: "Foreign ID Country",
			Type: TypeCode, List: refdata.ListCountries,
			Required: RequiredIf(forms.FieldIDType, string(forms.IDTypeForeignID))},
		{Section: ScopePerson, Field: forms.FieldForeignIDDoc, Label: "Foreign ID Document",
			Type: TypeFile, Document: DocForeignID,
			Required: RequiredIf(forms.FieldIDType, string(forms.IDTypeForeignID))},
		{Section: ScopePerson, Field: forms.FieldPassportNumber, Label: "Passport Number",
			Type: TypeString, Pattern: passportNumberPattern, MaxLen: 20,
			Required: RequiredIf(forms.FieldIDType, string(forms.IDTypeForeignPassport))},
		{Section: ScopePerson, Field: forms.FieldPassportCountry, Label: "Passport Issuing Country",
			Type: TypeCode, List: refdata.ListCountries,
			Required: RequiredIf(forms.FieldIDType, string(forms.IDTypeForeignPassport))},
		{Section: ScopePerson, Field: forms.FieldPassportExpiry, Label: "Passport Expiry Date",
			Type: TypeDate, Format: FormatFutureDate,
			Required: RequiredIf(forms.FieldIDType, string(forms.IDTypeForeignPassport))},
		{Section: ScopePerson, Field: forms.FieldPassportDocument, Label: "Passport Document",
			Type: TypeFile, Document: DocPassport,
			Required: RequiredIf(forms.FieldIDType, string(forms.IDTypeForeignPassport))},
		{Section: ScopePerson, Field: forms.FieldEmail, Label: "Email Address",
			Type: TypeString, Format: FormatEmail, Required: RequiredAlways(), MaxLen: 150},
		{Section: ScopePerson, Field: forms.FieldDialingCode, Label: "Dialing Code",
			Type: TypeCode, List: refdata.ListDialingCodes, Required: RequiredAlways()},
		{Section: ScopePerson, Field: forms.FieldPhoneNumber, Label: "Phone Number",
			Type: TypeString, Format: FormatPhone, Required: RequiredAlways()},
		{Section: ScopePerson, Field: forms.FieldStreet, Label: "Street Address",
			Type: TypeString, Required: RequiredNever(), MaxLen: 200},
		{Section: ScopePerson, Field: forms.FieldCity, Label: "City",
			Type: TypeString, Required: RequiredNever(), MaxLen: 100},
		{Section: ScopePerson, Field: forms.FieldPostalCountry, Label: "Country",
			Type: TypeCode, List: refdata.ListCountries, Required: RequiredNever()},
		{Section: ScopePerson, Field: forms.FieldPostalCode, Label: "Postal Code",
			Type: TypeString, Format: FormatPostalCode, Required: RequiredNever()},
		{Section: ScopePerson, Field: forms.FieldProofOfAddress, Label: "Proof of Address",
			Type: TypeFile, Document: DocProofOfAddress, Required: RequiredNever()},
	}
}

// RequiredRoles returns the role requirements for the entity type: the
// universal Authorised Representative row first, then entity rows in
// declaration order.
func (rs *Ruleset) RequiredRoles(et EntityType) ([]RoleRequirement, error) {
	if !KnownEntityType(et) {
		return nil, &UnknownEntityTypeError{EntityType: string(et)}
	}
	out := []RoleRequirement{representativeRequirement()}
	out = append(out, rs.roles[et]...)
	return out, nil
}

// SectionRules returns the field rules for one singleton section, scoped to
// the entity type, in declaration order.
func (rs *Ruleset) SectionRules(et EntityType, sectionID string) []FieldRule {
	var out []FieldRule
	for _, r := range rs.fields {
		if r.Section == sectionID && r.AppliesTo(et) {
			out = append(out, r)
		}
	}
	return out
}

// PersonRules returns the per-instance rules for person sections.
func (rs *Ruleset) PersonRules(et EntityType) []FieldRule {
	return rs.SectionRules(et, ScopePerson)
}

// Sections returns the declared sections for the entity type: entity details,
// address, contact, then one person section per required role.
func (rs *Ruleset) Sections(et EntityType) ([]forms.Section, error) {
	roles, err := rs.RequiredRoles(et)
	if err != nil {
		return nil, err
	}

	sections := []forms.Section{
		{ID: SectionEntityDetails, Title: "Entity Details", Kind: forms.SectionPlainFields},
		{ID: SectionRegisteredAddress, Title: "Registered Address", Kind: forms.SectionAddressBlock},
		{ID: SectionContactDetails, Title: "Contact Details", Kind: forms.SectionContactBlock},
	}
	for _, req := range roles {
		kind := forms.SectionPersonCollection
		if req.Role == RoleAuthorisedRepresentative {
			kind = forms.SectionRepresentative
		}
		sections = append(sections, forms.Section{
			ID:       RoleSectionID(req.Role),
			Title:    req.Role,
			Kind:     kind,
			Role:     req.Role,
			MinCount: req.MinCount,
			MaxCount: req.MaxCount,
		})
	}
	return sections, nil
}

// RoleSectionID derives the section identifier for a role label.
func RoleSectionID(role string) string {
	id := strings.ToLower(role)
	id = strings.ReplaceAll(id, " ", "_")
	id = strings.ReplaceAll(id, "-", "_")
	return id
}
