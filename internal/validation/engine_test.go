package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entity-onboard/internal/forms"
	"entity-onboard/internal/refdata"
	"entity-onboard/internal/rules"
)

// validSAID is a known-good 13-digit South African ID number.
const validSAID = "8001015009087"

func testEngine() *Engine {
	return NewWithClock(rules.Default(), refdata.DefaultRegistry(),
		func() time.Time { return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC) })
}

func putEntityDetails(a *forms.AnswerSet, et rules.EntityType) {
	a.Put(forms.NewKey(rules.SectionEntityDetails, "entity_name"), forms.String("Willow Crest Holdings"))
	a.Put(forms.NewKey(rules.SectionEntityDetails, "industry"), forms.Code("FIN"))
	a.Put(forms.NewKey(rules.SectionEntityDetails, "source_of_funds"), forms.Code("BUSINESS"))
	switch et {
	case rules.EntityTrust:
		a.Put(forms.NewKey(rules.SectionEntityDetails, "masters_office"), forms.String("Pretoria"))
	default:
		a.Put(forms.NewKey(rules.SectionEntityDetails, "registration_number"), forms.String("2015/123456/07"))
		a.Put(forms.NewKey(rules.SectionEntityDetails, "registration_country"), forms.Code("ZA"))
	}
}

func putAddressAndContact(a *forms.AnswerSet) {
	a.Put(forms.NewKey(rules.SectionRegisteredAddress, "street"), forms.String("12 Protea Avenue"))
	a.Put(forms.NewKey(rules.SectionRegisteredAddress, "city"), forms.String("Johannesburg"))
	a.Put(forms.NewKey(rules.SectionRegisteredAddress, "country"), forms.Code("ZA"))
	a.Put(forms.NewKey(rules.SectionRegisteredAddress, "postal_code"), forms.String("2196"))
	a.Put(forms.NewKey(rules.SectionContactDetails, "email"), forms.String("admin@willowcrest.co.za"))
	a.Put(forms.NewKey(rules.SectionContactDetails, "dialing_code"), forms.Code("+27"))
	a.Put(forms.NewKey(rules.SectionContactDetails, "phone_number"), forms.String("821234567"))
}

func putPerson(a *forms.AnswerSet, section string, idx int, first, last string) {
	put := func(field string, v forms.Value) {
		a.Put(forms.NewInstanceKey(section, idx, field), v)
	}
	put(forms.FieldTitle, forms.Code("MR"))
	put(forms.FieldFirstName, forms.String(first))
	put(forms.FieldLastName, forms.String(last))
	put(forms.FieldIDType, forms.Code(string(forms.IDTypeSAID)))
	put(forms.FieldSAIDNumber, forms.String(validSAID))
	put(forms.FieldSAIDDocument, forms.File(&forms.FileHandle{Filename: "id.pdf"}))
	put(forms.FieldEmail, forms.String(strings.ToLower(first)+"@willowcrest.co.za"))
	put(forms.FieldDialingCode, forms.Code("+27"))
	put(forms.FieldPhoneNumber, forms.String("831234567"))
}

func putRepresentative(a *forms.AnswerSet) {
	section := rules.RoleSectionID(rules.RoleAuthorisedRepresentative)
	putPerson(a, section, 0, "Thandi", "Nkosi")
	a.Put(forms.NewInstanceKey(section, 0, forms.FieldProofOfAddress),
		forms.File(&forms.FileHandle{Filename: "utility bill.pdf"}))
}

// validSubmission builds a submission that satisfies every rule for the
// entity type, covering role minimums.
func validSubmission(et rules.EntityType) *forms.AnswerSet {
	a := forms.NewAnswerSet()
	putEntityDetails(a, et)
	putAddressAndContact(a)
	putRepresentative(a)
	switch et {
	case rules.EntityTrust:
		putPerson(a, rules.RoleSectionID(rules.RoleTrustee), 0, "Sipho", "Dlamini")
	case rules.EntityPartnership:
		putPerson(a, rules.RoleSectionID(rules.RolePartner), 0, "Anele", "Mokoena")
		putPerson(a, rules.RoleSectionID(rules.RolePartner), 1, "Lerato", "Mahlangu")
	case rules.EntityPrivateCompany:
		putPerson(a, rules.RoleSectionID(rules.RoleDirector), 0, "James", "van Wyk")
	}
	return a
}

func TestValidSubmissionsPass(t *testing.T) {
	engine := testEngine()

	for _, et := range []rules.EntityType{rules.EntityTrust, rules.EntityPartnership, rules.EntityPrivateCompany} {
		t.Run(string(et), func(t *testing.T) {
			problems, err := engine.Validate(et, validSubmission(et))
			require.NoError(t, err)
			assert.Empty(t, problems)
		})
	}
}

func TestUnknownEntityType(t *testing.T) {
	engine := testEngine()

	_, err := engine.Validate(rules.EntityType("STOKVEL"), forms.NewAnswerSet())
	var unknown *rules.UnknownEntityTypeError
	require.ErrorAs(t, err, &unknown)
}

func TestValidationIsDeterministic(t *testing.T) {
	engine := testEngine()
	a := validSubmission(rules.EntityTrust)
	a.Put(forms.NewKey(rules.SectionEntityDetails, "masters_office"), forms.String(""))
	a.Put(forms.NewKey(rules.SectionContactDetails, "email"), forms.String("not-an-email"))

	first, err := engine.Validate(rules.EntityTrust, a)
	require.NoError(t, err)
	second, err := engine.Validate(rules.EntityTrust, a)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAccumulatesAllProblems(t *testing.T) {
	engine := testEngine()
	a := validSubmission(rules.EntityTrust)
	a.Put(forms.NewKey(rules.SectionEntityDetails, "masters_office"), forms.String(""))
	a.Put(forms.NewKey(rules.SectionContactDetails, "email"), forms.String("not-an-email"))
	a.Put(forms.NewKey(rules.SectionRegisteredAddress, "postal_code"), forms.String("ABCD"))

	problems, err := engine.Validate(rules.EntityTrust, a)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(problems), 3, "no short-circuit on the first failure")
}

func TestSAIDChecksumFixture(t *testing.T) {
	engine := testEngine()

	a := validSubmission(rules.EntityTrust)
	problems, err := engine.Validate(rules.EntityTrust, a)
	require.NoError(t, err)
	assert.Empty(t, problems, "the reference ID number must pass")

	// Altering a digit breaks the checksum; the message stays coarse.
	section := rules.RoleSectionID(rules.RoleTrustee)
	a.Put(forms.NewInstanceKey(section, 0, forms.FieldSAIDNumber), forms.String("8001015009088"))
	problems, err = engine.Validate(rules.EntityTrust, a)
	require.NoError(t, err)
	assert.Contains(t, problems, "Trustee 1: Invalid ID number")

	// Wrong length yields the same coarse message.
	a.Put(forms.NewInstanceKey(section, 0, forms.FieldSAIDNumber), forms.String("80010150090"))
	problems, err = engine.Validate(rules.EntityTrust, a)
	require.NoError(t, err)
	assert.Contains(t, problems, "Trustee 1: Invalid ID number")
}

func TestPassportExpiryBoundary(t *testing.T) {
	engine := testEngine()
	section := rules.RoleSectionID(rules.RoleTrustee)

	withExpiry := func(expiry time.Time) *forms.AnswerSet {
		a := validSubmission(rules.EntityTrust)
		put := func(field string, v forms.Value) {
			a.Put(forms.NewInstanceKey(section, 0, field), v)
		}
		put(forms.FieldIDType, forms.Code(string(forms.IDTypeForeignPassport)))
		put(forms.FieldSAIDNumber, forms.String(""))
		put(forms.FieldSAIDDocument, forms.Value{Kind: forms.KindFile})
		put(forms.FieldPassportNumber, forms.String("P1234567"))
		put(forms.FieldPassportCountry, forms.Code("GB"))
		put(forms.FieldPassportExpiry, forms.Date(expiry))
		put(forms.FieldPassportDocument, forms.File(&forms.FileHandle{Filename: "passport.pdf"}))
		return a
	}

	today := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	problems, err := engine.Validate(rules.EntityTrust, withExpiry(today))
	require.NoError(t, err)
	assert.Contains(t, problems, "Trustee 1: Passport Expiry Date must be a future date")

	problems, err = engine.Validate(rules.EntityTrust, withExpiry(today.AddDate(0, 0, -30)))
	require.NoError(t, err)
	assert.Contains(t, problems, "Trustee 1: Passport Expiry Date must be a future date")

	problems, err = engine.Validate(rules.EntityTrust, withExpiry(today.AddDate(0, 0, 1)))
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestMastersOfficeScopedToTrust(t *testing.T) {
	engine := testEngine()

	a := validSubmission(rules.EntityTrust)
	a.Put(forms.NewKey(rules.SectionEntityDetails, "masters_office"), forms.String(""))
	problems, err := engine.Validate(rules.EntityTrust, a)
	require.NoError(t, err)
	assert.Contains(t, problems, "Entity Details: Masters Office is required")

	b := validSubmission(rules.EntityPrivateCompany)
	problems, err = engine.Validate(rules.EntityPrivateCompany, b)
	require.NoError(t, err)
	for _, p := range problems {
		assert.NotContains(t, p, "Masters Office")
	}
}

func TestPartnershipPartnerCount(t *testing.T) {
	engine := testEngine()

	a := forms.NewAnswerSet()
	putEntityDetails(a, rules.EntityPartnership)
	putAddressAndContact(a)
	putRepresentative(a)
	putPerson(a, rules.RoleSectionID(rules.RolePartner), 0, "Anele", "Mokoena")

	problems, err := engine.Validate(rules.EntityPartnership, a)
	require.NoError(t, err)
	assert.Contains(t, problems, "Partner: at least 2 entries required")

	putPerson(a, rules.RoleSectionID(rules.RolePartner), 1, "Lerato", "Mahlangu")
	problems, err = engine.Validate(rules.EntityPartnership, a)
	require.NoError(t, err)
	for _, p := range problems {
		assert.NotContains(t, p, "entries required")
	}
}

func TestDomesticPhoneRule(t *testing.T) {
	engine := testEngine()

	a := validSubmission(rules.EntityTrust)
	a.Put(forms.NewKey(rules.SectionContactDetails, "phone_number"), forms.String("0821234567"))
	problems, err := engine.Validate(rules.EntityTrust, a)
	require.NoError(t, err)
	assert.Contains(t, problems, "Contact Details: Phone Number must be 9 digits with no leading 0")

	a.Put(forms.NewKey(rules.SectionContactDetails, "phone_number"), forms.String("821234567"))
	problems, err = engine.Validate(rules.EntityTrust, a)
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestForeignPhoneRange(t *testing.T) {
	engine := testEngine()

	a := validSubmission(rules.EntityTrust)
	a.Put(forms.NewKey(rules.SectionContactDetails, "dialing_code"), forms.Code("+44"))
	a.Put(forms.NewKey(rules.SectionContactDetails, "phone_number"), forms.String("12345"))
	problems, err := engine.Validate(rules.EntityTrust, a)
	require.NoError(t, err)
	assert.Contains(t, problems, "Contact Details: Phone Number must be between 6 and 15 digits")

	a.Put(forms.NewKey(rules.SectionContactDetails, "phone_number"), forms.String("2071234567"))
	problems, err = engine.Validate(rules.EntityTrust, a)
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestPostalCodeRules(t *testing.T) {
	engine := testEngine()

	a := validSubmission(rules.EntityTrust)
	a.Put(forms.NewKey(rules.SectionRegisteredAddress, "postal_code"), forms.String("21965"))
	problems, err := engine.Validate(rules.EntityTrust, a)
	require.NoError(t, err)
	assert.Contains(t, problems, "Registered Address: Postal Code must be 4 digits")

	a.Put(forms.NewKey(rules.SectionRegisteredAddress, "country"), forms.Code("GB"))
	a.Put(forms.NewKey(rules.SectionRegisteredAddress, "postal_code"), forms.String("SW1A 1AA"))
	problems, err = engine.Validate(rules.EntityTrust, a)
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestEmailFormat(t *testing.T) {
	engine := testEngine()

	a := validSubmission(rules.EntityTrust)
	for _, bad := range []string{"plainaddress", "missing@dot", "two@@signs.com", "trailing@dot."} {
		a.Put(forms.NewKey(rules.SectionContactDetails, "email"), forms.String(bad))
		problems, err := engine.Validate(rules.EntityTrust, a)
		require.NoError(t, err)
		assert.Contains(t, problems, "Contact Details: Email Address is not a valid email address", "input %q", bad)
	}
}

func TestRegistrationCountryConditional(t *testing.T) {
	engine := testEngine()

	// Trust with a voluntary registration number but no country.
	a := validSubmission(rules.EntityTrust)
	a.Put(forms.NewKey(rules.SectionEntityDetails, "registration_number"), forms.String("IT1234/2015"))
	problems, err := engine.Validate(rules.EntityTrust, a)
	require.NoError(t, err)
	assert.Contains(t, problems, "Entity Details: Country of Registration is required")

	a.Put(forms.NewKey(rules.SectionEntityDetails, "registration_country"), forms.Code("ZA"))
	problems, err = engine.Validate(rules.EntityTrust, a)
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestRepresentativeDocuments(t *testing.T) {
	engine := testEngine()

	a := validSubmission(rules.EntityTrust)
	section := rules.RoleSectionID(rules.RoleAuthorisedRepresentative)
	a.Put(forms.NewInstanceKey(section, 0, forms.FieldProofOfAddress), forms.Value{Kind: forms.KindFile})

	problems, err := engine.Validate(rules.EntityTrust, a)
	require.NoError(t, err)
	assert.Contains(t, problems, "Authorised Representative 1: Proof of Address is required")
}

func TestInvalidSelectionIsUserProblem(t *testing.T) {
	engine := testEngine()

	a := validSubmission(rules.EntityTrust)
	a.Put(forms.NewKey(rules.SectionEntityDetails, "industry"), forms.Code("XX"))
	problems, err := engine.Validate(rules.EntityTrust, a)
	require.NoError(t, err, "an unknown selection is a user problem, not a configuration fault")
	assert.Contains(t, problems, "Entity Details: Industry is not a valid selection")
}

func TestEntityDetailProblemsComeFirst(t *testing.T) {
	engine := testEngine()

	a := validSubmission(rules.EntityTrust)
	a.Put(forms.NewKey(rules.SectionEntityDetails, "entity_name"), forms.String(""))
	a.Put(forms.NewInstanceKey(rules.RoleSectionID(rules.RoleTrustee), 0, forms.FieldEmail), forms.String(""))

	problems, err := engine.Validate(rules.EntityTrust, a)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(problems), 2)
	assert.Equal(t, "Entity Details: Entity Name is required", problems[0])
}
