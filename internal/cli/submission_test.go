package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entity-onboard/internal/forms"
	"entity-onboard/internal/refdata"
	"entity-onboard/internal/rules"
	"entity-onboard/internal/validation"
)

const trustYAML = `
entity_type: TRUST
sections:
  entity_details:
    entity_name: Willow Crest Holdings
    masters_office: Pretoria
    industry: FIN
    source_of_funds: BUSINESS
  registered_address:
    street: 12 Protea Avenue
    city: Johannesburg
    country: ZA
    postal_code: "2196"
  contact_details:
    email: admin@willowcrest.co.za
    dialing_code: "+27"
    phone_number: "821234567"
  authorised_representative:
    - first_name: Thandi
      last_name: Nkosi
      id_type: SA_ID
      sa_id_number: "8001015009087"
      sa_id_document: scan of id.pdf
      email: thandi@willowcrest.co.za
      dialing_code: "+27"
      phone_number: "831234567"
      proof_of_address: utility bill.pdf
  trustee:
    - first_name: Sipho
      last_name: Dlamini
      id_type: FOREIGN_PASSPORT
      passport_number: P1234567
      passport_country: GB
      passport_expiry: 2031/03/15
      passport_document: passport.pdf
      email: sipho@willowcrest.co.za
      dialing_code: "+44"
      phone_number: "2071234567"
`

func TestParseSubmission(t *testing.T) {
	rs := rules.Default()

	et, answers, err := ParseSubmission(rs, []byte(trustYAML))
	require.NoError(t, err)
	assert.Equal(t, rules.EntityTrust, et)

	name, ok := answers.Field(rules.SectionEntityDetails, "entity_name")
	require.True(t, ok)
	assert.Equal(t, "Willow Crest Holdings", name.Text())

	country, ok := answers.Field(rules.SectionRegisteredAddress, "country")
	require.True(t, ok)
	assert.Equal(t, forms.KindCode, country.Kind)
	assert.Equal(t, "ZA", country.Code)

	trustee := rules.RoleSectionID(rules.RoleTrustee)
	expiry, ok := answers.InstanceField(trustee, 0, forms.FieldPassportExpiry)
	require.True(t, ok)
	assert.Equal(t, forms.KindDate, expiry.Kind)
	assert.Equal(t, time.Date(2031, 3, 15, 0, 0, 0, 0, time.UTC), expiry.Date)

	doc, ok := answers.InstanceField(trustee, 0, forms.FieldPassportDocument)
	require.True(t, ok)
	require.Equal(t, forms.KindFile, doc.Kind)
	assert.Equal(t, "passport.pdf", doc.File.Filename)
}

func TestParseSubmissionPassesValidation(t *testing.T) {
	rs := rules.Default()

	et, answers, err := ParseSubmission(rs, []byte(trustYAML))
	require.NoError(t, err)

	clock := func() time.Time { return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC) }
	problems, err := validation.NewWithClock(rs, refdata.DefaultRegistry(), clock).Validate(et, answers)
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestParseSubmissionUnknownEntityType(t *testing.T) {
	_, _, err := ParseSubmission(rules.Default(), []byte("entity_type: STOKVEL\nsections: {}\n"))
	var unknown *rules.UnknownEntityTypeError
	require.ErrorAs(t, err, &unknown)
}

func TestParseSubmissionUnknownField(t *testing.T) {
	bad := `
entity_type: TRUST
sections:
  entity_details:
    entity_nickname: Willow
`
	_, _, err := ParseSubmission(rules.Default(), []byte(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entity_nickname")
}

func TestParseSubmissionUnknownSection(t *testing.T) {
	bad := `
entity_type: TRUST
sections:
  board_minutes:
    note: hello
`
	_, _, err := ParseSubmission(rules.Default(), []byte(bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "board_minutes")
}

func TestParseSubmissionMissingEntityType(t *testing.T) {
	_, _, err := ParseSubmission(rules.Default(), []byte("sections: {}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "entity_type")
}
