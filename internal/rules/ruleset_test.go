package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entity-onboard/internal/forms"
)

func TestRequiredRolesAlwaysIncludesRepresentative(t *testing.T) {
	rs := Default()

	for _, et := range EntityTypes() {
		t.Run(string(et), func(t *testing.T) {
			roles, err := rs.RequiredRoles(et)
			require.NoError(t, err)
			require.NotEmpty(t, roles)

			assert.Equal(t, RoleAuthorisedRepresentative, roles[0].Role,
				"representative row must be injected first")
			assert.GreaterOrEqual(t, roles[0].MinCount, 1)
		})
	}
}

func TestRequiredRolesUnknownEntityType(t *testing.T) {
	rs := Default()

	_, err := rs.RequiredRoles(EntityType("SYNDICATE"))
	require.Error(t, err)

	var unknown *UnknownEntityTypeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "SYNDICATE", unknown.EntityType)
}

func TestRequiredRolesEntityRows(t *testing.T) {
	rs := Default()

	roles, err := rs.RequiredRoles(EntityPartnership)
	require.NoError(t, err)
	require.Len(t, roles, 2)
	assert.Equal(t, RolePartner, roles[1].Role)
	assert.Equal(t, 2, roles[1].MinCount)

	roles, err = rs.RequiredRoles(EntityTrust)
	require.NoError(t, err)
	require.Len(t, roles, 3)
	assert.Equal(t, RoleTrustee, roles[1].Role)
	assert.Equal(t, 1, roles[1].MinCount)
	assert.Equal(t, RoleBeneficiary, roles[2].Role)
	assert.Equal(t, 0, roles[2].MinCount)

	roles, err = rs.RequiredRoles(EntityPrivateCompany)
	require.NoError(t, err)
	require.Len(t, roles, 3)
	assert.Equal(t, RoleDirector, roles[1].Role)
	assert.Equal(t, RoleBeneficialOwner, roles[2].Role)
}

func TestSectionsDeclarationOrder(t *testing.T) {
	rs := Default()

	sections, err := rs.Sections(EntityTrust)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(sections), 5)

	assert.Equal(t, SectionEntityDetails, sections[0].ID)
	assert.Equal(t, SectionRegisteredAddress, sections[1].ID)
	assert.Equal(t, SectionContactDetails, sections[2].ID)
	assert.Equal(t, forms.SectionRepresentative, sections[3].Kind)
	assert.Equal(t, RoleTrustee, sections[4].Role)
	assert.True(t, sections[4].Repeating())
}

func TestSectionsUnknownEntityType(t *testing.T) {
	rs := Default()

	_, err := rs.Sections(EntityType("SYNDICATE"))
	var unknown *UnknownEntityTypeError
	require.ErrorAs(t, err, &unknown)
}

func TestRoleSectionID(t *testing.T) {
	assert.Equal(t, "authorised_representative", RoleSectionID(RoleAuthorisedRepresentative))
	assert.Equal(t, "beneficial_owner", RoleSectionID(RoleBeneficialOwner))
	assert.Equal(t, "office_bearer", RoleSectionID(RoleOfficeBearer))
}

func TestMastersOfficeScopedToTrust(t *testing.T) {
	rs := Default()

	find := func(et EntityType) *FieldRule {
		for _, r := range rs.SectionRules(et, SectionEntityDetails) {
			if r.Field == "masters_office" {
				rule := r
				return &rule
			}
		}
		return nil
	}

	trustRule := find(EntityTrust)
	require.NotNil(t, trustRule)
	lookup := func(string) (forms.Value, bool) { return forms.Value{}, false }
	assert.True(t, trustRule.Required.Holds(EntityTrust, lookup))

	companyRule := find(EntityPrivateCompany)
	require.NotNil(t, companyRule)
	assert.False(t, companyRule.Required.Holds(EntityPrivateCompany, lookup))
}

func TestConditionIfFieldEquals(t *testing.T) {
	cond := RequiredIf(forms.FieldIDType, string(forms.IDTypeSAID))

	lookup := func(field string) (forms.Value, bool) {
		if field == forms.FieldIDType {
			return forms.Code(string(forms.IDTypeSAID)), true
		}
		return forms.Value{}, false
	}
	assert.True(t, cond.Holds(EntityTrust, lookup))

	lookup = func(field string) (forms.Value, bool) {
		return forms.Code(string(forms.IDTypeForeignID)), true
	}
	assert.False(t, cond.Holds(EntityTrust, lookup))

	lookup = func(field string) (forms.Value, bool) { return forms.Value{}, false }
	assert.False(t, cond.Holds(EntityTrust, lookup), "absent sibling never satisfies the condition")
}

func TestEntityTypeClosedSet(t *testing.T) {
	types := EntityTypes()
	assert.Len(t, types, 17)

	for _, et := range types {
		assert.True(t, KnownEntityType(et))
		assert.NotEqual(t, string(et), et.Label(), "every type needs a display label")
	}
	assert.False(t, KnownEntityType(EntityType("STOKVEL")))
}
