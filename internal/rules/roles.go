package rules

// Role labels used by the role requirement table.
const (
	RoleAuthorisedRepresentative = "Authorised Representative"
	RoleDirector                 = "Director"
	RoleBeneficialOwner          = "Beneficial Owner"
	RoleTrustee                  = "Trustee"
	RoleBeneficiary              = "Beneficiary"
	RolePartner                  = "Partner"
	RoleMember                   = "Member"
	RoleOfficeBearer             = "Office Bearer"
)

// RoleRequirement declares participant bounds for one role of one entity
// type. MaxCount 0 means unbounded. Documents lists uploads every holder of
// the role must supply in addition to the ID-type documents.
type RoleRequirement struct {
	Role      string
	MinCount  int
	MaxCount  int
	Documents []string
}

// representativeRequirement is injected first for every entity type.
func representativeRequirement() RoleRequirement {
	return RoleRequirement{
		Role:      RoleAuthorisedRepresentative,
		MinCount:  1,
		MaxCount:  2,
		Documents: []string{DocProofOfAddress},
	}
}

// defaultRoleRows holds the entity-specific rows in declaration order.
func defaultRoleRows() map[EntityType][]RoleRequirement {
	companyRoles := []RoleRequirement{
		{Role: RoleDirector, MinCount: 1},
		{Role: RoleBeneficialOwner, MinCount: 0},
	}
	return map[EntityType][]RoleRequirement{
		EntityPrivateCompany:   companyRoles,
		EntityPublicCompany:    companyRoles,
		EntityListedCompany:    companyRoles,
		EntityForeignCompany:   companyRoles,
		EntityCloseCorporation: {{Role: RoleMember, MinCount: 1}},
		EntityPartnership:      {{Role: RolePartner, MinCount: 2}},
		EntityTrust: {
			{Role: RoleTrustee, MinCount: 1},
			{Role: RoleBeneficiary, MinCount: 0},
		},
		EntityNonProfit:   {{Role: RoleOfficeBearer, MinCount: 1}},
		EntityCoOperative: {{Role: RoleDirector, MinCount: 1}},
	}
}
