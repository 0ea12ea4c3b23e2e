// Package rules holds the declarative tables driving validation and
// serialization: the closed entity-type set, per-field rules, role
// requirements, and section declarations. A Ruleset is built once at startup
// and treated as immutable, so it can back any number of submissions.
package rules

import "fmt"

// EntityType identifies one of the supported legal entity forms.
type EntityType string

const (
	EntityPrivateCompany     EntityType = "PRIVATE_COMPANY"
	EntityPublicCompany      EntityType = "PUBLIC_COMPANY"
	EntityListedCompany      EntityType = "LISTED_COMPANY"
	EntityForeignCompany     EntityType = "FOREIGN_COMPANY"
	EntityCloseCorporation   EntityType = "CLOSE_CORPORATION"
	EntitySoleProprietorship EntityType = "SOLE_PROPRIETORSHIP"
	EntityPartnership        EntityType = "PARTNERSHIP"
	EntityTrust              EntityType = "TRUST"
	EntityNonProfit          EntityType = "NON_PROFIT_ORGANISATION"
	EntityCoOperative        EntityType = "CO_OPERATIVE"
	EntityGovernment         EntityType = "GOVERNMENT_ENTITY"
	EntityBank               EntityType = "BANK"
	EntityLongTermInsurer    EntityType = "LONG_TERM_INSURER"
	EntityPensionFund        EntityType = "PENSION_FUND"
	EntityMedicalScheme      EntityType = "MEDICAL_SCHEME"
	EntityCollectiveScheme   EntityType = "COLLECTIVE_INVESTMENT_SCHEME"
	EntityBodyCorporate      EntityType = "BODY_CORPORATE"
)

// entityTypeOrder fixes the declaration order of the closed set.
var entityTypeOrder = []EntityType{
	EntityPrivateCompany,
	EntityPublicCompany,
	EntityListedCompany,
	EntityForeignCompany,
	EntityCloseCorporation,
	EntitySoleProprietorship,
	EntityPartnership,
	EntityTrust,
	EntityNonProfit,
	EntityCoOperative,
	EntityGovernment,
	EntityBank,
	EntityLongTermInsurer,
	EntityPensionFund,
	EntityMedicalScheme,
	EntityCollectiveScheme,
	EntityBodyCorporate,
}

var entityTypeLabels = map[EntityType]string{
	EntityPrivateCompany:     "Private Company",
	EntityPublicCompany:      "Public Company",
	EntityListedCompany:      "Listed Company",
	EntityForeignCompany:     "Foreign Company",
	EntityCloseCorporation:   "Close Corporation",
	EntitySoleProprietorship: "Sole Proprietorship",
	EntityPartnership:        "Partnership",
	EntityTrust:              "Trust",
	EntityNonProfit:          "Non-Profit Organisation",
	EntityCoOperative:        "Co-operative",
	EntityGovernment:         "Government Entity",
	EntityBank:               "Bank",
	EntityLongTermInsurer:    "Long-Term Insurer",
	EntityPensionFund:        "Pension Fund",
	EntityMedicalScheme:      "Medical Scheme",
	EntityCollectiveScheme:   "Collective Investment Scheme",
	EntityBodyCorporate:      "Body Corporate",
}

// EntityTypes returns the closed set in declaration order.
func EntityTypes() []EntityType {
	out := make([]EntityType, len(entityTypeOrder))
	copy(out, entityTypeOrder)
	return out
}

// KnownEntityType reports whether the entity type is in the closed set.
func KnownEntityType(et EntityType) bool {
	_, ok := entityTypeLabels[et]
	return ok
}

// Label returns the display name of the entity type, or the raw code when
// the type is unknown.
func (et EntityType) Label() string {
	if label, ok := entityTypeLabels[et]; ok {
		return label
	}
	return string(et)
}

// UnknownEntityTypeError indicates an entity type outside the closed set.
// Callers must pre-validate entity types before invoking any engine.
type UnknownEntityTypeError struct {
	EntityType string
}

func (e *UnknownEntityTypeError) Error() string {
	return fmt.Sprintf("unknown entity type: %s", e.EntityType)
}
