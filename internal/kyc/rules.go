package kyc

import (
	"fmt"

	"kycintake/internal/model"
)

// OwnerCount is an inclusive owner-count constraint. Max == 0 means unbounded.
type OwnerCount struct {
	Min int
	Max int
}

// Allows reports whether n owners satisfy the constraint.
func (c OwnerCount) Allows(n int) bool {
	if n < c.Min {
		return false
	}
	return c.Max == 0 || n <= c.Max
}

func (c OwnerCount) String() string {
	switch {
	case c.Max == c.Min:
		return fmt.Sprintf("exactly %d", c.Min)
	case c.Max == 0:
		return fmt.Sprintf("at least %d", c.Min)
	default:
		return fmt.Sprintf("between %d and %d", c.Min, c.Max)
	}
}

// Rules are the document and ownership requirements of one business type.
type Rules struct {
	Owners            OwnerCount
	BusinessDocuments []model.BusinessDocumentKey
	OwnerDocuments    []string
}

var ownerDocuments = []string{model.OwnerNationalID, model.OwnerMobileMoneyStatement}

var rulesByType = map[model.BusinessType]Rules{
	model.SoleProprietorship: {
		Owners: OwnerCount{Min: 1, Max: 1},
		BusinessDocuments: []model.BusinessDocumentKey{
			model.RegistrationCertificate,
			model.GeotaggedBusinessPhoto,
		},
		OwnerDocuments: ownerDocuments,
	},
	model.LLC: {
		Owners: OwnerCount{Min: 1},
		BusinessDocuments: []model.BusinessDocumentKey{
			model.CertificateOfIncorporation,
			model.CompanyKRAPin,
			model.CompanyCR12,
			model.CompanyCRBReport,
		},
		OwnerDocuments: ownerDocuments,
	},
	model.LLP: {
		Owners: OwnerCount{Min: 2},
		BusinessDocuments: []model.BusinessDocumentKey{
			model.RegistrationCertificate,
			model.CompanyKRAPin,
			model.PartnershipDeed,
			model.CompanyCRBReport,
		},
		OwnerDocuments: ownerDocuments,
	},
}

// RulesFor returns the requirements for bt. ok is false for an unknown type.
func RulesFor(bt model.BusinessType) (Rules, bool) {
	r, ok := rulesByType[bt]
	return r, ok
}
