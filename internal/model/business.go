package model

import "strings"

// BusinessType is the legal form of a business applicant. It decides which
// documents and how many owners a submission needs.
type BusinessType string

const (
	SoleProprietorship BusinessType = "sole_proprietorship"
	LLC                BusinessType = "llc"
	LLP                BusinessType = "llp"
)

// BusinessTypes lists every supported business type in a stable order.
var BusinessTypes = []BusinessType{SoleProprietorship, LLC, LLP}

// ParseBusinessType normalizes s (trim + lower-case) and resolves it against
// the known business types.
func ParseBusinessType(s string) (BusinessType, bool) {
	bt := BusinessType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range BusinessTypes {
		if bt == known {
			return bt, true
		}
	}
	return "", false
}

// BusinessDocumentKey names a business-level document slot.
type BusinessDocumentKey string

const (
	RegistrationCertificate    BusinessDocumentKey = "registration_certificate"
	GeotaggedBusinessPhoto     BusinessDocumentKey = "geotagged_business_photo"
	CertificateOfIncorporation BusinessDocumentKey = "certificate_of_incorporation"
	CompanyKRAPin              BusinessDocumentKey = "company_kra_pin"
	CompanyCR12                BusinessDocumentKey = "company_cr12"
	PartnershipDeed            BusinessDocumentKey = "partnership_deed"
	CompanyCRBReport           BusinessDocumentKey = "company_crb_report"
	BusinessMobileMoney        BusinessDocumentKey = "mobile_money_statement"
)

// BusinessDocumentKeys lists every business document slot accepted on a
// submission, in the order they are uploaded.
var BusinessDocumentKeys = []BusinessDocumentKey{
	RegistrationCertificate,
	GeotaggedBusinessPhoto,
	CertificateOfIncorporation,
	CompanyKRAPin,
	CompanyCR12,
	PartnershipDeed,
	CompanyCRBReport,
	BusinessMobileMoney,
}

// Owner-level document keys every owner must supply.
const (
	OwnerNationalID           = "national_id_passport"
	OwnerMobileMoneyStatement = "mobile_money_statement"
)
