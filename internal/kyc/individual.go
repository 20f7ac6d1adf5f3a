package kyc

import (
	"strings"
)

// Individual document keys.
const (
	DocNationalID           = "national_id_passport"
	DocPaySlips             = "pay_slips"
	DocTaxPinCertificate    = "tax_pin_certificate"
	DocTaxFileRecords       = "tax_file_records"
	DocCRBReport            = "crb_report"
	DocMobileMoneyStatement = "mobile_money_statement"
	DocSelfie               = "selfie"
	DocMpesaHakikisha       = "mpesa_hakikisha"
)

// IndividualDocuments lists the documents an individual applicant must
// upload. Every key needs at least one file; pay_slips accepts several.
var IndividualDocuments = []string{
	DocNationalID,
	DocPaySlips,
	DocTaxPinCertificate,
	DocTaxFileRecords,
	DocCRBReport,
	DocMobileMoneyStatement,
	DocSelfie,
	DocMpesaHakikisha,
}

// IndividualInput is an individual KYC submission as received at the boundary.
type IndividualInput struct {
	FullName           string
	TelephoneNumber    string
	PhysicalAddress    string
	EmailAddress       string
	LevelOfEducation   string
	SocialMediaHandles string
	Files              map[string][]RawFile
}

// ValidatedIndividual is an individual submission ready to be archived.
type ValidatedIndividual struct {
	FullName           string
	TelephoneNumber    string
	PhysicalAddress    string
	EmailAddress       string
	LevelOfEducation   string
	SocialMediaHandles []string
	Files              map[string][]RawFile
}

// ValidateIndividual checks that every required field and document is present.
func ValidateIndividual(in IndividualInput) (*ValidatedIndividual, error) {
	fields := []struct {
		name  string
		value string
	}{
		{"full_name", in.FullName},
		{"telephone_number", in.TelephoneNumber},
		{"physical_address", in.PhysicalAddress},
		{"email_address", in.EmailAddress},
		{"level_of_education", in.LevelOfEducation},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return nil, newError(CodeMissingApplicantField, "%s is required", f.name)
		}
	}

	var missing []string
	files := make(map[string][]RawFile, len(IndividualDocuments))
	for _, key := range IndividualDocuments {
		if len(in.Files[key]) == 0 {
			missing = append(missing, key)
			continue
		}
		files[key] = in.Files[key]
	}
	if len(missing) > 0 {
		return nil, newError(CodeMissingApplicantDocument,
			"missing required documents for %s: %s", in.FullName, strings.Join(missing, ", "))
	}

	return &ValidatedIndividual{
		FullName:           in.FullName,
		TelephoneNumber:    in.TelephoneNumber,
		PhysicalAddress:    in.PhysicalAddress,
		EmailAddress:       in.EmailAddress,
		LevelOfEducation:   in.LevelOfEducation,
		SocialMediaHandles: SplitHandles(in.SocialMediaHandles),
		Files:              files,
	}, nil
}

// SplitHandles splits a comma-separated list, trimming entries and dropping
// empty ones. It never returns nil.
func SplitHandles(s string) []string {
	out := []string{}
	for _, h := range strings.Split(s, ",") {
		if h = strings.TrimSpace(h); h != "" {
			out = append(out, h)
		}
	}
	return out
}
