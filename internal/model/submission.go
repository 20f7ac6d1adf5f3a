package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// OwnerMetadata is the caller-supplied record for one owner. Name is read
// from the "full_name" field; the whole object is kept verbatim in Raw and
// written back unchanged when the metadata is serialized.
type OwnerMetadata struct {
	Name string
	Raw  json.RawMessage
}

// ErrOwnerNameMissing is returned when an owner object has no usable full_name.
var ErrOwnerNameMissing = errors.New("full_name is required")

// UnmarshalJSON keeps the raw object and extracts the display name.
func (o *OwnerMetadata) UnmarshalJSON(b []byte) error {
	var fields struct {
		FullName *string `json:"full_name"`
	}
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	if fields.FullName == nil || strings.TrimSpace(*fields.FullName) == "" {
		return ErrOwnerNameMissing
	}
	o.Name = *fields.FullName
	o.Raw = append(json.RawMessage(nil), b...)
	return nil
}

// MarshalJSON writes the original object back out.
func (o OwnerMetadata) MarshalJSON() ([]byte, error) {
	if len(o.Raw) == 0 {
		return json.Marshal(map[string]string{"full_name": o.Name})
	}
	return o.Raw, nil
}

// OwnerSubmission is the archived document set of one owner.
type OwnerSubmission struct {
	OwnerIndex int                 `json:"owner_index"`
	OwnerName  string              `json:"owner_name"`
	Metadata   OwnerMetadata       `json:"metadata"`
	Documents  map[string][]string `json:"saved_files"`
}

// SubmissionRecord is the result of a validated and fully archived business
// KYC submission.
type SubmissionRecord struct {
	BusinessName      string                         `json:"business_name"`
	BusinessType      BusinessType                   `json:"business_type"`
	BusinessDocuments map[BusinessDocumentKey]string `json:"saved_business_files"`
	Owners            []OwnerSubmission              `json:"owners"`
	DroppedFiles      []string                       `json:"dropped_files,omitempty"`
	SubmittedAt       time.Time                      `json:"submitted_at"`
}

// IndividualRecord is the result of an individual (non-business) KYC submission.
type IndividualRecord struct {
	FullName           string              `json:"full_name"`
	TelephoneNumber    string              `json:"telephone_number"`
	PhysicalAddress    string              `json:"physical_address"`
	EmailAddress       string              `json:"email_address"`
	LevelOfEducation   string              `json:"level_of_education"`
	SocialMediaHandles []string            `json:"social_media_handles"`
	Documents          map[string][]string `json:"files"`
	SubmittedAt        time.Time           `json:"submitted_at"`
}

// SubmissionKind distinguishes the persisted record types.
type SubmissionKind string

const (
	KindBusiness   SubmissionKind = "business"
	KindIndividual SubmissionKind = "individual"
)

// StoredSubmission is a persisted submission record. Record holds the JSON
// encoding of either a SubmissionRecord or an IndividualRecord.
type StoredSubmission struct {
	ID           string          `json:"id"`
	Kind         SubmissionKind  `json:"kind"`
	SubjectName  string          `json:"subject_name"`
	BusinessType string          `json:"business_type,omitempty"`
	Record       json.RawMessage `json:"record"`
	CreatedAt    time.Time       `json:"created_at"`
}
