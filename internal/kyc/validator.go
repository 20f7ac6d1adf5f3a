package kyc

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"kycintake/internal/model"
)

// DefaultMaxDocumentAge is how old a CR12 may be, in days, when it is submitted.
const DefaultMaxDocumentAge = 90

// IssueDateLayout is the accepted format of a declared issuance date.
const IssueDateLayout = "2006-01-02"

var tracer trace.Tracer = otel.Tracer("kycintake/internal/kyc")

// SubmissionInput is a business KYC submission as received at the boundary.
// A nil entry in BusinessFiles is treated as absent. When ManifestJSON is
// not empty it is parsed with ParseManifest at the categorization step and
// replaces filename-based attribution of OwnerFiles.
type SubmissionInput struct {
	BusinessName  string
	BusinessType  string
	OwnersJSON    []byte
	BusinessFiles map[model.BusinessDocumentKey]*RawFile
	CR12IssuedOn  string
	OwnerFiles    []RawFile
	ManifestJSON  []byte
}

// BusinessFile is a business-level document accepted for upload.
type BusinessFile struct {
	Key  model.BusinessDocumentKey
	File RawFile
}

// OwnerBundle is one owner's metadata together with the files attributed to
// its slot.
type OwnerBundle struct {
	Index     int
	Metadata  model.OwnerMetadata
	Documents map[string][]CategorizedFile
}

// ValidatedSubmission is a submission that passed every rule and is ready
// to be archived.
type ValidatedSubmission struct {
	BusinessName  string
	BusinessType  model.BusinessType
	BusinessFiles []BusinessFile
	Owners        []OwnerBundle
	Dropped       []DroppedFile
}

// Validator applies the business rule set to submissions. It holds no
// per-submission state and is safe for concurrent use.
type Validator struct {
	categorizer Categorizer
	strict      bool
	maxAgeDays  int
	now         func() time.Time
	loc         *time.Location
	logger      *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithCategorizer replaces the filename-convention categorizer.
func WithCategorizer(c Categorizer) Option {
	return func(v *Validator) { v.categorizer = c }
}

// WithStrictFilenames makes unattributable owner files fail the submission.
func WithStrictFilenames(strict bool) Option {
	return func(v *Validator) { v.strict = strict }
}

// WithMaxDocumentAge sets the CR12 freshness threshold in days.
func WithMaxDocumentAge(days int) Option {
	return func(v *Validator) {
		if days > 0 {
			v.maxAgeDays = days
		}
	}
}

// WithClock overrides the validation clock.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

// WithLocation sets the time zone that decides the current calendar day.
func WithLocation(loc *time.Location) Option {
	return func(v *Validator) {
		if loc != nil {
			v.loc = loc
		}
	}
}

// WithLogger sets the logger used to report dropped owner files.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// NewValidator returns a lenient Validator with a 90-day CR12 threshold.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{
		maxAgeDays: DefaultMaxDocumentAge,
		now:        time.Now,
		loc:        time.UTC,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	if v.categorizer == nil {
		v.categorizer = FilenameCategorizer{Strict: v.strict}
	}
	return v
}

// Validate runs the checks in a fixed order and returns the first violation
// as a *Error.
func (v *Validator) Validate(ctx context.Context, in SubmissionInput) (*ValidatedSubmission, error) {
	ctx, span := tracer.Start(ctx, "kyc.Validate")
	defer span.End()

	bt, ok := model.ParseBusinessType(in.BusinessType)
	if !ok {
		return nil, newError(CodeInvalidBusinessType,
			"business_type must be one of sole_proprietorship, llc, llp; got %q", in.BusinessType)
	}
	span.SetAttributes(attribute.String("kyc.business_type", string(bt)))
	rules, _ := RulesFor(bt)

	owners, err := ParseOwners(in.OwnersJSON)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("kyc.owner_count", len(owners)))

	if !rules.Owners.Allows(len(owners)) {
		return nil, newError(CodeOwnerCountViolation,
			"%s must have %s owner(s), got %d", bt, rules.Owners, len(owners))
	}

	var missing []string
	for _, key := range rules.BusinessDocuments {
		if in.BusinessFiles[key] == nil {
			missing = append(missing, string(key))
		}
	}
	if len(missing) > 0 {
		return nil, newError(CodeMissingBusinessDocument,
			"missing required business documents for %s: %s", bt, strings.Join(missing, ", "))
	}

	if in.CR12IssuedOn != "" && in.BusinessFiles[model.CompanyCR12] != nil {
		if err := v.checkFreshness(in.CR12IssuedOn); err != nil {
			return nil, err
		}
	}

	categorizer, err := v.categorizerFor(in)
	if err != nil {
		return nil, err
	}
	cat, err := categorizer.Categorize(in.OwnerFiles)
	if err != nil {
		return nil, err
	}

	bundles := make([]OwnerBundle, 0, len(owners))
	for idx, meta := range owners {
		var lacking []string
		for _, key := range rules.OwnerDocuments {
			if !cat.Has(idx, key) {
				lacking = append(lacking, key)
			}
		}
		if len(lacking) > 0 {
			return nil, newError(CodeMissingOwnerDocument,
				"missing files for owner %s: %s", meta.Name, strings.Join(lacking, ", "))
		}
		bundles = append(bundles, OwnerBundle{Index: idx, Metadata: meta, Documents: cat.Documents(idx)})
	}

	dropped := cat.Dropped
	for _, idx := range sortedKeys(cat.Owners) {
		if idx < len(owners) {
			continue
		}
		docs := cat.Owners[idx]
		for _, key := range sortedKeys(docs) {
			for _, f := range docs[key] {
				if v.strict {
					return nil, newError(CodeUnrecognizedOwnerFile,
						"file %q refers to owner %d but only %d owner(s) were declared", f.File.Filename, idx, len(owners))
				}
				dropped = append(dropped, DroppedFile{Filename: f.File.Filename, Reason: "no declared owner at this index"})
			}
		}
	}
	for _, d := range dropped {
		v.logger.WarnContext(ctx, "owner file dropped",
			"filename", d.Filename,
			"reason", d.Reason,
			"business_name", in.BusinessName,
		)
	}

	var businessFiles []BusinessFile
	for _, key := range model.BusinessDocumentKeys {
		if f := in.BusinessFiles[key]; f != nil {
			businessFiles = append(businessFiles, BusinessFile{Key: key, File: *f})
		}
	}

	return &ValidatedSubmission{
		BusinessName:  in.BusinessName,
		BusinessType:  bt,
		BusinessFiles: businessFiles,
		Owners:        bundles,
		Dropped:       dropped,
	}, nil
}

func (v *Validator) categorizerFor(in SubmissionInput) (Categorizer, error) {
	if len(in.ManifestJSON) == 0 {
		return v.categorizer, nil
	}
	entries, err := ParseManifest(in.ManifestJSON)
	if err != nil {
		return nil, err
	}
	return ManifestCategorizer{Entries: entries, Strict: v.strict}, nil
}

func (v *Validator) checkFreshness(issued string) error {
	issuedOn, err := time.Parse(IssueDateLayout, strings.TrimSpace(issued))
	if err != nil {
		return &Error{Code: CodeInvalidFreshnessDate, Message: "company_cr12_date must be YYYY-MM-DD", Err: err}
	}
	now := v.now().In(v.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	age := int(today.Sub(issuedOn).Hours() / 24)
	if age > v.maxAgeDays {
		return newError(CodeStaleDocument,
			"company_cr12_date is older than %d days (issued %s, %d days ago)", v.maxAgeDays, issuedOn.Format(IssueDateLayout), age)
	}
	return nil
}

// ParseOwners decodes the owners_json payload into an ordered, non-empty
// list of owner metadata.
func ParseOwners(raw []byte) ([]model.OwnerMetadata, error) {
	if !json.Valid(raw) {
		return nil, newError(CodeInvalidOwnerMetadata, "owners_json must be valid JSON")
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
		return nil, newError(CodeInvalidOwnerMetadata, "owners_json must be a non-empty array")
	}
	owners := make([]model.OwnerMetadata, len(items))
	for i, item := range items {
		if err := json.Unmarshal(item, &owners[i]); err != nil {
			return nil, &Error{
				Code:    CodeInvalidOwnerMetadata,
				Message: fmt.Sprintf("owner %d must be an object with a non-empty full_name", i),
				Err:     err,
			}
		}
	}
	return owners, nil
}

func sortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
