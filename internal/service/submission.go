package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"

	"kycintake/internal/kyc"
	"kycintake/internal/model"
	"kycintake/internal/repository"
	"kycintake/internal/storage"
)

var (
	ErrIDRequired            = errors.New("id is required")
	ErrNotFound              = errors.New("submission not found")
	ErrInvalidContentID      = errors.New("invalid content identifier")
	ErrDocumentNotFound      = errors.New("document not found")
	ErrDocumentsUnavailable  = errors.New("document retrieval is not available for this content store")
	ErrInvalidSubmissionKind = errors.New("kind must be business or individual")
)

// contentIDPattern matches the digests issued by the object content store.
var contentIDPattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// BusinessResult is returned for an accepted business submission.
type BusinessResult struct {
	ID     string                  `json:"id"`
	Record *model.SubmissionRecord `json:"record"`
}

// IndividualResult is returned for an accepted individual submission.
type IndividualResult struct {
	ID     string                  `json:"id"`
	Record *model.IndividualRecord `json:"record"`
}

// SubmissionListResult is the service-level DTO for paginated submissions.
type SubmissionListResult struct {
	Items []model.StoredSubmission `json:"data"`
	Total int                      `json:"total"`
}

// SubmissionService defines the KYC intake use cases.
type SubmissionService interface {
	// SubmitBusiness validates a business submission, archives every file and
	// persists the record. Nothing is persisted unless every upload succeeded.
	SubmitBusiness(ctx context.Context, in kyc.SubmissionInput) (*BusinessResult, error)

	// SubmitIndividual does the same for an individual applicant.
	SubmitIndividual(ctx context.Context, in kyc.IndividualInput) (*IndividualResult, error)

	// Get returns a stored submission by ID.
	Get(ctx context.Context, id string) (*model.StoredSubmission, error)

	// List returns stored submissions newest first. An empty kind lists all.
	List(ctx context.Context, kind string, limit, offset int) (*SubmissionListResult, error)

	// OpenDocument streams an archived document by content identifier.
	OpenDocument(ctx context.Context, contentID string) (io.ReadCloser, storage.ObjectInfo, error)

	// PresignDocument returns a time-limited download URL for a document.
	PresignDocument(ctx context.Context, contentID string) (string, error)
}

type submissionService struct {
	validator *kyc.Validator
	assembler *kyc.Assembler
	repo      repository.SubmissionRepository

	documents     storage.Storage
	prefix        string
	presignExpiry time.Duration

	metrics *Metrics
	logger  *slog.Logger
	newID   func() string
}

// Option configures the submission service.
type Option func(*submissionService)

// WithDocumentStore enables document retrieval from the object store the
// content-addressed backend archives into.
func WithDocumentStore(s storage.Storage, prefix string, presignExpiry time.Duration) Option {
	return func(svc *submissionService) {
		svc.documents = s
		svc.prefix = prefix
		if presignExpiry > 0 {
			svc.presignExpiry = presignExpiry
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(svc *submissionService) { svc.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(svc *submissionService) {
		if l != nil {
			svc.logger = l
		}
	}
}

// WithIDGenerator overrides how submission IDs are generated.
func WithIDGenerator(fn func() string) Option {
	return func(svc *submissionService) { svc.newID = fn }
}

// NewSubmissionService constructs a new SubmissionService.
func NewSubmissionService(v *kyc.Validator, a *kyc.Assembler, repo repository.SubmissionRepository, opts ...Option) SubmissionService {
	svc := &submissionService{
		validator:     v,
		assembler:     a,
		repo:          repo,
		presignExpiry: 15 * time.Minute,
		logger:        slog.Default(),
		newID:         uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

func (s *submissionService) SubmitBusiness(ctx context.Context, in kyc.SubmissionInput) (res *BusinessResult, err error) {
	defer func() { s.metrics.ObserveSubmission(string(model.KindBusiness), err) }()

	valid, err := s.validator.Validate(ctx, in)
	if err != nil {
		s.logger.InfoContext(ctx, "business submission rejected",
			"business_name", in.BusinessName,
			"code", kyc.CodeOf(err),
			"error", err,
		)
		return nil, err
	}

	record, err := s.assembler.Assemble(ctx, valid)
	if err != nil {
		s.logger.ErrorContext(ctx, "business submission upload failed",
			"business_name", valid.BusinessName,
			"error", err,
		)
		return nil, err
	}

	id, err := s.persist(ctx, model.KindBusiness, record.BusinessName, string(record.BusinessType), record, record.SubmittedAt)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "business submission accepted",
		"submission_id", id,
		"business_name", record.BusinessName,
		"business_type", record.BusinessType,
		"owners", len(record.Owners),
		"dropped_files", len(record.DroppedFiles),
	)
	return &BusinessResult{ID: id, Record: record}, nil
}

func (s *submissionService) SubmitIndividual(ctx context.Context, in kyc.IndividualInput) (res *IndividualResult, err error) {
	defer func() { s.metrics.ObserveSubmission(string(model.KindIndividual), err) }()

	valid, err := kyc.ValidateIndividual(in)
	if err != nil {
		s.logger.InfoContext(ctx, "individual submission rejected",
			"code", kyc.CodeOf(err),
			"error", err,
		)
		return nil, err
	}

	record, err := s.assembler.AssembleIndividual(ctx, valid)
	if err != nil {
		s.logger.ErrorContext(ctx, "individual submission upload failed", "error", err)
		return nil, err
	}

	id, err := s.persist(ctx, model.KindIndividual, record.FullName, "", record, record.SubmittedAt)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "individual submission accepted", "submission_id", id)
	return &IndividualResult{ID: id, Record: record}, nil
}

// persist stores an assembled record. Uploaded documents are left in place
// when this fails; a resubmission reuses them.
func (s *submissionService) persist(ctx context.Context, kind model.SubmissionKind, subject, businessType string, record any, at time.Time) (string, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("encode record: %w", err)
	}
	stored, err := s.repo.Create(ctx, &model.StoredSubmission{
		ID:           s.newID(),
		Kind:         kind,
		SubjectName:  subject,
		BusinessType: businessType,
		Record:       raw,
		CreatedAt:    at,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "submission save failed", "kind", kind, "error", err)
		return "", fmt.Errorf("db save failed: %w", err)
	}
	return stored.ID, nil
}

// Get returns a submission by ID.
func (s *submissionService) Get(ctx context.Context, id string) (*model.StoredSubmission, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sub, nil
}

// List returns paginated submissions without exposing repository types.
func (s *submissionService) List(ctx context.Context, kind string, limit, offset int) (*SubmissionListResult, error) {
	filter := repository.SubmissionFilter{Kind: model.SubmissionKind(kind)}
	switch filter.Kind {
	case "", model.KindBusiness, model.KindIndividual:
	default:
		return nil, ErrInvalidSubmissionKind
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, filter, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &SubmissionListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *submissionService) documentKey(contentID string) (string, error) {
	if s.documents == nil {
		return "", ErrDocumentsUnavailable
	}
	if !contentIDPattern.MatchString(contentID) {
		return "", ErrInvalidContentID
	}
	return storage.ContentKey(s.prefix, contentID), nil
}

func (s *submissionService) OpenDocument(ctx context.Context, contentID string) (io.ReadCloser, storage.ObjectInfo, error) {
	key, err := s.documentKey(contentID)
	if err != nil {
		return nil, storage.ObjectInfo{}, err
	}
	rc, info, err := s.documents.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, storage.ObjectInfo{}, ErrDocumentNotFound
		}
		return nil, storage.ObjectInfo{}, fmt.Errorf("get document: %w", err)
	}
	return rc, info, nil
}

func (s *submissionService) PresignDocument(ctx context.Context, contentID string) (string, error) {
	key, err := s.documentKey(contentID)
	if err != nil {
		return "", err
	}
	if _, err := s.documents.Stat(ctx, key); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return "", ErrDocumentNotFound
		}
		return "", fmt.Errorf("stat document: %w", err)
	}
	url, err := s.documents.PresignGet(ctx, key, s.presignExpiry)
	if err != nil {
		return "", fmt.Errorf("presign document: %w", err)
	}
	return url, nil
}
