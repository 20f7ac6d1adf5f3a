package kyc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"kycintake/internal/model"
	"kycintake/internal/storage"
)

// DefaultUploadConcurrency bounds the uploads in flight for one submission.
const DefaultUploadConcurrency = 4

// UploadObserver is told about every finished upload.
type UploadObserver func(slot string, d time.Duration, err error)

// Assembler archives validated submissions through a ContentStore and builds
// their records. It is safe for concurrent use.
type Assembler struct {
	store       storage.ContentStore
	concurrency int
	now         func() time.Time
	observe     UploadObserver
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithConcurrency sets how many uploads may run at once.
func WithConcurrency(n int) AssemblerOption {
	return func(a *Assembler) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// WithUploadObserver registers fn to be called after each upload.
func WithUploadObserver(fn UploadObserver) AssemblerOption {
	return func(a *Assembler) { a.observe = fn }
}

// WithAssemblerClock overrides the clock used to stamp records.
func WithAssemblerClock(now func() time.Time) AssemblerOption {
	return func(a *Assembler) { a.now = now }
}

func NewAssembler(store storage.ContentStore, opts ...AssemblerOption) *Assembler {
	a := &Assembler{
		store:       store,
		concurrency: DefaultUploadConcurrency,
		now:         time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

type uploadJob struct {
	slot string
	file RawFile
	dst  *string
}

// Assemble uploads every business file and every owner file and returns the
// record. Any failed upload aborts with a STORAGE_FAILURE error; uploads that
// already succeeded are left in the store.
func (a *Assembler) Assemble(ctx context.Context, sub *ValidatedSubmission) (*model.SubmissionRecord, error) {
	ctx, span := tracer.Start(ctx, "kyc.Assemble")
	defer span.End()

	var jobs []uploadJob

	businessIDs := make([]string, len(sub.BusinessFiles))
	for i, bf := range sub.BusinessFiles {
		jobs = append(jobs, uploadJob{
			slot: "business document " + string(bf.Key),
			file: bf.File,
			dst:  &businessIDs[i],
		})
	}

	owners := make([]model.OwnerSubmission, len(sub.Owners))
	for i, ob := range sub.Owners {
		docs := make(map[string][]string, len(ob.Documents))
		for _, key := range sortedKeys(ob.Documents) {
			files := ob.Documents[key]
			ids := make([]string, len(files))
			docs[key] = ids
			for j, f := range files {
				jobs = append(jobs, uploadJob{
					slot: fmt.Sprintf("owner %d %s #%d", ob.Index, key, f.Sequence+1),
					file: f.File,
					dst:  &ids[j],
				})
			}
		}
		owners[i] = model.OwnerSubmission{
			OwnerIndex: ob.Index,
			OwnerName:  ob.Metadata.Name,
			Metadata:   ob.Metadata,
			Documents:  docs,
		}
	}

	span.SetAttributes(attribute.Int("kyc.upload_count", len(jobs)))
	if err := a.run(ctx, jobs); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upload failed")
		return nil, err
	}

	businessDocs := make(map[model.BusinessDocumentKey]string, len(sub.BusinessFiles))
	for i, bf := range sub.BusinessFiles {
		businessDocs[bf.Key] = businessIDs[i]
	}

	var dropped []string
	for _, d := range sub.Dropped {
		dropped = append(dropped, d.Filename)
	}

	return &model.SubmissionRecord{
		BusinessName:      sub.BusinessName,
		BusinessType:      sub.BusinessType,
		BusinessDocuments: businessDocs,
		Owners:            owners,
		DroppedFiles:      dropped,
		SubmittedAt:       a.now().UTC(),
	}, nil
}

// AssembleIndividual uploads an individual applicant's documents and returns
// the record.
func (a *Assembler) AssembleIndividual(ctx context.Context, sub *ValidatedIndividual) (*model.IndividualRecord, error) {
	ctx, span := tracer.Start(ctx, "kyc.AssembleIndividual")
	defer span.End()

	var jobs []uploadJob
	docs := make(map[string][]string, len(sub.Files))
	for _, key := range IndividualDocuments {
		files := sub.Files[key]
		ids := make([]string, len(files))
		docs[key] = ids
		for j, f := range files {
			jobs = append(jobs, uploadJob{
				slot: fmt.Sprintf("%s #%d", key, j+1),
				file: f,
				dst:  &ids[j],
			})
		}
	}

	if err := a.run(ctx, jobs); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upload failed")
		return nil, err
	}

	return &model.IndividualRecord{
		FullName:           sub.FullName,
		TelephoneNumber:    sub.TelephoneNumber,
		PhysicalAddress:    sub.PhysicalAddress,
		EmailAddress:       sub.EmailAddress,
		LevelOfEducation:   sub.LevelOfEducation,
		SocialMediaHandles: sub.SocialMediaHandles,
		Documents:          docs,
		SubmittedAt:        a.now().UTC(),
	}, nil
}

// run executes jobs with bounded parallelism. Once one upload fails no new
// upload is started; uploads already in flight run to completion.
func (a *Assembler) run(ctx context.Context, jobs []uploadJob) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)

	skipped := false
	for _, job := range jobs {
		if gctx.Err() != nil {
			skipped = true
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			id, err := a.upload(ctx, job)
			if err != nil {
				return err
			}
			*job.dst = id
			return nil
		})
	}

	err := g.Wait()
	if err == nil && skipped {
		err = ctx.Err()
	}
	if err == nil {
		return nil
	}
	var kerr *Error
	if errors.As(err, &kerr) {
		return err
	}
	return &Error{Code: CodeStorageFailure, Message: "upload aborted before completion", Err: err}
}

func (a *Assembler) upload(ctx context.Context, job uploadJob) (string, error) {
	ctx, span := tracer.Start(ctx, "kyc.Upload", trace.WithAttributes(
		attribute.String("kyc.slot", job.slot),
		attribute.Int("kyc.size_bytes", len(job.file.Content)),
	))
	defer span.End()

	start := time.Now()
	id, err := a.store.Store(ctx, job.file.Filename, job.file.Content, job.file.ContentType)
	if err == nil && id == "" {
		err = errors.New("store returned an empty content identifier")
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upload failed")
	}
	if a.observe != nil {
		a.observe(job.slot, time.Since(start), err)
	}
	if err != nil {
		return "", &Error{
			Code:    CodeStorageFailure,
			Message: fmt.Sprintf("failed to upload %s (%s)", job.slot, job.file.Filename),
			Err:     err,
		}
	}
	return id, nil
}
