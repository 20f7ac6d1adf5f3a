package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"kycintake/internal/model"
	"kycintake/internal/repository"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var submissionRowColumns = []string{"id", "kind", "subject_name", "business_type", "record", "created_at"}

func TestSubmissionPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewSubmissionPostgres(db)
	ctx := context.Background()
	now := time.Date(2024, 12, 1, 9, 30, 0, 0, time.UTC)

	t.Run("business record", func(t *testing.T) {
		sub := &model.StoredSubmission{
			ID:           "6f1c2a8e-0000-4000-8000-000000000001",
			Kind:         model.KindBusiness,
			SubjectName:  "Acme Ltd",
			BusinessType: "llc",
			Record:       []byte(`{"business_name":"Acme Ltd"}`),
			CreatedAt:    now,
		}

		mock.ExpectQuery("INSERT INTO kyc_submissions").
			WithArgs(sub.ID, "business", "Acme Ltd", "llc", `{"business_name":"Acme Ltd"}`, now).
			WillReturnRows(sqlmock.NewRows(submissionRowColumns).
				AddRow(sub.ID, "business", "Acme Ltd", "llc", []byte(`{"business_name":"Acme Ltd"}`), now))

		got, err := repo.Create(ctx, sub)

		require.NoError(t, err)
		assert.Equal(t, sub.ID, got.ID)
		assert.Equal(t, model.KindBusiness, got.Kind)
		assert.Equal(t, "llc", got.BusinessType)
		assert.JSONEq(t, `{"business_name":"Acme Ltd"}`, string(got.Record))
	})

	t.Run("individual record stores null business type", func(t *testing.T) {
		sub := &model.StoredSubmission{
			ID:          "6f1c2a8e-0000-4000-8000-000000000002",
			Kind:        model.KindIndividual,
			SubjectName: "Jane Doe",
			Record:      []byte(`{}`),
			CreatedAt:   now,
		}

		mock.ExpectQuery("INSERT INTO kyc_submissions").
			WithArgs(sub.ID, "individual", "Jane Doe", nil, `{}`, now).
			WillReturnRows(sqlmock.NewRows(submissionRowColumns).
				AddRow(sub.ID, "individual", "Jane Doe", nil, []byte(`{}`), now))

		got, err := repo.Create(ctx, sub)

		require.NoError(t, err)
		assert.Empty(t, got.BusinessType)
	})

	t.Run("insert error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO kyc_submissions").
			WillReturnError(errors.New("duplicate key"))

		got, err := repo.Create(ctx, &model.StoredSubmission{ID: "x", Record: []byte(`{}`)})

		assert.Error(t, err)
		assert.Nil(t, got)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewSubmissionPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(submissionRowColumns).
			AddRow("sub-1", "business", "Acme Ltd", "llp", []byte(`{"owners":[]}`), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM kyc_submissions WHERE id = ?").
			WithArgs("sub-1").
			WillReturnRows(rows)

		sub, err := repo.FindByID(ctx, "sub-1")

		assert.NoError(t, err)
		require.NotNil(t, sub)
		assert.Equal(t, "sub-1", sub.ID)
		assert.Equal(t, "llp", sub.BusinessType)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM kyc_submissions WHERE id = ?").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(submissionRowColumns))

		sub, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, sub)
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM kyc_submissions WHERE id = ?").
			WithArgs("boom").
			WillReturnError(errors.New("connection reset"))

		sub, err := repo.FindByID(ctx, "boom")

		assert.EqualError(t, err, "connection reset")
		assert.Nil(t, sub)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmissionPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewSubmissionPostgres(db)
	ctx := context.Background()

	t.Run("all kinds", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM kyc_submissions").
			WithArgs("").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		rows := sqlmock.NewRows(submissionRowColumns).
			AddRow("sub-2", "individual", "Jane Doe", nil, []byte(`{}`), time.Now()).
			AddRow("sub-1", "business", "Acme Ltd", "llc", []byte(`{}`), time.Now().Add(-time.Hour))

		mock.ExpectQuery("SELECT (.+) FROM kyc_submissions (.+) ORDER BY").
			WithArgs("", 10, 0).
			WillReturnRows(rows)

		res, err := repo.List(ctx, repository.SubmissionFilter{}, repository.PageQuery{Limit: 10, Offset: 0})

		require.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		assert.Len(t, res.Items, 2)
		assert.Equal(t, "sub-2", res.Items[0].ID)
	})

	t.Run("filtered by kind", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM kyc_submissions").
			WithArgs("business").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("SELECT (.+) FROM kyc_submissions (.+) ORDER BY").
			WithArgs("business", 5, 10).
			WillReturnRows(sqlmock.NewRows(submissionRowColumns))

		res, err := repo.List(ctx, repository.SubmissionFilter{Kind: model.KindBusiness}, repository.PageQuery{Limit: 5, Offset: 10})

		require.NoError(t, err)
		assert.Equal(t, 0, res.Total)
		assert.NotNil(t, res.Items)
		assert.Empty(t, res.Items)
	})

	t.Run("count error", func(t *testing.T) {
		mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM kyc_submissions").
			WillReturnError(errors.New("timeout"))

		res, err := repo.List(ctx, repository.SubmissionFilter{}, repository.PageQuery{Limit: 10})

		assert.Error(t, err)
		assert.Nil(t, res)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
