package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Dan9191/rental-analyzer/internal/models"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func TestCreateUser(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO rental.users")).
		WithArgs("alice", "alice@example.com", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, created))

	user := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, created, user.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO rental.users")).
		WithArgs("alice", "alice@example.com", "hash").
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})

	user := &models.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash"}
	err := repo.CreateUser(context.Background(), user)
	assert.True(t, errors.Is(err, ErrAlreadyExists))
	assert.EqualError(t, err, "user alice@example.com: already exists")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_OtherError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO rental.users")).
		WillReturnError(&pq.Error{Code: "23502"})

	err := repo.CreateUser(context.Background(), &models.User{})
	assert.False(t, errors.Is(err, ErrAlreadyExists))
	assert.ErrorContains(t, err, "failed to create user")
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM rental.users")).
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByEmail(context.Background(), "nobody@example.com")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByEmail(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM rental.users")).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at"}).
			AddRow(7, "alice", "alice@example.com", "hash", created))

	user, err := repo.FindUserByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "hash", user.PasswordHash)
}

func TestSaveReferenceRate(t *testing.T) {
	repo, mock := newMockRepo(t)
	fetched := time.Date(2025, 6, 10, 6, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO rental.reference_rates")).
		WithArgs("cbr", 21.0, 5.0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "fetched_at"}).AddRow(3, fetched))

	rate := &models.ReferenceRate{Source: "cbr", Rate: 21, Margin: 5}
	require.NoError(t, repo.SaveReferenceRate(context.Background(), rate))
	assert.Equal(t, int64(3), rate.ID)
	assert.Equal(t, fetched, rate.FetchedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestReferenceRate(t *testing.T) {
	repo, mock := newMockRepo(t)
	fetched := time.Date(2025, 6, 10, 6, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY fetched_at DESC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "source", "rate", "margin", "fetched_at"}).
			AddRow(3, "cbr", 21.0, 5.0, fetched))

	rate, err := repo.LatestReferenceRate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &models.ReferenceRate{ID: 3, Source: "cbr", Rate: 21, Margin: 5, FetchedAt: fetched}, rate)
}

func TestLatestReferenceRate_Empty(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM rental.reference_rates")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "source", "rate", "margin", "fetched_at"}))

	_, err := repo.LatestReferenceRate(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}
