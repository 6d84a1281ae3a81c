package repository

import (
	"testing"

	"job-portal/internal/database/sqldb"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sqldb.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })
	return sqldb.New(raw), mock
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint, Message: "duplicate key value"}
}

func fkViolation() error {
	return &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"}
}

func strPtr(s string) *string { return &s }
