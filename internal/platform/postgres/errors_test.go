package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/task-api/internal/store"
)

func TestMapError(t *testing.T) {
	plain := errors.New("boom")

	tests := []struct {
		name    string
		input   error
		wantErr error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"unique violation", &pgconn.PgError{Code: uniqueViolationCode}, store.ErrDuplicate},
		{"check violation", &pgconn.PgError{Code: checkViolationCode}, store.ErrInvalidEntity},
		{"not null violation", &pgconn.PgError{Code: notNullViolationCode}, store.ErrInvalidEntity},
		{"value too long", &pgconn.PgError{Code: stringDataRightTruncationCode}, store.ErrInvalidEntity},
		{"unmapped pg error", &pgconn.PgError{Code: "40001"}, nil},
		{"plain error", plain, plain},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MapError(tc.input)
			if tc.input == nil {
				assert.NoError(t, got)
				return
			}
			if tc.wantErr != nil {
				assert.ErrorIs(t, got, tc.wantErr)
			}
			assert.ErrorIs(t, got, tc.input, "original error stays in the chain")
		})
	}
}

func TestCheckRowsAffected(t *testing.T) {
	assert.NoError(t, CheckRowsAffected(sqlmock.NewResult(0, 1), store.ErrTaskNotFound))
	assert.ErrorIs(t, CheckRowsAffected(sqlmock.NewResult(0, 0), store.ErrTaskNotFound), store.ErrTaskNotFound)
	assert.ErrorIs(t, CheckRowsAffected(sqlmock.NewResult(0, 0), nil), store.ErrNotFound)
	assert.Error(t, CheckRowsAffected(nil, nil))
	assert.Error(t, CheckRowsAffected(sqlmock.NewErrorResult(errors.New("no count")), nil))
}
