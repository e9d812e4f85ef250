package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestSchemaRepository_Ensure(t *testing.T) {
	db, mock := newMockDB(t)

	// Running twice issues the same idempotent statements both times.
	for run := 0; run < 2; run++ {
		for _, stmt := range schemaStatements {
			mock.ExpectExec(regexp.QuoteMeta(stmt)).WillReturnResult(sqlmock.NewResult(0, 0))
		}
	}

	repo := NewSchemaRepository(db)
	assert.NoError(t, repo.Ensure(context.Background()))
	assert.NoError(t, repo.Ensure(context.Background()))
}

func TestSchemaRepository_Ensure_StopsOnError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta(schemaStatements[0])).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(schemaStatements[1])).WillReturnError(errors.New("permission denied"))

	err := NewSchemaRepository(db).Ensure(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "statement 2")
}

func TestSchemaStatements_AreIdempotent(t *testing.T) {
	for _, stmt := range schemaStatements {
		assert.Regexp(t, `IF NOT EXISTS`, stmt)
	}
}
