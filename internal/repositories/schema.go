package repositories

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schemaStatements are applied in order; each one is safe to run repeatedly.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		username      VARCHAR(50)  NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		email         VARCHAR(255) NOT NULL UNIQUE,
		created_at    TIMESTAMPTZ  NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id          BIGSERIAL PRIMARY KEY,
		user_id     BIGINT         NOT NULL REFERENCES users (id),
		type        VARCHAR(10)    NOT NULL CHECK (type IN ('income', 'expense')),
		amount      NUMERIC(12, 2) NOT NULL CHECK (amount >= 0),
		description TEXT           NOT NULL DEFAULT '',
		date        DATE           NOT NULL
	)`,
	`ALTER TABLE transactions ADD COLUMN IF NOT EXISTS category VARCHAR(50) NULL`,
	`CREATE INDEX IF NOT EXISTS transactions_user_date_idx ON transactions (user_id, date)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id      BIGSERIAL PRIMARY KEY,
		user_id BIGINT      NOT NULL REFERENCES users (id),
		name    VARCHAR(50) NOT NULL,
		UNIQUE (user_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS budgets (
		id            BIGSERIAL PRIMARY KEY,
		user_id       BIGINT         NOT NULL REFERENCES users (id),
		category      VARCHAR(50)    NOT NULL,
		budget_amount NUMERIC(12, 2) NOT NULL,
		UNIQUE (user_id, category)
	)`,
}

// SchemaRepository creates the tables the tracker needs.
type SchemaRepository struct {
	db *sqlx.DB
}

func NewSchemaRepository(db *sqlx.DB) *SchemaRepository {
	return &SchemaRepository{db: db}
}

// Ensure creates missing tables, columns and indexes. It is idempotent.
func (r *SchemaRepository) Ensure(ctx context.Context) error {
	for i, stmt := range schemaStatements {
		_, err := r.db.ExecContext(ctx, stmt)
		logQuery(ctx, stmt, nil, i, err)
		if err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
