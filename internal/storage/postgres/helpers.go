package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"jobportal/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapWriteError converts constraint violations into storage.ErrConflict.
func mapWriteError(err error, operation string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgForeignKeyViolation:
			return fmt.Errorf("failed to %s: %s: %w", operation, pgErr.ConstraintName, storage.ErrConflict)
		}
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// mapReadError converts pgx.ErrNoRows into storage.ErrNotFound.
func mapReadError(err error, operation string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// setClause accumulates "column = $n" assignments for a dynamic UPDATE.
type setClause struct {
	parts []string
	args  []any
}

func (s *setClause) add(column string, value any) {
	s.args = append(s.args, value)
	s.parts = append(s.parts, fmt.Sprintf("%s = $%d", column, len(s.args)))
}

func (s *setClause) empty() bool { return len(s.parts) == 0 }

// build renders "UPDATE table SET ..., updated_at = NOW() WHERE id = $n RETURNING returning".
func (s *setClause) build(table string, id any, returning string) (string, []any) {
	args := append(s.args, id)
	query := fmt.Sprintf("UPDATE %s SET %s, updated_at = NOW() WHERE id = $%d RETURNING %s",
		table, strings.Join(s.parts, ", "), len(args), returning)
	return query, args
}

// buildListQuery appends WHERE, ORDER BY, LIMIT and OFFSET to baseQuery.
func buildListQuery(baseQuery string, conditions []string, args *[]any, orderBy string, offset, limit int) string {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(baseQuery)

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}

	queryBuilder.WriteString(" ORDER BY ")
	queryBuilder.WriteString(orderBy)

	if limit > 0 {
		*args = append(*args, limit)
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", len(*args)))
	}
	if offset > 0 {
		*args = append(*args, offset)
		queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", len(*args)))
	}

	return queryBuilder.String()
}

// nonNil keeps NOT NULL array columns from receiving NULL.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
