// Package repository persists the training-center entities in PostgreSQL.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"training-center/internal/model"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrForeignKey   = errors.New("foreign key violation")
	ErrInvalidSort  = errors.New("invalid sort property")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Constraint names declared in migrations.
const (
	ConstraintTrainerEmail     = "trainers_email_key"
	ConstraintStudentEmail     = "students_email_key"
	ConstraintRoomNumber       = "classrooms_room_number_key"
	ConstraintTrainerClassRoom = "trainers_classroom_id_fkey"
	ConstraintStudentClassRoom = "students_classroom_id_fkey"
	ConstraintStudentCourse    = "students_course_id_fkey"
	ConstraintCourseTrainer    = "courses_trainer_id_fkey"
)

// ConstraintError reports which constraint a write violated. It unwraps to
// ErrDuplicateKey or ErrForeignKey.
type ConstraintError struct {
	Constraint string
	err        error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%v: %s", e.err, e.Constraint)
}

func (e *ConstraintError) Unwrap() error {
	return e.err
}

// translate maps PostgreSQL constraint violations onto the package errors.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		return &ConstraintError{Constraint: pgErr.ConstraintName, err: ErrDuplicateKey}
	case pgForeignKeyViolation:
		return &ConstraintError{Constraint: pgErr.ConstraintName, err: ErrForeignKey}
	}
	return err
}

// sortSpec maps the JSON property names a client may sort by onto columns.
type sortSpec struct {
	columns  map[string]string
	fallback string
}

func (s sortSpec) orderBy(req model.PageRequest) (string, error) {
	property := req.Sort
	if property == "" {
		property = s.fallback
	}
	column, ok := s.columns[property]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidSort, property)
	}

	direction := "ASC"
	if req.Desc {
		direction = "DESC"
	}
	if column == "id" {
		return "id " + direction, nil
	}
	return fmt.Sprintf("%s %s, id ASC", column, direction), nil
}

// conditions accumulates WHERE predicates. Each %d verb in a predicate
// receives the placeholder number of the matching argument; use %[1]d to
// repeat the first one.
type conditions struct {
	clauses []string
	args    []interface{}
}

func (c *conditions) add(predicate string, args ...interface{}) {
	ids := make([]interface{}, len(args))
	for i := range args {
		ids[i] = len(c.args) + i + 1
	}
	c.clauses = append(c.clauses, fmt.Sprintf(predicate, ids...))
	c.args = append(c.args, args...)
}

func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// containsPattern turns a keyword into an ILIKE pattern matching it
// anywhere, with LIKE metacharacters escaped.
func containsPattern(keyword string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.TrimSpace(keyword))
	return "%" + escaped + "%"
}

// selectPage counts the rows of baseQuery and fetches the requested slice.
func selectPage[T any](ctx context.Context, db *sqlx.DB, baseQuery string, cond conditions, req model.PageRequest, sorts sortSpec) (*model.Page[T], error) {
	req = req.Normalize()
	orderBy, err := sorts.orderBy(req)
	if err != nil {
		return nil, err
	}

	query := baseQuery + cond.where()
	args := cond.args

	countQuery := "SELECT COUNT(*) FROM (" + query + ") AS count_query"
	var totalItems int
	if err := db.GetContext(ctx, &totalItems, countQuery, args...); err != nil {
		return nil, err
	}

	argId := len(args) + 1
	query += fmt.Sprintf(" ORDER BY %s LIMIT $%d OFFSET $%d", orderBy, argId, argId+1)
	args = append(args, req.Size, req.Offset())

	var content []T
	if err := db.SelectContext(ctx, &content, query, args...); err != nil {
		return nil, err
	}

	return model.NewPage(content, req, totalItems), nil
}
