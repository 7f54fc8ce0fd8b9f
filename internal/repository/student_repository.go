package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"training-center/internal/model"
)

type StudentFilter struct {
	Keyword     string
	Level       string
	ClassRoomID *int64
	CourseID    *int64
}

type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) (int64, error)
	FindByID(ctx context.Context, id int64) (*model.Student, error)
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	Update(ctx context.Context, student *model.Student) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter StudentFilter, page model.PageRequest) (*model.Page[model.Student], error)
}

const studentSelect = `
	SELECT id, last_name, first_name, email, level, course_id, classroom_id, registration_date, updated_at
	FROM students`

var studentSorts = sortSpec{
	columns: map[string]string{
		"id":               "id",
		"lastName":         "last_name",
		"firstName":        "first_name",
		"email":            "email",
		"level":            "level",
		"registrationDate": "registration_date",
	},
	fallback: "lastName",
}

type postgresStudentRepository struct {
	db *sqlx.DB
}

func NewPostgresStudentRepository(db *sqlx.DB) StudentRepository {
	return &postgresStudentRepository{db: db}
}

func (r *postgresStudentRepository) Create(ctx context.Context, student *model.Student) (int64, error) {
	query := `
		INSERT INTO students (last_name, first_name, email, level, course_id, classroom_id, registration_date, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	var newID int64
	err := r.db.QueryRowxContext(ctx, query,
		student.LastName, student.FirstName, student.Email, student.Level,
		student.CourseID, student.ClassRoomID, student.RegistrationDate, student.UpdatedAt,
	).Scan(&newID)
	if err != nil {
		return 0, translate(err)
	}

	return newID, nil
}

func (r *postgresStudentRepository) FindByID(ctx context.Context, id int64) (*model.Student, error) {
	var student model.Student
	err := r.db.GetContext(ctx, &student, studentSelect+` WHERE id = $1`, id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &student, nil
}

func (r *postgresStudentRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM students WHERE email = $1 AND id <> $2)`
	err := r.db.GetContext(ctx, &exists, query, email, excludeID)
	return exists, err
}

func (r *postgresStudentRepository) Update(ctx context.Context, student *model.Student) error {
	query := `
		UPDATE students
		SET last_name = $1, first_name = $2, email = $3, level = $4, course_id = $5, classroom_id = $6, updated_at = $7
		WHERE id = $8
	`
	res, err := r.db.ExecContext(ctx, query,
		student.LastName, student.FirstName, student.Email, student.Level,
		student.CourseID, student.ClassRoomID, student.UpdatedAt, student.ID,
	)
	if err != nil {
		return translate(err)
	}
	return expectAffected(res)
}

func (r *postgresStudentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	return expectAffected(res)
}

func (r *postgresStudentRepository) List(ctx context.Context, filter StudentFilter, page model.PageRequest) (*model.Page[model.Student], error) {
	var cond conditions
	if filter.Keyword != "" {
		cond.add(`(first_name ILIKE $%[1]d OR last_name ILIKE $%[1]d OR email ILIKE $%[1]d OR level ILIKE $%[1]d)`,
			containsPattern(filter.Keyword))
	}
	if filter.Level != "" {
		cond.add(`LOWER(level) = LOWER($%d)`, filter.Level)
	}
	if filter.ClassRoomID != nil {
		cond.add(`classroom_id = $%d`, *filter.ClassRoomID)
	}
	if filter.CourseID != nil {
		cond.add(`course_id = $%d`, *filter.CourseID)
	}

	return selectPage[model.Student](ctx, r.db, studentSelect, cond, page, studentSorts)
}
