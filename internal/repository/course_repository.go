package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"training-center/internal/model"
)

// CourseFilter narrows a course listing. OverlapStart and OverlapEnd must be
// set together.
type CourseFilter struct {
	Keyword      string
	OverlapStart *model.Date
	OverlapEnd   *model.Date
	StartsAfter  *model.Date
	TrainerID    *int64
	OpenSeats    bool
}

type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) (int64, error)
	FindByID(ctx context.Context, id int64) (*model.Course, error)
	Update(ctx context.Context, course *model.Course) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter CourseFilter, page model.PageRequest) (*model.Page[model.Course], error)
}

const courseSelect = `
	SELECT * FROM (
		SELECT
			c.id, c.title, c.level, c.start_date, c.end_date, c.min_capacity, c.max_capacity,
			c.status, c.trainer_id, c.created_at, c.updated_at,
			(SELECT COUNT(*) FROM students s WHERE s.course_id = c.id) AS enrolled_count
		FROM courses c
	) AS course_view`

var courseSorts = sortSpec{
	columns: map[string]string{
		"id":            "id",
		"title":         "title",
		"level":         "level",
		"startDate":     "start_date",
		"endDate":       "end_date",
		"maxCapacity":   "max_capacity",
		"status":        "status",
		"enrolledCount": "enrolled_count",
	},
	fallback: "startDate",
}

type postgresCourseRepository struct {
	db *sqlx.DB
}

func NewPostgresCourseRepository(db *sqlx.DB) CourseRepository {
	return &postgresCourseRepository{db: db}
}

func (r *postgresCourseRepository) Create(ctx context.Context, course *model.Course) (int64, error) {
	query := `
		INSERT INTO courses (title, level, start_date, end_date, min_capacity, max_capacity, status, trainer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	var newID int64
	err := r.db.QueryRowxContext(ctx, query,
		course.Title, course.Level, course.StartDate, course.EndDate,
		course.MinCapacity, course.MaxCapacity, course.Status, course.TrainerID,
		course.CreatedAt, course.UpdatedAt,
	).Scan(&newID)
	if err != nil {
		return 0, translate(err)
	}

	return newID, nil
}

func (r *postgresCourseRepository) FindByID(ctx context.Context, id int64) (*model.Course, error) {
	var course model.Course
	err := r.db.GetContext(ctx, &course, courseSelect+` WHERE id = $1`, id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &course, nil
}

func (r *postgresCourseRepository) Update(ctx context.Context, course *model.Course) error {
	query := `
		UPDATE courses
		SET title = $1, level = $2, start_date = $3, end_date = $4, min_capacity = $5,
			max_capacity = $6, status = $7, trainer_id = $8, updated_at = $9
		WHERE id = $10
	`
	res, err := r.db.ExecContext(ctx, query,
		course.Title, course.Level, course.StartDate, course.EndDate, course.MinCapacity,
		course.MaxCapacity, course.Status, course.TrainerID, course.UpdatedAt, course.ID,
	)
	if err != nil {
		return translate(err)
	}
	return expectAffected(res)
}

func (r *postgresCourseRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	return expectAffected(res)
}

func (r *postgresCourseRepository) List(ctx context.Context, filter CourseFilter, page model.PageRequest) (*model.Page[model.Course], error) {
	var cond conditions
	if filter.Keyword != "" {
		cond.add(`(title ILIKE $%[1]d OR level ILIKE $%[1]d)`, containsPattern(filter.Keyword))
	}
	if filter.OverlapStart != nil && filter.OverlapEnd != nil {
		cond.add(`start_date <= $%d AND end_date >= $%d`, *filter.OverlapEnd, *filter.OverlapStart)
	}
	if filter.StartsAfter != nil {
		cond.add(`start_date > $%d`, *filter.StartsAfter)
	}
	if filter.TrainerID != nil {
		cond.add(`trainer_id = $%d`, *filter.TrainerID)
	}
	if filter.OpenSeats {
		cond.add(`enrolled_count < max_capacity`)
	}

	return selectPage[model.Course](ctx, r.db, courseSelect, cond, page, courseSorts)
}
