package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"training-center/internal/model"
)

// TrainerFilter narrows a trainer listing. Zero values are ignored.
type TrainerFilter struct {
	Keyword          string
	Email            string
	Specialty        string
	LastName         string
	FirstName        string
	ClassRoomID      *int64
	MaxActiveCourses *int
}

type TrainerRepository interface {
	Create(ctx context.Context, trainer *model.Trainer) (int64, error)
	FindByID(ctx context.Context, id int64) (*model.Trainer, error)
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	Update(ctx context.Context, trainer *model.Trainer) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter TrainerFilter, page model.PageRequest) (*model.Page[model.Trainer], error)
}

const trainerSelect = `
	SELECT * FROM (
		SELECT
			t.id, t.last_name, t.first_name, t.email, t.specialty, t.classroom_id,
			t.created_at, t.updated_at,
			(SELECT COUNT(*) FROM courses c
			  WHERE c.trainer_id = t.id AND c.status IN ('PLANNED', 'ACTIVE')) AS active_courses
		FROM trainers t
	) AS trainer_view`

var trainerSorts = sortSpec{
	columns: map[string]string{
		"id":            "id",
		"lastName":      "last_name",
		"firstName":     "first_name",
		"email":         "email",
		"specialty":     "specialty",
		"activeCourses": "active_courses",
		"createdAt":     "created_at",
	},
	fallback: "lastName",
}

type postgresTrainerRepository struct {
	db *sqlx.DB
}

func NewPostgresTrainerRepository(db *sqlx.DB) TrainerRepository {
	return &postgresTrainerRepository{db: db}
}

func (r *postgresTrainerRepository) Create(ctx context.Context, trainer *model.Trainer) (int64, error) {
	query := `
		INSERT INTO trainers (last_name, first_name, email, specialty, classroom_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var newID int64
	err := r.db.QueryRowxContext(ctx, query,
		trainer.LastName, trainer.FirstName, trainer.Email, trainer.Specialty,
		trainer.ClassRoomID, trainer.CreatedAt, trainer.UpdatedAt,
	).Scan(&newID)
	if err != nil {
		return 0, translate(err)
	}

	return newID, nil
}

func (r *postgresTrainerRepository) FindByID(ctx context.Context, id int64) (*model.Trainer, error) {
	var trainer model.Trainer
	err := r.db.GetContext(ctx, &trainer, trainerSelect+` WHERE id = $1`, id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &trainer, nil
}

// EmailExists reports whether another trainer already uses email. Pass
// excludeID 0 when creating.
func (r *postgresTrainerRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM trainers WHERE email = $1 AND id <> $2)`
	err := r.db.GetContext(ctx, &exists, query, email, excludeID)
	return exists, err
}

func (r *postgresTrainerRepository) Update(ctx context.Context, trainer *model.Trainer) error {
	query := `
		UPDATE trainers
		SET last_name = $1, first_name = $2, email = $3, specialty = $4, classroom_id = $5, updated_at = $6
		WHERE id = $7
	`
	res, err := r.db.ExecContext(ctx, query,
		trainer.LastName, trainer.FirstName, trainer.Email, trainer.Specialty,
		trainer.ClassRoomID, trainer.UpdatedAt, trainer.ID,
	)
	if err != nil {
		return translate(err)
	}
	return expectAffected(res)
}

func (r *postgresTrainerRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM trainers WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	return expectAffected(res)
}

func (r *postgresTrainerRepository) List(ctx context.Context, filter TrainerFilter, page model.PageRequest) (*model.Page[model.Trainer], error) {
	var cond conditions
	if filter.Keyword != "" {
		cond.add(`(first_name ILIKE $%[1]d OR last_name ILIKE $%[1]d OR email ILIKE $%[1]d OR specialty ILIKE $%[1]d)`,
			containsPattern(filter.Keyword))
	}
	if filter.Email != "" {
		cond.add(`LOWER(email) = LOWER($%d)`, filter.Email)
	}
	if filter.Specialty != "" {
		cond.add(`LOWER(specialty) = LOWER($%d)`, filter.Specialty)
	}
	if filter.LastName != "" {
		cond.add(`LOWER(last_name) = LOWER($%d)`, filter.LastName)
	}
	if filter.FirstName != "" {
		cond.add(`LOWER(first_name) = LOWER($%d)`, filter.FirstName)
	}
	if filter.ClassRoomID != nil {
		cond.add(`classroom_id = $%d`, *filter.ClassRoomID)
	}
	if filter.MaxActiveCourses != nil {
		cond.add(`active_courses <= $%d`, *filter.MaxActiveCourses)
	}

	return selectPage[model.Trainer](ctx, r.db, trainerSelect, cond, page, trainerSorts)
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
