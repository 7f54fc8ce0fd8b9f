package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"training-center/internal/model"
)

type ClassRoomFilter struct {
	Keyword         string
	MinRemaining    *int
	Empty           bool
	WithoutTrainers bool
}

type ClassRoomRepository interface {
	Create(ctx context.Context, room *model.ClassRoom) (int64, error)
	FindByID(ctx context.Context, id int64) (*model.ClassRoom, error)
	RoomNumberExists(ctx context.Context, roomNumber string, excludeID int64) (bool, error)
	Update(ctx context.Context, room *model.ClassRoom) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter ClassRoomFilter, page model.PageRequest) (*model.Page[model.ClassRoom], error)
}

// Occupancy is derived from the students assigned to the room.
const classRoomSelect = `
	SELECT * FROM (
		SELECT
			r.id, r.name, r.room_number, r.max_capacity, r.created_at, r.updated_at,
			(SELECT COUNT(*) FROM students s WHERE s.classroom_id = r.id) AS current_capacity,
			(SELECT COUNT(*) FROM trainers t WHERE t.classroom_id = r.id) AS trainer_count
		FROM classrooms r
	) AS classroom_view`

var classRoomSorts = sortSpec{
	columns: map[string]string{
		"id":              "id",
		"name":            "name",
		"roomNumber":      "room_number",
		"maxCapacity":     "max_capacity",
		"currentCapacity": "current_capacity",
	},
	fallback: "roomNumber",
}

type postgresClassRoomRepository struct {
	db *sqlx.DB
}

func NewPostgresClassRoomRepository(db *sqlx.DB) ClassRoomRepository {
	return &postgresClassRoomRepository{db: db}
}

func (r *postgresClassRoomRepository) Create(ctx context.Context, room *model.ClassRoom) (int64, error) {
	query := `
		INSERT INTO classrooms (name, room_number, max_capacity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var newID int64
	err := r.db.QueryRowxContext(ctx, query,
		room.Name, room.RoomNumber, room.MaxCapacity, room.CreatedAt, room.UpdatedAt,
	).Scan(&newID)
	if err != nil {
		return 0, translate(err)
	}

	return newID, nil
}

func (r *postgresClassRoomRepository) FindByID(ctx context.Context, id int64) (*model.ClassRoom, error) {
	var room model.ClassRoom
	err := r.db.GetContext(ctx, &room, classRoomSelect+` WHERE id = $1`, id)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &room, nil
}

func (r *postgresClassRoomRepository) RoomNumberExists(ctx context.Context, roomNumber string, excludeID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM classrooms WHERE room_number = $1 AND id <> $2)`
	err := r.db.GetContext(ctx, &exists, query, roomNumber, excludeID)
	return exists, err
}

func (r *postgresClassRoomRepository) Update(ctx context.Context, room *model.ClassRoom) error {
	query := `
		UPDATE classrooms
		SET name = $1, room_number = $2, max_capacity = $3, updated_at = $4
		WHERE id = $5
	`
	res, err := r.db.ExecContext(ctx, query, room.Name, room.RoomNumber, room.MaxCapacity, room.UpdatedAt, room.ID)
	if err != nil {
		return translate(err)
	}
	return expectAffected(res)
}

func (r *postgresClassRoomRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM classrooms WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	return expectAffected(res)
}

func (r *postgresClassRoomRepository) List(ctx context.Context, filter ClassRoomFilter, page model.PageRequest) (*model.Page[model.ClassRoom], error) {
	var cond conditions
	if filter.Keyword != "" {
		cond.add(`(name ILIKE $%[1]d OR room_number ILIKE $%[1]d)`, containsPattern(filter.Keyword))
	}
	if filter.MinRemaining != nil {
		cond.add(`max_capacity - current_capacity >= $%d`, *filter.MinRemaining)
	}
	if filter.Empty {
		cond.add(`current_capacity = 0`)
	}
	if filter.WithoutTrainers {
		cond.add(`trainer_count = 0`)
	}

	return selectPage[model.ClassRoom](ctx, r.db, classRoomSelect, cond, page, classRoomSorts)
}
