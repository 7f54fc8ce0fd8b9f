package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateCoursesTable, downCreateCoursesTable)
}

func upCreateCoursesTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE courses (
	  id BIGSERIAL PRIMARY KEY,
	  title VARCHAR(100) NOT NULL,
	  level VARCHAR(20) NOT NULL,
	  start_date DATE NOT NULL,
	  end_date DATE NOT NULL,
	  min_capacity INTEGER NOT NULL DEFAULT 0 CHECK (min_capacity >= 0),
	  max_capacity INTEGER NOT NULL CHECK (max_capacity > 0),
	  status VARCHAR(20) NOT NULL DEFAULT 'PLANNED',
	  trainer_id BIGINT,
	  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  CONSTRAINT courses_status_check CHECK (status IN ('PLANNED', 'ACTIVE', 'COMPLETED', 'CANCELLED')),
	  CONSTRAINT courses_dates_check CHECK (start_date <= end_date),
	  CONSTRAINT courses_capacity_check CHECK (min_capacity <= max_capacity),
	  CONSTRAINT courses_trainer_id_fkey FOREIGN KEY (trainer_id)
	    REFERENCES trainers(id) ON DELETE SET NULL
	);

	CREATE INDEX idx_courses_trainer_id ON courses(trainer_id);
	CREATE INDEX idx_courses_dates ON courses(start_date, end_date);
	`

	_, err := tx.ExecContext(ctx, query)
	return err
}

func downCreateCoursesTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS courses;`)
	return err
}
