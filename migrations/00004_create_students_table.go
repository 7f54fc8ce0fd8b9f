package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateStudentsTable, downCreateStudentsTable)
}

func upCreateStudentsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE students (
	  id BIGSERIAL PRIMARY KEY,
	  last_name VARCHAR(50) NOT NULL,
	  first_name VARCHAR(50) NOT NULL,
	  email VARCHAR(100) NOT NULL,
	  level VARCHAR(20) NOT NULL,
	  course_id BIGINT,
	  classroom_id BIGINT,
	  registration_date TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  CONSTRAINT students_email_key UNIQUE (email),
	  CONSTRAINT students_course_id_fkey FOREIGN KEY (course_id)
	    REFERENCES courses(id) ON DELETE SET NULL,
	  CONSTRAINT students_classroom_id_fkey FOREIGN KEY (classroom_id)
	    REFERENCES classrooms(id) ON DELETE SET NULL
	);

	CREATE INDEX idx_students_course_id ON students(course_id);
	CREATE INDEX idx_students_classroom_id ON students(classroom_id);
	`

	_, err := tx.ExecContext(ctx, query)
	return err
}

func downCreateStudentsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS students;`)
	return err
}
