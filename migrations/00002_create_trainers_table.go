package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateTrainersTable, downCreateTrainersTable)
}

func upCreateTrainersTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE trainers (
	  id BIGSERIAL PRIMARY KEY,
	  last_name VARCHAR(50) NOT NULL,
	  first_name VARCHAR(50) NOT NULL,
	  email VARCHAR(100) NOT NULL,
	  specialty VARCHAR(50) NOT NULL,
	  classroom_id BIGINT,
	  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  CONSTRAINT trainers_email_key UNIQUE (email),
	  CONSTRAINT trainers_classroom_id_fkey FOREIGN KEY (classroom_id)
	    REFERENCES classrooms(id) ON DELETE SET NULL
	);

	CREATE INDEX idx_trainers_classroom_id ON trainers(classroom_id);
	CREATE INDEX idx_trainers_names ON trainers(last_name, first_name);
	`

	_, err := tx.ExecContext(ctx, query)
	return err
}

func downCreateTrainersTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS trainers;`)
	return err
}
