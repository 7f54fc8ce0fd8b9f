package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateClassroomsTable, downCreateClassroomsTable)
}

func upCreateClassroomsTable(ctx context.Context, tx *sql.Tx) error {
	query := `
	CREATE TABLE classrooms (
	  id BIGSERIAL PRIMARY KEY,
	  name VARCHAR(50) NOT NULL,
	  room_number VARCHAR(20) NOT NULL,
	  max_capacity INTEGER NOT NULL CHECK (max_capacity > 0),
	  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT now(),
	  CONSTRAINT classrooms_room_number_key UNIQUE (room_number)
	);
	`

	_, err := tx.ExecContext(ctx, query)

	if err != nil {
		return err
	}

	return nil
}

func downCreateClassroomsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS classrooms;`)
	return err
}
