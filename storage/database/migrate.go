package database

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS student (
		id uuid PRIMARY KEY,
		name text NOT NULL,
		email text NOT NULL UNIQUE,
		phone text NOT NULL DEFAULT '',
		board text NOT NULL DEFAULT '',
		class_name text NOT NULL DEFAULT '',
		push_subscription text NOT NULL DEFAULT '',
		email_opt_in boolean,
		whatsapp_opt_in boolean,
		push_opt_in boolean,
		is_active boolean NOT NULL DEFAULT true,
		created_at timestamptz NOT NULL,
		updated_at timestamptz NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS live_class (
		id uuid PRIMARY KEY,
		title text NOT NULL,
		subject text NOT NULL,
		board text NOT NULL DEFAULT '',
		class_name text NOT NULL DEFAULT '',
		scheduled_at timestamptz NOT NULL,
		duration_mins int NOT NULL DEFAULT 60,
		time_slot text NOT NULL DEFAULT '',
		days text[] NOT NULL DEFAULT '{}',
		meeting_link text NOT NULL DEFAULT '',
		max_students int NOT NULL DEFAULT 50,
		status text NOT NULL DEFAULT 'scheduled',
		cancellation_reason text NOT NULL DEFAULT '',
		enrolled_student_ids text[] NOT NULL DEFAULT '{}',
		created_at timestamptz NOT NULL,
		updated_at timestamptz NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS enrollment (
		id uuid PRIMARY KEY,
		student_id uuid NOT NULL REFERENCES student (id) ON DELETE CASCADE,
		class_id uuid,
		source text NOT NULL,
		created_at timestamptz NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS subject (
		id uuid PRIMARY KEY,
		name text NOT NULL,
		board text NOT NULL,
		class_name text NOT NULL,
		price numeric NOT NULL DEFAULT 0,
		description text NOT NULL DEFAULT '',
		duration text NOT NULL DEFAULT '',
		is_active boolean NOT NULL DEFAULT true,
		created_at timestamptz NOT NULL,
		updated_at timestamptz NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS live_class_status_idx ON live_class (status)`,
	`CREATE INDEX IF NOT EXISTS subject_catalog_idx ON subject (board, class_name)`,
	`CREATE INDEX IF NOT EXISTS enrollment_student_idx ON enrollment (student_id)`,
}

// Migrate applies the schema; statements are idempotent.
func Migrate(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return errors.Wrap(err, "applying schema")
		}
	}
	return nil
}
