package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/najahtutors/backend/core/enrollment"
)

type dbEnrollment struct {
	ID        string         `db:"id"`
	StudentID string         `db:"student_id"`
	ClassID   sql.NullString `db:"class_id"`
	Source    string         `db:"source"`
	CreatedAt time.Time      `db:"created_at"`
}

func (row dbEnrollment) toEnrollment() enrollment.Enrollment {
	return enrollment.Enrollment{
		ID:        row.ID,
		StudentID: row.StudentID,
		ClassID:   row.ClassID.String,
		Source:    row.Source,
		CreatedAt: row.CreatedAt,
	}
}

func fromEnrollment(enr enrollment.Enrollment) dbEnrollment {
	row := dbEnrollment{
		ID:        enr.ID,
		StudentID: enr.StudentID,
		Source:    enr.Source,
		CreatedAt: enr.CreatedAt,
	}
	if enr.ClassID != "" {
		row.ClassID = sql.NullString{String: enr.ClassID, Valid: true}
	}
	return row
}

type enrollmentRepository struct {
	db *sqlx.DB
}

var _ enrollment.Repository = (*enrollmentRepository)(nil)

func NewEnrollmentRepository(db *sqlx.DB) *enrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (repo *enrollmentRepository) CreateEnrollment(enr enrollment.Enrollment) (enrollment.Enrollment, error) {
	_, err := repo.db.NamedExec(
		`INSERT INTO enrollment (id, student_id, class_id, source, created_at)
		VALUES (:id, :student_id, :class_id, :source, :created_at)`,
		fromEnrollment(enr),
	)
	if err != nil {
		return enrollment.Enrollment{}, errors.Wrap(err, "creating enrollment")
	}
	return enr, nil
}

func (repo *enrollmentRepository) QueryAllEnrollments() ([]enrollment.Enrollment, error) {
	var rows []dbEnrollment
	if err := repo.db.Select(&rows, `SELECT * FROM enrollment ORDER BY created_at DESC`); err != nil {
		return nil, errors.Wrap(err, "querying enrollments")
	}
	enrollments := make([]enrollment.Enrollment, 0, len(rows))
	for _, row := range rows {
		enrollments = append(enrollments, row.toEnrollment())
	}
	return enrollments, nil
}

func (repo *enrollmentRepository) GetEnrollmentByID(id string) (enrollment.Enrollment, error) {
	var row dbEnrollment
	if err := repo.db.Get(&row, `SELECT * FROM enrollment WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return enrollment.Enrollment{}, enrollment.ErrNotFound
		}
		return enrollment.Enrollment{}, errors.Wrap(err, "getting enrollment")
	}
	return row.toEnrollment(), nil
}

func (repo *enrollmentRepository) DeleteEnrollmentsByID(ids ...string) error {
	if _, err := repo.db.Exec(`DELETE FROM enrollment WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		return errors.Wrap(err, "deleting enrollments")
	}
	return nil
}
