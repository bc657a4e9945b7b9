package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/najahtutors/backend/core/subject"
)

type dbSubject struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Board       string    `db:"board"`
	ClassName   string    `db:"class_name"`
	Price       float64   `db:"price"`
	Description string    `db:"description"`
	Duration    string    `db:"duration"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (row dbSubject) toSubject() subject.Subject {
	return subject.Subject{
		ID:          row.ID,
		Name:        row.Name,
		Board:       row.Board,
		ClassName:   row.ClassName,
		Price:       row.Price,
		Description: row.Description,
		Duration:    row.Duration,
		IsActive:    row.IsActive,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func fromSubject(sub subject.Subject) dbSubject {
	return dbSubject{
		ID:          sub.ID,
		Name:        sub.Name,
		Board:       sub.Board,
		ClassName:   sub.ClassName,
		Price:       sub.Price,
		Description: sub.Description,
		Duration:    sub.Duration,
		IsActive:    sub.IsActive,
		CreatedAt:   sub.CreatedAt,
		UpdatedAt:   sub.UpdatedAt,
	}
}

type subjectRepository struct {
	db *sqlx.DB
}

var _ subject.Repository = (*subjectRepository)(nil)

func NewSubjectRepository(db *sqlx.DB) *subjectRepository {
	return &subjectRepository{db: db}
}

func (repo *subjectRepository) CreateSubject(sub subject.Subject) (subject.Subject, error) {
	_, err := repo.db.NamedExec(
		`INSERT INTO subject (id, name, board, class_name, price, description, duration,
			is_active, created_at, updated_at)
		VALUES (:id, :name, :board, :class_name, :price, :description, :duration,
			:is_active, :created_at, :updated_at)`,
		fromSubject(sub),
	)
	if err != nil {
		return subject.Subject{}, errors.Wrap(err, "creating subject")
	}
	return sub, nil
}

func (repo *subjectRepository) QueryAllSubjects() ([]subject.Subject, error) {
	var rows []dbSubject
	if err := repo.db.Select(&rows, `SELECT * FROM subject ORDER BY created_at DESC`); err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}
	return toSubjects(rows), nil
}

func (repo *subjectRepository) FilterSubjects(filter subject.QueryFilter) ([]subject.Subject, error) {
	var rows []dbSubject
	err := repo.db.Select(&rows,
		`SELECT * FROM subject
		WHERE is_active
			AND ($1 = '' OR board = $1)
			AND ($2 = '' OR class_name = $2)
		ORDER BY created_at DESC`,
		filter.Board, filter.ClassName,
	)
	if err != nil {
		return nil, errors.Wrap(err, "filtering subjects")
	}
	return toSubjects(rows), nil
}

func (repo *subjectRepository) GetSubjectByID(id string) (subject.Subject, error) {
	var row dbSubject
	if err := repo.db.Get(&row, `SELECT * FROM subject WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return subject.Subject{}, subject.ErrNotFound
		}
		return subject.Subject{}, errors.Wrap(err, "getting subject")
	}
	return row.toSubject(), nil
}

func (repo *subjectRepository) UpdateSubject(sub subject.Subject) (subject.Subject, error) {
	res, err := repo.db.NamedExec(
		`UPDATE subject SET name = :name, board = :board, class_name = :class_name,
			price = :price, description = :description, duration = :duration,
			is_active = :is_active, updated_at = :updated_at
		WHERE id = :id`,
		fromSubject(sub),
	)
	if err != nil {
		return subject.Subject{}, errors.Wrap(err, "updating subject")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return subject.Subject{}, subject.ErrNotFound
	}
	return sub, nil
}

func (repo *subjectRepository) DeleteSubjectsByID(ids ...string) error {
	if _, err := repo.db.Exec(`DELETE FROM subject WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		return errors.Wrap(err, "deleting subjects")
	}
	return nil
}

func toSubjects(rows []dbSubject) []subject.Subject {
	subjects := make([]subject.Subject, 0, len(rows))
	for _, row := range rows {
		subjects = append(subjects, row.toSubject())
	}
	return subjects
}
