package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/najahtutors/backend/core/notification"
	"github.com/najahtutors/backend/core/student"
)

type dbStudent struct {
	ID               string       `db:"id"`
	Name             string       `db:"name"`
	Email            string       `db:"email"`
	Phone            string       `db:"phone"`
	Board            string       `db:"board"`
	ClassName        string       `db:"class_name"`
	PushSubscription string       `db:"push_subscription"`
	EmailOptIn       sql.NullBool `db:"email_opt_in"`
	WhatsAppOptIn    sql.NullBool `db:"whatsapp_opt_in"`
	PushOptIn        sql.NullBool `db:"push_opt_in"`
	IsActive         bool         `db:"is_active"`
	CreatedAt        time.Time    `db:"created_at"`
	UpdatedAt        time.Time    `db:"updated_at"`
}

func (row dbStudent) toStudent() student.Student {
	std := student.Student{
		ID:               row.ID,
		Name:             row.Name,
		Email:            row.Email,
		Phone:            row.Phone,
		Board:            row.Board,
		ClassName:        row.ClassName,
		PushSubscription: row.PushSubscription,
		IsActive:         row.IsActive,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
	if row.EmailOptIn.Valid || row.WhatsAppOptIn.Valid || row.PushOptIn.Valid {
		std.Preferences = &notification.Preferences{
			Email:    nullBoolPtr(row.EmailOptIn),
			WhatsApp: nullBoolPtr(row.WhatsAppOptIn),
			Push:     nullBoolPtr(row.PushOptIn),
		}
	}
	return std
}

func fromStudent(std student.Student) dbStudent {
	row := dbStudent{
		ID:               std.ID,
		Name:             std.Name,
		Email:            std.Email,
		Phone:            std.Phone,
		Board:            std.Board,
		ClassName:        std.ClassName,
		PushSubscription: std.PushSubscription,
		IsActive:         std.IsActive,
		CreatedAt:        std.CreatedAt,
		UpdatedAt:        std.UpdatedAt,
	}
	if prefs := std.Preferences; prefs != nil {
		row.EmailOptIn = ptrNullBool(prefs.Email)
		row.WhatsAppOptIn = ptrNullBool(prefs.WhatsApp)
		row.PushOptIn = ptrNullBool(prefs.Push)
	}
	return row
}

func nullBoolPtr(nb sql.NullBool) *bool {
	if !nb.Valid {
		return nil
	}
	b := nb.Bool
	return &b
}

func ptrNullBool(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil)

func NewStudentRepository(db *sqlx.DB) *studentRepository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) CheckEmailUniqueness(email string, excludedStudents ...student.Student) error {
	excludedIDs := make([]string, 0, len(excludedStudents))
	for _, std := range excludedStudents {
		excludedIDs = append(excludedIDs, std.ID)
	}

	var count int
	err := repo.db.Get(
		&count,
		`SELECT COUNT(*) FROM student WHERE email = $1 AND id != ALL($2)`,
		email, pq.Array(excludedIDs),
	)
	if err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if count > 0 {
		return student.ErrEmailExists
	}
	return nil
}

func (repo *studentRepository) CreateStudent(std student.Student) (student.Student, error) {
	_, err := repo.db.NamedExec(
		`INSERT INTO student (id, name, email, phone, board, class_name, push_subscription,
			email_opt_in, whatsapp_opt_in, push_opt_in, is_active, created_at, updated_at)
		VALUES (:id, :name, :email, :phone, :board, :class_name, :push_subscription,
			:email_opt_in, :whatsapp_opt_in, :push_opt_in, :is_active, :created_at, :updated_at)`,
		fromStudent(std),
	)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "creating student")
	}
	return std, nil
}

func (repo *studentRepository) QueryAllStudents() ([]student.Student, error) {
	var rows []dbStudent
	if err := repo.db.Select(&rows, `SELECT * FROM student ORDER BY created_at DESC`); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return toStudents(rows), nil
}

func (repo *studentRepository) GetStudentByID(id string) (student.Student, error) {
	var row dbStudent
	if err := repo.db.Get(&row, `SELECT * FROM student WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "getting student")
	}
	return row.toStudent(), nil
}

func (repo *studentRepository) GetStudentByEmail(email string) (student.Student, error) {
	var row dbStudent
	if err := repo.db.Get(&row, `SELECT * FROM student WHERE email = $1`, email); err != nil {
		if err == sql.ErrNoRows {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, errors.Wrap(err, "getting student")
	}
	return row.toStudent(), nil
}

func (repo *studentRepository) GetStudentsByID(ids ...string) ([]student.Student, error) {
	var rows []dbStudent
	if err := repo.db.Select(&rows, `SELECT * FROM student WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		return nil, errors.Wrap(err, "querying students")
	}
	return toStudents(rows), nil
}

func (repo *studentRepository) UpdateStudent(std student.Student, isActive *bool) (student.Student, error) {
	if isActive != nil {
		std.IsActive = *isActive
	}
	res, err := repo.db.NamedExec(
		`UPDATE student SET name = :name, email = :email, phone = :phone, board = :board,
			class_name = :class_name, push_subscription = :push_subscription,
			email_opt_in = :email_opt_in, whatsapp_opt_in = :whatsapp_opt_in, push_opt_in = :push_opt_in,
			is_active = :is_active, updated_at = :updated_at
		WHERE id = :id`,
		fromStudent(std),
	)
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return std, nil
}

func (repo *studentRepository) DeleteStudentsByID(ids ...string) error {
	if _, err := repo.db.Exec(`DELETE FROM student WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		return errors.Wrap(err, "deleting students")
	}
	return nil
}

func toStudents(rows []dbStudent) []student.Student {
	students := make([]student.Student, 0, len(rows))
	for _, row := range rows {
		students = append(students, row.toStudent())
	}
	return students
}
