package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/najahtutors/backend/core/liveclass"
)

type dbLiveClass struct {
	ID                 string         `db:"id"`
	Title              string         `db:"title"`
	Subject            string         `db:"subject"`
	Board              string         `db:"board"`
	ClassName          string         `db:"class_name"`
	ScheduledAt        time.Time      `db:"scheduled_at"`
	DurationMins       int            `db:"duration_mins"`
	TimeSlot           string         `db:"time_slot"`
	Days               pq.StringArray `db:"days"`
	MeetingLink        string         `db:"meeting_link"`
	MaxStudents        int            `db:"max_students"`
	Status             string         `db:"status"`
	CancellationReason string         `db:"cancellation_reason"`
	EnrolledStudentIDs pq.StringArray `db:"enrolled_student_ids"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

func (row dbLiveClass) toLiveClass() liveclass.LiveClass {
	return liveclass.LiveClass{
		ID:                 row.ID,
		Title:              row.Title,
		Subject:            row.Subject,
		Board:              row.Board,
		ClassName:          row.ClassName,
		ScheduledAt:        row.ScheduledAt,
		DurationMins:       row.DurationMins,
		TimeSlot:           row.TimeSlot,
		Days:               row.Days,
		MeetingLink:        row.MeetingLink,
		MaxStudents:        row.MaxStudents,
		Status:             liveclass.Status(row.Status),
		CancellationReason: row.CancellationReason,
		EnrolledStudentIDs: row.EnrolledStudentIDs,
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
}

func fromLiveClass(cls liveclass.LiveClass) dbLiveClass {
	days := cls.Days
	if days == nil {
		days = []string{}
	}
	enrolled := cls.EnrolledStudentIDs
	if enrolled == nil {
		enrolled = []string{}
	}
	return dbLiveClass{
		ID:                 cls.ID,
		Title:              cls.Title,
		Subject:            cls.Subject,
		Board:              cls.Board,
		ClassName:          cls.ClassName,
		ScheduledAt:        cls.ScheduledAt,
		DurationMins:       cls.DurationMins,
		TimeSlot:           cls.TimeSlot,
		Days:               pq.StringArray(days),
		MeetingLink:        cls.MeetingLink,
		MaxStudents:        cls.MaxStudents,
		Status:             string(cls.Status),
		CancellationReason: cls.CancellationReason,
		EnrolledStudentIDs: pq.StringArray(enrolled),
		CreatedAt:          cls.CreatedAt,
		UpdatedAt:          cls.UpdatedAt,
	}
}

type liveClassRepository struct {
	db *sqlx.DB
}

var _ liveclass.Repository = (*liveClassRepository)(nil)

func NewLiveClassRepository(db *sqlx.DB) *liveClassRepository {
	return &liveClassRepository{db: db}
}

func (repo *liveClassRepository) CreateLiveClass(cls liveclass.LiveClass) (liveclass.LiveClass, error) {
	_, err := repo.db.NamedExec(
		`INSERT INTO live_class (id, title, subject, board, class_name, scheduled_at, duration_mins,
			time_slot, days, meeting_link, max_students, status, cancellation_reason,
			enrolled_student_ids, created_at, updated_at)
		VALUES (:id, :title, :subject, :board, :class_name, :scheduled_at, :duration_mins,
			:time_slot, :days, :meeting_link, :max_students, :status, :cancellation_reason,
			:enrolled_student_ids, :created_at, :updated_at)`,
		fromLiveClass(cls),
	)
	if err != nil {
		return liveclass.LiveClass{}, errors.Wrap(err, "creating live class")
	}
	return cls, nil
}

func (repo *liveClassRepository) QueryAllLiveClasses() ([]liveclass.LiveClass, error) {
	var rows []dbLiveClass
	if err := repo.db.Select(&rows, `SELECT * FROM live_class ORDER BY scheduled_at DESC`); err != nil {
		return nil, errors.Wrap(err, "querying live classes")
	}
	return toLiveClasses(rows), nil
}

func (repo *liveClassRepository) FilterLiveClasses(filter liveclass.QueryFilter) ([]liveclass.LiveClass, error) {
	if filter.Status == "" {
		return repo.QueryAllLiveClasses()
	}
	var rows []dbLiveClass
	err := repo.db.Select(&rows,
		`SELECT * FROM live_class WHERE status = $1 ORDER BY scheduled_at DESC`,
		string(filter.Status),
	)
	if err != nil {
		return nil, errors.Wrap(err, "filtering live classes")
	}
	return toLiveClasses(rows), nil
}

func (repo *liveClassRepository) GetLiveClassByID(id string) (liveclass.LiveClass, error) {
	var row dbLiveClass
	if err := repo.db.Get(&row, `SELECT * FROM live_class WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return liveclass.LiveClass{}, liveclass.ErrNotFound
		}
		return liveclass.LiveClass{}, errors.Wrap(err, "getting live class")
	}
	return row.toLiveClass(), nil
}

func (repo *liveClassRepository) UpdateLiveClass(cls liveclass.LiveClass) (liveclass.LiveClass, error) {
	res, err := repo.db.NamedExec(
		`UPDATE live_class SET title = :title, subject = :subject, board = :board,
			class_name = :class_name, scheduled_at = :scheduled_at, duration_mins = :duration_mins,
			time_slot = :time_slot, days = :days, meeting_link = :meeting_link,
			max_students = :max_students, status = :status, cancellation_reason = :cancellation_reason,
			enrolled_student_ids = :enrolled_student_ids, updated_at = :updated_at
		WHERE id = :id`,
		fromLiveClass(cls),
	)
	if err != nil {
		return liveclass.LiveClass{}, errors.Wrap(err, "updating live class")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return liveclass.LiveClass{}, liveclass.ErrNotFound
	}
	return cls, nil
}

func (repo *liveClassRepository) DeleteLiveClassesByID(ids ...string) error {
	if _, err := repo.db.Exec(`DELETE FROM live_class WHERE id = ANY($1)`, pq.Array(ids)); err != nil {
		return errors.Wrap(err, "deleting live classes")
	}
	return nil
}

func toLiveClasses(rows []dbLiveClass) []liveclass.LiveClass {
	classes := make([]liveclass.LiveClass, 0, len(rows))
	for _, row := range rows {
		classes = append(classes, row.toLiveClass())
	}
	return classes
}
