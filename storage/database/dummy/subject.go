package dummy

import (
	"sort"

	"github.com/najahtutors/backend/core/subject"
)

type subjectRepository struct {
	db *DB
}

var _ subject.Repository = (*subjectRepository)(nil)

func NewSubjectRepository(db *DB) *subjectRepository {
	return &subjectRepository{db: db}
}

func (repo *subjectRepository) CreateSubject(sub subject.Subject) (subject.Subject, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	repo.db.subjects[sub.ID] = sub
	return sub, nil
}

func (repo *subjectRepository) QueryAllSubjects() ([]subject.Subject, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	subjects := make([]subject.Subject, 0, len(repo.db.subjects))
	for _, sub := range repo.db.subjects {
		subjects = append(subjects, sub)
	}
	sortSubjects(subjects)
	return subjects, nil
}

func (repo *subjectRepository) FilterSubjects(filter subject.QueryFilter) ([]subject.Subject, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	subjects := make([]subject.Subject, 0, len(repo.db.subjects))
	for _, sub := range repo.db.subjects {
		if !sub.IsActive {
			continue
		}
		if filter.Board != "" && sub.Board != filter.Board {
			continue
		}
		if filter.ClassName != "" && sub.ClassName != filter.ClassName {
			continue
		}
		subjects = append(subjects, sub)
	}
	sortSubjects(subjects)
	return subjects, nil
}

func (repo *subjectRepository) GetSubjectByID(id string) (subject.Subject, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	sub, ok := repo.db.subjects[id]
	if !ok {
		return subject.Subject{}, subject.ErrNotFound
	}
	return sub, nil
}

func (repo *subjectRepository) UpdateSubject(sub subject.Subject) (subject.Subject, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.subjects[sub.ID]; !ok {
		return subject.Subject{}, subject.ErrNotFound
	}
	repo.db.subjects[sub.ID] = sub
	return sub, nil
}

func (repo *subjectRepository) DeleteSubjectsByID(ids ...string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	for _, id := range ids {
		delete(repo.db.subjects, id)
	}
	return nil
}

func sortSubjects(subjects []subject.Subject) {
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].CreatedAt.After(subjects[j].CreatedAt) })
}
