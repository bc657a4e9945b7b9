package subject

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// errors
	ErrNotFound = errors.New("subject not found")
)

type (
	Repository interface {
		CreateSubject(sub Subject) (Subject, error)
		QueryAllSubjects() ([]Subject, error)
		// FilterSubjects returns active subjects matching the filter.
		FilterSubjects(filter QueryFilter) ([]Subject, error)
		GetSubjectByID(id string) (Subject, error)
		UpdateSubject(sub Subject) (Subject, error)
		DeleteSubjectsByID(ids ...string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ns NewSubject) (Subject, error) {
	now := time.Now().UTC()
	sub := Subject{
		ID:          uuid.New().String(),
		Name:        ns.Name,
		Board:       ns.Board,
		ClassName:   ns.ClassName,
		Price:       ns.Price,
		Description: ns.Description,
		Duration:    ns.Duration,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateSubject(sub)
}

func (svc *Service) QueryAll() ([]Subject, error) {
	return svc.repo.QueryAllSubjects()
}

// Filter returns the browsable catalog: deactivated subjects are excluded.
func (svc *Service) Filter(filter QueryFilter) ([]Subject, error) {
	return svc.repo.FilterSubjects(filter)
}

func (svc *Service) GetByID(id string) (Subject, error) {
	return svc.repo.GetSubjectByID(id)
}

func (svc *Service) Update(id string, us UpdateSubject) (Subject, error) {
	sub, err := svc.repo.GetSubjectByID(id)
	if err != nil {
		return Subject{}, err
	}
	if us.Name != "" {
		sub.Name = us.Name
	}
	if us.Board != "" {
		sub.Board = us.Board
	}
	if us.ClassName != "" {
		sub.ClassName = us.ClassName
	}
	if us.Price != nil {
		sub.Price = *us.Price
	}
	if us.Description != "" {
		sub.Description = us.Description
	}
	if us.Duration != "" {
		sub.Duration = us.Duration
	}
	if us.IsActive != nil {
		sub.IsActive = *us.IsActive
	}
	sub.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateSubject(sub)
}

func (svc *Service) Delete(ids ...string) error {
	return svc.repo.DeleteSubjectsByID(ids...)
}
