package dummy

import (
	"sort"

	"github.com/najahtutors/backend/core/liveclass"
)

type liveClassRepository struct {
	db *DB
}

var _ liveclass.Repository = (*liveClassRepository)(nil)

func NewLiveClassRepository(db *DB) *liveClassRepository {
	return &liveClassRepository{db: db}
}

func (repo *liveClassRepository) CreateLiveClass(cls liveclass.LiveClass) (liveclass.LiveClass, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	repo.db.classes[cls.ID] = cls
	return cls, nil
}

func (repo *liveClassRepository) QueryAllLiveClasses() ([]liveclass.LiveClass, error) {
	return repo.FilterLiveClasses(liveclass.QueryFilter{})
}

func (repo *liveClassRepository) FilterLiveClasses(filter liveclass.QueryFilter) ([]liveclass.LiveClass, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	classes := make([]liveclass.LiveClass, 0, len(repo.db.classes))
	for _, cls := range repo.db.classes {
		if filter.Status != "" && cls.Status != filter.Status {
			continue
		}
		classes = append(classes, cls)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i].ScheduledAt.After(classes[j].ScheduledAt) })
	return classes, nil
}

func (repo *liveClassRepository) GetLiveClassByID(id string) (liveclass.LiveClass, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	cls, ok := repo.db.classes[id]
	if !ok {
		return liveclass.LiveClass{}, liveclass.ErrNotFound
	}
	return cls, nil
}

func (repo *liveClassRepository) UpdateLiveClass(cls liveclass.LiveClass) (liveclass.LiveClass, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	if _, ok := repo.db.classes[cls.ID]; !ok {
		return liveclass.LiveClass{}, liveclass.ErrNotFound
	}
	repo.db.classes[cls.ID] = cls
	return cls, nil
}

func (repo *liveClassRepository) DeleteLiveClassesByID(ids ...string) error {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	for _, id := range ids {
		delete(repo.db.classes, id)
	}
	return nil
}
