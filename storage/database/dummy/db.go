// Package dummy provides in-memory repositories for tests and local development.
package dummy

import (
	"sync"

	"github.com/najahtutors/backend/core/enrollment"
	"github.com/najahtutors/backend/core/liveclass"
	"github.com/najahtutors/backend/core/student"
	"github.com/najahtutors/backend/core/subject"
)

type DB struct {
	mu          sync.Mutex
	students    map[string]student.Student
	classes     map[string]liveclass.LiveClass
	enrollments map[string]enrollment.Enrollment
	subjects    map[string]subject.Subject
}

func Open() *DB {
	return &DB{
		students:    make(map[string]student.Student),
		classes:     make(map[string]liveclass.LiveClass),
		enrollments: make(map[string]enrollment.Enrollment),
		subjects:    make(map[string]subject.Subject),
	}
}
