// Package inmemdb is the seeded in-memory data provider backing the portal
// by default. It implements the same repository interfaces the SQL adapters
// do, so the service layer is ready for a real backend without changes.
package inmemdb

import (
	"sync"

	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/course"
	"github.com/trezcool/darasa/core/student"
)

type DB struct {
	mutex sync.RWMutex

	student     *student.Student
	courses     map[string]*course.Course         // by ID
	assignments map[string]*assignment.Assignment // by ID
}

// Open returns an empty in-memory DB. Call Seed to load the mock dataset.
func Open() *DB {
	return &DB{
		courses:     make(map[string]*course.Course),
		assignments: make(map[string]*assignment.Assignment),
	}
}
