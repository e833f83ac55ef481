package inmemdb

import (
	"context"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core/student"
)

type studentRepository struct {
	db *DB
}

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) GetStudent(ctx context.Context) (student.Student, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if repo.db.student == nil {
		return student.Student{}, student.ErrNotFound
	}
	return *repo.db.student, nil
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, st student.Student) (student.Student, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	if repo.db.student == nil || repo.db.student.ID != st.ID {
		return student.Student{}, student.ErrNotFound
	}
	repo.db.student = &st
	return st, nil
}

// SetStudent installs the portal's student record (seed/tests helper).
func (db *DB) SetStudent(st student.Student) student.Student {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if st.ID == "" {
		st.ID = uuid.New().String()
	}
	db.student = &st
	return st
}
