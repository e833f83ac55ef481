package student

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("student not found")

type (
	Repository interface {
		GetStudent(ctx context.Context) (Student, error)
		UpdateStudent(ctx context.Context, st Student) (Student, error)
	}

	// Service serves the signed-in student's own profile.
	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Get(ctx context.Context) (Student, error) {
	return svc.repo.GetStudent(ctx)
}

func (svc *Service) Update(ctx context.Context, us UpdateStudent) (Student, error) {
	orig, err := svc.repo.GetStudent(ctx)
	if err != nil {
		return Student{}, err
	}
	orig.Name = us.Name
	orig.Email = us.Email
	orig.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateStudent(ctx, orig)
}
