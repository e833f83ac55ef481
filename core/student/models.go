package student

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

type Student struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	RegNo        string    `json:"reg_no" db:"reg_no"`
	Email        string    `json:"email" db:"email"`
	Programme    string    `json:"programme" db:"programme"`
	Department   string    `json:"department" db:"department"`
	Level        int       `json:"level" db:"level"`
	EnrolledYear int       `json:"enrolled_year" db:"enrolled_year"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// UpdateStudent defines what profile information may be modified.
type UpdateStudent struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate, orig Student) error {
	name := core.CleanString(us.Name)
	if name != "" {
		us.Name = name
	} else {
		us.Name = orig.Name
	}

	email := core.CleanString(us.Email, true /* lower */)
	if email != "" {
		us.Email = email
	} else {
		us.Email = orig.Email
	}

	return validate.Struct(us)
}
