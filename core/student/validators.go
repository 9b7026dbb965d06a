package student

import "github.com/darasahq/darasa/core"

type (
	NewStudent struct {
		Name    string `json:"name" validate:"required"`
		Batch   string `json:"batch" validate:"required"`
		ClassID string `json:"class_id"`
		Board   string `json:"board" validate:"required"`
		// optional credentials; when both are set a login account is created
		Email    string `json:"email" validate:"omitempty,email"`
		Password string `json:"password" validate:"required_with=Email"`
	}

	UpdateStudent struct {
		Name    string `json:"name" validate:"required"`
		Batch   string `json:"batch" validate:"required"`
		ClassID string `json:"class_id"`
		Board   string `json:"board" validate:"required"`
	}
)

func (ns *NewStudent) Validate() error {
	return core.Validate.Struct(ns)
}

func (us *UpdateStudent) Validate() error {
	return core.Validate.Struct(us)
}
