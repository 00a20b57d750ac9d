package user

import (
	errors "github.com/dcampelo/permit-management/internal"
	"github.com/dcampelo/permit-management/internal/core/common/validation"
)

// RegisterUserDTO is the request payload for creating an account.
type RegisterUserDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (dto RegisterUserDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(120)
	v.Field("email", dto.Email).Required().Email().MaxLength(255)
	v.Field("password", dto.Password).Required().MinLength(6)
	v.Field("role", dto.Role).Required().MaxLength(60)
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateUserDTO is a coalescing patch: a nil field means "leave unchanged".
// Pointer fields keep "absent" distinct from "set to empty", so an empty
// string is rejected rather than silently treated as no change.
type UpdateUserDTO struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty"`
}

func (dto UpdateUserDTO) Validate() error {
	if dto.Name == nil && dto.Email == nil && dto.Password == nil && dto.Role == nil {
		return errors.NewValidationError("at least one field must be provided", errors.ErrCodeValidationFailed)
	}

	v := validation.NewValidator()
	if dto.Name != nil {
		v.Field("name", dto.Name).Required().MaxLength(120)
	}
	if dto.Email != nil {
		v.Field("email", dto.Email).Required()
		v.Field("email", *dto.Email).Email().MaxLength(255)
	}
	if dto.Password != nil {
		v.Field("password", dto.Password).Required()
		v.Field("password", *dto.Password).MinLength(6)
	}
	if dto.Role != nil {
		v.Field("role", dto.Role).Required().MaxLength(60)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}
