package user

import appuser "usersvc/internal/app/user"

type CreateUserRequest struct {
	Name     string `json:"name"     validate:"required,max=255"`
	LastName string `json:"lastName" validate:"required,max=255"`
	Rut      string `json:"rut"      validate:"required,max=32"`
	Address  string `json:"address"  validate:"required,max=512"`
}

func (r CreateUserRequest) toInput() appuser.CreateUserInput {
	return appuser.CreateUserInput{
		Name:     r.Name,
		LastName: r.LastName,
		Rut:      r.Rut,
		Address:  r.Address,
	}
}

// UpdateUserRequest fields are optional, but a present field must not be empty.
type UpdateUserRequest struct {
	Name     *string `json:"name"     validate:"omitnil,min=1,max=255"`
	LastName *string `json:"lastName" validate:"omitnil,min=1,max=255"`
	Rut      *string `json:"rut"      validate:"omitnil,min=1,max=32"`
	Address  *string `json:"address"  validate:"omitnil,min=1,max=512"`
}

func (r UpdateUserRequest) toInput() appuser.UpdateUserInput {
	return appuser.UpdateUserInput{
		Name:     r.Name,
		LastName: r.LastName,
		Rut:      r.Rut,
		Address:  r.Address,
	}
}
