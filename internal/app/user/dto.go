package user

import (
	"math"
	"time"

	dom "usersvc/internal/domain/user"
)

// User is the entity handed to callers of the service.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	LastName  string    `json:"lastName"`
	Rut       string    `json:"rut"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateUserInput struct {
	Name     string
	LastName string
	Rut      string
	Address  string
}

// UpdateUserInput carries a partial update. Nil fields are not touched.
type UpdateUserInput struct {
	Name     *string
	LastName *string
	Rut      *string
	Address  *string
}

// ListUsersInput selects a page of users. Zero values mean the defaults.
type ListUsersInput struct {
	Page  int
	Limit int
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// normalize clamps the page to >= 1 and the limit to [1, MaxLimit],
// substituting the defaults for non-positive values. The page is also capped
// so the offset cannot overflow.
func (in ListUsersInput) normalize() ListUsersInput {
	if in.Page < 1 {
		in.Page = DefaultPage
	}
	if in.Limit < 1 {
		in.Limit = DefaultLimit
	}
	if in.Limit > MaxLimit {
		in.Limit = MaxLimit
	}
	if maxPage := math.MaxInt / in.Limit; in.Page > maxPage {
		in.Page = maxPage
	}
	return in
}

func (in ListUsersInput) skip() int {
	return (in.Page - 1) * in.Limit
}

func (in UpdateUserInput) patch() dom.Patch {
	return dom.Patch{
		Name:     in.Name,
		LastName: in.LastName,
		Rut:      in.Rut,
		Address:  in.Address,
	}
}

func fromRow(r dom.Row) *User {
	return &User{
		ID:        r.ID,
		Name:      r.Name,
		LastName:  r.LastName,
		Rut:       r.Rut,
		Address:   r.Address,
		CreatedAt: r.CreatedAt,
	}
}

func fromRows(list []dom.Row) []User {
	res := make([]User, 0, len(list))
	for _, r := range list {
		res = append(res, *fromRow(r))
	}
	return res
}
