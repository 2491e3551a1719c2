package mocks

import (
	"context"

	appuser "usersvc/internal/app/user"

	"github.com/stretchr/testify/mock"
)

var _ appuser.Service = (*Service)(nil)

type Service struct {
	mock.Mock
}

func (m *Service) Create(ctx context.Context, input appuser.CreateUserInput) (*appuser.User, error) {
	ret := m.Called(ctx, input)

	var u *appuser.User
	if r := ret.Get(0); r != nil {
		u = r.(*appuser.User)
	}
	return u, ret.Error(1)
}

func (m *Service) Get(ctx context.Context, id int64) (*appuser.User, error) {
	ret := m.Called(ctx, id)

	var u *appuser.User
	if r := ret.Get(0); r != nil {
		u = r.(*appuser.User)
	}
	return u, ret.Error(1)
}

func (m *Service) GetAll(ctx context.Context, input appuser.ListUsersInput) ([]appuser.User, error) {
	ret := m.Called(ctx, input)

	var users []appuser.User
	if r := ret.Get(0); r != nil {
		users = r.([]appuser.User)
	}
	return users, ret.Error(1)
}

func (m *Service) Update(ctx context.Context, id int64, input appuser.UpdateUserInput) (*appuser.User, error) {
	ret := m.Called(ctx, id, input)

	var u *appuser.User
	if r := ret.Get(0); r != nil {
		u = r.(*appuser.User)
	}
	return u, ret.Error(1)
}

func (m *Service) Delete(ctx context.Context, id int64) error {
	ret := m.Called(ctx, id)

	return ret.Error(0)
}
