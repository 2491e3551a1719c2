package mocks

import (
	"context"

	dom "usersvc/internal/domain/user"

	"github.com/stretchr/testify/mock"
)

var _ dom.Repository = (*Repository)(nil)

type Repository struct {
	mock.Mock
}

func (m *Repository) Create(ctx context.Context, row dom.NewRow) (dom.Row, error) {
	ret := m.Called(ctx, row)

	return ret.Get(0).(dom.Row), ret.Error(1)
}

func (m *Repository) FindOne(ctx context.Context, id int64) (dom.Row, bool, error) {
	ret := m.Called(ctx, id)

	return ret.Get(0).(dom.Row), ret.Bool(1), ret.Error(2)
}

func (m *Repository) FindMany(ctx context.Context, skip, take int) ([]dom.Row, error) {
	ret := m.Called(ctx, skip, take)

	var rows []dom.Row
	if r := ret.Get(0); r != nil {
		rows = r.([]dom.Row)
	}
	return rows, ret.Error(1)
}

func (m *Repository) Update(ctx context.Context, id int64, patch dom.Patch) (dom.Row, bool, error) {
	ret := m.Called(ctx, id, patch)

	return ret.Get(0).(dom.Row), ret.Bool(1), ret.Error(2)
}

func (m *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	ret := m.Called(ctx, id)

	return ret.Bool(0), ret.Error(1)
}
