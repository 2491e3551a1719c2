package user

import (
	"context"
	"encoding/json"
	"time"

	"usersvc/internal/cache"
	"usersvc/internal/db"
	dom "usersvc/internal/domain/user"
	"usersvc/internal/logging"
)

// Service manages users. Every error it returns is either a not-found error
// (IsNotFound) or a storage failure (IsStorageFailure).
type Service interface {
	Create(ctx context.Context, input CreateUserInput) (*User, error)
	Get(ctx context.Context, id int64) (*User, error)
	GetAll(ctx context.Context, input ListUsersInput) ([]User, error)
	Update(ctx context.Context, id int64, input UpdateUserInput) (*User, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo     dom.Repository
	cache    cache.UserCache
	cacheTTL time.Duration
	tx       db.Transactor
	events   Events
	logger   logging.Logger
}

const defaultUserCacheTTL = 5 * time.Minute

type Option func(*service)

// WithCacheTTL overrides how long users stay in the cache.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

func NewService(
	repo dom.Repository,
	cache cache.UserCache,
	tx db.Transactor,
	events Events,
	logger logging.Logger,
	opts ...Option,
) Service {
	s := &service{
		repo:     repo,
		cache:    cache,
		cacheTTL: defaultUserCacheTTL,
		tx:       tx,
		events:   events,
		logger:   logger.With("component", "user_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, input CreateUserInput) (*User, error) {
	row, err := s.repo.Create(ctx, dom.NewRow{
		Name:     input.Name,
		LastName: input.LastName,
		Rut:      input.Rut,
		Address:  input.Address,
	})
	if err != nil {
		s.logger.Error("failed to create user", "error", err)
		return nil, storageFailure(msgCreate, err)
	}

	u := fromRow(row)
	s.cacheUser(ctx, u)

	if err := s.events.UserCreated(ctx, u); err != nil {
		s.logger.Error("failed to publish UserCreated event", "error", err, "id", u.ID)
	}

	return u, nil
}

func (s *service) Get(ctx context.Context, id int64) (*User, error) {
	// 1) Check cache
	if u, ok := s.cachedUser(ctx, id); ok {
		return u, nil
	}

	// 2) Fallback to DB
	row, found, err := s.repo.FindOne(ctx, id)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "id", id)
		return nil, storageFailure(msgGet, err)
	}
	if !found {
		return nil, NewUserNotFoundError()
	}

	u := fromRow(row)

	// 3) Fill the cache (best-effort). A concurrent Update or Delete wins.
	s.fillUser(ctx, u)

	return u, nil
}

func (s *service) GetAll(ctx context.Context, input ListUsersInput) ([]User, error) {
	page := input.normalize()

	rows, err := s.repo.FindMany(ctx, page.skip(), page.Limit)
	if err != nil {
		s.logger.Error("failed to list users", "error", err, "page", page.Page, "limit", page.Limit)
		return nil, storageFailure(msgGetAll, err)
	}

	return fromRows(rows), nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateUserInput) (*User, error) {
	var (
		row   dom.Row
		found bool
	)

	// Gateway errors travel through err; absence only through found.
	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		if row, found, err = s.repo.FindOne(ctx, id); err != nil || !found {
			return err
		}

		patch := input.patch()
		if patch.IsEmpty() {
			return nil
		}
		row, found, err = s.repo.Update(ctx, id, patch)
		return err
	})
	if err != nil {
		s.logger.Error("failed to update user", "error", err, "id", id)
		return nil, storageFailure(msgUpdate, err)
	}
	if !found {
		return nil, NewUserNotFoundError()
	}

	u := fromRow(row)

	s.cacheUser(ctx, u)

	if err := s.events.UserUpdated(ctx, u); err != nil {
		s.logger.Error("failed to publish UserUpdated event", "error", err, "id", u.ID)
	}

	return u, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	var found bool

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error
		if _, found, err = s.repo.FindOne(ctx, id); err != nil || !found {
			return err
		}
		found, err = s.repo.Delete(ctx, id)
		return err
	})
	if err != nil {
		s.logger.Error("failed to delete user", "error", err, "id", id)
		return storageFailure(msgDelete, err)
	}
	if !found {
		return NewUserNotFoundError()
	}

	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Error("failed to invalidate user cache after delete", "error", err, "id", id)
	}

	if err := s.events.UserDeleted(ctx, id); err != nil {
		s.logger.Error("failed to publish UserDeleted event", "error", err, "id", id)
	}

	return nil
}

func (s *service) cachedUser(ctx context.Context, id int64) (*User, bool) {
	data, err := s.cache.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get user from cache", "error", err, "id", id)
		return nil, false
	}
	if data == nil {
		return nil, false
	}

	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		// If unmarshal fails, log and fall through to DB
		s.logger.Error("failed to unmarshal user from cache", "error", err, "id", id)
		return nil, false
	}
	return &u, true
}

// cacheUser stores the result of a write.
func (s *service) cacheUser(ctx context.Context, u *User) {
	data, err := json.Marshal(u)
	if err != nil {
		s.logger.Error("failed to marshal user for cache", "error", err, "id", u.ID)
		return
	}
	if err := s.cache.Set(ctx, u.ID, data, s.cacheTTL); err != nil {
		s.logger.Error("failed to set user cache", "error", err, "id", u.ID)
	}
}

// fillUser stores the result of a read unless the entry was written meanwhile.
func (s *service) fillUser(ctx context.Context, u *User) {
	data, err := json.Marshal(u)
	if err != nil {
		s.logger.Error("failed to marshal user for cache", "error", err, "id", u.ID)
		return
	}
	stored, err := s.cache.Fill(ctx, u.ID, data, s.cacheTTL)
	if err != nil {
		s.logger.Error("failed to fill user cache", "error", err, "id", u.ID)
		return
	}
	if !stored {
		s.logger.Debug("skipped cache fill, entry changed concurrently", "id", u.ID)
	}
}
