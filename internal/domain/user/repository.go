package user

import (
	"context"
)

// Repository is the storage gateway for users.
//
// A missing row is not an error: FindOne and Update return found=false and
// Delete returns deleted=false with a nil error.
type Repository interface {
	Create(ctx context.Context, row NewRow) (Row, error)
	FindOne(ctx context.Context, id int64) (Row, bool, error)
	FindMany(ctx context.Context, skip, take int) ([]Row, error)
	Update(ctx context.Context, id int64, patch Patch) (Row, bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
