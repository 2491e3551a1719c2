package user

import "time"

// Row is a user as persisted by the store.
type Row struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	LastName  string    `db:"last_name"`
	Rut       string    `db:"rut"`
	Address   string    `db:"address"`
	CreatedAt time.Time `db:"created_at"`
}

// NewRow holds the caller-supplied columns of a user that is about to be
// inserted. ID and CreatedAt are assigned by the store.
type NewRow struct {
	Name     string
	LastName string
	Rut      string
	Address  string
}

// Patch is a sparse set of column updates. Nil fields are left untouched.
type Patch struct {
	Name     *string
	LastName *string
	Rut      *string
	Address  *string
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.LastName == nil && p.Rut == nil && p.Address == nil
}
