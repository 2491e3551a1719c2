package repository

import (
	entsql "entgo.io/ent/dialect/sql"

	dom "usersvc/internal/domain/user"
)

const (
	usersTable = "users"

	colID        = "id"
	colName      = "name"
	colLastName  = "last_name"
	colRut       = "rut"
	colAddress   = "address"
	colCreatedAt = "created_at"
)

var userColumns = []string{colID, colName, colLastName, colRut, colAddress, colCreatedAt}

// applyPatch adds a SET clause for every field present in the patch.
func applyPatch(u *entsql.UpdateBuilder, p dom.Patch) *entsql.UpdateBuilder {
	if p.Name != nil {
		u.Set(colName, *p.Name)
	}
	if p.LastName != nil {
		u.Set(colLastName, *p.LastName)
	}
	if p.Rut != nil {
		u.Set(colRut, *p.Rut)
	}
	if p.Address != nil {
		u.Set(colAddress, *p.Address)
	}
	return u
}
