package user

import (
	domcommon "usersvc/internal/domain/common"
)

const (
	msgCreate = "something goes wrong creating the user"
	msgGet    = "something goes wrong getting user"
	msgGetAll = "something goes wrong getting all users"
	msgUpdate = "something goes wrong updating the user"
	msgDelete = "something goes wrong deleting a user"
)

func IsNotFound(err error) bool {
	return domcommon.IsNotFound(err)
}

func IsStorageFailure(err error) bool {
	return domcommon.IsStorageFailure(err)
}

func NewUserNotFoundError() error {
	return domcommon.NewNotFound("User")
}

func storageFailure(msg string, cause error) error {
	return domcommon.NewStorageFailure(msg, cause)
}
