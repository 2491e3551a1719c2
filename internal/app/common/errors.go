package common

import (
	"errors"

	domcommon "usersvc/internal/domain/common"
)

// Kind classifies the errors returned by application services so transports
// can translate them without knowing the concrete types.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindStorage:
		return "storage_failure"
	default:
		return "unknown"
	}
}

// KindOf reports the kind of err. A not-found error wins over a storage error
// when both appear in the chain.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case domcommon.IsNotFound(err):
		return KindNotFound
	case domcommon.IsStorageFailure(err):
		return KindStorage
	default:
		return KindUnknown
	}
}

// PublicMessage returns the caller-facing message of a classified error,
// without the wrapped cause.
func PublicMessage(err error) string {
	var nf domcommon.NotFoundError
	if errors.As(err, &nf) {
		return nf.Error()
	}
	var se domcommon.StorageError
	if errors.As(err, &se) {
		return se.Message
	}
	return "internal server error"
}
