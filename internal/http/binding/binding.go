package binding

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"usersvc/internal/http/responses"
)

const maxBodyBytes = 1 << 20

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// BindAndValidate reads JSON body into dst and runs validation with tags `validate:"..."`.
// On failure it writes a 400 response and returns false.
func BindAndValidate[T any](w http.ResponseWriter, r *http.Request, dst *T) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			responses.WriteBadRequest(w, "request body is empty")
			return false
		}
		responses.WriteBadRequest(w, "invalid JSON payload")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		responses.WriteValidationError(w, err)
		return false
	}

	return true
}
