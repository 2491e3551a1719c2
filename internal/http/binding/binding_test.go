package binding

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usersvc/internal/http/responses"
)

type payload struct {
	Name    string  `json:"name" validate:"required"`
	Address *string `json:"address" validate:"omitnil,min=1"`
}

func bind(t *testing.T, body string) (*httptest.ResponseRecorder, payload, bool) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	var p payload
	ok := BindAndValidate(rec, req, &p)
	return rec, p, ok
}

func TestBindAndValidate(t *testing.T) {
	cases := []struct {
		desc    string
		body    string
		ok      bool
		errMsg  string
		details map[string]string
	}{
		{desc: "valid", body: `{"name":"John"}`, ok: true},
		{desc: "valid with optional", body: `{"name":"John","address":"x"}`, ok: true},
		{desc: "empty body", body: ``, errMsg: "request body is empty"},
		{desc: "broken json", body: `{"name":`, errMsg: "invalid JSON payload"},
		{desc: "unknown field", body: `{"name":"John","age":3}`, errMsg: "invalid JSON payload"},
		{desc: "missing required", body: `{}`, errMsg: "validation failed", details: map[string]string{"name": "required"}},
		{desc: "empty optional", body: `{"name":"John","address":""}`, errMsg: "validation failed", details: map[string]string{"address": "min"}},
	}

	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			rec, _, ok := bind(t, tc.body)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				return
			}
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var resp responses.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.errMsg, resp.Error)
			assert.Equal(t, tc.details, resp.Details)
		})
	}
}

func TestBindAndValidateKeepsAbsentOptionalNil(t *testing.T) {
	_, p, ok := bind(t, `{"name":"John"}`)
	require.True(t, ok)
	assert.Nil(t, p.Address)
}
