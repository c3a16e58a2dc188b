package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusCreated, map[string]bool{"valid": true})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"valid":true}`, w.Body.String())
}

func TestJSON_NilBody(t *testing.T) {
	w := httptest.NewRecorder()
	JSON(w, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestText(t *testing.T) {
	w := httptest.NewRecorder()
	Text(w, http.StatusBadRequest, "Email already exists")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "Email already exists", w.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	var body struct {
		Email string `json:"email"`
	}
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.c","confirmPassword":"x"}`))
	require.NoError(t, DecodeJSON(httptest.NewRecorder(), r, &body))
	assert.Equal(t, "a@b.c", body.Email)
}

func TestDecodeJSON_Errors(t *testing.T) {
	var v map[string]any

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	assert.ErrorIs(t, DecodeJSON(httptest.NewRecorder(), r, &v), ErrEmptyBody)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":`))
	assert.Error(t, DecodeJSON(httptest.NewRecorder(), r, &v))

	big := `{"x":"` + strings.Repeat("a", maxBodyBytes) + `"}`
	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(big))
	err := DecodeJSON(httptest.NewRecorder(), r, &v)
	var maxErr *http.MaxBytesError
	assert.ErrorAs(t, err, &maxErr)
}
