package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndStatusCode(t *testing.T) {
	base := New("base failure").SetStatusCode(http.StatusInternalServerError)
	assert.Equal(t, "base failure", base.Error())
	assert.Equal(t, http.StatusInternalServerError, base.StatusCode())

	derived := base.New("specific failure").SetStatusCode(http.StatusBadRequest)
	assert.Equal(t, "specific failure", derived.Error())
	assert.Equal(t, http.StatusBadRequest, derived.StatusCode())

	// derived sentinel still matches its template via errors.Is
	assert.True(t, errors.Is(derived, base))
	assert.False(t, errors.Is(base, derived))
}

func TestMsgWrapsOriginal(t *testing.T) {
	sentinel := New("not found").SetStatusCode(http.StatusNotFound)
	err := sentinel.Msg("session abc not found")

	require.Equal(t, "session abc not found", err.Error())
	assert.Equal(t, http.StatusNotFound, err.StatusCode())
	assert.True(t, errors.Is(err, sentinel))
	assert.Equal(t, "session abc not found; not found", err.ErrorAll())
}

func TestMsgErrAttachesCause(t *testing.T) {
	sentinel := New("upstream failure").SetStatusCode(http.StatusInternalServerError)
	cause := fmt.Errorf("connection refused")
	err := sentinel.MsgErr("completion call failed", cause)

	assert.True(t, errors.Is(err, sentinel))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.ErrorAll(), "connection refused")
	assert.Len(t, err.UnwrapAll(), 2)
}

func TestErrKeepsMessage(t *testing.T) {
	sentinel := New("invalid request").SetStatusCode(http.StatusBadRequest)
	cause := errors.New("missing field")
	err := sentinel.Err(cause)

	assert.Equal(t, "invalid request", err.Error())
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "invalid request; missing field", err.ErrorAll())
}

func TestStatusCodeDoesNotMutate(t *testing.T) {
	base := New("err")
	_ = base.SetStatusCode(http.StatusTeapot)
	assert.Equal(t, 0, base.StatusCode())
}
