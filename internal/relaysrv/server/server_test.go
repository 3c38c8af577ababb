package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linguachat/linguachat/internal/relaysrv/config"
	"github.com/linguachat/linguachat/internal/relaysrv/conversation"
)

func TestGetVersion(t *testing.T) {
	config.TestInit(t)

	req, _ := http.NewRequest("GET", "/version", nil)
	rr := executeTestRequest(t, req)
	require.Equal(t, http.StatusOK, rr.Code)

	rsp := &GetVersionRsp{}
	decodeJSONResponse(t, rr, rsp)
	assert.Contains(t, rsp.ServerVersion, Version)
	assert.Equal(t, conversation.Version, rsp.ApiVersion)
}

func TestGetReadiness(t *testing.T) {
	config.TestInit(t)

	req, _ := http.NewRequest("GET", "/ready", nil)
	rr := executeTestRequest(t, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ready")
}

func TestRequestIDHeader(t *testing.T) {
	config.TestInit(t)

	req, _ := http.NewRequest("GET", "/ready", nil)
	rr := executeTestRequest(t, req)
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	config.TestInit(t)

	req, _ := http.NewRequest("OPTIONS", "/api/conversation/message", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")

	rr := executeTestRequest(t, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rr.Body.String(), "preflight response has no body")
}

func TestCORSOnErrorResponses(t *testing.T) {
	config.TestInit(t)

	req := newJSONRequest(t, "POST", "/api/conversation/message", map[string]any{})
	req.Header.Set("Origin", "http://example.com")

	rr := executeTestRequest(t, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
