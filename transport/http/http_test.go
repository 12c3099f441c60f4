package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"gooman/config"
	"gooman/shared/constant"
	"gooman/transport/http/router"
)

func TestHealth(t *testing.T) {
	tests := []struct {
		state    ServerState
		wantCode int
		wantBody string
	}{
		{state: ServerStateReady, wantCode: http.StatusOK, wantBody: `{"message":"OK"}`},
		{state: ServerStateInGracePeriod, wantCode: http.StatusServiceUnavailable, wantBody: `{"message":"` + constant.ResponseErrorPrepareShutdown + `"}`},
		{state: ServerStateInCleanupPeriod, wantCode: http.StatusServiceUnavailable, wantBody: `{"message":"` + constant.ResponseErrorUnhealthy + `"}`},
	}

	for _, tt := range tests {
		h := New(&config.Config{}, router.Router{})
		h.setState(tt.state)

		rec := httptest.NewRecorder()
		h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, tt.wantCode, rec.Code)
		assert.JSONEq(t, tt.wantBody, rec.Body.String())
	}
}

func TestStateBeforeSetup(t *testing.T) {
	h := New(&config.Config{}, router.Router{})

	assert.Equal(t, ServerState(0), h.State())
}
