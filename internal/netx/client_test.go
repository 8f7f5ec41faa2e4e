package netx

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/dysh/internal/common"
	"github.com/dmitrijs2005/dysh/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observed() (logging.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logging.NewZapLogger(zap.New(core)), logs
}

func TestLoggingTransport_LogsRoundTrip(t *testing.T) {
	var gotID string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get(common.RequestIDHeaderName)
		w.WriteHeader(http.StatusTeapot)
	}))
	defer ts.Close()

	log, logs := observed()
	c := NewHTTPClient(5*time.Second, log)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/recipes/explore/trending", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer secret-token")
	resp, err := c.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.NotEmpty(t, gotID)
	assert.Empty(t, req.Header.Get(common.RequestIDHeaderName), "caller request must not be mutated")

	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/recipes/explore/trending", fields["path"])
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
	assert.Equal(t, gotID, fields["request_id"])
	for _, e := range logs.All() {
		for _, v := range e.ContextMap() {
			assert.NotContains(t, fmt.Sprint(v), "secret-token")
		}
	}
}

func TestLoggingTransport_KeepsRequestID(t *testing.T) {
	var gotID string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get(common.RequestIDHeaderName)
	}))
	defer ts.Close()

	c := NewHTTPClient(time.Second, nil)
	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)
	req.Header.Set(common.RequestIDHeaderName, "req-1")

	resp, err := c.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, "req-1", gotID)
}

func TestLoggingTransport_Failure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close()

	log, logs := observed()
	c := NewHTTPClient(time.Second, log)

	_, err := c.Get(ts.URL + "/auth/refresh")
	require.Error(t, err)

	entries := logs.FilterMessage("http request failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "/auth/refresh", entries[0].ContextMap()["path"])
}
