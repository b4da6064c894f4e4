package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildizm/SentiView/internal/config"
	"github.com/yildizm/SentiView/internal/logger"
)

func quietLogger() *logger.Logger {
	return logger.NewWithOptions("test", nil, logger.Options{Writer: io.Discard, NoColor: true})
}

func newTestServer(t *testing.T, scorer *Scorer) *httptest.Server {
	t.Helper()
	cfg := config.DefaultConfig().Server
	srv := httptest.NewServer(New(&cfg, scorer, quietLogger()).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func decodeDetail(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Detail
}

func TestAnalyze_Success(t *testing.T) {
	srv := newTestServer(t, NewScorer(0.20, -0.20))

	resp, err := http.Post(srv.URL+"/analyze", "application/json", strings.NewReader(`{"text":"What a wonderful, happy day!"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body AnalyzeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "What a wonderful, happy day!", body.Text)
	assert.Equal(t, "Positive", body.Sentiment)
	assert.Regexp(t, `^\d{1,3}\.\d%$`, body.Percentage)
}

func TestAnalyze_Errors(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		body       string
		scorer     *Scorer
		wantStatus int
		wantDetail string
	}{
		{name: "empty text", method: http.MethodPost, body: `{"text":""}`, scorer: NewScorer(0.2, -0.2), wantStatus: 400, wantDetail: "Text cannot be empty"},
		{name: "blank text", method: http.MethodPost, body: `{"text":"  \n\t "}`, scorer: NewScorer(0.2, -0.2), wantStatus: 400, wantDetail: "Text cannot be empty"},
		{name: "missing text", method: http.MethodPost, body: `{}`, scorer: NewScorer(0.2, -0.2), wantStatus: 400, wantDetail: "Text cannot be empty"},
		{name: "malformed body", method: http.MethodPost, body: `{"text":`, scorer: NewScorer(0.2, -0.2), wantStatus: 422, wantDetail: "Invalid request body"},
		{name: "wrong type", method: http.MethodPost, body: `{"text":42}`, scorer: NewScorer(0.2, -0.2), wantStatus: 422, wantDetail: "Invalid request body"},
		{name: "wrong method", method: http.MethodGet, scorer: NewScorer(0.2, -0.2), wantStatus: 405, wantDetail: "Method Not Allowed"},
		{name: "no model", method: http.MethodPost, body: `{"text":"hello"}`, wantStatus: 500, wantDetail: "Model not loaded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.scorer)

			req, err := http.NewRequest(tt.method, srv.URL+"/analyze", bytes.NewBufferString(tt.body))
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantDetail, decodeDetail(t, resp))
		})
	}
}

func TestHealth(t *testing.T) {
	for _, loaded := range []bool{true, false} {
		var scorer *Scorer
		if loaded {
			scorer = NewScorer(0.2, -0.2)
		}
		srv := newTestServer(t, scorer)

		resp, err := http.Get(srv.URL + "/health")
		require.NoError(t, err)

		var body HealthResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, HealthResponse{Status: "healthy", ModelLoaded: loaded}, body)
	}
}

func TestHealth_WrongMethod(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Post(srv.URL+"/health", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "Method Not Allowed", decodeDetail(t, resp))
}

func TestListenAndServe_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	cfg := config.ServerConfig{Addr: addr}
	s := New(&cfg, NewScorer(0.2, -0.2), quietLogger())
	assert.Equal(t, addr, s.Addr())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestListenAndServe_AddressInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	cfg := config.ServerConfig{Addr: ln.Addr().String()}
	err = New(&cfg, nil, quietLogger()).ListenAndServe(context.Background())
	assert.Error(t, err)
}

func TestHTTPServer_ErrorLogUsesLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithOptions("server", nil, logger.Options{Writer: &buf, NoColor: true})

	cfg := config.DefaultConfig().Server
	srv := New(&cfg, nil, log).httpServer()
	require.NotNil(t, srv.ErrorLog)

	srv.ErrorLog.Print("http: TLS handshake error from 127.0.0.1")

	out := buf.String()
	assert.Contains(t, out, "TLS handshake error")
	assert.Contains(t, out, "component=server")
	assert.Contains(t, out, "WRN")
}
