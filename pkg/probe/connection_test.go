package probe_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mittwald/lcms-probe/internal/config"
	"github.com/mittwald/lcms-probe/pkg/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/test", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func newSubject(t *testing.T, url string) *probe.ConnectionProbe {
	t.Helper()

	p, err := probe.NewConnectionProbe(&config.Backend{URL: url})
	require.NoError(t, err)
	t.Cleanup(p.Dispose)

	return p
}

func settle(t *testing.T, p *probe.ConnectionProbe) probe.State {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	p.Initialize(context.Background())
	state, err := p.Wait(ctx)
	require.NoError(t, err)

	return state
}

func TestConnectionProbeStartsLoading(t *testing.T) {
	p := newSubject(t, "http://localhost:5000/api/test")

	state := p.State()
	assert.Equal(t, probe.PhaseLoading, state.Phase)
	assert.False(t, state.Terminal())
	assert.Empty(t, state.Message)
	assert.Nil(t, state.Data)
	assert.Nil(t, state.Err)
}

func TestConnectionProbeSucceeds(t *testing.T) {
	srv := newBackend(t, http.StatusOK, `{"message": "ok", "data": ["a", "b", "c"]}`)
	p := newSubject(t, srv.URL+"/api/test")

	state := settle(t, p)

	assert.Equal(t, probe.PhaseSuccess, state.Phase)
	assert.Equal(t, "ok", state.Message)
	assert.Equal(t, []string{"a", "b", "c"}, state.Data)
	assert.Nil(t, state.Err)
}

func TestConnectionProbeAcceptsEmptyData(t *testing.T) {
	srv := newBackend(t, http.StatusOK, `{"message": "nothing here", "data": []}`)
	p := newSubject(t, srv.URL+"/api/test")

	state := settle(t, p)

	assert.Equal(t, probe.PhaseSuccess, state.Phase)
	assert.NotNil(t, state.Data)
	assert.Len(t, state.Data, 0)
}

func TestConnectionProbeFailures(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		body   string
		kind   probe.FailureKind
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"message": "boom", "data": []}`, kind: probe.FailureStatus},
		{name: "not found", status: http.StatusNotFound, body: `not found`, kind: probe.FailureStatus},
		{name: "malformed json", status: http.StatusOK, body: `{"message": "ok", "data": [`, kind: probe.FailureDecode},
		{name: "html body", status: http.StatusOK, body: `<html></html>`, kind: probe.FailureDecode},
		{name: "missing data", status: http.StatusOK, body: `{"message": "ok"}`, kind: probe.FailureDecode},
		{name: "null data", status: http.StatusOK, body: `{"message": "ok", "data": null}`, kind: probe.FailureDecode},
		{name: "missing message", status: http.StatusOK, body: `{"data": ["a"]}`, kind: probe.FailureDecode},
		{name: "data of wrong type", status: http.StatusOK, body: `{"message": "ok", "data": [1, 2]}`, kind: probe.FailureDecode},
		{name: "oversized body", status: http.StatusOK, body: `{"message": "ok", "data": ["` + strings.Repeat("a", probe.MaxResponseSize) + `"]}`, kind: probe.FailureDecode},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := newBackend(t, tc.status, tc.body)
			p := newSubject(t, srv.URL+"/api/test")

			state := settle(t, p)

			assert.Equal(t, probe.PhaseFailure, state.Phase)
			assert.Empty(t, state.Message)
			assert.Nil(t, state.Data)
			require.NotNil(t, state.Err)
			assert.Equal(t, tc.kind, state.Err.Kind)
			if tc.kind == probe.FailureStatus {
				assert.Equal(t, tc.status, state.Err.StatusCode)
			}
		})
	}
}

func TestConnectionProbeFailsOnNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL + "/api/test"
	srv.Close()

	p := newSubject(t, url)
	state := settle(t, p)

	assert.Equal(t, probe.PhaseFailure, state.Phase)
	require.NotNil(t, state.Err)
	assert.Equal(t, probe.FailureNetwork, state.Err.Kind)
	assert.Error(t, errors.Unwrap(state.Err))
}

func TestConnectionProbeTimesOut(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	p, err := probe.NewConnectionProbe(&config.Backend{URL: srv.URL, Timeout: "50ms"})
	require.NoError(t, err)
	defer p.Dispose()

	state := settle(t, p)

	assert.Equal(t, probe.PhaseFailure, state.Phase)
	require.NotNil(t, state.Err)
	assert.Equal(t, probe.FailureNetwork, state.Err.Kind)
	assert.ErrorIs(t, state.Err, context.DeadlineExceeded)
}

func TestConnectionProbeStaysLoadingWhileRequestIsPending(t *testing.T) {
	release := make(chan struct{})
	received := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(received)
		<-release
		_, _ = w.Write([]byte(`{"message": "late", "data": ["x"]}`))
	}))
	defer srv.Close()

	p := newSubject(t, srv.URL)
	p.Initialize(context.Background())
	<-received

	assert.Equal(t, probe.PhaseLoading, p.State().Phase)

	select {
	case <-p.Done():
		t.Fatal("probe settled before the backend answered")
	default:
	}

	close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	state, err := p.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, probe.PhaseSuccess, state.Phase)
	assert.Equal(t, []string{"x"}, state.Data)
}

func TestConnectionProbeIgnoresSettlementAfterDispose(t *testing.T) {
	release := make(chan struct{})
	received := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(received)
		<-release
		_, _ = w.Write([]byte(`{"message": "late", "data": []}`))
	}))
	defer srv.Close()
	defer close(release)

	p := newSubject(t, srv.URL)
	p.Initialize(context.Background())
	<-received

	p.Dispose()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	state, err := p.Wait(ctx)

	assert.ErrorIs(t, err, probe.ErrDisposed)
	assert.Equal(t, probe.PhaseLoading, state.Phase)

	// give the cancelled request time to return and attempt to settle
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, probe.PhaseLoading, p.State().Phase)
}

func TestConnectionProbeInitializesOnlyOnce(t *testing.T) {
	calls := make(chan struct{}, 10)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls <- struct{}{}
		_, _ = w.Write([]byte(`{"message": "ok", "data": []}`))
	}))
	defer srv.Close()

	p := newSubject(t, srv.URL)
	p.Initialize(context.Background())
	p.Initialize(context.Background())

	settle(t, p)
	p.Initialize(context.Background())
	time.Sleep(20 * time.Millisecond)

	assert.Len(t, calls, 1)
}

func TestConnectionProbeDoesNotStartAfterDispose(t *testing.T) {
	p := newSubject(t, "http://127.0.0.1:1/api/test")
	p.Dispose()
	p.Initialize(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	state, err := p.Wait(ctx)

	assert.ErrorIs(t, err, probe.ErrDisposed)
	assert.Equal(t, probe.PhaseLoading, state.Phase)
}

func TestConnectionProbeSnapshotsAreIndependent(t *testing.T) {
	srv := newBackend(t, http.StatusOK, `{"message": "ok", "data": ["a"]}`)
	p := newSubject(t, srv.URL+"/api/test")

	state := settle(t, p)
	state.Data[0] = "mutated"

	assert.Equal(t, []string{"a"}, p.State().Data)
}

func TestNewConnectionProbeValidatesConfig(t *testing.T) {
	testCases := []struct {
		name string
		cfg  config.Backend
	}{
		{name: "relative url", cfg: config.Backend{URL: "/api/test"}},
		{name: "unsupported scheme", cfg: config.Backend{URL: "ftp://localhost/api/test"}},
		{name: "invalid timeout", cfg: config.Backend{URL: "http://localhost:5000/api/test", Timeout: "soon"}},
		{name: "negative timeout", cfg: config.Backend{URL: "http://localhost:5000/api/test", Timeout: "-1s"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := probe.NewConnectionProbe(&tc.cfg)
			assert.Error(t, err)
		})
	}
}

func TestNewConnectionProbeDefaultsAndResolvesEnv(t *testing.T) {
	p, err := probe.NewConnectionProbe(nil)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultBackendURL, p.URL())

	t.Setenv("LCMS_TEST_BACKEND", "http://cms.internal:5000/api/test")
	p, err = probe.NewConnectionProbe(&config.Backend{URL: "ENV:LCMS_TEST_BACKEND"})
	require.NoError(t, err)
	assert.Equal(t, "http://cms.internal:5000/api/test", p.URL())
}
