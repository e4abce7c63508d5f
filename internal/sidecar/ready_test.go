package sidecar

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "opendbm/internal/infrastructure/errors"
	"opendbm/internal/testutils"
)

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{"ok", http.StatusOK, true},
		{"unavailable", http.StatusServiceUnavailable, false},
		{"not found", http.StatusNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath atomic.Value
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath.Store(r.URL.Path)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			check := HealthCheck(NewHealthClient(testutils.NewRecordingLogger()), srv.URL+HealthPath)
			ready, err := check(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.want, ready)
			assert.Equal(t, "/health", gotPath.Load())
		})
	}
}

func TestHealthCheck_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL + HealthPath
	srv.Close()

	logger := testutils.NewRecordingLogger()
	check := HealthCheck(NewHealthClient(logger), url)
	ready, err := check(context.Background())

	assert.NoError(t, err, "a server that is not listening yet is not an error")
	assert.False(t, ready)
	assert.Empty(t, logger.Calls("ERROR"))
	assert.Empty(t, logger.Calls("WARN"))
}

func TestWaitReady(t *testing.T) {
	t.Run("succeeds against live server", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if hits.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		check := HealthCheck(NewHealthClient(nil), srv.URL+HealthPath)
		err := WaitReady(context.Background(), newFakeHandle(1), 5*time.Millisecond, 2*time.Second, check)

		require.NoError(t, err)
		assert.Equal(t, int32(3), hits.Load())
	})

	t.Run("times out", func(t *testing.T) {
		check := func(context.Context) (bool, error) { return false, nil }
		err := WaitReady(context.Background(), newFakeHandle(1), 5*time.Millisecond, 30*time.Millisecond, check)

		require.Error(t, err)
		assert.True(t, apperrors.IsReadiness(err))
		var sErr *apperrors.SidecarError
		require.ErrorAs(t, err, &sErr)
		assert.Equal(t, "readiness", sErr.Op)
		assert.NotEmpty(t, sErr.Context["attempts"])
		assert.Equal(t, "30ms", sErr.Context["timeout"])
	})

	t.Run("aborts when process exits", func(t *testing.T) {
		handle := newFakeHandle(1)
		handle.exit(errors.New("exit status 1"))
		probes := 0
		check := func(context.Context) (bool, error) {
			probes++
			return false, nil
		}

		err := WaitReady(context.Background(), handle, 5*time.Millisecond, time.Second, check)

		require.Error(t, err)
		assert.True(t, apperrors.IsProcessExited(err))
		assert.ErrorIs(t, err, ErrProcessExited)
		assert.Zero(t, probes)
	})

	t.Run("check error stops polling", func(t *testing.T) {
		boom := errors.New("boom")
		probes := 0
		check := func(context.Context) (bool, error) {
			probes++
			return false, boom
		}

		err := WaitReady(context.Background(), newFakeHandle(1), 5*time.Millisecond, time.Second, check)

		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, probes)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		check := func(context.Context) (bool, error) { return false, nil }

		err := WaitReady(ctx, newFakeHandle(1), 5*time.Millisecond, time.Second, check)
		assert.Error(t, err)
	})
}

func TestRestyLogger(t *testing.T) {
	logger := testutils.NewRecordingLogger()
	l := restyLogger{logger: logger}

	l.Errorf("dial %s: %s", "tcp", "refused")
	l.Warnf("warn %d", 1)
	l.Debugf("debug")

	calls := logger.All()
	require.Len(t, calls, 3)
	for _, c := range calls {
		assert.Equal(t, "DEBUG", c.Level)
		assert.True(t, testutils.HasField(t, c.Fields, "component", "resty"))
	}
	assert.Equal(t, "dial tcp: refused", calls[0].Msg)

	// Nil logger is ignored
	restyLogger{}.Errorf("ignored")
}
