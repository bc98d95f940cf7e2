package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gamehub/pkg/models"
)

// fastPolicy keeps retry delays in the millisecond range so tests do not
// sleep for real backoff durations.
func fastPolicy() Policy {
	return Policy{
		MaxRetries: 2,
		BaseDelay:  time.Millisecond,
		MaxDelay:   5 * time.Millisecond,
	}
}

func listBody(t *testing.T, games []models.Game) []byte {
	t.Helper()
	env := models.Envelope{Success: true, Data: games, Count: models.IntPtr(len(games))}
	b, err := json.Marshal(env)
	require.NoError(t, err)
	return b
}

func newTestController(t *testing.T, handler http.HandlerFunc) (*Controller, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, zap.NewNop()), srv
}

func TestFetchDecodesGames(t *testing.T) {
	ctrl, _ := newTestController(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(listBody(t, []models.Game{{ID: 10, Name: "Ten"}}))
	})

	res, err := ctrl.Fetch(context.Background(), "/games/popular", fastPolicy())
	require.NoError(t, err)
	require.True(t, res.Envelope.Success)
	require.False(t, res.FromCache)

	games, err := res.Games()
	require.NoError(t, err)
	require.Len(t, games, 1)
	require.Equal(t, "Ten", games[0].Name)
}

func TestFetchServesFromCacheWithinWindow(t *testing.T) {
	var hits atomic.Int32
	ctrl, _ := newTestController(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write(listBody(t, nil))
	})

	now := time.Now()
	ctrl.now = func() time.Time { return now }

	_, err := ctrl.Fetch(context.Background(), "/games/popular", fastPolicy())
	require.NoError(t, err)

	res, err := ctrl.Fetch(context.Background(), "/games/popular", fastPolicy())
	require.NoError(t, err)
	require.True(t, res.FromCache)
	require.Equal(t, int32(1), hits.Load(), "second fetch inside the window must not hit the network")

	// distinct keys are cached independently
	_, err = ctrl.Fetch(context.Background(), "/games/popular?limit=5", fastPolicy())
	require.NoError(t, err)
	require.Equal(t, int32(2), hits.Load())

	// window expiry forces revalidation
	now = now.Add(DefaultTTL + time.Second)
	res, err = ctrl.Fetch(context.Background(), "/games/popular", fastPolicy())
	require.NoError(t, err)
	require.False(t, res.FromCache)
	require.Equal(t, int32(3), hits.Load())
}

func TestFetchInvalidate(t *testing.T) {
	var hits atomic.Int32
	ctrl, _ := newTestController(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write(listBody(t, nil))
	})

	_, err := ctrl.Fetch(context.Background(), "/games/popular", fastPolicy())
	require.NoError(t, err)

	ctrl.Invalidate("/games/popular")
	res, err := ctrl.Fetch(context.Background(), "/games/popular", fastPolicy())
	require.NoError(t, err)
	require.False(t, res.FromCache)
	require.Equal(t, int32(2), hits.Load())
}

func TestConcurrentFetchesShareOneFlight(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	ctrl, _ := newTestController(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		w.Write(listBody(t, nil))
	})

	const callers = 8
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = ctrl.Fetch(context.Background(), "/games/popular", fastPolicy())
		}(i)
	}

	// let the goroutines pile onto the flight, then let it finish
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "caller %d", i)
	}
	require.Equal(t, int32(1), hits.Load(), "all callers must share one upstream request")
}

func TestRetriesOnServerError(t *testing.T) {
	var hits atomic.Int32
	ctrl, _ := newTestController(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write(listBody(t, nil))
	})

	res, err := ctrl.Fetch(context.Background(), "/games/popular", fastPolicy())
	require.NoError(t, err)
	require.True(t, res.Envelope.Success)
	require.Equal(t, int32(3), hits.Load(), "two retries after the initial failure")
}

func TestNoRetryOnNotFound(t *testing.T) {
	var hits atomic.Int32
	ctrl, _ := newTestController(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(models.Envelope{Success: false, Error: "Game not found"})
	})

	_, err := ctrl.Fetch(context.Background(), "/games/999", fastPolicy())
	require.Error(t, err)
	require.True(t, IsNotFound(err))
	require.Contains(t, err.Error(), "Game not found")
	require.Equal(t, int32(1), hits.Load(), "client errors are terminal")
}

func TestRetriesExhausted(t *testing.T) {
	var hits atomic.Int32
	ctrl, _ := newTestController(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := ctrl.Fetch(context.Background(), "/games/popular", fastPolicy())
	require.Error(t, err)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	require.Equal(t, 500, se.Code)
	require.Equal(t, int32(3), hits.Load())
}

func TestTimeoutIsDistinctError(t *testing.T) {
	ctrl, _ := newTestController(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	policy := fastPolicy()
	policy.Timeout = 100 * time.Millisecond

	_, err := ctrl.Fetch(context.Background(), "/games/440", policy)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrTimeout)
	require.NotErrorIs(t, err, context.Canceled)
}

func TestTimeoutLeavesCacheClean(t *testing.T) {
	var hits atomic.Int32
	ctrl, _ := newTestController(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			<-r.Context().Done()
			return
		}
		w.Write(listBody(t, nil))
	})

	policy := fastPolicy()
	policy.Timeout = 50 * time.Millisecond
	policy.MaxRetries = 0

	_, err := ctrl.Fetch(context.Background(), "/games/popular", policy)
	require.ErrorIs(t, err, ErrTimeout)

	// the failed flight must not have cached anything
	res, err := ctrl.Fetch(context.Background(), "/games/popular", fastPolicy())
	require.NoError(t, err)
	require.False(t, res.FromCache)
	require.True(t, res.Envelope.Success)
}

func TestHandleCancelStopsRetries(t *testing.T) {
	var hits atomic.Int32
	ctrl, _ := newTestController(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	})

	policy := Policy{MaxRetries: 5, BaseDelay: 200 * time.Millisecond, MaxDelay: time.Second}
	h := ctrl.Subscribe("/games/popular", policy)

	// wait for the first failed attempt, then detach the only subscriber
	require.Eventually(t, func() bool { return hits.Load() >= 1 }, time.Second, 5*time.Millisecond)
	h.Cancel()

	_, err := h.Wait()
	require.Error(t, err)

	// let any already-started attempt land before counting
	time.Sleep(50 * time.Millisecond)
	attempts := hits.Load()
	time.Sleep(500 * time.Millisecond)
	require.Equal(t, attempts, hits.Load(), "no retry may fire after the last subscriber cancels")
}

func TestAbandonedWaitKeepsFlightForOthers(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	ctrl, _ := newTestController(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		w.Write(listBody(t, nil))
	})

	first := ctrl.Subscribe("/games/popular", fastPolicy())
	second := ctrl.Subscribe("/games/popular", fastPolicy())
	time.Sleep(50 * time.Millisecond)

	first.Cancel()
	_, err := first.Wait()
	require.ErrorIs(t, err, context.Canceled)

	close(release)
	res, err := second.Wait()
	require.NoError(t, err, "remaining subscriber must still be served")
	require.True(t, res.Envelope.Success)
	require.Equal(t, int32(1), hits.Load())
}

func TestFetchAfterLastCancelStartsFreshFlight(t *testing.T) {
	var hits atomic.Int32
	ctrl, _ := newTestController(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			<-r.Context().Done()
			return
		}
		w.Write(listBody(t, []models.Game{{ID: 440, Name: "Team Fortress 2"}}))
	})

	h := ctrl.Subscribe("/games/popular", fastPolicy())
	require.Eventually(t, func() bool { return hits.Load() >= 1 }, time.Second, 5*time.Millisecond)
	h.Cancel()
	_, err := h.Wait()
	require.ErrorIs(t, err, context.Canceled)

	// a caller arriving right after the teardown must start a fresh
	// request instead of attaching to the canceled flight
	res, err := ctrl.Fetch(context.Background(), "/games/popular", fastPolicy())
	require.NoError(t, err, "live caller must not inherit the dead flight")
	require.True(t, res.Envelope.Success)
	require.False(t, res.FromCache)
	require.GreaterOrEqual(t, hits.Load(), int32(2), "a new upstream request must be issued")
}

func TestFetchReportsTruncatedBody(t *testing.T) {
	ctrl, _ := newTestController(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "500")
		w.Write([]byte(`{"success":`))
	})

	policy := fastPolicy()
	policy.MaxRetries = 0

	_, err := ctrl.Fetch(context.Background(), "/games/popular", policy)
	require.Error(t, err)
	require.Contains(t, err.Error(), "read response", "a cut-off body is a transport failure, not a decode failure")
}

func TestStatusErrorMessage(t *testing.T) {
	err := &StatusError{Code: 503}
	require.Equal(t, "api error 503", err.Error())

	err = &StatusError{Code: 400, Reason: "Search query is required"}
	require.Contains(t, err.Error(), "Search query is required")
	require.False(t, errors.Is(err, ErrTimeout))
}
