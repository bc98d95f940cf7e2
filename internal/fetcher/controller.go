package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"gamehub/pkg/models"
)

// Envelope mirrors the server response shape with the payload left raw,
// so callers decode Data into whatever the endpoint returns.
type Envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Count     *int            `json:"count"`
	Error     string          `json:"error"`
	Fallback  bool            `json:"fallback"`
	Message   string          `json:"message"`
	Category  string          `json:"category"`
	Query     string          `json:"query"`
	Source    string          `json:"source"`
	Algorithm string          `json:"algorithm"`
}

// Result is one settled fetch.
type Result struct {
	Status    int
	Envelope  Envelope
	FromCache bool
}

// Decode unmarshals the payload into v.
func (r *Result) Decode(v any) error {
	if len(r.Envelope.Data) == 0 {
		return errors.New("fetcher: empty payload")
	}
	return json.Unmarshal(r.Envelope.Data, v)
}

// Games decodes the payload of a list endpoint.
func (r *Result) Games() ([]models.Game, error) {
	var games []models.Game
	if err := r.Decode(&games); err != nil {
		return nil, fmt.Errorf("decode games: %w", err)
	}
	return games, nil
}

// Controller wraps the catalog API with caching, in-flight deduplication,
// bounded retry, and cooperative timeout/cancellation.
//
// Results are cached by full request URL for the policy's deduping
// window. Concurrent fetches for the same key share a single in-flight
// request; a caller abandoning the wait does not cancel the flight unless
// it was the last subscriber. The cache is only written from a settled
// successful response, so cancellation never leaves it half-written.
type Controller struct {
	BaseURL string
	HTTP    *http.Client

	logger *zap.Logger
	now    func() time.Time

	mu      sync.Mutex
	cache   map[string]*cacheEntry
	flights map[string]*flight
	group   singleflight.Group
}

type cacheEntry struct {
	result *Result
	expiry time.Time
}

type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

func New(baseURL string, logger *zap.Logger) *Controller {
	return &Controller{
		BaseURL: baseURL,
		HTTP:    &http.Client{},
		logger:  logger,
		now:     time.Now,
		cache:   make(map[string]*cacheEntry),
		flights: make(map[string]*flight),
	}
}

// Fetch returns the response for path, from cache when fresh, otherwise
// joining or starting the single in-flight request for that key.
func (c *Controller) Fetch(ctx context.Context, path string, policy Policy) (*Result, error) {
	key := c.BaseURL + path

	if res := c.fresh(key); res != nil {
		return res, nil
	}

	c.mu.Lock()
	f, ok := c.flights[key]
	if ok && f.ctx.Err() != nil {
		// a dead flight may linger until its op's deferred cleanup runs;
		// never attach a live caller to it
		c.group.Forget(key)
		ok = false
	}
	if !ok {
		fctx, cancel := context.WithCancel(context.Background())
		f = &flight{ctx: fctx, cancel: cancel}
		c.flights[key] = f
	}
	f.waiters++
	c.mu.Unlock()

	ch := c.group.DoChan(key, func() (any, error) {
		defer func() {
			c.mu.Lock()
			if c.flights[key] == f {
				delete(c.flights, key)
			}
			c.mu.Unlock()
			f.cancel()
		}()

		res, err := c.run(f.ctx, key, policy)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.cache[key] = &cacheEntry{result: res, expiry: c.now().Add(policy.ttl())}
		c.mu.Unlock()
		return res, nil
	})

	select {
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*Result), nil
	case <-ctx.Done():
		// abandon the wait; tear the flight down only if nobody else is on it
		c.mu.Lock()
		f.waiters--
		if f.waiters <= 0 {
			f.cancel()
			if c.flights[key] == f {
				delete(c.flights, key)
				c.group.Forget(key)
			}
		}
		c.mu.Unlock()
		return nil, ctx.Err()
	}
}

// Invalidate drops the cached result for path so the next fetch revalidates.
func (c *Controller) Invalidate(path string) {
	c.mu.Lock()
	delete(c.cache, c.BaseURL+path)
	c.mu.Unlock()
}

func (c *Controller) fresh(key string) *Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.cache[key]
	if !ok || !c.now().Before(e.expiry) {
		return nil
	}
	res := *e.result
	res.FromCache = true
	return &res
}

// run executes the request with the policy's timeout and retry schedule.
func (c *Controller) run(ctx context.Context, url string, policy Policy) (*Result, error) {
	rctx := ctx
	var cancel context.CancelFunc
	if policy.Timeout > 0 {
		rctx, cancel = context.WithTimeout(ctx, policy.Timeout)
		defer cancel()
	}

	var result *Result
	attempt := 0
	op := func() error {
		attempt++
		res, err := c.once(rctx, url)
		if err == nil {
			result = res
			return nil
		}
		if !isRetryable(err) {
			return backoff.Permanent(err)
		}
		c.logger.Warn("fetch attempt failed",
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Error(err))
		return err
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(newRetryPolicy(policy), uint64(policy.MaxRetries)),
		rctx,
	)
	err := backoff.Retry(op, b)
	if err != nil {
		if policy.Timeout > 0 && errors.Is(rctx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w after %s", ErrTimeout, policy.Timeout)
		}
		return nil, err
	}
	return result, nil
}

// once performs a single HTTP round trip and decodes the envelope.
func (c *Controller) once(ctx context.Context, url string) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("request: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var env Envelope
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, fmt.Errorf("decode envelope: %w", err)
		}
		return &Result{Status: resp.StatusCode, Envelope: env}, nil
	}

	// error responses still carry an envelope when they came from the API
	_ = json.Unmarshal(body, &env)
	return nil, &StatusError{Code: resp.StatusCode, Reason: env.Error}
}

// Handle is one subscriber's grip on an async fetch. Cancel releases the
// subscriber: pending retries for a flight with no remaining subscribers
// are stopped and no callback fires afterward.
type Handle struct {
	cancel context.CancelFunc
	ch     chan outcome
}

type outcome struct {
	res *Result
	err error
}

// Subscribe starts an async fetch and returns its handle.
func (c *Controller) Subscribe(path string, policy Policy) *Handle {
	ctx, cancel := context.WithCancel(context.Background())
	h := &Handle{cancel: cancel, ch: make(chan outcome, 1)}

	go func() {
		res, err := c.Fetch(ctx, path, policy)
		h.ch <- outcome{res, err}
	}()
	return h
}

// Wait blocks until the fetch settles.
func (h *Handle) Wait() (*Result, error) {
	o := <-h.ch
	return o.res, o.err
}

// Cancel detaches this subscriber.
func (h *Handle) Cancel() {
	h.cancel()
}
