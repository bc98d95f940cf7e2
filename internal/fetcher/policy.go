package fetcher

import (
	"math/rand"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy is the per-resource fetch behavior: how long results stay fresh,
// how many retries a failure earns, and whether a hard timeout applies.
type Policy struct {
	MaxRetries int           // retry attempts after the first failure
	Timeout    time.Duration // 0 = no hard timeout
	TTL        time.Duration // deduping window; 0 = DefaultTTL
	BaseDelay  time.Duration // first retry delay; 0 = 1s
	MaxDelay   time.Duration // delay cap; 0 = 10s
}

// DefaultTTL is the minimum re-fetch interval per distinct request key.
const DefaultTTL = 5 * time.Minute

// DefaultPolicy suits slow-changing list resources.
func DefaultPolicy() Policy {
	return Policy{MaxRetries: 2}
}

// DetailPolicy adds a hard timeout and an extra retry for game detail
// requests, where a hung upstream would otherwise block the page.
func DetailPolicy() Policy {
	return Policy{MaxRetries: 3, Timeout: 15 * time.Second}
}

// SearchPolicy keeps search results fresher than the default window.
func SearchPolicy() Policy {
	return Policy{MaxRetries: 2, TTL: 30 * time.Second}
}

func (p Policy) ttl() time.Duration {
	if p.TTL > 0 {
		return p.TTL
	}
	return DefaultTTL
}

func (p Policy) baseDelay() time.Duration {
	if p.BaseDelay > 0 {
		return p.BaseDelay
	}
	return time.Second
}

func (p Policy) maxDelay() time.Duration {
	if p.MaxDelay > 0 {
		return p.MaxDelay
	}
	return 10 * time.Second
}

// retryPolicy implements backoff.BackOff with capped exponential growth
// plus additive jitter: delay(n) = min(base*2^n, cap) + rand*0.3*delay.
// Keeping the formula explicit lets tests assert each delay lands in
// [base, base*1.3].
type retryPolicy struct {
	base    time.Duration
	cap     time.Duration
	attempt int
	rng     *rand.Rand
	mu      sync.Mutex
}

var _ backoff.BackOff = (*retryPolicy)(nil)

func newRetryPolicy(p Policy) *retryPolicy {
	return &retryPolicy{
		base: p.baseDelay(),
		cap:  p.maxDelay(),
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *retryPolicy) NextBackOff() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	delay := r.base << r.attempt
	if delay > r.cap || delay <= 0 {
		delay = r.cap
	}
	r.attempt++

	jitter := time.Duration(r.rng.Float64() * 0.3 * float64(delay))
	return delay + jitter
}

func (r *retryPolicy) Reset() {
	r.mu.Lock()
	r.attempt = 0
	r.mu.Unlock()
}
