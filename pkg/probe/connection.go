package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/mittwald/lcms-probe/internal/config"
	"github.com/mittwald/lcms-probe/internal/helper"
	log "github.com/sirupsen/logrus"
)

// ErrDisposed is returned by Wait when the probe was disposed before it
// settled.
var ErrDisposed = errors.New("connection probe disposed")

// ConnectionProbe issues a single GET request against the backend and keeps
// the outcome as State. The state leaves PhaseLoading at most once.
type ConnectionProbe struct {
	url     string
	timeout time.Duration
	client  HTTPDoer

	mu       sync.Mutex
	state    State
	started  bool
	disposed bool
	cancel   context.CancelFunc

	done     chan struct{}
	teardown chan struct{}
}

type Option func(*ConnectionProbe)

// WithHTTPClient replaces the client used to reach the backend.
func WithHTTPClient(client HTTPDoer) Option {
	return func(p *ConnectionProbe) {
		p.client = client
	}
}

func NewConnectionProbe(cfg *config.Backend, opts ...Option) (*ConnectionProbe, error) {
	if cfg == nil {
		cfg = &config.Backend{}
	}

	target := helper.SetDefaultStringIfEmpty(helper.ResolveEnv(cfg.URL), config.DefaultBackendURL, "url", "backend")
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q: expected an absolute http(s) url", target)
	}

	var timeout time.Duration
	if t := helper.ResolveEnv(cfg.Timeout); t != "" {
		timeout, err = time.ParseDuration(t)
		if err != nil {
			return nil, fmt.Errorf("invalid backend timeout: %w", err)
		}
		if timeout < 0 {
			return nil, fmt.Errorf("invalid backend timeout %q: must not be negative", t)
		}
	}

	p := &ConnectionProbe{
		url:      u.String(),
		timeout:  timeout,
		client:   &http.Client{},
		state:    loadingState(),
		done:     make(chan struct{}),
		teardown: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

func (p *ConnectionProbe) URL() string {
	return p.url
}

// Initialize starts the backend request. Only the first call has an effect;
// calls after Dispose are ignored.
func (p *ConnectionProbe) Initialize(ctx context.Context) {
	p.mu.Lock()
	if p.started || p.disposed {
		p.mu.Unlock()
		return
	}

	p.started = true
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.mu.Unlock()

	log.WithFields(log.Fields{"kind": "probe", "name": "backend", "url": p.url}).Info("connecting to backend")

	go p.run(ctx, cancel)
}

func (p *ConnectionProbe) run(ctx context.Context, cancel context.CancelFunc) {
	defer cancel()

	reqCtx := ctx
	if p.timeout > 0 {
		var cancelTimeout context.CancelFunc
		reqCtx, cancelTimeout = context.WithTimeout(ctx, p.timeout)
		defer cancelTimeout()
	}

	payload, err := fetchPayload(reqCtx, p.client, p.url)
	if err != nil {
		var failure *ConnectivityFailure
		if !errors.As(err, &failure) {
			failure = &ConnectivityFailure{Kind: FailureNetwork, cause: err}
		}

		if p.settle(failureState(failure)) {
			log.WithFields(log.Fields{
				"kind":       "probe",
				"name":       "backend",
				"url":        p.url,
				"reason":     failure.Kind,
				"statusCode": failure.StatusCode,
			}).WithError(failure.Unwrap()).Warn("failed to connect to backend")
		}
		return
	}

	if p.settle(successState(payload)) {
		log.WithFields(log.Fields{"kind": "probe", "name": "backend", "status": "alive", "url": p.url, "items": len(payload.Data)}).Debug("connected to backend")
	}
}

// settle moves the probe into a terminal state. It is a no-op once the probe
// is terminal or disposed.
func (p *ConnectionProbe) settle(next State) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.disposed || p.state.Terminal() {
		log.WithFields(log.Fields{"kind": "probe", "name": "backend", "phase": next.Phase}).Debug("ignoring late settlement")
		return false
	}

	p.state = next
	close(p.done)
	return true
}

// State returns a snapshot of the current state.
func (p *ConnectionProbe) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state.clone()
}

// Done is closed once the probe reached a terminal state.
func (p *ConnectionProbe) Done() <-chan struct{} {
	return p.done
}

// Disposed is closed once Dispose was called.
func (p *ConnectionProbe) Disposed() <-chan struct{} {
	return p.teardown
}

// Wait blocks until the probe settles. It returns ErrDisposed if the probe
// is disposed first, or ctx.Err() if ctx is done first; the returned state
// is the snapshot at that moment.
func (p *ConnectionProbe) Wait(ctx context.Context) (State, error) {
	select {
	case <-p.done:
		return p.State(), nil
	default:
	}

	select {
	case <-p.done:
		return p.State(), nil
	case <-p.teardown:
		return p.State(), ErrDisposed
	case <-ctx.Done():
		return p.State(), ctx.Err()
	}
}

// Dispose cancels an in-flight request. Any settlement after Dispose leaves
// the state untouched.
func (p *ConnectionProbe) Dispose() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.disposed {
		return
	}

	p.disposed = true
	close(p.teardown)
	if p.cancel != nil {
		p.cancel()
	}
}
