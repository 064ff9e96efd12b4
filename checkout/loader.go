package checkout

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"
)

const (
	EnvProd    = "prod"
	EnvSandbox = "sandbox"

	prodScriptURL    = "https://cdn1.affirm.com/js/v2/affirm.js"
	sandboxScriptURL = "https://cdn1-sandbox.affirm.com/js/v2/affirm.js"

	// Bounded wait before giving up on the provider coming up. Load returns
	// after this regardless; callers check Ready() for the real answer.
	loadTimeout = 2500 * time.Millisecond
)

// ResolveEnv normalizes a raw environment value. Anything that is not
// explicitly sandbox selects production.
func ResolveEnv(raw string) string {
	if strings.ToLower(strings.TrimSpace(raw)) == EnvSandbox {
		return EnvSandbox
	}
	return EnvProd
}

func scriptURL(env string) string {
	// Override for local setups pointing at a stand-in CDN.
	if base := os.Getenv("AFFIRM_CDN_BASE_URL"); base != "" {
		return strings.TrimRight(base, "/") + "/js/v2/affirm.js"
	}
	if env == EnvSandbox {
		return sandboxScriptURL
	}
	return prodScriptURL
}

// Loader gates checkout on the financing provider being reachable in the
// configured environment. Load is memoized: concurrent callers share one
// in-flight probe, a successful probe is never repeated, and a failed one is
// forgotten so a later call retries. Switching environments discards any
// prior result, the equivalent of tearing out the other environment's script
// tag.
//
// Load never returns an error. The calling flow has no separate "SDK never
// arrived" path; it checks Ready() and surfaces a user-facing message when
// the gate did not open.
type Loader struct {
	mu       sync.Mutex
	env      string
	ready    bool
	inflight chan struct{}

	timeout time.Duration
	probe   func(ctx context.Context, scriptURL string) error
}

func NewLoader(env string) *Loader {
	l := &Loader{
		env:     ResolveEnv(env),
		timeout: loadTimeout,
	}
	l.probe = l.httpProbe
	return l
}

// SetEnvironment switches sandbox/prod. A change invalidates any prior or
// in-flight result.
func (l *Loader) SetEnvironment(env string) {
	env = ResolveEnv(env)

	l.mu.Lock()
	defer l.mu.Unlock()
	if env == l.env {
		return
	}
	l.env = env
	l.ready = false
	l.inflight = nil
}

// Load ensures one probe for the current environment has run, waiting for it
// up to the bounded timeout.
func (l *Loader) Load(ctx context.Context) {
	l.mu.Lock()
	if l.ready {
		l.mu.Unlock()
		return
	}
	if l.inflight == nil {
		done := make(chan struct{})
		l.inflight = done
		go l.run(l.env, done)
	}
	done := l.inflight
	l.mu.Unlock()

	select {
	case <-done:
	case <-ctx.Done():
	}
}

func (l *Loader) run(env string, done chan struct{}) {
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()

	err := l.probe(ctx, scriptURL(env))

	l.mu.Lock()
	if l.inflight == done && l.env == env {
		l.ready = err == nil
		if err == nil {
			// Keep the closed channel: success is memoized for good.
			close(done)
			l.mu.Unlock()
			return
		}
		// Forget the failed attempt so a later Load can retry.
		l.inflight = nil
	}
	l.mu.Unlock()
	close(done)
}

// Ready reports whether the provider actually became available.
func (l *Loader) Ready() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ready
}

// Environment returns the resolved environment this loader targets.
func (l *Loader) Environment() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.env
}

func (l *Loader) httpProbe(ctx context.Context, scriptURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, scriptURL, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("probe %s: status %d", scriptURL, resp.StatusCode)
	}
	return nil
}
