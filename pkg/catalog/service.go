package catalog

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/pradeepit93/srienippagam-menu/pkg/global"
)

// State is the lifecycle of the one-time catalog fetch.
type State string

const (
	StatePending State = "pending"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// ErrCatalogLoading is returned while the first fetch is still in flight.
var ErrCatalogLoading = errors.New("catalog is still loading")

// Status is a snapshot of the service state.
type Status struct {
	State    State     `json:"state"`
	Products int       `json:"products"`
	LoadedAt time.Time `json:"loaded_at,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// Service owns the loaded catalog and its fetch state. The catalog is fetched
// on Reload only: once at startup and then on explicit retry.
type Service struct {
	source  Source
	timeout time.Duration
	onLoad  func(c *Catalog, err error)

	mu       sync.RWMutex
	state    State
	current  *Catalog
	loadedAt time.Time
	lastErr  error
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLoadHook registers a callback run after every fetch attempt with the
// fetched catalog, or nil and the error.
func WithLoadHook(fn func(c *Catalog, err error)) ServiceOption {
	return func(s *Service) { s.onLoad = fn }
}

func NewService(source Source, timeout time.Duration, opts ...ServiceOption) *Service {
	s := &Service{source: source, timeout: timeout, state: StatePending}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reload fetches the catalog. A failed reload keeps serving a previously
// loaded catalog; only a service that never loaded enters StateFailed.
func (s *Service) Reload(ctx context.Context) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	c, err := Load(ctx, s.source)
	if s.onLoad != nil {
		s.onLoad(c, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.lastErr = err
		if s.current == nil {
			s.state = StateFailed
		}
		global.Logger.Warn("Catalog load failed", zap.Error(err), zap.String("state", string(s.state)))
		return err
	}

	s.current = c
	s.state = StateReady
	s.loadedAt = time.Now()
	s.lastErr = nil
	global.Logger.Info("Catalog ready", zap.Int("products", c.Len()))
	return nil
}

// Invalidator is implemented by sources that keep a cached copy.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// Refresh drops any cached copy held by the source and reloads.
func (s *Service) Refresh(ctx context.Context) error {
	if inv, ok := s.source.(Invalidator); ok {
		if err := inv.Invalidate(ctx); err != nil {
			global.Logger.Warn("Catalog cache invalidation failed", zap.Error(err))
		}
	}
	return s.Reload(ctx)
}

// Catalog returns the loaded catalog, ErrCatalogLoading while pending, or an
// error wrapping ErrDataUnavailable after a failed first fetch.
func (s *Service) Catalog() (*Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch s.state {
	case StateReady:
		return s.current, nil
	case StateFailed:
		return nil, s.lastErr
	default:
		return nil, ErrCatalogLoading
	}
}

func (s *Service) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{State: s.state, LoadedAt: s.loadedAt}
	if s.current != nil {
		st.Products = s.current.Len()
	}
	if s.lastErr != nil {
		st.Error = "catalog source unavailable"
	}
	return st
}
