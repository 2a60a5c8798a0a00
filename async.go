package dappier

import (
	"context"
	"runtime"
	"sync"

	"github.com/quocvuong92/dappier-go/internal/api"
	"github.com/quocvuong92/dappier-go/internal/logging"
)

// Call is the pending result of an AsyncClient request
type Call[T any] struct {
	done   chan struct{}
	result *T
	err    error
}

func newCall[T any]() *Call[T] {
	return &Call[T]{done: make(chan struct{})}
}

func (c *Call[T]) finish(result *T, err error) {
	c.result, c.err = result, err
	close(c.done)
}

// Done is closed when the call finishes
func (c *Call[T]) Done() <-chan struct{} {
	return c.done
}

// Await blocks until the call finishes or ctx ends. It returns nil on any
// failure, matching Client.
func (c *Call[T]) Await(ctx context.Context) *T {
	result, _ := c.Wait(ctx)
	return result
}

// Wait blocks until the call finishes or ctx ends and returns the error
func (c *Call[T]) Wait(ctx context.Context) (*T, error) {
	select {
	case <-c.done:
		if c.err != nil {
			return nil, c.err
		}
		return c.result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Err returns the failure of a finished call, or ErrCallPending
func (c *Call[T]) Err() error {
	select {
	case <-c.done:
		return c.err
	default:
		return ErrCallPending
	}
}

// AsyncClient starts each request in its own goroutine and returns a Call.
// Close waits for calls already started. It is safe for concurrent use.
type AsyncClient struct {
	core    *core
	cleanup runtime.Cleanup

	mu       sync.RWMutex
	closed   bool
	inflight sync.WaitGroup
}

type asyncCleanup struct {
	session *api.Session
	logger  *logging.Logger
}

// NewAsync creates an AsyncClient. Key resolution and options are the same
// as New.
func NewAsync(apiKey string, opts ...Option) (*AsyncClient, error) {
	c, err := newCore(apiKey, opts)
	if err != nil {
		return nil, err
	}
	client := &AsyncClient{core: c}
	client.cleanup = runtime.AddCleanup(client, func(s asyncCleanup) {
		if !s.session.Closed() {
			s.logger.Warn(msgUnclosedAsyncWarn)
			s.session.Close()
		}
	}, asyncCleanup{session: c.session, logger: c.logger})
	return client, nil
}

// String masks the API key
func (c *AsyncClient) String() string {
	return c.core.describe("AsyncClient")
}

// Close stops new calls, waits for running ones and releases the connection
// pool. Close is idempotent.
func (c *AsyncClient) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.inflight.Wait()
	c.cleanup.Stop()
	c.core.session.Close()
	return nil
}

// start runs fn in a goroutine unless the client is closed
func (c *AsyncClient) start(fn func()) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return false
	}
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		fn()
	}()
	return true
}

// SearchRealTimeData is the non-blocking form of Client.SearchRealTimeData
func (c *AsyncClient) SearchRealTimeData(ctx context.Context, query, aiModelID string) *Call[RealTimeDataResponse] {
	call := newCall[RealTimeDataResponse]()
	log := c.core.callLogger(opRealTimeSearch, realTimeFields(aiModelID))
	started := c.start(func() {
		resp, err := c.core.searchRealTimeData(ctx, log, query, aiModelID)
		if err != nil {
			log.Error(msgRealTimeFailed, err)
		}
		call.finish(resp, err)
	})
	if !started {
		log.Error(msgRealTimeFailed, ErrClientClosed)
		call.finish(nil, ErrClientClosed)
	}
	return call
}

// RealTimeSearch queries the general real-time web model
func (c *AsyncClient) RealTimeSearch(ctx context.Context, query string) *Call[RealTimeDataResponse] {
	return c.SearchRealTimeData(ctx, query, RealTimeModelID)
}

// StockMarketSearch queries the stock market model
func (c *AsyncClient) StockMarketSearch(ctx context.Context, query string) *Call[RealTimeDataResponse] {
	return c.SearchRealTimeData(ctx, query, StockMarketModelID)
}

// GetAIRecommendations is the non-blocking form of Client.GetAIRecommendations
func (c *AsyncClient) GetAIRecommendations(ctx context.Context, query, dataModelID string, opts ...RecommendationOption) *Call[AIRecommendationsResponse] {
	call := newCall[AIRecommendationsResponse]()
	log := c.core.callLogger(opAIRecommendations, recommendFields(dataModelID))
	started := c.start(func() {
		resp, err := c.core.getAIRecommendations(ctx, log, query, dataModelID, opts)
		if err != nil {
			log.Error(msgRecommendFailed, err)
		}
		call.finish(resp, err)
	})
	if !started {
		log.Error(msgRecommendFailed, ErrClientClosed)
		call.finish(nil, ErrClientClosed)
	}
	return call
}
