package dappier

import (
	"context"
	"runtime"

	"github.com/quocvuong92/dappier-go/internal/api"
)

// Client is the blocking Dappier client. It is safe for concurrent use.
//
// SearchRealTimeData and GetAIRecommendations never return errors: failures
// are logged and the result is nil. Use the E variants to get the error.
type Client struct {
	core    *core
	cleanup runtime.Cleanup
}

// New creates a Client. An empty apiKey falls back to DAPPIER_API_KEY; if
// both are empty New returns a *ConfigurationError wrapping ErrAPIKeyNotFound.
func New(apiKey string, opts ...Option) (*Client, error) {
	c, err := newCore(apiKey, opts)
	if err != nil {
		return nil, err
	}
	client := &Client{core: c}
	// Releases the pool if the client is dropped without Close
	client.cleanup = runtime.AddCleanup(client, func(s *api.Session) { s.Close() }, c.session)
	return client, nil
}

// String masks the API key
func (c *Client) String() string {
	return c.core.describe("Client")
}

// Close releases the connection pool. Later calls fail with ErrClientClosed.
// Close is idempotent.
func (c *Client) Close() error {
	c.cleanup.Stop()
	c.core.session.Close()
	return nil
}

// SearchRealTimeData asks the AI model aiModelID a question. It returns nil
// on any failure.
func (c *Client) SearchRealTimeData(ctx context.Context, query, aiModelID string) *RealTimeDataResponse {
	log := c.core.callLogger(opRealTimeSearch, realTimeFields(aiModelID))
	resp, err := c.core.searchRealTimeData(ctx, log, query, aiModelID)
	return logFailure(log, msgRealTimeFailed, resp, err)
}

// SearchRealTimeDataE is SearchRealTimeData with the failure returned
func (c *Client) SearchRealTimeDataE(ctx context.Context, query, aiModelID string) (*RealTimeDataResponse, error) {
	log := c.core.callLogger(opRealTimeSearch, realTimeFields(aiModelID))
	return c.core.searchRealTimeData(ctx, log, query, aiModelID)
}

// RealTimeSearch queries the general real-time web model
func (c *Client) RealTimeSearch(ctx context.Context, query string) *RealTimeDataResponse {
	return c.SearchRealTimeData(ctx, query, RealTimeModelID)
}

// StockMarketSearch queries the stock market model
func (c *Client) StockMarketSearch(ctx context.Context, query string) *RealTimeDataResponse {
	return c.SearchRealTimeData(ctx, query, StockMarketModelID)
}

// GetAIRecommendations returns articles from dataModelID related to query.
// It returns nil on any failure, including an invalid search algorithm, in
// which case nothing is sent.
func (c *Client) GetAIRecommendations(ctx context.Context, query, dataModelID string, opts ...RecommendationOption) *AIRecommendationsResponse {
	log := c.core.callLogger(opAIRecommendations, recommendFields(dataModelID))
	resp, err := c.core.getAIRecommendations(ctx, log, query, dataModelID, opts)
	return logFailure(log, msgRecommendFailed, resp, err)
}

// GetAIRecommendationsE is GetAIRecommendations with the failure returned
func (c *Client) GetAIRecommendationsE(ctx context.Context, query, dataModelID string, opts ...RecommendationOption) (*AIRecommendationsResponse, error) {
	log := c.core.callLogger(opAIRecommendations, recommendFields(dataModelID))
	return c.core.getAIRecommendations(ctx, log, query, dataModelID, opts)
}
