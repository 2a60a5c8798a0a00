package dappier

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/quocvuong92/dappier-go/internal/config"
	"github.com/quocvuong92/dappier-go/internal/constants"
	"github.com/quocvuong92/dappier-go/internal/logging"
)

// Option configures a Client or AsyncClient
type Option func(*clientOptions) error

type clientOptions struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logOutput  io.Writer
	logLevel   logging.Level
	logFormat  logging.Format
	debug      bool
}

// defaultClientOptions seeds logging from DAPPIER_DEBUG, DAPPIER_LOG_LEVEL
// and DAPPIER_LOG_FORMAT. Options passed to New override them.
func defaultClientOptions() (*clientOptions, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}
	o := &clientOptions{
		baseURL:   constants.BaseURL,
		logLevel:  logging.ParseLevel(env.LogLevel),
		logFormat: logging.ParseFormat(env.LogFormat),
		debug:     env.Debug,
	}
	return o, nil
}

// WithBaseURL points the client at another host, e.g. an httptest server
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) error {
		u, err := url.Parse(baseURL)
		if err != nil {
			return fmt.Errorf("invalid base URL: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
			return fmt.Errorf("invalid base URL %q: need http(s)://host", baseURL)
		}
		o.baseURL = strings.TrimSuffix(baseURL, "/")
		return nil
	}
}

// WithHTTPClient sends requests through hc. The client is copied, so hc itself
// is never modified, and Close leaves its connection pool alone.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) error {
		if hc == nil {
			return errors.New("http client must not be nil")
		}
		o.httpClient = hc
		return nil
	}
}

// WithHTTPTimeout bounds each request. By default only the context does.
func WithHTTPTimeout(d time.Duration) Option {
	return func(o *clientOptions) error {
		if d <= 0 {
			return fmt.Errorf("http timeout must be positive, got %s", d)
		}
		o.timeout = d
		return nil
	}
}

// WithLogOutput sets where failures are logged. Defaults to stderr.
func WithLogOutput(w io.Writer) Option {
	return func(o *clientOptions) error {
		o.logOutput = w
		return nil
	}
}

// WithLogLevel accepts debug, info, warn, error or none
func WithLogLevel(level string) Option {
	return func(o *clientOptions) error {
		o.logLevel = logging.ParseLevel(level)
		return nil
	}
}

// WithLogFormat accepts text or json
func WithLogFormat(format string) Option {
	return func(o *clientOptions) error {
		o.logFormat = logging.ParseFormat(format)
		return nil
	}
}

// WithDebug logs every request and response at debug level, with the
// Authorization header redacted
func WithDebug(enabled bool) Option {
	return func(o *clientOptions) error {
		o.debug = enabled
		return nil
	}
}

// RecommendationOption overrides one field of an AI recommendations request
type RecommendationOption func(*AIRecommendationsRequest)

// WithSimilarityTopK sets how many similar articles the search considers (default 9)
func WithSimilarityTopK(k int) RecommendationOption {
	return func(r *AIRecommendationsRequest) {
		r.SimilarityTopK = k
	}
}

// WithRef restricts results to a site domain such as "techcrunch.com"
func WithRef(ref string) RecommendationOption {
	return func(r *AIRecommendationsRequest) {
		r.Ref = &ref
	}
}

// WithNumArticlesRef sets how many results must come from the Ref domain (default 0)
func WithNumArticlesRef(n int) RecommendationOption {
	return func(r *AIRecommendationsRequest) {
		r.NumArticlesRef = n
	}
}

// WithSearchAlgorithm sets the ranking algorithm (default most_recent)
func WithSearchAlgorithm(a SearchAlgorithm) RecommendationOption {
	return func(r *AIRecommendationsRequest) {
		r.SearchAlgorithm = a
	}
}

// NewAIRecommendationsRequest builds the request body with defaults applied
// and checks the algorithm.
func NewAIRecommendationsRequest(query, dataModelID string, opts ...RecommendationOption) (*AIRecommendationsRequest, error) {
	req := &AIRecommendationsRequest{
		DataModelID:     dataModelID,
		Query:           query,
		SimilarityTopK:  constants.DefaultSimilarityTopK,
		NumArticlesRef:  constants.DefaultNumArticlesRef,
		SearchAlgorithm: SearchAlgorithm(constants.DefaultSearchAlgorithm),
	}
	for _, opt := range opts {
		opt(req)
	}
	if !req.SearchAlgorithm.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSearchAlgorithm, req.SearchAlgorithm)
	}
	return req, nil
}
