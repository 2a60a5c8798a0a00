package dappier

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	"github.com/quocvuong92/dappier-go/internal/api"
	"github.com/quocvuong92/dappier-go/internal/auth"
	"github.com/quocvuong92/dappier-go/internal/config"
	"github.com/quocvuong92/dappier-go/internal/constants"
	"github.com/quocvuong92/dappier-go/internal/logging"
)

// Operation names used in logs and metrics
const (
	opRealTimeSearch    = "search_real_time_data"
	opAIRecommendations = "get_ai_recommendations"
)

const (
	msgRealTimeFailed    = "An error occurred while searching real-time data"
	msgRecommendFailed   = "An error occurred while fetching AI recommendations"
	msgUnclosedAsyncWarn = "AsyncClient was not closed explicitly. Call Close to release connections."
)

// core is the state and request logic shared by Client and AsyncClient
type core struct {
	apiKey  string
	session *api.Session
	logger  *logging.Logger
}

func newCore(apiKey string, opts []Option) (*core, error) {
	key, err := config.ResolveAPIKey(apiKey)
	if err != nil {
		return nil, &ConfigurationError{Err: err}
	}

	o, err := defaultClientOptions()
	if err != nil {
		return nil, &ConfigurationError{Err: err}
	}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, &ConfigurationError{Err: err}
		}
	}

	level := o.logLevel
	if o.debug {
		level = logging.LevelDebug
	}
	logger := logging.New(logging.Options{
		Level:  level,
		Format: o.logFormat,
		Output: o.logOutput,
	})

	sessionOpts := api.SessionOptions{
		BaseURL:    o.baseURL,
		HTTPClient: o.httpClient,
		Timeout:    o.timeout,
	}
	if o.debug {
		sessionOpts.HTTPLogger = logging.NewHTTPLogger(logger)
	}

	return &core{
		apiKey:  key,
		session: api.NewSession(key, constants.BaseURL, sessionOpts),
		logger:  logger,
	}, nil
}

func (c *core) describe(kind string) string {
	return "dappier." + kind + "(api_key=" + auth.MaskKey(c.apiKey) + ")"
}

// callLogger tags every line of one call with a fresh request_id
func (c *core) callLogger(operation string, fields logging.Fields) *logging.FieldLogger {
	log := c.logger.WithFields(logging.Fields{
		"operation":  operation,
		"request_id": uuid.NewString(),
	})
	return log.WithFields(fields)
}

func (c *core) searchRealTimeData(ctx context.Context, log *logging.FieldLogger, query, aiModelID string) (*RealTimeDataResponse, error) {
	log.Debug("Searching real-time data", logging.Fields{"query": query})

	var out RealTimeDataResponse
	err := c.session.PostJSON(ctx, api.Request{
		Operation: opRealTimeSearch,
		Path:      constants.AIModelPath + url.PathEscape(aiModelID),
		Body:      RealTimeDataRequest{Query: query},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *core) getAIRecommendations(ctx context.Context, log *logging.FieldLogger, query, dataModelID string, opts []RecommendationOption) (*AIRecommendationsResponse, error) {
	req, err := NewAIRecommendationsRequest(query, dataModelID, opts...)
	if err != nil {
		return nil, err
	}
	log.Debug("Fetching AI recommendations", logging.Fields{
		"query":            query,
		"search_algorithm": req.SearchAlgorithm,
		"similarity_top_k": req.SimilarityTopK,
	})

	var out AIRecommendationsResponse
	err = c.session.PostJSON(ctx, api.Request{
		Operation: opAIRecommendations,
		Path:      constants.SearchPath,
		Query:     url.Values{"data_model_id": {dataModelID}},
		Body:      req,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func realTimeFields(aiModelID string) logging.Fields {
	return logging.Fields{"ai_model_id": aiModelID}
}

func recommendFields(dataModelID string) logging.Fields {
	return logging.Fields{"data_model_id": dataModelID}
}

// logFailure turns (resp, err) into the nil-on-failure result
func logFailure[T any](log *logging.FieldLogger, msg string, resp *T, err error) *T {
	if err != nil {
		log.Error(msg, err)
		return nil
	}
	return resp
}
