package dappier

import (
	"encoding/json"

	"github.com/quocvuong92/dappier-go/internal/api"
	"github.com/quocvuong92/dappier-go/internal/config"
	"github.com/quocvuong92/dappier-go/internal/constants"
)

// SearchAlgorithm selects how the recommendations endpoint ranks articles
type SearchAlgorithm string

const (
	SearchAlgorithmMostRecent SearchAlgorithm = "most_recent"
	SearchAlgorithmSemantic   SearchAlgorithm = "semantic"
	SearchAlgorithmMostLikely SearchAlgorithm = "most_likely"
	SearchAlgorithmTrending   SearchAlgorithm = "trending"
)

// Valid reports whether the API accepts a
func (a SearchAlgorithm) Valid() bool {
	return config.ValidSearchAlgorithm(string(a))
}

// Well-known AI model IDs
const (
	RealTimeModelID    = constants.RealTimeModelID
	StockMarketModelID = constants.StockMarketModelID
)

// RealTimeDataRequest is the body of POST /app/aimodel/{model_id}
type RealTimeDataRequest struct {
	Query string `json:"query"`
}

// RealTimeDataResponse is the answer of a real-time search
type RealTimeDataResponse struct {
	Message string `json:"message"`

	// Raw is the full response body, for fields not modeled here
	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON rejects bodies without a "message" string
func (r *RealTimeDataResponse) UnmarshalJSON(data []byte) error {
	var aux struct {
		Message *string `json:"message"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Message == nil {
		return &api.MissingFieldError{Field: "message"}
	}
	r.Message = *aux.Message
	r.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// AIRecommendationsRequest is the body of POST /app/v2/search. Ref is sent
// as null when unset.
type AIRecommendationsRequest struct {
	DataModelID     string          `json:"datamodel_id"`
	Query           string          `json:"query"`
	SimilarityTopK  int             `json:"similarity_top_k"`
	Ref             *string         `json:"ref"`
	NumArticlesRef  int             `json:"num_articles_ref"`
	SearchAlgorithm SearchAlgorithm `json:"search_algorithm"`
}

// AIRecommendationsResponse is the answer of the recommendations endpoint
type AIRecommendationsResponse struct {
	Status   string                `json:"status"`
	Response RecommendationsResult `json:"response"`

	// Raw is the full response body, for fields not modeled here
	Raw json.RawMessage `json:"-"`
}

// RecommendationsResult holds the ranked articles
type RecommendationsResult struct {
	Query   string    `json:"query"`
	Results []Article `json:"results"`
}

// Article is one recommended piece of content
type Article struct {
	Author         string  `json:"author"`
	ImageURL       string  `json:"image_url"`
	PreviewContent string  `json:"preview_content"`
	PubDate        string  `json:"pubdate"`
	PubDateUnix    int64   `json:"pubdate_unix"`
	Score          float64 `json:"score"`
	Site           string  `json:"site"`
	SiteDomain     string  `json:"site_domain"`
	Summary        string  `json:"summary"`
	Title          string  `json:"title"`
	URL            string  `json:"url"`
}

// UnmarshalJSON rejects bodies without a "response" object
func (r *AIRecommendationsResponse) UnmarshalJSON(data []byte) error {
	var aux struct {
		Status   string                 `json:"status"`
		Response *RecommendationsResult `json:"response"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Response == nil {
		return &api.MissingFieldError{Field: "response"}
	}
	r.Status = aux.Status
	r.Response = *aux.Response
	r.Raw = append(json.RawMessage(nil), data...)
	return nil
}
