// Package constants provides shared constants used across the library and CLI
// to avoid circular dependencies between packages.
package constants

import "time"

// BaseURL is the fixed Dappier API host
const BaseURL = "https://api.dappier.com"

// API paths, relative to BaseURL
const (
	AIModelPath = "/app/aimodel/"
	SearchPath  = "/app/v2/search"
)

// Well-known AI model IDs
const (
	// RealTimeModelID answers general real-time web queries
	RealTimeModelID = "am_01j06ytn18ejftedz6dyhz2b15"
	// StockMarketModelID answers stock market queries backed by Polygon data
	StockMarketModelID = "am_01j749h8pbf7ns8r1bq9s2evrh"
)

// AI recommendation defaults
const (
	DefaultSimilarityTopK  = 9
	DefaultNumArticlesRef  = 0
	DefaultSearchAlgorithm = "most_recent"
)

// SearchAlgorithms lists every value the recommendations endpoint accepts
var SearchAlgorithms = []string{
	"most_recent",
	"semantic",
	"most_likely",
	"trending",
}

// Timeout constants used by the CLI. The library itself sets no timeout.
const (
	// DefaultCommandTimeout bounds a single CLI request
	DefaultCommandTimeout = 60 * time.Second
)

// AppName is used for config and credential directories
const AppName = "dappier"
