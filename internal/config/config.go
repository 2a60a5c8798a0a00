package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/quocvuong92/dappier-go/internal/auth"
	"github.com/quocvuong92/dappier-go/internal/constants"
)

// Environment variable names
const (
	EnvPrefix = "DAPPIER"

	EnvAPIKey    = "DAPPIER_API_KEY"
	EnvDebug     = "DAPPIER_DEBUG"
	EnvLogLevel  = "DAPPIER_LOG_LEVEL"
	EnvLogFormat = "DAPPIER_LOG_FORMAT"
)

// Where a resolved API key came from
const (
	SourceFlag   = "flag"
	SourceEnv    = "environment"
	SourceStored = "stored credential"
	SourceFile   = "config file"
)

// Errors
var (
	ErrAPIKeyNotFound         = errors.New("API key must be provided either as an argument or through the environment variable DAPPIER_API_KEY")
	ErrInvalidSearchAlgorithm = errors.New("invalid search algorithm. Use 'most_recent', 'semantic', 'most_likely', or 'trending'")
	ErrDataModelIDNotFound    = errors.New("data model ID not found. Set recommendations.data_model_id in the config file or use --data-model-id")
	ErrInvalidSimilarityTopK  = errors.New("similarity_top_k must be greater than zero")
	ErrInvalidNumArticlesRef  = errors.New("num_articles_ref must not be negative")
)

// Env holds the DAPPIER_* environment settings
type Env struct {
	APIKey    string `envconfig:"API_KEY"`
	Debug     bool   `envconfig:"DEBUG" default:"false"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// LoadEnv reads DAPPIER_* variables
func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("failed to read %s_* environment: %w", EnvPrefix, err)
	}
	env.APIKey = strings.TrimSpace(env.APIKey)
	return &env, nil
}

// ResolveAPIKey applies the library precedence: the explicit argument, then
// DAPPIER_API_KEY, then ErrAPIKeyNotFound. Blank values count as absent.
func ResolveAPIKey(explicit string) (string, error) {
	if key := strings.TrimSpace(explicit); key != "" {
		return key, nil
	}
	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		return key, nil
	}
	return "", ErrAPIKeyNotFound
}

// ValidSearchAlgorithm reports whether s is accepted by the recommendations endpoint
func ValidSearchAlgorithm(s string) bool {
	for _, a := range constants.SearchAlgorithms {
		if s == a {
			return true
		}
	}
	return false
}

// Config holds the CLI configuration
type Config struct {
	APIKey       string
	APIKeySource string

	// Real-time search
	AIModelID string

	// AI recommendations
	DataModelID     string
	SimilarityTopK  int
	Ref             string
	NumArticlesRef  int
	SearchAlgorithm string

	// Output
	Render bool
	JSON   bool

	// Logging
	Debug     bool
	LogLevel  string
	LogFormat string

	Interactive bool
}

// NewConfig creates a new Config with defaults
func NewConfig() *Config {
	return &Config{}
}

// Validate fills unset values and checks them. Precedence is flags (already
// on the struct), then environment, then the stored credential, then the
// config file, then built-in defaults. A missing API key is reported last so
// callers that only need the other settings can ignore it.
func (c *Config) Validate() error {
	if c.APIKey != "" && c.APIKeySource == "" {
		c.APIKeySource = SourceFlag
	}

	env, err := LoadEnv()
	if err != nil {
		return err
	}
	if c.APIKey == "" && env.APIKey != "" {
		c.APIKey = env.APIKey
		c.APIKeySource = SourceEnv
	}
	if env.Debug {
		c.Debug = true
	}
	if c.LogLevel == "" && os.Getenv(EnvLogLevel) != "" {
		c.LogLevel = env.LogLevel
	}
	if c.LogFormat == "" && os.Getenv(EnvLogFormat) != "" {
		c.LogFormat = env.LogFormat
	}

	if c.APIKey == "" {
		if key, err := auth.LoadAPIKey(); err == nil {
			c.APIKey = key
			c.APIKeySource = SourceStored
		}
	}

	// Errors loading config file are ignored; env vars and flags take precedence
	if fileConfig, err := LoadConfigFile(); err == nil {
		c.ApplyFileConfig(fileConfig)
	}

	if c.AIModelID == "" {
		c.AIModelID = constants.RealTimeModelID
	}
	if c.SimilarityTopK == 0 {
		c.SimilarityTopK = constants.DefaultSimilarityTopK
	}
	if c.SearchAlgorithm == "" {
		c.SearchAlgorithm = constants.DefaultSearchAlgorithm
	}
	if c.LogLevel == "" {
		c.LogLevel = env.LogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = env.LogFormat
	}

	if c.SimilarityTopK < 0 {
		return ErrInvalidSimilarityTopK
	}
	if c.NumArticlesRef < 0 {
		return ErrInvalidNumArticlesRef
	}
	if !ValidSearchAlgorithm(c.SearchAlgorithm) {
		return ErrInvalidSearchAlgorithm
	}

	if c.APIKey == "" {
		return ErrAPIKeyNotFound
	}

	return nil
}

// RequireDataModelID checks the setting needed by the recommend command
func (c *Config) RequireDataModelID() error {
	if c.DataModelID == "" {
		return ErrDataModelIDNotFound
	}
	return nil
}

// MaskedAPIKey returns the key with all but the first four characters hidden
func (c *Config) MaskedAPIKey() string {
	return auth.MaskKey(c.APIKey)
}
