package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/quocvuong92/dappier-go/internal/constants"
)

// ConfigFileName is the name of the config file
const ConfigFileName = "config.yaml"

// FileConfig represents the configuration file structure
type FileConfig struct {
	APIKey string `yaml:"api_key,omitempty"`

	// Default AI model for real-time search
	AIModelID string `yaml:"ai_model_id,omitempty"`

	Recommendations *RecommendationsConfig `yaml:"recommendations,omitempty"`
	Logging         *LoggingConfig         `yaml:"logging,omitempty"`
	Defaults        *DefaultsConfig        `yaml:"defaults,omitempty"`
}

// RecommendationsConfig holds defaults for `dappier recommend`
type RecommendationsConfig struct {
	DataModelID     string `yaml:"data_model_id,omitempty"`
	SimilarityTopK  int    `yaml:"similarity_top_k,omitempty"`
	Ref             string `yaml:"ref,omitempty"`
	NumArticlesRef  int    `yaml:"num_articles_ref,omitempty"`
	SearchAlgorithm string `yaml:"search_algorithm,omitempty"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// DefaultsConfig holds default flag values
type DefaultsConfig struct {
	Render bool `yaml:"render,omitempty"`
	JSON   bool `yaml:"json,omitempty"`
}

// GetConfigPaths returns the paths to check for config files (in order of priority)
func GetConfigPaths() []string {
	var paths []string

	// 1. Current directory
	paths = append(paths, filepath.Join(".", "."+constants.AppName, ConfigFileName))

	// 2. User config directory
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, constants.AppName, ConfigFileName))
	}

	// 3. Home directory
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", constants.AppName, ConfigFileName))
	}

	return paths
}

// FindConfigFile returns the first existing config file, or "" if none exists
func FindConfigFile() string {
	for _, path := range GetConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadConfigFile loads the first config file found. It returns an empty
// config when no file exists.
func LoadConfigFile() (*FileConfig, error) {
	if path := FindConfigFile(); path != "" {
		return loadConfigFromPath(path)
	}
	return &FileConfig{}, nil
}

func loadConfigFromPath(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, nil
}

// ApplyFileConfig applies file configuration to the main Config.
// File config has lower priority than environment variables and CLI flags.
func (c *Config) ApplyFileConfig(fc *FileConfig) {
	if fc == nil {
		return
	}

	if c.APIKey == "" && fc.APIKey != "" {
		c.APIKey = fc.APIKey
		c.APIKeySource = SourceFile
	}

	if c.AIModelID == "" && fc.AIModelID != "" {
		c.AIModelID = fc.AIModelID
	}

	if r := fc.Recommendations; r != nil {
		if c.DataModelID == "" {
			c.DataModelID = r.DataModelID
		}
		if c.SimilarityTopK == 0 {
			c.SimilarityTopK = r.SimilarityTopK
		}
		if c.Ref == "" {
			c.Ref = r.Ref
		}
		if c.NumArticlesRef == 0 {
			c.NumArticlesRef = r.NumArticlesRef
		}
		if c.SearchAlgorithm == "" {
			c.SearchAlgorithm = r.SearchAlgorithm
		}
	}

	if l := fc.Logging; l != nil {
		if c.LogLevel == "" {
			c.LogLevel = l.Level
		}
		if c.LogFormat == "" {
			c.LogFormat = l.Format
		}
	}

	// Flags can't be told apart from "set to false", so only true values apply
	if fc.Defaults != nil {
		if fc.Defaults.Render {
			c.Render = true
		}
		if fc.Defaults.JSON {
			c.JSON = true
		}
	}
}

// CreateDefaultConfigFile writes a commented config file to the user config
// directory and returns its path
func CreateDefaultConfigFile() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine config directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	dir := filepath.Join(configDir, constants.AppName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists at %s", path)
	}

	defaultConfig := `# Dappier CLI Configuration
# Location: ~/.config/dappier/config.yaml

# API key (prefer DAPPIER_API_KEY or 'dappier login' over storing it here)
# api_key: ak_...

# AI model used by 'dappier search' and interactive mode
# ai_model_id: am_01j06ytn18ejftedz6dyhz2b15

# Defaults for 'dappier recommend'
# recommendations:
#   data_model_id: dm_...
#   similarity_top_k: 9
#   ref: techcrunch.com
#   num_articles_ref: 0
#   search_algorithm: most_recent  # most_recent, semantic, most_likely, trending

# logging:
#   level: info   # debug, info, warn, error, none
#   format: text  # text or json

# defaults:
#   render: true
#   json: false
`

	if err := os.WriteFile(path, []byte(defaultConfig), 0600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}
