/*
Package config manages the TOML config for phrasebook.

The file has four sections: [score] holds the ranking weights, [index] the
phrase limits and sources, [search] the query pipeline knobs and [cli] the
defaults of the command line tool.
*/
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/bastiangx/phrasebook/internal/utils"
	"github.com/bastiangx/phrasebook/pkg/score"
	"github.com/bastiangx/phrasebook/pkg/suggest"
	"github.com/bastiangx/phrasebook/pkg/trie"
	"github.com/charmbracelet/log"
)

const (
	appName        = "phrasebook"
	configFileName = "config.toml"
)

// ErrInvalidConfig wraps every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the entire config structure
type Config struct {
	Score  score.Config `toml:"score"`
	Index  IndexConfig  `toml:"index"`
	Search SearchConfig `toml:"search"`
	CLI    CliConfig    `toml:"cli"`
}

// IndexConfig holds phrase book options.
type IndexConfig struct {
	MaxLength int      `toml:"max_length"`
	Phrases   []string `toml:"phrases"`
}

// SearchConfig has query pipeline options.
type SearchConfig struct {
	Limit           int  `toml:"limit"`
	Threshold       int  `toml:"threshold"`
	Fuzzy           bool `toml:"fuzzy"`
	MaxEditDistance int  `toml:"max_edit_distance"`
	MinFuzzyLength  int  `toml:"min_fuzzy_length"`
	PruneFirstRune  bool `toml:"prune_first_rune"`
	CacheSize       int  `toml:"cache_size"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit int    `toml:"default_limit"`
	Prompt       string `toml:"prompt"`
	ShowScores   bool   `toml:"show_scores"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	opts := suggest.DefaultOptions()
	return &Config{
		Score: score.DefaultConfig(),
		Index: IndexConfig{
			MaxLength: trie.DefaultMaxLength,
			Phrases:   []string{},
		},
		Search: SearchConfig{
			Limit:           opts.Limit,
			Threshold:       opts.Threshold,
			Fuzzy:           opts.Fuzzy,
			MaxEditDistance: opts.MaxEditDistance,
			MinFuzzyLength:  opts.MinFuzzyLength,
			PruneFirstRune:  opts.PruneFirstRune,
			CacheSize:       opts.CacheSize,
		},
		CLI: CliConfig{
			DefaultLimit: 10,
			Prompt:       "> ",
			ShowScores:   false,
		},
	}
}

// Validate reports the first out of range value.
func (c *Config) Validate() error {
	if err := c.Score.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Index.MaxLength < 0 {
		return fmt.Errorf("%w: index.max_length is %d", ErrInvalidConfig, c.Index.MaxLength)
	}
	if c.Search.MaxEditDistance < 0 {
		return fmt.Errorf("%w: search.max_edit_distance is %d", ErrInvalidConfig, c.Search.MaxEditDistance)
	}
	if c.Search.CacheSize < 0 {
		return fmt.Errorf("%w: search.cache_size is %d", ErrInvalidConfig, c.Search.CacheSize)
	}
	return nil
}

// CompleterOptions builds completer options from the config. Logger and
// OnInsert are left for the caller.
func (c *Config) CompleterOptions() suggest.Options {
	opts := suggest.DefaultOptions()
	opts.Score = c.Score
	opts.MaxLength = c.Index.MaxLength
	opts.Limit = c.Search.Limit
	opts.Threshold = c.Search.Threshold
	opts.Fuzzy = c.Search.Fuzzy
	opts.MaxEditDistance = c.Search.MaxEditDistance
	opts.MinFuzzyLength = c.Search.MinFuzzyLength
	opts.PruneFirstRune = c.Search.PruneFirstRune
	opts.CacheSize = c.Search.CacheSize
	return opts
}

// GetDefaultConfigPath returns [UserConfigDir]/phrasebook/config.toml
func GetDefaultConfigPath() (string, error) {
	return utils.UserConfigPath(appName, configFileName)
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/phrasebook/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if utils.FileExists(customConfigPath) {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s. Trying default path...", customConfigPath)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	if !utils.FileExists(defaultPath) {
		log.Debugf("No config at %s, using built-in defaults", defaultPath)
		return DefaultConfig(), "", nil
	}

	config, err := LoadConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file. Values that fail to decode keep their
// defaults; a config that decodes but fails Validate is an error.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		config, err = tryPartialParse(configPath)
		if err != nil {
			return nil, err
		}
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// tryPartialParse salvages the well typed values of a TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if section, ok := utils.ExtractSection(tempConfig, "score"); ok {
		extractScoreConfig(section, &config.Score)
	}
	if section, ok := utils.ExtractSection(tempConfig, "index"); ok {
		extractIndexConfig(section, &config.Index)
	}
	if section, ok := utils.ExtractSection(tempConfig, "search"); ok {
		extractSearchConfig(section, &config.Search)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config, nil
}

func extractScoreConfig(data map[string]any, sc *score.Config) {
	if val, ok := utils.ExtractString(data, "word_delimiters"); ok {
		sc.WordDelimiters = val
	}
	ints := map[string]*int{
		"character_adjacency_bonus":      &sc.CharacterAdjacencyBonus,
		"character_adjacency_multiplier": &sc.CharacterAdjacencyMultiplier,
		"max_character_adjacency_bonus":  &sc.MaxCharacterAdjacencyBonus,
		"word_boundary_bonus":            &sc.WordBoundaryBonus,
		"word_prefix_bonus":              &sc.WordPrefixBonus,
		"word_suffix_bonus":              &sc.WordSuffixBonus,
		"character_offset_penalty":       &sc.CharacterOffsetPenalty,
		"max_offset_penalty":             &sc.MaxOffsetPenalty,
	}
	for key, dst := range ints {
		if val, ok := utils.ExtractInt64(data, key); ok {
			*dst = val
		}
	}
}

func extractIndexConfig(data map[string]any, index *IndexConfig) {
	if val, ok := utils.ExtractInt64(data, "max_length"); ok {
		index.MaxLength = val
	}
	if val, ok := utils.ExtractStrings(data, "phrases"); ok {
		index.Phrases = val
	}
}

func extractSearchConfig(data map[string]any, search *SearchConfig) {
	if val, ok := utils.ExtractInt64(data, "limit"); ok {
		search.Limit = val
	}
	if val, ok := utils.ExtractInt64(data, "threshold"); ok {
		search.Threshold = val
	}
	if val, ok := utils.ExtractBool(data, "fuzzy"); ok {
		search.Fuzzy = val
	}
	if val, ok := utils.ExtractInt64(data, "max_edit_distance"); ok {
		search.MaxEditDistance = val
	}
	if val, ok := utils.ExtractInt64(data, "min_fuzzy_length"); ok {
		search.MinFuzzyLength = val
	}
	if val, ok := utils.ExtractBool(data, "prune_first_rune"); ok {
		search.PruneFirstRune = val
	}
	if val, ok := utils.ExtractInt64(data, "cache_size"); ok {
		search.CacheSize = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractString(data, "prompt"); ok {
		cli.Prompt = val
	}
	if val, ok := utils.ExtractBool(data, "show_scores"); ok {
		cli.ShowScores = val
	}
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	if err := utils.EnsureDir(filepath.Dir(configPath)); err != nil {
		return err
	}
	return utils.SaveTOMLFile(config, configPath)
}
