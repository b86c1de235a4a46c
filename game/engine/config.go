package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPalette is the seven-color set used by the classic game
var DefaultPalette = []Color{Red, Green, Blue, Yellow, Magenta, Cyan, Brown}

// EightColorPalette is the larger set used by the older board variant
var EightColorPalette = []Color{Red, Green, White, Yellow, Magenta, Blue, Cyan, Brown}

// DefaultConfig returns the classic 9x9 game: lines of 5, 3 stones per turn
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Name:        "classic",
		Description: "Classic 9x9 board, lines of five, three new stones per turn",
		Size:        9,
		LineSize:    5,
		AppendCount: 3,
		Colors:      append([]Color(nil), DefaultPalette...),
	}
}

// ValidateGameConfig validates a game configuration.
// Every failure wraps ErrConfiguration.
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("%w: config is nil", ErrConfiguration)
	}

	if config.Size < MinBoardSize || config.Size > MaxBoardSize {
		return fmt.Errorf("%w: size must be between %d and %d, got %d", ErrConfiguration, MinBoardSize, MaxBoardSize, config.Size)
	}
	if config.LineSize < MinLineSize {
		return fmt.Errorf("%w: line_size must be at least %d, got %d", ErrConfiguration, MinLineSize, config.LineSize)
	}
	if config.Size < config.LineSize {
		return fmt.Errorf("%w: wrong combination of size and line size (size: %d, line size: %d)",
			ErrConfiguration, config.Size, config.LineSize)
	}
	if config.AppendCount < MinAppendCount {
		return fmt.Errorf("%w: append_count must be at least %d, got %d", ErrConfiguration, MinAppendCount, config.AppendCount)
	}

	seen := make(map[Color]bool, len(config.Colors))
	for i, c := range config.Colors {
		if c == "" {
			return fmt.Errorf("%w: colors[%d] is empty", ErrConfiguration, i)
		}
		if seen[c] {
			return fmt.Errorf("%w: color '%s' is listed twice", ErrConfiguration, c)
		}
		seen[c] = true
	}

	return nil
}

// palette returns the configured colors, falling back to DefaultPalette
func (c *GameConfig) palette() []Color {
	if len(c.Colors) == 0 {
		return DefaultPalette
	}
	return c.Colors
}

// ParseGameConfig decodes and validates a JSON configuration
func ParseGameConfig(data []byte) (*GameConfig, error) {
	var config GameConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidateGameConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadGameConfig loads a game configuration from a JSON file
func LoadGameConfig(filename string) (*GameConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		// If filename starts with "configs/", replace with CONFIG_DIR
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	config, err := ParseGameConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config '%s': %w", filename, err)
	}

	return config, nil
}
