// Package config provides configuration management for the Color Lines game.
//
// The config package handles:
//   - Loading game configurations from JSON files
//   - Configuration validation
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Game configurations are stored as JSON files in the configs directory.
// Each configuration defines the board size, the run length that clears a
// line, the number of stones dropped per turn and optionally the stone
// palette and a fixed seed:
//
//	{
//	  "name": "classic",
//	  "size": 9,
//	  "line_size": 5,
//	  "append_count": 3,
//	  "colors": ["red", "green", "blue", "yellow", "magenta", "cyan", "brown"]
//	}
//
// The file name without its extension is the config ID used when creating
// sessions. classic.json is the default when present; otherwise the first
// valid file, and finally a built-in 9x9 configuration.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("small")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
package config
