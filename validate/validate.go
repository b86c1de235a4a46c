// Command validate provides a small CLI that validates game configuration JSON
// files in the ../configs directory. It checks:
//   - JSON structure and unknown fields
//   - Board size, line size and append count ranges
//   - The palette: known colors, no duplicates, distinct render letters
//   - Playability: the board holds more than one batch of new stones and a
//     sample bot game runs
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wricardo/color-lines/game/bot"
	"github.com/wricardo/color-lines/game/engine"
)

// sampleSeed fixes the sample game so reports are reproducible
const sampleSeed = 1

// knownColors are the colors the renderer and the clients understand
var knownColors = map[engine.Color]bool{
	engine.Red:     true,
	engine.Green:   true,
	engine.Blue:    true,
	engine.Yellow:  true,
	engine.Magenta: true,
	engine.Cyan:    true,
	engine.Brown:   true,
	engine.White:   true,
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

func (r *ValidationResult) fail(format string, args ...interface{}) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) info(format string, args ...interface{}) {
	r.Errors = append(r.Errors, "✓ "+fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single configuration JSON file.
// It performs structural checks, palette checks and a sample bot game.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.fail("Failed to read file: %v", err)
		return result
	}

	var config engine.GameConfig
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&config); err != nil {
		result.fail("Invalid JSON: %v", err)
		return result
	}

	if config.Name == "" {
		result.fail("name is required")
	}
	if err := engine.ValidateGameConfig(&config); err != nil {
		result.fail("%v", err)
	}

	validatePalette(&config, &result)

	// The game is over as soon as the empty cells cannot take another batch
	if cells := config.Size * config.Size; config.Size > 0 && cells <= 2*config.AppendCount {
		result.fail("Board of %d cells cannot hold two batches of %d stones", cells, config.AppendCount)
	}

	if result.Valid {
		validatePlayability(&config, &result)
	}

	// Add informational data
	if result.Valid {
		result.info("Name: %s", config.Name)
		result.info("Board: %dx%d", config.Size, config.Size)
		result.info("Lines of %d, %d new stones per turn", config.LineSize, config.AppendCount)
		result.info("Colors: %d", len(paletteOf(&config)))
	}

	return result
}

// paletteOf returns the configured colors or the classic set
func paletteOf(config *engine.GameConfig) []engine.Color {
	if len(config.Colors) == 0 {
		return engine.DefaultPalette
	}
	return config.Colors
}

// validatePalette rejects unknown colors and notes colors that render with
// the same letter.
func validatePalette(config *engine.GameConfig, result *ValidationResult) {
	letters := make(map[byte][]string)
	for _, c := range paletteOf(config) {
		if !knownColors[c] {
			result.fail("Unknown color '%s'", c)
			continue
		}
		letters[c.Letter()] = append(letters[c.Letter()], string(c))
	}

	for letter, names := range letters {
		if len(names) > 1 {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Note: %s share the render letter '%c'", strings.Join(names, " and "), letter))
		}
	}
}

// validatePlayability plays one seeded bot game to the end and reports it
func validatePlayability(config *engine.GameConfig, result *ValidationResult) {
	game, err := engine.NewEngineWithSeed(config, sampleSeed)
	if err != nil {
		result.fail("Failed to start game: %v", err)
		return
	}
	if game.IsOver() {
		result.fail("Game is over before the first move")
		return
	}

	score, err := bot.Play(context.Background(), game, bot.NewRandomBot(sampleSeed))
	if err != nil {
		result.fail("Sample game failed: %v", err)
		return
	}
	result.info("Sample game: %d points in %d moves", score, len(game.Moves()))
}

// main scans the config directory for *.json files and validates each one,
// printing a concise report and exiting with non-zero status if any are invalid.
func main() {
	configDir := flag.String("dir", "../configs", "directory containing game configurations")
	flag.Parse()

	files, err := filepath.Glob(filepath.Join(*configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateConfig(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
