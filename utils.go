/* utils.go
 * Utility functions used by main
 */

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// convertStrToBool converts a string of true or false into a boolean for comparisons
// Preconditions: Receives string containing either true or false (case insensitive)
// Postconditions: Returns boolean value or an error if the string is not true or false
func convertStrToBool(str string) (bool, error) {
	str = strings.TrimSpace(str)
	str = strings.ToLower(str)

	if str == "true" {
		return true, nil
	} else if str == "false" {
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean string")
}

// parseRunFlags converts the -bot and -web flag values. At least one of them must be true
func parseRunFlags(botFlag, webFlag string) (runBot, runWeb bool, err error) {
	runBot, err = convertStrToBool(botFlag)
	if err != nil {
		return false, false, fmt.Errorf("invalid -bot flag %q, should be true or false: %w", botFlag, err)
	}
	runWeb, err = convertStrToBool(webFlag)
	if err != nil {
		return false, false, fmt.Errorf("invalid -web flag %q, should be true or false: %w", webFlag, err)
	}
	if !runBot && !runWeb {
		return false, false, fmt.Errorf("nothing to run, enable -bot or -web")
	}
	return runBot, runWeb, nil
}

// parseLogLevel converts a level name such as "debug" into a zerolog level. Empty means info
func parseLogLevel(level string) (zerolog.Level, error) {
	level = strings.TrimSpace(strings.ToLower(level))
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(level)
}

// setupLogger points the global logger at a console writer on stderr. An unknown level falls back to info
func setupLogger(level string) {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	lvl, err := parseLogLevel(level)
	if err != nil {
		log.Warn().Str("level", level).Msg("unknown log level, using info")
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
