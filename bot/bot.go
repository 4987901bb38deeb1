/* bot.go
 * Contains logic used for creating the bot and parsing commands. Requires a discord bot token, an APIPtr and the
 * session registry, all of which are passed in from main.go
 */

package bot

import (
	"fmt"
	"strings"

	"nfl-playoff-picks/api/api"
	"nfl-playoff-picks/api/session"

	"github.com/go-andiamo/splitter"
)

// discord rejects messages longer than this
const maxMessageLength = 2000

type Bot struct {
	BotToken string
	APIPtr   *api.API
	Sessions *session.Registry
}

func NewBot(botToken string, apiPtr *api.API, sessions *session.Registry) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}
	if apiPtr == nil {
		return nil, fmt.Errorf("apiPtr is required but none was provided")
	}
	if sessions == nil {
		sessions = session.NewRegistry()
	}

	return &Bot{
		BotToken: botToken,
		APIPtr:   apiPtr,
		Sessions: sessions,
	}, nil
}

// splitArgs splits a message into the command and its arguments. Quoted arguments are kept together, so
// `$picks "Mary Ann" Smith` is three parts
func splitArgs(content string) (string, []string) {
	//we use splitter here instead of strings.Fields so that names with spaces can be quoted
	spaceSplitter, err := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		return "", nil
	}
	parts, err := spaceSplitter.Split(strings.TrimSpace(content))
	if err != nil {
		// unbalanced quotes, fall back to plain whitespace splitting
		parts = strings.Fields(content)
	}

	var args []string
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), "\"“”")
		if p != "" {
			args = append(args, p)
		}
	}
	switch len(args) {
	case 0:
		return "", nil
	case 1:
		return strings.ToLower(args[0]), nil
	}
	return strings.ToLower(args[0]), args[1:]
}

// chunkMessage splits res on line boundaries so each chunk fits in one discord message
func chunkMessage(res string) []string {
	if len(res) <= maxMessageLength {
		return []string{res}
	}

	var chunks []string
	var current strings.Builder
	for _, line := range strings.SplitAfter(res, "\n") {
		for len(line) > maxMessageLength {
			if current.Len() > 0 {
				chunks = append(chunks, current.String())
				current.Reset()
			}
			chunks = append(chunks, line[:maxMessageLength])
			line = line[maxMessageLength:]
		}
		if current.Len()+len(line) > maxMessageLength {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
