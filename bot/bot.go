/* bot.go
 * Contains the Bot struct and the helpers used by the command handlers. Requires a discord bot token and APIPtr, both
 * of which are passed in from main.go
 * Authors: Zachary Bower
 */

package bot

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"madness-pool/api/api"

	"github.com/go-andiamo/splitter"
	"golang.org/x/time/rate"
)

// maxMessageLength is the longest message discord accepts
const maxMessageLength = 2000

type Bot struct {
	BotToken string
	APIPtr   *api.API
	AdminIDs map[string]bool
	Limiter  *UserRateLimiter
}

// NewBot creates a bot. Users in adminIDs may run $result and $round. A commandRate of 0 disables rate limiting
func NewBot(botToken string, apiPtr *api.API, adminIDs []string, commandRate rate.Limit, burst int) (*Bot, error) {
	if botToken == "" {
		return nil, fmt.Errorf("botToken is required but none was provided")
	}
	if apiPtr == nil {
		return nil, fmt.Errorf("api is required but none was provided")
	}

	admins := make(map[string]bool, len(adminIDs))
	for _, id := range adminIDs {
		if id = strings.TrimSpace(id); id != "" {
			admins[id] = true
		}
	}

	b := &Bot{
		BotToken: botToken,
		APIPtr:   apiPtr,
		AdminIDs: admins,
	}
	if commandRate > 0 {
		b.Limiter = NewUserRateLimiter(commandRate, burst)
	}
	return b, nil
}

// isAdmin reports whether a discord user may run admin commands
func (b *Bot) isAdmin(userID string) bool {
	return b.AdminIDs[userID]
}

// Helper function to check if a message is a given command. "$check" matches "$check" and "$check x" but not "$checked"
func startsWith(inputString string, command string) bool {
	if !strings.HasPrefix(inputString, command) {
		return false
	}
	rest := inputString[len(command):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t' || rest[0] == '\n'
}

var quoteReplacer = strings.NewReplacer("\"", "", "“", "", "”", "")

// parseArgs splits a command into its arguments. Names that contain spaces can be wrapped in quotes, e.g.
// $pick 7 "Mount St. Mary's". The command itself is dropped
func parseArgs(content string) []string {
	spaceSplitter, err := splitter.NewSplitter(' ', splitter.DoubleQuotes, splitter.LeftRightDoubleDoubleQuotes)
	if err != nil {
		return nil
	}
	parts, err := spaceSplitter.Split(strings.TrimSpace(content))
	if err != nil {
		// Unbalanced quotes, fall back to plain fields
		parts = strings.Fields(content)
	}

	var args []string
	for _, part := range parts {
		part = strings.TrimSpace(quoteReplacer.Replace(part))
		if part != "" {
			args = append(args, part)
		}
	}
	if len(args) <= 1 {
		return nil
	}
	return args[1:]
}

var mentionPattern = regexp.MustCompile(`^<@!?(\d+)>$`)

// parseUserID accepts a discord mention or a raw user id
func parseUserID(arg string) (string, bool) {
	if m := mentionPattern.FindStringSubmatch(arg); m != nil {
		return m[1], true
	}
	for _, r := range arg {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return arg, arg != ""
}

// splitMessage breaks a response into chunks discord will accept, splitting on line breaks where possible
func splitMessage(content string) []string {
	if len(content) <= maxMessageLength {
		return []string{content}
	}

	var chunks []string
	var current strings.Builder
	for _, line := range strings.SplitAfter(content, "\n") {
		for len(line) > maxMessageLength {
			if current.Len() > 0 {
				chunks = append(chunks, current.String())
				current.Reset()
			}
			cut := runeBoundary(line, maxMessageLength)
			chunks = append(chunks, line[:cut])
			line = line[cut:]
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

// runeBoundary returns the largest index <= max that does not fall inside a multi byte character
func runeBoundary(s string, max int) int {
	if max >= len(s) {
		return len(s)
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	if cut == 0 {
		return max
	}
	return cut
}
