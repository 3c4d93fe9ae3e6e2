/* session_interface.go
 * Contains the interface for the Discord session so handlers can be tested without a connection
 * Authors: Zachary Bower
 */

package bot

import (
	"io"

	"github.com/bwmarrin/discordgo"
)

// DiscordSession defines the Discord session methods used by the bot
type DiscordSession interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelFileSend(channelID string, name string, r io.Reader, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Ensure *discordgo.Session implements DiscordSession
var _ DiscordSession = (*discordgo.Session)(nil)
