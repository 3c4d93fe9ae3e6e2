/* handlers.go
 * Contains the command handlers. Each accepts the DiscordSession interface so it can be tested with a mock session
 * Authors: Zachary Bower
 */

package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"madness-pool/api/api"
	"madness-pool/api/bracket"
	"madness-pool/api/shared"

	"github.com/bwmarrin/discordgo"
	"go.mongodb.org/mongo-driver/mongo"
)

const adminTimeout = 30 * time.Second

// send posts a response, splitting it when it is longer than discord allows
func send(session DiscordSession, channelID string, content string) {
	for _, chunk := range splitMessage(content) {
		if _, err := session.ChannelMessageSend(channelID, chunk); err != nil {
			log.Printf("failed to send message to %s: %v", channelID, err)
			return
		}
	}
}

// userError turns an api error into the text shown to the user. Errors the user can act on are shown as is,
// anything else is logged
func userError(action string, err error) string {
	switch {
	case errors.Is(err, api.ErrNoTournament),
		errors.Is(err, api.ErrNoBracket),
		errors.Is(err, api.ErrSubmissionClosed),
		errors.Is(err, api.ErrBracketSubmitted),
		errors.Is(err, api.ErrIncompleteBracket),
		errors.Is(err, api.ErrGameNotReady),
		errors.Is(err, api.ErrUnknownTeam),
		errors.Is(err, api.ErrFinalRound),
		errors.Is(err, bracket.ErrInvalidRound),
		errors.Is(err, bracket.ErrDataIntegrity):
		return fmt.Sprintf("Could not %s: %s", action, err)
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Sprintf("Could not %s: nothing has been stored yet", action)
	}
	log.Printf("error trying to %s: %v", action, err)
	return fmt.Sprintf("An error occurred trying to %s", action)
}

func userFrom(message *discordgo.MessageCreate) shared.User {
	return shared.User{UserID: message.Author.ID, Username: message.Author.Username}
}

// helpMessageHandler handles the $help command
func (b *Bot) helpMessageHandler(session DiscordSession, message *discordgo.MessageCreate) {
	var res strings.Builder
	res.WriteString("Madness Pool Bot\n")
	res.WriteString("`$details`: tournament name, current round and submission deadline\n")
	res.WriteString("`$teams`: every team in the field by region and seed\n")
	res.WriteString("`$new [name]`: start a new bracket. This replaces an unsubmitted bracket\n")
	res.WriteString("`$matchups [round]`: the games of a round as they stand in your bracket. Defaults to round 1\n")
	res.WriteString("`$pick <game> <team>`: pick the winner of a game. Names with spaces can be quoted (e.g. \"North Carolina\"), close matches are accepted\n")
	res.WriteString("`$submit`: lock in your bracket once all 63 games are picked\n")
	res.WriteString("`$check`: your score, correct picks and max possible score\n")
	res.WriteString("`$leaderboard`: the standings. Ties are broken by max possible, then correct picks\n")
	res.WriteString("`$compare <@user>`: score your bracket as if another user's picks were the results\n")
	res.WriteString("`$chart`: your points per round as a chart\n")
	if b.isAdmin(message.Author.ID) {
		res.WriteString("`$result <game> <team>`: record the winner of a game (admin)\n")
		res.WriteString("`$round <n>`: set the round being played (admin)\n")
	}
	send(session, message.ChannelID, res.String())
}

// detailsHandler handles the $details command
func (b *Bot) detailsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	info, err := b.APIPtr.GetTournamentInfo()
	if err != nil {
		send(session, message.ChannelID, userError("get the tournament details", err))
		return
	}
	send(session, message.ChannelID, info)
}

// teamsHandler handles the $teams command
func (b *Bot) teamsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	teams, err := b.APIPtr.GetTeams()
	if err != nil {
		send(session, message.ChannelID, userError("get the teams list", err))
		return
	}

	var res strings.Builder
	var region shared.Region
	for _, team := range teams {
		if team.Region != region {
			region = team.Region
			res.WriteString(fmt.Sprintf("**%s**\n", region))
		}
		res.WriteString(fmt.Sprintf("%d. %s\n", team.Seed, team.Name))
	}
	send(session, message.ChannelID, res.String())
}

// newBracketHandler handles the $new command
func (b *Bot) newBracketHandler(session DiscordSession, message *discordgo.MessageCreate) {
	user := userFrom(message)
	name := strings.Join(parseArgs(message.Content), " ")

	created, err := b.APIPtr.CreateBracket(user, name)
	if err != nil {
		send(session, message.ChannelID, userError("create a bracket", err))
		return
	}
	send(session, message.ChannelID, fmt.Sprintf("Created %s. Use $matchups to see the first round and $pick to fill it in", created.Name))
}

// matchupsHandler handles the $matchups command
func (b *Bot) matchupsHandler(session DiscordSession, message *discordgo.MessageCreate) {
	round := 1
	if args := parseArgs(message.Content); len(args) > 0 {
		r, err := strconv.Atoi(args[0])
		if err != nil {
			send(session, message.ChannelID, "Usage: $matchups [round], where round is 1-6")
			return
		}
		round = r
	}

	games, err := b.APIPtr.GetMatchups(userFrom(message), round)
	if err != nil {
		send(session, message.ChannelID, userError("get the matchups", err))
		return
	}

	var res strings.Builder
	res.WriteString(fmt.Sprintf("Round %d games:\n", round))
	for _, g := range games {
		res.WriteString(formatGame(g))
	}
	send(session, message.ChannelID, res.String())
}

func formatGame(g shared.Game) string {
	teamA, teamB := g.TeamA, g.TeamB
	if teamA == "" {
		teamA = "TBD"
	}
	if teamB == "" {
		teamB = "TBD"
	}
	line := fmt.Sprintf("%d. %s vs %s", g.GameID, teamA, teamB)
	if g.Region != "" {
		line = fmt.Sprintf("%d. [%s] %s vs %s", g.GameID, g.Region, teamA, teamB)
	}
	if g.Winner != "" {
		line += fmt.Sprintf(" (picked %s)", g.Winner)
	}
	return line + "\n"
}

// parseGameAndTeam reads "<game> <team...>" from a command
func parseGameAndTeam(content string) (int, string, bool) {
	args := parseArgs(content)
	if len(args) < 2 {
		return 0, "", false
	}
	gameID, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, "", false
	}
	return gameID, strings.Join(args[1:], " "), true
}

// pickHandler handles the $pick command
func (b *Bot) pickHandler(session DiscordSession, message *discordgo.MessageCreate) {
	gameID, team, ok := parseGameAndTeam(message.Content)
	if !ok {
		send(session, message.ChannelID, "Usage: $pick <game> <team>")
		return
	}

	game, err := b.APIPtr.SetPick(userFrom(message), gameID, team)
	if err != nil {
		send(session, message.ChannelID, userError("set that pick", err))
		return
	}
	send(session, message.ChannelID, fmt.Sprintf("%s picked %s to win game %d", message.Author.Username, game.Winner, game.GameID))
}

// submitHandler handles the $submit command
func (b *Bot) submitHandler(session DiscordSession, message *discordgo.MessageCreate) {
	user := userFrom(message)
	if err := b.APIPtr.SubmitBracket(user); err != nil {
		send(session, message.ChannelID, userError("submit your bracket", err))
		return
	}
	send(session, message.ChannelID, fmt.Sprintf("%s's bracket has been submitted. Good luck!", user.Username))
}

// checkHandler handles the $check command
func (b *Bot) checkHandler(session DiscordSession, message *discordgo.MessageCreate) {
	user := userFrom(message)
	res, err := b.APIPtr.CheckBracket(user)
	if err != nil {
		if errors.Is(err, api.ErrNoBracket) {
			res = fmt.Sprintf("%s does not have a bracket. Use $new to start one\n", user.Username)
		} else {
			res = userError("check your bracket", err)
		}
	}
	send(session, message.ChannelID, res)
}

// leaderboardHandler handles the $leaderboard command
func (b *Bot) leaderboardHandler(session DiscordSession, message *discordgo.MessageCreate) {
	res, err := b.APIPtr.GetLeaderboard()
	if err != nil {
		res = userError("get the leaderboard", err)
	}
	send(session, message.ChannelID, res)
}

// compareHandler handles the $compare command
func (b *Bot) compareHandler(session DiscordSession, message *discordgo.MessageCreate) {
	var otherID string
	if len(message.Mentions) > 0 {
		otherID = message.Mentions[0].ID
	} else if args := parseArgs(message.Content); len(args) > 0 {
		otherID, _ = parseUserID(args[0])
	}
	if otherID == "" {
		send(session, message.ChannelID, "Usage: $compare <@user>")
		return
	}

	res, err := b.APIPtr.CompareBrackets(userFrom(message), otherID)
	if err != nil {
		res = userError("compare brackets", err)
	}
	send(session, message.ChannelID, res)
}

// chartHandler handles the $chart command
func (b *Bot) chartHandler(session DiscordSession, message *discordgo.MessageCreate) {
	png, err := b.APIPtr.RoundScoreChart(userFrom(message))
	if err != nil {
		send(session, message.ChannelID, userError("draw your chart", err))
		return
	}
	if _, err := session.ChannelFileSend(message.ChannelID, "rounds.png", bytes.NewReader(png)); err != nil {
		log.Printf("failed to send chart to %s: %v", message.ChannelID, err)
	}
}

// resultHandler handles the admin $result command
func (b *Bot) resultHandler(session DiscordSession, message *discordgo.MessageCreate) {
	if !b.isAdmin(message.Author.ID) {
		send(session, message.ChannelID, "Only admins can record results")
		return
	}
	gameID, team, ok := parseGameAndTeam(message.Content)
	if !ok {
		send(session, message.ChannelID, "Usage: $result <game> <team>")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), adminTimeout)
	defer cancel()
	game, err := b.APIPtr.RecordResult(ctx, gameID, team)
	if err != nil {
		send(session, message.ChannelID, userError("record that result", err))
		return
	}
	send(session, message.ChannelID, fmt.Sprintf("%s won game %d. The leaderboard has been updated", game.Winner, game.GameID))
}

// roundHandler handles the admin $round command
func (b *Bot) roundHandler(session DiscordSession, message *discordgo.MessageCreate) {
	if !b.isAdmin(message.Author.ID) {
		send(session, message.ChannelID, "Only admins can change the round")
		return
	}
	args := parseArgs(message.Content)
	if len(args) != 1 {
		send(session, message.ChannelID, "Usage: $round <n>")
		return
	}
	round, err := strconv.Atoi(args[0])
	if err != nil {
		send(session, message.ChannelID, "Usage: $round <n>")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), adminTimeout)
	defer cancel()
	if err := b.APIPtr.SetCurrentRound(ctx, round); err != nil {
		send(session, message.ChannelID, userError("change the round", err))
		return
	}
	send(session, message.ChannelID, fmt.Sprintf("The tournament is now in round %d", round))
}

// newMessageHandler routes messages to the appropriate handler
// botUserID is the bot's user ID to prevent self-responses
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	if message.Author == nil || message.Author.ID == botUserID || message.Author.Bot {
		return
	}
	if !strings.HasPrefix(message.Content, "$") {
		return
	}

	handlers := []struct {
		command string
		handle  func(DiscordSession, *discordgo.MessageCreate)
	}{
		{"$help", b.helpMessageHandler},
		{"$details", b.detailsHandler},
		{"$teams", b.teamsHandler},
		{"$new", b.newBracketHandler},
		{"$matchups", b.matchupsHandler},
		{"$pick", b.pickHandler},
		{"$submit", b.submitHandler},
		{"$check", b.checkHandler},
		{"$leaderboard", b.leaderboardHandler},
		{"$compare", b.compareHandler},
		{"$chart", b.chartHandler},
		{"$result", b.resultHandler},
		{"$round", b.roundHandler},
	}
	for _, h := range handlers {
		if !startsWith(message.Content, h.command) {
			continue
		}
		if b.Limiter != nil && !b.Limiter.Allow(message.Author.ID) {
			send(session, message.ChannelID, fmt.Sprintf("%s, slow down! Try again in a few seconds", message.Author.Username))
			return
		}
		h.handle(session, message)
		return
	}
}
