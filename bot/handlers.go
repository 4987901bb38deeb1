/* handlers.go
 * Contains testable handler methods that accept the DiscordSession interface
 */

package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nfl-playoff-picks/api/api"
	"nfl-playoff-picks/api/apperror"
	"nfl-playoff-picks/api/logic"
	"nfl-playoff-picks/api/shared"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// commandTimeout bounds the store and sync work done for one command
const commandTimeout = 30 * time.Second

// newMessageHandler routes messages to appropriate handlers with a DiscordSession interface
// botUserID is the bot's user ID to prevent self-responses
func (b *Bot) newMessageHandler(session DiscordSession, message *discordgo.MessageCreate, botUserID string) {
	if message.Author == nil || message.Author.ID == botUserID {
		return
	}
	if !strings.HasPrefix(message.Content, "$") {
		return
	}

	command, args := splitArgs(message.Content)
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	switch command {
	case "$help":
		b.helpMessageHandler(session, message)
	case "$signin":
		b.signInHandler(ctx, session, message, args)
	case "$signout":
		b.signOutHandler(session, message)
	case "$whoami":
		b.whoAmIHandler(session, message)
	case "$games":
		b.gamesHandler(ctx, session, message, args)
	case "$pick":
		b.pickHandler(ctx, session, message, args)
	case "$picks":
		b.userPicksHandler(ctx, session, message, args)
	case "$leaderboard":
		b.leaderboardHandler(ctx, session, message)
	case "$refresh":
		b.refreshHandler(ctx, session, message)
	}
}

// send posts res to the channel, splitting it if it is too long for one message
func send(session DiscordSession, channelID string, res string) {
	for _, chunk := range chunkMessage(res) {
		if _, err := session.ChannelMessageSend(channelID, chunk); err != nil {
			log.Error().Err(err).Str("channel_id", channelID).Msg("failed to send discord message")
			return
		}
	}
}

// sendError posts a user facing message for err. Errors that aren't app errors are logged and replaced with fallback
func sendError(session DiscordSession, channelID string, err error, fallback string) {
	msg := apperror.UserMessage(err, "")
	if msg == "" {
		log.Error().Err(err).Msg(fallback)
		msg = fallback
	}
	send(session, channelID, msg)
}

// helpMessageHandler handles the $help command
func (b *Bot) helpMessageHandler(session DiscordSession, message *discordgo.MessageCreate) {
	var res strings.Builder
	res.WriteString("NFL Playoff Pick'em\n")
	res.WriteString("`$signin First Last`: sign in (or sign up) by name. Use quotes for names with spaces, e.g. `$signin \"Mary Ann\" Smith`\n")
	res.WriteString("`$signout`: sign out\n")
	res.WriteString("`$whoami`: shows who you are signed in as\n")
	res.WriteString("`$games [round]`: lists the playoff games and their ids. Round is one of wild_card, divisional, conference, super_bowl\n")
	res.WriteString("`$pick gameID team [gameID team ...]`: picks the winner of one or more games. Team is the team code, e.g. KC\n")
	res.WriteString("`$picks [First Last]`: shows your picks, or another player's\n")
	res.WriteString("`$leaderboard`: shows the standings. Ranked by win percentage, ties go to the player with more decided picks\n")
	res.WriteString("`$refresh`: pulls the latest scores\n")
	res.WriteString("Picks lock when a game kicks off\n")
	send(session, message.ChannelID, res.String())
}

// signInHandler handles the $signin command
func (b *Bot) signInHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate, args []string) {
	if len(args) != 2 {
		send(session, message.ChannelID, "Usage: `$signin First Last`")
		return
	}

	user, created, err := b.APIPtr.SignIn(ctx, args[0], args[1])
	if err != nil {
		sendError(session, message.ChannelID, err, "An error occurred signing in")
		return
	}
	b.Sessions.For(message.Author.ID).Save(user)

	if created {
		send(session, message.ChannelID, fmt.Sprintf("Welcome %s! You're signed up. Use `$games` to see the games", user.FullName()))
		return
	}
	send(session, message.ChannelID, fmt.Sprintf("Signed in as %s", user.FullName()))
}

// signOutHandler handles the $signout command
func (b *Bot) signOutHandler(session DiscordSession, message *discordgo.MessageCreate) {
	b.Sessions.For(message.Author.ID).Clear()
	send(session, message.ChannelID, "Signed out")
}

// whoAmIHandler handles the $whoami command
func (b *Bot) whoAmIHandler(session DiscordSession, message *discordgo.MessageCreate) {
	user, ok := b.Sessions.For(message.Author.ID).Load()
	if !ok {
		send(session, message.ChannelID, "You are not signed in. Use `$signin First Last`")
		return
	}
	send(session, message.ChannelID, fmt.Sprintf("Signed in as %s", user.FullName()))
}

// gamesHandler handles the $games command, optionally filtered to one round
func (b *Bot) gamesHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate, args []string) {
	var filter shared.Round
	if len(args) > 0 {
		round, ok := shared.ParseRound(strings.ToLower(args[0]))
		if !ok {
			send(session, message.ChannelID, fmt.Sprintf("Unknown round %q. Use one of wild_card, divisional, conference, super_bowl", args[0]))
			return
		}
		filter = round
	}

	rounds, err := b.APIPtr.Games(ctx)
	if err != nil {
		sendError(session, message.ChannelID, err, "An error occurred getting the games")
		return
	}

	res := formatRounds(rounds, filter)
	if res == "" {
		res = "No games found. Try `$refresh`"
	}
	send(session, message.ChannelID, res)
}

// pickHandler handles the $pick command. Arguments are gameID and team pairs
func (b *Bot) pickHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate, args []string) {
	user, ok := b.Sessions.For(message.Author.ID).Load()
	if !ok {
		send(session, message.ChannelID, "You need to sign in before making picks. Use `$signin First Last`")
		return
	}
	if len(args) == 0 || len(args)%2 != 0 {
		send(session, message.ChannelID, "Usage: `$pick gameID team [gameID team ...]`")
		return
	}

	var picks []api.PickRequest
	var invalid []string
	for i := 0; i < len(args); i += 2 {
		gameID, input := args[i], args[i+1]
		game, err := b.APIPtr.Game(ctx, gameID)
		if err != nil {
			sendError(session, message.ChannelID, err, "An error occurred looking up the game")
			return
		}
		team, ok := logic.MatchTeam(input, game)
		if !ok {
			invalid = append(invalid, fmt.Sprintf("%s is not playing in %s", input, game.Matchup()))
			continue
		}
		picks = append(picks, api.PickRequest{GameID: game.ID, Team: team})
	}
	if len(invalid) > 0 {
		send(session, message.ChannelID, "Invalid picks:\n- "+strings.Join(invalid, "\n- "))
		return
	}

	if err := b.APIPtr.SubmitPicks(ctx, user.ID, picks); err != nil {
		sendError(session, message.ChannelID, fmt.Errorf("submitting picks for %s: %w", user.FullName(), err), "Failed to save your picks, please try again")
		return
	}

	var res strings.Builder
	res.WriteString(fmt.Sprintf("%s's picks have been saved:\n", user.FullName()))
	for _, p := range picks {
		res.WriteString(fmt.Sprintf("- `%s`: %s\n", p.GameID, p.Team))
	}
	send(session, message.ChannelID, res.String())
}

// userPicksHandler handles the $picks command
func (b *Bot) userPicksHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate, args []string) {
	var user shared.User
	switch len(args) {
	case 0:
		signedIn, ok := b.Sessions.For(message.Author.ID).Load()
		if !ok {
			send(session, message.ChannelID, "You are not signed in. Use `$signin First Last` or `$picks First Last`")
			return
		}
		user = signedIn
	case 2:
		found, err := b.APIPtr.FindUser(ctx, args[0], args[1])
		if err != nil {
			sendError(session, message.ChannelID, err, "An error occurred looking up the player")
			return
		}
		user = found
	default:
		send(session, message.ChannelID, "Usage: `$picks [First Last]`")
		return
	}

	user, details, err := b.APIPtr.UserPicks(ctx, user.ID)
	if err != nil {
		sendError(session, message.ChannelID, err, "An error occurred getting picks")
		return
	}
	send(session, message.ChannelID, formatPickDetails(user, details))
}

// leaderboardHandler handles the $leaderboard command
func (b *Bot) leaderboardHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	board, err := b.APIPtr.Leaderboard(ctx)
	if err != nil {
		sendError(session, message.ChannelID, err, "An error occurred getting the leaderboard")
		return
	}
	send(session, message.ChannelID, formatLeaderboard(board))
}

// refreshHandler handles the $refresh command
func (b *Bot) refreshHandler(ctx context.Context, session DiscordSession, message *discordgo.MessageCreate) {
	result, _, err := b.APIPtr.Refresh(ctx)
	if err != nil {
		sendError(session, message.ChannelID, err, "Failed to refresh games, showing the last saved scores")
		return
	}

	res := fmt.Sprintf("Games refreshed: %d updated", result.Written)
	if len(result.FailedWeeks) > 0 {
		res += fmt.Sprintf(" (could not reach the schedule for week %s)", joinInts(result.FailedWeeks))
	}
	send(session, message.ChannelID, res)
}
