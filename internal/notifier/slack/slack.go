package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/fairway-cup/internal/metrics"
	"github.com/mauv0809/fairway-cup/internal/notifier"
	"github.com/mauv0809/fairway-cup/internal/scoring"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending notifications to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-ts", "dry-run-thread-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// Implement the Notifier interface
func (s *Notifier) SendStandingsUpdate(tournamentName string, standings []scoring.Standing, teamTotals []scoring.TeamTotal, dryRun bool) error {
	msg := s.formatStandings(tournamentName, standings, teamTotals)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendPairings(roundName string, groups []scoring.Group, players []scoring.Player, dryRun bool) error {
	msg := s.formatPairings(roundName, groups, players)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

func (s *Notifier) SendMiniGamePodium(tournamentName string, standings []scoring.MiniGameStanding, dryRun bool) error {
	msg := s.formatMiniGamePodium(tournamentName, standings)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatStandingsResponse formats a standings message for a slash command response.
func (s *Notifier) FormatStandingsResponse(tournamentName string, standings []scoring.Standing) (any, error) {
	return s.formatStandings(tournamentName, standings, nil), nil
}

// formatStandings creates the Slack message for the current leaderboard using Block Kit.
func (s *Notifier) formatStandings(tournamentName string, standings []scoring.Standing, teamTotals []scoring.TeamTotal) slack.Message {
	blocks := make([]slack.Block, 0)

	// Header - The Header block itself provides bolding. No asterisks needed.
	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("⛳ %s — Standings ⛳", tournamentName), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(standings) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No scores recorded yet. Get out on the course!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for _, st := range standings {
		var medal string
		switch st.Rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		var movement string
		if st.Delta != nil {
			if *st.Delta > 0 {
				movement = fmt.Sprintf(" ↑%d", *st.Delta)
			} else {
				movement = fmt.Sprintf(" ↓%d", -*st.Delta)
			}
		}

		playerText := fmt.Sprintf("%d. %s %s%s\n> Total: %.0f", st.Rank, medal, st.Name, movement, st.Total)
		if st.Deduction > 0 {
			playerText += fmt.Sprintf(" (incl. -%.0f from side games)", st.Deduction)
		}
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}

	// Context - For simpler, single-line info.
	if len(teamTotals) > 0 {
		var parts []string
		for _, tt := range teamTotals {
			parts = append(parts, fmt.Sprintf("%s: %.0f", tt.Name, tt.Total))
		}
		teamText := "Teams — " + strings.Join(parts, " | ")
		blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", teamText, true, false)))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatPairings creates the Slack message announcing scramble pairings.
func (s *Notifier) formatPairings(roundName string, groups []scoring.Group, players []scoring.Player) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("⛳ Pairings for %s ⛳", roundName), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	names := make(map[string]string, len(players))
	for _, p := range players {
		names[p.ID] = p.Name
	}

	var lines []string
	for _, group := range groups {
		var groupNames []string
		for _, id := range group {
			if name, ok := names[id]; ok {
				groupNames = append(groupNames, name)
			}
		}
		if len(groupNames) > 0 {
			lines = append(lines, "• "+strings.Join(groupNames, " & "))
		}
	}
	if len(lines) > 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))
	} else {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No pairings generated.", true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatMiniGamePodium creates the Slack message for the mini-game podium.
func (s *Notifier) formatMiniGamePodium(tournamentName string, standings []scoring.MiniGameStanding) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏆 %s — Side Game Podium 🏆", tournamentName), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(standings) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No side game scores yet.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for _, st := range standings {
		if !st.Podium {
			continue
		}
		var medal string
		switch st.Rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}
		playerText := fmt.Sprintf("%d. %s %s\n> Stars: %.0f", st.Rank, medal, st.Name, st.Total)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}
