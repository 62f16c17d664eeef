package slack

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/fairway-cup/internal/metrics"
	"github.com/mauv0809/fairway-cup/internal/scoring"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func TestSendMessage_DryRun(t *testing.T) {
	metrics := metrics.NewMock()
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	notifier := NewNotifierWithAPI(nil, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, true)
	require.NoError(t, err)
}

func TestSendMessage_Success(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage(slackapi.NewSectionBlock(slackapi.NewTextBlockObject("plain_text", "hello", false, false), nil, nil))
	_, _, err := notifier.sendMessage(message, false)

	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 1, metrics.SlackNotifSent())
	assert.Equal(t, 0, metrics.SlackNotifFailed())
}

func TestSendMessage_Failure(t *testing.T) {
	postMessageCalled := false
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "", "", expectedErr
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	message := slackapi.NewBlockMessage()
	_, _, err := notifier.sendMessage(message, false)

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called")
	assert.Equal(t, 0, metrics.SlackNotifSent())
	assert.Equal(t, 1, metrics.SlackNotifFailed())
}

// Test one of the public methods to ensure it calls the private sender.
func TestSendStandingsUpdate_CallsSender(t *testing.T) {
	postMessageCalled := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			postMessageCalled = true
			return "C123", "ts123", nil
		},
	}

	metrics := metrics.NewMock()
	notifier := NewNotifierWithAPI(api, "C123", metrics)

	standings := []scoring.Standing{{PlayerID: "p1", Name: "Anna", Rank: 1, Total: 71}}
	err := notifier.SendStandingsUpdate("Fairway Cup", standings, nil, false)
	require.NoError(t, err)
	assert.True(t, postMessageCalled, "PostMessageContext should have been called via SendStandingsUpdate")
}

func TestFormatStandings(t *testing.T) {
	up := 1
	standings := []scoring.Standing{
		{PlayerID: "p1", Name: "Anna", Rank: 1, Total: 71, Delta: &up},
		{PlayerID: "p2", Name: "Bo", Rank: 2, Total: 75, Deduction: 2},
	}
	teamTotals := []scoring.TeamTotal{
		{Key: scoring.TeamRed, Name: "Red", Total: 71},
		{Key: scoring.TeamGreen, Name: "Green", Total: 75},
	}

	client := &Notifier{channelID: "C123"}
	msg := client.formatStandings("Fairway Cup", standings, teamTotals)
	require.Len(t, msg.Blocks.BlockSet, 4, "Expected header, two players and team context")

	header, ok := msg.Blocks.BlockSet[0].(*slackapi.HeaderBlock)
	require.True(t, ok, "first block should be a header")
	assert.Contains(t, header.Text.Text, "Fairway Cup")

	first, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, first.Text.Text, "Anna")
	assert.Contains(t, first.Text.Text, "🥇")
	assert.Contains(t, first.Text.Text, "↑1")

	second, ok := msg.Blocks.BlockSet[2].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, second.Text.Text, "side games")

	teams, ok := msg.Blocks.BlockSet[3].(*slackapi.ContextBlock)
	require.True(t, ok, "last block should be team context")
	text, ok := teams.ContextElements.Elements[0].(*slackapi.TextBlockObject)
	require.True(t, ok)
	assert.Contains(t, text.Text, "Red: 71")
}

func TestFormatStandings_Empty(t *testing.T) {
	client := &Notifier{channelID: "C123"}
	msg := client.formatStandings("Fairway Cup", nil, nil)
	require.Len(t, msg.Blocks.BlockSet, 2)
	section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, section.Text.Text, "No scores recorded yet")
}

func TestFormatPairings(t *testing.T) {
	players := []scoring.Player{
		{ID: "p1", Name: "Anna"},
		{ID: "p2", Name: "Bo"},
		{ID: "p3", Name: "Carl"},
	}
	groups := []scoring.Group{{"p1", "p2"}, {"p3"}}

	client := &Notifier{channelID: "C123"}
	msg := client.formatPairings("Saturday Scramble", groups, players)
	require.Len(t, msg.Blocks.BlockSet, 2)

	section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, section.Text.Text, "Anna & Bo")
	assert.Contains(t, section.Text.Text, "Carl")
}

func TestFormatMiniGamePodium_OnlyPodiumRows(t *testing.T) {
	standings := []scoring.MiniGameStanding{
		{PlayerID: "p1", Name: "Anna", Rank: 1, Total: 5, Podium: true},
		{PlayerID: "p2", Name: "Bo", Rank: 4, Total: 1, Podium: false},
	}

	client := &Notifier{channelID: "C123"}
	msg := client.formatMiniGamePodium("Fairway Cup", standings)
	require.Len(t, msg.Blocks.BlockSet, 2, "non-podium rows should be dropped")

	section, ok := msg.Blocks.BlockSet[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Contains(t, section.Text.Text, "Anna")
	assert.NotContains(t, section.Text.Text, "Bo")
}
