package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/slack-go/slack"

	"github.com/kmorita/scorebook/internal/collector"
	"github.com/kmorita/scorebook/internal/handicap"
	"github.com/kmorita/scorebook/internal/metrics"
	"github.com/kmorita/scorebook/internal/notifier"
	"github.com/kmorita/scorebook/internal/ranking"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier handles sending reports to Slack.
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

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) error {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return nil
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
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return nil
}

func (s *Notifier) SendCollectionReport(result collector.Result, dryRun bool) error {
	var sb strings.Builder
	for _, sheet := range result.Sheets {
		for _, d := range sheet.Details {
			if d.Accepted {
				sb.WriteString(fmt.Sprintf("%s 第%s試合 %s %d-%d %s\n", d.Date, d.GameLabel, d.TeamA, d.PointsA, d.PointsB, d.TeamB))
			} else {
				sb.WriteString(fmt.Sprintf("%s %s: %s\n", d.Cell, d.TeamA, d.Rejection.String()))
			}
		}
	}
	if sb.Len() == 0 {
		sb.WriteString("対象の試合はありませんでした")
	}

	message := slack.NewBlockMessage(
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, "スコア入力結果", false, false)),
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, result.Summary(), false, false), nil, nil),
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, sb.String(), false, false), nil, nil),
	)
	return s.sendMessage(message, dryRun)
}

func (s *Notifier) SendStandings(c ranking.Classification, startDate, endDate string, dryRun bool) error {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*集計期間* %s 〜 %s (参加基準 %d日)\n", startDate, endDate, c.Threshold))
	for i, p := range c.Qualified {
		sb.WriteString(fmt.Sprintf("%d位 %s ネット%.3f (グロス%.3f / HDCP%.3f / %d日)\n",
			i+1, p.DisplayName, p.Net, p.Gross, p.Handicap, p.ParticipationDays))
	}
	if len(c.Unqualified) > 0 {
		sb.WriteString("\n*基準未達*\n")
		for _, p := range c.Unqualified {
			sb.WriteString(fmt.Sprintf("%s ネット%.3f (%d日)\n", p.DisplayName, p.Net, p.ParticipationDays))
		}
	}
	if len(c.Guests) > 0 {
		sb.WriteString("\n*ゲスト*\n")
		for _, p := range c.Guests {
			sb.WriteString(fmt.Sprintf("%s グロス%.3f\n", p.DisplayName, p.Gross))
		}
	}

	message := slack.NewBlockMessage(
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, "スコア集計", false, false)),
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, sb.String(), false, false), nil, nil),
	)
	return s.sendMessage(message, dryRun)
}

func (s *Notifier) SendPeriodCloseReport(backupName, prevLabel, nextLabel string, results []handicap.PlayerResult, dryRun bool) error {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("バックアップ: %s\n期: %s → %s\n", backupName, prevLabel, nextLabel))
	for _, r := range results {
		line := fmt.Sprintf("%s HDCP %.3f (Δ%.3f)", r.PlayerID, r.Corrected, r.Delta)
		if r.Remark != "" {
			line += " " + r.Remark
		}
		sb.WriteString(line + "\n")
	}

	message := slack.NewBlockMessage(
		slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, "HDCP更新", false, false)),
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, sb.String(), false, false), nil, nil),
	)
	return s.sendMessage(message, dryRun)
}
