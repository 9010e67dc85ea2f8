package notify

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kottos/pkg/domain/interfaces"
	"github.com/secmon-lab/kottos/pkg/domain/model"
	"github.com/secmon-lab/kottos/pkg/domain/types"
	slacksvc "github.com/secmon-lab/kottos/pkg/service/slack"
	"github.com/secmon-lab/kottos/pkg/utils/async"
	"github.com/slack-go/slack"
)

// Slack posts notifications to a channel. Posting runs in the background so the
// operation that raised the notification never waits on Slack.
type Slack struct {
	svc       slacksvc.Service
	channelID string
	minKind   types.NotificationKind
}

var _ interfaces.Notifier = &Slack{}

// SlackOption configures a Slack notifier
type SlackOption func(*Slack)

// WithErrorsOnly posts only error notifications
func WithErrorsOnly() SlackOption {
	return func(s *Slack) {
		s.minKind = types.NotificationError
	}
}

// NewSlack creates a Slack notifier posting to channelID
func NewSlack(svc slacksvc.Service, channelID string, opts ...SlackOption) (*Slack, error) {
	if channelID == "" {
		return nil, goerr.New("Slack notification channel is required")
	}
	s := &Slack{svc: svc, channelID: channelID}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Slack) Notify(ctx context.Context, n model.Notification) {
	if s.minKind == types.NotificationError && n.Kind != types.NotificationError {
		return
	}

	async.Dispatch(ctx, func(ctx context.Context) error {
		text := fmt.Sprintf("%s %s", kindEmoji(n.Kind), n.Message)
		if _, err := s.svc.PostMessage(ctx, s.channelID, buildBlocks(n), text); err != nil {
			return goerr.Wrap(err, "failed to post notification to Slack",
				goerr.V("kind", n.Kind))
		}
		return nil
	})
}

func kindEmoji(kind types.NotificationKind) string {
	if kind == types.NotificationError {
		return ":x:"
	}
	return ":white_check_mark:"
}

func buildBlocks(n model.Notification) []slack.Block {
	text := slacksvc.TruncateText(fmt.Sprintf("%s *%s*", kindEmoji(n.Kind), n.Message))
	return []slack.Block{
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, text, false, false), nil, nil),
		slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType,
				fmt.Sprintf("kottos | %s | <!date^%d^{date_short_pretty} {time}|%s>",
					n.Kind, n.CreatedAt.Unix(), n.CreatedAt.UTC().Format("2006-01-02 15:04:05")),
				false, false),
		),
	}
}
