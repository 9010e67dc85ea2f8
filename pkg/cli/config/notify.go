package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kottos/pkg/domain/interfaces"
	"github.com/secmon-lab/kottos/pkg/service/notify"
	"github.com/secmon-lab/kottos/pkg/service/slack"
	"github.com/secmon-lab/kottos/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

const defaultFeedSize = 100

// Notify holds CLI flags for notification sinks. Notifications are always logged and kept
// in the in-memory feed; Slack is added when a token and channel are set.
type Notify struct {
	slackToken      string `masq:"secret"`
	slackChannel    string
	slackErrorsOnly bool
	feedSize        int
}

func (x *Notify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack bot token for posting notifications",
			Category:    "Notification",
			Sources:     cli.EnvVars("KOTTOS_SLACK_BOT_TOKEN"),
			Destination: &x.slackToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID receiving notifications",
			Category:    "Notification",
			Sources:     cli.EnvVars("KOTTOS_SLACK_CHANNEL"),
			Destination: &x.slackChannel,
		},
		&cli.BoolFlag{
			Name:        "slack-errors-only",
			Usage:       "Post only error notifications to Slack",
			Category:    "Notification",
			Sources:     cli.EnvVars("KOTTOS_SLACK_ERRORS_ONLY"),
			Destination: &x.slackErrorsOnly,
		},
		&cli.IntFlag{
			Name:        "notification-feed-size",
			Usage:       "Number of recent notifications kept for the API",
			Category:    "Notification",
			Value:       defaultFeedSize,
			Sources:     cli.EnvVars("KOTTOS_NOTIFICATION_FEED_SIZE"),
			Destination: &x.feedSize,
		},
	}
}

func (x Notify) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("slack-bot-token.len", len(x.slackToken)),
		slog.String("slack-channel", x.slackChannel),
		slog.Bool("slack-errors-only", x.slackErrorsOnly),
		slog.Int("feed-size", x.feedSize),
	)
}

// Configure builds the notifier fan-out and returns the feed that backs the API
func (x *Notify) Configure() (interfaces.Notifier, *notify.Feed, error) {
	size := x.feedSize
	if size <= 0 {
		size = defaultFeedSize
	}
	feed := notify.NewFeed(size)
	sinks := notify.Multi{notify.Log{}, feed}

	switch {
	case x.slackToken != "" && x.slackChannel != "":
		svc, err := slack.New(x.slackToken)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to initialize slack service")
		}
		var opts []notify.SlackOption
		if x.slackErrorsOnly {
			opts = append(opts, notify.WithErrorsOnly())
		}
		sn, err := notify.NewSlack(svc, x.slackChannel, opts...)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to initialize slack notifier")
		}
		sinks = append(sinks, sn)
		logging.Default().Info("Slack notifications enabled", "channel", x.slackChannel)

	case x.slackToken != "" || x.slackChannel != "":
		return nil, nil, goerr.Wrap(ErrMissingRequired, "slack-bot-token and slack-channel must be set together")
	}

	return sinks, feed, nil
}
