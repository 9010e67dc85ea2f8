package slack

import (
	"context"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// MaxSectionTextBytes is the Slack limit for the text of a section block
const MaxSectionTextBytes = 3000

// client implements Service interface
type client struct {
	api *slack.Client
}

// Option is a functional option for client configuration
type Option func(*clientConfig)

type clientConfig struct {
	slackOpts []slack.Option
}

// WithAPIURL points the client at another Slack API endpoint
func WithAPIURL(url string) Option {
	return func(c *clientConfig) {
		c.slackOpts = append(c.slackOpts, slack.OptionAPIURL(url))
	}
}

// New creates a new Slack service with the provided bot token
func New(token string, opts ...Option) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}

	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return &client{
		api: slack.New(token, cfg.slackOpts...),
	}, nil
}

func (c *client) PostMessage(ctx context.Context, channelID string, blocks []slack.Block, text string) (string, error) {
	if channelID == "" {
		return "", goerr.New("Slack channel ID is required")
	}

	_, ts, err := c.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText(truncateToMaxBytes(text, MaxSectionTextBytes), false),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to post Slack message", goerr.V("channel_id", channelID))
	}
	return ts, nil
}

// TruncateText shortens s so it fits in a section block
func TruncateText(s string) string {
	return truncateToMaxBytes(s, MaxSectionTextBytes)
}

// truncateToMaxBytes cuts s at a rune boundary so the result is at most limit bytes
func truncateToMaxBytes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
