package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/service/notify"
	"github.com/urfave/cli/v3"
)

// Slack configures high risk hazard notifications
type Slack struct {
	botToken string
	channel  string
	baseURL  string
}

func (x *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack Bot User OAuth Token for hazard notifications",
			Category:    "Slack",
			Destination: &x.botToken,
			Sources:     cli.EnvVars("SAFETYDOCS_SLACK_BOT_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel ID that receives high risk alerts",
			Category:    "Slack",
			Destination: &x.channel,
			Sources:     cli.EnvVars("SAFETYDOCS_SLACK_CHANNEL"),
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Base URL used for links in notifications (e.g., https://safety.example.com)",
			Destination: &x.baseURL,
			Sources:     cli.EnvVars("SAFETYDOCS_BASE_URL"),
		},
	}
}

func (x Slack) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("bot-token.len", len(x.botToken)),
		slog.String("channel", x.channel),
	)
}

// BotToken returns the Slack bot token
func (x *Slack) BotToken() string {
	return x.botToken
}

// IsConfigured checks if token and channel are both set
func (x *Slack) IsConfigured() bool {
	return x.botToken != "" && x.channel != ""
}

// Configure returns nil without error when notifications are disabled
func (x *Slack) Configure() (notify.Service, error) {
	if x.botToken == "" && x.channel == "" {
		return nil, nil
	}
	if !x.IsConfigured() {
		return nil, goerr.Wrap(ErrMissingOption, "--slack-bot-token and --slack-channel must be set together")
	}

	var opts []notify.Option
	if x.baseURL != "" {
		opts = append(opts, notify.WithBaseURL(x.baseURL))
	}
	svc, err := notify.New(x.botToken, x.channel, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create slack notifier")
	}
	return svc, nil
}
