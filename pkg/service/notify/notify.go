// Package notify posts hazard alerts to a Slack channel.
package notify

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/safetydocs/pkg/domain/model"
	"github.com/slack-go/slack"
)

// maxTextBytes is the limit of a section block text
const maxTextBytes = 3000

// Service sends notifications about hazards
type Service interface {
	// HighRisk announces a hazard whose risk band is high. It returns the
	// message timestamp.
	HighRisk(ctx context.Context, project *model.Project, hazard *model.Hazard) (string, error)
}

type client struct {
	api     *slack.Client
	channel string
	baseURL string
}

type Option func(*clientConfig)

type clientConfig struct {
	apiURL  string
	baseURL string
}

// WithAPIURL points the client at another Slack API endpoint
func WithAPIURL(url string) Option {
	return func(c *clientConfig) {
		c.apiURL = url
	}
}

// WithBaseURL sets the UI base URL used for links in messages
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// New creates a Slack notifier posting into channelID
func New(token, channelID string, opts ...Option) (Service, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channelID == "" {
		return nil, goerr.New("Slack channel is required")
	}

	var cfg clientConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var apiOpts []slack.Option
	if cfg.apiURL != "" {
		apiOpts = append(apiOpts, slack.OptionAPIURL(cfg.apiURL))
	}

	return &client{
		api:     slack.New(token, apiOpts...),
		channel: channelID,
		baseURL: cfg.baseURL,
	}, nil
}

func (c *client) HighRisk(ctx context.Context, project *model.Project, hazard *model.Hazard) (string, error) {
	blocks := buildHighRiskBlocks(project, hazard, c.baseURL)
	text := fmt.Sprintf("Hohes Risiko in %s: %s", project.Name, hazard.Activity)

	_, ts, err := c.api.PostMessageContext(ctx, c.channel,
		slack.MsgOptionBlocks(blocks...),
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to post high risk message",
			goerr.V("channel", c.channel),
			goerr.V("hazard_id", hazard.ID),
		)
	}
	return ts, nil
}

func buildHighRiskBlocks(project *model.Project, hazard *model.Hazard, baseURL string) []slack.Block {
	title := hazard.Activity
	if title == "" {
		title = hazard.Description
	}

	blocks := []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, ":warning: Hohes Risiko: "+truncate(title, 140), true, false),
		),
		slack.NewSectionBlock(nil, []*slack.TextBlockObject{
			field("Projekt", project.Name),
			field("Gefährdung", hazard.Description),
			field("Schadenschwere", intText(hazard.Severity)),
			field("Wahrscheinlichkeit", intText(hazard.Probability)),
		}, nil),
	}

	if m := hazard.MitigationText(); m != "" {
		blocks = append(blocks, slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, "*Maßnahmen*\n"+truncate(m, maxTextBytes-20), false, false),
			nil, nil,
		))
	}

	parts := []string{fmt.Sprintf("Risiko: %s (%d)", hazard.RiskBand.Label(), hazard.Score())}
	if baseURL != "" {
		parts = append(parts, fmt.Sprintf(":link: <%s/projects/%s|Projekt öffnen>", baseURL, project.ID))
	}
	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject(slack.MarkdownType, strings.Join(parts, "  |  "), false, false),
	))

	return blocks
}

func field(label, value string) *slack.TextBlockObject {
	if value == "" {
		value = "-"
	}
	return slack.NewTextBlockObject(slack.MarkdownType, "*"+label+"*\n"+truncate(value, 1900), false, false)
}

func intText(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// truncate cuts s to at most n bytes without splitting a rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n - len("…")
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
