package services

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"html/template"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"golang.org/x/text/message"

	"supportchat-backend/internal/i18n"
	"supportchat-backend/internal/metrics"
	"supportchat-backend/internal/models"
)

// Categories with a fixed answer.
const (
	CategoryPersonal    = "personal"
	CategoryDevopsError = "devops_error"
)

type settingsProvider interface {
	Current(ctx context.Context) (*models.Settings, error)
}

type urlResolver interface {
	Resolve(ctx context.Context, category string) (string, bool, error)
}

// BotClient sends user messages to the classification service and turns the
// returned category into a display message.
type BotClient struct {
	http             *resty.Client
	settings         settingsProvider
	content          urlResolver
	unavailableDelay time.Duration
	logger           zerolog.Logger
}

func NewBotClient(settings settingsProvider, content urlResolver, unavailableDelay time.Duration, logger zerolog.Logger) *BotClient {
	return &BotClient{
		http:             resty.New().SetHeader("Accept", "application/json"),
		settings:         settings,
		content:          content,
		unavailableDelay: unavailableDelay,
		logger:           logger.With().Str("component", "bot_client").Logger(),
	}
}

// Settings returns the current settings. A load failure is logged and
// reported as empty settings, which fail SelfCheck.
func (c *BotClient) Settings(ctx context.Context) *models.Settings {
	settings, err := c.settings.Current(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to load settings")
		return &models.Settings{}
	}
	return settings
}

// SelfCheck reports whether the widget is configured well enough to chat.
func (c *BotClient) SelfCheck(ctx context.Context) bool {
	return c.Settings(ctx).SelfCheck()
}

// SendMessage posts message to the first configured host and maps the
// answer. It never fails: every problem with the bot service becomes the
// "unavailable" reply.
func (c *BotClient) SendMessage(ctx context.Context, settings *models.Settings, msg string, p *message.Printer) models.Reply {
	if !settings.SelfCheck() {
		c.logger.Warn().Msg("bot called without complete settings")
		return c.unavailable(ctx, settings, p)
	}

	// TODO: spread requests over every configured host instead of the first one.
	host := settings.PrimaryHost()

	start := time.Now()
	res, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{"user_input": msg}).
		Post(host + "/chatbot")
	metrics.BotRequestDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.BotRequests.WithLabelValues("unreachable").Inc()
		c.logger.Error().Err(err).Str("host", host).Msg("bot service unreachable")
		return c.unavailable(ctx, settings, p)
	}

	if !res.IsSuccess() {
		metrics.BotRequests.WithLabelValues("bad_status").Inc()
		c.logger.Error().Int("status", res.StatusCode()).Str("host", host).Str("body", truncate(res.String(), 256)).Msg("bot service returned error status")
		return c.unavailable(ctx, settings, p)
	}

	var reply models.BotReply
	if err := json.Unmarshal(res.Body(), &reply); err != nil || reply.Category == nil {
		metrics.BotRequests.WithLabelValues("malformed").Inc()
		c.logger.Error().Err(err).Str("host", host).Str("body", truncate(res.String(), 256)).Msg("bot service returned malformed response")
		return c.unavailable(ctx, settings, p)
	}

	metrics.BotRequests.WithLabelValues("ok").Inc()
	return c.CategoryToReply(ctx, settings, *reply.Category, p)
}

// CategoryToReply maps a category to its display message. Unknown categories
// go through the content lookup and never produce an error.
func (c *BotClient) CategoryToReply(ctx context.Context, settings *models.Settings, category string, p *message.Printer) models.Reply {
	support := mailtoLink(settings.EmailAddress)

	var reply models.Reply
	switch category {
	case CategoryPersonal:
		reply = models.Reply{Kind: models.ReplyPersonal, Message: template.HTML(p.Sprintf(i18n.MsgPersonal, support))}
	case CategoryDevopsError:
		reply = models.Reply{Kind: models.ReplyDevopsError, Message: template.HTML(p.Sprintf(i18n.MsgDevopsError, support))}
	default:
		url, found, err := c.content.Resolve(ctx, category)
		if err != nil {
			c.logger.Error().Err(err).Str("category", category).Msg("content lookup failed")
		}
		if found {
			reply = models.Reply{Kind: models.ReplyLink, Message: template.HTML(p.Sprintf(i18n.MsgRelevantLink, link(url)))}
		} else {
			reply = models.Reply{Kind: models.ReplyFallback, Message: template.HTML(p.Sprintf(i18n.MsgNoAnswer, support))}
		}
	}

	reply.Category = category
	metrics.Replies.WithLabelValues(string(reply.Kind)).Inc()
	return reply
}

func (c *BotClient) unavailable(ctx context.Context, settings *models.Settings, p *message.Printer) models.Reply {
	Pause(ctx, c.unavailableDelay)
	metrics.Replies.WithLabelValues(string(models.ReplyUnavailable)).Inc()
	return models.Reply{
		Kind:    models.ReplyUnavailable,
		Message: template.HTML(p.Sprintf(i18n.MsgUnavailable, mailtoLink(settings.EmailAddress))),
	}
}

// Pause waits for d unless ctx ends first. It paces replies for the user
// and is not a timeout.
func Pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func mailtoLink(email string) string {
	e := html.EscapeString(email)
	return fmt.Sprintf(`<a href="mailto:%s">%s</a>`, e, e)
}

func link(url string) string {
	u := html.EscapeString(url)
	return fmt.Sprintf(`<a href="%s">%s</a>`, u, u)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
