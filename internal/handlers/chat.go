package handlers

import (
	"context"
	"encoding/json"
	"html/template"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/schema"
	"github.com/rs/zerolog"
	"golang.org/x/text/message"

	"supportchat-backend/internal/i18n"
	"supportchat-backend/internal/models"
	"supportchat-backend/internal/services"
	"supportchat-backend/internal/web"
)

type chatBot interface {
	Settings(ctx context.Context) *models.Settings
	SendMessage(ctx context.Context, settings *models.Settings, msg string, p *message.Printer) models.Reply
}

// ChatHandler serves the chat block and answers its submissions.
type ChatHandler struct {
	bot        chatBot
	renderer   *web.Renderer
	decoder    *schema.Decoder
	replyDelay time.Duration
	submitURL  string
	logger     zerolog.Logger
}

func NewChatHandler(bot chatBot, renderer *web.Renderer, replyDelay time.Duration, submitURL string, logger zerolog.Logger) *ChatHandler {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	return &ChatHandler{
		bot:        bot,
		renderer:   renderer,
		decoder:    decoder,
		replyDelay: replyDelay,
		submitURL:  submitURL,
		logger:     logger.With().Str("component", "chat").Logger(),
	}
}

// Page serves the standalone chat page.
func (h *ChatHandler) Page(w http.ResponseWriter, r *http.Request) {
	p := i18n.FromRequest(r)

	block, err := h.blockData(r.Context(), p)
	if err != nil {
		h.renderFailed(w, r, err)
		return
	}

	page, err := h.renderer.Page(web.PageData{
		Lang:  i18n.Negotiate(r.Header.Get("Accept-Language")).String(),
		Title: block.Header,
		Block: block,
	})
	if err != nil {
		h.renderFailed(w, r, err)
		return
	}

	writeHTML(w, http.StatusOK, page)
}

// Block serves the chat block fragment for embedding.
func (h *ChatHandler) Block(w http.ResponseWriter, r *http.Request) {
	block, err := h.blockData(r.Context(), i18n.FromRequest(r))
	if err != nil {
		h.renderFailed(w, r, err)
		return
	}

	out, err := h.renderer.Block(block)
	if err != nil {
		h.renderFailed(w, r, err)
		return
	}

	writeHTML(w, http.StatusOK, out)
}

// Submit forwards the user's message to the bot and returns the commands
// that append the bot's answer to the conversation.
func (h *ChatHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p := i18n.FromRequest(r)

	settings := h.bot.Settings(ctx)
	if !settings.SelfCheck() {
		writeJSON(w, http.StatusServiceUnavailable, errorResp("NOT_CONFIGURED", p.Sprintf(i18n.MsgNotSetUp), r))
		return
	}

	sub, err := h.decodeSubmission(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if strings.TrimSpace(sub.UserInput) == "" {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"user_input": "Message is required"}, r))
		return
	}

	reply := h.bot.SendMessage(ctx, settings, sub.UserInput, p)
	h.logger.Debug().Str("kind", string(reply.Kind)).Str("category", reply.Category).Msg("bot replied")

	fragment, err := h.renderer.Message(models.ChatMessage{
		SenderClass: models.SenderBot,
		SenderName:  settings.BotDisplayName,
		Message:     reply.Message,
	})
	if err != nil {
		h.renderFailed(w, r, err)
		return
	}

	services.Pause(ctx, h.replyDelay)

	writeJSON(w, http.StatusOK, models.AjaxResponse{
		Commands: []models.AjaxCommand{
			{Command: "insert", Method: "append", Selector: "#conversation", Data: fragment},
			{Command: "clear", Selector: "#user-input"},
		},
	})
}

func (h *ChatHandler) decodeSubmission(r *http.Request) (models.ChatSubmission, error) {
	var sub models.ChatSubmission

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		err := json.NewDecoder(r.Body).Decode(&sub)
		return sub, err
	}

	if err := r.ParseForm(); err != nil {
		return sub, err
	}
	err := h.decoder.Decode(&sub, r.PostForm)
	return sub, err
}

// blockData builds the block in its Ready or Unavailable state.
func (h *ChatHandler) blockData(ctx context.Context, p *message.Printer) (web.BlockData, error) {
	settings := h.bot.Settings(ctx)

	header := settings.ConversationHeader
	if strings.TrimSpace(header) == "" {
		header = p.Sprintf(i18n.MsgDefaultHeader)
	}

	block := web.BlockData{
		Header:      header,
		Ready:       settings.SelfCheck(),
		Placeholder: p.Sprintf(i18n.MsgPlaceholder),
		SendLabel:   p.Sprintf(i18n.MsgSend),
		YouLabel:    p.Sprintf(i18n.MsgYou),
		SubmitURL:   h.submitURL,
	}

	greeting := []string{p.Sprintf(i18n.MsgNotSetUp)}
	if block.Ready {
		greeting = []string{p.Sprintf(i18n.MsgHello), p.Sprintf(i18n.MsgHowCanIHelp)}
	}

	var messages strings.Builder
	for _, text := range greeting {
		out, err := h.renderer.Text(models.SenderBot, settings.BotDisplayName, text)
		if err != nil {
			return block, err
		}
		messages.WriteString(out)
	}
	block.Messages = template.HTML(messages.String())

	return block, nil
}

func (h *ChatHandler) renderFailed(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("failed to render chat")
	writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "An unexpected error occurred", r))
}
