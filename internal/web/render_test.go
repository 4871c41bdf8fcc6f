package web

import (
	"html/template"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supportchat-backend/internal/models"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	return r
}

func TestRenderer_Message(t *testing.T) {
	r := newTestRenderer(t)

	out, err := r.Message(models.ChatMessage{
		SenderClass: models.SenderBot,
		SenderName:  "Support <Team>",
		Message:     template.HTML(`see <a href="mailto:admin@example.org">admin@example.org</a>`),
	})
	require.NoError(t, err)

	assert.Contains(t, out, `class="chat-message-ai clearfix"`)
	assert.Contains(t, out, "<h5>Support &lt;Team&gt;</h5>")
	assert.Contains(t, out, `<a href="mailto:admin@example.org">admin@example.org</a>`)
}

func TestRenderer_TextEscapes(t *testing.T) {
	r := newTestRenderer(t)

	out, err := r.Text(models.SenderBot, "Bot", "<script>alert(1)</script>")
	require.NoError(t, err)

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestRenderer_BlockReadyShowsInput(t *testing.T) {
	r := newTestRenderer(t)

	out, err := r.Block(BlockData{
		Header:      "Search assistant",
		Messages:    template.HTML("<p>hi</p>"),
		Ready:       true,
		Placeholder: "How can we help?",
		SendLabel:   "Send",
		YouLabel:    "You",
		SubmitURL:   "/api/v1/chat/messages",
	})
	require.NoError(t, err)

	assert.Contains(t, out, `id="chatblock"`)
	assert.Contains(t, out, `<header id="conversation-header" class="clearfix">Search assistant</header>`)
	assert.Contains(t, out, `id="user-input"`)
	assert.Contains(t, out, `id="chat-user-input-submit"`)
	assert.Contains(t, out, `action="/api/v1/chat/messages"`)
	assert.Contains(t, out, "<p>hi</p>")
}

func TestRenderer_BlockUnavailableHidesInput(t *testing.T) {
	r := newTestRenderer(t)

	out, err := r.Block(BlockData{Header: "Search assistant", Ready: false})
	require.NoError(t, err)

	assert.Contains(t, out, `id="conversation"`)
	assert.NotContains(t, out, `id="user-input"`)
	assert.NotContains(t, out, `id="chat-user-input-submit"`)
}

func TestRenderer_Page(t *testing.T) {
	r := newTestRenderer(t)

	out, err := r.Page(PageData{Lang: "en", Title: "Support", Block: BlockData{Header: "Help"}})
	require.NoError(t, err)

	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, `<script src="/static/chat.js"></script>`)
	assert.Contains(t, out, "Help")
}

func TestStaticHandler(t *testing.T) {
	srv := httptest.NewServer(StaticHandler())
	defer srv.Close()

	for _, name := range []string{"/chat.js", "/chat.css"} {
		res, err := http.Get(srv.URL + name)
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusOK, res.StatusCode, name)
	}
}

func fetchStatic(t *testing.T, name string) string {
	t.Helper()
	srv := httptest.NewServer(StaticHandler())
	defer srv.Close()

	res, err := http.Get(srv.URL + name)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return string(body)
}

func TestChatScript_SkipsBlankMessages(t *testing.T) {
	js := fetchStatic(t, "/chat.js")

	guard := strings.Index(js, "if (message.trim() === '')")
	appendUser := strings.Index(js, "conversation.appendChild(createUserResponse(message))")
	require.NotEqual(t, -1, guard)
	require.NotEqual(t, -1, appendUser)
	assert.Less(t, guard, appendUser, "blank input must return before the user bubble is added")
}

func TestChatScript_ScrollsOnCompletionAndChange(t *testing.T) {
	js := fetchStatic(t, "/chat.js")

	assert.Contains(t, js, "document.addEventListener('chat:ajaxstop', scrollDown)")
	assert.Contains(t, js, "block.addEventListener('change', scrollDown)")
	assert.Contains(t, js, "document.dispatchEvent(new Event('chat:ajaxstop'))")
}
